// Command timp is a terminal raw/photo editing tool.
package main

import "github.com/brightlinephoto/capturesharp/pkg/cli"

func main() {
	cli.RunCLI()
}
