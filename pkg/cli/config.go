package cli

import (
	"os"

	"github.com/brightlinephoto/capturesharp/pkg/stdimg"
)

// Version is the build-time version string, used by the self-update
// checker. Overridden at link time with
// -ldflags "-X github.com/brightlinephoto/capturesharp/pkg/cli.Version=...".
var Version = "0.1.0"

// applyCaptureSharpenEnvDefaults lets a .env (loaded by LoadDotEnv) or the
// surrounding shell environment override the built-in captureSharpen
// prompt defaults, the same way the rest of the CLI already treats
// environment variables as the source of optional tunables.
func applyCaptureSharpenEnvDefaults() {
	overrides := map[string]string{
		"radius":     envOrDefault("TIMP_CS_RADIUS", ""),
		"iterations": envOrDefault("TIMP_CS_ITERATIONS", ""),
		"boost":      envOrDefault("TIMP_CS_BOOST", ""),
		"center":     envOrDefault("TIMP_CS_CENTER", ""),
		"threshold":  envOrDefault("TIMP_CS_THRESHOLD", ""),
	}
	for i := range stdimg.Commands {
		if stdimg.Commands[i].Name != "captureSharpen" {
			continue
		}
		for j := range stdimg.Commands[i].Args {
			if v := overrides[stdimg.Commands[i].Args[j].Name]; v != "" {
				stdimg.Commands[i].Args[j].Default = v
			}
		}
	}
}

func envOrDefault(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
