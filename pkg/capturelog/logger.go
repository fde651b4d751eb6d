package capturelog

import "github.com/brightlinephoto/capturesharp/pkg/capture"

// Logger is capture.Logger re-exported so callers that only touch
// logging need to import this package, not pkg/capture itself.
type Logger = capture.Logger
