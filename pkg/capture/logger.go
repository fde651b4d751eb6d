package capture

// Logger decouples Sharpen from any concrete logging backend. A nil
// Logger disables logging entirely. pkg/capturelog provides a
// zerolog-backed implementation and a no-op stub.
type Logger interface {
	Debug(component, message string, fields map[string]any)
	Warn(component, message string, fields map[string]any)
	Error(component string, err error, fields map[string]any)
}
