package capturelog

// NopLogger discards every call. Useful for tests and for callers that
// haven't wired up a real sink yet.
type NopLogger struct{}

func (NopLogger) Debug(component, message string, fields map[string]any) {}
func (NopLogger) Warn(component, message string, fields map[string]any)  {}
func (NopLogger) Error(component string, err error, fields map[string]any) {}
