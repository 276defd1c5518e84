package log

// nopLogger is a logger which discards everything, used when no logger has been supplied.
type nopLogger struct{}

// Log method for the nopLogger which does nothing.
func (n nopLogger) Log(_ Level, _ string, _ ...any) {}
