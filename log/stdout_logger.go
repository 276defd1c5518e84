package log

import (
	"fmt"
	"time"
)

// StdoutLogger is a basic logger which prints all logs to standard output.
type StdoutLogger struct{}

// Log prints the given message to standard output with a timestamp and a level prefix.
func (s StdoutLogger) Log(level Level, msg string, args ...any) {
	fmt.Println(time.Now().Format(time.RFC3339Nano) + " " + level.String() + ": " + fmt.Sprintf(msg, args...))
}
