package console

import (
	"os"

	"github.com/mattn/go-isatty"
)

// std is the package-level console, so callers don't have to pass one around.
var std = &Console{
	Color: isatty.IsTerminal(os.Stderr.Fd()),
	Level: InfoLevel,
}

// SetLevel sets the log level of the package-level console.
func SetLevel(level Level) {
	std.Level = level
}

// SetColor sets whether the package-level console prints colors.
func SetColor(color bool) {
	std.Color = color
}

// Debug level message.
func Debug(msg string) {
	std.Debug(msg)
}

// Info level message.
func Info(msg string) {
	std.Info(msg)
}

// Warn level message.
func Warn(msg string) {
	std.Warn(msg)
}

// Error level message.
func Error(msg string) {
	std.Error(msg)
}

// Fatal level message, followed by exit.
func Fatal(msg string) {
	std.Fatal(msg)
}

// Debug level message.
func Debugf(msg string, v ...interface{}) {
	std.Debugf(msg, v...)
}

// Info level message.
func Infof(msg string, v ...interface{}) {
	std.Infof(msg, v...)
}

// Warn level message.
func Warnf(msg string, v ...interface{}) {
	std.Warnf(msg, v...)
}

// Error level message.
func Errorf(msg string, v ...interface{}) {
	std.Errorf(msg, v...)
}

// Fatal level message, followed by exit.
func Fatalf(msg string, v ...interface{}) {
	std.Fatalf(msg, v...)
}

// Output a line to stdout.
func Output(s string) {
	std.Output(s)
}
