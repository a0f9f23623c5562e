// Package console provides a standard interface for user-facing output on the
// terminal: leveled messages on stderr, primary command output on stdout.
package console

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/logrusorgru/aurora"
)

// Console writes leveled messages to stderr. Messages below Level are
// dropped. Colors are only used when Color is set.
type Console struct {
	Color bool
	Level Level
	mu    sync.Mutex
}

// Debug prints a verbose debugging message, not displayed by default.
func (c *Console) Debug(msg string) {
	c.log(DebugLevel, msg)
}

// Info tells the user what's going on.
func (c *Console) Info(msg string) {
	c.log(InfoLevel, msg)
}

// Warn tells the user that something might break.
func (c *Console) Warn(msg string) {
	c.log(WarnLevel, msg)
}

// Error tells the user that something is broken.
func (c *Console) Error(msg string) {
	c.log(ErrorLevel, msg)
}

// Fatal level message, followed by exit.
func (c *Console) Fatal(msg string) {
	c.log(FatalLevel, msg)
	os.Exit(1)
}

func (c *Console) Debugf(msg string, v ...interface{}) {
	c.Debug(fmt.Sprintf(msg, v...))
}

func (c *Console) Infof(msg string, v ...interface{}) {
	c.Info(fmt.Sprintf(msg, v...))
}

func (c *Console) Warnf(msg string, v ...interface{}) {
	c.Warn(fmt.Sprintf(msg, v...))
}

func (c *Console) Errorf(msg string, v ...interface{}) {
	c.Error(fmt.Sprintf(msg, v...))
}

func (c *Console) Fatalf(msg string, v ...interface{}) {
	c.Fatal(fmt.Sprintf(msg, v...))
}

// Output writes a line to stdout. Useful for the primary output of a command.
func (c *Console) Output(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(os.Stdout, s)
}

func (c *Console) log(level Level, msg string) {
	if level < c.Level {
		return
	}

	prompt := ""
	if c.Color {
		switch level {
		case WarnLevel:
			prompt = aurora.Yellow("⚠ ").String()
		case ErrorLevel, FatalLevel:
			prompt = aurora.Red("ⅹ ").String()
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, line := range strings.Split(msg, "\n") {
		if c.Color && level == DebugLevel {
			line = aurora.Faint(line).String()
		}
		fmt.Fprintln(os.Stderr, prompt+line)
	}
}
