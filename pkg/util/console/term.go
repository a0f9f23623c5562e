package console

import (
	"os"

	"github.com/moby/term"
)

// IsTerminal returns true if a user is interacting with us over a terminal.
func IsTerminal() bool {
	return term.IsTerminal(os.Stdin.Fd())
}
