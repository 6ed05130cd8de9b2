package utils

import (
	"os"

	"golang.org/x/term"
)

// IsInteractive reports whether f is attached to a terminal. The REPLs use
// it to tell a live user apart from piped input.
func IsInteractive(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
