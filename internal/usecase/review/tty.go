package review

import (
	"os"

	"golang.org/x/term"
)

// IsTTY checks if the given file descriptor is a terminal.
func IsTTY(fd uintptr) bool {
	return term.IsTerminal(int(fd))
}

// IsInteractive reports whether stdout is a terminal. Callers use it to
// decide between printing the decorated skip report and the plain form
// suited to CI logs.
func IsInteractive() bool {
	return IsTTY(os.Stdout.Fd())
}
