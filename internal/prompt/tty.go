package prompt

import (
	"os"

	"golang.org/x/term"
)

// CaptureTTY snapshots the terminal mode of stdin. The returned func restores
// it and is safe to call from a signal handler. It is a no-op when stdin is
// not a terminal.
func CaptureTTY() func() {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return func() {}
	}
	state, err := term.GetState(fd)
	if err != nil {
		return func() {}
	}
	return func() {
		_ = term.Restore(fd, state)
	}
}

// IsInteractive reports whether stdin and stdout are both terminals.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
