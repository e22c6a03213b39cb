//go:build !windows

package prompt

import (
	"os"
	"syscall"

	"golang.org/x/term"
)

// drainStdin discards bytes queued on a terminal stdin. survey queries the
// cursor position with \033[6n and the replies (\033[row;colR) would
// otherwise show up as input in the next prompt.
func drainStdin() {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return
	}
	if err := syscall.SetNonblock(fd, true); err != nil {
		return
	}
	defer func() {
		_ = syscall.SetNonblock(fd, false)
	}()

	buf := make([]byte, 256)
	for {
		n, err := syscall.Read(fd, buf)
		if n <= 0 || err != nil {
			return
		}
	}
}
