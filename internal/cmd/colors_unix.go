//go:build !windows

package cmd

import (
	"os"

	"golang.org/x/sys/unix"
)

// getTermWidthIoctl returns the width of stdout, or 0 if it is not a terminal.
func getTermWidthIoctl() int {
	return fdWidth(int(os.Stdout.Fd()))
}

// fdWidth returns the column count of the terminal open on fd, or 0.
func fdWidth(fd int) int {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 {
		return 0
	}
	return int(ws.Col)
}
