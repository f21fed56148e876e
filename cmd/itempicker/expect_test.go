//go:build expect && !windows

package main

import (
	"bytes"
	"os/exec"
	"strings"
	"syscall"
	"testing"
	"time"

	expect "github.com/Netflix/go-expect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

const (
	keyDown  = "\x1b[B"
	keyEnter = "\r"
	keyEsc   = "\x1b"
	keyTab   = "\t"
)

// startOnConsole runs the binary with a pseudo-terminal as its controlling
// terminal and stdout captured separately.
func startOnConsole(t *testing.T, bin string, args ...string) (*expect.Console, *exec.Cmd, *bytes.Buffer) {
	t.Helper()
	console, err := expect.NewConsole(expect.WithDefaultTimeout(10 * time.Second))
	require.NoError(t, err)
	t.Cleanup(func() { _ = console.Close() })

	require.NoError(t, unix.IoctlSetWinsize(int(console.Tty().Fd()), unix.TIOCSWINSZ, &unix.Winsize{Row: 24, Col: 80}))

	var stdout bytes.Buffer
	cmd := exec.Command(bin, args...)
	isolatedEnv(t, cmd)
	cmd.Stdin = console.Tty()
	cmd.Stdout = &stdout
	cmd.Stderr = console.Tty()
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true, Setctty: true, Ctty: 0}
	require.NoError(t, cmd.Start())
	return console, cmd, &stdout
}

func TestExpect_PickItem(t *testing.T) {
	bin := buildBinary(t)
	console, cmd, stdout := startOnConsole(t, bin, "pick", "--items", "red green blue")

	_, err := console.ExpectString("red")
	require.NoError(t, err)
	_, err = console.Send(keyDown)
	require.NoError(t, err)
	time.Sleep(300 * time.Millisecond)
	_, err = console.Send(keyEnter)
	require.NoError(t, err)

	require.NoError(t, cmd.Wait())
	assert.Equal(t, "green", strings.TrimSpace(stdout.String()))
}

func TestExpect_CancelExitsOne(t *testing.T) {
	bin := buildBinary(t)
	console, cmd, stdout := startOnConsole(t, bin, "number", "--start", "1", "--end", "9")

	_, err := console.ExpectString("1")
	require.NoError(t, err)
	_, err = console.Send(keyEsc)
	require.NoError(t, err)

	err = cmd.Wait()
	assert.Equal(t, 1, exitCode(t, err))
	assert.Empty(t, stdout.String())
}

func TestExpect_DateGroup(t *testing.T) {
	bin := buildBinary(t)
	console, cmd, stdout := startOnConsole(t, bin, "date", "--day", "9", "--month", "3", "--year", "2024")

	_, err := console.ExpectString("Mar")
	require.NoError(t, err)
	_, err = console.Send(keyTab + keyDown)
	require.NoError(t, err)
	time.Sleep(300 * time.Millisecond)
	_, err = console.Send(keyEnter)
	require.NoError(t, err)

	require.NoError(t, cmd.Wait())
	assert.Equal(t, "2024-04-09", strings.TrimSpace(stdout.String()))
}
