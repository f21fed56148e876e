package cmd

import (
	"bytes"
	"io"
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEscape}
)

// isolate points every XDG directory at a temp dir and resets flag state
// left over from earlier commands.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir+"/config")
	t.Setenv("XDG_DATA_HOME", dir+"/data")
	t.Setenv("XDG_CACHE_HOME", dir+"/cache")
	t.Setenv("TERM", "xterm-256color")
	t.Setenv("NO_COLOR", "1")
	t.Setenv("ITEMPICKER_DEBUG", "")
	t.Setenv("ITEMPICKER_LOG_LEVEL", "")
	t.Setenv("ITEMPICKER_LOG_FILE", "")
	t.Setenv("ITEMPICKER_MOUSE", "")

	resetFlags(rootCmd)
	return dir
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// withKeys replaces the terminal runner with one that drives the model
// headlessly and then feeds it input. It returns a pointer to the number
// of times the runner was used.
func withKeys(t *testing.T, input ...tea.Msg) *int {
	t.Helper()
	calls := new(int)
	old := runProgram
	runProgram = func(m tea.Model, mouse bool) (tea.Model, error) {
		*calls++
		return drive(m, input...), nil
	}
	t.Cleanup(func() { runProgram = old })
	return calls
}

// drive runs m the way tea.Program would, without a terminal: every command
// runs synchronously and its message is fed back before the next input.
func drive(m tea.Model, input ...tea.Msg) tea.Model {
	quit := false
	pump := func(cmds ...tea.Cmd) {
		for len(cmds) > 0 && !quit {
			cmd := cmds[0]
			cmds = cmds[1:]
			if cmd == nil {
				continue
			}
			switch msg := cmd().(type) {
			case nil:
			case tea.QuitMsg:
				quit = true
			case tea.BatchMsg:
				cmds = append(cmds, msg...)
			default:
				if seq, ok := asCmds(msg); ok {
					cmds = append(seq, cmds...)
					continue
				}
				var next tea.Cmd
				m, next = m.Update(msg)
				cmds = append(cmds, next)
			}
		}
	}

	pump(m.Init())
	for _, msg := range input {
		if quit {
			break
		}
		var cmd tea.Cmd
		m, cmd = m.Update(msg)
		pump(cmd)
	}
	return m
}

// asCmds unpacks the message produced by tea.Sequence.
func asCmds(msg tea.Msg) ([]tea.Cmd, bool) {
	v := reflect.ValueOf(msg)
	if v.Kind() != reflect.Slice || v.Type().Elem() != reflect.TypeOf(tea.Cmd(nil)) {
		return nil, false
	}
	cmds := make([]tea.Cmd, v.Len())
	for i := range cmds {
		cmds[i], _ = v.Index(i).Interface().(tea.Cmd)
	}
	return cmds, true
}

// execute runs the root command with args and stdin, returning stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetIn(strings.NewReader(stdin))
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}
