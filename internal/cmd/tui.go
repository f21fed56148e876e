package cmd

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/runger/itempicker/internal/config"
)

// session is what every picker command needs before it can draw.
type session struct {
	cfg    *config.Config
	paths  *config.Paths
	logger *slog.Logger
	close  func()
}

// openSession loads config and opens the debug log.
func openSession() (*session, error) {
	paths := config.DefaultPaths()
	cfg, err := config.LoadFromFile(paths.ConfigFile())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger, closeLog, err := newLogger(cfg, paths)
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, paths: paths, logger: logger, close: closeLog}, nil
}

// programRunner runs a Bubble Tea model to completion and returns the final
// model.
type programRunner func(m tea.Model, mouse bool) (tea.Model, error)

// runProgram is replaced in tests.
var runProgram programRunner = runOnTTY

// run performs the pre-flight checks, takes the single-instance lock and
// runs m.
func (s *session) run(m tea.Model) (tea.Model, error) {
	if err := checkTERM(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(s.paths.CacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	lockFd, err := acquireLock(s.paths.LockFile())
	if err != nil {
		return nil, err
	}
	defer releaseLock(lockFd)

	s.logger.Debug("picker starting", "model", fmt.Sprintf("%T", m))
	final, err := runProgram(m, s.cfg.Wheel.Mouse)
	if err != nil {
		return nil, fmt.Errorf("TUI error: %w", err)
	}
	return final, nil
}

// checkTERM verifies that the TERM environment variable is not "dumb".
func checkTERM() error {
	if os.Getenv("TERM") == "dumb" {
		return fmt.Errorf("TERM=dumb is not supported")
	}
	return nil
}

// runOnTTY runs the program on /dev/tty since stdin/stdout are used for data.
func runOnTTY(m tea.Model, mouse bool) (tea.Model, error) {
	tty, err := openTTY()
	if err != nil {
		return nil, err
	}
	defer tty.Close()

	if err := checkTermWidth(tty); err != nil {
		return nil, err
	}

	// When invoked via $(itempicker ...), stdout is a pipe so lipgloss
	// defaults to Ascii (no color). Detect from the real tty instead.
	lipgloss.SetColorProfile(termenv.NewOutput(tty).ColorProfile())

	opts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithInput(tty),
		tea.WithOutput(tty),
	}
	if mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	return tea.NewProgram(m, opts...).Run()
}
