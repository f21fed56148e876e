package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/runger/itempicker/internal/config"
)

// debugFlag is set by --debug.
var debugFlag bool

// newLogger returns a logger at the configured level. The TUI owns the
// terminal, so records only go to the log file, which is created on the first
// record. The returned close func is never nil.
func newLogger(cfg *config.Config, paths *config.Paths) (*slog.Logger, func(), error) {
	if debugFlag {
		cfg.Log.Level = "debug"
	}

	path := cfg.Log.File
	if path == "" {
		path = paths.LogFile()
	}
	f := &logFile{path: path}
	return newTextLogger(f, cfg.Log.SlogLevel()), func() { _ = f.Close() }, nil
}

func newTextLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// logFile opens path for appending on the first Write. Writes are
// serialised by the slog handler.
type logFile struct {
	path string
	f    *os.File
	err  error
}

func (l *logFile) Write(p []byte) (int, error) {
	if l.f == nil && l.err == nil {
		l.f, l.err = openLogFile(l.path)
	}
	if l.err != nil {
		return 0, l.err
	}
	return l.f.Write(p)
}

// Close closes the file if it was opened.
func (l *logFile) Close() error {
	if l.f == nil {
		return nil
	}
	err := l.f.Close()
	l.f = nil
	return err
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec // G304: log path is from trusted config
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}
