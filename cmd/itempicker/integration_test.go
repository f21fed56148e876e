//go:build !windows

package main

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
)

// buildBinary compiles itempicker into a temp dir.
func buildBinary(t *testing.T) string {
	t.Helper()
	binPath := filepath.Join(t.TempDir(), "itempicker")
	cmd := exec.Command("go", "build", "-o", binPath, ".")
	cmd.Dir = findCmdDir(t)
	cmd.Env = append(os.Environ(), "CGO_ENABLED=0")
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("go build failed: %v\n%s", err, out)
	}
	return binPath
}

// isolatedEnv points the binary at empty XDG directories and detaches it
// from any controlling terminal.
func isolatedEnv(t *testing.T, cmd *exec.Cmd) {
	t.Helper()
	dir := t.TempDir()
	cmd.Env = append(os.Environ(),
		"HOME="+dir,
		"XDG_CONFIG_HOME="+filepath.Join(dir, "config"),
		"XDG_DATA_HOME="+filepath.Join(dir, "data"),
		"XDG_CACHE_HOME="+filepath.Join(dir, "cache"),
		"TERM=xterm-256color",
		"NO_COLOR=1",
	)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected *exec.ExitError, got %T: %v", err, err)
	}
	return exitErr.ExitCode()
}

// TestIntegration_Binary verifies that the itempicker binary compiles and
// that the paths which do not need a terminal behave.
func TestIntegration_Binary(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	binPath := buildBinary(t)

	t.Run("version", func(t *testing.T) {
		cmd := exec.Command(binPath, "version")
		isolatedEnv(t, cmd)
		out, err := cmd.CombinedOutput()
		if code := exitCode(t, err); code != 0 {
			t.Fatalf("version exited %d: %s", code, out)
		}
		if !strings.Contains(string(out), "itempicker") {
			t.Errorf("unexpected version output: %s", out)
		}
	})

	t.Run("help", func(t *testing.T) {
		cmd := exec.Command(binPath, "--help")
		isolatedEnv(t, cmd)
		out, err := cmd.CombinedOutput()
		if code := exitCode(t, err); code != 0 {
			t.Fatalf("--help exited %d: %s", code, out)
		}
		for _, sub := range []string{"pick", "number", "date", "config"} {
			if !strings.Contains(string(out), sub) {
				t.Errorf("--help should mention %q, got:\n%s", sub, out)
			}
		}
	})

	t.Run("config_get", func(t *testing.T) {
		cmd := exec.Command(binPath, "config", "wheel.row_units")
		isolatedEnv(t, cmd)
		out, err := cmd.Output()
		if code := exitCode(t, err); code != 0 {
			t.Fatalf("config exited %d", code)
		}
		if strings.TrimSpace(string(out)) != "4" {
			t.Errorf("got %q, want 4", out)
		}
	})

	t.Run("no_tty_falls_back", func(t *testing.T) {
		cmd := exec.Command(binPath, "pick", "a", "b")
		isolatedEnv(t, cmd)
		out, err := cmd.Output()
		if code := exitCode(t, err); code != 2 {
			t.Errorf("expected exit 2 without a terminal, got %d", code)
		}
		if len(out) != 0 {
			t.Errorf("stdout must stay empty on fallback, got %q", out)
		}
	})

	t.Run("bad_input_falls_back", func(t *testing.T) {
		cmd := exec.Command(binPath, "pick", "--list", "nope")
		isolatedEnv(t, cmd)
		out, err := cmd.CombinedOutput()
		if code := exitCode(t, err); code != 2 {
			t.Errorf("expected exit 2, got %d: %s", code, out)
		}
		if !strings.Contains(string(out), "unknown list") {
			t.Errorf("expected error message, got %s", out)
		}
	})

	t.Run("unknown_command", func(t *testing.T) {
		cmd := exec.Command(binPath, "unknown-command")
		isolatedEnv(t, cmd)
		out, err := cmd.CombinedOutput()
		if code := exitCode(t, err); code != 2 {
			t.Errorf("expected exit 2, got %d: %s", code, out)
		}
	})
}

// findCmdDir returns the absolute path to cmd/itempicker.
func findCmdDir(t *testing.T) string {
	t.Helper()
	return filepath.Join(findModuleRoot(t), "cmd", "itempicker")
}

// findModuleRoot finds the Go module root by looking for go.mod.
func findModuleRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("cannot get working directory: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("cannot find go.mod in any parent directory")
		}
		dir = parent
	}
}
