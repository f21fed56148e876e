package cmd

import (
	"strings"
	"testing"

	"github.com/runger/itempicker/internal/config"
)

func TestConfigCmd_List(t *testing.T) {
	isolate(t)

	out, err := execute(t, "", "config")
	if err != nil {
		t.Fatalf("config failed: %v", err)
	}

	for _, key := range []string{"wheel.row_units", "wheel.divider_char", "log.level", "lists.months"} {
		if !strings.Contains(out, key) {
			t.Errorf("expected %q in listing:\n%s", key, out)
		}
	}
	if !strings.Contains(out, config.DefaultPaths().ConfigFile()) {
		t.Errorf("expected config file path in listing:\n%s", out)
	}
}

func TestConfigCmd_Get(t *testing.T) {
	isolate(t)

	out, err := execute(t, "", "config", "wheel.row_units")
	if err != nil {
		t.Fatalf("config get failed: %v", err)
	}
	if out != "4\n" {
		t.Errorf("got %q, want %q", out, "4\n")
	}
}

func TestConfigCmd_GetUnset(t *testing.T) {
	isolate(t)

	out, err := execute(t, "", "config", "log.file")
	if err != nil {
		t.Fatalf("config get failed: %v", err)
	}
	if !strings.Contains(out, "(not set)") {
		t.Errorf("got %q, want (not set)", out)
	}
}

func TestConfigCmd_SetPersists(t *testing.T) {
	isolate(t)

	if _, err := execute(t, "", "config", "wheel.row_units", "8"); err != nil {
		t.Fatalf("config set failed: %v", err)
	}

	cfg, err := config.LoadFromFile(config.DefaultPaths().ConfigFile())
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if cfg.Wheel.RowUnits != 8 {
		t.Errorf("RowUnits = %d, want 8", cfg.Wheel.RowUnits)
	}
}

func TestConfigCmd_SetList(t *testing.T) {
	isolate(t)

	if _, err := execute(t, "", "config", "lists.sizes", "S M L"); err != nil {
		t.Fatalf("config set failed: %v", err)
	}
	out, err := execute(t, "", "config", "lists.sizes")
	if err != nil {
		t.Fatalf("config get failed: %v", err)
	}
	if out != "S M L\n" {
		t.Errorf("got %q, want %q", out, "S M L\n")
	}
}

func TestConfigCmd_SetInvalid(t *testing.T) {
	isolate(t)

	_, err := execute(t, "", "config", "wheel.row_units", "99")
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "invalid configuration") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestConfigCmd_UnknownKey(t *testing.T) {
	isolate(t)

	if _, err := execute(t, "", "config", "wheel.nope"); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestVersionCmd(t *testing.T) {
	isolate(t)

	out, err := execute(t, "", "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.HasPrefix(out, "itempicker "+Version) {
		t.Errorf("unexpected version output: %q", out)
	}
}
