package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/oasref-labs/oasref/internal/config"
)

func TestConfigSetRejectsUnknownKey(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	err := configSetCmd.RunE(configSetCmd, []string{"mystery", "x"})
	if err == nil {
		t.Fatal("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), "unknown config key") {
		t.Errorf("unexpected error: %v", err)
	}
	if _, statErr := os.Stat(config.FilePath()); !os.IsNotExist(statErr) {
		t.Errorf("config file should not have been written, stat: %v", statErr)
	}
}

func TestConfigSetAndGetRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	var buf bytes.Buffer
	configSetCmd.SetOut(&buf)
	defer configSetCmd.SetOut(nil)

	if err := configSetCmd.RunE(configSetCmd, []string{"timeout", "45s"}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got := buf.String(); !strings.Contains(got, "Set timeout = 45s") {
		t.Errorf("unexpected set output: %q", got)
	}
	if _, err := os.Stat(filepath.Join(config.Dir(), "config.yaml")); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	buf.Reset()
	configGetCmd.SetOut(&buf)
	defer configGetCmd.SetOut(nil)

	if err := configGetCmd.RunE(configGetCmd, []string{"timeout"}); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "45s" {
		t.Errorf("get timeout = %q, want %q", got, "45s")
	}
}

func TestConfigGetRejectsUnknownKey(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	err := configGetCmd.RunE(configGetCmd, []string{"mirror"})
	if err == nil {
		t.Fatal("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), "unknown config key") {
		t.Errorf("unexpected error: %v", err)
	}
}
