package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.MaxSteps <= 0 {
		t.Error("expected a positive default max_steps")
	}
	if cfg.OutputFormat != "text" {
		t.Errorf("got %q, want text", cfg.OutputFormat)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("got %+v, want defaults", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	content := "max_steps: 500\noutput_format: json\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MaxSteps != 500 {
		t.Errorf("MaxSteps = %d, want 500", cfg.MaxSteps)
	}
	if cfg.OutputFormat != "json" {
		t.Errorf("OutputFormat = %q, want json", cfg.OutputFormat)
	}
	if cfg.MaxCallDepth != Default().MaxCallDepth {
		t.Errorf("MaxCallDepth = %d, want untouched default %d", cfg.MaxCallDepth, Default().MaxCallDepth)
	}
}
