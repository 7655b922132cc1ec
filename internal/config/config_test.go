package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GLITTER_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Autosave.EnableDelay != 1500*time.Millisecond {
		t.Errorf("EnableDelay = %v, want 1.5s", cfg.Autosave.EnableDelay)
	}
	if cfg.Autosave.MinInterval != time.Second {
		t.Errorf("MinInterval = %v, want 1s", cfg.Autosave.MinInterval)
	}
	if cfg.Snapshot.MaxAge != 24*time.Hour {
		t.Errorf("MaxAge = %v, want 24h", cfg.Snapshot.MaxAge)
	}
	if cfg.UI.PageSizeDesktop != 25 || cfg.UI.PageSizePhone != 10 {
		t.Errorf("page sizes = %d/%d, want 25/10", cfg.UI.PageSizeDesktop, cfg.UI.PageSizePhone)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `[autosave]
enable_delay = "3s"

[snapshot]
max_age = "48h"

[ui]
page_size_desktop = 40
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("GLITTER_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Autosave.EnableDelay != 3*time.Second {
		t.Errorf("EnableDelay = %v, want 3s", cfg.Autosave.EnableDelay)
	}
	if cfg.Snapshot.MaxAge != 48*time.Hour {
		t.Errorf("MaxAge = %v, want 48h", cfg.Snapshot.MaxAge)
	}
	if cfg.UI.PageSizeDesktop != 40 {
		t.Errorf("PageSizeDesktop = %d, want 40", cfg.UI.PageSizeDesktop)
	}
	// untouched keys keep their defaults
	if cfg.Autosave.MinInterval != time.Second {
		t.Errorf("MinInterval = %v, want default 1s", cfg.Autosave.MinInterval)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	t.Setenv("GLITTER_CONFIG", path)

	in, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	in.Autosave.MinInterval = 2 * time.Second
	if err := Save(in); err != nil {
		t.Fatalf("Save: %v", err)
	}

	out, err := Load()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if out.Autosave.MinInterval != 2*time.Second {
		t.Errorf("MinInterval = %v, want 2s", out.Autosave.MinInterval)
	}
}
