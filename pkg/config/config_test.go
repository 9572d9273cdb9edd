package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/odvcencio/stax/pkg/errors"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.TickRate != DefaultTickRate {
		t.Fatalf("expected default tick rate, got %v", cfg.TickRate)
	}
	if cfg.Provider.BaseURL != DefaultProviderURL {
		t.Fatalf("expected default provider URL, got %q", cfg.Provider.BaseURL)
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.FrameRate != DefaultFrameRate {
		t.Fatalf("expected default frame rate, got %v", cfg.FrameRate)
	}
}

func TestLoadOverlaysFileOnDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
tick_rate: 100ms
provider:
  base_url: https://inv.example
  timeout: 5s
  max_results: 3
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.TickRate != 100*time.Millisecond {
		t.Fatalf("expected overridden tick rate, got %v", cfg.TickRate)
	}
	if cfg.FrameRate != DefaultFrameRate {
		t.Fatalf("expected frame rate default preserved, got %v", cfg.FrameRate)
	}
	if cfg.Provider.BaseURL != "https://inv.example" || cfg.Provider.MaxResults != 3 {
		t.Fatalf("unexpected provider config: %+v", cfg.Provider)
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("tick_rate: [broken"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !errors.HasCode(err, errors.CodeConfigParse) {
		t.Fatalf("expected CONFIG_PARSE, got %v", err)
	}
}

func TestValidateRejectsNonPositiveRates(t *testing.T) {
	cases := map[string]func(*Config){
		"tick":        func(c *Config) { c.TickRate = 0 },
		"frame":       func(c *Config) { c.FrameRate = -time.Second },
		"timeout":     func(c *Config) { c.Provider.Timeout = 0 },
		"max_results": func(c *Config) { c.Provider.MaxResults = 0 },
	}
	for name, mutate := range cases {
		cfg := Default()
		mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", name)
		} else if !errors.HasCode(err, errors.CodeConfigParse) {
			t.Errorf("%s: expected CONFIG_PARSE, got %v", name, err)
		}
	}
}

func TestWatchFiresOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keybindings.yaml")
	if err := os.WriteFile(path, []byte("global: {}\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fired := make(chan struct{}, 1)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func() {
			select {
			case fired <- struct{}{}:
			default:
			}
		})
	}()

	// Give the watcher a moment to register before mutating the file.
	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(path, []byte("global:\n  q: quit\n"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("watch never fired")
	}

	cancel()
	if err := <-done; err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestWatchIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keybindings.yaml")
	if err := os.WriteFile(path, []byte("global: {}\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fired := make(chan struct{}, 1)
	go Watch(ctx, path, func() {
		select {
		case fired <- struct{}{}:
		default:
		}
	})

	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0o644); err != nil {
		t.Fatalf("write sibling: %v", err)
	}

	select {
	case <-fired:
		t.Fatal("watch fired for an unrelated file")
	case <-time.After(300 * time.Millisecond):
	}
}
