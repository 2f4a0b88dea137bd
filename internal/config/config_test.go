package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/finquery/finquery/internal/core"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load with defaults failed: %v", err)
	}

	if cfg.Capability.Provider != "eastmoney" {
		t.Errorf("expected eastmoney provider, got %s", cfg.Capability.Provider)
	}
	if cfg.Capability.Timeout != 10*time.Second {
		t.Errorf("expected 10s timeout, got %s", cfg.Capability.Timeout)
	}
	if cfg.Render.Platform != "qq" {
		t.Errorf("expected qq platform, got %s", cfg.Render.Platform)
	}
	if len(cfg.Scripts.Analyze.Command) == 0 {
		t.Error("expected default analyze command")
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
debug: true
query:
  aliases:
    平安银行: "000001"
render:
  platform: telegram
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if !cfg.Debug {
		t.Error("expected debug true")
	}
	if cfg.Query.Aliases["平安银行"] != "000001" {
		t.Errorf("alias not loaded: %v", cfg.Query.Aliases)
	}
	if cfg.Render.Platform != "telegram" {
		t.Errorf("expected telegram, got %s", cfg.Render.Platform)
	}
}

func TestLoad_InvalidPlatform(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("render:\n  platform: wechat\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if !errors.Is(err, core.ErrConfigInvalid) {
		t.Errorf("expected ErrConfigInvalid, got %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	if !errors.Is(err, core.ErrConfigInvalid) {
		t.Errorf("expected ErrConfigInvalid, got %v", err)
	}
}
