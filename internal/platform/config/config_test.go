package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"medtrack/internal/platform/config"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Parallel()
	home := t.TempDir()
	cfg, err := config.Load(home)
	if err != nil {
		t.Fatalf("load without config file: %v", err)
	}
	if cfg.BaseURL != config.DefaultBaseURL {
		t.Fatalf("expected default base url, got %s", cfg.BaseURL)
	}
	if cfg.RequestTimeout != 15*time.Second {
		t.Fatalf("expected 15s default timeout, got %s", cfg.RequestTimeout)
	}
	if cfg.TokenPath != filepath.Join(home, "token.json") {
		t.Fatalf("unexpected token path %s", cfg.TokenPath)
	}
}

func TestLoadAppliesOverrides(t *testing.T) {
	t.Parallel()
	home := t.TempDir()
	payload := "base_url: https://api.example.org/v1\nrequest_timeout: 3s\n"
	if err := os.WriteFile(filepath.Join(home, "config.yaml"), []byte(payload), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := config.Load(home)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BaseURL != "https://api.example.org/v1" {
		t.Fatalf("base_url override not applied: %s", cfg.BaseURL)
	}
	if cfg.RequestTimeout != 3*time.Second {
		t.Fatalf("request_timeout override not applied: %s", cfg.RequestTimeout)
	}
}

func TestLoadRejectsBadTimeout(t *testing.T) {
	t.Parallel()
	home := t.TempDir()
	if err := os.WriteFile(filepath.Join(home, "config.yaml"), []byte("request_timeout: soon\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := config.Load(home); err == nil {
		t.Fatalf("expected error for unparseable timeout")
	}
	if err := os.WriteFile(filepath.Join(home, "config.yaml"), []byte("request_timeout: -2s\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := config.Load(home); err == nil {
		t.Fatalf("expected error for negative timeout")
	}
}
