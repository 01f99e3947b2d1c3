package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv() {
	for _, key := range []string{
		"APP_NAME", "LOG_LEVEL", "DATA_DIR", "MENU_FILE", "MENU_GAP",
		"SSH_ADDR", "WEB_TERMINAL_ADDR",
	} {
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.AppName != "morenav" {
		t.Errorf("AppName = %q, want %q", cfg.AppName, "morenav")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.MenuFile != "" {
		t.Errorf("MenuFile = %q, want empty", cfg.MenuFile)
	}
	if cfg.MenuGap != 1 {
		t.Errorf("MenuGap = %d, want 1", cfg.MenuGap)
	}
	if cfg.SSHAddr != ":2222" {
		t.Errorf("SSHAddr = %q, want :2222", cfg.SSHAddr)
	}
	if cfg.WebTerminalAddr != "127.0.0.1:8080" {
		t.Errorf("WebTerminalAddr = %q, want 127.0.0.1:8080", cfg.WebTerminalAddr)
	}
	if !filepath.IsAbs(cfg.DataDir) {
		t.Errorf("DataDir should be absolute, got %q", cfg.DataDir)
	}
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv()
	t.Setenv("APP_NAME", "navtest")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("MENU_FILE", "menu.yaml")
	t.Setenv("MENU_GAP", "3")
	t.Setenv("SSH_ADDR", ":2323")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.AppName != "navtest" {
		t.Errorf("AppName = %q, want navtest", cfg.AppName)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if filepath.Base(cfg.MenuFile) != "menu.yaml" || !filepath.IsAbs(cfg.MenuFile) {
		t.Errorf("MenuFile = %q, want absolute path ending in menu.yaml", cfg.MenuFile)
	}
	if cfg.MenuGap != 3 {
		t.Errorf("MenuGap = %d, want 3", cfg.MenuGap)
	}
	if cfg.SSHAddr != ":2323" {
		t.Errorf("SSHAddr = %q, want :2323", cfg.SSHAddr)
	}
}

func TestLoadInvalidIntFallsBack(t *testing.T) {
	clearEnv()
	t.Setenv("MENU_GAP", "wide")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MenuGap != 1 {
		t.Errorf("MenuGap = %d, want fallback 1", cfg.MenuGap)
	}
}

func TestValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"negative gap", map[string]string{"MENU_GAP": "-1"}},
		{"unknown log level", map[string]string{"LOG_LEVEL": "loud"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv()
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
