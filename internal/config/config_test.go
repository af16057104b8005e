package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_DefaultWhenMissing(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.PollTimeoutSeconds != 30 {
		t.Errorf("PollTimeoutSeconds = %d, want 30", cfg.PollTimeoutSeconds)
	}
}

func TestLoad_OverridesFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	data := `{"timezone": "Europe/Moscow", "log_level": "debug", "db_max_open_conns": 1}`
	if err := os.WriteFile(configPath, []byte(data), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Timezone != "Europe/Moscow" {
		t.Errorf("Timezone = %q, want %q", cfg.Timezone, "Europe/Moscow")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.DBMaxOpenConns != 1 {
		t.Errorf("DBMaxOpenConns = %d, want 1", cfg.DBMaxOpenConns)
	}
	// Unset fields keep their defaults.
	if cfg.PollTimeoutSeconds != 30 {
		t.Errorf("PollTimeoutSeconds = %d, want 30", cfg.PollTimeoutSeconds)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	if err := os.WriteFile(configPath, []byte(`{not json}`), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := Load(tmpDir); err == nil {
		t.Fatalf("Load() expected error, got nil")
	}
}

func TestLoad_DisabledTools(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	if err := os.WriteFile(configPath, []byte(`{"disabled_tools": ["meal_log", " meal_log ", "meal_summary"]}`), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cfg.DisabledTools) != 2 {
		t.Fatalf("DisabledTools = %v, want 2 entries", cfg.DisabledTools)
	}
	if cfg.DisabledTools[0] != "meal_log" || cfg.DisabledTools[1] != "meal_summary" {
		t.Errorf("DisabledTools = %v", cfg.DisabledTools)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvBotToken: " 123:abc ",
		EnvTimezone: "Asia/Almaty",
	}
	base := &Config{BotToken: "from-file", Timezone: "Europe/Moscow", LogLevel: "warn", PollTimeoutSeconds: 10}

	cfg := ApplyEnv(base, func(k string) string { return env[k] })

	if cfg.BotToken != "123:abc" {
		t.Errorf("BotToken = %q, want %q", cfg.BotToken, "123:abc")
	}
	if cfg.Timezone != "Asia/Almaty" {
		t.Errorf("Timezone = %q, want %q", cfg.Timezone, "Asia/Almaty")
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want %q (unset env keeps file value)", cfg.LogLevel, "warn")
	}
	if cfg.PollTimeoutSeconds != 10 {
		t.Errorf("PollTimeoutSeconds = %d, want 10", cfg.PollTimeoutSeconds)
	}
}

func TestMerge_OverlayWins(t *testing.T) {
	base := &Config{LogLevel: "info", DBMaxIdleConns: 2, DisabledTools: []string{"a"}}
	overlay := &Config{LogLevel: "debug", DisabledTools: []string{"b", "a"}}

	got := Merge(base, overlay)

	if got.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", got.LogLevel)
	}
	if got.DBMaxIdleConns != 2 {
		t.Errorf("DBMaxIdleConns = %d, want 2", got.DBMaxIdleConns)
	}
	if len(got.DisabledTools) != 2 || got.DisabledTools[0] != "a" || got.DisabledTools[1] != "b" {
		t.Errorf("DisabledTools = %v, want [a b]", got.DisabledTools)
	}
}

func TestMerge_EmptySlicesStayNil(t *testing.T) {
	got := Merge(&Config{}, &Config{DisabledTools: []string{" ", ""}})
	if got.DisabledTools != nil {
		t.Errorf("DisabledTools = %v, want nil", got.DisabledTools)
	}
}

func TestLocation(t *testing.T) {
	for _, tz := range []string{"", "Local"} {
		loc, err := (&Config{Timezone: tz}).Location()
		if err != nil {
			t.Fatalf("Location(%q) error = %v", tz, err)
		}
		if loc != time.Local {
			t.Errorf("Location(%q) = %v, want Local", tz, loc)
		}
	}

	loc, err := (&Config{Timezone: "UTC"}).Location()
	if err != nil {
		t.Fatalf("Location(UTC) error = %v", err)
	}
	if loc.String() != "UTC" {
		t.Errorf("Location(UTC) = %v", loc)
	}

	if _, err := (&Config{Timezone: "Mars/Olympus"}).Location(); err == nil {
		t.Error("Location(Mars/Olympus) expected error")
	}
}

func TestDefaultBaseDir_FromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvHome, dir)

	got, err := DefaultBaseDir()
	if err != nil {
		t.Fatalf("DefaultBaseDir() error = %v", err)
	}
	if got != dir {
		t.Errorf("DefaultBaseDir() = %q, want %q", got, dir)
	}
}
