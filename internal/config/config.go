package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Environment variables recognised by ApplyEnv.
const (
	EnvBotToken = "BOT_TOKEN"
	EnvHome     = "ZOZH_HOME"
	EnvTimezone = "ZOZH_TIMEZONE"
	EnvLogLevel = "ZOZH_LOG_LEVEL"
)

// Config holds application configuration.
type Config struct {
	// BotToken is the Telegram bot API token.
	// Prefer BOT_TOKEN in the environment (or .env) over storing it here.
	BotToken string `json:"bot_token,omitempty"`

	// Timezone is the IANA zone whose calendar days bound daily totals
	// and the midnight summary. Empty or "Local" means the process zone.
	Timezone string `json:"timezone,omitempty"`

	// LogLevel is a zerolog level name (debug, info, warn, error).
	LogLevel string `json:"log_level,omitempty"`

	// PollTimeoutSeconds is the Telegram long-polling timeout.
	PollTimeoutSeconds int `json:"poll_timeout_seconds,omitempty"`

	// DBMaxOpenConns limits the maximum number of open database connections.
	// 0 means use sql.DB default (unlimited).
	DBMaxOpenConns int `json:"db_max_open_conns,omitempty"`

	// DBMaxIdleConns limits the maximum number of idle database connections.
	// 0 means use sql.DB default.
	DBMaxIdleConns int `json:"db_max_idle_conns,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	// Unknown tool names are logged as warnings.
	DisabledTools []string `json:"disabled_tools,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:           "info",
		PollTimeoutSeconds: 30,
	}
}

// DefaultBaseDir returns the data directory: $ZOZH_HOME if set, otherwise
// ~/.zozh.
func DefaultBaseDir() (string, error) {
	if dir := strings.TrimSpace(os.Getenv(EnvHome)); dir != "" {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".zozh"), nil
}

// Load loads configuration from baseDir/config.json.
// Returns default config if the file doesn't exist.
func Load(baseDir string) (*Config, error) {
	return loadFile(filepath.Join(baseDir, "config.json"))
}

// loadFileRaw loads configuration from a specific file path.
// Returns zero-valued config if the file doesn't exist (not defaults).
func loadFileRaw(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFile loads configuration from a specific file path.
// Returns default config if the file doesn't exist.
func loadFile(configPath string) (*Config, error) {
	cfg, err := loadFileRaw(configPath)
	if err != nil {
		return nil, err
	}
	return Merge(DefaultConfig(), cfg), nil
}

// ApplyEnv overlays environment values on cfg. getenv is usually os.Getenv.
func ApplyEnv(cfg *Config, getenv func(string) string) *Config {
	return Merge(cfg, &Config{
		BotToken: strings.TrimSpace(getenv(EnvBotToken)),
		Timezone: strings.TrimSpace(getenv(EnvTimezone)),
		LogLevel: strings.TrimSpace(getenv(EnvLogLevel)),
	})
}

// Merge combines base and overlay configs.
// Overlay values take precedence for scalars; arrays are merged and deduplicated.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	result.BotToken = firstNonEmpty(overlay.BotToken, base.BotToken)
	result.Timezone = firstNonEmpty(overlay.Timezone, base.Timezone)
	result.LogLevel = firstNonEmpty(overlay.LogLevel, base.LogLevel)

	result.PollTimeoutSeconds = overlay.PollTimeoutSeconds
	if result.PollTimeoutSeconds == 0 {
		result.PollTimeoutSeconds = base.PollTimeoutSeconds
	}

	result.DBMaxOpenConns = overlay.DBMaxOpenConns
	if result.DBMaxOpenConns == 0 {
		result.DBMaxOpenConns = base.DBMaxOpenConns
	}

	result.DBMaxIdleConns = overlay.DBMaxIdleConns
	if result.DBMaxIdleConns == 0 {
		result.DBMaxIdleConns = base.DBMaxIdleConns
	}

	result.DisabledTools = mergeStringSlice(base.DisabledTools, overlay.DisabledTools)

	return result
}

// Location resolves Timezone. An empty value or "Local" yields time.Local.
func (c *Config) Location() (*time.Location, error) {
	tz := strings.TrimSpace(c.Timezone)
	if tz == "" || tz == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	return loc, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// mergeStringSlice combines two slices, trims whitespace, and removes duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range append(append([]string{}, a...), b...) {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}
