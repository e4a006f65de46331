// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Identity     IdentityConfig     `yaml:"identity"`
	Download     DownloadConfig     `yaml:"download"`
	StatusCheck  StatusCheckConfig  `yaml:"status_check"`
	StatusExport StatusExportConfig `yaml:"status_export"`
}

// ---- SERVER ----

type ServerConfig struct {
	Host      string `yaml:"host"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

// ---- IDENTITY ----

// IdentityConfig holds the ad hoc id/auth query credentials.
type IdentityConfig struct {
	ID   string `yaml:"id"`
	Auth string `yaml:"auth"`
}

// ---- DOWNLOAD ----

type DownloadConfig struct {
	FollowUserID int            `yaml:"follow_user_id"`
	FollowUsers  map[int]string `yaml:"follow_users"` // id => display name
	IntervalMs   int            `yaml:"interval_ms"`
}

// ---- CONNECTION CHECK ----

type StatusCheckConfig struct {
	IntervalMs int `yaml:"interval_ms"`
}

// ---- STATUS EXPORT (optional, opt-in) ----

type StatusExportConfig struct {
	Endpoint   string  `yaml:"endpoint"`
	UnitID     uint8   `yaml:"unit_id"`
	StatusSlot *uint16 `yaml:"status_slot"`
	DeviceName string  `yaml:"device_name"`
	TimeoutMs  int     `yaml:"timeout_ms"`
}

// Enabled reports whether the Modbus status mirror is configured.
func (s StatusExportConfig) Enabled() bool {
	return s.Endpoint != "" && s.StatusSlot != nil
}

// Timeout returns the request timeout for the API client.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Server.TimeoutMs) * time.Millisecond
}

// PollInterval returns the minimum spacing between download fetches.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Download.IntervalMs) * time.Millisecond
}

// CheckPeriod returns the periodic connection check period.
func (c *Config) CheckPeriod() time.Duration {
	return time.Duration(c.StatusCheck.IntervalMs) * time.Millisecond
}

// Configured reports whether host, id and auth are all present.
func (c *Config) Configured() bool {
	return c.Server.Host != "" && c.Identity.ID != "" && c.Identity.Auth != ""
}

// DefaultPath returns $QRSHARE_CONFIG or ~/.config/qrshare/config.yaml.
func DefaultPath() string {
	if p := os.Getenv("QRSHARE_CONFIG"); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "qrshare.yaml"
	}
	return filepath.Join(dir, "qrshare", "config.yaml")
}

// Load reads a YAML config file, applies environment overrides and
// normalizes defaults. A missing file yields the default config.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// defaults only
	default:
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	applyEnv(cfg)
	Normalize(cfg)
	return cfg, nil
}

// Save writes cfg to path atomically.
func Save(path string, cfg *Config) error {
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".config-*.tmp")
	if err != nil {
		return fmt.Errorf("config: create temp: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("config: write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("config: close temp: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return fmt.Errorf("config: chmod: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("config: rename: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("QRSHARE_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("QRSHARE_ID"); v != "" {
		cfg.Identity.ID = v
	}
	if v := os.Getenv("QRSHARE_AUTH"); v != "" {
		cfg.Identity.Auth = v
	}
	if v := os.Getenv("QRSHARE_FOLLOW"); v != "" {
		if id, err := strconv.Atoi(v); err == nil {
			cfg.Download.FollowUserID = id
		}
	}
}
