// internal/config/normalize.go
package config

import "strings"

// Default values.
const (
	DefaultTimeoutMs       = 2500
	DefaultPollIntervalMs  = 500
	DefaultCheckIntervalMs = 5 * 60 * 1000
	DefaultExportTimeoutMs = 2000

	// DeviceNameMaxChars matches the status block name capacity.
	DeviceNameMaxChars = 16
)

// Normalize fills defaults and trims values.
// It is allowed to mutate configuration.
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	cfg.Server.Host = strings.TrimRight(strings.TrimSpace(cfg.Server.Host), "/")
	cfg.Identity.ID = strings.TrimSpace(cfg.Identity.ID)

	if cfg.Server.TimeoutMs <= 0 {
		cfg.Server.TimeoutMs = DefaultTimeoutMs
	}
	if cfg.Download.IntervalMs <= 0 {
		cfg.Download.IntervalMs = DefaultPollIntervalMs
	}
	if cfg.StatusCheck.IntervalMs <= 0 {
		cfg.StatusCheck.IntervalMs = DefaultCheckIntervalMs
	}
	if cfg.Download.FollowUsers == nil {
		cfg.Download.FollowUsers = map[int]string{}
	}

	// ------------------------------------------------------------
	// STATUS EXPORT NORMALIZATION (OPT-IN)
	// ------------------------------------------------------------

	if cfg.StatusExport.StatusSlot == nil {
		return
	}
	if cfg.StatusExport.TimeoutMs <= 0 {
		cfg.StatusExport.TimeoutMs = DefaultExportTimeoutMs
	}
	if len(cfg.StatusExport.DeviceName) > DeviceNameMaxChars {
		cfg.StatusExport.DeviceName = cfg.StatusExport.DeviceName[:DeviceNameMaxChars]
	}
}
