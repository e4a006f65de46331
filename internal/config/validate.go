// internal/config/validate.go
package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config: nil")
	}

	if h := cfg.Server.Host; h != "" {
		raw := h
		if !strings.Contains(raw, "://") {
			raw = "http://" + raw
		}
		u, err := url.Parse(raw)
		if err != nil || u.Host == "" {
			return fmt.Errorf("server.host %q: not a valid address", h)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("server.host %q: unsupported scheme %q", h, u.Scheme)
		}
	}

	if cfg.Server.TimeoutMs < 0 {
		return fmt.Errorf("server.timeout_ms must be >= 0")
	}

	// id is an integer in the server contract
	if id := cfg.Identity.ID; id != "" {
		if _, err := strconv.Atoi(id); err != nil {
			return fmt.Errorf("identity.id %q: must be an integer", id)
		}
	}

	if cfg.Download.FollowUserID < 0 {
		return fmt.Errorf("download.follow_user_id must be >= 0")
	}
	if cfg.Download.IntervalMs < 0 {
		return fmt.Errorf("download.interval_ms must be >= 0")
	}
	for id, name := range cfg.Download.FollowUsers {
		if id <= 0 {
			return fmt.Errorf("download.follow_users: id %d must be > 0", id)
		}
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("download.follow_users: id %d has an empty name", id)
		}
	}

	if cfg.StatusCheck.IntervalMs < 0 {
		return fmt.Errorf("status_check.interval_ms must be >= 0")
	}

	// ------------------------------------------------------------
	// STATUS EXPORT VALIDATION (OPT-IN)
	// ------------------------------------------------------------

	se := cfg.StatusExport
	for i := 0; i < len(se.DeviceName); i++ {
		if se.DeviceName[i] > 0x7F {
			return fmt.Errorf("status_export.device_name must contain ASCII characters only")
		}
	}
	if se.StatusSlot != nil && se.Endpoint == "" {
		return fmt.Errorf("status_export: status_slot is set but no endpoint is defined")
	}
	if se.Endpoint != "" && se.StatusSlot == nil {
		return fmt.Errorf("status_export: endpoint %q has no status_slot", se.Endpoint)
	}
	if se.StatusSlot != nil && *se.StatusSlot > 3275 {
		// 20 registers per slot must fit the 16-bit address space
		return fmt.Errorf("status_export.status_slot %d out of range", *se.StatusSlot)
	}

	return nil
}
