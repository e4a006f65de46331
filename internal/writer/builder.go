// internal/writer/builder.go
package writer

import (
	"errors"
	"time"

	cfg "github.com/qrcodeshare/qrshare/internal/config"
	wmodbus "github.com/qrcodeshare/qrshare/internal/writer/modbus"
)

// BuildPlan converts the status export config into a StatusPlan.
// Assumes config has already passed validation.
func BuildPlan(c cfg.StatusExportConfig) (StatusPlan, error) {
	if !c.Enabled() {
		return StatusPlan{}, errors.New("writer: status export not configured")
	}
	return StatusPlan{
		Endpoint:   c.Endpoint,
		UnitID:     c.UnitID,
		BaseSlot:   *c.StatusSlot,
		DeviceName: c.DeviceName,
	}, nil
}

// Build creates the Modbus-backed status writer for c.
// The returned closer releases the TCP connection.
func Build(c cfg.StatusExportConfig) (StatusWriter, func() error, error) {
	plan, err := BuildPlan(c)
	if err != nil {
		return nil, nil, err
	}

	cli, err := wmodbus.Dial(wmodbus.Config{
		Address: plan.Endpoint,
		Timeout: time.Duration(c.TimeoutMs) * time.Millisecond,
	})
	if err != nil {
		return nil, nil, err
	}

	sw, err := NewStatusWriter(plan, cli)
	if err != nil {
		_ = cli.Close()
		return nil, nil, err
	}
	return sw, cli.Close, nil
}
