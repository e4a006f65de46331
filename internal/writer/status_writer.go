// internal/writer/status_writer.go
package writer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/qrcodeshare/qrshare/internal/status"
)

// connStatusWriter mirrors the connection status block into holding registers.
type connStatusWriter struct {
	plan StatusPlan
	cli  endpointClient

	needFull bool
	last     status.Snapshot
}

// NewStatusWriter builds a status writer for plan.
func NewStatusWriter(plan StatusPlan, cli endpointClient) (StatusWriter, error) {
	if cli == nil {
		return nil, fmt.Errorf("status writer: missing client for endpoint %s", plan.Endpoint)
	}
	if int(plan.BaseSlot)*status.SlotsPerClient+status.SlotsPerClient-1 > 0xFFFF {
		return nil, fmt.Errorf("status writer: slot %d out of range", plan.BaseSlot)
	}
	return &connStatusWriter{
		plan:     plan,
		cli:      cli,
		needFull: true, // full re-assert on first successful write
		last:     status.Snapshot{Health: status.HealthUnknown},
	}, nil
}

// WriteStatus delivers a snapshot into status memory.
// On any write failure, the next call re-asserts the full block.
func (sw *connStatusWriter) WriteStatus(s status.Snapshot) error {
	if sw == nil {
		return errors.New("status writer: disabled")
	}

	base := sw.baseAddr()

	// ------------------------------------------------------------
	// Full block write (identity re-assert)
	// ------------------------------------------------------------
	if sw.needFull {
		if err := sw.cli.WriteRegisters(sw.plan.UnitID, base, status.Encode(s, sw.plan.DeviceName)); err != nil {
			return fmt.Errorf("status writer: full block write failed: %w", err)
		}
		sw.needFull = false
		sw.last = s
		return nil
	}

	var errs []string

	write := func(slot uint16, name string, cur *uint16, v uint16) {
		if *cur == v {
			return
		}
		if err := sw.cli.WriteRegisters(sw.plan.UnitID, base+slot, []uint16{v}); err != nil {
			errs = append(errs, fmt.Sprintf("slot%d %s write failed: %v", slot, name, err))
			return
		}
		*cur = v
	}

	write(status.SlotHealthCode, "health", &sw.last.Health, s.Health)
	write(status.SlotLastErrorCode, "last_error", &sw.last.LastErrorCode, s.LastErrorCode)
	write(status.SlotSecondsInError, "seconds", &sw.last.SecondsInError, s.SecondsInError)

	if len(errs) > 0 {
		// Any partial failure introduces doubt, re-assert on next call.
		sw.needFull = true
		return errors.New("status writer: " + strings.Join(errs, " | "))
	}

	return nil
}

func (sw *connStatusWriter) baseAddr() uint16 {
	return sw.plan.BaseSlot * status.SlotsPerClient
}
