// internal/writer/types.go
package writer

import "github.com/qrcodeshare/qrshare/internal/status"

// StatusPlan is where the connection status block lives.
type StatusPlan struct {
	Endpoint   string
	UnitID     uint8
	BaseSlot   uint16 // block index; register address = BaseSlot * SlotsPerClient
	DeviceName string
}

// StatusWriter is the delivery-only contract for connection status.
// It receives a snapshot and writes it verbatim.
type StatusWriter interface {
	WriteStatus(s status.Snapshot) error
}

// endpointClient is the exact contract the writer uses.
type endpointClient interface {
	WriteRegisters(unitID uint8, addr uint16, regs []uint16) error
}
