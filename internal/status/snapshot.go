// internal/status/snapshot.go
package status

import "github.com/qrcodeshare/qrshare/internal/connstatus"

// Snapshot represents exactly what the writer is allowed to deliver.
// It contains no logic and no memory of the past beyond current state.
type Snapshot struct {
	Health         uint16
	LastErrorCode  uint16
	SecondsInError uint16
}

// HealthOf maps a connection state to a health code.
func HealthOf(s connstatus.State) uint16 {
	switch s {
	case connstatus.Online:
		return HealthOK
	case connstatus.Offline:
		return HealthError
	default:
		return HealthUnknown
	}
}
