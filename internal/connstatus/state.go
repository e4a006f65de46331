// internal/connstatus/state.go
package connstatus

// State is the three-valued summary of server reachability.
type State uint8

const (
	// Checking is the boot state and the state while a check is in flight.
	Checking State = iota
	Online
	Offline
)

func (s State) String() string {
	switch s {
	case Checking:
		return "checking"
	case Online:
		return "online"
	case Offline:
		return "offline"
	default:
		return "unknown"
	}
}
