// internal/status/constants.go
package status

// Connection status block layout constants.
// These values define the register protocol and MUST NOT be configurable.

// ---- BLOCK GEOMETRY ----

// SlotsPerClient is the fixed number of registers per client block.
const SlotsPerClient = 20

// ---- SLOT INDICES ----

// SlotHealthCode holds the connection health.
const SlotHealthCode = 0

// SlotLastErrorCode holds the HTTP status (or 1 for transport) behind the last offline transition.
const SlotLastErrorCode = 1

// SlotSecondsInError holds how long (in seconds) the client has not been online.
const SlotSecondsInError = 2

// ---- RESERVED RANGE ----

// Slots 3-10 are reserved.
const (
	SlotReservedStart = 3
	SlotReservedEnd   = 10
)

// ---- CLIENT NAME ----

// SlotNameStart is the first slot used for the client name.
// The name always sits at the END of the block.
const SlotNameStart = 11

// SlotNameSlots is the number of slots reserved for the name.
const SlotNameSlots = 8

// SlotNameEnd is the last slot used for the name (inclusive).
const SlotNameEnd = SlotNameStart + SlotNameSlots - 1

// ---- LIMITS ----

// NameMaxChars is the maximum number of ASCII characters stored for the name.
const NameMaxChars = 16

// MaxSecondsInError is where the seconds counter saturates.
const MaxSecondsInError = 65535

// ---- HEALTH CODES ----

// HealthUnknown is the boot state and the state while a check is in flight.
const HealthUnknown uint16 = 0

// HealthOK means the server is reachable.
const HealthOK uint16 = 1

// HealthError means the server is unreachable or refusing the credentials.
const HealthError uint16 = 2
