// internal/status/encode_test.go
package status

import (
	"testing"

	"github.com/qrcodeshare/qrshare/internal/connstatus"
)

func TestEncode_Layout(t *testing.T) {
	regs := Encode(Snapshot{Health: HealthError, LastErrorCode: 429, SecondsInError: 7}, "AB")

	if len(regs) != SlotsPerClient {
		t.Fatalf("block size: got=%d want=%d", len(regs), SlotsPerClient)
	}
	if regs[SlotHealthCode] != HealthError || regs[SlotLastErrorCode] != 429 || regs[SlotSecondsInError] != 7 {
		t.Fatalf("live slots wrong: %v", regs[:3])
	}
	for i := SlotReservedStart; i <= SlotReservedEnd; i++ {
		if regs[i] != 0 {
			t.Fatalf("reserved slot %d not zero: %d", i, regs[i])
		}
	}
	if regs[SlotNameStart] != uint16('A')<<8|uint16('B') {
		t.Fatalf("name slot: got=%#04x", regs[SlotNameStart])
	}
	if regs[SlotNameEnd+1] != 0 {
		t.Fatalf("slot after name must be zero")
	}
}

func TestEncodeName_TruncatesAndSanitizes(t *testing.T) {
	regs := EncodeName("ABCDEFGHIJKLMNOPQRS\x01")
	if len(regs) != SlotNameSlots {
		t.Fatalf("name slots: got=%d", len(regs))
	}
	if regs[7] != uint16('O')<<8|uint16('P') {
		t.Fatalf("last name register: got=%#04x", regs[7])
	}

	regs = EncodeName("A\x01")
	if regs[0] != uint16('A')<<8|uint16('?') {
		t.Fatalf("control byte not sanitized: %#04x", regs[0])
	}
}

func TestHealthOf(t *testing.T) {
	cases := map[connstatus.State]uint16{
		connstatus.Checking: HealthUnknown,
		connstatus.Online:   HealthOK,
		connstatus.Offline:  HealthError,
	}
	for s, want := range cases {
		if got := HealthOf(s); got != want {
			t.Fatalf("HealthOf(%v): got=%d want=%d", s, got, want)
		}
	}
}
