// internal/display/console_test.go
package display

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/qrcodeshare/qrshare/internal/connstatus"
)

func TestShowCode_PlainWriter(t *testing.T) {
	var buf bytes.Buffer
	c := NewWriterConsole(&buf)
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.Local)
	c.now = func() time.Time { return at.Add(3 * time.Second) }

	ts := at.Unix()
	c.ShowCode("https://example.com/t/1", &ts)

	out := buf.String()
	if strings.Contains(out, clearScreen) {
		t.Fatalf("plain writer must not receive escape codes")
	}
	if !strings.HasPrefix(out, "https://example.com/t/1\n") {
		t.Fatalf("unexpected output %q", out)
	}
	if !strings.Contains(out, "updated 2026-01-02 03:04:05 (3 seconds ago)") {
		t.Fatalf("unexpected timestamp line %q", out)
	}
}

func TestShowCode_NoTimestamp(t *testing.T) {
	var buf bytes.Buffer
	c := NewWriterConsole(&buf)

	c.ShowCode("A", nil)
	if buf.String() != "A\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestBadge(t *testing.T) {
	if got := Badge(connstatus.Online, "40001"); got != "ID: 40001 · online" {
		t.Fatalf("unexpected badge %q", got)
	}
	if got := Badge(connstatus.Checking, ""); got != "not configured · checking..." {
		t.Fatalf("unexpected badge %q", got)
	}
}
