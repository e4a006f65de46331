// internal/display/console.go

// Package display renders shared codes and sync status on a terminal.
package display

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/term"

	"github.com/qrcodeshare/qrshare/internal/connstatus"
)

const (
	clearScreen     = "\x1b[H\x1b[2J"
	timestampLayout = "2006-01-02 15:04:05"
)

// Console writes code updates and status lines.
// On a terminal each code update redraws the screen; otherwise output is
// append-only so it can be piped.
type Console struct {
	mu  sync.Mutex
	w   io.Writer
	tty bool
	now func() time.Time
}

// NewConsole wraps f, detecting whether it is a terminal.
func NewConsole(f *os.File) *Console {
	return &Console{w: f, tty: term.IsTerminal(int(f.Fd())), now: time.Now}
}

// NewWriterConsole wraps a plain writer (never a terminal).
func NewWriterConsole(w io.Writer) *Console {
	return &Console{w: w, now: time.Now}
}

// ShowCode prints the current code and when the server last saw it change.
func (c *Console) ShowCode(content string, updateAt *int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.tty {
		fmt.Fprint(c.w, clearScreen)
	}
	fmt.Fprintln(c.w, content)
	if updateAt != nil {
		fmt.Fprintln(c.w, c.updatedLine(time.Unix(*updateAt, 0)))
	}
}

// ShowStatus prints a one-line status message.
func (c *Console) ShowStatus(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, "[%s] %s\n", c.now().Format("15:04:05"), msg)
}

// ShowState prints the connection badge.
func (c *Console) ShowState(s connstatus.State, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.w, Badge(s, id))
}

// Badge renders the identity and connection state, e.g. "ID: 40001 · online".
func Badge(s connstatus.State, id string) string {
	who := "not configured"
	if id != "" {
		who = "ID: " + id
	}
	return fmt.Sprintf("%s · %s", who, stateLabel(s))
}

func stateLabel(s connstatus.State) string {
	if s == connstatus.Checking {
		return "checking..."
	}
	return s.String()
}

func (c *Console) updatedLine(at time.Time) string {
	return fmt.Sprintf("updated %s (%s)", at.Format(timestampLayout), humanize.RelTime(at, c.now(), "ago", "from now"))
}
