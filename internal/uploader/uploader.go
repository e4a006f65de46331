// internal/uploader/uploader.go

// Package uploader publishes scanned codes to the server.
package uploader

import (
	"context"
	"strings"
	"sync"
)

// Publisher is the upload half of the API.
type Publisher interface {
	PatchCode(ctx context.Context, content *string) error
}

// StatusSink receives connection feedback for each upload.
type StatusSink interface {
	SetConnected()
	HandleError(err error) bool
}

// Result describes one Submit call.
type Result struct {
	Content string
	Skipped bool // empty or same as the previous scan
	Count   int  // successful uploads since the last Reset
}

// Uploader forwards each newly scanned code. A scanner keeps reporting the
// code in front of it, so consecutive duplicates are dropped.
type Uploader struct {
	pub    Publisher
	status StatusSink

	mu    sync.Mutex
	last  string
	count int
}

// New creates an uploader. status may be nil.
func New(pub Publisher, status StatusSink) *Uploader {
	return &Uploader{pub: pub, status: status}
}

// Submit uploads content unless it is empty or repeats the previous scan.
func (u *Uploader) Submit(ctx context.Context, content string) (Result, error) {
	content = strings.TrimRight(content, "\r\n")

	u.mu.Lock()
	defer u.mu.Unlock()

	if content == "" || content == u.last {
		return Result{Content: content, Skipped: true, Count: u.count}, nil
	}
	// remembered before the call, like the scanner screen does
	u.last = content

	c := content
	if err := u.pub.PatchCode(ctx, &c); err != nil {
		if u.status != nil {
			u.status.HandleError(err)
		}
		return Result{Content: content, Count: u.count}, err
	}

	u.count++
	if u.status != nil {
		u.status.SetConnected()
	}
	return Result{Content: content, Count: u.count}, nil
}

// Count returns the number of successful uploads.
func (u *Uploader) Count() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.count
}

// Reset clears the counter and the duplicate filter.
func (u *Uploader) Reset() {
	u.mu.Lock()
	u.last = ""
	u.count = 0
	u.mu.Unlock()
}
