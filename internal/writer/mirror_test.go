// internal/writer/mirror_test.go
package writer

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/qrcodeshare/qrshare/internal/api"
	"github.com/qrcodeshare/qrshare/internal/connstatus"
	"github.com/qrcodeshare/qrshare/internal/status"
)

type recordingWriter struct {
	mu    sync.Mutex
	snaps []status.Snapshot
}

func (r *recordingWriter) WriteStatus(s status.Snapshot) error {
	r.mu.Lock()
	r.snaps = append(r.snaps, s)
	r.mu.Unlock()
	return nil
}

func (r *recordingWriter) waitFor(t *testing.T, pred func(status.Snapshot) bool) status.Snapshot {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		r.mu.Lock()
		for _, s := range r.snaps {
			if pred(s) {
				r.mu.Unlock()
				return s
			}
		}
		r.mu.Unlock()
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for snapshot")
	return status.Snapshot{}
}

func TestMirror_FollowsState(t *testing.T) {
	mgr := connstatus.New(nil, connstatus.Config{})
	rw := &recordingWriter{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go mirror(ctx, mgr, rw, 10*time.Millisecond)

	rw.waitFor(t, func(s status.Snapshot) bool { return s.Health == status.HealthUnknown })

	mgr.HandleError(&api.HTTPError{StatusCode: 429})
	rw.waitFor(t, func(s status.Snapshot) bool {
		return s.Health == status.HealthError && s.LastErrorCode == 429
	})
	rw.waitFor(t, func(s status.Snapshot) bool {
		return s.Health == status.HealthError && s.SecondsInError >= 2
	})

	mgr.SetConnected()
	rw.waitFor(t, func(s status.Snapshot) bool {
		return s.Health == status.HealthOK && s.LastErrorCode == 0 && s.SecondsInError == 0
	})
}

func TestErrorCode(t *testing.T) {
	if errorCode(nil) != 0 {
		t.Fatalf("nil must map to 0")
	}
	if errorCode(&api.HTTPError{StatusCode: 403}) != 403 {
		t.Fatalf("http error must expose its status")
	}
	if errorCode(context.DeadlineExceeded) != 1 {
		t.Fatalf("transport error must map to 1")
	}
}
