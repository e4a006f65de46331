// internal/writer/mirror.go
package writer

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/qrcodeshare/qrshare/internal/connstatus"
	"github.com/qrcodeshare/qrshare/internal/status"
)

// StateSource is the part of the connection manager the mirror reads.
type StateSource interface {
	Subscribe() (<-chan connstatus.State, func())
	LastError() error
}

// Mirror delivers connection state changes to sw until ctx is done.
// It owns the snapshot: health follows the state, the error code follows
// the source's last error, and seconds_in_error ticks at 1 Hz while the
// state is not Online.
func Mirror(ctx context.Context, src StateSource, sw StatusWriter) {
	mirror(ctx, src, sw, time.Second)
}

func mirror(ctx context.Context, src StateSource, sw StatusWriter, tick time.Duration) {
	states, unsubscribe := src.Subscribe()
	defer unsubscribe()

	var snap status.Snapshot
	snap.Health = status.HealthUnknown

	// Full block write on start (identity re-assert).
	if err := sw.WriteStatus(snap); err != nil {
		log.Printf("status write failed on start: %v", err)
	}

	secTicker := time.NewTicker(tick)
	defer secTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case st, ok := <-states:
			if !ok {
				return
			}

			next := snap
			next.Health = status.HealthOf(st)

			switch st {
			case connstatus.Online:
				// Recovery: reset error fields.
				next.LastErrorCode = 0
				next.SecondsInError = 0
			case connstatus.Offline:
				next.LastErrorCode = errorCode(src.LastError())
			}
			// NOTE: seconds_in_error increments on the ticker only.

			if next != snap {
				snap = next
				if err := sw.WriteStatus(snap); err != nil {
					log.Printf("status write failed (state=%s): %v", st, err)
				}
			}

		case <-secTicker.C:
			if snap.Health == status.HealthOK {
				continue
			}
			if snap.SecondsInError < status.MaxSecondsInError {
				snap.SecondsInError++
				if err := sw.WriteStatus(snap); err != nil {
					log.Printf("status seconds tick write failed: %v", err)
				}
			}
		}
	}
}

// errorCode extracts a best-effort uint16 code from an error without assuming concrete types.
// Errors that do not expose a code return 1 (generic error); nil returns 0.
func errorCode(err error) uint16 {
	if err == nil {
		return 0
	}

	type coder interface{ Code() uint16 }

	var c coder
	if errors.As(err, &c) {
		return c.Code()
	}
	return 1
}
