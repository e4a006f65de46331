// internal/connstatus/classify_test.go
package connstatus

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"syscall"
	"testing"

	"github.com/qrcodeshare/qrshare/internal/api"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestClassify(t *testing.T) {
	refused := &url.Error{Op: "Get", URL: "http://h/", Err: &net.OpError{
		Op: "dial", Net: "tcp", Err: os.NewSyscallError("connect", syscall.ECONNREFUSED),
	}}
	unknownHost := &url.Error{Op: "Get", URL: "http://nohost/", Err: &net.OpError{
		Op: "dial", Net: "tcp", Err: &net.DNSError{Err: "no such host", Name: "nohost", IsNotFound: true},
	}}
	timedOut := &url.Error{Op: "Get", URL: "http://h/", Err: timeoutErr{}}
	reset := &url.Error{Op: "Get", URL: "http://h/", Err: &net.OpError{
		Op: "read", Net: "tcp", Err: os.NewSyscallError("read", syscall.ECONNRESET),
	}}

	cases := []struct {
		name    string
		err     error
		want    State
		changed bool
	}{
		{"nil", nil, 0, false},
		{"connection refused", fmt.Errorf("api: GET /: %w", refused), Offline, true},
		{"unknown host", fmt.Errorf("api: GET /: %w", unknownHost), Offline, true},
		{"socket timeout", fmt.Errorf("api: GET /: %w", timedOut), Offline, true},
		{"deadline", context.DeadlineExceeded, Offline, true},
		{"forbidden", &api.HTTPError{StatusCode: 403}, Offline, true},
		{"rate limited", &api.HTTPError{StatusCode: 429}, Offline, true},
		{"not found", &api.HTTPError{StatusCode: 404}, 0, false},
		{"server error", &api.HTTPError{StatusCode: 500}, 0, false},
		{"validation", &api.HTTPError{StatusCode: 422}, 0, false},
		{"connection reset", fmt.Errorf("api: GET /: %w", reset), 0, false},
		{"canceled", context.Canceled, 0, false},
		{"opaque", errors.New("api: decode /code/get: bad json"), 0, false},
		{"bad identity", api.ErrNoIdentity, 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, changed := Classify(tc.err)
			if changed != tc.changed {
				t.Fatalf("changed: got=%v want=%v", changed, tc.changed)
			}
			if changed && got != tc.want {
				t.Fatalf("state: got=%v want=%v", got, tc.want)
			}
		})
	}
}

func TestHandleError_UnchangedIsNoOp(t *testing.T) {
	m := New(nil, Config{})
	m.SetConnected()

	for i := 0; i < 3; i++ {
		if m.HandleError(&api.HTTPError{StatusCode: 404}) {
			t.Fatalf("404 must not change state")
		}
	}
	if m.State() != Online {
		t.Fatalf("state: got=%v want=online", m.State())
	}

	if !m.HandleError(&api.HTTPError{StatusCode: 429}) {
		t.Fatalf("429 must change state")
	}
	if m.State() != Offline {
		t.Fatalf("state: got=%v want=offline", m.State())
	}
	if api.StatusCode(m.LastError()) != 429 {
		t.Fatalf("last error not recorded: %v", m.LastError())
	}

	// already offline: applied but not a change
	if m.HandleError(context.DeadlineExceeded) {
		t.Fatalf("offline -> offline must report no change")
	}
}
