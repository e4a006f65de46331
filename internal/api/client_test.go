// internal/api/client_test.go
package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/qrcodeshare/qrshare/internal/devserver"
)

func newTestClient(t *testing.T, id, auth string) (*Client, *devserver.Server) {
	t.Helper()

	srv := devserver.New(map[int]string{40001: "a1", 40002: "a2"})
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	c, err := New(Config{BaseURL: ts.URL + "/", ID: id, Auth: auth, Timeout: time.Second})
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}
	return c, srv
}

func TestNew_AddsScheme(t *testing.T) {
	c, err := New(Config{BaseURL: "10.0.0.5:8000/"})
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}
	if c.BaseURL() != "http://10.0.0.5:8000" {
		t.Fatalf("unexpected base url %q", c.BaseURL())
	}
}

func TestNew_EmptyHost(t *testing.T) {
	if _, err := New(Config{}); !errors.Is(err, ErrNoHost) {
		t.Fatalf("expected ErrNoHost, got %v", err)
	}
}

func TestTestConnection(t *testing.T) {
	c, _ := newTestClient(t, "40001", "a1")

	if err := c.TestConnection(context.Background()); err != nil {
		t.Fatalf("TestConnection err=%v", err)
	}
}

func TestTestConnection_BadAuthIsForbidden(t *testing.T) {
	c, _ := newTestClient(t, "40001", "wrong")

	err := c.TestConnection(context.Background())
	if StatusCode(err) != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}
}

func TestCredentials_NonIntegerID(t *testing.T) {
	c, _ := newTestClient(t, "abc", "a1")

	if err := c.TestConnection(context.Background()); !errors.Is(err, ErrNoIdentity) {
		t.Fatalf("expected ErrNoIdentity, got %v", err)
	}
}

func TestPatchThenGetCode(t *testing.T) {
	uploader, _ := newTestClient(t, "40001", "a1")

	content := "https://example.com/ticket/42"
	if err := uploader.PatchCode(context.Background(), &content); err != nil {
		t.Fatalf("PatchCode err=%v", err)
	}

	res, err := uploader.GetCode(context.Background(), 40001)
	if err != nil {
		t.Fatalf("GetCode err=%v", err)
	}
	if res.Content == nil || *res.Content != content {
		t.Fatalf("unexpected content %v", res.Content)
	}
	if res.UpdateAt == nil || *res.UpdateAt <= 0 {
		t.Fatalf("unexpected update_at %v", res.UpdateAt)
	}
}

func TestGetCode_NullContent(t *testing.T) {
	c, _ := newTestClient(t, "40001", "a1")

	res, err := c.GetCode(context.Background(), 40002)
	if err != nil {
		t.Fatalf("GetCode err=%v", err)
	}
	if res.Content != nil || res.UpdateAt != nil {
		t.Fatalf("expected null fields, got %+v", res)
	}
}

func TestGetUser_NotFound(t *testing.T) {
	c, _ := newTestClient(t, "40001", "a1")

	if err := c.GetUser(context.Background(), 40002); err != nil {
		t.Fatalf("GetUser existing err=%v", err)
	}

	err := c.GetUser(context.Background(), 99999)
	if !IsNotFound(err) {
		t.Fatalf("expected 404, got %v", err)
	}

	var he *HTTPError
	if !errors.As(err, &he) || he.Code() != 404 || he.Path != "/user/get" {
		t.Fatalf("unexpected error shape: %#v", err)
	}
}

func TestRequestCarriesQueryCredentialsAndRequestID(t *testing.T) {
	var got *http.Request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"content":"A","update_at":100,"extra":true}`))
	}))
	defer ts.Close()

	c, err := New(Config{BaseURL: ts.URL, ID: "7", Auth: "tok"})
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}

	res, err := c.GetCode(context.Background(), 8)
	if err != nil {
		t.Fatalf("GetCode err=%v", err)
	}
	if *res.Content != "A" || *res.UpdateAt != 100 {
		t.Fatalf("unexpected result %+v", res)
	}

	q := got.URL.Query()
	if q.Get("id") != "7" || q.Get("auth") != "tok" || q.Get("follow_user_id") != "8" {
		t.Fatalf("unexpected query %v", q)
	}
	if got.Header.Get(requestIDHeader) == "" {
		t.Fatalf("missing request id header")
	}
}

func TestTransportErrorIsWrapped(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	addr := ts.URL
	ts.Close()

	c, err := New(Config{BaseURL: addr, ID: "1", Auth: "x", Timeout: 200 * time.Millisecond})
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}

	err = c.TestConnection(context.Background())
	if err == nil {
		t.Fatalf("expected transport error")
	}
	if StatusCode(err) != 0 {
		t.Fatalf("transport error must not carry a status: %v", err)
	}
	if !strings.HasPrefix(err.Error(), "api: GET /") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
