// internal/api/client.go
package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

const (
	defaultTimeout  = 2500 * time.Millisecond
	maxBodyBytes    = 1 << 20
	maxErrorBody    = 256
	requestIDHeader = "X-Request-ID"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Config is the minimal runtime config the client needs.
type Config struct {
	BaseURL   string
	Timeout   time.Duration // connect + read + write
	ID        string
	Auth      string
	UserAgent string
	Debug     bool
}

// Client speaks the code sharing server contract.
// All calls carry id/auth as query parameters.
type Client struct {
	base  *url.URL
	http  *http.Client
	id    string
	auth  string
	ua    string
	debug bool
}

// New builds a client. A base URL without scheme gets http://.
func New(cfg Config) (*Client, error) {
	raw := strings.TrimSpace(cfg.BaseURL)
	if raw == "" {
		return nil, ErrNoHost
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	base, err := url.Parse(strings.TrimRight(raw, "/"))
	if err != nil {
		return nil, fmt.Errorf("api: parse host %q: %w", cfg.BaseURL, err)
	}
	if base.Host == "" {
		return nil, fmt.Errorf("api: host %q has no address", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		base:  base,
		http:  &http.Client{Timeout: timeout},
		id:    cfg.ID,
		auth:  cfg.Auth,
		ua:    cfg.UserAgent,
		debug: cfg.Debug,
	}, nil
}

// BaseURL returns the normalized server address.
func (c *Client) BaseURL() string { return c.base.String() }

// TestConnection performs the identity check (GET /).
// Any 2xx is success; the body is ignored.
func (c *Client) TestConnection(ctx context.Context) error {
	q, err := c.credentials()
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodGet, "/", q, nil, nil)
}

// GetCode fetches the current code of followID (GET /code/get).
func (c *Client) GetCode(ctx context.Context, followID int) (CodeResult, error) {
	var out CodeResult

	q, err := c.credentials()
	if err != nil {
		return out, err
	}
	q.Set("follow_user_id", strconv.Itoa(followID))

	err = c.do(ctx, http.MethodGet, "/code/get", q, nil, &out)
	return out, err
}

// PatchCode publishes content as the caller's current code (PATCH /code/patch).
func (c *Client) PatchCode(ctx context.Context, content *string) error {
	q, err := c.credentials()
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPatch, "/code/patch", q, CodeUpdate{Content: content}, nil)
}

// GetUser checks that checkID exists (GET /user/get).
// A missing user surfaces as an *HTTPError with status 404.
func (c *Client) GetUser(ctx context.Context, checkID int) error {
	q, err := c.credentials()
	if err != nil {
		return err
	}
	q.Set("check_id", strconv.Itoa(checkID))
	return c.do(ctx, http.MethodGet, "/user/get", q, nil, nil)
}

func (c *Client) credentials() (url.Values, error) {
	if _, err := strconv.Atoi(c.id); err != nil {
		return nil, ErrNoIdentity
	}
	q := url.Values{}
	q.Set("id", c.id)
	q.Set("auth", c.auth)
	return q, nil
}

func (c *Client) do(ctx context.Context, method, path string, q url.Values, in, out any) error {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	u.RawQuery = q.Encode()

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("api: encode %s body: %w", path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("api: build %s %s: %w", method, path, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.ua != "" {
		req.Header.Set("User-Agent", c.ua)
	}
	reqID := uuid.NewString()
	req.Header.Set(requestIDHeader, reqID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if c.debug {
			log.Printf("api: %s %s failed (req=%s): %v", method, path, reqID, err)
		}
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("api: read %s %s: %w", method, path, err)
	}

	if c.debug {
		log.Printf("api: %s %s -> %d in %s (req=%s)", method, path, resp.StatusCode, time.Since(start).Round(time.Millisecond), reqID)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &HTTPError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       truncate(strings.TrimSpace(string(data)), maxErrorBody),
		}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("api: decode %s: %w", path, err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
