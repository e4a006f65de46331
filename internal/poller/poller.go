// internal/poller/poller.go
package poller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/qrcodeshare/qrshare/internal/api"
)

// ErrTargetNotFound is returned by Preflight when the followed user does not exist.
var ErrTargetNotFound = errors.New("poller: followed user does not exist")

// ErrAlreadyRunning is returned by Run when another Run is active.
var ErrAlreadyRunning = errors.New("poller: already running")

// CodeSource abstracts the remote calls needed by the poller.
type CodeSource interface {
	GetCode(ctx context.Context, followID int) (api.CodeResult, error)
	GetUser(ctx context.Context, checkID int) error
}

// ErrorHandler receives every fetch error for connection state feedback.
type ErrorHandler interface {
	HandleError(err error) bool
}

// Config is the minimal runtime config the poller needs.
type Config struct {
	FollowID    int
	MinInterval time.Duration
}

// Poller fetches the followed user's code and tracks the last seen content.
// Cycles are serialized: at most one fetch is outstanding.
type Poller struct {
	cfg  Config
	src  CodeSource
	errs ErrorHandler

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error

	// iteration guard
	cycle sync.Mutex

	view         sync.RWMutex
	lastContent  *string
	lastUpdateAt *int64
	message      string

	syncing atomic.Bool
	running atomic.Bool
}

// New creates a poller with immutable config. errs may be nil.
func New(cfg Config, src CodeSource, errs ErrorHandler) (*Poller, error) {
	if cfg.FollowID <= 0 {
		return nil, errors.New("poller: follow id must be > 0")
	}
	if cfg.MinInterval <= 0 {
		return nil, errors.New("poller: interval must be > 0")
	}
	if src == nil {
		return nil, errors.New("poller: code source required")
	}
	return &Poller{
		cfg:     cfg,
		src:     src,
		errs:    errs,
		now:     time.Now,
		sleep:   sleepCtx,
		message: MsgIdle,
	}, nil
}

// Preflight checks once that the followed user exists.
// A 404 yields ErrTargetNotFound; it is not a connectivity failure.
func (p *Poller) Preflight(ctx context.Context) error {
	p.setMessage(MsgCheckingUser)

	err := p.src.GetUser(ctx, p.cfg.FollowID)
	switch {
	case err == nil:
		p.setMessage(MsgIdle)
		return nil
	case api.IsNotFound(err):
		p.setMessage(MsgTargetMissing)
		return ErrTargetNotFound
	default:
		if p.errs != nil {
			p.errs.HandleError(err)
		}
		p.setMessage("error: network or server failure: " + err.Error())
		return fmt.Errorf("poller: preflight: %w", err)
	}
}

// PollOnce performs exactly one guarded fetch and applies the result.
//
// The displayed content changes only when the fetched content is present
// and differs from the last seen one. An absent content leaves content and
// message as they were.
func (p *Poller) PollOnce(ctx context.Context) PollResult {
	p.cycle.Lock()
	defer p.cycle.Unlock()

	start := p.now()
	res, err := p.src.GetCode(ctx, p.cfg.FollowID)
	took := p.now().Sub(start)

	out := PollResult{
		FollowID: p.cfg.FollowID,
		At:       start,
		Duration: took,
	}

	if err != nil {
		out.Outcome = OutcomeFailed
		out.Err = err
		if ctx.Err() != nil {
			// cooperative cancellation, not a failure worth reporting
			out.Message = p.Message()
			return out
		}
		if p.errs != nil {
			p.errs.HandleError(err)
		}
		out.Message = p.setMessage("error: " + err.Error())
		return out
	}

	out.Content = res.Content
	out.UpdateAt = res.UpdateAt

	if res.Content == nil {
		out.Outcome = OutcomeEmpty
		out.Message = p.Message()
		return out
	}

	p.view.Lock()
	defer p.view.Unlock()

	ms := took.Milliseconds()
	if p.lastContent == nil || *p.lastContent != *res.Content {
		c := *res.Content
		p.lastContent = &c
		out.Outcome = OutcomeUpdated
		p.message = fmt.Sprintf("syncing: content updated (request took %dms)", ms)
	} else {
		out.Outcome = OutcomeUnchanged
		p.message = fmt.Sprintf("syncing: no change (request took %dms)", ms)
	}
	p.lastUpdateAt = res.UpdateAt
	out.Message = p.message
	return out
}

// Stop clears the syncing flag. Run exits at the top of its next iteration.
// Stop only applies to an active Run: every Run starts syncing again, so a
// Stop issued while idle has no effect on the next Run.
func (p *Poller) Stop() { p.syncing.Store(false) }

// Syncing reports whether Run is active and has not been stopped.
func (p *Poller) Syncing() bool { return p.syncing.Load() }

// LastContent returns the last seen content.
func (p *Poller) LastContent() (string, bool) {
	p.view.RLock()
	defer p.view.RUnlock()
	if p.lastContent == nil {
		return "", false
	}
	return *p.lastContent, true
}

// LastUpdateAt returns the server timestamp of the last present content.
func (p *Poller) LastUpdateAt() (time.Time, bool) {
	p.view.RLock()
	defer p.view.RUnlock()
	if p.lastUpdateAt == nil {
		return time.Time{}, false
	}
	return time.Unix(*p.lastUpdateAt, 0), true
}

// Message returns the current human-readable status.
func (p *Poller) Message() string {
	p.view.RLock()
	defer p.view.RUnlock()
	return p.message
}

func (p *Poller) setMessage(m string) string {
	p.view.Lock()
	p.message = m
	p.view.Unlock()
	return m
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
