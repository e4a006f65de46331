// internal/poller/runner.go
package poller

import "context"

// Run polls until Stop is called or ctx is done, emitting one PollResult
// per cycle on out. Cycles are spaced at least MinInterval apart; a cycle
// slower than the interval is followed immediately by the next one.
// One goroutine per poller. No overlap. No retries. Run closes out.
func (p *Poller) Run(ctx context.Context, out chan<- PollResult) error {
	if !p.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer p.running.Store(false)
	defer close(out)

	// a fresh start; an idle Stop is not remembered
	p.syncing.Store(true)
	p.setMessage(MsgConnecting)

	defer func() {
		p.syncing.Store(false)
		p.setMessage(MsgIdle)
	}()

	for p.syncing.Load() && ctx.Err() == nil {
		start := p.now()

		res := p.PollOnce(ctx)
		if ctx.Err() != nil {
			return nil
		}

		select {
		case out <- res:
		case <-ctx.Done():
			return nil
		}

		elapsed := p.now().Sub(start)
		if wait := p.cfg.MinInterval - elapsed; wait > 0 {
			if err := p.sleep(ctx, wait); err != nil {
				return nil
			}
		}
	}
	return nil
}
