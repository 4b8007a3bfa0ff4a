package bot

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/coder/quartz"

	"github.com/lox/headsup/internal/game"
)

type timeoutDecider struct {
	inner   game.Decider
	timeout time.Duration
	clock   quartz.Clock
}

// WithTimeout bounds each decision of inner to timeout on clock. A decision
// that runs over returns ErrTimeout, which the engine turns into a fold; the
// inner call's context is cancelled.
func WithTimeout(inner game.Decider, timeout time.Duration, clock quartz.Clock) game.Decider {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &timeoutDecider{inner: inner, timeout: timeout, clock: clock}
}

type decision struct {
	action int
	mem    game.Memory
	err    error
}

func (t *timeoutDecider) Decide(ctx context.Context, snap game.Snapshot, mem game.Memory) (int, game.Memory, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	timeoutFired := make(chan struct{})
	timer := t.clock.AfterFunc(t.timeout, func() {
		close(timeoutFired)
	})
	defer timer.Stop()

	done := make(chan decision, 1)
	go func() {
		action, newMem, err := t.inner.Decide(ctx, snap, mem)
		done <- decision{action, newMem, err}
	}()

	select {
	case d := <-done:
		return d.action, d.mem, d.err
	case <-timeoutFired:
		return 0, nil, fmt.Errorf("%w after %s", ErrTimeout, t.timeout)
	case <-ctx.Done():
		return 0, nil, ctx.Err()
	}
}

// Close closes the wrapped decider.
func (t *timeoutDecider) Close() error {
	if c, ok := t.inner.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
