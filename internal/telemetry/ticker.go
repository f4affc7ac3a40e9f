package telemetry

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Ticker drives at most one periodic generator at a time.
type Ticker struct {
	mu       sync.Mutex
	tick     func(ctx context.Context)
	cancel   context.CancelFunc
	done     chan struct{}
	interval time.Duration
}

// NewTicker calls tick on every period. tick should return promptly once ctx
// is cancelled.
func NewTicker(tick func(ctx context.Context)) *Ticker {
	return &Ticker{tick: tick}
}

// Start replaces any running generator with a new one firing every interval.
func (t *Ticker) Start(interval time.Duration) {
	if interval <= 0 {
		interval = time.Second
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	t.cancel, t.done, t.interval = cancel, done, interval

	go t.loop(ctx, interval, done)
	log.Debug().Dur("interval", interval).Msg("simulation ticker started")
}

// Stop cancels the generator and waits for it to exit. No tick fires after
// Stop returns.
func (t *Ticker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
}

// Running reports whether a generator is active, and its interval.
func (t *Ticker) Running() (bool, time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cancel != nil, t.interval
}

func (t *Ticker) stopLocked() {
	if t.cancel == nil {
		return
	}
	t.cancel()
	<-t.done
	t.cancel, t.done, t.interval = nil, nil, 0
	log.Debug().Msg("simulation ticker stopped")
}

func (t *Ticker) loop(ctx context.Context, interval time.Duration, done chan struct{}) {
	defer close(done)
	tk := time.NewTicker(interval)
	defer tk.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-tk.C:
			if ctx.Err() != nil {
				return
			}
			t.tick(ctx)
		}
	}
}
