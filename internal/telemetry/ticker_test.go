package telemetry

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTickerStopPreventsFurtherTicks(t *testing.T) {
	var ticks atomic.Int64
	tk := NewTicker(func(context.Context) { ticks.Add(1) })

	tk.Start(2 * time.Millisecond)
	assert.Eventually(t, func() bool { return ticks.Load() >= 3 }, time.Second, time.Millisecond)

	tk.Stop()
	after := ticks.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, ticks.Load())

	running, _ := tk.Running()
	assert.False(t, running)
}

func TestTickerRestartReplacesGenerator(t *testing.T) {
	var first, second atomic.Int64
	var target atomic.Pointer[atomic.Int64]
	target.Store(&first)
	tk := NewTicker(func(context.Context) { target.Load().Add(1) })

	tk.Start(time.Millisecond)
	assert.Eventually(t, func() bool { return first.Load() > 0 }, time.Second, time.Millisecond)

	tk.Start(time.Hour)
	target.Store(&second)
	running, interval := tk.Running()
	assert.True(t, running)
	assert.Equal(t, time.Hour, interval)

	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, second.Load(), "the replaced generator must not keep firing")
	tk.Stop()
}

func TestTickerStopWaitsForInFlightTick(t *testing.T) {
	started := make(chan struct{}, 1)
	var finished atomic.Bool
	tk := NewTicker(func(ctx context.Context) {
		select {
		case started <- struct{}{}:
		default:
		}
		time.Sleep(10 * time.Millisecond)
		finished.Store(true)
	})

	tk.Start(time.Millisecond)
	<-started
	tk.Stop()
	assert.True(t, finished.Load())
}

func TestTickerStopWithoutStart(t *testing.T) {
	tk := NewTicker(func(context.Context) {})
	tk.Stop()
	running, _ := tk.Running()
	assert.False(t, running)
}
