package live_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weddingledger/planner/internal/live"
)

func TestPolicy_Delay(t *testing.T) {
	p := live.Policy{BaseDelay: time.Second, MaxDelay: 10 * time.Second}

	assert.Equal(t, time.Second, p.Delay(0))
	assert.Equal(t, time.Second, p.Delay(1))
	assert.Equal(t, 2*time.Second, p.Delay(2))
	assert.Equal(t, 4*time.Second, p.Delay(3))
	assert.Equal(t, 8*time.Second, p.Delay(4))
	assert.Equal(t, 10*time.Second, p.Delay(5))
	assert.Equal(t, 10*time.Second, p.Delay(50))
}

type stateLog struct {
	mu     sync.Mutex
	states []live.State
}

func (l *stateLog) record(s live.State) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.states = append(l.states, s)
}

func (l *stateLog) snapshot() []live.State {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]live.State(nil), l.states...)
}

func TestSupervisor_RecoversAfterFailures(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32

	connected := make(chan struct{})

	sub := func(ctx context.Context) error {
		if calls.Add(1) <= 2 {
			return errors.New("stream reset")
		}

		close(connected)
		<-ctx.Done()

		return ctx.Err()
	}

	log := &stateLog{}
	sup := live.NewSupervisor("test", live.Policy{BaseDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond, MaxAttempts: 3}, sub).
		OnStateChange(log.record)

	done := make(chan error, 1)
	go func() { done <- sup.Run(ctx) }()

	select {
	case <-connected:
	case <-time.After(2 * time.Second):
		t.Fatal("subscription never recovered")
	}

	assert.Equal(t, live.StateConnected, sup.State())

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)

	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, []live.State{
		live.StateConnected, live.StateReconnecting,
		live.StateConnected, live.StateReconnecting,
		live.StateConnected, live.StateIdle,
	}, log.snapshot())
}

func TestSupervisor_GivesUp(t *testing.T) {
	var calls atomic.Int32

	sub := func(context.Context) error {
		calls.Add(1)
		return errors.New("permission denied")
	}

	sup := live.NewSupervisor("test", live.Policy{BaseDelay: time.Millisecond, MaxAttempts: 2}, sub)

	err := sup.Run(context.Background())
	require.ErrorIs(t, err, live.ErrGaveUp)
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, live.StateFailed, sup.State())
}

func TestDebouncer_CoalescesBursts(t *testing.T) {
	var runs atomic.Int32

	fired := make(chan struct{}, 10)
	d := live.NewDebouncer(20*time.Millisecond, func() {
		runs.Add(1)
		fired <- struct{}{}
	})
	defer d.Stop()

	for range 5 {
		d.Trigger()
	}

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("debounced function never ran")
	}

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), runs.Load())
}

func TestDebouncer_StopCancelsPending(t *testing.T) {
	var runs atomic.Int32

	d := live.NewDebouncer(10*time.Millisecond, func() { runs.Add(1) })
	d.Trigger()
	d.Stop()
	d.Trigger()

	time.Sleep(40 * time.Millisecond)
	assert.Zero(t, runs.Load())
}
