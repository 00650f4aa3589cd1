// Package live keeps long-running snapshot subscriptions alive and turns
// bursts of change events into single refreshes.
package live

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

type State int

const (
	StateIdle State = iota
	StateConnected
	StateReconnecting
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateConnected:
		return "connected"
	case StateReconnecting:
		return "reconnecting"
	case StateFailed:
		return "failed"
	default:
		return "idle"
	}
}

var (
	ErrGaveUp = errors.New("live: subscription gave up")
	ErrClosed = errors.New("live: subscription closed")
)

// Policy controls reconnection. The delay before retry n (1-based) is
// BaseDelay * 2^(n-1), capped at MaxDelay. A subscription that stayed up for
// at least HealthyAfter resets the attempt counter.
type Policy struct {
	BaseDelay    time.Duration
	MaxDelay     time.Duration
	MaxAttempts  int
	HealthyAfter time.Duration
}

func DefaultPolicy() Policy {
	return Policy{
		BaseDelay:    time.Second,
		MaxDelay:     30 * time.Second,
		MaxAttempts:  5,
		HealthyAfter: time.Minute,
	}
}

func (p Policy) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	d := p.BaseDelay
	for i := 1; i < attempt; i++ {
		d *= 2
		if p.MaxDelay > 0 && d >= p.MaxDelay {
			return p.MaxDelay
		}
	}

	if p.MaxDelay > 0 && d > p.MaxDelay {
		return p.MaxDelay
	}

	return d
}

// Subscribe runs one subscription until it fails or ctx is done.
type Subscribe func(ctx context.Context) error

type Supervisor struct {
	name      string
	policy    Policy
	subscribe Subscribe
	onState   func(State)

	mu    sync.Mutex
	state State
}

func NewSupervisor(name string, policy Policy, subscribe Subscribe) *Supervisor {
	return &Supervisor{name: name, policy: policy, subscribe: subscribe}
}

// OnStateChange registers fn to be called on every state transition.
func (s *Supervisor) OnStateChange(fn func(State)) *Supervisor {
	s.onState = fn
	return s
}

func (s *Supervisor) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// Run blocks until ctx is cancelled or the retry budget is exhausted.
func (s *Supervisor) Run(ctx context.Context) error {
	attempts := 0

	for {
		s.setState(StateConnected)

		started := time.Now()
		err := s.subscribe(ctx)

		if ctx.Err() != nil {
			s.setState(StateIdle)
			return ctx.Err()
		}

		if err == nil {
			err = ErrClosed
		}

		if s.policy.HealthyAfter > 0 && time.Since(started) >= s.policy.HealthyAfter {
			attempts = 0
		}

		attempts++

		if attempts > s.policy.MaxAttempts {
			s.setState(StateFailed)
			slog.Error("subscription failed permanently", "subscription", s.name, "attempts", attempts-1, "error", err)

			return fmt.Errorf("%w: %s: %v", ErrGaveUp, s.name, err)
		}

		delay := s.policy.Delay(attempts)

		s.setState(StateReconnecting)
		slog.Warn("subscription interrupted", "subscription", s.name, "attempt", attempts, "retry_in", delay, "error", err)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			s.setState(StateIdle)

			return ctx.Err()
		case <-timer.C:
		}
	}
}

func (s *Supervisor) setState(st State) {
	s.mu.Lock()
	changed := s.state != st
	s.state = st
	s.mu.Unlock()

	if changed && s.onState != nil {
		s.onState(st)
	}
}
