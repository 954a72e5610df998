// Package breaker stops calling a backend that keeps failing and probes it
// again after a cooldown.
package breaker

import (
	"sync"
	"time"
)

type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

type Option func(*Breaker)

// WithClock replaces time.Now; tests use it
func WithClock(now func() time.Time) Option {
	return func(b *Breaker) {
		if now != nil {
			b.now = now
		}
	}
}

// Breaker opens after maxFailures consecutive failures. Once cooldown has
// passed one probe is let through: success closes it, failure reopens it.
// A zero maxFailures disables it.
type Breaker struct {
	maxFailures int
	cooldown    time.Duration
	now         func() time.Time

	mu          sync.Mutex
	state       State
	failures    int
	lastFailure time.Time
	changed     time.Time
}

func New(maxFailures int, cooldown time.Duration, opts ...Option) *Breaker {
	b := &Breaker{
		maxFailures: maxFailures,
		cooldown:    cooldown,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.changed = b.now()
	return b
}

func (b *Breaker) enabled() bool {
	return b != nil && b.maxFailures > 0
}

// Allow reports whether a call may go out now
func (b *Breaker) Allow() bool {
	if !b.enabled() {
		return true
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateOpen:
		now := b.now()
		if now.Sub(b.changed) < b.cooldown {
			return false
		}
		b.state = StateHalfOpen
		b.changed = now
		return true
	case StateHalfOpen:
		// the probe is still out
		return false
	default:
		return true
	}
}

func (b *Breaker) Success() {
	if !b.enabled() {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.failures = 0
	if b.state != StateClosed {
		b.state = StateClosed
		b.changed = b.now()
	}
}

func (b *Breaker) Failure() {
	if !b.enabled() {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	b.failures++
	b.lastFailure = now

	switch b.state {
	case StateClosed:
		if b.failures >= b.maxFailures {
			b.state = StateOpen
			b.changed = now
		}
	case StateHalfOpen:
		b.state = StateOpen
		b.changed = now
	}
}

func (b *Breaker) State() State {
	if !b.enabled() {
		return StateClosed
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *Breaker) Reset() {
	if b == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = StateClosed
	b.failures = 0
	b.changed = b.now()
}

// Stats is a snapshot for logs and debug endpoints
type Stats struct {
	State       string    `json:"state"`
	Failures    int       `json:"failures"`
	MaxFailures int       `json:"max_failures"`
	Cooldown    string    `json:"cooldown"`
	LastFailure time.Time `json:"last_failure"`
	Changed     time.Time `json:"changed"`
}

func (b *Breaker) Stats() Stats {
	if b == nil {
		return Stats{State: StateClosed.String()}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	return Stats{
		State:       b.state.String(),
		Failures:    b.failures,
		MaxFailures: b.maxFailures,
		Cooldown:    b.cooldown.String(),
		LastFailure: b.lastFailure,
		Changed:     b.changed,
	}
}
