package notify

import (
	"sync"
	"time"
)

// Notification is one recorded notice
type Notification struct {
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Recorder keeps the most recent notices, dropping the oldest past capacity
// and hiding anything older than ttl. A zero ttl keeps notices until evicted.
type Recorder struct {
	mu       sync.Mutex
	entries  []Notification
	capacity int
	ttl      time.Duration
	now      func() time.Time
}

// RecorderOption configures a Recorder
type RecorderOption func(*Recorder)

// WithTTL hides notices older than ttl
func WithTTL(ttl time.Duration) RecorderOption {
	return func(r *Recorder) {
		r.ttl = ttl
	}
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) RecorderOption {
	return func(r *Recorder) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRecorder creates a Recorder holding at most capacity notices
func NewRecorder(capacity int, opts ...RecorderOption) *Recorder {
	if capacity <= 0 {
		capacity = 100
	}
	r := &Recorder{
		capacity: capacity,
		entries:  make([]Notification, 0, capacity),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Recorder) Error(msg string) { r.add(LevelError, msg) }
func (r *Recorder) Info(msg string)  { r.add(LevelInfo, msg) }

func (r *Recorder) add(level Level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.entries) == r.capacity {
		copy(r.entries, r.entries[1:])
		r.entries = r.entries[:len(r.entries)-1]
	}
	r.entries = append(r.entries, Notification{Level: level, Message: msg, At: r.now()})
}

// Entries returns the live notices, oldest first
func (r *Recorder) Entries() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Notification, 0, len(r.entries))
	now := r.now()
	for _, n := range r.entries {
		if r.ttl > 0 && now.Sub(n.At) > r.ttl {
			continue
		}
		out = append(out, n)
	}
	return out
}

// Count returns how many live notices have level
func (r *Recorder) Count(level Level) int {
	n := 0
	for _, e := range r.Entries() {
		if e.Level == level {
			n++
		}
	}
	return n
}

// Messages returns the text of live notices with level
func (r *Recorder) Messages(level Level) []string {
	var out []string
	for _, e := range r.Entries() {
		if e.Level == level {
			out = append(out, e.Message)
		}
	}
	return out
}

// Reset drops everything
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = r.entries[:0]
}
