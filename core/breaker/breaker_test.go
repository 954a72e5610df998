package breaker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestBreaker(t *testing.T) {
	c := &clock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	b := New(3, time.Minute, WithClock(c.now))

	for range 2 {
		assert.True(t, b.Allow())
		b.Failure()
	}
	assert.Equal(t, StateClosed, b.State())

	// a success clears the streak
	b.Success()
	for range 3 {
		assert.True(t, b.Allow())
		b.Failure()
	}
	assert.Equal(t, StateOpen, b.State())
	assert.False(t, b.Allow())

	c.advance(30 * time.Second)
	assert.False(t, b.Allow())

	c.advance(31 * time.Second)
	assert.True(t, b.Allow())
	assert.Equal(t, StateHalfOpen, b.State())
	assert.False(t, b.Allow(), "only one probe while half-open")

	b.Failure()
	assert.Equal(t, StateOpen, b.State())
	assert.False(t, b.Allow())

	c.advance(time.Minute)
	assert.True(t, b.Allow())
	b.Success()
	assert.Equal(t, StateClosed, b.State())
	assert.True(t, b.Allow())

	s := b.Stats()
	assert.Equal(t, "closed", s.State)
	assert.Equal(t, 0, s.Failures)
	assert.Equal(t, "1m0s", s.Cooldown)
}

func TestDisabled(t *testing.T) {
	b := New(0, time.Minute)
	for range 10 {
		b.Failure()
	}
	assert.True(t, b.Allow())
	assert.Equal(t, StateClosed, b.State())

	var nilBreaker *Breaker
	assert.True(t, nilBreaker.Allow())
	nilBreaker.Failure()
	nilBreaker.Reset()
	assert.Equal(t, "closed", nilBreaker.Stats().State)
}

func TestReset(t *testing.T) {
	b := New(1, time.Hour)
	b.Failure()
	assert.Equal(t, StateOpen, b.State())
	b.Reset()
	assert.Equal(t, StateClosed, b.State())
	assert.True(t, b.Allow())
}
