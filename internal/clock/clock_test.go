package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestRealClock_Now tests that RealClock returns a current time
func TestRealClock_Now(t *testing.T) {
	t.Parallel()

	before := time.Now()
	got := RealClock{}.Now()
	after := time.Now()

	assert.False(t, got.Before(before))
	assert.False(t, got.After(after))
}

// TestFixedClock_Now tests that FixedClock returns its instant
func TestFixedClock_Now(t *testing.T) {
	t.Parallel()

	instant := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	c := FixedClock{Instant: instant}

	assert.Equal(t, instant, c.Now())
	assert.Equal(t, instant, c.Now(), "repeated calls return the same instant")
}
