package viewstate

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeClock is a manually advanced clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestPicker_Debounce(t *testing.T) {
	clock := newFakeClock()
	p := newPicker(2*time.Second, clock.Now)

	_, ok := p.accept()
	assert.True(t, ok, "first request is accepted")

	_, ok = p.accept()
	assert.False(t, ok, "ignored while a pick is visible")

	clock.Advance(5 * time.Second)
	_, ok = p.accept()
	assert.False(t, ok, "still visible regardless of time")

	p.dismiss()
	clock.Advance(1999 * time.Millisecond)
	_, ok = p.accept()
	assert.False(t, ok, "inside the window after dismissal")

	clock.Advance(time.Millisecond)
	_, ok = p.accept()
	assert.True(t, ok, "window elapsed")
}

func TestPicker_RevertRestoresWindow(t *testing.T) {
	clock := newFakeClock()
	p := newPicker(2*time.Second, clock.Now)

	// An accepted request that finds no candidates leaves no trace.
	prev, ok := p.accept()
	assert.True(t, ok)
	p.revert(prev)
	_, ok = p.accept()
	assert.True(t, ok)

	p.dismiss()
	clock.Advance(2 * time.Second)
	prev, ok = p.accept()
	assert.True(t, ok)
	p.revert(prev)

	// The window still runs from the dismissal, which has elapsed.
	_, ok = p.accept()
	assert.True(t, ok)
}

func TestPicker_DismissWhenIdleIsNoop(t *testing.T) {
	clock := newFakeClock()
	p := newPicker(2*time.Second, clock.Now)

	p.dismiss()
	_, ok := p.accept()
	assert.True(t, ok, "dismiss without a pick does not start a window")
}
