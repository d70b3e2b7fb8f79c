package viewstate

import (
	"sync"
	"time"

	"github.com/nhle/mediashelf/internal/model"
)

// RandomPick is the random-pick dialog state.
type RandomPick struct {
	Item    model.Item
	Visible bool
}

// picker debounces random-pick requests. A request is accepted only when no
// pick is visible and the debounce window since the last accepted pick or
// dismissal has passed.
type picker struct {
	mu       sync.Mutex
	debounce time.Duration
	now      func() time.Time
	last     time.Time
	visible  bool
}

func newPicker(debounce time.Duration, now func() time.Time) *picker {
	return &picker{debounce: debounce, now: now}
}

// accept reports whether a request arriving now may pick. On success the
// picker enters the visible state and prev holds the window start to
// restore if the pick is abandoned.
func (p *picker) accept() (prev time.Time, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.visible {
		return time.Time{}, false
	}
	now := p.now()
	if !p.last.IsZero() && now.Sub(p.last) < p.debounce {
		return time.Time{}, false
	}
	prev = p.last
	p.visible = true
	p.last = now
	return prev, true
}

// dismiss returns the picker to idle and restarts the debounce window.
func (p *picker) dismiss() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.visible {
		return
	}
	p.visible = false
	p.last = p.now()
}

// requestRandom runs the pick flow: candidates are fetched only when the
// request is accepted; an empty set or a fetch error leaves the picker idle
// without restarting the window.
func (c *container[S]) requestRandom(candidates func() ([]model.Item, error)) (model.Item, bool) {
	prev, ok := c.picker.accept()
	if !ok {
		return model.Item{}, false
	}

	items, err := candidates()
	if err != nil {
		c.picker.revert(prev)
		c.fail("random candidates", err)
		return model.Item{}, false
	}
	item, ok := c.svc.PickRandom(items)
	if !ok {
		c.picker.revert(prev)
		return model.Item{}, false
	}

	c.log.Debug("random pick", "item_id", item.ID, "candidates", len(items))
	c.update(func(s *S) {
		c.common(s).Random = RandomPick{Item: item, Visible: true}
	})
	return item, true
}

// revert undoes an accept that produced no pick.
func (p *picker) revert(prev time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.visible = false
	p.last = prev
}
