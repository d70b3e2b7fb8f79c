// Package viewstate holds per-screen state containers. Each container keeps
// an immutable snapshot of its screen's state, keeps it fresh through
// catalog subscriptions, and exposes the actions the screen can trigger.
package viewstate

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/nhle/mediashelf/internal/catalog"
	"github.com/nhle/mediashelf/internal/logger"
	"github.com/nhle/mediashelf/internal/store"
)

// DefaultDebounce is the minimum gap between accepted random picks.
const DefaultDebounce = 2 * time.Second

// Common is the state every screen shares.
type Common struct {
	Loading bool
	Err     string
	Random  RandomPick
}

// Option configures a container.
type Option func(*options)

type options struct {
	log      *slog.Logger
	now      func() time.Time
	debounce time.Duration
}

// WithLogger sets the container logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithClock replaces time.Now for the random-pick debounce.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithDebounce sets the random-pick debounce window.
func WithDebounce(d time.Duration) Option {
	return func(o *options) { o.debounce = d }
}

func buildOptions(opts []Option) options {
	o := options{
		log:      logger.Discard(),
		now:      time.Now,
		debounce: DefaultDebounce,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// container is the machinery shared by every screen container. S is the
// screen's state snapshot type; common reaches its embedded Common.
type container[S any] struct {
	svc    *catalog.Service
	log    *slog.Logger
	ctx    context.Context
	cancel context.CancelFunc
	picker *picker
	common func(*S) *Common

	mu      sync.Mutex
	state   S
	changes chan struct{}

	subsMu sync.Mutex
	subs   []*catalog.Subscription
	closed bool
}

func newContainer[S any](svc *catalog.Service, o options, initial S, common func(*S) *Common) *container[S] {
	ctx, cancel := context.WithCancel(context.Background())
	return &container[S]{
		svc:     svc,
		log:     o.log,
		ctx:     ctx,
		cancel:  cancel,
		picker:  newPicker(o.debounce, o.now),
		common:  common,
		state:   initial,
		changes: make(chan struct{}, 1),
	}
}

// State returns the current snapshot. Slices in it must not be modified.
func (c *container[S]) State() S {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Changes receives a value after one or more state changes. Bursts of
// changes coalesce into a single pending signal.
func (c *container[S]) Changes() <-chan struct{} {
	return c.changes
}

// ClearError drops the current error message without retrying.
func (c *container[S]) ClearError() {
	c.update(func(s *S) { c.common(s).Err = "" })
}

// Close cancels every subscription the container owns and waits for them
// to stop. Actions are no longer useful afterwards.
func (c *container[S]) Close() {
	c.subsMu.Lock()
	c.closed = true
	subs := c.subs
	c.subs = nil
	c.subsMu.Unlock()

	c.cancel()
	for _, sub := range subs {
		sub.Wait()
	}
}

// update applies fn to the state under lock and signals a change.
func (c *container[S]) update(fn func(*S)) {
	c.mu.Lock()
	fn(&c.state)
	c.mu.Unlock()
	c.signal()
}

func (c *container[S]) signal() {
	select {
	case c.changes <- struct{}{}:
	default:
	}
}

// track registers sub for teardown, pruning subscriptions that already
// stopped.
func (c *container[S]) track(sub *catalog.Subscription) {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()
	if c.closed {
		sub.Cancel()
		return
	}
	live := c.subs[:0]
	for _, s := range c.subs {
		select {
		case <-s.Done():
		default:
			live = append(live, s)
		}
	}
	c.subs = append(live, sub)
}

// act runs an action: Loading is set and Err cleared before fn runs, and a
// failure is recorded as Err. The error is also returned.
func (c *container[S]) act(name string, fn func() error) error {
	c.update(func(s *S) {
		cm := c.common(s)
		cm.Loading = true
		cm.Err = ""
	})

	err := fn()

	c.update(func(s *S) {
		cm := c.common(s)
		cm.Loading = false
		if err != nil {
			cm.Err = ErrorMessage(err)
		}
	})
	if err != nil {
		c.log.Warn("action failed", "action", name, "error", err)
	}
	return err
}

// fail records err from a background read.
func (c *container[S]) fail(what string, err error) {
	c.log.Warn("refresh failed", "read", what, "error", err)
	c.update(func(s *S) {
		cm := c.common(s)
		cm.Loading = false
		cm.Err = ErrorMessage(err)
	})
}

// DismissRandom hides the random-pick dialog.
func (c *container[S]) DismissRandom() {
	c.update(func(s *S) {
		cm := c.common(s)
		if !cm.Random.Visible {
			return
		}
		c.picker.dismiss()
		cm.Random = RandomPick{}
	})
}

// ErrorMessage converts err into the text shown to the user.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, store.ErrTagExists) {
		return store.ErrTagExists.Message
	}
	var se *store.Error
	if errors.As(err, &se) {
		return se.Message
	}
	return err.Error()
}
