package catalog

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/nhle/mediashelf/internal/model"
)

// Table is a bitmask of catalog tables. Writes publish the tables they
// touched; subscriptions declare the tables their reads depend on.
type Table uint8

const (
	TableItems Table = 1 << iota
	TableTags
	TableLists
	TableItemTags
	TableListItems

	AllTables = TableItems | TableTags | TableLists | TableItemTags | TableListItems
)

// Dependency sets for the typed subscription helpers.
const (
	itemDeps  = TableItems | TableTags | TableItemTags
	listDeps  = AllTables
	tagDeps   = TableTags
	statsDeps = TableItems | TableTags | TableLists
)

// Subscription is a live read that re-runs after relevant writes.
type Subscription struct {
	id     string
	deps   Table
	notify chan struct{}
	cancel context.CancelFunc
	done   chan struct{}
}

// ID returns the subscription's handle, used in logs.
func (s *Subscription) ID() string { return s.id }

// Cancel stops the subscription. It does not wait for an in-flight refresh.
func (s *Subscription) Cancel() { s.cancel() }

// Wait blocks until the subscription's goroutine has exited.
func (s *Subscription) Wait() { <-s.done }

// Done is closed once the subscription's goroutine has exited.
func (s *Subscription) Done() <-chan struct{} { return s.done }

// hub fans write notifications out to subscriptions.
type hub struct {
	mu   sync.Mutex
	subs map[string]*Subscription
}

func newHub() *hub {
	return &hub{subs: make(map[string]*Subscription)}
}

func (h *hub) add(s *Subscription) {
	h.mu.Lock()
	h.subs[s.id] = s
	h.mu.Unlock()
}

func (h *hub) remove(id string) {
	h.mu.Lock()
	delete(h.subs, id)
	h.mu.Unlock()
}

// publish wakes every subscription depending on any table in mask.
// A subscription with a pending wake-up is not signalled twice.
func (h *hub) publish(mask Table) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, s := range h.subs {
		if s.deps&mask == 0 {
			continue
		}
		select {
		case s.notify <- struct{}{}:
		default:
		}
	}
}

func (h *hub) len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Subscribers returns the number of live subscriptions.
func (s *Service) Subscribers() int { return s.hub.len() }

// Subscribe runs refresh immediately and again after every write touching
// deps, until ctx is done or the subscription is cancelled. Refreshes run
// sequentially on one goroutine; writes arriving during a refresh are
// coalesced into a single follow-up run.
func (s *Service) Subscribe(ctx context.Context, deps Table, refresh func(ctx context.Context)) *Subscription {
	ctx, cancel := context.WithCancel(ctx)
	sub := &Subscription{
		id:     uuid.NewString(),
		deps:   deps,
		notify: make(chan struct{}, 1),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	s.hub.add(sub)
	s.log.Debug("subscription started", "subscription_id", sub.id, "deps", uint8(deps))

	go func() {
		defer close(sub.done)
		defer s.hub.remove(sub.id)

		refresh(ctx)
		for {
			select {
			case <-ctx.Done():
				s.log.Debug("subscription stopped", "subscription_id", sub.id)
				return
			case <-sub.notify:
				if ctx.Err() != nil {
					continue
				}
				refresh(ctx)
			}
		}
	}()

	return sub
}

// SubscribeItems keeps fn fed with the items matching f.
func (s *Service) SubscribeItems(ctx context.Context, f Filter, fn func([]model.Item, error)) *Subscription {
	return s.Subscribe(ctx, itemDeps, func(ctx context.Context) {
		var (
			items []model.Item
			err   error
		)
		if f.TagID != nil {
			items, err = s.FilterItemsByTag(ctx, *f.TagID, f)
		} else {
			items, err = s.ListItems(ctx, f)
		}
		if ctx.Err() != nil {
			return
		}
		fn(items, err)
	})
}

// SubscribeListItems keeps fn fed with the members of a list matching f.
func (s *Service) SubscribeListItems(ctx context.Context, listID int64, f Filter, fn func([]model.Item, error)) *Subscription {
	return s.Subscribe(ctx, itemDeps|TableListItems, func(ctx context.Context) {
		items, err := s.ListItemsInList(ctx, listID)
		if ctx.Err() != nil {
			return
		}
		if err == nil {
			items = f.Apply(items)
		}
		fn(items, err)
	})
}

// SubscribeTags keeps fn fed with every tag.
func (s *Service) SubscribeTags(ctx context.Context, fn func([]model.Tag, error)) *Subscription {
	return s.Subscribe(ctx, tagDeps, func(ctx context.Context) {
		tags, err := s.ListTags(ctx)
		if ctx.Err() != nil {
			return
		}
		fn(tags, err)
	})
}

// SubscribeLists keeps fn fed with every list, resolved.
func (s *Service) SubscribeLists(ctx context.Context, fn func([]model.MediaList, error)) *Subscription {
	return s.Subscribe(ctx, listDeps, func(ctx context.Context) {
		lists, err := s.ListLists(ctx)
		if ctx.Err() != nil {
			return
		}
		fn(lists, err)
	})
}

// SubscribeList keeps fn fed with one resolved list. found is false once
// the list no longer exists.
func (s *Service) SubscribeList(ctx context.Context, listID int64, fn func(l model.MediaList, found bool, err error)) *Subscription {
	return s.Subscribe(ctx, listDeps, func(ctx context.Context) {
		l, found, err := s.GetList(ctx, listID)
		if ctx.Err() != nil {
			return
		}
		fn(l, found, err)
	})
}

// SubscribeStats keeps fn fed with catalog counts.
func (s *Service) SubscribeStats(ctx context.Context, fn func(model.Stats, error)) *Subscription {
	return s.Subscribe(ctx, statsDeps, func(ctx context.Context) {
		st, err := s.Stats(ctx)
		if ctx.Err() != nil {
			return
		}
		fn(st, err)
	})
}
