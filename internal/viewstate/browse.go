package viewstate

import (
	"context"
	"strings"
	"sync"

	"github.com/nhle/mediashelf/internal/catalog"
	"github.com/nhle/mediashelf/internal/model"
)

// BrowseFilter is the item screen's filter selection.
type BrowseFilter struct {
	Query         string
	Type          *model.ItemType
	Status        *model.ItemStatus
	FavoritesOnly bool
	Year          *int
	TagID         *int64
	ListID        *int64
}

// CatalogFilter converts the selection into a catalog predicate. ListID is
// not part of it; it picks the source instead.
func (f BrowseFilter) CatalogFilter() catalog.Filter {
	cf := catalog.Filter{
		Query:  strings.TrimSpace(f.Query),
		Type:   f.Type,
		Status: f.Status,
		Year:   f.Year,
		TagID:  f.TagID,
	}
	if f.FavoritesOnly {
		fav := true
		cf.Favorite = &fav
	}
	return cf
}

// Active reports whether any filter is set.
func (f BrowseFilter) Active() bool {
	return f.ListID != nil || !f.CatalogFilter().IsZero()
}

// BrowseState is a snapshot of the item screen.
type BrowseState struct {
	Common
	Filter BrowseFilter
	Items  []model.Item
	Tags   []model.Tag
	Lists  []model.MediaList
}

func (s *BrowseState) common() *Common { return &s.Common }

// Browse backs the item screen: a filtered item list plus the tags and
// lists needed by its pickers.
type Browse struct {
	*container[BrowseState]

	// filterMu serializes filter changes so subscriptions are replaced in
	// the order the changes were made.
	filterMu sync.Mutex
	gen      uint64 // guarded by container.mu
	itemsSub *catalog.Subscription
}

// NewBrowse creates the item screen container and starts its reads.
func NewBrowse(svc *catalog.Service, opts ...Option) *Browse {
	b := &Browse{
		container: newContainer(svc, buildOptions(opts), BrowseState{Common: Common{Loading: true}}, (*BrowseState).common),
	}

	b.track(svc.SubscribeTags(b.ctx, func(tags []model.Tag, err error) {
		if err != nil {
			b.fail("tags", err)
			return
		}
		b.update(func(s *BrowseState) { s.Tags = tags })
	}))
	b.track(svc.SubscribeLists(b.ctx, func(lists []model.MediaList, err error) {
		if err != nil {
			b.fail("lists", err)
			return
		}
		b.update(func(s *BrowseState) { s.Lists = lists })
	}))

	b.setFilter(func(*BrowseFilter) {})
	return b
}

// SetQuery sets the title search text.
func (b *Browse) SetQuery(q string) {
	b.setFilter(func(f *BrowseFilter) { f.Query = q })
}

// SetType filters by media type; nil clears it.
func (b *Browse) SetType(t *model.ItemType) {
	b.setFilter(func(f *BrowseFilter) { f.Type = t })
}

// SetStatus filters by status; nil clears it.
func (b *Browse) SetStatus(st *model.ItemStatus) {
	b.setFilter(func(f *BrowseFilter) { f.Status = st })
}

// SetFavoritesOnly restricts the list to favorites.
func (b *Browse) SetFavoritesOnly(on bool) {
	b.setFilter(func(f *BrowseFilter) { f.FavoritesOnly = on })
}

// SetYear filters by release year; nil clears it.
func (b *Browse) SetYear(year *int) {
	b.setFilter(func(f *BrowseFilter) { f.Year = year })
}

// SetTag restricts items to those carrying the tag; nil clears it.
func (b *Browse) SetTag(tagID *int64) {
	b.setFilter(func(f *BrowseFilter) { f.TagID = tagID })
}

// SetList restricts items to members of the list; nil clears it.
func (b *Browse) SetList(listID *int64) {
	b.setFilter(func(f *BrowseFilter) { f.ListID = listID })
}

// ResetFilters clears every filter.
func (b *Browse) ResetFilters() {
	b.setFilter(func(f *BrowseFilter) { *f = BrowseFilter{} })
}

// setFilter applies mutate, then replaces the item subscription. Results
// from earlier generations are dropped even if they arrive late.
func (b *Browse) setFilter(mutate func(*BrowseFilter)) {
	b.filterMu.Lock()
	defer b.filterMu.Unlock()

	var (
		f   BrowseFilter
		gen uint64
	)
	b.update(func(s *BrowseState) {
		mutate(&s.Filter)
		f = s.Filter
		b.gen++
		gen = b.gen
		s.Loading = true
	})

	if b.itemsSub != nil {
		b.itemsSub.Cancel()
	}

	apply := func(items []model.Item, err error) {
		b.mu.Lock()
		stale := gen != b.gen
		b.mu.Unlock()
		if stale {
			return
		}
		if err != nil {
			b.fail("items", err)
			return
		}
		b.update(func(s *BrowseState) {
			if gen != b.gen {
				return
			}
			s.Items = items
			s.Loading = false
		})
	}

	cf := f.CatalogFilter()
	var sub *catalog.Subscription
	switch {
	case f.ListID != nil:
		sub = b.svc.SubscribeListItems(b.ctx, *f.ListID, cf, apply)
	default:
		// SubscribeItems routes a tag filter through FilterItemsByTag.
		sub = b.svc.SubscribeItems(b.ctx, cf, apply)
	}
	b.itemsSub = sub
	b.track(sub)
	b.log.Debug("browse filter changed", "generation", gen, "subscription_id", sub.ID())
}

// AddItem creates an item, provisioning any new tags by name.
func (b *Browse) AddItem(ctx context.Context, item model.Item) (int64, error) {
	var id int64
	err := b.act("add item", func() error {
		var err error
		id, err = b.svc.CreateItem(ctx, item)
		return err
	})
	return id, err
}

// UpdateItem replaces an item's fields and tags.
func (b *Browse) UpdateItem(ctx context.Context, item model.Item) error {
	return b.act("update item", func() error {
		return b.svc.UpdateItem(ctx, item)
	})
}

// DeleteItem removes an item. A visible random pick of it is hidden.
func (b *Browse) DeleteItem(ctx context.Context, id int64) error {
	err := b.act("delete item", func() error {
		return b.svc.DeleteItem(ctx, id)
	})
	if err == nil {
		st := b.State()
		if st.Random.Visible && st.Random.Item.ID == id {
			b.DismissRandom()
		}
	}
	return err
}

// AddTagToItem links a tag to an item.
func (b *Browse) AddTagToItem(ctx context.Context, itemID, tagID int64) error {
	return b.act("add tag to item", func() error {
		return b.svc.AddTagToItem(ctx, itemID, tagID)
	})
}

// RemoveTagFromItem unlinks a tag from an item.
func (b *Browse) RemoveTagFromItem(ctx context.Context, itemID, tagID int64) error {
	return b.act("remove tag from item", func() error {
		return b.svc.RemoveTagFromItem(ctx, itemID, tagID)
	})
}

// CreateTag creates a tag from the item screen's tag picker.
func (b *Browse) CreateTag(ctx context.Context, name string) (model.Tag, error) {
	var tag model.Tag
	err := b.act("create tag", func() error {
		var err error
		tag, err = b.svc.CreateTag(ctx, name)
		return err
	})
	return tag, err
}

// RequestRandom picks a random item from the currently shown items.
func (b *Browse) RequestRandom() (model.Item, bool) {
	return b.requestRandom(func() ([]model.Item, error) {
		return b.State().Items, nil
	})
}
