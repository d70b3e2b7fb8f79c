package viewstate

import (
	"context"
	"sync"

	"github.com/nhle/mediashelf/internal/catalog"
	"github.com/nhle/mediashelf/internal/model"
)

// ListsState is a snapshot of the list screen.
type ListsState struct {
	Common
	Lists    []model.MediaList
	Items    []model.Item // every item, for membership pickers
	Selected *model.MediaList
}

func (s *ListsState) common() *Common { return &s.Common }

// Lists backs the list management screen.
type Lists struct {
	*container[ListsState]

	selMu       sync.Mutex
	selectedSub *catalog.Subscription
	selGen      uint64 // guarded by container.mu
}

// NewLists creates the list screen container and starts its reads.
func NewLists(svc *catalog.Service, opts ...Option) *Lists {
	l := &Lists{
		container: newContainer(svc, buildOptions(opts), ListsState{Common: Common{Loading: true}}, (*ListsState).common),
	}
	l.track(svc.SubscribeLists(l.ctx, func(lists []model.MediaList, err error) {
		if err != nil {
			l.fail("lists", err)
			return
		}
		l.update(func(s *ListsState) {
			s.Lists = lists
			s.Loading = false
		})
	}))
	l.track(svc.SubscribeItems(l.ctx, catalog.Filter{}, func(items []model.Item, err error) {
		if err != nil {
			l.fail("items", err)
			return
		}
		l.update(func(s *ListsState) { s.Items = items })
	}))
	return l
}

// SelectList selects a list and keeps its resolved members fresh.
func (l *Lists) SelectList(id int64) {
	l.selMu.Lock()
	defer l.selMu.Unlock()

	var gen uint64
	l.update(func(s *ListsState) {
		l.selGen++
		gen = l.selGen
		s.Selected = findList(s.Lists, id)
	})
	if l.selectedSub != nil {
		l.selectedSub.Cancel()
	}

	sub := l.svc.SubscribeList(l.ctx, id, func(ml model.MediaList, found bool, err error) {
		if err != nil {
			l.fail("selected list", err)
			return
		}
		l.update(func(s *ListsState) {
			if gen != l.selGen {
				return
			}
			if !found {
				s.Selected = nil
				return
			}
			s.Selected = &ml
		})
	})
	l.selectedSub = sub
	l.track(sub)
}

// ClearSelection deselects the current list.
func (l *Lists) ClearSelection() {
	l.selMu.Lock()
	defer l.selMu.Unlock()

	l.update(func(s *ListsState) {
		l.selGen++
		s.Selected = nil
	})
	if l.selectedSub != nil {
		l.selectedSub.Cancel()
		l.selectedSub = nil
	}
}

// CreateList creates a list with initial members.
func (l *Lists) CreateList(ctx context.Context, name string, itemIDs []int64) (int64, error) {
	var id int64
	err := l.act("create list", func() error {
		var err error
		id, err = l.svc.CreateList(ctx, name, itemIDs)
		return err
	})
	return id, err
}

// RenameList renames a list.
func (l *Lists) RenameList(ctx context.Context, id int64, name string) error {
	return l.act("rename list", func() error {
		return l.svc.RenameList(ctx, id, name)
	})
}

// DeleteList removes a list, clearing the selection if it was selected.
func (l *Lists) DeleteList(ctx context.Context, id int64) error {
	err := l.act("delete list", func() error {
		return l.svc.DeleteList(ctx, id)
	})
	if err == nil {
		if sel := l.State().Selected; sel != nil && sel.ID == id {
			l.ClearSelection()
		}
	}
	return err
}

// AddItemToList adds an item to a list.
func (l *Lists) AddItemToList(ctx context.Context, listID, itemID int64) error {
	return l.act("add item to list", func() error {
		return l.svc.AddItemToList(ctx, listID, itemID)
	})
}

// RemoveItemFromList removes an item from a list.
func (l *Lists) RemoveItemFromList(ctx context.Context, listID, itemID int64) error {
	return l.act("remove item from list", func() error {
		return l.svc.RemoveItemFromList(ctx, listID, itemID)
	})
}

// SetListItems replaces a list's members in one step.
func (l *Lists) SetListItems(ctx context.Context, listID int64, itemIDs []int64) error {
	return l.act("set list items", func() error {
		return l.svc.SetListItems(ctx, listID, itemIDs)
	})
}

// RequestRandom picks a random member of the selected list.
func (l *Lists) RequestRandom() (model.Item, bool) {
	sel := l.State().Selected
	if sel == nil {
		return model.Item{}, false
	}
	return l.requestRandom(func() ([]model.Item, error) {
		return sel.Items, nil
	})
}

func findList(lists []model.MediaList, id int64) *model.MediaList {
	for i := range lists {
		if lists[i].ID == id {
			ml := lists[i]
			return &ml
		}
	}
	return nil
}
