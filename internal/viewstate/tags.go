package viewstate

import (
	"context"

	"github.com/nhle/mediashelf/internal/catalog"
	"github.com/nhle/mediashelf/internal/model"
)

// TagsState is a snapshot of the tag screen.
type TagsState struct {
	Common
	Tags     []model.Tag
	Selected *model.Tag
}

func (s *TagsState) common() *Common { return &s.Common }

// Tags backs the tag management screen.
type Tags struct {
	*container[TagsState]
}

// NewTags creates the tag screen container and starts its reads.
func NewTags(svc *catalog.Service, opts ...Option) *Tags {
	t := &Tags{
		container: newContainer(svc, buildOptions(opts), TagsState{Common: Common{Loading: true}}, (*TagsState).common),
	}
	t.track(svc.SubscribeTags(t.ctx, func(tags []model.Tag, err error) {
		if err != nil {
			t.fail("tags", err)
			return
		}
		t.update(func(s *TagsState) {
			s.Tags = tags
			s.Loading = false
			if s.Selected != nil {
				s.Selected = findTag(tags, s.Selected.ID)
			}
		})
	}))
	return t
}

// SelectTag selects the tag with id; an unknown id clears the selection.
func (t *Tags) SelectTag(id int64) {
	t.update(func(s *TagsState) { s.Selected = findTag(s.Tags, id) })
}

// ClearSelection deselects the current tag.
func (t *Tags) ClearSelection() {
	t.update(func(s *TagsState) { s.Selected = nil })
}

// AddTag creates a tag. A name already in use surfaces as
// "Tag already exists".
func (t *Tags) AddTag(ctx context.Context, name string) (model.Tag, error) {
	var tag model.Tag
	err := t.act("add tag", func() error {
		var err error
		tag, err = t.svc.CreateTag(ctx, name)
		return err
	})
	return tag, err
}

// RenameTag renames a tag.
func (t *Tags) RenameTag(ctx context.Context, id int64, name string) error {
	return t.act("rename tag", func() error {
		return t.svc.RenameTag(ctx, id, name)
	})
}

// DeleteTag removes a tag, clearing the selection if it was selected.
func (t *Tags) DeleteTag(ctx context.Context, id int64) error {
	err := t.act("delete tag", func() error {
		return t.svc.DeleteTag(ctx, id)
	})
	if err == nil {
		t.update(func(s *TagsState) {
			if s.Selected != nil && s.Selected.ID == id {
				s.Selected = nil
			}
		})
	}
	return err
}

// RequestRandom picks a random item carrying the selected tag.
func (t *Tags) RequestRandom(ctx context.Context) (model.Item, bool) {
	sel := t.State().Selected
	if sel == nil {
		return model.Item{}, false
	}
	return t.requestRandom(func() ([]model.Item, error) {
		return t.svc.ListItemsByTag(ctx, sel.ID)
	})
}

func findTag(tags []model.Tag, id int64) *model.Tag {
	for i := range tags {
		if tags[i].ID == id {
			tag := tags[i]
			return &tag
		}
	}
	return nil
}
