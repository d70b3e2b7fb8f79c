// Package catalog composes item queries over the store, resolves tags and
// list memberships, and notifies subscribers after every write.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/nhle/mediashelf/internal/logger"
	"github.com/nhle/mediashelf/internal/model"
	"github.com/nhle/mediashelf/internal/store"
	"github.com/nhle/mediashelf/internal/validation"
)

// Service is the catalog's read and write surface.
type Service struct {
	store    store.Store
	log      *slog.Logger
	validate *validation.Validator
	hub      *hub

	rndMu sync.Mutex
	rnd   *rand.Rand
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithRand sets the random source used by PickRandom.
func WithRand(r *rand.Rand) Option {
	return func(s *Service) { s.rnd = r }
}

// New creates a Service backed by st.
func New(st store.Store, opts ...Option) *Service {
	s := &Service{
		store: st,
		log:   logger.Discard(),
		hub:   newHub(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.validate = validation.New()
	return s
}

// === Reads ===

// ListItems returns the items matching f, newest first, with tags.
func (s *Service) ListItems(ctx context.Context, f Filter) ([]model.Item, error) {
	if f.TagID != nil {
		return s.FilterItemsByTag(ctx, *f.TagID, f)
	}
	items, err := s.store.GetItems(ctx, f.StoreFilter())
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	return items, nil
}

// ListItemsInList returns the members of a list, newest first.
func (s *Service) ListItemsInList(ctx context.Context, listID int64) ([]model.Item, error) {
	items, err := s.store.GetItemsForList(ctx, listID)
	if err != nil {
		return nil, fmt.Errorf("listing items in list %d: %w", listID, err)
	}
	return items, nil
}

// ListItemsByTag returns every item carrying the tag.
func (s *Service) ListItemsByTag(ctx context.Context, tagID int64) ([]model.Item, error) {
	items, err := s.store.GetItemsForTag(ctx, tagID)
	if err != nil {
		return nil, fmt.Errorf("listing items for tag %d: %w", tagID, err)
	}
	return items, nil
}

// FilterItemsByTag fetches the tag's items and narrows them by f in memory.
// The tag argument wins over f.TagID.
func (s *Service) FilterItemsByTag(ctx context.Context, tagID int64, f Filter) ([]model.Item, error) {
	items, err := s.ListItemsByTag(ctx, tagID)
	if err != nil {
		return nil, err
	}
	f.TagID = nil
	return f.Apply(items), nil
}

// GetItem returns the item with id; found is false if it does not exist.
func (s *Service) GetItem(ctx context.Context, id int64) (model.Item, bool, error) {
	item, err := s.store.GetItemByID(ctx, id)
	if store.IsNotFound(err) {
		return model.Item{}, false, nil
	}
	if err != nil {
		return model.Item{}, false, fmt.Errorf("getting item: %w", err)
	}
	return *item, true, nil
}

// GetTag returns the tag with id; found is false if it does not exist.
func (s *Service) GetTag(ctx context.Context, id int64) (model.Tag, bool, error) {
	tag, err := s.store.GetTagByID(ctx, id)
	if store.IsNotFound(err) {
		return model.Tag{}, false, nil
	}
	if err != nil {
		return model.Tag{}, false, fmt.Errorf("getting tag: %w", err)
	}
	return *tag, true, nil
}

// GetList returns the list with id and its resolved members.
func (s *Service) GetList(ctx context.Context, id int64) (model.MediaList, bool, error) {
	l, err := s.store.GetListByID(ctx, id)
	if store.IsNotFound(err) {
		return model.MediaList{}, false, nil
	}
	if err != nil {
		return model.MediaList{}, false, fmt.Errorf("getting list: %w", err)
	}
	items, err := s.ListItemsInList(ctx, id)
	if err != nil {
		return model.MediaList{}, false, err
	}
	l.Items = items
	return *l, true, nil
}

// ListTags returns every tag ordered by name.
func (s *Service) ListTags(ctx context.Context) ([]model.Tag, error) {
	tags, err := s.store.GetTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	return tags, nil
}

// ListLists returns every list, newest first, each with resolved members.
func (s *Service) ListLists(ctx context.Context) ([]model.MediaList, error) {
	lists, err := s.store.GetLists(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing lists: %w", err)
	}
	for i := range lists {
		items, err := s.ListItemsInList(ctx, lists[i].ID)
		if err != nil {
			return nil, err
		}
		lists[i].Items = items
	}
	return lists, nil
}

// Stats returns catalog-wide counts.
func (s *Service) Stats(ctx context.Context) (model.Stats, error) {
	var st model.Stats
	var err error
	if st.Items, err = s.store.CountItems(ctx); err != nil {
		return model.Stats{}, fmt.Errorf("counting items: %w", err)
	}
	if st.Tags, err = s.store.CountTags(ctx); err != nil {
		return model.Stats{}, fmt.Errorf("counting tags: %w", err)
	}
	if st.Lists, err = s.store.CountLists(ctx); err != nil {
		return model.Stats{}, fmt.Errorf("counting lists: %w", err)
	}
	return st, nil
}

// === Item writes ===

// CreateItem validates and persists item, creating any named tags that do
// not exist yet. It returns the new item's ID.
func (s *Service) CreateItem(ctx context.Context, item model.Item) (int64, error) {
	item, err := s.prepareItem(item)
	if err != nil {
		return 0, err
	}
	id, err := s.store.CreateItem(ctx, item)
	if err != nil {
		return 0, err
	}
	s.log.Debug("item created", "item_id", id, "tags", len(item.Tags))
	s.hub.publish(itemWriteTables(item.Tags))
	return id, nil
}

// UpdateItem replaces an item's fields and its whole tag set.
func (s *Service) UpdateItem(ctx context.Context, item model.Item) error {
	item, err := s.prepareItem(item)
	if err != nil {
		return err
	}
	if err := s.store.UpdateItem(ctx, item); err != nil {
		return err
	}
	s.log.Debug("item updated", "item_id", item.ID, "tags", len(item.Tags))
	s.hub.publish(itemWriteTables(item.Tags))
	return nil
}

// DeleteItem removes an item with its tag links and list memberships.
func (s *Service) DeleteItem(ctx context.Context, id int64) error {
	if err := s.store.DeleteItem(ctx, id); err != nil {
		return err
	}
	s.log.Debug("item deleted", "item_id", id)
	s.hub.publish(TableItems | TableItemTags | TableListItems)
	return nil
}

// AddTagToItem links a tag to an item. Repeating is a no-op.
func (s *Service) AddTagToItem(ctx context.Context, itemID, tagID int64) error {
	if err := s.store.AddItemTag(ctx, itemID, tagID); err != nil {
		return err
	}
	s.log.Debug("tag added to item", "item_id", itemID, "tag_id", tagID)
	s.hub.publish(TableItemTags)
	return nil
}

// RemoveTagFromItem unlinks a tag from an item. Repeating is a no-op.
func (s *Service) RemoveTagFromItem(ctx context.Context, itemID, tagID int64) error {
	if err := s.store.RemoveItemTag(ctx, itemID, tagID); err != nil {
		return err
	}
	s.log.Debug("tag removed from item", "item_id", itemID, "tag_id", tagID)
	s.hub.publish(TableItemTags)
	return nil
}

// prepareItem trims and validates item and normalizes its tags. Named
// tags are resolved by the store inside the item's transaction.
func (s *Service) prepareItem(item model.Item) (model.Item, error) {
	item.Title = strings.TrimSpace(item.Title)
	if err := s.validate.Validate(item); err != nil {
		return item, err
	}
	item.Tags = normalizeTags(item.Tags)
	return item, nil
}

// normalizeTags trims tag names and drops blank names and duplicates, by
// ID for persisted tags and by model.TagKey for named ones.
func normalizeTags(tags []model.Tag) []model.Tag {
	out := make([]model.Tag, 0, len(tags))
	ids := make(map[int64]struct{}, len(tags))
	keys := make(map[string]struct{}, len(tags))

	for _, t := range tags {
		if t.ID != 0 {
			if _, dup := ids[t.ID]; dup {
				continue
			}
			ids[t.ID] = struct{}{}
			out = append(out, t)
			continue
		}
		t.Name = strings.TrimSpace(t.Name)
		key := model.TagKey(t.Name)
		if key == "" {
			continue
		}
		if _, dup := keys[key]; dup {
			continue
		}
		keys[key] = struct{}{}
		out = append(out, t)
	}
	return out
}

// itemWriteTables is the change mask of an item write. Named tags may have
// been provisioned, which touches the tags table too.
func itemWriteTables(tags []model.Tag) Table {
	mask := TableItems | TableItemTags
	for _, t := range tags {
		if t.ID == 0 {
			return mask | TableTags
		}
	}
	return mask
}

// === Tag writes ===

// CreateTag creates a tag named name (trimmed). A name already taken,
// ignoring case, yields store.ErrTagExists.
func (s *Service) CreateTag(ctx context.Context, name string) (model.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Tag{}, store.ErrInvalid.WithMessage("tag name must not be empty")
	}
	id, err := s.store.CreateTag(ctx, name)
	if err != nil {
		return model.Tag{}, err
	}
	s.log.Debug("tag created", "tag_id", id)
	s.hub.publish(TableTags)
	return model.Tag{ID: id, Name: name}, nil
}

// RenameTag renames a tag.
func (s *Service) RenameTag(ctx context.Context, id int64, name string) error {
	if err := s.store.RenameTag(ctx, id, name); err != nil {
		return err
	}
	s.log.Debug("tag renamed", "tag_id", id)
	s.hub.publish(TableTags)
	return nil
}

// DeleteTag removes a tag and its links; items are untouched.
func (s *Service) DeleteTag(ctx context.Context, id int64) error {
	if err := s.store.DeleteTag(ctx, id); err != nil {
		return err
	}
	s.log.Debug("tag deleted", "tag_id", id)
	s.hub.publish(TableTags | TableItemTags)
	return nil
}

// === List writes ===

// CreateList creates a list with the given initial members.
func (s *Service) CreateList(ctx context.Context, name string, itemIDs []int64) (int64, error) {
	id, err := s.store.CreateList(ctx, name, itemIDs)
	if err != nil {
		return 0, err
	}
	s.log.Debug("list created", "list_id", id, "items", len(itemIDs))
	s.hub.publish(TableLists | TableListItems)
	return id, nil
}

// RenameList renames a list.
func (s *Service) RenameList(ctx context.Context, id int64, name string) error {
	if err := s.store.RenameList(ctx, id, name); err != nil {
		return err
	}
	s.log.Debug("list renamed", "list_id", id)
	s.hub.publish(TableLists)
	return nil
}

// DeleteList removes a list and its memberships; items are untouched.
func (s *Service) DeleteList(ctx context.Context, id int64) error {
	if err := s.store.DeleteList(ctx, id); err != nil {
		return err
	}
	s.log.Debug("list deleted", "list_id", id)
	s.hub.publish(TableLists | TableListItems)
	return nil
}

// AddItemToList adds an item to a list. Repeating is a no-op.
func (s *Service) AddItemToList(ctx context.Context, listID, itemID int64) error {
	if err := s.store.AddListItem(ctx, listID, itemID); err != nil {
		return err
	}
	s.log.Debug("item added to list", "list_id", listID, "item_id", itemID)
	s.hub.publish(TableListItems)
	return nil
}

// RemoveItemFromList removes an item from a list. Repeating is a no-op.
func (s *Service) RemoveItemFromList(ctx context.Context, listID, itemID int64) error {
	if err := s.store.RemoveListItem(ctx, listID, itemID); err != nil {
		return err
	}
	s.log.Debug("item removed from list", "list_id", listID, "item_id", itemID)
	s.hub.publish(TableListItems)
	return nil
}

// SetListItems atomically replaces a list's members.
func (s *Service) SetListItems(ctx context.Context, listID int64, itemIDs []int64) error {
	if err := s.store.SetListItems(ctx, listID, itemIDs); err != nil {
		return err
	}
	s.log.Debug("list items replaced", "list_id", listID, "items", len(itemIDs))
	s.hub.publish(TableListItems)
	return nil
}
