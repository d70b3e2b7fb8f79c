package store

import (
	"context"

	"github.com/nhle/mediashelf/internal/model"
)

// ItemFilter narrows item queries. Nil fields and a blank Query impose no
// constraint; every provided field is ANDed.
type ItemFilter struct {
	Query    *string // case-insensitive title substring
	Type     *model.ItemType
	Status   *model.ItemStatus
	Favorite *bool
	Year     *int
}

// Store defines the persistence interface for items, tags, lists and the
// item-tag / list-item associations between them.
type Store interface {
	// === Items ===

	CreateItem(ctx context.Context, item model.Item) (int64, error)
	UpdateItem(ctx context.Context, item model.Item) error
	DeleteItem(ctx context.Context, id int64) error
	GetItemByID(ctx context.Context, id int64) (*model.Item, error)
	GetItems(ctx context.Context, filter ItemFilter) ([]model.Item, error)
	GetItemsForTag(ctx context.Context, tagID int64) ([]model.Item, error)
	GetItemsForList(ctx context.Context, listID int64) ([]model.Item, error)
	CountItems(ctx context.Context) (int, error)

	// === Tags ===

	CreateTag(ctx context.Context, name string) (int64, error)
	RenameTag(ctx context.Context, id int64, name string) error
	DeleteTag(ctx context.Context, id int64) error
	GetTagByID(ctx context.Context, id int64) (*model.Tag, error)
	GetTagByName(ctx context.Context, name string) (*model.Tag, error)
	GetTags(ctx context.Context) ([]model.Tag, error)
	GetTagsForItem(ctx context.Context, itemID int64) ([]model.Tag, error)
	GetTagsForItems(ctx context.Context, itemIDs []int64) (map[int64][]model.Tag, error)
	AddItemTag(ctx context.Context, itemID, tagID int64) error
	RemoveItemTag(ctx context.Context, itemID, tagID int64) error
	CountTags(ctx context.Context) (int, error)

	// === Lists ===

	CreateList(ctx context.Context, name string, itemIDs []int64) (int64, error)
	RenameList(ctx context.Context, id int64, name string) error
	DeleteList(ctx context.Context, id int64) error
	GetListByID(ctx context.Context, id int64) (*model.MediaList, error)
	GetLists(ctx context.Context) ([]model.MediaList, error)
	AddListItem(ctx context.Context, listID, itemID int64) error
	RemoveListItem(ctx context.Context, listID, itemID int64) error
	SetListItems(ctx context.Context, listID int64, itemIDs []int64) error
	CountLists(ctx context.Context) (int, error)
}
