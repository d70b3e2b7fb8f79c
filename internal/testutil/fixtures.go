package testutil

import (
	"context"
	"testing"

	"github.com/nhle/mediashelf/internal/model"
	"github.com/nhle/mediashelf/internal/store"
)

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T { return &v }

// NewItem returns a valid planned movie with the given title.
func NewItem(title string) model.Item {
	return model.Item{
		Title:  title,
		Type:   model.ItemTypeMovie,
		Status: model.StatusPlanned,
	}
}

// MustCreateItem persists item and returns its ID.
func MustCreateItem(t *testing.T, s store.Store, item model.Item) int64 {
	t.Helper()
	id, err := s.CreateItem(context.Background(), item)
	if err != nil {
		t.Fatalf("creating item %q: %v", item.Title, err)
	}
	return id
}

// MustCreateTag persists a tag and returns its ID.
func MustCreateTag(t *testing.T, s store.Store, name string) int64 {
	t.Helper()
	id, err := s.CreateTag(context.Background(), name)
	if err != nil {
		t.Fatalf("creating tag %q: %v", name, err)
	}
	return id
}
