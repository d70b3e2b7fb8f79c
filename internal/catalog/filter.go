package catalog

import (
	"strings"

	"github.com/nhle/mediashelf/internal/model"
	"github.com/nhle/mediashelf/internal/store"
)

// Filter is a compound item predicate. Zero-valued fields impose no
// constraint; every set field must match.
type Filter struct {
	Query    string // title substring, compared under model.Fold
	Type     *model.ItemType
	Status   *model.ItemStatus
	Favorite *bool
	Year     *int
	TagID    *int64
}

// IsZero reports whether f matches every item.
func (f Filter) IsZero() bool {
	return strings.TrimSpace(f.Query) == "" &&
		f.Type == nil && f.Status == nil && f.Favorite == nil &&
		f.Year == nil && f.TagID == nil
}

// Match reports whether item satisfies every predicate in f.
func (f Filter) Match(item model.Item) bool {
	if q := strings.TrimSpace(f.Query); q != "" {
		if !strings.Contains(model.Fold(item.Title), model.Fold(q)) {
			return false
		}
	}
	if f.Type != nil && item.Type != *f.Type {
		return false
	}
	if f.Status != nil && item.Status != *f.Status {
		return false
	}
	if f.Favorite != nil && item.Favorite != *f.Favorite {
		return false
	}
	if f.Year != nil && (item.Year == nil || *item.Year != *f.Year) {
		return false
	}
	if f.TagID != nil && !item.HasTag(*f.TagID) {
		return false
	}
	return true
}

// StoreFilter maps f to the store's SQL-side filter. TagID is not part of
// it; tag narrowing goes through GetItemsForTag.
func (f Filter) StoreFilter() store.ItemFilter {
	var sf store.ItemFilter
	if q := strings.TrimSpace(f.Query); q != "" {
		sf.Query = &q
	}
	sf.Type = f.Type
	sf.Status = f.Status
	sf.Favorite = f.Favorite
	sf.Year = f.Year
	return sf
}

// Apply returns the items of in that match f, preserving order.
func (f Filter) Apply(in []model.Item) []model.Item {
	out := make([]model.Item, 0, len(in))
	for _, it := range in {
		if f.Match(it) {
			out = append(out, it)
		}
	}
	return out
}
