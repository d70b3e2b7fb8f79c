package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nhle/mediashelf/internal/model"
)

func ptr[T any](v T) *T { return &v }

func TestFilter_Match(t *testing.T) {
	item := model.Item{
		ID:       1,
		Title:    "Spirited Away",
		Type:     model.ItemTypeAnime,
		Status:   model.StatusWatched,
		Favorite: true,
		Year:     ptr(2001),
		Tags:     []model.Tag{{ID: 5, Name: "ghibli"}},
	}

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"zero filter", Filter{}, true},
		{"query substring", Filter{Query: "rited"}, true},
		{"query case", Filter{Query: "SPIRITED"}, true},
		{"query miss", Filter{Query: "totoro"}, false},
		{"type", Filter{Type: ptr(model.ItemTypeAnime)}, true},
		{"type miss", Filter{Type: ptr(model.ItemTypeMovie)}, false},
		{"status miss", Filter{Status: ptr(model.StatusPlanned)}, false},
		{"favorite", Filter{Favorite: ptr(true)}, true},
		{"not favorite", Filter{Favorite: ptr(false)}, false},
		{"year", Filter{Year: ptr(2001)}, true},
		{"year miss", Filter{Year: ptr(1999)}, false},
		{"tag", Filter{TagID: ptr(int64(5))}, true},
		{"tag miss", Filter{TagID: ptr(int64(6))}, false},
		{"all", Filter{Query: "away", Type: ptr(model.ItemTypeAnime), Favorite: ptr(true), TagID: ptr(int64(5))}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Match(item))
		})
	}
}

func TestFilter_MatchFoldsUnicode(t *testing.T) {
	item := model.Item{Title: "Amélie", Type: model.ItemTypeMovie}
	assert.True(t, Filter{Query: "AMÉLIE"}.Match(item))
	assert.False(t, Filter{Query: "amelie"}.Match(item))
}

func TestFilter_YearMissingOnItem(t *testing.T) {
	f := Filter{Year: ptr(2001)}
	assert.False(t, f.Match(model.Item{Title: "unknown year"}))
}

func TestFilter_StoreFilter(t *testing.T) {
	f := Filter{Query: "  dune ", Status: ptr(model.StatusReading), TagID: ptr(int64(3))}
	sf := f.StoreFilter()

	if assert.NotNil(t, sf.Query) {
		assert.Equal(t, "dune", *sf.Query)
	}
	assert.Equal(t, model.StatusReading, *sf.Status)
	assert.Nil(t, sf.Type)

	assert.Nil(t, Filter{Query: "  "}.StoreFilter().Query)
	assert.True(t, Filter{Query: " "}.IsZero())
	assert.False(t, f.IsZero())
}
