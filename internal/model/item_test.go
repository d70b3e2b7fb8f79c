package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseItemType(t *testing.T) {
	tests := []struct {
		in      string
		want    ItemType
		wantErr bool
	}{
		{"movie", ItemTypeMovie, false},
		{" Anime ", ItemTypeAnime, false},
		{"BOOK", ItemTypeBook, false},
		{"podcast", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseItemType(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseItemStatus(t *testing.T) {
	got, err := ParseItemStatus("Playing")
	require.NoError(t, err)
	assert.Equal(t, StatusPlaying, got)

	_, err = ParseItemStatus("abandoned")
	assert.Error(t, err)
}

func TestItemTagHelpers(t *testing.T) {
	item := Item{Tags: []Tag{{ID: 3, Name: "a"}, {ID: 7, Name: "b"}}}

	assert.True(t, item.HasTag(7))
	assert.False(t, item.HasTag(4))
	assert.Equal(t, []int64{3, 7}, item.TagIDs())
}

func TestMediaListHelpers(t *testing.T) {
	l := MediaList{Items: []Item{{ID: 9}, {ID: 2}}}

	assert.True(t, l.Contains(2))
	assert.False(t, l.Contains(5))
	assert.Equal(t, []int64{9, 2}, l.ItemIDs())
}
