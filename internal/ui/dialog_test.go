package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nhle/mediashelf/internal/model"
)

func TestParseTagNames(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{" , ,", nil},
		{"sci-fi", []string{"sci-fi"}},
		{"Sci-Fi, classic ,sci-fi", []string{"Sci-Fi", "classic"}},
		{"Ёлка, ёлка,ЁЛКА", []string{"Ёлка"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var got []string
			for _, tag := range ParseTagNames(tt.in) {
				assert.Zero(t, tag.ID)
				got = append(got, tag.Name)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJoinTagNames(t *testing.T) {
	tags := []model.Tag{{ID: 1, Name: "drama"}, {ID: 2, Name: "90s"}}
	assert.Equal(t, "drama, 90s", JoinTagNames(tags))
	assert.Equal(t, tags[0].Name, ParseTagNames(JoinTagNames(tags))[0].Name)
}

func TestLayout_ContentHeight(t *testing.T) {
	assert.Equal(t, 21, NewLayout(80, 24).ContentHeight())
	assert.Zero(t, NewLayout(80, 2).ContentHeight())
}

func TestFormBounds(t *testing.T) {
	assert.Equal(t, 40, FormWidth(10))
	assert.Equal(t, 100, FormWidth(300))
	assert.Equal(t, 10, FormHeight(5))
}

func TestRenderError(t *testing.T) {
	assert.Empty(t, RenderError(""))
	assert.Contains(t, RenderError("Tag already exists"), "Tag already exists")
}
