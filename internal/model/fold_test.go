package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	assert.Equal(t, Fold("Ёлка"), Fold("ёлка"))
	assert.Equal(t, Fold("AMÉLIE"), Fold("Amélie"))
	assert.Equal(t, Fold("Ėlite"), Fold("ėlite"))
	assert.NotEqual(t, Fold("Amelie"), Fold("Amélie"))
}

func TestTagKey(t *testing.T) {
	assert.Equal(t, TagKey("  Sci-Fi "), TagKey("sci-fi"))
	assert.Empty(t, TagKey("   "))
}
