package help

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nhle/mediashelf/internal/keys"
)

func TestView_ListsKeysAndNotes(t *testing.T) {
	k := keys.DefaultKeyMap()
	m := New(k, 160, 40)

	out := m.View()
	assert.Contains(t, out, "MediaShelf keys")
	assert.Contains(t, out, "--sensor")
	assert.Contains(t, out, "config init")
	assert.Contains(t, out, k.Random.Help().Desc)
}
