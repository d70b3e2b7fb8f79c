package tagmgr

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/mediashelf/internal/catalog"
	"github.com/nhle/mediashelf/internal/keys"
	"github.com/nhle/mediashelf/internal/model"
	"github.com/nhle/mediashelf/internal/testutil"
	"github.com/nhle/mediashelf/internal/viewstate"
)

const (
	waitFor = 2 * time.Second
	tick    = 5 * time.Millisecond
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestManager(t *testing.T, tagNames ...string) (Model, *viewstate.Tags, *catalog.Service) {
	t.Helper()
	svc := catalog.New(testutil.NewTestStore(t))
	for _, name := range tagNames {
		_, err := svc.CreateTag(context.Background(), name)
		require.NoError(t, err)
	}
	tags := viewstate.NewTags(svc)
	t.Cleanup(tags.Close)
	require.Eventually(t, func() bool { return len(tags.State().Tags) == len(tagNames) }, waitFor, tick)
	return New(tags, keys.DefaultKeyMap(), 80, 24), tags, svc
}

func TestModel_NavigateAndSelect(t *testing.T) {
	m, tags, _ := newTestManager(t, "comedy", "drama")

	m, _ = m.Update(runes("j"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, tags.State().Selected)
	assert.Equal(t, "drama", tags.State().Selected.Name)

	// Wraps around.
	m, _ = m.Update(runes("j"))
	assert.Equal(t, 0, m.selectedIdx)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, tags.State().Selected)
}

func TestModel_DuplicateTagShowsError(t *testing.T) {
	m, tags, _ := newTestManager(t, "Drama")

	m.fb.name = "drama"
	msg := m.saveTag()()
	m, _ = m.Update(msg)

	assert.Equal(t, "Tag already exists", tags.State().Err)
	assert.Contains(t, m.View(), "Tag already exists")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Empty(t, tags.State().Err)
}

func TestModel_RenameAndDelete(t *testing.T) {
	m, tags, _ := newTestManager(t, "scifi")
	id := tags.State().Tags[0].ID

	m.editingID = id
	m.fb.name = "Sci-Fi"
	m, _ = m.Update(m.saveTag()())
	assert.Equal(t, "Tag saved", m.statusMsg)
	require.Eventually(t, func() bool {
		st := tags.State()
		return len(st.Tags) == 1 && st.Tags[0].Name == "Sci-Fi"
	}, waitFor, tick)

	m, _ = m.Update(m.deleteTag(id)())
	assert.Equal(t, "Tag deleted", m.statusMsg)
	require.Eventually(t, func() bool { return len(tags.State().Tags) == 0 }, waitFor, tick)
}

func TestModel_RandomFromTag(t *testing.T) {
	m, tags, svc := newTestManager(t, "noir")
	item := testutil.NewItem("Chinatown")
	item.Tags = []model.Tag{{Name: "noir"}}
	_, err := svc.CreateItem(context.Background(), item)
	require.NoError(t, err)

	cmd := m.RequestRandom()
	require.NotNil(t, cmd)
	cmd()

	st := tags.State()
	require.True(t, st.Random.Visible)
	assert.Equal(t, "Chinatown", st.Random.Item.Title)
	assert.Contains(t, m.View(), "Chinatown")
}
