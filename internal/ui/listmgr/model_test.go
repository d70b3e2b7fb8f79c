package listmgr

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/mediashelf/internal/catalog"
	"github.com/nhle/mediashelf/internal/keys"
	"github.com/nhle/mediashelf/internal/testutil"
	"github.com/nhle/mediashelf/internal/viewstate"
)

const (
	waitFor = 2 * time.Second
	tick    = 5 * time.Millisecond
)

func newTestManager(t *testing.T) (Model, *viewstate.Lists, *catalog.Service) {
	t.Helper()
	svc := catalog.New(testutil.NewTestStore(t))
	lists := viewstate.NewLists(svc)
	t.Cleanup(lists.Close)
	require.Eventually(t, func() bool { return !lists.State().Loading }, waitFor, tick)
	return New(lists, keys.DefaultKeyMap(), 100, 30), lists, svc
}

func TestModel_CreateAndSetMembers(t *testing.T) {
	m, lists, svc := newTestManager(t)
	ctx := context.Background()

	alien, err := svc.CreateItem(ctx, testutil.NewItem("Alien"))
	require.NoError(t, err)
	heat, err := svc.CreateItem(ctx, testutil.NewItem("Heat"))
	require.NoError(t, err)

	m.fb.name = "Weekend"
	m.fb.itemIDs = []int64{alien}
	m, _ = m.Update(m.saveList()())
	assert.Equal(t, "List created", m.statusMsg)

	require.Eventually(t, func() bool {
		st := lists.State()
		return len(st.Lists) == 1 && len(st.Lists[0].Items) == 1
	}, waitFor, tick)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, lists.State().Selected)

	m.editingID = lists.State().Lists[0].ID
	m.fb.itemIDs = []int64{alien, heat}
	m, _ = m.Update(m.setMembers()())
	assert.Equal(t, "List updated", m.statusMsg)

	require.Eventually(t, func() bool {
		sel := lists.State().Selected
		return sel != nil && len(sel.Items) == 2
	}, waitFor, tick)
	assert.Contains(t, m.View(), "Heat")
}

func TestModel_RandomAndDelete(t *testing.T) {
	m, lists, svc := newTestManager(t)
	ctx := context.Background()

	id, err := svc.CreateItem(ctx, testutil.NewItem("Solaris"))
	require.NoError(t, err)
	_, err = lists.CreateList(ctx, "Slow cinema", []int64{id})
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		st := lists.State()
		return len(st.Lists) == 1 && len(st.Lists[0].Items) == 1
	}, waitFor, tick)

	cmd := m.RequestRandom()
	require.NotNil(t, cmd)
	cmd()
	require.True(t, lists.State().Random.Visible)
	assert.Equal(t, "Solaris", lists.State().Random.Item.Title)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, lists.State().Random.Visible)

	m, _ = m.Update(m.deleteList(lists.State().Lists[0].ID)())
	assert.Equal(t, "List deleted", m.statusMsg)
	require.Eventually(t, func() bool { return len(lists.State().Lists) == 0 }, waitFor, tick)
	assert.Nil(t, lists.State().Selected)
}

func TestModel_EmptyRandomIsNoop(t *testing.T) {
	m, _, _ := newTestManager(t)
	assert.Nil(t, m.RequestRandom())
}
