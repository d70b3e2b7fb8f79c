package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/mediashelf/internal/model"
	"github.com/nhle/mediashelf/internal/store"
	"github.com/nhle/mediashelf/internal/testutil"
)

func TestMigrations_Idempotent(t *testing.T) {
	s1, path := testutil.NewFileStore(t)
	v, err := s1.SchemaVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	s2, err := store.NewSQLiteStore(path)
	require.NoError(t, err)
	defer s2.Close()
	v, err = s2.SchemaVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, v)
}

func TestItem_CreateGetUpdate(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	sciFi := testutil.MustCreateTag(t, s, "Sci-Fi")
	classic := testutil.MustCreateTag(t, s, "Classic")

	item := model.Item{
		Title:    "Dune",
		Type:     model.ItemTypeBook,
		Year:     testutil.Ptr(1965),
		Status:   model.StatusReading,
		Favorite: true,
		Rating:   testutil.Ptr(9.5),
		Comment:  testutil.Ptr("spice"),
		Tags:     []model.Tag{{ID: sciFi}, {ID: classic}, {Name: "unsaved"}},
	}
	id, err := s.CreateItem(ctx, item)
	require.NoError(t, err)
	require.NotZero(t, id)

	got, err := s.GetItemByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Dune", got.Title)
	assert.Equal(t, model.ItemTypeBook, got.Type)
	assert.Equal(t, 1965, *got.Year)
	assert.Equal(t, model.StatusReading, got.Status)
	assert.True(t, got.Favorite)
	assert.Equal(t, 9.5, *got.Rating)
	assert.Equal(t, "spice", *got.Comment)
	assert.ElementsMatch(t, []int64{sciFi, classic}, got.TagIDs())

	got.Title = "Dune Messiah"
	got.Year = nil
	got.Rating = nil
	got.Favorite = false
	got.Tags = []model.Tag{{ID: classic}}
	require.NoError(t, s.UpdateItem(ctx, *got))

	updated, err := s.GetItemByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Dune Messiah", updated.Title)
	assert.Nil(t, updated.Year)
	assert.Nil(t, updated.Rating)
	assert.False(t, updated.Favorite)
	assert.Equal(t, []int64{classic}, updated.TagIDs())
}

func TestItem_NotFound(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	_, err := s.GetItemByID(ctx, 42)
	assert.True(t, errors.Is(err, store.ErrNotFound))

	item := testutil.NewItem("ghost")
	item.ID = 42
	err = s.UpdateItem(ctx, item)
	assert.True(t, store.IsNotFound(err))

	assert.NoError(t, s.DeleteItem(ctx, 42))
}

func TestGetItems_Filters(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	mk := func(title string, typ model.ItemType, st model.ItemStatus, fav bool, year int) int64 {
		return testutil.MustCreateItem(t, s, model.Item{
			Title: title, Type: typ, Status: st, Favorite: fav, Year: testutil.Ptr(year),
		})
	}
	alien := mk("Alien", model.ItemTypeMovie, model.StatusWatched, true, 1979)
	aliens := mk("Aliens", model.ItemTypeMovie, model.StatusPlanned, false, 1986)
	akira := mk("Akira", model.ItemTypeAnime, model.StatusWatched, true, 1988)
	pct := mk("100% Orange", model.ItemTypeBook, model.StatusPlanned, false, 1979)

	ids := func(items []model.Item) []int64 {
		out := make([]int64, 0, len(items))
		for _, it := range items {
			out = append(out, it.ID)
		}
		return out
	}

	tests := []struct {
		name   string
		filter store.ItemFilter
		want   []int64
	}{
		{"no filter newest first", store.ItemFilter{}, []int64{pct, akira, aliens, alien}},
		{"blank query ignored", store.ItemFilter{Query: testutil.Ptr("  ")}, []int64{pct, akira, aliens, alien}},
		{"query case-insensitive", store.ItemFilter{Query: testutil.Ptr("ALIEN")}, []int64{aliens, alien}},
		{"query percent literal", store.ItemFilter{Query: testutil.Ptr("%")}, []int64{pct}},
		{"type", store.ItemFilter{Type: testutil.Ptr(model.ItemTypeMovie)}, []int64{aliens, alien}},
		{"status", store.ItemFilter{Status: testutil.Ptr(model.StatusWatched)}, []int64{akira, alien}},
		{"favorite", store.ItemFilter{Favorite: testutil.Ptr(true)}, []int64{akira, alien}},
		{"year", store.ItemFilter{Year: testutil.Ptr(1979)}, []int64{pct, alien}},
		{
			"combined",
			store.ItemFilter{
				Query:    testutil.Ptr("a"),
				Type:     testutil.Ptr(model.ItemTypeMovie),
				Favorite: testutil.Ptr(true),
			},
			[]int64{alien},
		},
		{"no match", store.ItemFilter{Query: testutil.Ptr("zzz")}, []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.GetItems(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestGetItems_UnicodeTitleQuery(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	amelie := testutil.MustCreateItem(t, s, testutil.NewItem("Amélie"))
	testutil.MustCreateItem(t, s, testutil.NewItem("Amelie"))

	for _, q := range []string{"AMÉLIE", "mélie", "amélie"} {
		got, err := s.GetItems(ctx, store.ItemFilter{Query: testutil.Ptr(q)})
		require.NoError(t, err)
		require.Len(t, got, 1, q)
		assert.Equal(t, amelie, got[0].ID)
	}
}

func TestGetItems_ResolvesTags(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	tag := testutil.MustCreateTag(t, s, "cozy")
	tagged := testutil.NewItem("tagged")
	tagged.Tags = []model.Tag{{ID: tag}}
	taggedID := testutil.MustCreateItem(t, s, tagged)
	plainID := testutil.MustCreateItem(t, s, testutil.NewItem("plain"))

	items, err := s.GetItems(ctx, store.ItemFilter{})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, plainID, items[0].ID)
	assert.Empty(t, items[0].Tags)
	assert.Equal(t, taggedID, items[1].ID)
	assert.Equal(t, []model.Tag{{ID: tag, Name: "cozy"}}, items[1].Tags)

	byTag, err := s.GetItemsForTag(ctx, tag)
	require.NoError(t, err)
	require.Len(t, byTag, 1)
	assert.Equal(t, taggedID, byTag[0].ID)
}

func TestTag_CaseInsensitiveUniqueness(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	id := testutil.MustCreateTag(t, s, "Horror")

	_, err := s.CreateTag(ctx, "horror")
	require.Error(t, err)
	assert.True(t, errors.Is(err, store.ErrTagExists))

	got, err := s.GetTagByName(ctx, "HORROR")
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "Horror", got.Name)

	_, err = s.CreateTag(ctx, "   ")
	assert.True(t, errors.Is(err, store.ErrInvalid))
}

func TestTag_UnicodeCaseUniqueness(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	id := testutil.MustCreateTag(t, s, "Ёлка")

	_, err := s.CreateTag(ctx, "ёлка")
	assert.True(t, errors.Is(err, store.ErrTagExists))

	got, err := s.GetTagByName(ctx, "ЁЛКА")
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "Ёлка", got.Name)

	other := testutil.MustCreateTag(t, s, "Élite")
	err = s.RenameTag(ctx, other, " ёЛКа ")
	assert.True(t, errors.Is(err, store.ErrTagExists))

	require.NoError(t, s.RenameTag(ctx, other, "ÉLITE"))
	got, err = s.GetTagByName(ctx, "élite")
	require.NoError(t, err)
	assert.Equal(t, other, got.ID)
	assert.Equal(t, "ÉLITE", got.Name)
}

func TestItem_ProvisionsNamedTags(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	existing := testutil.MustCreateTag(t, s, "Ėlite")
	item := testutil.NewItem("Heat")
	item.Tags = []model.Tag{{Name: "ėlite"}, {Name: "Crime"}, {Name: "CRIME"}, {Name: "  "}}
	id := testutil.MustCreateItem(t, s, item)

	got, err := s.GetItemByID(ctx, id)
	require.NoError(t, err)
	require.Len(t, got.Tags, 2)
	assert.True(t, got.HasTag(existing))

	tags, err := s.GetTags(ctx)
	require.NoError(t, err)
	assert.Len(t, tags, 2)
}

func TestItem_FailedWriteLeavesNoNewTags(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	item := testutil.NewItem("Ghost")
	item.Tags = []model.Tag{{Name: "orphan"}, {ID: 999}}
	_, err := s.CreateItem(ctx, item)
	require.Error(t, err)

	missing := testutil.NewItem("Nobody")
	missing.ID = 4242
	missing.Tags = []model.Tag{{Name: "orphan"}}
	err = s.UpdateItem(ctx, missing)
	assert.True(t, store.IsNotFound(err))

	tags, err := s.GetTags(ctx)
	require.NoError(t, err)
	assert.Empty(t, tags)

	n, err := s.CountItems(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestTag_Rename(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	a := testutil.MustCreateTag(t, s, "a")
	testutil.MustCreateTag(t, s, "b")

	require.NoError(t, s.RenameTag(ctx, a, "A"))
	got, err := s.GetTagByID(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Name)

	err = s.RenameTag(ctx, a, "B")
	assert.True(t, errors.Is(err, store.ErrTagExists))

	err = s.RenameTag(ctx, 999, "c")
	assert.True(t, store.IsNotFound(err))
}

func TestTag_LinkSetSemantics(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	itemID := testutil.MustCreateItem(t, s, testutil.NewItem("x"))
	tagID := testutil.MustCreateTag(t, s, "t")

	require.NoError(t, s.AddItemTag(ctx, itemID, tagID))
	require.NoError(t, s.AddItemTag(ctx, itemID, tagID))
	tags, err := s.GetTagsForItem(ctx, itemID)
	require.NoError(t, err)
	assert.Len(t, tags, 1)

	require.NoError(t, s.RemoveItemTag(ctx, itemID, tagID))
	require.NoError(t, s.RemoveItemTag(ctx, itemID, tagID))
	tags, err = s.GetTagsForItem(ctx, itemID)
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestCascadeDeletes(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	tagID := testutil.MustCreateTag(t, s, "t")
	item := testutil.NewItem("x")
	item.Tags = []model.Tag{{ID: tagID}}
	itemID := testutil.MustCreateItem(t, s, item)
	otherID := testutil.MustCreateItem(t, s, testutil.NewItem("y"))

	listID, err := s.CreateList(ctx, "watch", []int64{itemID, otherID})
	require.NoError(t, err)

	// Deleting a tag removes its links but not the items.
	require.NoError(t, s.DeleteTag(ctx, tagID))
	got, err := s.GetItemByID(ctx, itemID)
	require.NoError(t, err)
	assert.Empty(t, got.Tags)

	// Deleting an item removes its list membership.
	require.NoError(t, s.DeleteItem(ctx, itemID))
	members, err := s.GetItemsForList(ctx, listID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, otherID, members[0].ID)

	// Deleting a list leaves items intact.
	require.NoError(t, s.DeleteList(ctx, listID))
	n, err := s.CountItems(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	members, err = s.GetItemsForList(ctx, listID)
	require.NoError(t, err)
	assert.Empty(t, members)
}

func TestList_Membership(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	a := testutil.MustCreateItem(t, s, testutil.NewItem("a"))
	b := testutil.MustCreateItem(t, s, testutil.NewItem("b"))
	c := testutil.MustCreateItem(t, s, testutil.NewItem("c"))

	listID, err := s.CreateList(ctx, "  queue ", []int64{a, a})
	require.NoError(t, err)

	l, err := s.GetListByID(ctx, listID)
	require.NoError(t, err)
	assert.Equal(t, "queue", l.Name)

	require.NoError(t, s.AddListItem(ctx, listID, b))
	require.NoError(t, s.AddListItem(ctx, listID, b))
	members, err := s.GetItemsForList(ctx, listID)
	require.NoError(t, err)
	assert.Len(t, members, 2)

	require.NoError(t, s.RemoveListItem(ctx, listID, a))
	require.NoError(t, s.RemoveListItem(ctx, listID, a))

	require.NoError(t, s.SetListItems(ctx, listID, []int64{c, b, c}))
	members, err = s.GetItemsForList(ctx, listID)
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, c, members[0].ID)
	assert.Equal(t, b, members[1].ID)

	require.NoError(t, s.SetListItems(ctx, listID, nil))
	members, err = s.GetItemsForList(ctx, listID)
	require.NoError(t, err)
	assert.Empty(t, members)
}

func TestList_SetItemsAtomic(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	a := testutil.MustCreateItem(t, s, testutil.NewItem("a"))
	listID, err := s.CreateList(ctx, "l", []int64{a})
	require.NoError(t, err)

	// A missing item fails the foreign key and rolls back the whole replace.
	err = s.SetListItems(ctx, listID, []int64{9999})
	require.Error(t, err)

	members, err := s.GetItemsForList(ctx, listID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, a, members[0].ID)

	err = s.SetListItems(ctx, 777, []int64{a})
	assert.True(t, store.IsNotFound(err))
}

func TestList_RenameAndOrder(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	first, err := s.CreateList(ctx, "first", nil)
	require.NoError(t, err)
	second, err := s.CreateList(ctx, "second", nil)
	require.NoError(t, err)

	require.NoError(t, s.RenameList(ctx, first, "renamed"))
	assert.True(t, store.IsNotFound(s.RenameList(ctx, 404, "x")))

	lists, err := s.GetLists(ctx)
	require.NoError(t, err)
	require.Len(t, lists, 2)
	assert.Equal(t, second, lists[0].ID)
	assert.Equal(t, "renamed", lists[1].Name)

	_, err = s.GetListByID(ctx, 404)
	assert.True(t, store.IsNotFound(err))

	n, err := s.CountLists(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
