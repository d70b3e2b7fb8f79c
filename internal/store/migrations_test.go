package store

import (
	"context"
	"database/sql/driver"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A v2 database may hold tags that collide only under Unicode folding.
// Upgrading merges them into the oldest tag and keeps every item link.
func TestMigrationV3_MergesFoldedDuplicates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "v2.db")

	db, err := sqlx.Open("sqlite", dsn(path))
	require.NoError(t, err)
	for _, m := range migrations[:2] {
		_, err := db.Exec(m.sql)
		require.NoError(t, err)
	}
	_, err = db.Exec(`
INSERT INTO items (id, title, type, status) VALUES (1, 'One', 'movie', 'planned'), (2, 'Two', 'book', 'planned');
INSERT INTO tags (id, name) VALUES (1, 'Ёлка'), (2, 'ёлка'), (3, 'Other');
INSERT INTO item_tags (item_id, tag_id) VALUES (1, 1), (2, 2), (2, 1), (2, 3);
`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	s, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer s.Close()
	ctx := context.Background()

	tags, err := s.GetTags(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 2)

	elka, err := s.GetTagByName(ctx, "ЁЛКА")
	require.NoError(t, err)
	assert.Equal(t, int64(1), elka.ID)
	assert.Equal(t, "Ёлка", elka.Name)

	items, err := s.GetItemsForTag(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	_, err = s.CreateTag(ctx, "ёлка")
	assert.ErrorIs(t, err, ErrTagExists)
}

func TestSQLFold(t *testing.T) {
	got, err := sqlFold(nil, []driver.Value{"ÉLITE"})
	require.NoError(t, err)
	assert.Equal(t, "élite", got)

	got, err = sqlFold(nil, []driver.Value{nil})
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = sqlFold(nil, []driver.Value{int64(4)})
	assert.Error(t, err)
}
