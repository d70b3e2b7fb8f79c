package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/nhle/mediashelf/internal/model"
)

// itemColumns selects an item row with names matching model.Item db tags.
const itemColumns = `i.id AS id, i.title AS title, i.type AS type, i.year AS year,
	i.status AS status, i.favorite AS favorite, i.rating AS rating, i.comment AS comment`

// CreateItem inserts an item and links its tags, provisioning named tags
// that do not exist yet in the same transaction.
func (s *SQLiteStore) CreateItem(ctx context.Context, item model.Item) (int64, error) {
	var id int64
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, `
			INSERT INTO items (title, type, year, status, favorite, rating, comment)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			item.Title, item.Type, item.Year, item.Status,
			boolToInt(item.Favorite), item.Rating, item.Comment,
		)
		if err != nil {
			return fmt.Errorf("creating item: %w", err)
		}
		id, err = result.LastInsertId()
		if err != nil {
			return fmt.Errorf("reading item id: %w", err)
		}
		return insertItemTags(ctx, tx, id, item.Tags)
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// UpdateItem replaces every scalar field and the whole tag set of an item.
func (s *SQLiteStore) UpdateItem(ctx context.Context, item model.Item) error {
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE items SET title = ?, type = ?, year = ?, status = ?,
				favorite = ?, rating = ?, comment = ?
			WHERE id = ?`,
			item.Title, item.Type, item.Year, item.Status,
			boolToInt(item.Favorite), item.Rating, item.Comment, item.ID,
		)
		if err != nil {
			return fmt.Errorf("updating item %d: %w", item.ID, err)
		}
		rows, _ := result.RowsAffected()
		if rows == 0 {
			return ErrNotFound.WithMessage(fmt.Sprintf("item %d not found", item.ID))
		}
		return setItemTags(ctx, tx, item.ID, item.Tags)
	})
}

// DeleteItem removes an item. CASCADE removes its tag links and list
// memberships. Deleting a missing item is a no-op.
func (s *SQLiteStore) DeleteItem(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM items WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting item %d: %w", id, err)
	}
	return nil
}

// GetItemByID retrieves a single item with its tags.
func (s *SQLiteStore) GetItemByID(ctx context.Context, id int64) (*model.Item, error) {
	var item model.Item
	err := s.db.GetContext(ctx, &item,
		"SELECT "+itemColumns+" FROM items i WHERE i.id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound.WithMessage(fmt.Sprintf("item %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("getting item %d: %w", id, err)
	}

	tags, err := s.GetTagsForItem(ctx, id)
	if err != nil {
		return nil, err
	}
	item.Tags = tags
	return &item, nil
}

// GetItems retrieves items matching every field set in filter, newest first.
func (s *SQLiteStore) GetItems(ctx context.Context, filter ItemFilter) ([]model.Item, error) {
	query, args := buildItemQuery(filter)
	return s.selectItems(ctx, query, args...)
}

// GetItemsForTag retrieves every item carrying the tag, newest first.
func (s *SQLiteStore) GetItemsForTag(ctx context.Context, tagID int64) ([]model.Item, error) {
	return s.selectItems(ctx, `
		SELECT `+itemColumns+` FROM items i
		INNER JOIN item_tags it ON i.id = it.item_id
		WHERE it.tag_id = ?
		ORDER BY i.id DESC`, tagID)
}

// GetItemsForList retrieves the members of a list, newest first.
func (s *SQLiteStore) GetItemsForList(ctx context.Context, listID int64) ([]model.Item, error) {
	return s.selectItems(ctx, `
		SELECT `+itemColumns+` FROM items i
		INNER JOIN list_items li ON i.id = li.item_id
		WHERE li.list_id = ?
		ORDER BY i.id DESC`, listID)
}

// CountItems returns the number of items.
func (s *SQLiteStore) CountItems(ctx context.Context) (int, error) {
	return s.count(ctx, "items")
}

// selectItems runs an item query and resolves tags for every row.
func (s *SQLiteStore) selectItems(ctx context.Context, query string, args ...any) ([]model.Item, error) {
	var items []model.Item
	if err := s.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("querying items: %w", err)
	}
	if len(items) == 0 {
		return items, nil
	}

	ids := make([]int64, len(items))
	for i := range items {
		ids[i] = items[i].ID
	}
	tagsByItem, err := s.GetTagsForItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].Tags = tagsByItem[items[i].ID]
	}
	return items, nil
}

// buildItemQuery constructs a SQL query and args from an ItemFilter.
func buildItemQuery(filter ItemFilter) (string, []any) {
	var conditions []string
	var args []any

	if filter.Query != nil {
		if q := strings.TrimSpace(*filter.Query); q != "" {
			conditions = append(conditions, "instr("+foldFunc+"(i.title), ?) > 0")
			args = append(args, model.Fold(q))
		}
	}
	if filter.Type != nil {
		conditions = append(conditions, "i.type = ?")
		args = append(args, string(*filter.Type))
	}
	if filter.Status != nil {
		conditions = append(conditions, "i.status = ?")
		args = append(args, string(*filter.Status))
	}
	if filter.Favorite != nil {
		conditions = append(conditions, "i.favorite = ?")
		args = append(args, boolToInt(*filter.Favorite))
	}
	if filter.Year != nil {
		conditions = append(conditions, "i.year = ?")
		args = append(args, *filter.Year)
	}

	query := "SELECT " + itemColumns + " FROM items i"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY i.id DESC"

	return query, args
}
