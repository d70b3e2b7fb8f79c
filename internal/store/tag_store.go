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

// CreateTag inserts a new tag and returns its ID. A name that collides
// with an existing tag under model.TagKey yields ErrTagExists.
func (s *SQLiteStore) CreateTag(ctx context.Context, name string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, ErrInvalid.WithMessage("tag name must not be empty")
	}

	result, err := s.db.ExecContext(ctx,
		"INSERT INTO tags (name, name_key) VALUES (?, ?)", name, model.TagKey(name))
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrTagExists.WithCause(err)
		}
		return 0, fmt.Errorf("creating tag: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading tag id: %w", err)
	}
	return id, nil
}

// RenameTag changes a tag's name.
func (s *SQLiteStore) RenameTag(ctx context.Context, id int64, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalid.WithMessage("tag name must not be empty")
	}
	result, err := s.db.ExecContext(ctx,
		"UPDATE tags SET name = ?, name_key = ? WHERE id = ?", name, model.TagKey(name), id)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrTagExists.WithCause(err)
		}
		return fmt.Errorf("renaming tag %d: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound.WithMessage(fmt.Sprintf("tag %d not found", id))
	}
	return nil
}

// DeleteTag removes a tag. CASCADE on item_tags removes associations.
// Deleting a missing tag is a no-op.
func (s *SQLiteStore) DeleteTag(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM tags WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting tag %d: %w", id, err)
	}
	return nil
}

// GetTagByID retrieves a single tag.
func (s *SQLiteStore) GetTagByID(ctx context.Context, id int64) (*model.Tag, error) {
	var t model.Tag
	err := s.db.GetContext(ctx, &t, "SELECT id, name FROM tags WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound.WithMessage(fmt.Sprintf("tag %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("getting tag %d: %w", id, err)
	}
	return &t, nil
}

// GetTagByName looks a tag up by name, ignoring case.
func (s *SQLiteStore) GetTagByName(ctx context.Context, name string) (*model.Tag, error) {
	name = strings.TrimSpace(name)
	var t model.Tag
	err := s.db.GetContext(ctx, &t,
		"SELECT id, name FROM tags WHERE name_key = ?", model.TagKey(name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound.WithMessage(fmt.Sprintf("tag %q not found", name))
	}
	if err != nil {
		return nil, fmt.Errorf("getting tag %q: %w", name, err)
	}
	return &t, nil
}

// GetTags retrieves all tags ordered by name.
func (s *SQLiteStore) GetTags(ctx context.Context) ([]model.Tag, error) {
	var tags []model.Tag
	if err := s.db.SelectContext(ctx, &tags, "SELECT id, name FROM tags ORDER BY name, id"); err != nil {
		return nil, fmt.Errorf("querying tags: %w", err)
	}
	return tags, nil
}

// GetTagsForItem retrieves all tags associated with an item.
func (s *SQLiteStore) GetTagsForItem(ctx context.Context, itemID int64) ([]model.Tag, error) {
	var tags []model.Tag
	err := s.db.SelectContext(ctx, &tags, `
		SELECT t.id AS id, t.name AS name FROM tags t
		INNER JOIN item_tags it ON t.id = it.tag_id
		WHERE it.item_id = ?
		ORDER BY t.name, t.id`, itemID)
	if err != nil {
		return nil, fmt.Errorf("querying tags for item %d: %w", itemID, err)
	}
	return tags, nil
}

// itemTagRow is one tag joined to the item it is attached to.
type itemTagRow struct {
	ItemID int64  `db:"item_id"`
	ID     int64  `db:"id"`
	Name   string `db:"name"`
}

// GetTagsForItems resolves tags for many items in one query. Items without
// tags are absent from the returned map.
func (s *SQLiteStore) GetTagsForItems(ctx context.Context, itemIDs []int64) (map[int64][]model.Tag, error) {
	out := make(map[int64][]model.Tag, len(itemIDs))
	if len(itemIDs) == 0 {
		return out, nil
	}

	query, args, err := sqlx.In(`
		SELECT it.item_id AS item_id, t.id AS id, t.name AS name FROM tags t
		INNER JOIN item_tags it ON t.id = it.tag_id
		WHERE it.item_id IN (?)
		ORDER BY t.name, t.id`, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("building tag lookup: %w", err)
	}

	var rows []itemTagRow
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("querying tags for items: %w", err)
	}
	for _, r := range rows {
		out[r.ItemID] = append(out[r.ItemID], model.Tag{ID: r.ID, Name: r.Name})
	}
	return out, nil
}

// AddItemTag links a tag to an item. Linking twice is a no-op.
func (s *SQLiteStore) AddItemTag(ctx context.Context, itemID, tagID int64) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO item_tags (item_id, tag_id) VALUES (?, ?)",
		itemID, tagID)
	if err != nil {
		return fmt.Errorf("adding tag %d to item %d: %w", tagID, itemID, err)
	}
	return nil
}

// RemoveItemTag unlinks a tag from an item. Removing a missing link is a no-op.
func (s *SQLiteStore) RemoveItemTag(ctx context.Context, itemID, tagID int64) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM item_tags WHERE item_id = ? AND tag_id = ?",
		itemID, tagID)
	if err != nil {
		return fmt.Errorf("removing tag %d from item %d: %w", tagID, itemID, err)
	}
	return nil
}

// CountTags returns the number of tags.
func (s *SQLiteStore) CountTags(ctx context.Context) (int, error) {
	return s.count(ctx, "tags")
}

// setItemTags replaces all tag associations for an item within tx.
func setItemTags(ctx context.Context, tx *sqlx.Tx, itemID int64, tags []model.Tag) error {
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM item_tags WHERE item_id = ?", itemID); err != nil {
		return fmt.Errorf("clearing item tags: %w", err)
	}
	return insertItemTags(ctx, tx, itemID, tags)
}

// insertItemTags links every tag to itemID. A tag without an ID is found
// or created by name within tx. Tags with neither ID nor name are skipped.
func insertItemTags(ctx context.Context, tx *sqlx.Tx, itemID int64, tags []model.Tag) error {
	for _, t := range tags {
		if t.ID == 0 {
			name := strings.TrimSpace(t.Name)
			if name == "" {
				continue
			}
			id, err := provisionTag(ctx, tx, name)
			if err != nil {
				return err
			}
			t.ID = id
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO item_tags (item_id, tag_id) VALUES (?, ?)",
			itemID, t.ID); err != nil {
			return fmt.Errorf("setting tag %d on item %d: %w", t.ID, itemID, err)
		}
	}
	return nil
}

// provisionTag returns the ID of the tag matching name under model.TagKey,
// creating it with the given casing when none exists.
func provisionTag(ctx context.Context, tx *sqlx.Tx, name string) (int64, error) {
	key := model.TagKey(name)
	if _, err := tx.ExecContext(ctx,
		"INSERT OR IGNORE INTO tags (name, name_key) VALUES (?, ?)", name, key); err != nil {
		return 0, fmt.Errorf("provisioning tag %q: %w", name, err)
	}
	var id int64
	if err := tx.GetContext(ctx, &id, "SELECT id FROM tags WHERE name_key = ?", key); err != nil {
		return 0, fmt.Errorf("resolving tag %q: %w", name, err)
	}
	return id, nil
}
