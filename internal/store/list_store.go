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

// CreateList inserts a list together with its initial members.
func (s *SQLiteStore) CreateList(ctx context.Context, name string, itemIDs []int64) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, ErrInvalid.WithMessage("list name must not be empty")
	}

	var id int64
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, "INSERT INTO lists (name) VALUES (?)", name)
		if err != nil {
			return fmt.Errorf("creating list: %w", err)
		}
		id, err = result.LastInsertId()
		if err != nil {
			return fmt.Errorf("reading list id: %w", err)
		}
		return insertListItems(ctx, tx, id, itemIDs)
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// RenameList changes a list's name.
func (s *SQLiteStore) RenameList(ctx context.Context, id int64, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalid.WithMessage("list name must not be empty")
	}
	result, err := s.db.ExecContext(ctx, "UPDATE lists SET name = ? WHERE id = ?", name, id)
	if err != nil {
		return fmt.Errorf("renaming list %d: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound.WithMessage(fmt.Sprintf("list %d not found", id))
	}
	return nil
}

// DeleteList removes a list. CASCADE on list_items removes memberships;
// the items themselves are untouched. Deleting a missing list is a no-op.
func (s *SQLiteStore) DeleteList(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM lists WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting list %d: %w", id, err)
	}
	return nil
}

// GetListByID retrieves a list without its members.
func (s *SQLiteStore) GetListByID(ctx context.Context, id int64) (*model.MediaList, error) {
	var l model.MediaList
	err := s.db.GetContext(ctx, &l, "SELECT id, name FROM lists WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound.WithMessage(fmt.Sprintf("list %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("getting list %d: %w", id, err)
	}
	return &l, nil
}

// GetLists retrieves every list without members, newest first.
func (s *SQLiteStore) GetLists(ctx context.Context) ([]model.MediaList, error) {
	var lists []model.MediaList
	if err := s.db.SelectContext(ctx, &lists, "SELECT id, name FROM lists ORDER BY id DESC"); err != nil {
		return nil, fmt.Errorf("querying lists: %w", err)
	}
	return lists, nil
}

// AddListItem adds an item to a list. Adding twice is a no-op.
func (s *SQLiteStore) AddListItem(ctx context.Context, listID, itemID int64) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO list_items (list_id, item_id) VALUES (?, ?)",
		listID, itemID)
	if err != nil {
		return fmt.Errorf("adding item %d to list %d: %w", itemID, listID, err)
	}
	return nil
}

// RemoveListItem removes an item from a list. Removing a non-member is a no-op.
func (s *SQLiteStore) RemoveListItem(ctx context.Context, listID, itemID int64) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM list_items WHERE list_id = ? AND item_id = ?",
		listID, itemID)
	if err != nil {
		return fmt.Errorf("removing item %d from list %d: %w", itemID, listID, err)
	}
	return nil
}

// SetListItems replaces a list's membership. Readers observe either the
// old or the new set, never a partial one.
func (s *SQLiteStore) SetListItems(ctx context.Context, listID int64, itemIDs []int64) error {
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		var exists int
		if err := tx.GetContext(ctx, &exists,
			"SELECT COUNT(*) FROM lists WHERE id = ?", listID); err != nil {
			return fmt.Errorf("checking list %d: %w", listID, err)
		}
		if exists == 0 {
			return ErrNotFound.WithMessage(fmt.Sprintf("list %d not found", listID))
		}

		if _, err := tx.ExecContext(ctx,
			"DELETE FROM list_items WHERE list_id = ?", listID); err != nil {
			return fmt.Errorf("clearing list items: %w", err)
		}
		return insertListItems(ctx, tx, listID, itemIDs)
	})
}

// CountLists returns the number of lists.
func (s *SQLiteStore) CountLists(ctx context.Context) (int, error) {
	return s.count(ctx, "lists")
}

// insertListItems adds every item in itemIDs to listID within tx.
func insertListItems(ctx context.Context, tx *sqlx.Tx, listID int64, itemIDs []int64) error {
	for _, itemID := range dedupeIDs(itemIDs) {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO list_items (list_id, item_id) VALUES (?, ?)",
			listID, itemID); err != nil {
			return fmt.Errorf("adding item %d to list %d: %w", itemID, listID, err)
		}
	}
	return nil
}
