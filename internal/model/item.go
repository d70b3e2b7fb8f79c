package model

import (
	"fmt"
	"strings"
)

// ItemType identifies the kind of media an item is.
type ItemType string

// Item type constants.
const (
	ItemTypeMovie ItemType = "movie"
	ItemTypeBook  ItemType = "book"
	ItemTypeGame  ItemType = "game"
	ItemTypeAnime ItemType = "anime"
)

// AllItemTypes lists every item type in display order.
var AllItemTypes = []ItemType{ItemTypeMovie, ItemTypeBook, ItemTypeGame, ItemTypeAnime}

// Valid reports whether t is a known item type.
func (t ItemType) Valid() bool {
	for _, known := range AllItemTypes {
		if t == known {
			return true
		}
	}
	return false
}

func (t ItemType) String() string { return string(t) }

// ParseItemType converts user input like "Movie" into an ItemType.
func ParseItemType(s string) (ItemType, error) {
	t := ItemType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown item type %q", s)
	}
	return t, nil
}

// ItemStatus is the consumption state of an item.
type ItemStatus string

// Item status constants.
const (
	StatusPlanned   ItemStatus = "planned"
	StatusWatching  ItemStatus = "watching"
	StatusWatched   ItemStatus = "watched"
	StatusReading   ItemStatus = "reading"
	StatusPlaying   ItemStatus = "playing"
	StatusCompleted ItemStatus = "completed"
)

// AllItemStatuses lists every status in display order.
var AllItemStatuses = []ItemStatus{
	StatusPlanned,
	StatusWatching,
	StatusWatched,
	StatusReading,
	StatusPlaying,
	StatusCompleted,
}

// Valid reports whether s is a known status.
func (s ItemStatus) Valid() bool {
	for _, known := range AllItemStatuses {
		if s == known {
			return true
		}
	}
	return false
}

func (s ItemStatus) String() string { return string(s) }

// ParseItemStatus converts user input like "Watched" into an ItemStatus.
func ParseItemStatus(s string) (ItemStatus, error) {
	st := ItemStatus(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("unknown item status %q", s)
	}
	return st, nil
}

// Item is a single cataloged media entry.
type Item struct {
	ID       int64      `json:"id" db:"id"`
	Title    string     `json:"title" db:"title" validate:"required"`
	Type     ItemType   `json:"type" db:"type" validate:"required,oneof=movie book game anime"`
	Year     *int       `json:"year,omitempty" db:"year" validate:"omitempty,gte=1,lte=9999"`
	Status   ItemStatus `json:"status" db:"status" validate:"required,oneof=planned watching watched reading playing completed"`
	Favorite bool       `json:"favorite" db:"favorite"`
	Rating   *float64   `json:"rating,omitempty" db:"rating" validate:"omitempty,gte=1,lte=10"`
	Comment  *string    `json:"comment,omitempty" db:"comment"`

	// Tags is resolved from item_tags on every read.
	Tags []Tag `json:"tags,omitempty" db:"-"`
}

// HasTag reports whether the item carries the tag with the given ID.
func (i Item) HasTag(tagID int64) bool {
	for _, t := range i.Tags {
		if t.ID == tagID {
			return true
		}
	}
	return false
}

// TagIDs returns the IDs of the item's resolved tags.
func (i Item) TagIDs() []int64 {
	ids := make([]int64, 0, len(i.Tags))
	for _, t := range i.Tags {
		ids = append(ids, t.ID)
	}
	return ids
}
