package model

// Tag is a user-defined label applicable to any number of items.
// An ID of zero means the tag has not been persisted yet.
type Tag struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}
