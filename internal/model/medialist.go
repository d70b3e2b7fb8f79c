package model

// MediaList is a user-defined named collection of items.
type MediaList struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`

	// Items is resolved from list_items on every read, newest first.
	Items []Item `json:"items,omitempty" db:"-"`
}

// Contains reports whether the list has the item with the given ID.
func (l MediaList) Contains(itemID int64) bool {
	for _, it := range l.Items {
		if it.ID == itemID {
			return true
		}
	}
	return false
}

// ItemIDs returns the IDs of the list's resolved items.
func (l MediaList) ItemIDs() []int64 {
	ids := make([]int64, 0, len(l.Items))
	for _, it := range l.Items {
		ids = append(ids, it.ID)
	}
	return ids
}

// Stats holds catalog-wide row counts for the home screen.
type Stats struct {
	Items int `json:"items"`
	Tags  int `json:"tags"`
	Lists int `json:"lists"`
}
