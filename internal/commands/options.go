package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nhle/mediashelf/internal/catalog"
	"github.com/nhle/mediashelf/internal/model"
)

// FilterOptions are the item filter flags.
type FilterOptions struct {
	Type      string
	Status    string
	Tag       string
	Query     string
	Year      int
	Favorites bool
}

// AddFilterArgs wires item filter flags on cmd.
func AddFilterArgs(cmd *cobra.Command, o *FilterOptions) {
	cmd.Flags().StringVar(&o.Type, "type", "",
		"Only items of this type (movie, book, game, anime).")
	cmd.Flags().StringVar(&o.Status, "status", "",
		"Only items with this status (planned, watching, watched, reading, playing, completed).")
	cmd.Flags().StringVar(&o.Tag, "tag", "",
		"Only items carrying this tag, matched case-insensitively.")
	cmd.Flags().StringVar(&o.Query, "query", "",
		"Only items whose title contains this text.")
	cmd.Flags().IntVar(&o.Year, "year", 0,
		"Only items released in this year.")
	cmd.Flags().BoolVar(&o.Favorites, "favorites", false,
		"Only favorites.")
}

// Filter converts the flags into a catalog filter. An unknown tag name
// reports found=false; nothing can match it.
func (o *FilterOptions) Filter(ctx context.Context, svc *catalog.Service) (f catalog.Filter, found bool, err error) {
	f.Query = strings.TrimSpace(o.Query)

	if o.Type != "" {
		t, err := model.ParseItemType(o.Type)
		if err != nil {
			return f, false, err
		}
		f.Type = &t
	}
	if o.Status != "" {
		st, err := model.ParseItemStatus(o.Status)
		if err != nil {
			return f, false, err
		}
		f.Status = &st
	}
	if o.Year != 0 {
		y := o.Year
		f.Year = &y
	}
	if o.Favorites {
		fav := true
		f.Favorite = &fav
	}

	if name := strings.TrimSpace(o.Tag); name != "" {
		tags, err := svc.ListTags(ctx)
		if err != nil {
			return f, false, fmt.Errorf("listing tags: %w", err)
		}
		key := model.TagKey(name)
		for _, t := range tags {
			if model.TagKey(t.Name) == key {
				id := t.ID
				f.TagID = &id
				return f, true, nil
			}
		}
		return f, false, nil
	}
	return f, true, nil
}
