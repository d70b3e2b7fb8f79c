package browser

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/mediashelf/internal/model"
	"github.com/nhle/mediashelf/internal/theme"
)

// ItemEntry wraps a model.Item so it can be used in a bubbles/list.
type ItemEntry struct {
	Item model.Item
}

// FilterValue returns the string used for fuzzy filtering.
func (e ItemEntry) FilterValue() string { return e.Item.Title }

// Title returns the item title for the list.
func (e ItemEntry) Title() string { return e.Item.Title }

// Description returns a short summary line for the list.
func (e ItemEntry) Description() string {
	parts := []string{string(e.Item.Type), string(e.Item.Status)}
	if e.Item.Year != nil {
		parts = append(parts, fmt.Sprintf("%d", *e.Item.Year))
	}
	return strings.Join(parts, " | ")
}

// ItemDelegate implements list.ItemDelegate for rendering catalog items.
type ItemDelegate struct{}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

// Render draws a single item line.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, li list.Item) {
	entry, ok := li.(ItemEntry)
	if !ok {
		return
	}
	fmt.Fprint(w, renderLine(entry.Item, index == m.Index()))
}

func renderLine(it model.Item, selected bool) string {
	prefix := "○"
	if it.Favorite {
		prefix = lipgloss.NewStyle().Foreground(theme.ColorRed).Render("♥")
	}

	typeBadge := theme.TypeStyle(string(it.Type)).Render(typeLabel(it.Type))
	statusBadge := theme.StatusStyle(string(it.Status)).Render(string(it.Status))

	year := ""
	if it.Year != nil {
		year = theme.DimmedStyle.Render(fmt.Sprintf(" (%d)", *it.Year))
	}

	rating := ""
	if it.Rating != nil {
		rating = theme.RatingStyle(*it.Rating).Render(fmt.Sprintf(" ★%.1f", *it.Rating))
	}

	tagBadge := ""
	if len(it.Tags) > 0 {
		names := make([]string, 0, len(it.Tags))
		for _, t := range it.Tags {
			names = append(names, t.Name)
		}
		// Show max 3 tags to avoid overflow
		if len(names) > 3 {
			names = append(names[:3], "…")
		}
		tagBadge = lipgloss.NewStyle().
			Foreground(theme.ColorMagenta).
			Render(" 🏷 " + strings.Join(names, ","))
	}

	line := fmt.Sprintf("%s %s %s %s%s%s%s",
		prefix, typeBadge, statusBadge, it.Title, year, rating, tagBadge)

	if it.Status == model.StatusCompleted || it.Status == model.StatusWatched {
		line = theme.DimmedStyle.Render(line)
	}
	if selected {
		return theme.SelectedItemStyle.Render(line)
	}
	return theme.ListItemStyle.Render(line)
}

// typeLabel returns a short fixed-width label for the item type.
func typeLabel(t model.ItemType) string {
	switch t {
	case model.ItemTypeMovie:
		return "MOV"
	case model.ItemTypeBook:
		return "BOK"
	case model.ItemTypeGame:
		return "GAM"
	case model.ItemTypeAnime:
		return "ANI"
	default:
		return "???"
	}
}
