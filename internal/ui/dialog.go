package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/mediashelf/internal/model"
	"github.com/nhle/mediashelf/internal/theme"
)

// RenderRandomPick renders the random-pick dialog for item.
func RenderRandomPick(item model.Item, width int) string {
	var b strings.Builder

	b.WriteString(theme.TitleStyle.Render("🎲 Random pick"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(item.Title))
	b.WriteString("\n\n")
	b.WriteString(ItemSummary(item))
	if len(item.Tags) > 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.ColorMagenta).Render("🏷 " + JoinTagNames(item.Tags)))
	}
	if item.Comment != nil && *item.Comment != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.DimmedStyle.Render(*item.Comment))
	}
	b.WriteString("\n\n")
	b.WriteString(theme.HelpStyle.Render("enter/esc close"))

	return theme.PanelStyle.Width(min(max(width-8, 30), 70)).Render(b.String())
}

// ItemSummary renders the type, status, year and rating badges of an item.
func ItemSummary(item model.Item) string {
	parts := []string{
		theme.TypeStyle(string(item.Type)).Render(strings.ToUpper(string(item.Type))),
		theme.StatusStyle(string(item.Status)).Render(string(item.Status)),
	}
	if item.Year != nil {
		parts = append(parts, theme.DimmedStyle.Render(fmt.Sprintf("%d", *item.Year)))
	}
	if item.Rating != nil {
		parts = append(parts, theme.RatingStyle(*item.Rating).Render(fmt.Sprintf("★ %.1f", *item.Rating)))
	}
	if item.Favorite {
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.ColorRed).Render("♥"))
	}
	return strings.Join(parts, " ")
}

// RenderError renders a recorded action error with a dismissal hint.
func RenderError(msg string) string {
	if msg == "" {
		return ""
	}
	return theme.ErrorStyle.Render("Error: "+msg) + theme.DimmedStyle.Render("  (esc to dismiss)")
}

// ParseTagNames splits comma-separated input into unsaved tags, dropping
// blanks. Repeated names are kept once, compared case-insensitively.
func ParseTagNames(s string) []model.Tag {
	var tags []model.Tag
	seen := make(map[string]struct{})
	for _, part := range strings.Split(s, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		key := model.TagKey(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		tags = append(tags, model.Tag{Name: name})
	}
	return tags
}

// JoinTagNames joins tag names for display and form prefill.
func JoinTagNames(tags []model.Tag) string {
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.Name
	}
	return strings.Join(names, ", ")
}
