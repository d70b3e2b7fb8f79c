package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue    = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorOrange  = lipgloss.AdaptiveColor{Dark: "#FFA94D", Light: "#C05621"}
	ColorMagenta = lipgloss.AdaptiveColor{Dark: "#CC5DE8", Light: "#805AD5"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite   = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// Styles shared by every screen. Apply rebuilds them.
var (
	HeaderStyle       lipgloss.Style
	StatusBarStyle    lipgloss.Style
	PanelStyle        lipgloss.Style
	ListItemStyle     lipgloss.Style
	SelectedItemStyle lipgloss.Style
	HelpStyle         lipgloss.Style
	DimmedStyle       lipgloss.Style
	ErrorStyle        lipgloss.Style
	TabStyle          lipgloss.Style
	ActiveTabStyle    lipgloss.Style
	TitleStyle        lipgloss.Style
)

func init() { build() }

// Apply switches the palette by name. "mono" drops accent colors; any
// other name selects the default palette.
func Apply(name string) {
	if strings.EqualFold(name, "mono") {
		ColorBlue = ColorWhite
		ColorGreen = ColorWhite
		ColorYellow = ColorWhite
		ColorRed = ColorWhite
		ColorOrange = ColorWhite
		ColorMagenta = ColorGray
	}
	build()
}

func build() {
	HeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorWhite).
		Background(ColorBlue).
		Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
		Foreground(ColorWhite).
		Background(ColorSubtle).
		Padding(0, 1)

	PanelStyle = lipgloss.NewStyle().
		Padding(1, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder)

	ListItemStyle = lipgloss.NewStyle().
		PaddingLeft(2)

	SelectedItemStyle = lipgloss.NewStyle().
		PaddingLeft(1).
		Bold(true).
		Foreground(ColorBlue).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(ColorBlue)

	HelpStyle = lipgloss.NewStyle().
		Foreground(ColorGray).
		Italic(true)

	DimmedStyle = lipgloss.NewStyle().
		Foreground(ColorGray)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(ColorRed).
		Bold(true)

	TabStyle = lipgloss.NewStyle().
		Foreground(ColorGray).
		Padding(0, 2)

	ActiveTabStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorBlue).
		Underline(true).
		Padding(0, 2)

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorWhite).
		MarginBottom(1)
}

// StatusStyle returns a color-coded style for an item status.
func StatusStyle(status string) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Padding(0, 1)

	switch status {
	case "planned":
		return base.Foreground(ColorBlue)
	case "watching", "reading", "playing":
		return base.Foreground(ColorYellow)
	case "watched", "completed":
		return base.Foreground(ColorGreen)
	default:
		return base.Foreground(ColorGray)
	}
}

// TypeStyle returns a color-coded style for an item type badge.
func TypeStyle(itemType string) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch itemType {
	case "movie":
		return base.Foreground(ColorOrange)
	case "book":
		return base.Foreground(ColorGreen)
	case "game":
		return base.Foreground(ColorRed)
	case "anime":
		return base.Foreground(ColorMagenta)
	default:
		return base.Foreground(ColorGray)
	}
}

// RatingStyle colors a 1-10 rating from red to green.
func RatingStyle(rating float64) lipgloss.Style {
	base := lipgloss.NewStyle()

	switch {
	case rating >= 8:
		return base.Foreground(ColorGreen)
	case rating >= 5:
		return base.Foreground(ColorYellow)
	default:
		return base.Foreground(ColorRed)
	}
}
