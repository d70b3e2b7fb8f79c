// Package help renders the key reference overlay opened with "?".
package help

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/mediashelf/internal/keys"
	"github.com/nhle/mediashelf/internal/theme"
)

// notes are shown under the key table: the triggers that are not keys.
var notes = []struct{ topic, text string }{
	{"Random", "r picks from what the current screen shows; repeats within the debounce window are ignored."},
	{"Shake", "start with --sensor PATH to read \"x y z\" samples from a file or FIFO; a shake picks at random."},
	{"Tags", "type tags comma-separated in the item form; names match ignoring case and are created on save."},
	{"CLI", "mediashelf pick, stats, config init and version work without the UI."},
}

var topicStyle = lipgloss.NewStyle().Bold(true)

// Model is the help overlay.
type Model struct {
	keys          *keys.KeyMap
	help          help.Model
	width, height int
}

// New creates the overlay for k.
func New(k *keys.KeyMap, width, height int) Model {
	m := Model{keys: k, help: help.New()}
	m.help.ShowAll = true
	m.SetSize(width, height)
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// Update is a no-op; the app closes the overlay.
func (m Model) Update(tea.Msg) (Model, tea.Cmd) { return m, nil }

func (m Model) View() string {
	var b strings.Builder
	for _, n := range notes {
		b.WriteString(topicStyle.Render(n.topic+":") + " " + theme.DimmedStyle.Render(n.text) + "\n")
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		theme.TitleStyle.Render("MediaShelf keys"),
		m.help.View(m.keys),
		"",
		strings.TrimRight(b.String(), "\n"),
	)
	return theme.PanelStyle.
		Width(max(m.width-4, 20)).
		Height(max(m.height-4, 5)).
		Render(content)
}

// SetSize updates the overlay dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = max(width-4, 20)
}
