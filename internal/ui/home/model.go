package home

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/mediashelf/internal/keys"
	"github.com/nhle/mediashelf/internal/theme"
	"github.com/nhle/mediashelf/internal/ui"
	"github.com/nhle/mediashelf/internal/viewstate"
)

// Model is the home screen showing catalog counts.
type Model struct {
	state  *viewstate.Home
	keys   *keys.KeyMap
	width  int
	height int
}

// New creates the home screen model.
func New(state *viewstate.Home, k *keys.KeyMap, width, height int) Model {
	return Model{state: state, keys: k, width: width, height: height}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the home screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Back):
			m.state.ClearError()
		case msg.String() == "R":
			h := m.state
			return m, func() tea.Msg {
				_ = h.Refresh(context.Background())
				return nil
			}
		}
	}
	return m, nil
}

// View renders the home screen.
func (m Model) View() string {
	st := m.state.State()

	var b strings.Builder
	b.WriteString(theme.TitleStyle.Render("📚 MediaShelf"))
	b.WriteString("\n\n")

	cards := []string{
		card("Items", st.Stats.Items, theme.ColorOrange),
		card("Tags", st.Stats.Tags, theme.ColorMagenta),
		card("Lists", st.Stats.Lists, theme.ColorGreen),
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))

	if line := ui.RenderError(st.Err); line != "" {
		b.WriteString("\n\n")
		b.WriteString(line)
	}

	b.WriteString("\n\n")
	b.WriteString(theme.HelpStyle.Render("2 items | 3 tags | 4 lists | R refresh | ? help"))

	return lipgloss.NewStyle().Padding(1, 2).Width(m.width).Height(m.height).Render(b.String())
}

func card(label string, n int, color lipgloss.AdaptiveColor) string {
	value := lipgloss.NewStyle().Bold(true).Foreground(color).Render(fmt.Sprintf("%d", n))
	return theme.PanelStyle.
		Width(16).
		Align(lipgloss.Center).
		MarginRight(2).
		Render(value + "\n" + theme.DimmedStyle.Render(label))
}

// SetSize updates dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
