package tagmgr

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/mediashelf/internal/keys"
	"github.com/nhle/mediashelf/internal/model"
	"github.com/nhle/mediashelf/internal/theme"
	"github.com/nhle/mediashelf/internal/ui"
	"github.com/nhle/mediashelf/internal/viewstate"
)

type tagMode int

const (
	modeList tagMode = iota
	modeForm
	modeConfirmDelete
)

type formBindings struct {
	name    string
	confirm bool
}

type tagSavedMsg struct{ err error }
type tagDeletedMsg struct{ err error }

// Model is the Bubble Tea model for tag management.
type Model struct {
	mode        tagMode
	state       *viewstate.Tags
	keys        *keys.KeyMap
	selectedIdx int
	editingID   int64
	form        *huh.Form
	confirmForm *huh.Form
	fb          *formBindings
	statusMsg   string
	width       int
	height      int
}

// New creates a new tag manager model.
func New(state *viewstate.Tags, k *keys.KeyMap, width, height int) Model {
	return Model{
		mode:  modeList,
		state: state,
		keys:  k,
		fb:    &formBindings{},
		width: width, height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Refresh keeps the cursor inside the current tag list.
func (m *Model) Refresh() {
	n := len(m.state.State().Tags)
	if m.selectedIdx >= n {
		m.selectedIdx = max(n-1, 0)
	}
}

// Capturing reports whether a form has focus.
func (m Model) Capturing() bool {
	return m.mode != modeList
}

// RequestRandom picks a random item carrying the highlighted tag.
func (m Model) RequestRandom() tea.Cmd {
	tag, ok := m.cursorTag()
	if !ok {
		return nil
	}
	t := m.state
	return func() tea.Msg {
		if sel := t.State().Selected; sel == nil || sel.ID != tag.ID {
			t.SelectTag(tag.ID)
		}
		t.RequestRandom(context.Background())
		return nil
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tagSavedMsg:
		m.mode = modeList
		m.statusMsg = ""
		if msg.err == nil {
			m.statusMsg = "Tag saved"
		}
		return m, nil

	case tagDeletedMsg:
		m.mode = modeList
		m.statusMsg = ""
		if msg.err == nil {
			m.statusMsg = "Tag deleted"
		}
		m.Refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateActiveForm(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.mode {
	case modeList:
		return m.handleListKey(msg)
	case modeForm:
		return m.updateForm(msg)
	case modeConfirmDelete:
		return m.updateConfirm(msg)
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	st := m.state.State()

	if st.Random.Visible {
		if key.Matches(msg, m.keys.Select, m.keys.Back) {
			m.state.DismissRandom()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		switch {
		case st.Err != "":
			m.state.ClearError()
		case st.Selected != nil:
			m.state.ClearSelection()
		}
		m.statusMsg = ""
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if len(st.Tags) > 0 {
			m.selectedIdx = (m.selectedIdx + 1) % len(st.Tags)
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if len(st.Tags) > 0 {
			m.selectedIdx--
			if m.selectedIdx < 0 {
				m.selectedIdx = len(st.Tags) - 1
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Select):
		if tag, ok := m.cursorTag(); ok {
			m.state.SelectTag(tag.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.New):
		m.editingID = 0
		m.fb.name = ""
		m.form = m.buildForm()
		m.mode = modeForm
		return m, m.form.Init()

	case key.Matches(msg, m.keys.Edit):
		tag, ok := m.cursorTag()
		if !ok {
			return m, nil
		}
		m.editingID = tag.ID
		m.fb.name = tag.Name
		m.form = m.buildForm()
		m.mode = modeForm
		return m, m.form.Init()

	case key.Matches(msg, m.keys.Delete):
		tag, ok := m.cursorTag()
		if !ok {
			return m, nil
		}
		m.editingID = tag.ID
		m.fb.confirm = false
		m.confirmForm = m.buildConfirmForm(tag.Name)
		m.mode = modeConfirmDelete
		return m, m.confirmForm.Init()

	case key.Matches(msg, m.keys.Random):
		return m, m.RequestRandom()
	}
	return m, nil
}

func (m Model) cursorTag() (model.Tag, bool) {
	tags := m.state.State().Tags
	if m.selectedIdx < 0 || m.selectedIdx >= len(tags) {
		return model.Tag{}, false
	}
	return tags[m.selectedIdx], true
}

func (m Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("Tag name").
				Value(&m.fb.name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
		),
	).WithWidth(ui.FormWidth(m.width)).WithHeight(ui.FormHeight(m.height))
}

func (m Model) buildConfirmForm(name string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete tag %q?", name)).
				Description("This tag will be removed from all items.").
				Affirmative("Yes, delete").
				Negative("Cancel").
				Value(&m.fb.confirm),
		),
	).WithWidth(ui.FormWidth(m.width)).WithHeight(ui.FormHeight(m.height))
}

func (m Model) updateForm(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}
	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}
	if m.form.State == huh.StateCompleted {
		m.mode = modeList
		return m, m.saveTag()
	}
	if m.form.State == huh.StateAborted {
		m.mode = modeList
		return m, nil
	}
	return m, cmd
}

func (m Model) updateConfirm(msg tea.Msg) (Model, tea.Cmd) {
	if m.confirmForm == nil {
		return m, nil
	}
	mdl, cmd := m.confirmForm.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.confirmForm = f
	}
	if m.confirmForm.State == huh.StateCompleted {
		m.mode = modeList
		if m.fb.confirm {
			return m, m.deleteTag(m.editingID)
		}
		return m, nil
	}
	if m.confirmForm.State == huh.StateAborted {
		m.mode = modeList
		return m, nil
	}
	return m, cmd
}

func (m Model) updateActiveForm(msg tea.Msg) (Model, tea.Cmd) {
	switch m.mode {
	case modeForm:
		return m.updateForm(msg)
	case modeConfirmDelete:
		return m.updateConfirm(msg)
	}
	return m, nil
}

// View renders the tag manager.
func (m Model) View() string {
	switch m.mode {
	case modeForm:
		return m.viewForm(m.form)
	case modeConfirmDelete:
		return m.viewForm(m.confirmForm)
	}

	st := m.state.State()
	if st.Random.Visible {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			ui.RenderRandomPick(st.Random.Item, m.width))
	}
	return m.viewList(st)
}

func (m Model) viewList(st viewstate.TagsState) string {
	var b strings.Builder

	b.WriteString(theme.TitleStyle.Render("Tags"))
	b.WriteString("\n\n")

	if len(st.Tags) == 0 {
		emptyStyle := lipgloss.NewStyle().Foreground(theme.ColorGray).Italic(true)
		if st.Loading {
			b.WriteString(emptyStyle.Render("Loading..."))
		} else {
			b.WriteString(emptyStyle.Render("No tags yet. Press 'n' to create one."))
		}
	} else {
		for i, t := range st.Tags {
			label := fmt.Sprintf("🏷  %s", t.Name)
			if st.Selected != nil && st.Selected.ID == t.ID {
				label += lipgloss.NewStyle().Foreground(theme.ColorGreen).Render("  ✓")
			}

			if i == m.selectedIdx {
				b.WriteString(theme.SelectedItemStyle.Render(label))
			} else {
				b.WriteString(theme.ListItemStyle.Render(label))
			}
			b.WriteString("\n")
		}
	}

	if line := ui.RenderError(st.Err); line != "" {
		b.WriteString("\n")
		b.WriteString(line)
	} else if m.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.ColorYellow).Italic(true).Render(m.statusMsg))
	}

	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.ColorGray).Render(
		"enter select | n new | e rename | d delete | r random",
	))

	return lipgloss.NewStyle().Padding(1, 2).Width(m.width).Height(m.height).Render(b.String())
}

func (m Model) viewForm(f *huh.Form) string {
	if f == nil {
		return ""
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(f.View())
}

// SetSize updates dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) saveTag() tea.Cmd {
	t := m.state
	name := m.fb.name
	id := m.editingID
	return func() tea.Msg {
		if id == 0 {
			_, err := t.AddTag(context.Background(), name)
			return tagSavedMsg{err: err}
		}
		return tagSavedMsg{err: t.RenameTag(context.Background(), id, name)}
	}
}

func (m Model) deleteTag(id int64) tea.Cmd {
	t := m.state
	return func() tea.Msg {
		return tagDeletedMsg{err: t.DeleteTag(context.Background(), id)}
	}
}
