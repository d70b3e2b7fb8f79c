package listmgr

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

type listMode int

const (
	modeList listMode = iota
	modeForm
	modeMembers
	modeConfirmDelete
)

type formBindings struct {
	name    string
	itemIDs []int64
	confirm bool
}

type listSavedMsg struct {
	verb string
	err  error
}

// Model is the Bubble Tea model for list management.
type Model struct {
	mode        listMode
	state       *viewstate.Lists
	keys        *keys.KeyMap
	selectedIdx int
	editingID   int64
	form        *huh.Form
	fb          *formBindings
	statusMsg   string
	width       int
	height      int
}

// New creates a new list manager model.
func New(state *viewstate.Lists, k *keys.KeyMap, width, height int) Model {
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

// Refresh keeps the cursor inside the current lists.
func (m *Model) Refresh() {
	n := len(m.state.State().Lists)
	if m.selectedIdx >= n {
		m.selectedIdx = max(n-1, 0)
	}
}

// Capturing reports whether a form has focus.
func (m Model) Capturing() bool {
	return m.mode != modeList
}

// RequestRandom picks a random member of the highlighted list.
func (m Model) RequestRandom() tea.Cmd {
	ml, ok := m.cursorList()
	if !ok {
		return nil
	}
	l := m.state
	return func() tea.Msg {
		if sel := l.State().Selected; sel == nil || sel.ID != ml.ID {
			l.SelectList(ml.ID)
		}
		l.RequestRandom()
		return nil
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case listSavedMsg:
		m.mode = modeList
		m.statusMsg = ""
		if msg.err == nil {
			m.statusMsg = "List " + msg.verb
		}
		m.Refresh()
		return m, nil

	case tea.KeyMsg:
		if m.mode == modeList {
			return m.handleListKey(msg)
		}
	}

	if m.mode != modeList {
		return m.updateForm(msg)
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
		if len(st.Lists) > 0 {
			m.selectedIdx = (m.selectedIdx + 1) % len(st.Lists)
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if len(st.Lists) > 0 {
			m.selectedIdx--
			if m.selectedIdx < 0 {
				m.selectedIdx = len(st.Lists) - 1
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Select):
		if ml, ok := m.cursorList(); ok {
			m.state.SelectList(ml.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.New):
		m.editingID = 0
		m.fb.name = ""
		m.fb.itemIDs = nil
		m.form = m.buildForm(true)
		m.mode = modeForm
		return m, m.form.Init()

	case key.Matches(msg, m.keys.Edit):
		ml, ok := m.cursorList()
		if !ok {
			return m, nil
		}
		m.editingID = ml.ID
		m.fb.name = ml.Name
		m.form = m.buildForm(false)
		m.mode = modeForm
		return m, m.form.Init()

	case key.Matches(msg, m.keys.Members):
		ml, ok := m.cursorList()
		if !ok {
			return m, nil
		}
		m.editingID = ml.ID
		m.fb.itemIDs = ml.ItemIDs()
		m.form = m.buildMembersForm(ml.Name)
		m.mode = modeMembers
		return m, m.form.Init()

	case key.Matches(msg, m.keys.Delete):
		ml, ok := m.cursorList()
		if !ok {
			return m, nil
		}
		m.editingID = ml.ID
		m.fb.confirm = false
		m.form = m.buildConfirmForm(ml.Name)
		m.mode = modeConfirmDelete
		return m, m.form.Init()

	case key.Matches(msg, m.keys.Random):
		return m, m.RequestRandom()
	}
	return m, nil
}

func (m Model) cursorList() (model.MediaList, bool) {
	lists := m.state.State().Lists
	if m.selectedIdx < 0 || m.selectedIdx >= len(lists) {
		return model.MediaList{}, false
	}
	return lists[m.selectedIdx], true
}

func (m Model) itemOptions() []huh.Option[int64] {
	items := m.state.State().Items
	opts := make([]huh.Option[int64], len(items))
	for i, it := range items {
		opts[i] = huh.NewOption(fmt.Sprintf("%s (%s)", it.Title, it.Type), it.ID)
	}
	return opts
}

func (m Model) buildForm(withMembers bool) *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Title("Name").
			Placeholder("List name").
			Value(&m.fb.name).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("name is required")
				}
				return nil
			}),
	}
	if opts := m.itemOptions(); withMembers && len(opts) > 0 {
		fields = append(fields, huh.NewMultiSelect[int64]().
			Title("Items").
			Options(opts...).
			Value(&m.fb.itemIDs))
	}
	return huh.NewForm(huh.NewGroup(fields...)).
		WithWidth(ui.FormWidth(m.width)).WithHeight(ui.FormHeight(m.height))
}

func (m Model) buildMembersForm(name string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[int64]().
				Title(fmt.Sprintf("Items in %q", name)).
				Options(m.itemOptions()...).
				Value(&m.fb.itemIDs),
		),
	).WithWidth(ui.FormWidth(m.width)).WithHeight(ui.FormHeight(m.height))
}

func (m Model) buildConfirmForm(name string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete list %q?", name)).
				Description("Items stay in the catalog.").
				Affirmative("Yes, delete").
				Negative("Cancel").
				Value(&m.fb.confirm),
		),
	).WithWidth(ui.FormWidth(m.width)).WithHeight(ui.FormHeight(m.height))
}

func (m Model) updateForm(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		m.mode = modeList
		return m, nil
	}
	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}
	switch m.form.State {
	case huh.StateCompleted:
		mode := m.mode
		m.mode = modeList
		return m, m.submit(mode)
	case huh.StateAborted:
		m.mode = modeList
		return m, nil
	}
	return m, cmd
}

func (m Model) submit(mode listMode) tea.Cmd {
	switch mode {
	case modeForm:
		return m.saveList()
	case modeMembers:
		return m.setMembers()
	case modeConfirmDelete:
		if m.fb.confirm {
			return m.deleteList(m.editingID)
		}
	}
	return nil
}

// View renders the list manager.
func (m Model) View() string {
	if m.mode != modeList {
		if m.form == nil {
			return ""
		}
		return lipgloss.NewStyle().Padding(1, 2).Render(m.form.View())
	}

	st := m.state.State()
	if st.Random.Visible {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			ui.RenderRandomPick(st.Random.Item, m.width))
	}

	left := m.viewLists(st)
	right := m.viewSelected(st)
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	var b strings.Builder
	b.WriteString(body)
	if line := ui.RenderError(st.Err); line != "" {
		b.WriteString("\n")
		b.WriteString(line)
	} else if m.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.ColorYellow).Italic(true).Render(m.statusMsg))
	}
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.ColorGray).Render(
		"enter select | n new | e rename | m members | d delete | r random",
	))
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (m Model) viewLists(st viewstate.ListsState) string {
	var b strings.Builder
	b.WriteString(theme.TitleStyle.Render("Lists"))
	b.WriteString("\n\n")

	if len(st.Lists) == 0 {
		emptyStyle := lipgloss.NewStyle().Foreground(theme.ColorGray).Italic(true)
		if st.Loading {
			b.WriteString(emptyStyle.Render("Loading..."))
		} else {
			b.WriteString(emptyStyle.Render("No lists yet. Press 'n' to create one."))
		}
	}
	for i, ml := range st.Lists {
		label := fmt.Sprintf("📋 %s %s", ml.Name,
			theme.DimmedStyle.Render(fmt.Sprintf("(%d)", len(ml.Items))))
		if i == m.selectedIdx {
			b.WriteString(theme.SelectedItemStyle.Render(label))
		} else {
			b.WriteString(theme.ListItemStyle.Render(label))
		}
		b.WriteString("\n")
	}
	return lipgloss.NewStyle().Width(max(m.width/2-2, 20)).Render(b.String())
}

func (m Model) viewSelected(st viewstate.ListsState) string {
	if st.Selected == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(theme.TitleStyle.Render(st.Selected.Name))
	b.WriteString("\n\n")
	if len(st.Selected.Items) == 0 {
		b.WriteString(theme.DimmedStyle.Italic(true).Render("Empty. Press 'm' to add items."))
	}
	for _, it := range st.Selected.Items {
		b.WriteString(it.Title)
		b.WriteString("  ")
		b.WriteString(ui.ItemSummary(it))
		b.WriteString("\n")
	}
	return theme.PanelStyle.Width(max(m.width/2-4, 20)).Render(b.String())
}

// SetSize updates dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) saveList() tea.Cmd {
	l := m.state
	name := m.fb.name
	ids := append([]int64(nil), m.fb.itemIDs...)
	id := m.editingID
	return func() tea.Msg {
		if id == 0 {
			_, err := l.CreateList(context.Background(), name, ids)
			return listSavedMsg{verb: "created", err: err}
		}
		return listSavedMsg{verb: "renamed", err: l.RenameList(context.Background(), id, name)}
	}
}

func (m Model) setMembers() tea.Cmd {
	l := m.state
	ids := append([]int64(nil), m.fb.itemIDs...)
	id := m.editingID
	return func() tea.Msg {
		return listSavedMsg{verb: "updated", err: l.SetListItems(context.Background(), id, ids)}
	}
}

func (m Model) deleteList(id int64) tea.Cmd {
	l := m.state
	return func() tea.Msg {
		return listSavedMsg{verb: "deleted", err: l.DeleteList(context.Background(), id)}
	}
}
