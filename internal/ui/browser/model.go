package browser

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/mediashelf/internal/keys"
	"github.com/nhle/mediashelf/internal/model"
	"github.com/nhle/mediashelf/internal/theme"
	"github.com/nhle/mediashelf/internal/ui"
	"github.com/nhle/mediashelf/internal/viewstate"
)

type browseMode int

const (
	modeList browseMode = iota
	modeSearch
	modeForm
	modeConfirmDelete
)

type itemSavedMsg struct {
	verb string
	err  error
}

// Model is the item browser view.
type Model struct {
	state       *viewstate.Browse
	keys        *keys.KeyMap
	list        list.Model
	mode        browseMode
	searchInput textinput.Model
	form        *huh.Form
	confirmForm *huh.Form
	fb          *formBindings
	editingID   int64
	deletingID  int64
	statusMsg   string
	width       int
	height      int
}

// New creates a browser over the given container.
func New(state *viewstate.Browse, k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, ItemDelegate{}, width, height-3)
	l.Title = "Items"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	si := textinput.New()
	si.Placeholder = "search titles..."
	si.Prompt = "/ "
	si.Width = width - 4

	return Model{
		state:       state,
		keys:        k,
		list:        l,
		searchInput: si,
		fb:          &formBindings{},
		width:       width,
		height:      height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Refresh copies the container's items into the list.
func (m *Model) Refresh() tea.Cmd {
	st := m.state.State()
	entries := make([]list.Item, len(st.Items))
	for i, it := range st.Items {
		entries[i] = ItemEntry{Item: it}
	}
	return m.list.SetItems(entries)
}

// Capturing reports whether the view is consuming text input, so global
// keys should not be intercepted.
func (m Model) Capturing() bool {
	return m.mode != modeList
}

// SelectedItem returns the highlighted item.
func (m Model) SelectedItem() (model.Item, bool) {
	e, ok := m.list.SelectedItem().(ItemEntry)
	if !ok {
		return model.Item{}, false
	}
	return e.Item, true
}

// RequestRandom asks the container for a random pick among shown items.
func (m Model) RequestRandom() tea.Cmd {
	b := m.state
	return func() tea.Msg {
		b.RequestRandom()
		return nil
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case itemSavedMsg:
		m.mode = modeList
		m.statusMsg = ""
		if msg.err == nil {
			m.statusMsg = "Item " + msg.verb
		}
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeSearch:
			return m.handleSearchKeys(msg)
		case modeForm:
			return m.updateForm(msg)
		case modeConfirmDelete:
			return m.updateConfirm(msg)
		}
		return m.handleNormalKeys(msg)
	}

	switch m.mode {
	case modeForm:
		return m.updateForm(msg)
	case modeConfirmDelete:
		return m.updateConfirm(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleSearchKeys updates the title query as the user types.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.mode = modeList
		m.searchInput.Blur()
		return m, nil

	case "esc":
		m.mode = modeList
		m.searchInput.Reset()
		m.searchInput.Blur()
		m.state.SetQuery("")
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.state.SetQuery(m.searchInput.Value())
	return m, cmd
}

func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	st := m.state.State()

	if st.Random.Visible {
		if key.Matches(msg, m.keys.Select, m.keys.Back) {
			m.state.DismissRandom()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		if st.Err != "" {
			m.state.ClearError()
		}
		m.statusMsg = ""
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		m.searchInput.SetValue(st.Filter.Query)
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.CycleType):
		m.state.SetType(cycle(model.AllItemTypes, st.Filter.Type))
		return m, nil

	case key.Matches(msg, m.keys.CycleStatus):
		m.state.SetStatus(cycle(model.AllItemStatuses, st.Filter.Status))
		return m, nil

	case key.Matches(msg, m.keys.Favorites):
		m.state.SetFavoritesOnly(!st.Filter.FavoritesOnly)
		return m, nil

	case key.Matches(msg, m.keys.CycleTag):
		ids := make([]int64, len(st.Tags))
		for i, t := range st.Tags {
			ids[i] = t.ID
		}
		m.state.SetTag(cycle(ids, st.Filter.TagID))
		return m, nil

	case key.Matches(msg, m.keys.CycleList):
		ids := make([]int64, len(st.Lists))
		for i, l := range st.Lists {
			ids[i] = l.ID
		}
		m.state.SetList(cycle(ids, st.Filter.ListID))
		return m, nil

	case key.Matches(msg, m.keys.ClearFilters):
		m.searchInput.Reset()
		m.state.ResetFilters()
		return m, nil

	case key.Matches(msg, m.keys.New):
		m.editingID = 0
		m.fb.reset()
		m.form = m.buildItemForm()
		m.mode = modeForm
		return m, m.form.Init()

	case key.Matches(msg, m.keys.Edit):
		it, ok := m.SelectedItem()
		if !ok {
			return m, nil
		}
		m.editingID = it.ID
		m.fb.load(it)
		m.form = m.buildItemForm()
		m.mode = modeForm
		return m, m.form.Init()

	case key.Matches(msg, m.keys.Delete):
		it, ok := m.SelectedItem()
		if !ok {
			return m, nil
		}
		m.deletingID = it.ID
		m.fb.confirm = false
		m.confirmForm = m.buildConfirmForm(it.Title)
		m.mode = modeConfirmDelete
		return m, m.confirmForm.Init()

	case key.Matches(msg, m.keys.Favorite):
		it, ok := m.SelectedItem()
		if !ok {
			return m, nil
		}
		it.Favorite = !it.Favorite
		return m, m.updateItem(it)

	case key.Matches(msg, m.keys.Random):
		return m, m.RequestRandom()
	}

	// Delegate to the list for navigation keys (up/down/pgup/pgdn)
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
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
		return m, m.saveItem()
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
			return m, m.deleteItem(m.deletingID)
		}
		return m, nil
	}
	if m.confirmForm.State == huh.StateAborted {
		m.mode = modeList
		return m, nil
	}
	return m, cmd
}

// View renders the browser.
func (m Model) View() string {
	switch m.mode {
	case modeForm:
		title := "New Item"
		if m.editingID != 0 {
			title = "Edit Item"
		}
		return m.viewForm(title, m.form)
	case modeConfirmDelete:
		return m.viewForm("Delete Item", m.confirmForm)
	}

	st := m.state.State()
	if st.Random.Visible {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			ui.RenderRandomPick(st.Random.Item, m.width))
	}

	var sections []string
	if m.mode == modeSearch {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.ColorWhite).
			Padding(0, 1).
			Render(m.searchInput.View()))
	}
	if summary := m.FilterSummary(); summary != "" {
		sections = append(sections, theme.DimmedStyle.Padding(0, 1).Render(summary))
	}

	if len(st.Items) == 0 {
		sections = append(sections, m.renderEmptyState(st))
	} else {
		sections = append(sections, m.list.View())
	}

	if line := ui.RenderError(st.Err); line != "" {
		sections = append(sections, line)
	} else if m.statusMsg != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.ColorYellow).Italic(true).Render(m.statusMsg))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewForm(title string, f *huh.Form) string {
	if f == nil {
		return ""
	}
	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(theme.TitleStyle.Render(title) + "\n" + f.View())
}

// renderEmptyState shows guidance text when no items are shown.
func (m Model) renderEmptyState(st viewstate.BrowseState) string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height - 3).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	switch {
	case st.Loading:
		return style.Render("Loading...")
	case st.Filter.Active():
		return style.Render("No matching items.\nPress C to clear filters.")
	default:
		return style.Render("Your shelf is empty.\n\nPress n to add an item.")
	}
}

// FilterSummary describes the active filters, or "" when none are set.
func (m Model) FilterSummary() string {
	st := m.state.State()
	f := st.Filter

	var parts []string
	if f.Query != "" {
		parts = append(parts, fmt.Sprintf("title~%q", f.Query))
	}
	if f.Type != nil {
		parts = append(parts, "type:"+string(*f.Type))
	}
	if f.Status != nil {
		parts = append(parts, "status:"+string(*f.Status))
	}
	if f.FavoritesOnly {
		parts = append(parts, "♥ only")
	}
	if f.Year != nil {
		parts = append(parts, fmt.Sprintf("year:%d", *f.Year))
	}
	if f.TagID != nil {
		parts = append(parts, "tag:"+tagName(st.Tags, *f.TagID))
	}
	if f.ListID != nil {
		parts = append(parts, "list:"+listName(st.Lists, *f.ListID))
	}
	return strings.Join(parts, "  ")
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-3)
	m.searchInput.Width = width - 4
}

func (m Model) saveItem() tea.Cmd {
	b := m.state
	fb := *m.fb
	id := m.editingID
	return func() tea.Msg {
		it := fb.item()
		if id == 0 {
			_, err := b.AddItem(context.Background(), it)
			return itemSavedMsg{verb: "added", err: err}
		}
		it.ID = id
		err := b.UpdateItem(context.Background(), it)
		return itemSavedMsg{verb: "saved", err: err}
	}
}

func (m Model) updateItem(it model.Item) tea.Cmd {
	b := m.state
	return func() tea.Msg {
		err := b.UpdateItem(context.Background(), it)
		return itemSavedMsg{verb: "saved", err: err}
	}
}

func (m Model) deleteItem(id int64) tea.Cmd {
	b := m.state
	return func() tea.Msg {
		err := b.DeleteItem(context.Background(), id)
		return itemSavedMsg{verb: "deleted", err: err}
	}
}

// cycle advances cur through all and back to nil after the last value.
func cycle[T comparable](all []T, cur *T) *T {
	if len(all) == 0 {
		return nil
	}
	if cur == nil {
		v := all[0]
		return &v
	}
	for i, v := range all {
		if v == *cur {
			if i+1 == len(all) {
				return nil
			}
			next := all[i+1]
			return &next
		}
	}
	return nil
}

func tagName(tags []model.Tag, id int64) string {
	for _, t := range tags {
		if t.ID == id {
			return t.Name
		}
	}
	return fmt.Sprintf("#%d", id)
}

func listName(lists []model.MediaList, id int64) string {
	for _, l := range lists {
		if l.ID == id {
			return l.Name
		}
	}
	return fmt.Sprintf("#%d", id)
}
