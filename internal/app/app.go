package app

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/mediashelf/internal/keys"
	appsync "github.com/nhle/mediashelf/internal/sync"
	"github.com/nhle/mediashelf/internal/ui"
	"github.com/nhle/mediashelf/internal/ui/browser"
	helpview "github.com/nhle/mediashelf/internal/ui/help"
	"github.com/nhle/mediashelf/internal/ui/home"
	"github.com/nhle/mediashelf/internal/ui/listmgr"
	"github.com/nhle/mediashelf/internal/ui/tagmgr"
	"github.com/nhle/mediashelf/internal/viewstate"
)

// Screen identifies a top-level tab.
type Screen int

const (
	ScreenHome Screen = iota
	ScreenBrowse
	ScreenTags
	ScreenLists
)

var screenNames = []string{"1 Home", "2 Items", "3 Tags", "4 Lists"}

// Watcher source names.
const (
	sourceHome   = "home"
	sourceBrowse = "browse"
	sourceTags   = "tags"
	sourceLists  = "lists"
)

// ShakeMsg is sent by the shake detector; it requests a random pick on
// the active screen.
type ShakeMsg struct{}

// Containers are the per-screen view-state containers the UI renders.
type Containers struct {
	Home   *viewstate.Home
	Browse *viewstate.Browse
	Tags   *viewstate.Tags
	Lists  *viewstate.Lists
}

// Model is the root Bubble Tea model that manages tab routing, layout and
// forwarding of container changes.
type Model struct {
	current    Screen
	showHelp   bool
	layout     ui.Layout
	keys       *keys.KeyMap
	containers Containers
	watcher    *appsync.Watcher
	home       home.Model
	browser    browser.Model
	tags       tagmgr.Model
	lists      listmgr.Model
	helpView   helpview.Model
	ready      bool
}

// New creates the root model over the given containers.
func New(c Containers) Model {
	k := keys.DefaultKeyMap()

	w := appsync.New()
	w.Register(sourceHome, c.Home)
	w.Register(sourceBrowse, c.Browse)
	w.Register(sourceTags, c.Tags)
	w.Register(sourceLists, c.Lists)

	return Model{
		current:    ScreenHome,
		keys:       k,
		containers: c,
		watcher:    w,
		home:       home.New(c.Home, k, 80, 24),
		browser:    browser.New(c.Browse, k, 80, 24),
		tags:       tagmgr.New(c.Tags, k, 80, 24),
		lists:      listmgr.New(c.Lists, k, 80, 24),
		helpView:   helpview.New(k, 80, 24),
	}
}

// Init starts forwarding container changes.
func (m Model) Init() tea.Cmd {
	return m.watcher.Start()
}

// Stop halts change forwarding. Call it after the program exits.
func (m Model) Stop() {
	m.watcher.Stop()
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		w, h := m.layout.ContentWidth(), m.layout.ContentHeight()
		m.home.SetSize(w, h)
		m.browser.SetSize(w, h)
		m.tags.SetSize(w, h)
		m.lists.SetSize(w, h)
		m.helpView.SetSize(w, h)
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case appsync.ChangedMsg:
		var cmd tea.Cmd
		switch msg.Name {
		case sourceBrowse:
			cmd = m.browser.Refresh()
		case sourceTags:
			m.tags.Refresh()
		case sourceLists:
			m.lists.Refresh()
		}
		return m, tea.Batch(cmd, m.watcher.WaitForNext())

	case ShakeMsg:
		cmd := m.requestRandom()
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.capturing() {
			break
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil

		case m.showHelp && key.Matches(msg, m.keys.Back):
			m.showHelp = false
			return m, nil

		case key.Matches(msg, m.keys.NextTab):
			return m.switchTo(Screen((int(m.current) + 1) % len(screenNames)))

		case key.Matches(msg, m.keys.HomeTab):
			return m.switchTo(ScreenHome)

		case key.Matches(msg, m.keys.BrowseTab):
			return m.switchTo(ScreenBrowse)

		case key.Matches(msg, m.keys.TagsTab):
			return m.switchTo(ScreenTags)

		case key.Matches(msg, m.keys.ListsTab):
			return m.switchTo(ScreenLists)

		case m.current == ScreenHome && key.Matches(msg, m.keys.Random):
			cmd := m.requestRandom()
			return m, cmd
		}
	}

	// Delegate to active sub-view
	return m.updateActiveView(msg)
}

func (m Model) switchTo(s Screen) (tea.Model, tea.Cmd) {
	m.current = s
	m.showHelp = false
	return m, nil
}

// capturing reports whether the active view owns the keyboard.
func (m Model) capturing() bool {
	switch m.current {
	case ScreenBrowse:
		return m.browser.Capturing()
	case ScreenTags:
		return m.tags.Capturing()
	case ScreenLists:
		return m.lists.Capturing()
	}
	return false
}

// requestRandom routes a random-pick request to the active screen. The
// home screen picks among the item browser's current items.
func (m *Model) requestRandom() tea.Cmd {
	switch m.current {
	case ScreenTags:
		return m.tags.RequestRandom()
	case ScreenLists:
		return m.lists.RequestRandom()
	case ScreenHome:
		m.current = ScreenBrowse
	}
	return m.browser.RequestRandom()
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		var cmd tea.Cmd
		m.helpView, cmd = m.helpView.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	switch m.current {
	case ScreenHome:
		m.home, cmd = m.home.Update(msg)
	case ScreenBrowse:
		m.browser, cmd = m.browser.Update(msg)
	case ScreenTags:
		m.tags, cmd = m.tags.Update(msg)
	case ScreenLists:
		m.lists, cmd = m.lists.Update(msg)
	}
	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("MediaShelf", m.headerStatus())
	tabs := m.layout.RenderTabs(screenNames, int(m.current))
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, tabs, m.renderContent(), statusBar)
}

// renderContent returns the rendered string for the active view.
func (m Model) renderContent() string {
	if m.showHelp {
		return m.helpView.View()
	}
	switch m.current {
	case ScreenHome:
		return m.home.View()
	case ScreenBrowse:
		return m.browser.View()
	case ScreenTags:
		return m.tags.View()
	case ScreenLists:
		return m.lists.View()
	default:
		return ""
	}
}

// headerStatus summarizes catalog size, or shows a loading marker.
func (m Model) headerStatus() string {
	st := m.containers.Home.State()
	if st.Loading {
		return "loading…"
	}
	return fmt.Sprintf("%d items · %d tags · %d lists", st.Stats.Items, st.Stats.Tags, st.Stats.Lists)
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	if m.showHelp {
		return "? close help | esc back"
	}
	if m.capturing() {
		return "enter submit | esc cancel"
	}

	switch m.current {
	case ScreenBrowse:
		if summary := m.browser.FilterSummary(); summary != "" {
			return summary + " | C clear"
		}
		return "/ search | T type | S status | F favorites | G tag | L list | n new | e edit | d delete | r random"
	case ScreenTags:
		return "j/k move | enter select | n new | e rename | d delete | r random | esc back"
	case ScreenLists:
		return "j/k move | enter select | n new | e rename | m members | d delete | r random"
	default:
		return "q quit | ? help | tab next | r random"
	}
}
