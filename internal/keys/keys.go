package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings for the application.
type KeyMap struct {
	// Navigation
	Down key.Binding
	Up   key.Binding

	// Selection
	Select key.Binding

	// Back / Quit
	Back key.Binding
	Quit key.Binding

	// Screens
	NextTab   key.Binding
	HomeTab   key.Binding
	BrowseTab key.Binding
	TagsTab   key.Binding
	ListsTab  key.Binding

	// Help toggle
	Help key.Binding

	// Search and filters
	Search       key.Binding
	CycleType    key.Binding
	CycleStatus  key.Binding
	Favorites    key.Binding
	CycleTag     key.Binding
	CycleList    key.Binding
	ClearFilters key.Binding

	// Actions
	New      key.Binding
	Edit     key.Binding
	Delete   key.Binding
	Favorite key.Binding
	Members  key.Binding
	Random   key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next screen"),
		),
		HomeTab: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "home"),
		),
		BrowseTab: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "items"),
		),
		TagsTab: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "tags"),
		),
		ListsTab: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "lists"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		CycleType: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "cycle type"),
		),
		CycleStatus: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "cycle status"),
		),
		Favorites: key.NewBinding(
			key.WithKeys("F"),
			key.WithHelp("F", "favorites only"),
		),
		CycleTag: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "cycle tag"),
		),
		CycleList: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "cycle list"),
		),
		ClearFilters: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "clear filters"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Favorite: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "toggle favorite"),
		),
		Members: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "edit members"),
		),
		Random: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "random pick"),
		),
	}
}

// ShortHelp returns the most essential keybindings for the compact help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Select, k.Back,
		k.Quit, k.Help, k.Random,
	}
}

// FullHelp returns all keybindings grouped by category for the expanded
// help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Back, k.Quit},
		{k.NextTab, k.HomeTab, k.BrowseTab, k.TagsTab, k.ListsTab},
		{k.Search, k.CycleType, k.CycleStatus, k.Favorites, k.CycleTag, k.CycleList, k.ClearFilters},
		{k.New, k.Edit, k.Delete, k.Favorite, k.Members, k.Random, k.Help},
	}
}
