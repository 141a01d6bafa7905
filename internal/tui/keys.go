package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the grid key bindings.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	Play       key.Binding
	Menu       key.Binding
	Drag       key.Binding
	SortByYear key.Binding

	Filter      key.Binding
	ClearFilter key.Binding
	ListType    key.Binding
	Mode        key.Binding
	Reload      key.Binding

	Export     key.Binding
	ClearQueue key.Binding

	Help key.Binding
	Quit key.Binding
}

var defaultKeyMap = keyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
	Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
	PageUp:   key.NewBinding(key.WithKeys("pgup", "b"), key.WithHelp("pgup", "page up")),
	PageDown: key.NewBinding(key.WithKeys("pgdown", " ", "f"), key.WithHelp("pgdn", "page down")),
	Home:     key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first")),
	End:      key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last")),

	Play:       key.NewBinding(key.WithKeys("enter", "p"), key.WithHelp("enter", "play")),
	Menu:       key.NewBinding(key.WithKeys("m", "."), key.WithHelp("m", "menu")),
	Drag:       key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "drag to queue")),
	SortByYear: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort by year")),

	Filter:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "artist")),
	ClearFilter: key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "all artists")),
	ListType:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "list type")),
	Mode:        key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "infinite scroll")),
	Reload:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),

	Export:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export queue")),
	ClearQueue: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear queue")),

	Help: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Play, k.Menu, k.Drag, k.Filter, k.Mode, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.PageUp, k.PageDown, k.Home, k.End},
		{k.Play, k.Menu, k.Drag, k.SortByYear},
		{k.Filter, k.ClearFilter, k.ListType, k.Mode, k.Reload},
		{k.Export, k.ClearQueue, k.Help, k.Quit},
	}
}
