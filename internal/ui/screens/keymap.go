package screens

import (
	"github.com/charmbracelet/bubbles/key"

	"notepad-tui/internal/platform"
)

var actionTitles = map[Action]string{
	ActionNew:     "new",
	ActionOpen:    "open",
	ActionSave:    "save",
	ActionCopy:    "copy all",
	ActionPaste:   "paste",
	ActionFocus:   "filename/text",
	ActionHelp:    "help",
	ActionPalette: "commands",
	ActionQuit:    "quit",
}

// KeyMap holds the configurable editor bindings. It implements help.KeyMap.
type KeyMap struct {
	New     key.Binding
	Open    key.Binding
	Save    key.Binding
	Copy    key.Binding
	Paste   key.Binding
	Focus   key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding

	Move   key.Binding
	Page   key.Binding
	Scroll key.Binding
}

// NewKeyMap builds bindings from an action -> key map such as config.Keybindings.
func NewKeyMap(bindings map[string]string) KeyMap {
	bind := func(a Action) key.Binding {
		k := bindings[string(a)]
		return key.NewBinding(
			key.WithKeys(platform.CanonicalKey(k)),
			key.WithHelp(platform.DisplayKey(k), actionTitles[a]),
		)
	}
	return KeyMap{
		New:     bind(ActionNew),
		Open:    bind(ActionOpen),
		Save:    bind(ActionSave),
		Copy:    bind(ActionCopy),
		Paste:   bind(ActionPaste),
		Focus:   bind(ActionFocus),
		Help:    bind(ActionHelp),
		Palette: bind(ActionPalette),
		Quit:    bind(ActionQuit),

		Move:   key.NewBinding(key.WithKeys("up", "down", "left", "right"), key.WithHelp("←↑↓→", "move")),
		Page:   key.NewBinding(key.WithKeys("pgup", "pgdown"), key.WithHelp("PgUp/PgDn", "page")),
		Scroll: key.NewBinding(key.WithKeys("ctrl+up", "ctrl+down"), key.WithHelp("Ctrl+↑/↓", "scroll")),
	}
}

// Binding returns the binding of an action.
func (k KeyMap) Binding(a Action) (key.Binding, bool) {
	switch a {
	case ActionNew:
		return k.New, true
	case ActionOpen:
		return k.Open, true
	case ActionSave:
		return k.Save, true
	case ActionCopy:
		return k.Copy, true
	case ActionPaste:
		return k.Paste, true
	case ActionFocus:
		return k.Focus, true
	case ActionHelp:
		return k.Help, true
	case ActionPalette:
		return k.Palette, true
	case ActionQuit:
		return k.Quit, true
	}
	return key.Binding{}, false
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Save, k.New, k.Focus, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.New, k.Open, k.Save},
		{k.Copy, k.Paste, k.Focus},
		{k.Move, k.Page, k.Scroll},
		{k.Help, k.Palette, k.Quit},
	}
}
