package screens

import (
	"notepad-tui/internal/fileio"
)

// Action names an app bar button or a keybinding command.
type Action string

const (
	ActionNew     Action = "new"
	ActionOpen    Action = "open"
	ActionSave    Action = "save"
	ActionCopy    Action = "copy"
	ActionPaste   Action = "paste"
	ActionFocus   Action = "focus"
	ActionHelp    Action = "help"
	ActionPalette Action = "palette"
	ActionQuit    Action = "quit"
)

// ActionMsg asks the app to run an action, e.g. after a click on an app bar button.
type ActionMsg struct {
	Action Action
}

// OpenResultMsg delivers the outcome of an open flow.
type OpenResultMsg struct {
	Result fileio.Result
}

// SaveResultMsg delivers the outcome of a save flow.
type SaveResultMsg struct {
	Result fileio.Result
}

// PickerDirMsg reports that the picker now shows Dir.
type PickerDirMsg struct {
	Dir string
}
