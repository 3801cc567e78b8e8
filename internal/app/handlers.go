package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"notepad-tui/internal/editor"
	"notepad-tui/internal/ui/screens"
)

func (a *App) registerCommands() {
	editorOnly := EditorScreen
	add := func(action screens.Action, title string, global bool, run func(*App) tea.Cmd) {
		binding, _ := a.keys.Binding(action)
		cmd := &Command{ID: string(action), Title: title, Binding: binding, Run: run}
		if !global {
			cmd.Screen = &editorOnly
		}
		a.commands.Register(cmd)
	}

	add(screens.ActionNew, "New document", false, func(a *App) tea.Cmd {
		a.editor.NewDocument()
		a.events.Publish(DocumentEvent{Kind: EventCleared, Action: "new"})
		return nil
	})
	add(screens.ActionOpen, "Open document", false, (*App).startOpen)
	add(screens.ActionSave, "Save document", false, (*App).startSave)
	add(screens.ActionCopy, "Copy document", false, func(a *App) tea.Cmd {
		if err := a.editor.Copy(); err != nil {
			a.log.Warn("clipboard copy failed", "err", err)
		}
		return nil
	})
	add(screens.ActionPaste, "Paste", false, func(a *App) tea.Cmd {
		if err := a.editor.Paste(); err != nil {
			a.log.Warn("clipboard paste failed", "err", err)
		}
		return nil
	})
	add(screens.ActionFocus, "Toggle filename/text focus", false, func(a *App) tea.Cmd {
		return a.editor.ToggleFocus()
	})
	add(screens.ActionHelp, "Toggle help", false, func(a *App) tea.Cmd {
		a.editor.ToggleHelp()
		return nil
	})
	add(screens.ActionPalette, "Show commands", false, func(a *App) tea.Cmd {
		return a.router.SwitchTo(PaletteScreen)
	})
	add(screens.ActionQuit, "Quit", true, (*App).requestQuit)
}

// paletteEntries lists every command except the palette itself.
func (a *App) paletteEntries() []screens.CommandEntry {
	var entries []screens.CommandEntry
	for _, cmd := range a.commands.All() {
		if cmd.ID == string(screens.ActionPalette) {
			continue
		}
		entries = append(entries, screens.CommandEntry{
			ID:      cmd.ID,
			Title:   cmd.Title,
			Key:     cmd.Binding.Help().Key,
			Enabled: cmd.Enabled == nil || cmd.Enabled(a),
		})
	}
	return entries
}

// handlePaletteExecute returns to the editor and runs the chosen command there.
func (a *App) handlePaletteExecute(msg screens.CommandExecuteMsg) (tea.Model, tea.Cmd) {
	_, back := a.handleScreenSwitch(ScreenSwitchMsg{ScreenType: EditorScreen})
	a.router.ClearHistory()
	return a, tea.Batch(back, a.commands.Run(msg.ID, a))
}

// handleGlobalKeys resolves commands first and passes everything else to the screen.
func (a *App) handleGlobalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return a, a.requestQuit()
	}
	if cmd := a.commands.Resolve(msg, a.currentScreen); cmd != nil {
		if cmd.Enabled == nil || cmd.Enabled(a) {
			return a, cmd.Run(a)
		}
		return a, nil
	}
	return a, a.forward(msg)
}

// handleWindowResize records the size in the theme and passes it to every screen.
func (a *App) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	a.theme.SetDimensions(msg.Width, msg.Height)

	var cmds []tea.Cmd
	for screenType, screen := range a.screens {
		if screen == nil {
			continue
		}
		updated, cmd := screen.Update(msg)
		a.screens[screenType] = updated
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return a, tea.Batch(cmds...)
}

func (a *App) handleScreenSwitch(msg ScreenSwitchMsg) (tea.Model, tea.Cmd) {
	if msg.ScreenType == a.currentScreen {
		return a, nil
	}
	current := a.getCurrentScreen()
	if current != nil && !current.CanExit() {
		return a, nil
	}

	var cmds []tea.Cmd
	if current != nil {
		if exit := current.OnExit(); exit != nil {
			cmds = append(cmds, exit)
		}
	}

	a.currentScreen = msg.ScreenType
	next := a.getCurrentScreen()
	if next != nil {
		if enter := next.OnEnter(); enter != nil {
			cmds = append(cmds, enter)
		}
	}
	a.log.Debug("screen switched", "screen", a.currentScreen.String())

	if len(cmds) == 0 {
		return a, nil
	}
	return a, tea.Batch(cmds...)
}

func (a *App) handleError(msg ErrorMsg) (tea.Model, tea.Cmd) {
	a.lastError = msg.Error
	if msg.Error != nil {
		a.log.Error("background command failed", "err", msg.Error)
		a.editor.SetStatus(editor.StatusError, msg.Error.Error())
	}
	return a, nil
}

func (a *App) requestQuit() tea.Cmd {
	a.log.Info("quit")
	a.Close()
	return tea.Quit
}
