package app

import (
	tea "github.com/charmbracelet/bubbletea"
)

// ScreenRouter switches between screens and remembers where to return.
type ScreenRouter struct {
	app     *App
	history []ScreenType
}

func NewScreenRouter(app *App) *ScreenRouter {
	return &ScreenRouter{app: app}
}

// SwitchTo moves to screenType, pushing the current screen on the history.
func (r *ScreenRouter) SwitchTo(screenType ScreenType) tea.Cmd {
	if screenType == r.app.currentScreen {
		return nil
	}
	if len(r.history) == 0 || r.history[len(r.history)-1] != r.app.currentScreen {
		r.history = append(r.history, r.app.currentScreen)
	}
	return func() tea.Msg {
		return ScreenSwitchMsg{ScreenType: screenType}
	}
}

// GoBack returns to the previous screen, or to the editor when there is none.
func (r *ScreenRouter) GoBack() tea.Cmd {
	target := EditorScreen
	if n := len(r.history); n > 0 {
		target = r.history[n-1]
		r.history = r.history[:n-1]
	}
	if target == r.app.currentScreen {
		return nil
	}
	return func() tea.Msg {
		return ScreenSwitchMsg{ScreenType: target}
	}
}

func (r *ScreenRouter) CanNavigateBack() bool {
	return len(r.history) > 0
}

func (r *ScreenRouter) ClearHistory() {
	r.history = r.history[:0]
}
