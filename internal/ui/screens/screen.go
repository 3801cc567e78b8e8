package screens

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Screen is one full-window view managed by the app router.
type Screen interface {
	Init() tea.Cmd
	Update(tea.Msg) (Screen, tea.Cmd)
	View() string

	// Lifecycle hooks called by the router.
	OnEnter() tea.Cmd
	OnExit() tea.Cmd
	CanExit() bool

	// Title names the screen in the status bar.
	Title() string
	// Status is the left part of the status bar.
	Status() string
	// ShortHelp is the right part of the status bar.
	ShortHelp() string
}

// BaseScreen carries size and title for embedding screens.
type BaseScreen struct {
	width  int
	height int
	title  string
}

func NewBaseScreen(title string) BaseScreen {
	return BaseScreen{title: title}
}

// SetSize records the area the screen may draw into.
func (bs *BaseScreen) SetSize(width, height int) {
	bs.width = width
	bs.height = height
}

func (bs *BaseScreen) Width() int  { return bs.width }
func (bs *BaseScreen) Height() int { return bs.height }

func (bs *BaseScreen) Title() string { return bs.title }

func (bs *BaseScreen) CanExit() bool { return true }

func (bs *BaseScreen) OnEnter() tea.Cmd { return nil }

func (bs *BaseScreen) OnExit() tea.Cmd { return nil }

func (bs *BaseScreen) Status() string { return "" }

func (bs *BaseScreen) ShortHelp() string {
	return "Ctrl+Q: Quit"
}

func centerText(width, height int, text string) string {
	return lipgloss.NewStyle().Width(width).Height(height).Align(lipgloss.Center, lipgloss.Center).Render(text)
}

func overlay(base, modal string) string {
	return lipgloss.JoinVertical(lipgloss.Left, base, modal)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
