package components

import (
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmResultMsg carries the answer of a ConfirmDialog back into the update loop.
type ConfirmResultMsg struct {
	ID        string
	Confirmed bool
}

// ConfirmDialog is a yes/no prompt rendered over a screen.
type ConfirmDialog struct {
	ID          string
	Title       string
	Description string
	ConfirmText string
	CancelText  string
	Style       lipgloss.Style

	Visible bool
	result  chan bool
	mu      sync.Mutex
}

// NewConfirmDialog creates a dialog with Yes/No answers.
func NewConfirmDialog(id, title, description string) *ConfirmDialog {
	return &ConfirmDialog{
		ID:          id,
		Title:       title,
		Description: description,
		ConfirmText: "Yes",
		CancelText:  "No",
		Style:       lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2),
	}
}

// Show makes the dialog visible and returns the channel that receives the answer.
// Calling Show on a visible dialog returns the pending channel.
func (d *ConfirmDialog) Show() <-chan bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.Visible && d.result != nil {
		return d.result
	}
	d.result = make(chan bool, 1)
	d.Visible = true
	return d.result
}

// Ask shows the dialog and returns a command resolving to ConfirmResultMsg.
func (d *ConfirmDialog) Ask() tea.Cmd {
	ch := d.Show()
	id := d.ID
	return func() tea.Msg {
		return ConfirmResultMsg{ID: id, Confirmed: <-ch}
	}
}

// IsVisible reports whether the dialog waits for an answer.
func (d *ConfirmDialog) IsVisible() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.Visible
}

// Hide answers no.
func (d *ConfirmDialog) Hide() {
	d.respond(false)
}

// Update handles the answer keys. It reports whether the message was consumed.
func (d *ConfirmDialog) Update(msg tea.Msg) bool {
	if !d.IsVisible() {
		return false
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return false
	}
	switch key.String() {
	case "y", "Y", "enter":
		d.respond(true)
	case "n", "N", "esc":
		d.respond(false)
	}
	return true
}

func (d *ConfirmDialog) View() string {
	d.mu.Lock()
	visible := d.Visible
	title, desc := d.Title, d.Description
	confirm, cancel := d.ConfirmText, d.CancelText
	style := d.Style
	d.mu.Unlock()

	if !visible {
		return ""
	}
	titleView := lipgloss.NewStyle().Bold(true).Render(title)
	hint := lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8")).
		Render(fmt.Sprintf("%s: Enter/Y  %s: Esc/N", confirm, cancel))
	return style.Render(fmt.Sprintf("%s\n\n%s\n\n%s", titleView, desc, hint))
}

func (d *ConfirmDialog) respond(value bool) {
	d.mu.Lock()
	if !d.Visible && d.result == nil {
		d.mu.Unlock()
		return
	}
	ch := d.result
	d.Visible = false
	d.result = nil
	d.mu.Unlock()

	if ch != nil {
		select {
		case ch <- value:
		default:
		}
	}
}
