package screens

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/spf13/afero"

	"notepad-tui/internal/fileio"
	"notepad-tui/internal/fs"
	"notepad-tui/internal/ui/styles"
)

// PickerScreen lets the user choose a document to open. The choice is delivered
// on the channel returned by Show.
type PickerScreen struct {
	BaseScreen

	fs      afero.Fs
	theme   *styles.Theme
	listing *fs.Listing
	dir     string
	err     error
	top     int

	showHidden bool
	textOnly   bool

	result chan fileio.Choice
}

// NewPickerScreen creates a picker over fsys.
func NewPickerScreen(fsys afero.Fs, theme *styles.Theme, showHidden, textOnly bool) *PickerScreen {
	return &PickerScreen{
		BaseScreen: NewBaseScreen("Open"),
		fs:         fsys,
		theme:      theme,
		showHidden: showHidden,
		textOnly:   textOnly,
	}
}

// Show loads dir and returns the channel that receives the choice. A previous
// pending choice is cancelled.
func (ps *PickerScreen) Show(dir string) <-chan fileio.Choice {
	ps.respond(fileio.Choice{Cancelled: true})
	ps.result = make(chan fileio.Choice, 1)
	ps.load(dir)
	return ps.result
}

// Pending reports whether a choice is still expected.
func (ps *PickerScreen) Pending() bool {
	return ps.result != nil
}

// Dir returns the directory shown.
func (ps *PickerScreen) Dir() string {
	return ps.dir
}

// Listing returns the current listing, nil when the directory failed to load.
func (ps *PickerScreen) Listing() *fs.Listing {
	return ps.listing
}

func (ps *PickerScreen) load(dir string) {
	if dir == "" {
		dir, _ = os.Getwd()
	}
	listing, err := fs.NewListing(ps.fs, dir, ps.showHidden, ps.textOnly)
	ps.dir = filepath.Clean(dir)
	ps.listing = listing
	ps.err = err
	ps.top = 0
}

// Refresh re-reads the directory, keeping the selection.
func (ps *PickerScreen) Refresh() {
	if ps.listing == nil {
		ps.load(ps.dir)
		return
	}
	if err := ps.listing.Refresh(); err != nil {
		ps.err = err
	}
}

func (ps *PickerScreen) respond(choice fileio.Choice) {
	if ps.result == nil {
		return
	}
	ps.result <- choice
	close(ps.result)
	ps.result = nil
}

// Cancel answers the pending request with a cancellation.
func (ps *PickerScreen) Cancel() {
	ps.respond(fileio.Choice{Cancelled: true})
}

func (ps *PickerScreen) Init() tea.Cmd {
	return nil
}

func (ps *PickerScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		ps.SetSize(m.Width, m.Height-1)
		return ps, nil
	case tea.KeyMsg:
		return ps, ps.handleKey(m)
	case tea.MouseMsg:
		ps.handleMouse(m)
		return ps, nil
	}
	return ps, nil
}

func (ps *PickerScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		ps.Cancel()
		return nil
	case "ctrl+r":
		ps.Refresh()
		return nil
	case "ctrl+h":
		ps.showHidden = !ps.showHidden
		return ps.changeDir(ps.dir)
	case "ctrl+t":
		ps.textOnly = !ps.textOnly
		return ps.changeDir(ps.dir)
	}
	if ps.listing == nil {
		if msg.String() == "backspace" || msg.String() == "left" {
			return ps.changeDir(filepath.Dir(ps.dir))
		}
		return nil
	}
	switch msg.String() {
	case "up", "k":
		ps.listing.Move(-1)
	case "down", "j":
		ps.listing.Move(1)
	case "pgup":
		ps.listing.Move(-ps.listHeight())
	case "pgdown":
		ps.listing.Move(ps.listHeight())
	case "home", "g":
		ps.listing.SetSelected(0)
	case "end", "G":
		ps.listing.SetSelected(len(ps.listing.Entries) - 1)
	case "backspace", "left":
		return ps.changeDir(filepath.Dir(ps.dir))
	case "enter", "right":
		return ps.activate()
	}
	return nil
}

func (ps *PickerScreen) activate() tea.Cmd {
	entry := ps.listing.SelectedEntry()
	if entry == nil {
		return nil
	}
	if entry.IsDir {
		return ps.changeDir(entry.Path)
	}
	ps.respond(fileio.Choice{Path: entry.Path})
	return nil
}

func (ps *PickerScreen) changeDir(dir string) tea.Cmd {
	ps.load(dir)
	d := ps.dir
	return func() tea.Msg { return PickerDirMsg{Dir: d} }
}

func (ps *PickerScreen) handleMouse(msg tea.MouseMsg) {
	if ps.listing == nil {
		return
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		ps.listing.Move(-wheelStep)
	case tea.MouseButtonWheelDown:
		ps.listing.Move(wheelStep)
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return
		}
		// border, padding and the two header lines
		row := msg.Y - 4
		if row >= 0 && row < ps.listHeight() {
			ps.listing.SetSelected(ps.top + row)
		}
	}
}

func (ps *PickerScreen) listHeight() int {
	return max(ps.Height()-8, 1)
}

func (ps *PickerScreen) Status() string {
	var flags []string
	if ps.showHidden {
		flags = append(flags, "hidden")
	}
	if ps.textOnly {
		flags = append(flags, "text only")
	}
	if len(flags) == 0 {
		return "Filters: none"
	}
	return "Filters: " + strings.Join(flags, ", ")
}

func (ps *PickerScreen) ShortHelp() string {
	return "↑↓ Navigate • Enter Open • Backspace Up • Ctrl+H Hidden • Ctrl+T Text only • Esc Cancel"
}

func (ps *PickerScreen) View() string {
	if ps.Width() == 0 {
		return "Initializing..."
	}
	width := max(ps.Width()-2, 10)
	style := ps.theme.BorderStyle.Width(width).Padding(1, 2)
	inner := max(width-4, 1)

	header := ps.theme.TitleStyle.Render("Open document")
	path := ps.theme.SubtitleStyle.Render(truncate.StringWithTail(ps.dir, uint(inner-2), "…"))

	if ps.err != nil {
		body := ps.theme.ErrorMessage(ps.err.Error())
		return style.Render(lipgloss.JoinVertical(lipgloss.Left, header, path, "", body))
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, header, path, ps.renderEntries(inner)))
}

func (ps *PickerScreen) renderEntries(width int) string {
	entries := ps.listing.Entries
	if len(entries) == 0 {
		return ps.theme.InfoMessage("(empty)")
	}
	h := ps.listHeight()
	sel := ps.listing.Selected
	if sel < ps.top {
		ps.top = sel
	}
	if sel >= ps.top+h {
		ps.top = sel - h + 1
	}
	end := min(ps.top+h, len(entries))

	rows := make([]string, 0, end-ps.top)
	for i := ps.top; i < end; i++ {
		e := entries[i]
		text := e.DisplayName()
		if !e.IsDir {
			text = fmt.Sprintf("%s  %s", text, humanSize(e.Size))
		}
		text = truncate.StringWithTail(text, uint(width), "…")
		if i == sel {
			text = ps.theme.SelectedStyle.Render(text)
		}
		rows = append(rows, text)
	}
	return strings.Join(rows, "\n")
}

func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
