package screens

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/afero"

	"notepad-tui/internal/fileio"
	"notepad-tui/internal/ui/components"
	"notepad-tui/internal/ui/styles"
)

const overwriteDialogID = "save-overwrite"

// SavePromptScreen asks where to create the document, pre-filled with the
// suggested name. The answer is delivered on the channel returned by Show.
type SavePromptScreen struct {
	BaseScreen

	fs      afero.Fs
	theme   *styles.Theme
	input   textinput.Model
	confirm *components.ConfirmDialog
	dir     string
	err     string

	result chan fileio.Choice
}

// NewSavePromptScreen creates the prompt over fsys.
func NewSavePromptScreen(fsys afero.Fs, theme *styles.Theme) *SavePromptScreen {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.CharLimit = 4096
	ti.Placeholder = "path/to/file.txt"

	confirm := components.NewConfirmDialog(overwriteDialogID, "File exists", "")
	confirm.ConfirmText = "Overwrite"
	confirm.CancelText = "Back"
	confirm.Style = theme.DialogStyle

	return &SavePromptScreen{
		BaseScreen: NewBaseScreen("Save"),
		fs:         fsys,
		theme:      theme,
		input:      ti,
		confirm:    confirm,
	}
}

// Show pre-fills the prompt with dir/name and returns the channel that receives
// the chosen path.
func (sp *SavePromptScreen) Show(dir, name string) <-chan fileio.Choice {
	sp.respond(fileio.Choice{Cancelled: true})
	if dir == "" {
		dir, _ = os.Getwd()
	}
	sp.dir = dir
	sp.err = ""
	sp.input.SetValue(filepath.Join(dir, name))
	sp.input.CursorEnd()
	sp.input.Focus()
	sp.result = make(chan fileio.Choice, 1)
	return sp.result
}

// Pending reports whether an answer is still expected.
func (sp *SavePromptScreen) Pending() bool {
	return sp.result != nil
}

// Value returns the path typed so far.
func (sp *SavePromptScreen) Value() string {
	return sp.input.Value()
}

// Cancel answers the pending request with a cancellation.
func (sp *SavePromptScreen) Cancel() {
	sp.confirm.Hide()
	sp.respond(fileio.Choice{Cancelled: true})
}

func (sp *SavePromptScreen) respond(choice fileio.Choice) {
	if sp.result == nil {
		return
	}
	sp.result <- choice
	close(sp.result)
	sp.result = nil
	sp.input.Blur()
}

func (sp *SavePromptScreen) Init() tea.Cmd {
	return textinput.Blink
}

func (sp *SavePromptScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	if sp.confirm.Update(msg) {
		return sp, nil
	}
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		sp.SetSize(m.Width, m.Height-1)
		sp.input.Width = max(m.Width-12, 10)
		return sp, nil
	case components.ConfirmResultMsg:
		if m.ID == overwriteDialogID && m.Confirmed {
			sp.respond(fileio.Choice{Path: sp.target()})
		}
		return sp, nil
	case tea.KeyMsg:
		switch m.Type {
		case tea.KeyEsc:
			sp.Cancel()
			return sp, nil
		case tea.KeyEnter:
			return sp, sp.submit()
		}
	}
	var cmd tea.Cmd
	sp.input, cmd = sp.input.Update(msg)
	return sp, cmd
}

func (sp *SavePromptScreen) target() string {
	path := strings.TrimSpace(sp.input.Value())
	if path != "" && !filepath.IsAbs(path) {
		path = filepath.Join(sp.dir, path)
	}
	return path
}

func (sp *SavePromptScreen) submit() tea.Cmd {
	path := sp.target()
	if path == "" || strings.HasSuffix(path, string(filepath.Separator)) {
		sp.err = "Enter a file name"
		return nil
	}
	info, err := sp.fs.Stat(path)
	switch {
	case err == nil && info.IsDir():
		sp.err = fmt.Sprintf("%s is a directory", filepath.Base(path))
		return nil
	case err == nil:
		sp.err = ""
		sp.confirm.Description = fmt.Sprintf("Overwrite %s?", filepath.Base(path))
		return sp.confirm.Ask()
	case !errors.Is(err, os.ErrNotExist):
		sp.err = err.Error()
		return nil
	}
	sp.err = ""
	sp.respond(fileio.Choice{Path: path})
	return nil
}

func (sp *SavePromptScreen) Status() string {
	if sp.err != "" {
		return sp.theme.ErrorMessage(sp.err)
	}
	return sp.dir
}

func (sp *SavePromptScreen) ShortHelp() string {
	return "Enter Save • Esc Cancel"
}

func (sp *SavePromptScreen) View() string {
	if sp.Width() == 0 {
		return "Initializing..."
	}
	box := sp.theme.DialogStyle.Width(max(sp.Width()-2, 20)).Render(lipgloss.JoinVertical(lipgloss.Left,
		sp.theme.TitleStyle.Render("Save document as"),
		"",
		sp.input.View(),
	))
	if view := sp.confirm.View(); view != "" {
		return overlay(box, view)
	}
	return box
}
