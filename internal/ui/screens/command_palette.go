package screens

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/truncate"

	"notepad-tui/internal/ui/styles"
)

// CommandEntry is one row of the palette.
type CommandEntry struct {
	ID      string
	Title   string
	Key     string
	Enabled bool
}

// CommandFetcher returns the commands to list.
type CommandFetcher func() []CommandEntry

// CommandExecuteMsg asks the app to run the command with ID.
type CommandExecuteMsg struct {
	ID string
}

// CommandPaletteClosedMsg reports that the palette was dismissed.
type CommandPaletteClosedMsg struct{}

// CommandPaletteScreen lists the registered commands behind a filter.
type CommandPaletteScreen struct {
	BaseScreen

	theme    *styles.Theme
	fetch    CommandFetcher
	filter   textinput.Model
	entries  []CommandEntry
	filtered []CommandEntry
	selected int
}

func NewCommandPaletteScreen(theme *styles.Theme, fetch CommandFetcher) *CommandPaletteScreen {
	ti := textinput.New()
	ti.Placeholder = "Filter commands"
	ti.Prompt = "> "
	ti.Focus()

	return &CommandPaletteScreen{
		BaseScreen: NewBaseScreen("Commands"),
		theme:      theme,
		fetch:      fetch,
		filter:     ti,
	}
}

func (ps *CommandPaletteScreen) Init() tea.Cmd {
	ps.refresh()
	return nil
}

func (ps *CommandPaletteScreen) OnEnter() tea.Cmd {
	ps.filter.SetValue("")
	ps.selected = 0
	ps.refresh()
	return ps.filter.Focus()
}

func (ps *CommandPaletteScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		ps.SetSize(m.Width, m.Height-1)
		ps.filter.Width = max(ps.Width()-8, 10)
		return ps, nil
	case tea.KeyMsg:
		switch m.String() {
		case "up", "shift+tab":
			if ps.selected > 0 {
				ps.selected--
			}
			return ps, nil
		case "down", "tab":
			if ps.selected < len(ps.filtered)-1 {
				ps.selected++
			}
			return ps, nil
		case "enter":
			if entry, ok := ps.Selected(); ok && entry.Enabled {
				return ps, func() tea.Msg { return CommandExecuteMsg{ID: entry.ID} }
			}
			return ps, nil
		case "esc":
			return ps, func() tea.Msg { return CommandPaletteClosedMsg{} }
		}
		before := ps.filter.Value()
		var cmd tea.Cmd
		ps.filter, cmd = ps.filter.Update(m)
		if ps.filter.Value() != before {
			ps.applyFilter()
		}
		return ps, cmd
	}
	var cmd tea.Cmd
	ps.filter, cmd = ps.filter.Update(msg)
	return ps, cmd
}

// Selected returns the highlighted entry.
func (ps *CommandPaletteScreen) Selected() (CommandEntry, bool) {
	if ps.selected < 0 || ps.selected >= len(ps.filtered) {
		return CommandEntry{}, false
	}
	return ps.filtered[ps.selected], true
}

// Filtered returns the entries matching the current filter.
func (ps *CommandPaletteScreen) Filtered() []CommandEntry {
	return ps.filtered
}

func (ps *CommandPaletteScreen) ShortHelp() string {
	return "↑/↓: Select • Enter: Run • Esc: Close"
}

func (ps *CommandPaletteScreen) View() string {
	width := ps.Width()
	if width <= 0 {
		width = 80
	}
	inner := max(width-6, 10)

	var lines []string
	lines = append(lines, ps.theme.TitleStyle.Render("Commands"), ps.filter.View(), "")
	if len(ps.filtered) == 0 {
		lines = append(lines, ps.theme.SubtitleStyle.Render("No commands match filter"))
	}
	for i, entry := range ps.filtered {
		prefix := "  "
		style := ps.theme.TextStyle
		if !entry.Enabled {
			style = style.Faint(true)
		}
		if i == ps.selected {
			prefix = "→ "
			style = ps.theme.SelectedStyle
		}
		line := prefix + entry.Title
		if entry.Key != "" {
			line += "  [" + entry.Key + "]"
		}
		lines = append(lines, style.Render(truncate.StringWithTail(line, uint(inner), "…")))
	}

	return ps.theme.DialogStyle.Width(width - 2).Render(strings.Join(lines, "\n"))
}

func (ps *CommandPaletteScreen) refresh() {
	if ps.fetch == nil {
		ps.entries = nil
		ps.filtered = nil
		return
	}
	ps.entries = ps.fetch()
	ps.applyFilter()
}

func (ps *CommandPaletteScreen) applyFilter() {
	filter := strings.ToLower(strings.TrimSpace(ps.filter.Value()))
	filtered := make([]CommandEntry, 0, len(ps.entries))
	for _, entry := range ps.entries {
		if filter == "" ||
			strings.Contains(strings.ToLower(entry.Title), filter) ||
			strings.Contains(strings.ToLower(entry.Key), filter) ||
			strings.Contains(entry.ID, filter) {
			filtered = append(filtered, entry)
		}
	}
	ps.filtered = filtered
	switch {
	case len(ps.filtered) == 0:
		ps.selected = -1
	case ps.selected >= len(ps.filtered):
		ps.selected = len(ps.filtered) - 1
	case ps.selected < 0:
		ps.selected = 0
	}
}
