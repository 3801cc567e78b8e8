package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme holds every style the screens render with.
type Theme struct {
	width  int
	height int

	colors ColorScheme

	AppBarStyle   lipgloss.Style
	ActionStyle   lipgloss.Style
	FilenameStyle lipgloss.Style

	GutterStyle       lipgloss.Style
	GutterActiveStyle lipgloss.Style
	BodyStyle         lipgloss.Style
	BodyFocusStyle    lipgloss.Style
	PlaceholderStyle  lipgloss.Style
	CursorStyle       lipgloss.Style

	StatusBarStyle lipgloss.Style
	TitleStyle     lipgloss.Style
	SubtitleStyle  lipgloss.Style
	TextStyle      lipgloss.Style
	SelectedStyle  lipgloss.Style
	ErrorStyle     lipgloss.Style
	SuccessStyle   lipgloss.Style
	InfoStyle      lipgloss.Style
	BorderStyle    lipgloss.Style
	DialogStyle    lipgloss.Style
}

// ColorScheme is a palette.
type ColorScheme struct {
	Primary     string
	Accent      string
	Background  string
	Surface     string
	Text        string
	TextDim     string
	Error       string
	Success     string
	Border      string
	BorderFocus string
}

var (
	DarkScheme = ColorScheme{
		Primary:     "#7C3AED",
		Accent:      "#F59E0B",
		Background:  "#0F172A",
		Surface:     "#1E293B",
		Text:        "#F1F5F9",
		TextDim:     "#94A3B8",
		Error:       "#EF4444",
		Success:     "#10B981",
		Border:      "#334155",
		BorderFocus: "#7C3AED",
	}

	LightScheme = ColorScheme{
		Primary:     "#7C3AED",
		Accent:      "#D97706",
		Background:  "#FFFFFF",
		Surface:     "#F1F5F9",
		Text:        "#0F172A",
		TextDim:     "#64748B",
		Error:       "#DC2626",
		Success:     "#059669",
		Border:      "#CBD5E1",
		BorderFocus: "#7C3AED",
	}
)

// NewTheme returns the named theme; anything but "light" is dark.
func NewTheme(themeName string) *Theme {
	colors := DarkScheme
	if themeName == "light" {
		colors = LightScheme
	}
	theme := &Theme{colors: colors}
	theme.initStyles()
	return theme
}

// Colors returns the palette the theme was built from.
func (t *Theme) Colors() ColorScheme {
	return t.colors
}

func (t *Theme) initStyles() {
	c := t.colors

	t.AppBarStyle = lipgloss.NewStyle().
		Background(lipgloss.Color(c.Surface)).
		Foreground(lipgloss.Color(c.Text))

	t.ActionStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.Primary)).
		Bold(true).
		Padding(0, 1)

	t.FilenameStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.Text)).
		Padding(0, 1)

	t.GutterStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.TextDim))

	t.GutterActiveStyle = t.GutterStyle.
		Foreground(lipgloss.Color(c.Accent)).
		Bold(true)

	t.BodyStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.Text)).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(lipgloss.Color(c.Border))

	t.BodyFocusStyle = t.BodyStyle.
		BorderForeground(lipgloss.Color(c.BorderFocus))

	t.PlaceholderStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.TextDim)).
		Italic(true)

	t.CursorStyle = lipgloss.NewStyle().Reverse(true)

	t.StatusBarStyle = lipgloss.NewStyle().
		Background(lipgloss.Color(c.Surface)).
		Foreground(lipgloss.Color(c.Text)).
		Padding(0, 1)

	t.TitleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.Primary)).
		Bold(true).
		Padding(0, 1)

	t.SubtitleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.TextDim)).
		Padding(0, 1)

	t.TextStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.Text))

	t.SelectedStyle = lipgloss.NewStyle().
		Background(lipgloss.Color(c.Primary)).
		Foreground(lipgloss.Color(c.Background)).
		Bold(true)

	t.ErrorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.Error)).
		Bold(true)

	t.SuccessStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.Success)).
		Bold(true)

	t.InfoStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.TextDim))

	t.BorderStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(c.Border))

	t.DialogStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(c.BorderFocus)).
		Padding(1, 2)
}

// SetDimensions records the terminal size.
func (t *Theme) SetDimensions(width, height int) {
	t.width = width
	t.height = height
}

func (t *Theme) Width() int  { return t.width }
func (t *Theme) Height() int { return t.height }

// StatusBar renders a full-width status line.
func (t *Theme) StatusBar(text string) string {
	return t.StatusBarStyle.Width(t.width).Render(text)
}

func (t *Theme) ErrorMessage(text string) string {
	return t.ErrorStyle.Render("Error: " + text)
}

func (t *Theme) SuccessMessage(text string) string {
	return t.SuccessStyle.Render("✓ " + text)
}

func (t *Theme) InfoMessage(text string) string {
	return t.InfoStyle.Render(text)
}
