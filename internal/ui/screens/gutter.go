package screens

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"notepad-tui/internal/scrollsync"
)

// GutterView is the virtualized line-number column. Each line occupies as many
// rows as its height; the number is drawn on the first row only.
type GutterView struct {
	rows   *scrollsync.WrappedRows
	cursor scrollsync.GutterCursor
	width  int
	height int
	active int

	onScroll func(scrollsync.GutterCursor)

	Style       lipgloss.Style
	ActiveStyle lipgloss.Style
}

// NewGutterView returns an empty gutter. onScroll is called whenever the first
// visible row changes.
func NewGutterView(onScroll func(scrollsync.GutterCursor)) *GutterView {
	return &GutterView{
		rows:     scrollsync.NewWrappedRows([]int{1}),
		onScroll: onScroll,
	}
}

// SetHeights replaces the per-line row heights. The cursor is clamped but not
// reported; callers realign through the synchronizer afterwards.
func (g *GutterView) SetHeights(heights []int) {
	if len(heights) == 0 {
		heights = []int{1}
	}
	g.rows = scrollsync.NewWrappedRows(heights)
	g.cursor = g.rows.CursorAt(clamp(g.rows.OffsetOf(g.cursor), 0, g.maxTop()))
}

func (g *GutterView) SetSize(width, height int) {
	g.width = width
	g.height = height
}

// SetActive marks the line holding the caret.
func (g *GutterView) SetActive(line int) {
	g.active = line
}

func (g *GutterView) Cursor() scrollsync.GutterCursor {
	return g.cursor
}

// TopRow returns the absolute row shown first.
func (g *GutterView) TopRow() int {
	return g.rows.OffsetOf(g.cursor)
}

// GutterWidth returns the column width needed for lines, including the
// separating space after the number.
func GutterWidth(lines int) int {
	digits := len(strconv.Itoa(max(lines, 1)))
	return max(digits, 2) + 1
}

func (g *GutterView) maxTop() int {
	return max(g.rows.Total()-g.height, 0)
}

// ScrollToItem implements scrollsync.GutterScroller.
func (g *GutterView) ScrollToItem(index, offset int) {
	row := g.rows.OffsetOf(scrollsync.GutterCursor{Index: index, Offset: max(offset, 0)})
	g.scrollToRow(row)
}

// ScrollBy moves the gutter by delta rows, as the mouse wheel does.
func (g *GutterView) ScrollBy(delta int) {
	g.scrollToRow(g.TopRow() + delta)
}

func (g *GutterView) scrollToRow(row int) {
	c := g.rows.CursorAt(clamp(row, 0, g.maxTop()))
	if c == g.cursor {
		return
	}
	g.cursor = c
	if g.onScroll != nil {
		g.onScroll(c)
	}
}

func (g *GutterView) View() string {
	if g.height <= 0 || g.width <= 0 {
		return ""
	}
	numberWidth := max(g.width-1, 1)
	blank := strings.Repeat(" ", g.width)
	total := g.rows.Total()
	top := g.TopRow()

	out := make([]string, 0, g.height)
	for r := 0; r < g.height; r++ {
		row := top + r
		if row >= total {
			out = append(out, blank)
			continue
		}
		c := g.rows.CursorAt(row)
		if c.Offset != 0 {
			out = append(out, blank)
			continue
		}
		label := runewidth.FillLeft(strconv.Itoa(c.Index+1), numberWidth) + " "
		style := g.Style
		if c.Index == g.active {
			style = g.ActiveStyle
		}
		out = append(out, style.Render(label))
	}
	return strings.Join(out, "\n")
}
