package screens

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notepad-tui/internal/scrollsync"
	"notepad-tui/internal/ui/styles"
)

func TestGutterView_NumbersOnFirstRowOnly(t *testing.T) {
	g := NewGutterView(nil)
	g.SetSize(3, 4)
	g.SetHeights([]int{1, 3, 1, 2})

	rows := strings.Split(g.View(), "\n")

	require.Len(t, rows, 4)
	assert.Equal(t, " 1 ", rows[0])
	assert.Equal(t, " 2 ", rows[1])
	assert.Equal(t, "   ", rows[2])
	assert.Equal(t, "   ", rows[3])
}

func TestGutterView_ThemedRowsKeepTheirWidth(t *testing.T) {
	theme := styles.NewTheme("dark")
	g := NewGutterView(nil)
	g.Style, g.ActiveStyle = theme.GutterStyle, theme.GutterActiveStyle
	g.SetSize(GutterWidth(120), 4)
	g.SetHeights(flatHeights(120))
	g.SetActive(1)

	for _, row := range strings.Split(g.View(), "\n") {
		assert.Equal(t, GutterWidth(120), ansi.StringWidth(row), "row %q", ansi.Strip(row))
	}
}

func flatHeights(n int) []int {
	heights := make([]int, n)
	for i := range heights {
		heights[i] = 1
	}
	return heights
}

func TestGutterView_ScrollReportsChangesOnce(t *testing.T) {
	var seen []scrollsync.GutterCursor
	g := NewGutterView(func(c scrollsync.GutterCursor) { seen = append(seen, c) })
	g.SetSize(3, 3)
	g.SetHeights([]int{1, 3, 1, 2})

	g.ScrollToItem(1, 2)
	g.ScrollToItem(1, 2)

	assert.Equal(t, []scrollsync.GutterCursor{{Index: 1, Offset: 2}}, seen)
	assert.Equal(t, 3, g.TopRow())
}

func TestGutterView_ClampsToLastPage(t *testing.T) {
	g := NewGutterView(nil)
	g.SetSize(3, 3)
	g.SetHeights([]int{1, 3, 1, 2})

	g.ScrollToItem(10, 0)

	assert.Equal(t, scrollsync.GutterCursor{Index: 2, Offset: 0}, g.Cursor())
	g.ScrollBy(-100)
	assert.Equal(t, scrollsync.GutterCursor{}, g.Cursor())
}

func TestGutterWidth(t *testing.T) {
	assert.Equal(t, 3, GutterWidth(0))
	assert.Equal(t, 3, GutterWidth(99))
	assert.Equal(t, 4, GutterWidth(100))
}

func TestBodyView_ScrollClampsAndNotifies(t *testing.T) {
	var seen []int
	b := NewBodyView(func(off int) { seen = append(seen, off) })
	b.SetSize(10, 2)
	b.SetRows([]string{"a", "b", "c", "d", "e"})

	b.ScrollTo(2)
	b.ScrollTo(10)
	b.ScrollTo(3)

	assert.Equal(t, []int{2, 3}, seen)
	assert.Equal(t, 3, b.Offset())
}

func TestBodyView_ShrinkingContentClampsOffset(t *testing.T) {
	var seen []int
	b := NewBodyView(func(off int) { seen = append(seen, off) })
	b.SetSize(10, 2)
	b.SetRows([]string{"a", "b", "c", "d", "e"})
	b.ScrollTo(3)

	b.SetRows([]string{"a", "b"})

	assert.Equal(t, 0, b.Offset())
	assert.Equal(t, []int{3, 0}, seen)
}
