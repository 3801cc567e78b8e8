package screens

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"notepad-tui/internal/config"
	"notepad-tui/internal/metrics"
	"notepad-tui/internal/scrollsync"
)

var barActions = []struct {
	action Action
	label  string
}{
	{ActionNew, "New"},
	{ActionOpen, "Open"},
	{ActionSave, "Save"},
}

func (es *EditorScreen) helpHeight() int {
	if !es.showHelp {
		return 0
	}
	return lipgloss.Height(es.help.View(es.keys))
}

func (es *EditorScreen) bodyHeight() int {
	return max(es.Height()-1-es.helpHeight(), 1)
}

func (es *EditorScreen) bodyWidth() int {
	return max(es.Width()-GutterWidth(es.buf.LineCount())-1, 1)
}

// wrapWidth is the cell budget per visual row, never wider than the body.
// Zero disables wrapping.
func (es *EditorScreen) wrapWidth() int {
	if !es.cfg.SoftWrap {
		return 0
	}
	if es.cfg.MaxCharsPerLine > 0 {
		return min(es.cfg.MaxCharsPerLine, es.bodyWidth())
	}
	return es.bodyWidth()
}

// refresh recomputes sizes and rows after any change. With follow set the body
// scrolls to keep the caret visible.
func (es *EditorScreen) refresh(follow bool) {
	if es.Width() == 0 {
		return
	}
	es.layoutAppBar()
	es.gutter.SetSize(GutterWidth(es.buf.LineCount()), es.bodyHeight())
	es.body.SetSize(es.bodyWidth(), es.bodyHeight())
	es.relayout()
	es.gutter.SetActive(es.buf.Cursor().Line)
	es.body.SetRows(es.renderRows())
	if follow {
		es.ensureCursorVisible()
	}
	es.sync.EditorScrolled(es.body.Offset())
}

func (es *EditorScreen) relayout() {
	width := es.wrapWidth()
	if es.layout.valid && es.layout.version == es.buf.Version() && es.layout.width == width {
		return
	}
	measure, _ := metrics.ParseMeasure(es.cfg.Measure)
	es.estimator = metrics.New(width, measure).WithTabWidth(es.cfg.TabSize)

	lines := es.buf.Lines()
	segments := make([][]string, len(lines))
	prefix := make([]int, len(lines)+1)
	for i, line := range lines {
		segments[i] = es.estimator.Wrap(line)
		prefix[i+1] = prefix[i] + len(segments[i])
	}
	heights := es.estimator.RowHeights(lines, baseRowHeight)

	if es.cfg.SyncMode == config.SyncUniform {
		uniform := make([]int, len(lines))
		for i := range uniform {
			uniform[i] = baseRowHeight
		}
		es.gutter.SetHeights(uniform)
		es.sync.SetModel(scrollsync.UniformRows{Height: baseRowHeight, Lines: len(lines)})
	} else {
		es.gutter.SetHeights(heights)
		es.sync.SetModel(scrollsync.NewWrappedRows(heights))
	}

	es.layout = lineLayout{
		segments: segments,
		prefix:   prefix,
		version:  es.buf.Version(),
		width:    width,
		valid:    true,
	}
}

// cursorRow returns the visual row and the rune column within it of the caret.
func (es *EditorScreen) cursorRow() (row, col int) {
	cur := es.buf.Cursor()
	segs := es.layout.segments[cur.Line]
	acc := 0
	for k, seg := range segs {
		n := utf8.RuneCountInString(seg)
		if cur.Col < acc+n || k == len(segs)-1 {
			return es.layout.prefix[cur.Line] + k, cur.Col - acc
		}
		acc += n
	}
	return es.layout.prefix[cur.Line], cur.Col
}

// positionAt maps a visual row and a cell column inside it to a document position.
func (es *EditorScreen) positionAt(row, x int) (line, col int) {
	lines := len(es.layout.segments)
	if lines == 0 {
		return 0, 0
	}
	row = clamp(row, 0, es.layout.prefix[lines]-1)
	line = sort.Search(lines, func(i int) bool { return es.layout.prefix[i+1] > row })
	segs := es.layout.segments[line]
	k := row - es.layout.prefix[line]
	for _, seg := range segs[:k] {
		col += utf8.RuneCountInString(seg)
	}
	return line, col + es.estimator.ColumnAt(segs[k], max(x, 0))
}

func (es *EditorScreen) ensureCursorVisible() {
	row, _ := es.cursorRow()
	top, h := es.body.Offset(), es.body.Height()
	switch {
	case row < top:
		es.body.ScrollTo(row)
	case row >= top+h:
		es.body.ScrollTo(row - h + 1)
	}
}

func (es *EditorScreen) renderRows() []string {
	width := es.bodyWidth()
	focused := es.focus == focusBody
	cursorStyle := es.theme.CursorStyle

	if es.buf.Empty() {
		hint := es.theme.PlaceholderStyle.Render(bodyPlaceholder)
		if focused {
			hint = cursorStyle.Render(" ") + hint
		}
		return []string{truncate.String(hint, uint(width))}
	}

	curRow, curCol := es.cursorRow()
	rows := make([]string, 0, es.layout.prefix[len(es.layout.segments)])
	for _, segs := range es.layout.segments {
		for _, seg := range segs {
			text := strings.ReplaceAll(seg, "\r", "")
			if focused && len(rows) == curRow {
				text = withCursor(text, curCol, cursorStyle)
			}
			text = es.estimator.ExpandTabs(text)
			rows = append(rows, truncate.String(text, uint(width)))
		}
	}
	return rows
}

func withCursor(text string, col int, style lipgloss.Style) string {
	runes := []rune(text)
	col = clamp(col, 0, len(runes))
	under := " "
	var after string
	if col < len(runes) {
		under = string(runes[col])
		after = string(runes[col+1:])
	}
	return string(runes[:col]) + style.Render(under) + after
}

// layoutAppBar places the action buttons at the right edge and records their
// columns for mouse hit-testing.
func (es *EditorScreen) layoutAppBar() {
	width := 0
	for i, a := range barActions {
		if i > 0 {
			width++
		}
		width += lipgloss.Width(es.theme.ActionStyle.Render(a.label))
	}
	x := max(es.Width()-width, 0)
	es.barLeft = x
	es.zones = es.zones[:0]
	for _, a := range barActions {
		w := lipgloss.Width(es.theme.ActionStyle.Render(a.label))
		es.zones = append(es.zones, actionZone{action: a.action, x0: x, x1: x + w})
		x += w + 1
	}
	es.filename.Width = max(es.barLeft-4, 1)
}

func (es *EditorScreen) renderAppBar() string {
	labels := make([]string, len(barActions))
	for i, a := range barActions {
		labels[i] = es.theme.ActionStyle.Render(a.label)
	}
	right := strings.Join(labels, " ")

	left := es.theme.FilenameStyle.Render(es.filename.View())
	left = truncate.StringWithTail(left, uint(max(es.barLeft-1, 0)), "…")
	gap := max(es.Width()-lipgloss.Width(left)-lipgloss.Width(right), 0)
	return es.theme.AppBarStyle.Render(left + strings.Repeat(" ", gap) + right)
}

func (es *EditorScreen) View() string {
	if es.Width() == 0 {
		return "Loading editor..."
	}
	bodyStyle := es.theme.BodyStyle
	if es.focus == focusBody {
		bodyStyle = es.theme.BodyFocusStyle
	}
	main := lipgloss.JoinHorizontal(lipgloss.Top,
		es.gutter.View(),
		bodyStyle.Height(es.body.Height()).Render(es.body.View()),
	)
	parts := []string{es.renderAppBar(), main}
	if es.showHelp {
		parts = append(parts, es.help.View(es.keys))
	}
	return strings.Join(parts, "\n")
}
