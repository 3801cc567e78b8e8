package screens

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notepad-tui/internal/config"
	"notepad-tui/internal/editor"
	"notepad-tui/internal/fileio"
	"notepad-tui/internal/scrollsync"
	"notepad-tui/internal/ui/styles"
)

func newTestEditor(t *testing.T, mutate func(*config.EditorConfig)) *EditorScreen {
	t.Helper()
	cfg := config.DefaultConfig().Editor
	cfg.ShowHelp = false
	if mutate != nil {
		mutate(&cfg)
	}
	es := NewEditorScreen(cfg, styles.NewTheme("dark"), NewKeyMap(config.DefaultKeybindings()))
	es.SetClipboard(nil, nil)
	es.Update(tea.WindowSizeMsg{Width: 40, Height: 12})
	return es
}

// 50 lines, every tenth 80 characters long: at a 36 column body those take 3 rows.
func sampleText() string {
	lines := make([]string, 50)
	for i := range lines {
		if i%10 == 0 {
			lines[i] = strings.Repeat("x", 80)
		} else {
			lines[i] = fmt.Sprintf("line %d", i+1)
		}
	}
	return strings.Join(lines, "\n")
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func wheel(x, y int, b tea.MouseButton) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Button: b, Action: tea.MouseActionPress}
}

func TestEditorScreen_Layout(t *testing.T) {
	es := newTestEditor(t, nil)

	assert.Equal(t, 10, es.body.Height())
	assert.Equal(t, 36, es.bodyWidth())
	assert.Equal(t, 3, es.gutter.width)
}

func TestEditorScreen_BodyWheelMovesGutter(t *testing.T) {
	es := newTestEditor(t, nil)
	es.SetText(sampleText())

	es.Update(wheel(10, 5, tea.MouseButtonWheelDown))

	assert.Equal(t, 3, es.body.Offset())
	assert.Equal(t, scrollsync.GutterCursor{Index: 1, Offset: 0}, es.gutter.Cursor())
	assert.Equal(t, 3, es.State().EditorOffset)
	assert.Equal(t, es.gutter.Cursor(), es.State().Gutter)
}

func TestEditorScreen_GutterWheelMovesBody(t *testing.T) {
	es := newTestEditor(t, nil)
	es.SetText(sampleText())
	before := es.Synchronizer().Stats()

	es.Update(wheel(0, 5, tea.MouseButtonWheelDown))
	es.Update(wheel(0, 5, tea.MouseButtonWheelDown))

	model := es.Synchronizer().Model()
	assert.Equal(t, model.OffsetOf(es.gutter.Cursor()), es.body.Offset())
	assert.Equal(t, 6, es.body.Offset())

	after := es.Synchronizer().Stats()
	assert.Equal(t, before.GutterDriven+2, after.GutterDriven)
	assert.Greater(t, after.Suppressed, before.Suppressed)
}

func TestEditorScreen_WrappedRowsMatchBody(t *testing.T) {
	es := newTestEditor(t, nil)
	es.SetText(sampleText())

	rows, ok := es.Synchronizer().Model().(*scrollsync.WrappedRows)
	require.True(t, ok)
	assert.Equal(t, 60, rows.Total())
	assert.Equal(t, 60, es.body.rows)
}

func TestEditorScreen_UniformModeUsesFlatRows(t *testing.T) {
	es := newTestEditor(t, func(c *config.EditorConfig) { c.SyncMode = config.SyncUniform })
	es.SetText(sampleText())

	model, ok := es.Synchronizer().Model().(scrollsync.UniformRows)
	require.True(t, ok)
	assert.Equal(t, scrollsync.UniformRows{Height: 1, Lines: 50}, model)
}

func TestEditorScreen_CaretFollowsToEnd(t *testing.T) {
	es := newTestEditor(t, nil)
	es.SetText(sampleText())

	es.Update(tea.KeyMsg{Type: tea.KeyCtrlEnd})

	assert.Equal(t, 50, es.body.Offset())
	c := es.gutter.Cursor()
	assert.Equal(t, es.Synchronizer().Model().CursorAt(50), c)
}

func TestEditorScreen_Typing(t *testing.T) {
	es := newTestEditor(t, nil)

	es.Update(runes("hello"))
	es.Update(tea.KeyMsg{Type: tea.KeyEnter})
	es.Update(runes("world"))
	es.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	es.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})

	assert.Equal(t, "hello\nworl ", es.Text())
	assert.Equal(t, es.Text(), es.State().Text)
}

func TestEditorScreen_PlaceholderWhenEmpty(t *testing.T) {
	es := newTestEditor(t, nil)
	assert.Contains(t, es.View(), bodyPlaceholder)

	es.Update(runes("a"))
	assert.NotContains(t, es.View(), bodyPlaceholder)
}

func TestEditorScreen_FilenameField(t *testing.T) {
	es := newTestEditor(t, nil)
	es.ToggleFocus()

	es.Update(runes("notes.txt"))
	es.Update(tea.KeyMsg{Type: tea.KeyEnter})
	es.Update(runes("body"))

	assert.Equal(t, "notes.txt", es.State().Filename)
	assert.Equal(t, "body", es.Text())
	assert.Equal(t, "notes.txt", es.SaveName(time.Now(), fileio.NameLegacy))
}

func TestEditorScreen_DefaultSaveName(t *testing.T) {
	es := newTestEditor(t, nil)
	now := time.Date(2025, time.March, 7, 8, 5, 9, 0, time.UTC)

	assert.Equal(t, "Untitled20253780509.txt", es.SaveName(now, fileio.NameLegacy))
}

func TestEditorScreen_ActionClick(t *testing.T) {
	es := newTestEditor(t, nil)

	for _, z := range es.zones {
		_, cmd := es.Update(tea.MouseMsg{X: z.x0, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
		require.NotNil(t, cmd, "action %s", z.action)
		assert.Equal(t, ActionMsg{Action: z.action}, cmd())
	}
	require.Len(t, es.zones, 3)
	assert.Equal(t, 40, es.zones[2].x1)
}

func TestEditorScreen_ClickPlacesCaret(t *testing.T) {
	es := newTestEditor(t, nil)
	es.SetText("first\nsecond line")

	es.Update(tea.MouseMsg{X: 3 + 1 + 2, Y: 2, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})

	assert.Equal(t, 1, es.buf.Cursor().Line)
	assert.Equal(t, 2, es.buf.Cursor().Col)
}

func TestEditorScreen_ApplyOpen(t *testing.T) {
	es := newTestEditor(t, nil)
	es.SetText(sampleText())
	es.Update(wheel(10, 5, tea.MouseButtonWheelDown))

	es.ApplyOpen(fileio.Result{Status: fileio.StatusOK, Name: "a.txt", Text: "one\ntwo"})

	assert.Equal(t, "one\ntwo", es.Text())
	assert.Equal(t, "a.txt", es.State().Filename)
	assert.Equal(t, 0, es.body.Offset())
	assert.Equal(t, scrollsync.GutterCursor{}, es.gutter.Cursor())
}

func TestEditorScreen_CancelledOpenChangesNothing(t *testing.T) {
	es := newTestEditor(t, nil)
	es.SetText(sampleText())
	es.Update(wheel(10, 5, tea.MouseButtonWheelDown))
	before := es.State()

	es.ApplyOpen(fileio.Result{Status: fileio.StatusCancelled, Err: fileio.ErrCancelled})

	assert.Equal(t, before, es.State())
	assert.Equal(t, 3, es.body.Offset())
}

func TestEditorScreen_SaveWithClear(t *testing.T) {
	es := newTestEditor(t, nil)
	es.SetText("draft")

	es.ApplySave(fileio.Result{Status: fileio.StatusOK, Name: "draft.txt"}, editor.SaveOptions{ClearOnSave: true})

	assert.Equal(t, "", es.Text())
	assert.Equal(t, "draft.txt", es.State().Filename)
	assert.Contains(t, es.Status(), "Saved draft.txt")
}

func TestEditorScreen_NewDocument(t *testing.T) {
	es := newTestEditor(t, nil)
	es.SetText(sampleText())
	es.ToggleFocus()
	es.Update(runes("x.txt"))

	es.NewDocument()

	assert.Equal(t, "", es.Text())
	assert.Equal(t, "", es.State().Filename)
	assert.Equal(t, 0, es.body.Offset())
}

func TestEditorScreen_Clipboard(t *testing.T) {
	es := newTestEditor(t, nil)
	var board string
	es.SetClipboard(
		func() (string, error) { return board, nil },
		func(s string) error { board = s; return nil },
	)
	es.SetText("copy me")

	require.NoError(t, es.Copy())
	assert.Equal(t, "copy me", board)

	board = "\tpasted"
	require.NoError(t, es.Paste())
	assert.Equal(t, "    pastedcopy me", es.Text())
}

func TestEditorScreen_ClipboardFailure(t *testing.T) {
	es := newTestEditor(t, nil)
	es.SetClipboard(
		func() (string, error) { return "", errors.New("no display") },
		func(string) error { return errors.New("no display") },
	)

	assert.Error(t, es.Copy())
	assert.Error(t, es.Paste())
	assert.Contains(t, es.Status(), "Paste failed")
}

func TestEditorScreen_HelpCycles(t *testing.T) {
	es := newTestEditor(t, nil)
	assert.Equal(t, 10, es.body.Height())

	es.ToggleHelp()
	assert.Less(t, es.body.Height(), 10)
	es.ToggleHelp()
	es.ToggleHelp()
	assert.Equal(t, 10, es.body.Height())
}
