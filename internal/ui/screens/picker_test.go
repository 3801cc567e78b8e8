package screens

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notepad-tui/internal/fileio"
	"notepad-tui/internal/ui/components"
	"notepad-tui/internal/ui/styles"
)

func pickerFs(t *testing.T) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/docs/sub", 0o755))
	require.NoError(t, afero.WriteFile(fsys, "/docs/a.txt", []byte("alpha"), 0o644))
	require.NoError(t, afero.WriteFile(fsys, "/docs/b.txt", []byte("beta"), 0o644))
	require.NoError(t, afero.WriteFile(fsys, "/docs/sub/c.txt", []byte("gamma"), 0o644))
	return fsys
}

func keyMsg(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func newTestPicker(t *testing.T) *PickerScreen {
	ps := NewPickerScreen(pickerFs(t), styles.NewTheme("dark"), false, true)
	ps.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	return ps
}

func TestPicker_ChoosesFile(t *testing.T) {
	ps := newTestPicker(t)
	ch := ps.Show("/docs")

	// "..", "sub", "a.txt", "b.txt"
	ps.Update(keyMsg(tea.KeyDown))
	ps.Update(keyMsg(tea.KeyDown))
	ps.Update(keyMsg(tea.KeyEnter))

	choice, ok := <-ch
	require.True(t, ok)
	assert.Equal(t, fileio.Choice{Path: "/docs/a.txt"}, choice)
	assert.False(t, ps.Pending())
}

func TestPicker_EscCancels(t *testing.T) {
	ps := newTestPicker(t)
	ch := ps.Show("/docs")

	ps.Update(keyMsg(tea.KeyEsc))

	assert.True(t, (<-ch).Cancelled)
}

func TestPicker_EntersDirectory(t *testing.T) {
	ps := newTestPicker(t)
	ps.Show("/docs")
	ps.Update(keyMsg(tea.KeyDown))

	_, cmd := ps.Update(keyMsg(tea.KeyEnter))

	require.NotNil(t, cmd)
	assert.Equal(t, PickerDirMsg{Dir: "/docs/sub"}, cmd())
	assert.Equal(t, "/docs/sub", ps.Dir())
	assert.True(t, ps.Pending())

	_, cmd = ps.Update(keyMsg(tea.KeyBackspace))
	require.NotNil(t, cmd)
	assert.Equal(t, "/docs", ps.Dir())
}

func TestPicker_ShowAgainCancelsPrevious(t *testing.T) {
	ps := newTestPicker(t)
	first := ps.Show("/docs")
	ps.Show("/docs")

	assert.True(t, (<-first).Cancelled)
}

func TestPicker_MissingDirectory(t *testing.T) {
	ps := newTestPicker(t)
	ps.Show("/nowhere")

	assert.Nil(t, ps.Listing())
	assert.Contains(t, ps.View(), "Error")
}

func TestPicker_RefreshSeesNewFiles(t *testing.T) {
	fsys := pickerFs(t)
	ps := NewPickerScreen(fsys, styles.NewTheme("dark"), false, true)
	ps.Show("/docs")

	require.NoError(t, afero.WriteFile(fsys, "/docs/new.txt", []byte("n"), 0o644))
	ps.Refresh()

	var names []string
	for _, e := range ps.Listing().Entries {
		names = append(names, e.Name)
	}
	assert.Contains(t, names, "new.txt")
}

func TestHumanSize(t *testing.T) {
	assert.Equal(t, "12 B", humanSize(12))
	assert.Equal(t, "1.5 KB", humanSize(1536))
	assert.Equal(t, "2.0 MB", humanSize(2*1024*1024))
}

func newTestPrompt(t *testing.T) *SavePromptScreen {
	sp := NewSavePromptScreen(pickerFs(t), styles.NewTheme("dark"))
	sp.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	return sp
}

func TestSavePrompt_NewFile(t *testing.T) {
	sp := newTestPrompt(t)
	ch := sp.Show("/docs", "Untitled20253780509.txt")
	assert.Equal(t, "/docs/Untitled20253780509.txt", sp.Value())

	sp.Update(keyMsg(tea.KeyEnter))

	assert.Equal(t, fileio.Choice{Path: "/docs/Untitled20253780509.txt"}, <-ch)
}

func TestSavePrompt_RelativePath(t *testing.T) {
	sp := newTestPrompt(t)
	ch := sp.Show("/docs", "x.txt")
	sp.input.SetValue("sub/notes.txt")

	sp.Update(keyMsg(tea.KeyEnter))

	assert.Equal(t, "/docs/sub/notes.txt", (<-ch).Path)
}

func TestSavePrompt_OverwriteConfirmed(t *testing.T) {
	sp := newTestPrompt(t)
	ch := sp.Show("/docs", "a.txt")

	_, ask := sp.Update(keyMsg(tea.KeyEnter))
	require.NotNil(t, ask)
	assert.True(t, sp.Pending())
	assert.Contains(t, sp.View(), "Overwrite a.txt?")

	sp.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	msg := ask()
	assert.Equal(t, components.ConfirmResultMsg{ID: overwriteDialogID, Confirmed: true}, msg)
	sp.Update(msg)

	assert.Equal(t, "/docs/a.txt", (<-ch).Path)
}

func TestSavePrompt_OverwriteDeclinedKeepsPrompt(t *testing.T) {
	sp := newTestPrompt(t)
	sp.Show("/docs", "a.txt")

	_, ask := sp.Update(keyMsg(tea.KeyEnter))
	sp.Update(keyMsg(tea.KeyEsc))
	sp.Update(ask())

	assert.True(t, sp.Pending())
}

func TestSavePrompt_Rejects(t *testing.T) {
	sp := newTestPrompt(t)
	sp.Show("/docs", "sub")

	sp.Update(keyMsg(tea.KeyEnter))
	assert.Contains(t, sp.Status(), "is a directory")

	sp.input.SetValue("  ")
	sp.Update(keyMsg(tea.KeyEnter))
	assert.Contains(t, sp.Status(), "Enter a file name")
	assert.True(t, sp.Pending())
}

func TestSavePrompt_EscCancels(t *testing.T) {
	sp := newTestPrompt(t)
	ch := sp.Show("/docs", "a.txt")

	sp.Update(keyMsg(tea.KeyEsc))

	assert.True(t, (<-ch).Cancelled)
}
