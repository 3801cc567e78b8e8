package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestConfirmDialog_Answers(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"y", true},
		{"enter", true},
		{"n", false},
		{"esc", false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			d := NewConfirmDialog("overwrite", "Overwrite?", "a.txt exists")
			ch := d.Show()
			require.True(t, d.IsVisible())

			assert.True(t, d.Update(key(tt.key)))

			assert.Equal(t, tt.want, <-ch)
			assert.False(t, d.IsVisible())
			assert.Empty(t, d.View())
		})
	}
}

func TestConfirmDialog_SwallowsOtherKeys(t *testing.T) {
	d := NewConfirmDialog("x", "Title", "Body")
	d.Show()

	assert.True(t, d.Update(key("q")))
	assert.True(t, d.IsVisible())
	assert.Contains(t, d.View(), "Body")
}

func TestConfirmDialog_HiddenIgnoresKeys(t *testing.T) {
	d := NewConfirmDialog("x", "Title", "Body")
	assert.False(t, d.Update(key("y")))
}

func TestConfirmDialog_AskProducesResult(t *testing.T) {
	d := NewConfirmDialog("overwrite", "Overwrite?", "")
	cmd := d.Ask()
	d.Hide()

	msg := cmd()

	assert.Equal(t, ConfirmResultMsg{ID: "overwrite", Confirmed: false}, msg)
}

func TestConfirmDialog_ShowTwiceSameChannel(t *testing.T) {
	d := NewConfirmDialog("x", "", "")
	first := d.Show()
	second := d.Show()
	d.Update(key("y"))

	assert.True(t, <-first)
	select {
	case <-second:
		t.Fatal("answer delivered twice")
	default:
	}
}
