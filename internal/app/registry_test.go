package app

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandRegistry_ResolvePrefersScreen(t *testing.T) {
	r := NewCommandRegistry()
	editor := EditorScreen
	r.Register(&Command{ID: "global", Title: "Global", Binding: key.NewBinding(key.WithKeys("ctrl+s"))})
	r.Register(&Command{ID: "local", Title: "Local", Binding: key.NewBinding(key.WithKeys("ctrl+s")), Screen: &editor})

	msg := tea.KeyMsg{Type: tea.KeyCtrlS}

	require.NotNil(t, r.Resolve(msg, EditorScreen))
	assert.Equal(t, "local", r.Resolve(msg, EditorScreen).ID)
	assert.Equal(t, "global", r.Resolve(msg, PickerScreen).ID)
	assert.Nil(t, r.Resolve(tea.KeyMsg{Type: tea.KeyCtrlB}, EditorScreen))
}

func TestCommandRegistry_RunHonoursEnabled(t *testing.T) {
	r := NewCommandRegistry()
	calls := 0
	enabled := false
	r.Register(&Command{
		ID:      "x",
		Enabled: func(*App) bool { return enabled },
		Run:     func(*App) tea.Cmd { calls++; return nil },
	})

	r.Run("x", nil)
	enabled = true
	r.Run("x", nil)
	r.Run("missing", nil)

	assert.Equal(t, 1, calls)
}

func TestCommandRegistry_AllSortedAndReplaced(t *testing.T) {
	r := NewCommandRegistry()
	r.Register(&Command{ID: "b", Title: "Bravo"})
	r.Register(&Command{ID: "a", Title: "Alpha"})
	r.Register(&Command{ID: "b", Title: "Beta"})
	r.Register(nil)

	all := r.All()
	require.Len(t, all, 2)
	assert.Equal(t, "Alpha", all[0].Title)
	assert.Equal(t, "Beta", all[1].Title)
}

func TestScreenRouter_History(t *testing.T) {
	a := &App{currentScreen: EditorScreen}
	r := NewScreenRouter(a)

	assert.Nil(t, r.SwitchTo(EditorScreen))
	cmd := r.SwitchTo(PickerScreen)
	require.NotNil(t, cmd)
	assert.Equal(t, ScreenSwitchMsg{ScreenType: PickerScreen}, cmd())
	assert.True(t, r.CanNavigateBack())

	a.currentScreen = PickerScreen
	back := r.GoBack()
	require.NotNil(t, back)
	assert.Equal(t, ScreenSwitchMsg{ScreenType: EditorScreen}, back())
	assert.False(t, r.CanNavigateBack())
}

func TestEventBus_DeliversToSubscribers(t *testing.T) {
	bus := NewEventBus()
	got := make(chan DocumentEvent, 4)
	bus.Subscribe(EventSaved, func(ev DocumentEvent) { got <- ev })
	bus.SubscribeAll(func(ev DocumentEvent) { got <- ev })

	bus.Publish(DocumentEvent{Kind: EventSaved, Name: "a.txt"})
	bus.Publish(DocumentEvent{Kind: EventOpened, Name: "b.txt"})
	bus.Unsubscribe(EventSaved)
	bus.Publish(DocumentEvent{Kind: EventSaved, Name: "c.txt"})
	bus.Wait()
	close(got)

	var names []string
	for ev := range got {
		names = append(names, ev.Name)
	}
	assert.ElementsMatch(t, []string{"a.txt", "a.txt", "b.txt", "c.txt"}, names)
}
