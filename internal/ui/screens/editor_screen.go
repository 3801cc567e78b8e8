package screens

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"notepad-tui/internal/config"
	"notepad-tui/internal/document"
	"notepad-tui/internal/editor"
	"notepad-tui/internal/fileio"
	"notepad-tui/internal/metrics"
	"notepad-tui/internal/scrollsync"
	"notepad-tui/internal/ui/styles"
)

// One scroll unit is one terminal row.
const baseRowHeight = 1

const (
	wheelStep       = 3
	statusLifetime  = 5 * time.Second
	untitledHint    = "*Untitled.txt"
	bodyPlaceholder = "Start typing..."
)

type focusTarget int

const (
	focusBody focusTarget = iota
	focusFilename
)

type actionZone struct {
	action Action
	x0, x1 int
}

// lineLayout is the document cut into visual rows for the current body width.
type lineLayout struct {
	segments [][]string
	prefix   []int
	version  uint64
	width    int
	valid    bool
}

// EditorScreen is the single document editor: app bar, gutter and text body.
type EditorScreen struct {
	BaseScreen

	cfg   config.EditorConfig
	theme *styles.Theme
	keys  KeyMap
	help  help.Model

	showHelp bool

	buf      *document.Buffer
	state    editor.State
	filename textinput.Model
	gutter   *GutterView
	body     *BodyView
	sync     *scrollsync.Synchronizer
	focus    focusTarget

	estimator metrics.Estimator
	layout    lineLayout
	zones     []actionZone
	barLeft   int
	statusAt  time.Time

	clipboardRead  func() (string, error)
	clipboardWrite func(string) error
}

// NewEditorScreen creates the editor with an empty document.
func NewEditorScreen(cfg config.EditorConfig, theme *styles.Theme, keys KeyMap) *EditorScreen {
	es := &EditorScreen{
		BaseScreen:     NewBaseScreen("Editor"),
		cfg:            cfg,
		theme:          theme,
		keys:           keys,
		help:           help.New(),
		showHelp:       cfg.ShowHelp,
		buf:            document.NewBuffer(),
		clipboardRead:  clipboard.ReadAll,
		clipboardWrite: clipboard.WriteAll,
	}

	es.filename = textinput.New()
	es.filename.Prompt = ""
	es.filename.Placeholder = untitledHint
	es.filename.CharLimit = 255
	es.filename.PlaceholderStyle = theme.PlaceholderStyle
	es.filename.TextStyle = theme.FilenameStyle.UnsetPadding()

	es.gutter = NewGutterView(es.gutterScrolled)
	es.gutter.Style = theme.GutterStyle
	es.gutter.ActiveStyle = theme.GutterActiveStyle
	es.body = NewBodyView(es.bodyScrolled)
	es.sync = scrollsync.New(scrollsync.UniformRows{Height: baseRowHeight, Lines: 1}, es.gutter, es.body)
	return es
}

func (es *EditorScreen) gutterScrolled(c scrollsync.GutterCursor) {
	es.state.Gutter = c
	es.sync.GutterScrolled(c)
}

func (es *EditorScreen) bodyScrolled(offset int) {
	es.state.EditorOffset = offset
	es.sync.EditorScrolled(offset)
}

// SetClipboard replaces the system clipboard accessors.
func (es *EditorScreen) SetClipboard(read func() (string, error), write func(string) error) {
	es.clipboardRead = read
	es.clipboardWrite = write
}

func (es *EditorScreen) Init() tea.Cmd {
	return nil
}

func (es *EditorScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		es.SetSize(m.Width, m.Height-1)
		es.help.Width = m.Width
		es.refresh(true)
		return es, nil
	case tea.MouseMsg:
		return es, es.handleMouse(m)
	case tea.KeyMsg:
		return es, es.handleKey(m)
	}

	if es.focus == focusFilename {
		var cmd tea.Cmd
		es.filename, cmd = es.filename.Update(msg)
		return es, cmd
	}
	return es, nil
}

func (es *EditorScreen) OnEnter() tea.Cmd {
	es.refresh(false)
	return nil
}

// Status renders the status line: the last action result while it is fresh,
// otherwise the caret position.
func (es *EditorScreen) Status() string {
	st := es.state.Status
	if st.Kind != editor.StatusNone && time.Since(es.statusAt) < statusLifetime {
		switch st.Kind {
		case editor.StatusError:
			return es.theme.ErrorMessage(st.Message)
		case editor.StatusSuccess:
			return es.theme.SuccessMessage(st.Message)
		default:
			return es.theme.InfoMessage(st.Message)
		}
	}
	name := es.state.Filename
	if strings.TrimSpace(name) == "" {
		name = untitledHint
	}
	cur := es.buf.Cursor()
	return fmt.Sprintf("%s  Ln %d, Col %d  (%d lines)", name, cur.Line+1, cur.Col+1, es.buf.LineCount())
}

func (es *EditorScreen) ShortHelp() string {
	if es.showHelp {
		return ""
	}
	return es.keys.Help.Help().Key + ": help"
}

// State returns the screen state.
func (es *EditorScreen) State() editor.State {
	return es.state
}

// Text returns the document.
func (es *EditorScreen) Text() string {
	return es.buf.Text()
}

// SaveName returns the name the save prompt suggests.
func (es *EditorScreen) SaveName(now time.Time, style fileio.NameStyle) string {
	return editor.SaveName(es.state, now, style)
}

// Synchronizer exposes the scroll synchronizer for diagnostics.
func (es *EditorScreen) Synchronizer() *scrollsync.Synchronizer {
	return es.sync
}

// SetText replaces the document as if it had been typed.
func (es *EditorScreen) SetText(text string) {
	es.buf.SetText(text)
	es.state = editor.SetText(es.state, es.buf.Text())
	es.refresh(true)
}

// SetFilename fills the filename field.
func (es *EditorScreen) SetFilename(name string) {
	es.state = editor.SetFilename(es.state, name)
	es.filename.SetValue(name)
}

// NewDocument clears text, filename and scroll.
func (es *EditorScreen) NewDocument() {
	es.applyState(editor.Clear(es.state))
}

// ApplyOpen folds an open result into the editor.
func (es *EditorScreen) ApplyOpen(r fileio.Result) {
	es.applyState(editor.ApplyOpen(es.state, r))
}

// ApplySave folds a save result into the editor.
func (es *EditorScreen) ApplySave(r fileio.Result, opts editor.SaveOptions) {
	es.applyState(editor.ApplySave(es.state, r, opts))
}

func (es *EditorScreen) applyState(next editor.State) {
	prev := es.state
	es.state = next
	if next.Status != prev.Status {
		es.statusAt = time.Now()
	}
	if next.Filename != es.filename.Value() {
		es.filename.SetValue(next.Filename)
	}
	if next.Text != es.buf.Text() {
		es.buf.SetText(next.Text)
	}
	es.refresh(false)
	es.body.ScrollTo(next.EditorOffset)
	es.sync.EditorScrolled(es.body.Offset())
}

// SetStatus shows a message in the status line.
func (es *EditorScreen) SetStatus(kind editor.StatusKind, message string) {
	es.state.Status = editor.Status{Kind: kind, Message: message}
	es.statusAt = time.Now()
}

// ToggleFocus moves keyboard focus between the filename field and the body.
func (es *EditorScreen) ToggleFocus() tea.Cmd {
	var cmd tea.Cmd
	if es.focus == focusBody {
		es.focus = focusFilename
		cmd = es.filename.Focus()
	} else {
		es.focus = focusBody
		es.filename.Blur()
	}
	es.refresh(false)
	return cmd
}

// ToggleHelp switches between the short and the full key help.
func (es *EditorScreen) ToggleHelp() {
	if !es.showHelp {
		es.showHelp = true
		es.help.ShowAll = false
	} else if !es.help.ShowAll {
		es.help.ShowAll = true
	} else {
		es.showHelp = false
		es.help.ShowAll = false
	}
	es.refresh(false)
}

// Copy puts the whole document on the clipboard.
func (es *EditorScreen) Copy() error {
	if es.clipboardWrite == nil {
		return fmt.Errorf("clipboard unavailable")
	}
	if err := es.clipboardWrite(es.buf.Text()); err != nil {
		es.SetStatus(editor.StatusError, fmt.Sprintf("Copy failed: %v", err))
		return err
	}
	es.SetStatus(editor.StatusInfo, fmt.Sprintf("Copied %d lines", es.buf.LineCount()))
	return nil
}

// Paste inserts the clipboard at the caret, or into the filename when it has focus.
func (es *EditorScreen) Paste() error {
	if es.clipboardRead == nil {
		return fmt.Errorf("clipboard unavailable")
	}
	text, err := es.clipboardRead()
	if err != nil {
		es.SetStatus(editor.StatusError, fmt.Sprintf("Paste failed: %v", err))
		return err
	}
	if es.focus == focusFilename {
		line, _, _ := strings.Cut(text, "\n")
		es.filename.SetValue(es.filename.Value() + strings.TrimSpace(line))
		es.filename.CursorEnd()
		es.state = editor.SetFilename(es.state, es.filename.Value())
		return nil
	}
	es.insert(text)
	return nil
}

func (es *EditorScreen) insert(text string) {
	text = strings.ReplaceAll(text, "\t", strings.Repeat(" ", es.cfg.TabSize))
	es.buf.InsertString(text)
	es.edited()
}

func (es *EditorScreen) edited() {
	es.state = editor.SetText(es.state, es.buf.Text())
	es.refresh(true)
}

func (es *EditorScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	if es.focus == focusFilename {
		switch msg.Type {
		case tea.KeyEnter, tea.KeyEsc:
			return es.ToggleFocus()
		}
		var cmd tea.Cmd
		es.filename, cmd = es.filename.Update(msg)
		es.state = editor.SetFilename(es.state, es.filename.Value())
		return cmd
	}

	if msg.Type == tea.KeyRunes {
		es.insert(string(msg.Runes))
		return nil
	}

	switch msg.String() {
	case "left":
		es.buf.MoveLeft()
	case "right":
		es.buf.MoveRight()
	case "up":
		es.buf.MoveUp()
	case "down":
		es.buf.MoveDown()
	case "home":
		es.buf.MoveHome()
	case "end":
		es.buf.MoveEnd()
	case "ctrl+home":
		es.buf.MoveTo(0, 0)
	case "ctrl+end":
		last := es.buf.LineCount() - 1
		es.buf.MoveTo(last, es.buf.LineLength(last))
	case "pgup":
		for i := 0; i < es.body.Height(); i++ {
			es.buf.MoveUp()
		}
	case "pgdown":
		for i := 0; i < es.body.Height(); i++ {
			es.buf.MoveDown()
		}
	case "ctrl+up":
		es.body.ScrollBy(-1)
		return nil
	case "ctrl+down":
		es.body.ScrollBy(1)
		return nil
	case "enter":
		es.buf.InsertRune('\n')
		es.edited()
		return nil
	case "backspace":
		if es.buf.DeleteBackward() != "" {
			es.edited()
		}
		return nil
	case "delete":
		if es.buf.DeleteForward() != "" {
			es.edited()
		}
		return nil
	default:
		if msg.Type == tea.KeySpace {
			es.buf.InsertRune(' ')
			es.edited()
		}
		return nil
	}
	es.refresh(true)
	return nil
}

func (es *EditorScreen) handleMouse(msg tea.MouseMsg) tea.Cmd {
	bodyTop := 1
	inBody := msg.Y >= bodyTop && msg.Y < bodyTop+es.body.Height()
	overGutter := msg.X < es.gutter.width

	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		if !inBody {
			return nil
		}
		delta := wheelStep
		if msg.Button == tea.MouseButtonWheelUp {
			delta = -wheelStep
		}
		if overGutter {
			es.gutter.ScrollBy(delta)
		} else {
			es.body.ScrollBy(delta)
		}
		return nil
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return nil
		}
	default:
		return nil
	}

	if msg.Y == 0 {
		if a, ok := es.actionAt(msg.X); ok {
			return func() tea.Msg { return ActionMsg{Action: a} }
		}
		if msg.X < es.barLeft && es.focus != focusFilename {
			return es.ToggleFocus()
		}
		return nil
	}
	if !inBody || overGutter {
		return nil
	}
	var cmd tea.Cmd
	if es.focus != focusBody {
		cmd = es.ToggleFocus()
	}
	line, col := es.positionAt(es.body.Offset()+msg.Y-bodyTop, msg.X-es.gutter.width-1)
	es.buf.MoveTo(line, col)
	es.refresh(false)
	return cmd
}

func (es *EditorScreen) actionAt(x int) (Action, bool) {
	for _, z := range es.zones {
		if x >= z.x0 && x < z.x1 {
			return z.action, true
		}
	}
	return "", false
}
