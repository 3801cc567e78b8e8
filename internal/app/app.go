package app

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/truncate"
	"github.com/spf13/afero"

	"notepad-tui/internal/config"
	"notepad-tui/internal/fileio"
	"notepad-tui/internal/fs"
	"notepad-tui/internal/logging"
	"notepad-tui/internal/ui/screens"
	"notepad-tui/internal/ui/styles"
)

// ScreenType identifies a screen.
type ScreenType int

const (
	EditorScreen ScreenType = iota
	PickerScreen
	SavePromptScreen
	PaletteScreen
)

func (s ScreenType) String() string {
	switch s {
	case EditorScreen:
		return "editor"
	case PickerScreen:
		return "picker"
	case SavePromptScreen:
		return "save"
	case PaletteScreen:
		return "palette"
	default:
		return "unknown"
	}
}

// Options carry the collaborators main wires in. Zero values are usable.
type Options struct {
	Fs        afero.Fs
	Logger    *slog.Logger
	Watcher   *fs.DirWatcher
	StartFile string
	Now       func() time.Time
}

// App is the root bubbletea model.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	config   *config.Config
	log      *slog.Logger
	fs       afero.Fs
	theme    *styles.Theme
	keys     screens.KeyMap
	router   *ScreenRouter
	commands *CommandRegistry
	events   *EventBus
	watcher  *fs.DirWatcher
	now      func() time.Time

	currentScreen ScreenType
	screens       map[ScreenType]screens.Screen
	editor        *screens.EditorScreen
	picker        *screens.PickerScreen
	prompt        *screens.SavePromptScreen
	palette       *screens.CommandPaletteScreen

	startFile string
	lastDir   string
	nameStyle fileio.NameStyle
	lastError error
}

// New creates the application.
func New(cfg *config.Config, opts Options) *App {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	ctx, cancel := context.WithCancel(context.Background())
	nameStyle, _ := fileio.ParseNameStyle(cfg.Files.FilenameStyle)

	a := &App{
		ctx:       ctx,
		cancel:    cancel,
		config:    cfg,
		log:       opts.Logger,
		fs:        opts.Fs,
		theme:     styles.NewTheme(cfg.Theme),
		keys:      screens.NewKeyMap(cfg.Keybindings),
		commands:  NewCommandRegistry(),
		events:    NewEventBus(),
		watcher:   opts.Watcher,
		now:       opts.Now,
		screens:   make(map[ScreenType]screens.Screen),
		startFile: opts.StartFile,
		lastDir:   cfg.Files.StartDir,
		nameStyle: nameStyle,
	}
	a.router = NewScreenRouter(a)
	a.initScreens()
	a.registerCommands()
	a.events.SubscribeAll(a.logEvent)
	return a
}

func (a *App) initScreens() {
	a.editor = screens.NewEditorScreen(a.config.Editor, a.theme, a.keys)
	a.picker = screens.NewPickerScreen(a.fs, a.theme, a.config.Files.ShowHidden, a.config.Files.TextOnly)
	a.prompt = screens.NewSavePromptScreen(a.fs, a.theme)
	a.screens[EditorScreen] = a.editor
	a.screens[PickerScreen] = a.picker
	a.palette = screens.NewCommandPaletteScreen(a.theme, a.paletteEntries)
	a.screens[SavePromptScreen] = a.prompt
	a.screens[PaletteScreen] = a.palette
	a.currentScreen = EditorScreen
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.editor.Init(), a.listenDirChanges()}
	if a.startFile != "" {
		cmds = append(cmds, a.openStartFile(a.startFile))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleGlobalKeys(msg)
	case tea.WindowSizeMsg:
		return a.handleWindowResize(msg)
	case ScreenSwitchMsg:
		return a.handleScreenSwitch(msg)
	case screens.ActionMsg:
		return a, a.commands.Run(string(msg.Action), a)
	case screens.CommandExecuteMsg:
		return a.handlePaletteExecute(msg)
	case screens.CommandPaletteClosedMsg:
		return a, a.router.GoBack()
	case screens.OpenResultMsg:
		return a.handleOpenResult(msg.Result)
	case screens.SaveResultMsg:
		return a.handleSaveResult(msg.Result)
	case screens.PickerDirMsg:
		a.watchDir(msg.Dir)
		return a, nil
	case startNewFileMsg:
		a.editor.SetFilename(filepath.Base(msg.path))
		a.lastDir = filepath.Dir(msg.path)
		return a, nil
	case dirChangedMsg:
		return a.handleDirChanged(msg)
	case ErrorMsg:
		return a.handleError(msg)
	}

	return a, a.forward(msg)
}

func (a *App) forward(msg tea.Msg) tea.Cmd {
	current := a.getCurrentScreen()
	if current == nil {
		return nil
	}
	updated, cmd := current.Update(msg)
	a.screens[a.currentScreen] = updated
	return cmd
}

// View implements tea.Model.
func (a *App) View() string {
	current := a.getCurrentScreen()
	if current == nil {
		return "Loading..."
	}
	return current.View() + "\n" + a.renderStatusBar(current)
}

func (a *App) getCurrentScreen() screens.Screen {
	return a.screens[a.currentScreen]
}

// CurrentScreen returns the visible screen.
func (a *App) CurrentScreen() ScreenType {
	return a.currentScreen
}

// Editor returns the editor screen.
func (a *App) Editor() *screens.EditorScreen {
	return a.editor
}

// Events returns the document event bus.
func (a *App) Events() *EventBus {
	return a.events
}

// Close cancels pending open and save flows.
func (a *App) Close() {
	a.picker.Cancel()
	a.prompt.Cancel()
	a.cancel()
}

func (a *App) renderStatusBar(current screens.Screen) string {
	left := current.Status()
	right := current.ShortHelp()
	width := a.theme.Width() - 2
	if right != "" {
		left += "  •  " + right
	}
	if width > 0 {
		left = truncate.StringWithTail(left, uint(width), "…")
	}
	return a.theme.StatusBar(left)
}

func (a *App) logEvent(ev DocumentEvent) {
	attrs := []any{"action", ev.Action, "name", ev.Name, "path", ev.Path}
	switch ev.Kind {
	case EventFailed:
		a.log.Error("document action failed", append(attrs, "err", ev.Err)...)
	case EventCancelled:
		a.log.Debug("document action cancelled", attrs...)
	default:
		a.log.Info(string(ev.Kind), append(attrs, "bytes", ev.Bytes)...)
	}
}

// ScreenSwitchMsg asks the app to show another screen.
type ScreenSwitchMsg struct {
	ScreenType ScreenType
}

// ErrorMsg reports an error from a background command.
type ErrorMsg struct {
	Error error
}

type startNewFileMsg struct {
	path string
}

type dirChangedMsg struct {
	event fs.ChangeEvent
}
