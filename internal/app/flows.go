package app

import (
	"errors"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"notepad-tui/internal/editor"
	"notepad-tui/internal/fileio"
	"notepad-tui/internal/ui/screens"
)

// startOpen shows the picker and runs the open flow against it. The result
// arrives as an OpenResultMsg once the user chooses or cancels.
func (a *App) startOpen() tea.Cmd {
	choices := a.picker.Show(a.lastDir)
	adapter := fileio.NewFSAdapter(a.fs, fileio.PendingChooser{Open: choices}, a.config.Files.MaxFileSize)
	ctx := a.ctx
	a.watchDir(a.picker.Dir())
	a.log.Debug("open requested", "dir", a.picker.Dir())

	return tea.Batch(
		a.router.SwitchTo(PickerScreen),
		func() tea.Msg {
			return screens.OpenResultMsg{Result: fileio.OpenDocument(ctx, adapter)}
		},
	)
}

// startSave shows the save prompt with the suggested name and runs the save flow.
// The text is captured now; edits made while the prompt is open are not saved.
func (a *App) startSave() tea.Cmd {
	name := a.editor.SaveName(a.now(), a.nameStyle)
	text := a.editor.Text()
	choices := a.prompt.Show(a.lastDir, name)
	adapter := fileio.NewFSAdapter(a.fs, fileio.PendingChooser{Create: choices}, 0)
	ctx := a.ctx
	a.log.Debug("save requested", "name", name)

	return tea.Batch(
		a.router.SwitchTo(SavePromptScreen),
		func() tea.Msg {
			return screens.SaveResultMsg{Result: fileio.SaveDocument(ctx, adapter, name, text)}
		},
	)
}

func (a *App) handleOpenResult(r fileio.Result) (tea.Model, tea.Cmd) {
	a.editor.ApplyOpen(r)
	if r.OK() {
		a.rememberDir(r.Path)
	}
	a.publish("open", EventOpened, r)
	return a, a.router.GoBack()
}

func (a *App) handleSaveResult(r fileio.Result) (tea.Model, tea.Cmd) {
	a.editor.ApplySave(r, editor.SaveOptions{
		ClearOnSave: a.config.Files.ClearOnSave,
		NameStyle:   a.nameStyle,
	})
	if r.OK() {
		a.rememberDir(r.Path)
	}
	a.publish("save", EventSaved, r)
	return a, a.router.GoBack()
}

func (a *App) rememberDir(path string) {
	if path == "" {
		return
	}
	a.lastDir = filepath.Dir(path)
}

func (a *App) publish(action string, ok EventKind, r fileio.Result) {
	ev := DocumentEvent{Action: action, Name: r.Name, Path: r.Path, Bytes: len(r.Text), Err: r.Err}
	switch r.Status {
	case fileio.StatusOK:
		ev.Kind = ok
	case fileio.StatusCancelled:
		ev.Kind = EventCancelled
	default:
		ev.Kind = EventFailed
	}
	a.events.Publish(ev)
}

// openStartFile reads the file named on the command line. A missing file starts
// a new document under that name.
func (a *App) openStartFile(path string) tea.Cmd {
	adapter := fileio.NewFSAdapter(a.fs, nil, a.config.Files.MaxFileSize)
	ctx := a.ctx
	return func() tea.Msg {
		doc, err := adapter.ReadDocument(ctx, path, []string{fileio.MimeTextPlain})
		switch {
		case err == nil:
			return screens.OpenResultMsg{Result: fileio.Result{
				Status: fileio.StatusOK,
				Name:   doc.Name,
				Path:   doc.Path,
				Text:   fileio.DecodeText(doc.Data),
			}}
		case errors.Is(err, os.ErrNotExist):
			return startNewFileMsg{path: path}
		default:
			return screens.OpenResultMsg{Result: fileio.Result{Status: fileio.StatusFailed, Path: path, Err: err}}
		}
	}
}

func (a *App) watchDir(dir string) {
	if a.watcher == nil || dir == "" {
		return
	}
	if err := a.watcher.Watch(dir); err != nil {
		a.log.Warn("watch directory", "dir", dir, "err", err)
	}
}

// listenDirChanges waits for the next change in the watched directory.
func (a *App) listenDirChanges() tea.Cmd {
	if a.watcher == nil {
		return nil
	}
	events := a.watcher.Events()
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return dirChangedMsg{event: ev}
	}
}

func (a *App) handleDirChanged(msg dirChangedMsg) (tea.Model, tea.Cmd) {
	a.log.Debug("directory changed", "path", msg.event.Path, "op", msg.event.Operation.String())
	if a.picker.Pending() && msg.event.Dir == a.picker.Dir() {
		a.picker.Refresh()
	}
	return a, a.listenDirChanges()
}
