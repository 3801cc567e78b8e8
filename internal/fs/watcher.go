package fs

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Operation is the kind of change seen in a watched directory.
type Operation int

const (
	Created Operation = iota
	Modified
	Deleted
	Renamed
)

func (op Operation) String() string {
	switch op {
	case Created:
		return "created"
	case Modified:
		return "modified"
	case Deleted:
		return "deleted"
	case Renamed:
		return "renamed"
	default:
		return "unknown"
	}
}

// ChangeEvent reports a change to an entry of the watched directory.
type ChangeEvent struct {
	Dir       string
	Path      string
	Operation Operation
}

// DirWatcher watches a single directory at a time, the one the picker shows.
type DirWatcher struct {
	watcher *fsnotify.Watcher
	events  chan ChangeEvent
	log     *slog.Logger

	mu  sync.Mutex
	dir string

	cancel context.CancelFunc
	done   chan struct{}
}

// NewDirWatcher starts the watch loop. Close stops it.
func NewDirWatcher(ctx context.Context, log *slog.Logger) (*DirWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}
	ctx, cancel := context.WithCancel(ctx)
	dw := &DirWatcher{
		watcher: w,
		events:  make(chan ChangeEvent, 16),
		log:     log,
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	go dw.loop(ctx)
	return dw, nil
}

// Events delivers changes of the watched directory. It is closed by Close.
func (dw *DirWatcher) Events() <-chan ChangeEvent {
	return dw.events
}

// Dir returns the directory currently watched.
func (dw *DirWatcher) Dir() string {
	dw.mu.Lock()
	defer dw.mu.Unlock()
	return dw.dir
}

// Watch switches the watch to dir, dropping the previous one.
func (dw *DirWatcher) Watch(dir string) error {
	dir = filepath.Clean(dir)
	dw.mu.Lock()
	defer dw.mu.Unlock()
	if dw.dir == dir {
		return nil
	}
	if dw.dir != "" {
		_ = dw.watcher.Remove(dw.dir)
	}
	if err := dw.watcher.Add(dir); err != nil {
		dw.dir = ""
		return err
	}
	dw.dir = dir
	return nil
}

// Close stops watching and closes the events channel.
func (dw *DirWatcher) Close() error {
	dw.cancel()
	err := dw.watcher.Close()
	<-dw.done
	return err
}

func (dw *DirWatcher) loop(ctx context.Context) {
	defer close(dw.done)
	defer close(dw.events)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-dw.watcher.Events:
			if !ok {
				return
			}
			change, ok := dw.convert(event)
			if !ok {
				continue
			}
			select {
			case dw.events <- change:
			case <-ctx.Done():
				return
			}
		case err, ok := <-dw.watcher.Errors:
			if !ok {
				return
			}
			dw.log.Warn("directory watch error", "dir", dw.Dir(), "err", err)
		}
	}
}

func (dw *DirWatcher) convert(event fsnotify.Event) (ChangeEvent, bool) {
	dir := dw.Dir()
	if dir == "" || filepath.Dir(event.Name) != dir {
		return ChangeEvent{}, false
	}

	var op Operation
	switch {
	case event.Has(fsnotify.Create):
		op = Created
	case event.Has(fsnotify.Write):
		op = Modified
	case event.Has(fsnotify.Remove):
		op = Deleted
	case event.Has(fsnotify.Rename):
		op = Renamed
	default:
		// chmod only
		return ChangeEvent{}, false
	}
	return ChangeEvent{Dir: dir, Path: event.Name, Operation: op}, true
}
