// Package editor holds the screen-level state of the editor and the pure reducers
// that change it. Nothing here touches the terminal, so every transition can be
// exercised without a UI.
package editor

import (
	"errors"
	"fmt"
	"time"

	"notepad-tui/internal/document"
	"notepad-tui/internal/fileio"
	"notepad-tui/internal/scrollsync"
)

// StatusKind styles the status line.
type StatusKind int

const (
	StatusNone StatusKind = iota
	StatusInfo
	StatusSuccess
	StatusError
)

// Status is the message shown after an action.
type Status struct {
	Kind    StatusKind
	Message string
}

// State is everything the editor screen owns besides widget internals.
type State struct {
	Text         string
	Filename     string
	Gutter       scrollsync.GutterCursor
	EditorOffset int
	Status       Status
}

// SaveOptions tune ApplySave and SaveName.
type SaveOptions struct {
	ClearOnSave bool
	NameStyle   fileio.NameStyle
}

// Lines returns the document split into lines.
func (s State) Lines() []string {
	return document.SplitLines(s.Text)
}

// SetText replaces the text as typing does. Scroll state is kept.
func SetText(s State, text string) State {
	s.Text = text
	return s
}

// Clear empties the document for the "new" action. The filename is reset too.
func Clear(s State) State {
	s.Text = ""
	s.Filename = ""
	s = resetScroll(s)
	s.Status = Status{Kind: StatusInfo, Message: "New document"}
	return s
}

// SetFilename updates the filename field.
func SetFilename(s State, name string) State {
	s.Filename = name
	return s
}

// ApplyOpen folds the result of an open action into the state. A cancelled open
// returns the state exactly as it was.
func ApplyOpen(s State, r fileio.Result) State {
	switch r.Status {
	case fileio.StatusOK:
		s.Text = r.Text
		s.Filename = r.Name
		s = resetScroll(s)
		s.Status = Status{Kind: StatusSuccess, Message: fmt.Sprintf("Opened %s", r.Name)}
	case fileio.StatusCancelled:
	default:
		s.Status = Status{Kind: StatusError, Message: failure("Open", r.Err)}
	}
	return s
}

// SaveName returns the name offered to the document creator: the filename field,
// or a timestamped default when it is empty.
func SaveName(s State, now time.Time, style fileio.NameStyle) string {
	return fileio.ResolveName(s.Filename, now, style)
}

// ApplySave folds the result of a save action into the state.
func ApplySave(s State, r fileio.Result, opts SaveOptions) State {
	switch r.Status {
	case fileio.StatusOK:
		s.Filename = r.Name
		s.Status = Status{Kind: StatusSuccess, Message: fmt.Sprintf("Saved %s", r.Name)}
		if opts.ClearOnSave {
			s.Text = ""
			s = resetScroll(s)
		}
	case fileio.StatusCancelled:
	default:
		s.Status = Status{Kind: StatusError, Message: failure("Save", r.Err)}
	}
	return s
}

func resetScroll(s State) State {
	s.Gutter = scrollsync.GutterCursor{}
	s.EditorOffset = 0
	return s
}

func failure(action string, err error) string {
	switch {
	case err == nil:
		return action + " failed"
	case errors.Is(err, fileio.ErrUnsupportedType):
		return action + " failed: not a text document"
	default:
		return fmt.Sprintf("%s failed: %v", action, err)
	}
}
