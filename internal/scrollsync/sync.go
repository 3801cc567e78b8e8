package scrollsync

import "sync"

// GutterScroller is the line-number list. ScrollToItem requests a scroll; the list
// may report the resulting position back through Synchronizer.GutterScrolled.
type GutterScroller interface {
	ScrollToItem(index, offset int)
}

// EditorScroller is the text body. ScrollTo requests a scroll; the body may report
// the resulting position back through Synchronizer.EditorScrolled.
type EditorScroller interface {
	ScrollTo(offset int)
}

// Stats counts transitions for diagnostics.
type Stats struct {
	GutterDriven int
	EditorDriven int
	Suppressed   int
}

// Synchronizer keeps the gutter and the editor body showing the same row.
//
// Each direction has its own guard flag. While a gutter-driven write to the editor
// is in flight, editor notifications are ignored, and the other way round, so a
// view echoing the position it was just given never re-triggers the opposite
// transition. Flags are checked and set under the mutex; the mutex is released
// before calling into a view so views may notify synchronously.
type Synchronizer struct {
	mu            sync.Mutex
	rows          RowModel
	gutter        GutterScroller
	editor        EditorScroller
	gutterDriving bool
	editorDriving bool
	stats         Stats
}

// New returns a synchronizer over the given views.
func New(rows RowModel, gutter GutterScroller, editor EditorScroller) *Synchronizer {
	return &Synchronizer{rows: rows, gutter: gutter, editor: editor}
}

// SetModel replaces the row model after the document changed shape.
func (s *Synchronizer) SetModel(rows RowModel) {
	s.mu.Lock()
	s.rows = rows
	s.mu.Unlock()
}

// Model returns the current row model.
func (s *Synchronizer) Model() RowModel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rows
}

// GutterScrolled handles a change of the gutter cursor and moves the editor.
// It reports whether the editor was asked to scroll.
func (s *Synchronizer) GutterScrolled(c GutterCursor) bool {
	s.mu.Lock()
	if s.gutterDriving || s.editorDriving || s.rows == nil || s.editor == nil {
		s.stats.Suppressed++
		s.mu.Unlock()
		return false
	}
	s.gutterDriving = true
	target := s.rows.OffsetOf(c)
	s.stats.GutterDriven++
	s.mu.Unlock()

	s.editor.ScrollTo(target)

	s.mu.Lock()
	s.gutterDriving = false
	s.mu.Unlock()
	return true
}

// EditorScrolled handles a change of the editor offset and moves the gutter.
// It reports whether the gutter was asked to scroll.
func (s *Synchronizer) EditorScrolled(offset int) bool {
	s.mu.Lock()
	if s.editorDriving || s.gutterDriving || s.rows == nil || s.gutter == nil {
		s.stats.Suppressed++
		s.mu.Unlock()
		return false
	}
	s.editorDriving = true
	c := s.rows.CursorAt(offset)
	s.stats.EditorDriven++
	s.mu.Unlock()

	s.gutter.ScrollToItem(c.Index, c.Offset)

	s.mu.Lock()
	s.editorDriving = false
	s.mu.Unlock()
	return true
}

// Stats returns a snapshot of the transition counters.
func (s *Synchronizer) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}
