package scrollsync

import "sort"

// GutterCursor is the scroll state of the virtualized line-number list: the first
// visible line and how far into that line the list is scrolled.
type GutterCursor struct {
	Index  int
	Offset int
}

// RowModel converts between a gutter cursor and a continuous editor offset.
type RowModel interface {
	// OffsetOf returns the editor offset showing the same row as c.
	OffsetOf(c GutterCursor) int
	// CursorAt returns the gutter cursor showing the same row as offset.
	CursorAt(offset int) GutterCursor
}

// UniformRows gives every line the same height and ignores soft wrap.
type UniformRows struct {
	Height int
	Lines  int
}

// OffsetOf implements RowModel: Offset + Index×Height.
// A zero height or an empty document yields offset zero.
func (u UniformRows) OffsetOf(c GutterCursor) int {
	if u.Height <= 0 || u.Lines <= 0 {
		return 0
	}
	return c.Offset + c.Index*u.Height
}

// CursorAt implements RowModel: (offset / Height, offset mod Height).
// A zero height or an empty document yields the top of the document.
func (u UniformRows) CursorAt(offset int) GutterCursor {
	if u.Height <= 0 || u.Lines <= 0 || offset <= 0 {
		return GutterCursor{}
	}
	index := offset / u.Height
	if index >= u.Lines {
		return GutterCursor{Index: u.Lines - 1, Offset: u.Height - 1}
	}
	return GutterCursor{Index: index, Offset: offset % u.Height}
}

// WrappedRows gives each line its own height, typically base × estimated rows.
type WrappedRows struct {
	heights []int
	prefix  []int
}

// NewWrappedRows builds a model from per-line heights. Negative heights count as zero.
func NewWrappedRows(heights []int) *WrappedRows {
	w := &WrappedRows{
		heights: make([]int, len(heights)),
		prefix:  make([]int, len(heights)+1),
	}
	for i, h := range heights {
		if h < 0 {
			h = 0
		}
		w.heights[i] = h
		w.prefix[i+1] = w.prefix[i] + h
	}
	return w
}

// Lines returns the number of lines in the model.
func (w *WrappedRows) Lines() int {
	return len(w.heights)
}

// Height returns the height of one line, or 0 when out of range.
func (w *WrappedRows) Height(index int) int {
	if index < 0 || index >= len(w.heights) {
		return 0
	}
	return w.heights[index]
}

// Total returns the summed height of all lines.
func (w *WrappedRows) Total() int {
	return w.prefix[len(w.prefix)-1]
}

// OffsetOf implements RowModel. A model without rows yields offset zero.
func (w *WrappedRows) OffsetOf(c GutterCursor) int {
	if len(w.heights) == 0 || w.Total() == 0 {
		return 0
	}
	index := c.Index
	if index < 0 {
		index = 0
	}
	if index >= len(w.heights) {
		index = len(w.heights) - 1
	}
	return w.prefix[index] + c.Offset
}

// CursorAt implements RowModel.
func (w *WrappedRows) CursorAt(offset int) GutterCursor {
	n := len(w.heights)
	total := w.Total()
	if n == 0 || total == 0 || offset <= 0 {
		return GutterCursor{}
	}
	if offset >= total {
		last := n - 1
		for last > 0 && w.heights[last] == 0 {
			last--
		}
		return GutterCursor{Index: last, Offset: max(w.heights[last]-1, 0)}
	}
	index := sort.Search(n, func(i int) bool { return w.prefix[i+1] > offset })
	return GutterCursor{Index: index, Offset: offset - w.prefix[index]}
}
