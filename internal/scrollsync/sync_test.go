package scrollsync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// echoGutter behaves like a reactive list: every requested scroll is applied and
// immediately reported back to the synchronizer, with a one-unit rounding drift.
type echoGutter struct {
	sync   *Synchronizer
	cursor GutterCursor
	calls  int
	drift  int
}

func (g *echoGutter) ScrollToItem(index, offset int) {
	g.calls++
	g.cursor = GutterCursor{Index: index, Offset: offset + g.drift}
	if g.sync != nil {
		g.sync.GutterScrolled(g.cursor)
	}
}

type echoEditor struct {
	sync   *Synchronizer
	offset int
	calls  int
	drift  int
}

func (e *echoEditor) ScrollTo(offset int) {
	e.calls++
	e.offset = offset + e.drift
	if e.sync != nil {
		e.sync.EditorScrolled(e.offset)
	}
}

func newEchoPair(rows RowModel) (*Synchronizer, *echoGutter, *echoEditor) {
	g := &echoGutter{}
	e := &echoEditor{}
	s := New(rows, g, e)
	g.sync = s
	e.sync = s
	return s, g, e
}

func TestUniformRows_GutterToEditor(t *testing.T) {
	s, _, e := newEchoPair(UniformRows{Height: 20, Lines: 10})

	applied := s.GutterScrolled(GutterCursor{Index: 3, Offset: 5})

	assert.True(t, applied)
	assert.Equal(t, 65, e.offset)
}

func TestUniformRows_EditorToGutter(t *testing.T) {
	s, g, _ := newEchoPair(UniformRows{Height: 20, Lines: 10})

	applied := s.EditorScrolled(65)

	assert.True(t, applied)
	assert.Equal(t, GutterCursor{Index: 3, Offset: 5}, g.cursor)
}

func TestUniformRows_MutualInverse(t *testing.T) {
	rows := UniformRows{Height: 20, Lines: 100}
	for offset := 0; offset < 2000; offset += 7 {
		assert.Equal(t, offset, rows.OffsetOf(rows.CursorAt(offset)))
	}
	for idx := 0; idx < 100; idx += 3 {
		for off := 0; off < 20; off += 4 {
			c := GutterCursor{Index: idx, Offset: off}
			assert.Equal(t, c, rows.CursorAt(rows.OffsetOf(c)))
		}
	}
}

func TestSynchronizer_GutterDrivenDoesNotRefire(t *testing.T) {
	s, g, e := newEchoPair(UniformRows{Height: 20, Lines: 10})
	e.drift = 1 // rounding in the editor would otherwise oscillate

	s.GutterScrolled(GutterCursor{Index: 2, Offset: 0})

	assert.Equal(t, 1, e.calls)
	assert.Equal(t, 0, g.calls, "editor echo must not move the gutter")
	assert.Equal(t, 41, e.offset)
	stats := s.Stats()
	assert.Equal(t, 1, stats.GutterDriven)
	assert.Equal(t, 0, stats.EditorDriven)
	assert.Equal(t, 1, stats.Suppressed)
}

func TestSynchronizer_EditorDrivenDoesNotRefire(t *testing.T) {
	s, g, e := newEchoPair(UniformRows{Height: 20, Lines: 10})
	g.drift = 1

	s.EditorScrolled(65)

	assert.Equal(t, 1, g.calls)
	assert.Equal(t, 0, e.calls, "gutter echo must not move the editor")
	assert.Equal(t, GutterCursor{Index: 3, Offset: 6}, g.cursor)
	assert.Equal(t, 1, s.Stats().Suppressed)
}

func TestSynchronizer_SequentialTransitionsStillApply(t *testing.T) {
	s, g, e := newEchoPair(UniformRows{Height: 20, Lines: 10})

	require.True(t, s.GutterScrolled(GutterCursor{Index: 1}))
	require.True(t, s.EditorScrolled(100))

	assert.Equal(t, 20, e.offset)
	assert.Equal(t, GutterCursor{Index: 5}, g.cursor)
}

func TestSynchronizer_DegenerateMetrics(t *testing.T) {
	tests := []struct {
		name string
		rows RowModel
	}{
		{"zero height", UniformRows{Height: 0, Lines: 10}},
		{"no lines", UniformRows{Height: 20, Lines: 0}},
		{"wrapped empty", NewWrappedRows(nil)},
		{"wrapped zero heights", NewWrappedRows([]int{0, 0, 0})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, g, e := newEchoPair(tt.rows)
			assert.NotPanics(t, func() {
				s.EditorScrolled(65)
				s.GutterScrolled(GutterCursor{Index: 3, Offset: 5})
			})
			assert.Equal(t, GutterCursor{}, g.cursor)
			assert.Equal(t, 0, e.offset)
		})
	}
}

func TestSynchronizer_SetModel(t *testing.T) {
	s, g, _ := newEchoPair(UniformRows{Height: 20, Lines: 10})
	s.SetModel(UniformRows{Height: 10, Lines: 10})

	s.EditorScrolled(65)

	assert.Equal(t, GutterCursor{Index: 6, Offset: 5}, g.cursor)
}

func TestWrappedRows(t *testing.T) {
	rows := NewWrappedRows([]int{1, 3, 1, 2})
	assert.Equal(t, 7, rows.Total())
	assert.Equal(t, 4, rows.Lines())

	tests := []struct {
		offset int
		want   GutterCursor
	}{
		{-3, GutterCursor{}},
		{0, GutterCursor{Index: 0}},
		{1, GutterCursor{Index: 1, Offset: 0}},
		{3, GutterCursor{Index: 1, Offset: 2}},
		{4, GutterCursor{Index: 2, Offset: 0}},
		{6, GutterCursor{Index: 3, Offset: 1}},
		{50, GutterCursor{Index: 3, Offset: 1}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, rows.CursorAt(tt.offset), "offset %d", tt.offset)
	}
	for offset := 0; offset < rows.Total(); offset++ {
		assert.Equal(t, offset, rows.OffsetOf(rows.CursorAt(offset)))
	}
	assert.Equal(t, 4, rows.OffsetOf(GutterCursor{Index: 2}))
	assert.Equal(t, 5, rows.OffsetOf(GutterCursor{Index: 99}))
}

func TestWrappedRows_SkipsZeroHeightLines(t *testing.T) {
	rows := NewWrappedRows([]int{2, 0, 0, 2})
	assert.Equal(t, GutterCursor{Index: 3, Offset: 0}, rows.CursorAt(2))
	assert.Equal(t, GutterCursor{Index: 3, Offset: 1}, rows.CursorAt(3))
}

func TestWrappedRows_AlignsWithUniformWhenNoWrap(t *testing.T) {
	heights := []int{20, 20, 20, 20, 20}
	wrapped := NewWrappedRows(heights)
	uniform := UniformRows{Height: 20, Lines: len(heights)}
	for offset := 0; offset < 100; offset++ {
		assert.Equal(t, uniform.CursorAt(offset), wrapped.CursorAt(offset))
	}
}
