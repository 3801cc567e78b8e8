package metrics

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Measure selects how a line's length is counted for wrap accounting.
type Measure string

const (
	// MeasureRunes counts characters (code points).
	MeasureRunes Measure = "runes"
	// MeasureCells counts terminal display cells, so wide glyphs count twice.
	MeasureCells Measure = "cells"
)

// ParseMeasure validates a configured measure name. Empty means runes.
func ParseMeasure(name string) (Measure, error) {
	switch Measure(name) {
	case "", MeasureRunes:
		return MeasureRunes, nil
	case MeasureCells:
		return MeasureCells, nil
	}
	return MeasureRunes, fmt.Errorf("unknown measure %q", name)
}

// Estimator maps a line to the number of visual rows it occupies under soft wrap.
// It approximates the body width with a fixed character budget; it does not look
// at glyph shapes.
type Estimator struct {
	MaxCharsPerLine int
	Measure         Measure
	// TabWidth is the number of cells a tab is drawn as. Zero means one cell.
	TabWidth int
}

// New returns an estimator wrapping at maxChars, counted with m.
func New(maxChars int, m Measure) Estimator {
	return Estimator{MaxCharsPerLine: maxChars, Measure: m}
}

// WithTabWidth returns a copy of e drawing tabs n cells wide.
func (e Estimator) WithTabWidth(n int) Estimator {
	e.TabWidth = n
	return e
}

// Length returns the length of line under the estimator's measure.
func (e Estimator) Length(line string) int {
	if e.Measure == MeasureCells {
		return e.DisplayWidth(line)
	}
	return utf8.RuneCountInString(line)
}

// Advance returns the cells r occupies on screen. A tab never exceeds the wrap
// width, so a row always has room for it.
func (e Estimator) Advance(r rune) int {
	if r == '\t' {
		w := max(e.TabWidth, 1)
		if e.MaxCharsPerLine > 0 {
			w = min(w, e.MaxCharsPerLine)
		}
		return w
	}
	return runewidth.RuneWidth(r)
}

// DisplayWidth returns the cells line occupies on screen.
func (e Estimator) DisplayWidth(line string) int {
	n := 0
	for _, r := range line {
		n += e.Advance(r)
	}
	return n
}

// ExpandTabs replaces every tab in s with the spaces it is drawn as.
func (e Estimator) ExpandTabs(s string) string {
	if !strings.ContainsRune(s, '\t') {
		return s
	}
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", e.Advance('\t')))
}

// ColumnAt returns the rune index in row under display cell x. A click inside a
// wide glyph or a tab lands before it.
func (e Estimator) ColumnAt(row string, x int) int {
	col, cells := 0, 0
	for _, r := range row {
		w := e.Advance(r)
		if x < cells+w {
			return col
		}
		cells += w
		col++
	}
	return col
}

// Estimate returns the row count of line, never less than one.
// Empty lines take one row; otherwise 1 + (length-1)/MaxCharsPerLine.
func (e Estimator) Estimate(line string) int {
	n := e.Length(line)
	if n == 0 || e.MaxCharsPerLine <= 0 {
		return 1
	}
	return 1 + (n-1)/e.MaxCharsPerLine
}

// WrappedLineCount returns the continuation rows a line adds beyond its first.
func (e Estimator) WrappedLineCount(line string) int {
	return e.Estimate(line) - 1
}

// Rows returns the number of rows Wrap produces for line. For text of narrow
// characters without tabs it equals Estimate. Wide glyphs and tabs take more
// cells than characters, and a wide glyph is never split across rows, so the
// rows on screen can outnumber the length formula.
func (e Estimator) Rows(line string) int {
	return len(e.Wrap(line))
}

// RowHeights returns base × Rows(line) for every line.
func (e Estimator) RowHeights(lines []string, base int) []int {
	heights := make([]int, len(lines))
	for i, line := range lines {
		heights[i] = base * e.Rows(line)
	}
	return heights
}

// Wrap splits line into visual rows of at most MaxCharsPerLine display cells,
// whatever the measure, so every row fits the body it is drawn in.
func (e Estimator) Wrap(line string) []string {
	if e.MaxCharsPerLine <= 0 || e.DisplayWidth(line) <= e.MaxCharsPerLine {
		return []string{line}
	}
	rows := make([]string, 0, e.Estimate(line))
	start, width := 0, 0
	for i, r := range line {
		w := e.Advance(r)
		if width+w > e.MaxCharsPerLine && width > 0 {
			rows = append(rows, line[start:i])
			start, width = i, 0
		}
		width += w
	}
	rows = append(rows, line[start:])
	return rows
}
