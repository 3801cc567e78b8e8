package document

import (
	"strings"
	"unicode/utf8"
)

// Pos is a cursor position: zero-based line and rune column.
type Pos struct {
	Line int
	Col  int
}

// Buffer holds the text of the single open document together with an editing cursor.
// Lines are the source of truth; the joined text and the string split are cached
// and dropped on every mutation.
type Buffer struct {
	lines   [][]rune
	cursor  Pos
	version uint64

	text      string
	textValid bool
	split     []string
}

// NewBuffer returns an empty document (one empty line).
func NewBuffer() *Buffer {
	return &Buffer{lines: [][]rune{{}}}
}

// NewBufferFromString returns a document holding text.
func NewBufferFromString(text string) *Buffer {
	b := NewBuffer()
	b.SetText(text)
	return b
}

// SplitLines splits s on line feeds. The result always has count('\n')+1 entries,
// so an empty string yields a single empty line. Carriage returns are kept.
func SplitLines(s string) []string {
	return strings.Split(s, "\n")
}

// SetText replaces the whole document and moves the cursor to the start.
func (b *Buffer) SetText(text string) {
	parts := SplitLines(text)
	b.lines = make([][]rune, len(parts))
	for i, p := range parts {
		b.lines[i] = []rune(p)
	}
	b.cursor = Pos{}
	b.invalidate()
}

// Clear empties the document.
func (b *Buffer) Clear() {
	b.SetText("")
}

// Text returns the full document.
func (b *Buffer) Text() string {
	if b.textValid {
		return b.text
	}
	var sb strings.Builder
	for i, line := range b.lines {
		if i > 0 {
			sb.WriteRune('\n')
		}
		sb.WriteString(string(line))
	}
	b.text = sb.String()
	b.textValid = true
	return b.text
}

// Lines returns the document split into lines. The slice is shared until the next
// mutation and must not be modified.
func (b *Buffer) Lines() []string {
	if b.split != nil {
		return b.split
	}
	b.split = make([]string, len(b.lines))
	for i, line := range b.lines {
		b.split[i] = string(line)
	}
	return b.split
}

// LineCount returns the number of lines; never less than one.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// LineLength returns the rune length of a line, or 0 when out of range.
func (b *Buffer) LineLength(line int) int {
	if line < 0 || line >= len(b.lines) {
		return 0
	}
	return len(b.lines[line])
}

// Version changes on every mutation.
func (b *Buffer) Version() uint64 {
	return b.version
}

// Cursor returns the editing cursor.
func (b *Buffer) Cursor() Pos {
	return b.cursor
}

// Empty reports whether the document has no content.
func (b *Buffer) Empty() bool {
	return len(b.lines) == 1 && len(b.lines[0]) == 0
}

func (b *Buffer) invalidate() {
	b.version++
	b.textValid = false
	b.text = ""
	b.split = nil
}

func (b *Buffer) normalizeCursor() {
	if b.cursor.Line < 0 {
		b.cursor.Line = 0
	}
	if b.cursor.Line >= len(b.lines) {
		b.cursor.Line = len(b.lines) - 1
	}
	if b.cursor.Col < 0 {
		b.cursor.Col = 0
	}
	if n := len(b.lines[b.cursor.Line]); b.cursor.Col > n {
		b.cursor.Col = n
	}
}

// MoveTo places the cursor, clamping to the document.
func (b *Buffer) MoveTo(line, col int) {
	b.cursor = Pos{Line: line, Col: col}
	b.normalizeCursor()
}

func (b *Buffer) MoveLeft() {
	if b.cursor.Col > 0 {
		b.cursor.Col--
		return
	}
	if b.cursor.Line > 0 {
		b.cursor.Line--
		b.cursor.Col = len(b.lines[b.cursor.Line])
	}
}

func (b *Buffer) MoveRight() {
	if b.cursor.Col < len(b.lines[b.cursor.Line]) {
		b.cursor.Col++
		return
	}
	if b.cursor.Line < len(b.lines)-1 {
		b.cursor.Line++
		b.cursor.Col = 0
	}
}

func (b *Buffer) MoveUp() {
	b.MoveTo(b.cursor.Line-1, b.cursor.Col)
}

func (b *Buffer) MoveDown() {
	b.MoveTo(b.cursor.Line+1, b.cursor.Col)
}

func (b *Buffer) MoveHome() {
	b.cursor.Col = 0
}

func (b *Buffer) MoveEnd() {
	b.cursor.Col = len(b.lines[b.cursor.Line])
}

// InsertRune inserts r at the cursor; '\n' splits the current line.
func (b *Buffer) InsertRune(r rune) {
	defer b.invalidate()
	line := b.lines[b.cursor.Line]
	if r == '\n' {
		before := append([]rune{}, line[:b.cursor.Col]...)
		after := append([]rune{}, line[b.cursor.Col:]...)
		b.lines[b.cursor.Line] = before
		next := b.cursor.Line + 1
		b.lines = append(b.lines, nil)
		copy(b.lines[next+1:], b.lines[next:])
		b.lines[next] = after
		b.cursor = Pos{Line: next}
		return
	}
	updated := make([]rune, 0, len(line)+1)
	updated = append(updated, line[:b.cursor.Col]...)
	updated = append(updated, r)
	updated = append(updated, line[b.cursor.Col:]...)
	b.lines[b.cursor.Line] = updated
	b.cursor.Col++
}

// InsertString inserts s at the cursor, skipping invalid UTF-8 bytes.
func (b *Buffer) InsertString(s string) {
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		s = s[size:]
		if r == utf8.RuneError && size == 1 {
			continue
		}
		b.InsertRune(r)
	}
}

// DeleteBackward removes the rune before the cursor, joining lines at column 0.
// It returns the removed text.
func (b *Buffer) DeleteBackward() string {
	if b.cursor.Col > 0 {
		line := b.lines[b.cursor.Line]
		removed := string(line[b.cursor.Col-1])
		updated := append(append([]rune{}, line[:b.cursor.Col-1]...), line[b.cursor.Col:]...)
		b.lines[b.cursor.Line] = updated
		b.cursor.Col--
		b.invalidate()
		return removed
	}
	if b.cursor.Line == 0 {
		return ""
	}
	prev := b.lines[b.cursor.Line-1]
	col := len(prev)
	b.lines[b.cursor.Line-1] = append(append([]rune{}, prev...), b.lines[b.cursor.Line]...)
	b.lines = append(b.lines[:b.cursor.Line], b.lines[b.cursor.Line+1:]...)
	b.cursor = Pos{Line: b.cursor.Line - 1, Col: col}
	b.invalidate()
	return "\n"
}

// DeleteForward removes the rune under the cursor, joining the next line at line end.
func (b *Buffer) DeleteForward() string {
	line := b.lines[b.cursor.Line]
	if b.cursor.Col < len(line) {
		removed := string(line[b.cursor.Col])
		updated := append(append([]rune{}, line[:b.cursor.Col]...), line[b.cursor.Col+1:]...)
		b.lines[b.cursor.Line] = updated
		b.invalidate()
		return removed
	}
	if b.cursor.Line >= len(b.lines)-1 {
		return ""
	}
	b.lines[b.cursor.Line] = append(append([]rune{}, line...), b.lines[b.cursor.Line+1]...)
	b.lines = append(b.lines[:b.cursor.Line+1], b.lines[b.cursor.Line+2:]...)
	b.invalidate()
	return "\n"
}
