package screens

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
)

// BodyView is the scrolling text area. Content arrives already split into visual
// rows, so one viewport line is one row and the viewport offset is the scroll
// offset shared with the gutter.
type BodyView struct {
	vp       viewport.Model
	rows     int
	onScroll func(int)
}

// NewBodyView returns an empty body. onScroll is called whenever the offset changes.
func NewBodyView(onScroll func(int)) *BodyView {
	vp := viewport.New(0, 0)
	vp.MouseWheelEnabled = false
	return &BodyView{vp: vp, onScroll: onScroll}
}

func (b *BodyView) SetSize(width, height int) {
	b.vp.Width = width
	b.vp.Height = height
	b.ScrollTo(b.vp.YOffset)
}

// SetRows replaces the content. The offset is clamped to the new length.
func (b *BodyView) SetRows(rows []string) {
	before := b.vp.YOffset
	b.rows = len(rows)
	b.vp.SetContent(strings.Join(rows, "\n"))
	b.vp.SetYOffset(before)
	b.notify(before)
}

// ScrollTo implements scrollsync.EditorScroller.
func (b *BodyView) ScrollTo(offset int) {
	before := b.vp.YOffset
	b.vp.SetYOffset(offset)
	b.notify(before)
}

// ScrollBy moves the body by delta rows.
func (b *BodyView) ScrollBy(delta int) {
	b.ScrollTo(b.vp.YOffset + delta)
}

func (b *BodyView) notify(before int) {
	if b.vp.YOffset != before && b.onScroll != nil {
		b.onScroll(b.vp.YOffset)
	}
}

// Offset returns the first visible row.
func (b *BodyView) Offset() int {
	return b.vp.YOffset
}

// Height returns the number of visible rows.
func (b *BodyView) Height() int {
	return b.vp.Height
}

func (b *BodyView) View() string {
	return b.vp.View()
}
