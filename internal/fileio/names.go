package fileio

import (
	"fmt"
	"strings"
	"time"
)

// NameStyle controls how DefaultName renders the timestamp.
type NameStyle string

const (
	// NameLegacy keeps month, day and hour unpadded and pads minute and second,
	// matching names produced by earlier versions of the editor.
	NameLegacy NameStyle = "legacy"
	// NamePadded zero-pads every field so names sort chronologically.
	NamePadded NameStyle = "padded"
)

// ParseNameStyle validates a configured style. Empty means legacy.
func ParseNameStyle(s string) (NameStyle, error) {
	switch NameStyle(s) {
	case "", NameLegacy:
		return NameLegacy, nil
	case NamePadded:
		return NamePadded, nil
	}
	return NameLegacy, fmt.Errorf("unknown filename style %q", s)
}

// DefaultName returns Untitled<Y><M><D><H><mm><ss>.txt for t.
func DefaultName(t time.Time, style NameStyle) string {
	if style == NamePadded {
		return fmt.Sprintf("Untitled%04d%02d%02d%02d%02d%02d.txt",
			t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second())
	}
	return fmt.Sprintf("Untitled%d%d%d%d%02d%02d.txt",
		t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second())
}

// ResolveName returns the trimmed filename, or a generated one when it is blank.
func ResolveName(filename string, now time.Time, style NameStyle) string {
	if name := strings.TrimSpace(filename); name != "" {
		return name
	}
	return DefaultName(now, style)
}
