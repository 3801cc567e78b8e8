package fs

import (
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"notepad-tui/internal/fileio"
)

// Entry is one row of a directory listing.
type Entry struct {
	Name   string
	Path   string
	IsDir  bool
	Size   int64
	Parent bool // the ".." row
}

// DisplayName returns the name decorated for the picker.
func (e Entry) DisplayName() string {
	switch {
	case e.Parent:
		return "📁 .."
	case e.IsDir:
		return "📁 " + e.Name + "/"
	default:
		return "📄 " + e.Name
	}
}

// Listing is a flat view of one directory: parent row, sub-directories, then files.
type Listing struct {
	fs         afero.Fs
	Dir        string
	Entries    []Entry
	Selected   int
	ShowHidden bool
	TextOnly   bool
}

// NewListing reads dir from fs.
func NewListing(fs afero.Fs, dir string, showHidden, textOnly bool) (*Listing, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	l := &Listing{fs: fs, ShowHidden: showHidden, TextOnly: textOnly}
	if err := l.Load(dir); err != nil {
		return nil, err
	}
	return l, nil
}

// Load replaces the listing with the contents of dir and selects the first row.
func (l *Listing) Load(dir string) error {
	entries, err := l.read(dir)
	if err != nil {
		return err
	}
	l.Dir = filepath.Clean(dir)
	l.Entries = entries
	l.Selected = 0
	return nil
}

// Refresh re-reads the current directory and keeps the selection on the same
// path when it still exists.
func (l *Listing) Refresh() error {
	var keep string
	if sel := l.SelectedEntry(); sel != nil {
		keep = sel.Path
	}
	entries, err := l.read(l.Dir)
	if err != nil {
		return err
	}
	l.Entries = entries
	l.SetSelected(l.Selected)
	for i, e := range entries {
		if e.Path == keep {
			l.Selected = i
			break
		}
	}
	return nil
}

func (l *Listing) read(dir string) ([]Entry, error) {
	infos, err := afero.ReadDir(l.fs, dir)
	if err != nil {
		return nil, err
	}
	var entries []Entry
	if parent := filepath.Dir(filepath.Clean(dir)); parent != filepath.Clean(dir) {
		entries = append(entries, Entry{Name: "..", Path: parent, IsDir: true, Parent: true})
	}
	var dirs, files []Entry
	for _, info := range infos {
		name := info.Name()
		if !l.ShowHidden && strings.HasPrefix(name, ".") {
			continue
		}
		path := filepath.Join(dir, name)
		if info.IsDir() {
			dirs = append(dirs, Entry{Name: name, Path: path, IsDir: true})
			continue
		}
		if l.TextOnly && !l.looksLikeText(path) {
			continue
		}
		files = append(files, Entry{Name: name, Path: path, Size: info.Size()})
	}
	byName := func(list []Entry) {
		sort.Slice(list, func(i, j int) bool {
			return strings.ToLower(list[i].Name) < strings.ToLower(list[j].Name)
		})
	}
	byName(dirs)
	byName(files)
	entries = append(entries, dirs...)
	return append(entries, files...), nil
}

func (l *Listing) looksLikeText(path string) bool {
	f, err := l.fs.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return false
	}
	return fileio.IsTextPlain(path, head[:n])
}

// SetSelected clamps and sets the selected row.
func (l *Listing) SetSelected(index int) {
	switch {
	case len(l.Entries) == 0 || index < 0:
		l.Selected = 0
	case index >= len(l.Entries):
		l.Selected = len(l.Entries) - 1
	default:
		l.Selected = index
	}
}

// Move shifts the selection by delta rows.
func (l *Listing) Move(delta int) {
	l.SetSelected(l.Selected + delta)
}

// SelectedEntry returns the selected row or nil for an empty listing.
func (l *Listing) SelectedEntry() *Entry {
	if l.Selected < 0 || l.Selected >= len(l.Entries) {
		return nil
	}
	return &l.Entries[l.Selected]
}
