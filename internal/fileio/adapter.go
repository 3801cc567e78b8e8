package fileio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// MimeTextPlain is the only document type the editor reads and writes.
const MimeTextPlain = "text/plain"

var (
	// ErrCancelled is returned when the user dismisses the picker or the save prompt.
	ErrCancelled = errors.New("cancelled by user")
	// ErrUnsupportedType is returned when a picked file does not match the mime filter.
	ErrUnsupportedType = errors.New("unsupported document type")
	// ErrNoChooser is returned when the adapter has nothing to ask for a location.
	ErrNoChooser = errors.New("no document chooser")
)

// Document is the result of a successful pick.
type Document struct {
	Name string
	Path string
	Data []byte
}

// Handle identifies a document created for writing.
type Handle struct {
	Name string
	Path string
}

// Adapter is the platform document surface: a picker for reading and a creator
// plus writer for saving.
type Adapter interface {
	PickDocument(ctx context.Context, mimeFilter []string) (Document, error)
	CreateDocument(ctx context.Context, suggestedName, mimeType string) (Handle, error)
	Write(ctx context.Context, h Handle, data []byte) error
}

// Chooser asks the user for a location. Implementations return ErrCancelled when
// the user backs out.
type Chooser interface {
	ChooseOpen(ctx context.Context, mimeFilter []string) (string, error)
	ChooseCreate(ctx context.Context, suggestedName, mimeType string) (string, error)
}

// FSAdapter implements Adapter on top of an afero filesystem.
type FSAdapter struct {
	fs      afero.Fs
	chooser Chooser
	maxSize int64
}

// NewFSAdapter returns an adapter reading and writing through fs. maxSize caps the
// bytes read by PickDocument; zero means no cap.
func NewFSAdapter(fs afero.Fs, chooser Chooser, maxSize int64) *FSAdapter {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &FSAdapter{fs: fs, chooser: chooser, maxSize: maxSize}
}

// PickDocument asks the chooser for a file and reads it.
func (a *FSAdapter) PickDocument(ctx context.Context, mimeFilter []string) (Document, error) {
	if a.chooser == nil {
		return Document{}, ErrNoChooser
	}
	path, err := a.chooser.ChooseOpen(ctx, mimeFilter)
	if err != nil {
		return Document{}, err
	}
	return a.ReadDocument(ctx, path, mimeFilter)
}

// ReadDocument reads path directly, bypassing the chooser.
func (a *FSAdapter) ReadDocument(ctx context.Context, path string, mimeFilter []string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	f, err := a.fs.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if a.maxSize > 0 {
		r = io.LimitReader(f, a.maxSize+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, fmt.Errorf("read %s: %w", path, err)
	}
	if a.maxSize > 0 && int64(len(data)) > a.maxSize {
		return Document{}, fmt.Errorf("read %s: larger than %d bytes", path, a.maxSize)
	}
	if !Allowed(mimeFilter, path, data) {
		return Document{}, fmt.Errorf("%s: %w", path, ErrUnsupportedType)
	}
	return Document{Name: filepath.Base(path), Path: path, Data: data}, nil
}

// CreateDocument asks the chooser where to save and creates (or truncates) the file.
func (a *FSAdapter) CreateDocument(ctx context.Context, suggestedName, mimeType string) (Handle, error) {
	if a.chooser == nil {
		return Handle{}, ErrNoChooser
	}
	path, err := a.chooser.ChooseCreate(ctx, suggestedName, mimeType)
	if err != nil {
		return Handle{}, err
	}
	if err := ctx.Err(); err != nil {
		return Handle{}, err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := a.fs.MkdirAll(dir, 0o755); err != nil {
			return Handle{}, fmt.Errorf("create %s: %w", dir, err)
		}
	}
	f, err := a.fs.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return Handle{}, fmt.Errorf("create %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return Handle{}, fmt.Errorf("create %s: %w", path, err)
	}
	return Handle{Name: filepath.Base(path), Path: path}, nil
}

// Write stores data in the document verbatim.
func (a *FSAdapter) Write(ctx context.Context, h Handle, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := a.fs.OpenFile(h.Path, os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("write %s: %w", h.Path, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", h.Path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write %s: %w", h.Path, err)
	}
	return nil
}
