package fileio

import (
	"context"
	"errors"
)

// Status classifies the outcome of one open or save action.
type Status int

const (
	StatusOK Status = iota
	StatusCancelled
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusCancelled:
		return "cancelled"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is what the UI receives after an open or save action.
type Result struct {
	Status Status
	Name   string
	Path   string
	Text   string
	Err    error
}

// OK reports a successful action.
func (r Result) OK() bool {
	return r.Status == StatusOK
}

func classify(err error) Status {
	if errors.Is(err, ErrCancelled) {
		return StatusCancelled
	}
	return StatusFailed
}

// OpenDocument runs the picker and decodes the chosen file as text.
func OpenDocument(ctx context.Context, a Adapter) Result {
	doc, err := a.PickDocument(ctx, []string{MimeTextPlain})
	if err != nil {
		return Result{Status: classify(err), Err: err}
	}
	return Result{Status: StatusOK, Name: doc.Name, Path: doc.Path, Text: DecodeText(doc.Data)}
}

// SaveDocument creates a document named after name and writes text into it.
// One attempt; a failure leaves whatever the creator produced on disk.
func SaveDocument(ctx context.Context, a Adapter, name, text string) Result {
	h, err := a.CreateDocument(ctx, name, MimeTextPlain)
	if err != nil {
		return Result{Status: classify(err), Name: name, Err: err}
	}
	if err := a.Write(ctx, h, []byte(text)); err != nil {
		return Result{Status: StatusFailed, Name: h.Name, Path: h.Path, Err: err}
	}
	return Result{Status: StatusOK, Name: h.Name, Path: h.Path, Text: text}
}
