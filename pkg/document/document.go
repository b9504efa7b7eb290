package document

import (
	"context"
	"errors"
	"image"
	"iter"
)

var (
	ErrNoMarkdown = errors.New("element has no markdown representation")
	ErrNoImage    = errors.New("element has no image")
)

// Document is the result of converting a file. Items walks the elements
// depth-first in reading order.
type Document interface {
	Items(ctx context.Context) iter.Seq[*Element]
	Text() string
}

// DictExporter is implemented by documents that can dump themselves as a
// generic map when their structure cannot be walked.
type DictExporter interface {
	ExportDict() (map[string]any, error)
}

type Kind string

const (
	KindText    Kind = "text"
	KindTable   Kind = "table"
	KindPicture Kind = "picture"
)

type Element struct {
	Kind  Kind
	Label string

	Text    string
	Content string
	Caption string

	// Provenance holds placement records of any shape, most relevant first.
	Provenance []any

	// Attributes holds values read directly off the element, such as a bbox.
	Attributes map[string]any

	Markdown func() (string, error)
	Image    func() (image.Image, error)
}

// Attr implements shape.Attributer.
func (e *Element) Attr(name string) (any, bool) {
	if e.Attributes == nil {
		return nil, false
	}

	val, ok := e.Attributes[name]
	return val, ok
}

func (e *Element) ExportMarkdown() (string, error) {
	if e.Markdown == nil {
		return "", ErrNoMarkdown
	}

	return e.Markdown()
}

func (e *Element) RenderImage() (image.Image, error) {
	if e.Image == nil {
		return nil, ErrNoImage
	}

	img, err := e.Image()

	if err != nil {
		return nil, err
	}

	if img == nil {
		return nil, ErrNoImage
	}

	return img, nil
}
