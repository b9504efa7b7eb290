package pipeline

import (
	"context"
	"errors"

	"github.com/adrianliechti/ocr2/pkg/converter"
	"github.com/adrianliechti/ocr2/pkg/extract"
	"github.com/adrianliechti/ocr2/pkg/overlay"
	"github.com/adrianliechti/ocr2/pkg/rasterizer"
)

type Result struct {
	Filename string `json:"filename"`

	Text string `json:"text"`

	Objects []extract.Object `json:"objects"`

	Pages    []overlay.Page `json:"pages"`
	NumPages int            `json:"num_pages"`
}

// Pipeline turns a PDF on disk into text, objects and page overlays.
type Pipeline struct {
	converter  converter.Provider
	rasterizer rasterizer.Provider

	dpi int
}

func New(c converter.Provider, r rasterizer.Provider, options ...Option) (*Pipeline, error) {
	if c == nil {
		return nil, errors.New("missing converter")
	}

	p := &Pipeline{
		converter:  c,
		rasterizer: r,

		dpi: rasterizer.DefaultDPI,
	}

	for _, option := range options {
		option(p)
	}

	return p, nil
}

// Run converts the file. Only conversion errors are returned; extraction
// and page rendering degrade to empty values.
func (p *Pipeline) Run(ctx context.Context, file converter.File, options *converter.ConvertOptions) (*Result, error) {
	doc, err := p.converter.Convert(ctx, file, options)

	if err != nil {
		return nil, err
	}

	objects := extract.Objects(ctx, doc)
	pages := overlay.Build(ctx, p.rasterizer, file.Path, p.dpi, objects)

	return &Result{
		Filename: file.Name,

		Text: doc.Text(),

		Objects: objects,

		Pages:    pages,
		NumPages: len(pages),
	}, nil
}
