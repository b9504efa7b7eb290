package tesseract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"strconv"
	"strings"

	"github.com/adrianliechti/ocr2/pkg/bbox"
	"github.com/adrianliechti/ocr2/pkg/converter"
	"github.com/adrianliechti/ocr2/pkg/document"
	"github.com/adrianliechti/ocr2/pkg/rasterizer"
	"github.com/adrianliechti/ocr2/pkg/text"

	"github.com/otiai10/gosseract/v2"
)

var _ converter.Provider = &Converter{}

// Converter renders every page and runs tesseract on it, yielding one text
// element per recognized paragraph.
type Converter struct {
	rasterizer rasterizer.Provider

	languages []string
	dpi       int
}

func New(r rasterizer.Provider, options ...Option) (*Converter, error) {
	if r == nil {
		return nil, errors.New("missing rasterizer")
	}

	c := &Converter{
		rasterizer: r,

		languages: converter.DefaultLanguages,
		dpi:       300,
	}

	for _, option := range options {
		option(c)
	}

	return c, nil
}

// region is a paragraph box in PDF points, origin bottom left.
type region struct {
	X0, Y0, X1, Y1 float64
}

type record struct {
	PageNo int    `json:"page_no"`
	Box    region `json:"box"`

	Confidence float64 `json:"confidence"`
}

func (c *Converter) Convert(ctx context.Context, file converter.File, options *converter.ConvertOptions) (document.Document, error) {
	languages := options.LanguagesOr(c.languages)

	pages, err := c.rasterizer.Rasterize(ctx, file.Path, &rasterizer.RasterizeOptions{DPI: c.dpi})

	if err != nil {
		return nil, err
	}

	result := &document.List{}

	var texts []string

	for i, page := range pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		content, elements, err := c.recognize(i+1, page, languages)

		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}

		if content != "" {
			texts = append(texts, content)
		}

		result.Elements = append(result.Elements, elements...)
	}

	result.Content = strings.Join(texts, "\n\n")

	return result, nil
}

func (c *Converter) recognize(number int, page image.Image, languages []string) (string, []*document.Element, error) {
	var buf bytes.Buffer

	if err := png.Encode(&buf, page); err != nil {
		return "", nil, err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(languages...); err != nil {
		return "", nil, fmt.Errorf("set languages: %w", err)
	}

	if err := client.SetVariable(gosseract.SettableVariable("user_defined_dpi"), strconv.Itoa(c.dpi)); err != nil {
		return "", nil, fmt.Errorf("set dpi: %w", err)
	}

	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", nil, fmt.Errorf("set image: %w", err)
	}

	content, err := client.Text()

	if err != nil {
		return "", nil, fmt.Errorf("recognize text: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_PARA)

	if err != nil {
		return "", nil, fmt.Errorf("recognize layout: %w", err)
	}

	height := bbox.Points(page.Bounds().Dy(), c.dpi)

	var elements []*document.Element

	for _, b := range boxes {
		value := text.Normalize(b.Word)

		if value == "" {
			continue
		}

		elements = append(elements, &document.Element{
			Kind:  document.KindText,
			Label: "paragraph",
			Text:  value,

			Provenance: []any{
				record{
					PageNo: number,
					Box:    toPoints(b.Box, height, c.dpi),

					Confidence: b.Confidence,
				},
			},
		})
	}

	return text.Normalize(content), elements, nil
}

// toPoints converts a pixel rectangle (origin top left) into PDF points
// (origin bottom left) on a page of the given height in points.
func toPoints(r image.Rectangle, height float64, dpi int) region {
	return region{
		X0: bbox.Points(r.Min.X, dpi),
		Y0: height - bbox.Points(r.Min.Y, dpi),
		X1: bbox.Points(r.Max.X, dpi),
		Y1: height - bbox.Points(r.Max.Y, dpi),
	}
}
