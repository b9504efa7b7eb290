package native

import (
	"context"
	"errors"
	"fmt"
	"math"
	"path"
	"sort"
	"strings"

	"github.com/adrianliechti/ocr2/pkg/converter"
	"github.com/adrianliechti/ocr2/pkg/document"

	"github.com/ledongthuc/pdf"
)

var _ converter.Provider = &Converter{}

var ErrNoText = errors.New("document has no text layer")

// Converter reads the embedded text layer of a PDF. It does no OCR and
// fails with ErrNoText on scanned documents.
type Converter struct {
	lineSpacing float64
}

func New(options ...Option) (*Converter, error) {
	c := &Converter{
		lineSpacing: 1.6,
	}

	for _, option := range options {
		option(c)
	}

	return c, nil
}

func (c *Converter) Convert(ctx context.Context, file converter.File, options *converter.ConvertOptions) (doc document.Document, err error) {
	if !isSupported(file) {
		return nil, converter.ErrUnsupported
	}

	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("invalid pdf: %v", r)
		}
	}()

	f, reader, err := pdf.Open(file.Path)

	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}

	defer f.Close()

	result := &document.List{}

	for i := 1; i <= reader.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := reader.Page(i)

		if page.V.IsNull() {
			continue
		}

		rows, err := page.GetTextByRow()

		if err != nil {
			continue
		}

		result.Elements = append(result.Elements, c.paragraphs(i, rows)...)
	}

	if len(result.Elements) == 0 {
		return nil, ErrNoText
	}

	return result, nil
}

type line struct {
	text string

	left, right float64
	top, bottom float64

	size float64
}

// paragraphs joins consecutive rows into blocks. Boxes are in PDF points
// with the origin at the bottom left, so top is larger than bottom.
func (c *Converter) paragraphs(page int, rows pdf.Rows) []*document.Element {
	var lines []line

	for _, row := range rows {
		if l, ok := toLine(row); ok {
			lines = append(lines, l)
		}
	}

	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].top > lines[j].top
	})

	var result []*document.Element

	var current *line

	flush := func() {
		if current == nil {
			return
		}

		result = append(result, &document.Element{
			Kind: document.KindText,
			Text: current.text,

			Provenance: []any{
				map[string]any{
					"page":         page,
					"bounding_box": []float64{current.left, current.top, current.right, current.bottom},
				},
			},
		})

		current = nil
	}

	for _, l := range lines {
		if current != nil && current.bottom-l.top <= c.lineSpacing*math.Max(l.size, current.size) {
			current.text += "\n" + l.text
			current.left = math.Min(current.left, l.left)
			current.right = math.Max(current.right, l.right)
			current.bottom = math.Min(current.bottom, l.bottom)
			current.size = math.Max(current.size, l.size)

			continue
		}

		flush()

		l := l
		current = &l
	}

	flush()

	return result
}

func toLine(row *pdf.Row) (line, bool) {
	if row == nil || len(row.Content) == 0 {
		return line{}, false
	}

	var sb strings.Builder

	l := line{
		left:   math.Inf(1),
		right:  math.Inf(-1),
		top:    math.Inf(-1),
		bottom: math.Inf(1),
	}

	for _, t := range row.Content {
		sb.WriteString(t.S)

		l.left = math.Min(l.left, t.X)
		l.right = math.Max(l.right, t.X+t.W)
		l.bottom = math.Min(l.bottom, t.Y)
		l.top = math.Max(l.top, t.Y+t.FontSize)
		l.size = math.Max(l.size, t.FontSize)
	}

	l.text = strings.TrimSpace(sb.String())

	if l.text == "" {
		return line{}, false
	}

	return l, true
}

func isSupported(file converter.File) bool {
	if file.ContentType == "application/pdf" || file.ContentType == "application/octet-stream" {
		return true
	}

	return file.ContentType == "" && (file.Name == "" || strings.EqualFold(path.Ext(file.Name), ".pdf"))
}
