package extract

import (
	"bytes"
	"context"
	"encoding/base64"
	"image/png"
	"log/slog"

	"github.com/adrianliechti/ocr2/pkg/bbox"
	"github.com/adrianliechti/ocr2/pkg/document"
	"github.com/adrianliechti/ocr2/pkg/shape"
)

// Objects walks doc in traversal order and returns one object per element.
// If the walk yields nothing, the document's dictionary export is used.
func Objects(ctx context.Context, doc document.Document) []Object {
	objects := make([]Object, 0)

	for e := range doc.Items(ctx) {
		if e == nil {
			continue
		}

		objects = append(objects, fromElement(e))
	}

	if len(objects) > 0 {
		return objects
	}

	if d, ok := doc.(document.DictExporter); ok {
		data, err := d.ExportDict()

		if err != nil {
			slog.DebugContext(ctx, "dictionary export failed", "error", err)
			return objects
		}

		objects = append(objects, FromDict(data)...)
	}

	return objects
}

func fromElement(e *document.Element) Object {
	page, box := Placement(e)

	o := Object{
		Page: page,
		BBox: roundBox(box),
	}

	switch e.Kind {
	case document.KindTable:
		o.Type = TypeTable

		if text, err := e.ExportMarkdown(); err == nil {
			o.Text = text
		} else {
			slog.Debug("table markdown export failed", "error", err)
		}

	case document.KindPicture:
		o.Type = TypeImage
		o.Text = e.Caption

		if data, err := PictureBase64(e); err == nil {
			o.ImageBase64 = data
		} else {
			slog.Debug("picture render failed", "error", err)
		}

	default:
		o.Type = e.Label

		if o.Type == "" {
			o.Type = TypeText
		}

		o.Text = e.Text

		if o.Text == "" {
			o.Text = e.Content
		}
	}

	return o
}

// PictureBase64 renders the element's image as a base64 encoded PNG.
func PictureBase64(e *document.Element) (data string, err error) {
	defer func() {
		if r := recover(); r != nil {
			data, err = "", document.ErrNoImage
		}
	}()

	img, err := e.RenderImage()

	if err != nil {
		return "", err
	}

	var buf bytes.Buffer

	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// FromDict maps the "blocks" or "elements" list of a generic document dump.
func FromDict(data map[string]any) []Object {
	var objects []Object

	blocks, _ := shape.Items(firstList(data, "blocks", "elements"))

	for _, block := range blocks {
		if shape.Of(block) != shape.KindMapping {
			continue
		}

		o := Object{
			Type: stringOf(shape.First(block, "category", "type")),
			Page: pageOf(block),
			BBox: roundBox(bbox.Ptr(shape.First(block, "bbox"))),
			Text: stringOf(shape.First(block, "text")),
		}

		if o.Type == "" {
			o.Type = "unknown"
		}

		objects = append(objects, o)
	}

	return objects
}

func firstList(data map[string]any, keys ...string) any {
	for _, key := range keys {
		val, ok := data[key]

		if !ok || shape.Of(val) != shape.KindSequence {
			continue
		}

		if items, _ := shape.Items(val); len(items) > 0 {
			return val
		}
	}

	return nil
}

func stringOf(v any) string {
	if s, ok := v.(string); ok {
		return s
	}

	return ""
}
