package docling

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"iter"
	"sort"
	"strconv"
	"strings"

	"github.com/adrianliechti/ocr2/pkg/document"
	"github.com/adrianliechti/ocr2/pkg/shape"
)

var (
	_ document.Document     = &Document{}
	_ document.DictExporter = &Document{}
)

// Document is a decoded docling document (json_content). Nodes are kept as
// generic maps since their shape differs between docling versions.
type Document struct {
	data map[string]any
	text string
}

// Parse decodes a docling json_content payload. text is the text export
// returned alongside, if any.
func Parse(data json.RawMessage, text string) (*Document, error) {
	d := &Document{
		data: map[string]any{},
		text: text,
	}

	if len(bytes.TrimSpace(data)) == 0 || bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return d, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any

	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}

	// older docling-serve versions return json_content as an encoded string
	if s, ok := raw.(string); ok {
		return Parse(json.RawMessage(s), text)
	}

	m, ok := raw.(map[string]any)

	if !ok {
		return nil, errors.New("invalid docling document")
	}

	d.data = m

	return d, nil
}

// Items walks the body the way docling's iterate_items does: depth-first,
// groups and picture children skipped, body content layer only.
func (d *Document) Items(ctx context.Context) iter.Seq[*document.Element] {
	return func(yield func(*document.Element) bool) {
		body, ok := d.data["body"].(map[string]any)

		if !ok {
			return
		}

		seen := map[string]bool{}

		var walk func(node map[string]any, collection string, root bool) bool

		walk = func(node map[string]any, collection string, root bool) bool {
			if ctx.Err() != nil {
				return false
			}

			if !inBody(node) {
				return true
			}

			if !root && collection != "groups" {
				if !yield(d.element(node, collection)) {
					return false
				}
			}

			if collection == "pictures" {
				return true
			}

			for _, ref := range refs(node["children"]) {
				if seen[ref] {
					continue
				}

				seen[ref] = true

				child, childCollection, ok := d.resolve(ref)

				if !ok {
					continue
				}

				if !walk(child, childCollection, false) {
					return false
				}
			}

			return true
		}

		walk(body, "body", true)
	}
}

func (d *Document) Text() string {
	if d.text != "" {
		return d.text
	}

	var parts []string

	for e := range d.Items(context.Background()) {
		text := e.Text

		if e.Kind == document.KindTable {
			text, _ = e.ExportMarkdown()
		}

		if text = strings.TrimSpace(text); text != "" {
			parts = append(parts, text)
		}
	}

	return strings.Join(parts, "\n\n")
}

func (d *Document) ExportDict() (map[string]any, error) {
	return d.data, nil
}

func (d *Document) element(node map[string]any, collection string) *document.Element {
	e := &document.Element{
		Kind:  document.KindText,
		Label: stringOf(node["category"]),

		Text:    stringOf(node["text"]),
		Content: stringOf(shape.First(node, "content", "orig")),

		Attributes: node,
	}

	if prov, ok := shape.Items(node["prov"]); ok {
		e.Provenance = prov
	}

	switch collection {
	case "tables":
		e.Kind = document.KindTable
		e.Caption = d.captionText(node)
		e.Markdown = func() (string, error) {
			return tableMarkdown(node)
		}

	case "pictures":
		e.Kind = document.KindPicture
		e.Caption = d.captionText(node)
		e.Image = func() (image.Image, error) {
			return d.pictureImage(node)
		}
	}

	return e
}

// resolve looks up a JSON pointer like "#/texts/3".
func (d *Document) resolve(ref string) (map[string]any, string, bool) {
	parts := strings.Split(strings.TrimPrefix(ref, "#/"), "/")

	if len(parts) == 0 {
		return nil, "", false
	}

	var node any = d.data

	for _, part := range parts {
		switch v := node.(type) {
		case map[string]any:
			node = v[part]

		case []any:
			i, err := strconv.Atoi(part)

			if err != nil || i < 0 || i >= len(v) {
				return nil, "", false
			}

			node = v[i]

		default:
			return nil, "", false
		}
	}

	m, ok := node.(map[string]any)
	return m, parts[0], ok
}

func (d *Document) captionText(node map[string]any) string {
	var captions []string

	for _, ref := range refs(node["captions"]) {
		caption, _, ok := d.resolve(ref)

		if !ok {
			continue
		}

		if text := strings.TrimSpace(stringOf(caption["text"])); text != "" {
			captions = append(captions, text)
		}
	}

	return strings.Join(captions, " ")
}

// page returns the page entry for a page number. Pages are keyed by their
// number as a string.
func (d *Document) page(number int) (map[string]any, bool) {
	pages, ok := d.data["pages"].(map[string]any)

	if !ok {
		return nil, false
	}

	if p, ok := pages[strconv.Itoa(number)].(map[string]any); ok {
		return p, true
	}

	keys := make([]string, 0, len(pages))

	for k := range pages {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	for _, k := range keys {
		p, ok := pages[k].(map[string]any)

		if !ok {
			continue
		}

		if n, ok := shape.Int(shape.First(p, "page_no", "page")); ok && n == number {
			return p, true
		}
	}

	return nil, false
}

func inBody(node map[string]any) bool {
	layer, ok := node["content_layer"].(string)
	return !ok || layer == "" || layer == "body"
}

func refs(v any) []string {
	items, ok := shape.Items(v)

	if !ok {
		return nil
	}

	var result []string

	for _, item := range items {
		switch val := item.(type) {
		case string:
			result = append(result, val)

		case map[string]any:
			if ref, ok := val["$ref"].(string); ok {
				result = append(result, ref)
			} else if ref, ok := val["cref"].(string); ok {
				result = append(result, ref)
			}
		}
	}

	return result
}

func stringOf(v any) string {
	if s, ok := v.(string); ok {
		return s
	}

	return ""
}
