package document

import (
	"context"
	"errors"
	"iter"
	"strings"
)

var _ Document = (*List)(nil)
var _ DictExporter = (*List)(nil)

// List is a flat, already ordered document.
type List struct {
	Elements []*Element

	// Content is the whole-document text. When empty, Text joins the
	// element texts.
	Content string

	// Dict is returned by ExportDict.
	Dict map[string]any
}

func (l *List) Items(ctx context.Context) iter.Seq[*Element] {
	return func(yield func(*Element) bool) {
		for _, e := range l.Elements {
			if ctx.Err() != nil {
				return
			}

			if !yield(e) {
				return
			}
		}
	}
}

func (l *List) Text() string {
	if l.Content != "" {
		return l.Content
	}

	var parts []string

	for _, e := range l.Elements {
		text := e.Text

		if text == "" {
			text = e.Content
		}

		if text = strings.TrimSpace(text); text != "" {
			parts = append(parts, text)
		}
	}

	return strings.Join(parts, "\n\n")
}

func (l *List) ExportDict() (map[string]any, error) {
	if l.Dict == nil {
		return nil, errors.New("no dictionary export")
	}

	return l.Dict, nil
}
