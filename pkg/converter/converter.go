package converter

import (
	"context"
	"errors"

	"github.com/adrianliechti/ocr2/pkg/document"
)

type Provider interface {
	Convert(ctx context.Context, file File, options *ConvertOptions) (document.Document, error)
}

var (
	ErrUnsupported = errors.New("unsupported type")
)

// File is a document stored on local disk.
type File struct {
	Name string
	Path string

	ContentType string
}

type ConvertOptions struct {
	// Languages overrides the OCR languages of the converter.
	Languages []string
}

// DefaultLanguages are used for OCR when nothing else is configured.
var DefaultLanguages = []string{"rus", "eng"}

func (o *ConvertOptions) LanguagesOr(fallback []string) []string {
	if o != nil && len(o.Languages) > 0 {
		return o.Languages
	}

	if len(fallback) > 0 {
		return fallback
	}

	return DefaultLanguages
}
