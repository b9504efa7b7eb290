package multi

import (
	"context"
	"errors"
	"log/slog"

	"github.com/adrianliechti/ocr2/pkg/converter"
	"github.com/adrianliechti/ocr2/pkg/document"
)

var _ converter.Provider = &Converter{}

// Converter tries its providers in order and returns the first result.
type Converter struct {
	providers []converter.Provider
}

func New(provider ...converter.Provider) *Converter {
	return &Converter{
		providers: provider,
	}
}

func (c *Converter) Convert(ctx context.Context, file converter.File, options *converter.ConvertOptions) (document.Document, error) {
	var errs []error

	for _, p := range c.providers {
		result, err := p.Convert(ctx, file, options)

		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}

			if !errors.Is(err, converter.ErrUnsupported) {
				slog.WarnContext(ctx, "converter failed", "error", err)
				errs = append(errs, err)
			}

			continue
		}

		return result, nil
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return nil, converter.ErrUnsupported
}
