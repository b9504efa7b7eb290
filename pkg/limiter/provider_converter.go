package limiter

import (
	"context"

	"github.com/adrianliechti/ocr2/pkg/converter"
	"github.com/adrianliechti/ocr2/pkg/document"

	"golang.org/x/time/rate"
)

type Converter interface {
	Limiter
	converter.Provider
}

type limitedConverter struct {
	limiter  *rate.Limiter
	provider converter.Provider
}

func NewConverter(l *rate.Limiter, p converter.Provider) Converter {
	return &limitedConverter{
		limiter:  l,
		provider: p,
	}
}

func (p *limitedConverter) limiterSetup() {
}

func (p *limitedConverter) Convert(ctx context.Context, file converter.File, options *converter.ConvertOptions) (document.Document, error) {
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	return p.provider.Convert(ctx, file, options)
}
