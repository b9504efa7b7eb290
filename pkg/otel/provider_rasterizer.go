package otel

import (
	"context"
	"image"

	"github.com/adrianliechti/ocr2/pkg/rasterizer"

	"go.opentelemetry.io/otel"
)

type Rasterizer interface {
	Observable
	rasterizer.Provider
}

type observableRasterizer struct {
	provider string

	rasterizer rasterizer.Provider
}

func NewRasterizer(provider string, p rasterizer.Provider) Rasterizer {
	return &observableRasterizer{
		rasterizer: p,

		provider: provider,
	}
}

func (p *observableRasterizer) otelSetup() {
}

func (p *observableRasterizer) Rasterize(ctx context.Context, path string, options *rasterizer.RasterizeOptions) ([]image.Image, error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "rasterize "+p.provider)
	defer span.End()

	span.SetAttributes(Int("ocr.render.dpi", options.Resolution()))

	result, err := p.rasterizer.Rasterize(ctx, path, options)
	recordError(span, err)

	span.SetAttributes(Int("ocr.render.pages", len(result)))

	return result, err
}
