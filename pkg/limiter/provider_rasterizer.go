package limiter

import (
	"context"
	"image"

	"github.com/adrianliechti/ocr2/pkg/rasterizer"

	"golang.org/x/time/rate"
)

type Rasterizer interface {
	Limiter
	rasterizer.Provider
}

type limitedRasterizer struct {
	limiter  *rate.Limiter
	provider rasterizer.Provider
}

func NewRasterizer(l *rate.Limiter, p rasterizer.Provider) Rasterizer {
	return &limitedRasterizer{
		limiter:  l,
		provider: p,
	}
}

func (p *limitedRasterizer) limiterSetup() {
}

func (p *limitedRasterizer) Rasterize(ctx context.Context, path string, options *rasterizer.RasterizeOptions) ([]image.Image, error) {
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	return p.provider.Rasterize(ctx, path, options)
}
