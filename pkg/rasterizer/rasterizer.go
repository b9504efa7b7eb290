package rasterizer

import (
	"context"
	"errors"
	"image"
)

const DefaultDPI = 150

type Provider interface {
	Rasterize(ctx context.Context, path string, options *RasterizeOptions) ([]image.Image, error)
}

var (
	ErrNoPages = errors.New("no pages rendered")
)

type RasterizeOptions struct {
	DPI int
}

func (o *RasterizeOptions) Resolution() int {
	if o == nil || o.DPI <= 0 {
		return DefaultDPI
	}

	return o.DPI
}
