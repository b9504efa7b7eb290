package limiter_test

import (
	"context"
	"image"
	"testing"
	"time"

	"github.com/adrianliechti/ocr2/pkg/converter"
	"github.com/adrianliechti/ocr2/pkg/document"
	"github.com/adrianliechti/ocr2/pkg/limiter"
	"github.com/adrianliechti/ocr2/pkg/rasterizer"

	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

type countingConverter struct {
	calls int
}

func (c *countingConverter) Convert(ctx context.Context, file converter.File, options *converter.ConvertOptions) (document.Document, error) {
	c.calls++
	return &document.List{}, nil
}

type countingRasterizer struct {
	calls int
}

func (c *countingRasterizer) Rasterize(ctx context.Context, path string, options *rasterizer.RasterizeOptions) ([]image.Image, error) {
	c.calls++
	return nil, nil
}

func TestConverterPassesThrough(t *testing.T) {
	p := &countingConverter{}
	c := limiter.NewConverter(rate.NewLimiter(rate.Inf, 1), p)

	for range 3 {
		_, err := c.Convert(context.Background(), converter.File{}, nil)
		require.NoError(t, err)
	}

	require.Equal(t, 3, p.calls)
}

func TestConverterCancelled(t *testing.T) {
	p := &countingConverter{}
	c := limiter.NewConverter(rate.NewLimiter(rate.Every(time.Hour), 1), p)

	_, err := c.Convert(context.Background(), converter.File{}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err = c.Convert(ctx, converter.File{}, nil)
	require.Error(t, err)
	require.Equal(t, 1, p.calls)
}

func TestRasterizerWithoutLimit(t *testing.T) {
	p := &countingRasterizer{}
	r := limiter.NewRasterizer(nil, p)

	_, err := r.Rasterize(context.Background(), "doc.pdf", nil)
	require.NoError(t, err)

	require.Equal(t, 1, p.calls)
}
