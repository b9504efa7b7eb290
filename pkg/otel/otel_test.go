package otel_test

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/adrianliechti/ocr2/pkg/converter"
	"github.com/adrianliechti/ocr2/pkg/document"
	"github.com/adrianliechti/ocr2/pkg/otel"
	"github.com/adrianliechti/ocr2/pkg/rasterizer"

	"github.com/stretchr/testify/require"
)

type staticConverter struct {
	doc document.Document
	err error
}

func (c *staticConverter) Convert(ctx context.Context, file converter.File, options *converter.ConvertOptions) (document.Document, error) {
	return c.doc, c.err
}

type staticRasterizer struct {
	pages []image.Image
}

func (r *staticRasterizer) Rasterize(ctx context.Context, path string, options *rasterizer.RasterizeOptions) ([]image.Image, error) {
	return r.pages, nil
}

func TestConverter(t *testing.T) {
	doc := &document.List{Content: "hello"}

	c := otel.NewConverter("native", "pdf", &staticConverter{doc: doc})

	result, err := c.Convert(context.Background(), converter.File{Name: "a.pdf"}, &converter.ConvertOptions{Languages: []string{"eng"}})
	require.NoError(t, err)
	require.Equal(t, "hello", result.Text())

	c = otel.NewConverter("native", "pdf", &staticConverter{err: errors.New("broken")})

	_, err = c.Convert(context.Background(), converter.File{Name: "a.pdf"}, nil)
	require.EqualError(t, err, "broken")
}

func TestRasterizer(t *testing.T) {
	pages := []image.Image{image.NewGray(image.Rect(0, 0, 10, 10))}

	r := otel.NewRasterizer("poppler", &staticRasterizer{pages: pages})

	result, err := r.Rasterize(context.Background(), "doc.pdf", nil)
	require.NoError(t, err)
	require.Len(t, result, 1)
}

func TestSetupWithoutTelemetry(t *testing.T) {
	shutdown, err := otel.Setup(context.Background(), "ocr2")
	require.NoError(t, err)

	require.NoError(t, shutdown(context.Background()))
}
