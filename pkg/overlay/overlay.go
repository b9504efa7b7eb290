package overlay

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/png"
	"log/slog"
	"runtime"

	"github.com/adrianliechti/ocr2/pkg/bbox"
	"github.com/adrianliechti/ocr2/pkg/extract"
	"github.com/adrianliechti/ocr2/pkg/rasterizer"

	"golang.org/x/sync/errgroup"
)

// Page is a rendered page and the objects placed on it.
type Page struct {
	Page int `json:"page"`

	ImageBase64 string `json:"image_base64"`

	Width  int `json:"image_width_px"`
	Height int `json:"image_height_px"`

	Elements []Element `json:"elements"`
}

// Element is an extracted object with its box in normalized overlay space.
type Element struct {
	extract.Object

	BBoxNorm *bbox.BBox `json:"bbox_norm"`
}

// Build renders every page of the PDF at path and joins the objects onto
// their pages. Rendering failures yield no pages rather than an error.
func Build(ctx context.Context, r rasterizer.Provider, path string, dpi int, objects []extract.Object) []Page {
	pages := make([]Page, 0)

	if r == nil {
		return pages
	}

	options := &rasterizer.RasterizeOptions{
		DPI: dpi,
	}

	images, err := r.Rasterize(ctx, path, options)

	if err != nil {
		slog.WarnContext(ctx, "page rendering failed", "error", err)
		return pages
	}

	encoded, err := encodeAll(ctx, images)

	if err != nil {
		slog.WarnContext(ctx, "page encoding failed", "error", err)
		return pages
	}

	for i, img := range images {
		number := i + 1

		size := img.Bounds().Size()

		width := bbox.Points(size.X, options.Resolution())
		height := bbox.Points(size.Y, options.Resolution())

		page := Page{
			Page: number,

			ImageBase64: encoded[i],

			Width:  size.X,
			Height: size.Y,

			Elements: make([]Element, 0),
		}

		for _, o := range objects {
			if o.Page == nil || *o.Page != number {
				continue
			}

			page.Elements = append(page.Elements, Place(o, width, height))
		}

		pages = append(pages, page)
	}

	return pages
}

// Place converts the object's point-space box for a page of the given size.
func Place(o extract.Object, width, height float64) Element {
	e := Element{
		Object: o,
	}

	if o.BBox != nil {
		if norm, ok := bbox.Overlay(*o.BBox, width, height); ok {
			e.BBoxNorm = &norm
		}
	}

	return e
}

func encodeAll(ctx context.Context, images []image.Image) ([]string, error) {
	result := make([]string, len(images))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, img := range images {
		g.Go(func() error {
			var buf bytes.Buffer

			if err := png.Encode(&buf, img); err != nil {
				return err
			}

			result[i] = base64.StdEncoding.EncodeToString(buf.Bytes())
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return result, nil
}
