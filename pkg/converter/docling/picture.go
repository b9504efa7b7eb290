package docling

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"math"
	"net/url"
	"strings"

	_ "image/jpeg"
	_ "image/png"

	"github.com/adrianliechti/ocr2/pkg/bbox"
	"github.com/adrianliechti/ocr2/pkg/document"
	"github.com/adrianliechti/ocr2/pkg/shape"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// pictureImage returns the embedded picture, or crops it out of the
// embedded page image when docling only kept page renderings.
func (d *Document) pictureImage(node map[string]any) (image.Image, error) {
	if img, err := decodeImageRef(node["image"]); err == nil {
		return img, nil
	}

	for _, p := range provenance(node) {
		number, ok := shape.Int(shape.First(p, "page_no", "page"))

		if !ok {
			continue
		}

		box, ok := bbox.Normalize(shape.First(p, "bbox", "bounding_box", "box"))

		if !ok {
			continue
		}

		page, ok := d.page(number)

		if !ok {
			continue
		}

		pageImage, err := decodeImageRef(page["image"])

		if err != nil {
			continue
		}

		return cropPage(pageImage, page, box, originOf(shape.First(p, "bbox", "bounding_box", "box")))
	}

	return nil, document.ErrNoImage
}

func provenance(node map[string]any) []any {
	items, _ := shape.Items(node["prov"])
	return items
}

// cropPage cuts a point-space box out of a page rendering of arbitrary scale.
func cropPage(img image.Image, page map[string]any, box bbox.BBox, bottomLeft bool) (image.Image, error) {
	size := shape.First(page, "size")

	width, ok1 := shape.Float(shape.First(size, "width"))
	height, ok2 := shape.Float(shape.First(size, "height"))

	if !ok1 || !ok2 || width <= 0 || height <= 0 {
		return nil, errors.New("page has no size")
	}

	bounds := img.Bounds()

	sx := float64(bounds.Dx()) / width
	sy := float64(bounds.Dy()) / height

	top, bottom := box.Top(), box.Bottom()

	if bottomLeft {
		top, bottom = height-box.Top(), height-box.Bottom()
	}

	y0, y1 := math.Min(top, bottom), math.Max(top, bottom)
	x0, x1 := math.Min(box.Left(), box.Right()), math.Max(box.Left(), box.Right())

	rect := image.Rect(
		bounds.Min.X+int(math.Floor(x0*sx)),
		bounds.Min.Y+int(math.Floor(y0*sy)),
		bounds.Min.X+int(math.Ceil(x1*sx)),
		bounds.Min.Y+int(math.Ceil(y1*sy)),
	).Intersect(bounds)

	if rect.Empty() {
		return nil, errors.New("picture outside page")
	}

	dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Copy(dst, image.Point{}, img, rect, draw.Src, nil)

	return dst, nil
}

func originOf(v any) bool {
	origin, _ := shape.First(v, "coord_origin").(string)
	return !strings.EqualFold(origin, "TOPLEFT")
}

// decodeImageRef decodes a docling ImageRef whose uri is a data URL.
func decodeImageRef(v any) (image.Image, error) {
	uri, _ := shape.First(v, "uri").(string)

	if uri == "" {
		return nil, document.ErrNoImage
	}

	data, err := decodeDataURL(uri)

	if err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	return img, err
}

func decodeDataURL(uri string) ([]byte, error) {
	if !strings.HasPrefix(uri, "data:") {
		return nil, errors.New("unsupported image uri")
	}

	meta, payload, ok := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")

	if !ok {
		return nil, errors.New("invalid data url")
	}

	if strings.HasSuffix(meta, ";base64") {
		return base64.StdEncoding.DecodeString(payload)
	}

	s, err := url.PathUnescape(payload)

	if err != nil {
		return nil, err
	}

	return []byte(s), nil
}
