package bbox

import (
	"math"

	"github.com/adrianliechti/ocr2/pkg/shape"
)

// BBox is a rectangle as (left, top, right, bottom).
type BBox [4]float64

func (b BBox) Left() float64   { return b[0] }
func (b BBox) Top() float64    { return b[1] }
func (b BBox) Right() float64  { return b[2] }
func (b BBox) Bottom() float64 { return b[3] }

// Round returns b with every coordinate rounded to the given number of decimals.
func (b BBox) Round(decimals int) BBox {
	var result BBox

	for i, v := range b {
		result[i] = Round(v, decimals)
	}

	return result
}

// Round rounds half away from zero.
func Round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

// KeyGroups are the naming conventions tried on mappings and structs, in order.
var KeyGroups = [][4]string{
	{"left", "top", "right", "bottom"},
	{"l", "t", "r", "b"},
	{"x0", "y0", "x1", "y1"},
}

type reader func(v any) (BBox, bool)

var readers = map[shape.Kind]reader{
	shape.KindSequence: fromSequence,
	shape.KindMapping:  fromMapping,
	shape.KindStruct:   fromStruct,
	shape.KindIterable: fromIterable,
}

// Normalize converts a sequence, mapping, struct or iterable into a BBox.
// It reports false for anything it cannot read as exactly four numbers.
func Normalize(v any) (result BBox, ok bool) {
	defer func() {
		if recover() != nil {
			result, ok = BBox{}, false
		}
	}()

	read, found := readers[shape.Of(v)]

	if !found {
		return BBox{}, false
	}

	return read(v)
}

// Ptr is Normalize returning nil for an absent box.
func Ptr(v any) *BBox {
	b, ok := Normalize(v)

	if !ok {
		return nil
	}

	return &b
}

func fromSequence(v any) (BBox, bool) {
	items, ok := shape.Items(v)

	if !ok || len(items) < 4 {
		return BBox{}, false
	}

	return fromValues(items[:4])
}

func fromMapping(v any) (BBox, bool) {
	for _, group := range KeyGroups {
		var values []any

		for _, key := range group {
			val, ok := shape.Key(v, key)

			if !ok {
				break
			}

			values = append(values, val)
		}

		if len(values) != 4 {
			continue
		}

		if b, ok := fromValues(values); ok {
			return b, true
		}
	}

	return BBox{}, false
}

func fromStruct(v any) (BBox, bool) {
	for _, group := range KeyGroups {
		var coords []float64

		for _, name := range group {
			val, ok := shape.Attr(v, name)

			if !ok {
				continue
			}

			f, ok := shape.Float(val)

			if !ok {
				break
			}

			coords = append(coords, f)
		}

		if len(coords) == 4 {
			return BBox{coords[0], coords[1], coords[2], coords[3]}, true
		}
	}

	return BBox{}, false
}

func fromIterable(v any) (BBox, bool) {
	items := shape.Take(v, 4)

	if len(items) != 4 {
		return BBox{}, false
	}

	return fromValues(items)
}

func fromValues(values []any) (BBox, bool) {
	var result BBox

	for i, v := range values {
		f, ok := shape.Float(v)

		if !ok {
			return BBox{}, false
		}

		result[i] = f
	}

	return result, true
}
