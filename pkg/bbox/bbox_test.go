package bbox_test

import (
	"encoding/json"
	"iter"
	"math"
	"testing"

	"github.com/adrianliechti/ocr2/pkg/bbox"

	"github.com/stretchr/testify/require"
)

type ltrb struct {
	L float64 `json:"l"`
	T float64 `json:"t"`
	R float64 `json:"r"`
	B float64 `json:"b"`

	CoordOrigin string `json:"coord_origin"`
}

type named struct {
	Left, Top, Right, Bottom float64
}

type corners struct {
	X0, Y0, X1, Y1 int
}

type partial struct {
	Left float64
	Top  float64
}

type attrs map[string]float64

type object struct {
	values map[string]any
}

func (o object) Attr(name string) (any, bool) {
	v, ok := o.values[name]
	return v, ok
}

type values []float64

func (v values) Values() iter.Seq[any] {
	return func(yield func(any) bool) {
		for _, f := range v {
			if !yield(f) {
				return
			}
		}
	}
}

func TestNormalizeSupportedShapes(t *testing.T) {
	want := bbox.BBox{10, 20, 30, 40}

	seq := iter.Seq[float64](func(yield func(float64) bool) {
		for _, f := range []float64{10, 20, 30, 40, 50} {
			if !yield(f) {
				return
			}
		}
	})

	testCases := []struct {
		name  string
		input any
	}{
		{"float slice", []float64{10, 20, 30, 40}},
		{"any slice", []any{10, "20", 30.0, json.Number("40")}},
		{"longer slice", []any{10, 20, 30, 40, 99}},
		{"array", [4]int{10, 20, 30, 40}},
		{"mapping ltrb words", map[string]any{"left": 10, "top": 20, "right": 30, "bottom": 40}},
		{"mapping ltrb letters", map[string]any{"l": 10.0, "t": 20.0, "r": 30.0, "b": 40.0, "coord_origin": "BOTTOMLEFT"}},
		{"mapping corners", map[string]any{"x0": "10", "y0": "20", "x1": "30", "y1": "40"}},
		{"typed mapping", attrs{"x0": 10, "y0": 20, "x1": 30, "y1": 40}},
		{"struct json tags", ltrb{L: 10, T: 20, R: 30, B: 40, CoordOrigin: "TOPLEFT"}},
		{"struct pointer", &ltrb{L: 10, T: 20, R: 30, B: 40}},
		{"struct field names", named{10, 20, 30, 40}},
		{"struct corners", corners{10, 20, 30, 40}},
		{"attributer", object{values: map[string]any{"l": 10, "t": 20, "r": 30, "b": 40}}},
		{"iterable", values{10, 20, 30, 40}},
		{"iter seq", seq},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := bbox.Normalize(tc.input)

			require.True(t, ok)
			require.Equal(t, want, got)
		})
	}
}

func TestNormalizeMalformed(t *testing.T) {
	testCases := []struct {
		name  string
		input any
	}{
		{"nil", nil},
		{"nil pointer", (*ltrb)(nil)},
		{"string", "10,20,30,40"},
		{"bytes", []byte{1, 2, 3, 4}},
		{"number", 42},
		{"short slice", []float64{1, 2, 3}},
		{"non numeric entry", []any{1, 2, "three", 4}},
		{"nil entry", []any{1, nil, 3, 4}},
		{"nan entry", []any{"NaN", 1, 2, 3}},
		{"infinite entry", []float64{1, 2, math.Inf(1), 4}},
		{"nan key", map[string]any{"l": "nan", "t": 2, "r": 3, "b": 4}},
		{"three of four keys", map[string]any{"left": 1, "top": 2, "right": 3}},
		{"mixed groups", map[string]any{"left": 1, "t": 2, "right": 3, "b": 4}},
		{"non numeric key", map[string]any{"l": 1, "t": 2, "r": "x", "b": 4}},
		{"empty map", map[string]any{}},
		{"int keyed map", map[int]float64{0: 1, 1: 2, 2: 3, 3: 4}},
		{"empty struct", struct{}{}},
		{"partial struct", partial{Left: 1, Top: 2}},
		{"empty attributer", object{}},
		{"short iterable", values{1, 2, 3}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.NotPanics(t, func() {
				_, ok := bbox.Normalize(tc.input)
				require.False(t, ok)
			})
		})
	}
}

func TestNormalizeMappingFallsThroughGroups(t *testing.T) {
	input := map[string]any{
		"left": "n/a", "top": 1, "right": 2, "bottom": 3,
		"x0": 5, "y0": 6, "x1": 7, "y1": 8,
	}

	got, ok := bbox.Normalize(input)

	require.True(t, ok)
	require.Equal(t, bbox.BBox{5, 6, 7, 8}, got)
}

func TestNormalizeStructStopsAtNonNumeric(t *testing.T) {
	input := object{values: map[string]any{
		"left": 1, "top": "bad", "right": 3, "bottom": 4,
		"l": 9, "t": 8, "r": 7, "b": 6,
	}}

	got, ok := bbox.Normalize(input)

	require.True(t, ok)
	require.Equal(t, bbox.BBox{9, 8, 7, 6}, got)
}

func TestPtr(t *testing.T) {
	require.Nil(t, bbox.Ptr(nil))

	b := bbox.Ptr([]float64{1, 2, 3, 4})
	require.NotNil(t, b)
	require.Equal(t, bbox.BBox{1, 2, 3, 4}, *b)
}

func TestRound(t *testing.T) {
	b := bbox.BBox{1.04, 2.06, 3.16, -4.25}

	require.Equal(t, bbox.BBox{1.0, 2.1, 3.2, -4.3}, b.Round(1))
	require.Equal(t, 0.3333, bbox.Round(1.0/3.0, 4))
}
