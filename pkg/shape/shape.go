package shape

import (
	"encoding/json"
	"iter"
	"math"
	"reflect"
	"strings"

	"github.com/spf13/cast"
)

// Kind is the shape a loosely typed value was classified as.
type Kind int

const (
	KindNone Kind = iota
	KindSequence
	KindMapping
	KindStruct
	KindIterable
)

func (k Kind) String() string {
	switch k {
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	case KindStruct:
		return "struct"
	case KindIterable:
		return "iterable"
	}

	return "none"
}

// Attributer is implemented by values exposing named attributes without
// being a Go struct.
type Attributer interface {
	Attr(name string) (any, bool)
}

// Iterable is implemented by values that can only be walked in order.
type Iterable interface {
	Values() iter.Seq[any]
}

// Of classifies v. Text and bytes are never sequences nor iterables.
func Of(v any) Kind {
	if v == nil {
		return KindNone
	}

	switch v.(type) {
	case string, []byte, json.RawMessage:
		return KindNone
	case Attributer:
		return KindStruct
	case Iterable, iter.Seq[any], iter.Seq[float64]:
		return KindIterable
	}

	rv := indirect(reflect.ValueOf(v))

	if !rv.IsValid() {
		return KindNone
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return KindSequence

	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			return KindMapping
		}

	case reflect.Struct:
		return KindStruct
	}

	return KindNone
}

// Items returns the elements of a sequence.
func Items(v any) ([]any, bool) {
	if Of(v) != KindSequence {
		return nil, false
	}

	rv := indirect(reflect.ValueOf(v))

	result := make([]any, rv.Len())

	for i := range result {
		result[i] = rv.Index(i).Interface()
	}

	return result, true
}

// Take collects up to n values from an iterable.
func Take(v any, n int) []any {
	var seq iter.Seq[any]

	switch it := v.(type) {
	case Iterable:
		seq = it.Values()

	case iter.Seq[any]:
		seq = it

	case iter.Seq[float64]:
		seq = func(yield func(any) bool) {
			for f := range it {
				if !yield(f) {
					return
				}
			}
		}

	default:
		return nil
	}

	if seq == nil {
		return nil
	}

	result := make([]any, 0, n)

	for item := range seq {
		if len(result) >= n {
			break
		}

		result = append(result, item)
	}

	return result
}

// Key looks up a key of a string-keyed mapping.
func Key(v any, name string) (any, bool) {
	if m, ok := v.(map[string]any); ok {
		val, ok := m[name]
		return val, ok
	}

	if Of(v) != KindMapping {
		return nil, false
	}

	rv := indirect(reflect.ValueOf(v))
	val := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()))

	if !val.IsValid() {
		return nil, false
	}

	return val.Interface(), true
}

// Attr looks up a named attribute of a struct-shaped value. Struct fields
// match on their json tag first and on a case-insensitive field name second.
func Attr(v any, name string) (any, bool) {
	if a, ok := v.(Attributer); ok {
		return a.Attr(name)
	}

	rv := indirect(reflect.ValueOf(v))

	if !rv.IsValid() || rv.Kind() != reflect.Struct {
		return nil, false
	}

	t := rv.Type()

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)

		if !f.IsExported() {
			continue
		}

		if tag, _, _ := strings.Cut(f.Tag.Get("json"), ","); tag == name {
			return fieldValue(rv.Field(i))
		}
	}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)

		if !f.IsExported() {
			continue
		}

		if tag, _, _ := strings.Cut(f.Tag.Get("json"), ","); tag != "" && tag != "-" {
			continue
		}

		if strings.EqualFold(f.Name, name) || strings.EqualFold(f.Name, strings.ReplaceAll(name, "_", "")) {
			return fieldValue(rv.Field(i))
		}
	}

	return nil, false
}

// Field looks up name on a mapping or a struct-shaped value.
func Field(v any, name string) (any, bool) {
	switch Of(v) {
	case KindMapping:
		return Key(v, name)
	case KindStruct:
		return Attr(v, name)
	}

	return nil, false
}

// First returns the first of names that is present and non-nil.
func First(v any, names ...string) any {
	for _, name := range names {
		if val, ok := Field(v, name); ok && !IsNil(val) {
			return val
		}
	}

	return nil
}

// Float coerces numbers and numeric strings. Nil, empty strings and
// non-finite values fail.
func Float(v any) (float64, bool) {
	if IsNil(v) {
		return 0, false
	}

	switch val := v.(type) {
	case string:
		if strings.TrimSpace(val) == "" {
			return 0, false
		}
	case json.Number:
		f, err := val.Float64()
		return f, err == nil && isFinite(f)
	}

	rv := reflect.ValueOf(v)

	if rv.Kind() == reflect.Pointer {
		return Float(rv.Elem().Interface())
	}

	f, err := cast.ToFloat64E(v)

	if err != nil || !isFinite(f) {
		return 0, false
	}

	return f, true
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Int coerces v to an integer, truncating floats.
func Int(v any) (int, bool) {
	f, ok := Float(v)

	if !ok {
		return 0, false
	}

	return int(f), true
}

// IsNil reports whether v is nil or a nil pointer, map, slice or func.
func IsNil(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	}

	return false
}

func fieldValue(v reflect.Value) (any, bool) {
	if !v.CanInterface() {
		return nil, false
	}

	return v.Interface(), true
}

func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}

		v = v.Elem()
	}

	return v
}
