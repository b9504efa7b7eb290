package extract

import (
	"github.com/adrianliechti/ocr2/pkg/bbox"
	"github.com/adrianliechti/ocr2/pkg/document"
	"github.com/adrianliechti/ocr2/pkg/shape"
)

var (
	pageFields = []string{"page_no", "page"}
	bboxFields = []string{"bbox", "bounding_box", "box"}
)

// Placement finds the page number and bounding box of an element. The first
// provenance record yielding either wins; element attributes are only
// consulted when no record does.
func Placement(e *document.Element) (*int, *bbox.BBox) {
	if e == nil {
		return nil, nil
	}

	for _, record := range e.Provenance {
		page := pageOf(record)
		box := bbox.Ptr(shape.First(record, bboxFields...))

		if page != nil || box != nil {
			return page, box
		}
	}

	for _, name := range bboxFields {
		val, ok := e.Attr(name)

		if !ok {
			continue
		}

		if box := bbox.Ptr(val); box != nil {
			return nil, box
		}
	}

	return nil, nil
}

func pageOf(v any) *int {
	val := shape.First(v, pageFields...)

	if val == nil {
		return nil
	}

	page, ok := shape.Int(val)

	if !ok {
		return nil
	}

	return &page
}
