package extract

import (
	"github.com/adrianliechti/ocr2/pkg/bbox"
)

const (
	TypeTable = "table"
	TypeImage = "image"
	TypeText  = "text"
)

// BBoxDecimals is the precision of boxes placed into objects.
const BBoxDecimals = 1

// Object is one extracted element in document order.
type Object struct {
	Type string `json:"type"`

	Page *int       `json:"page"`
	BBox *bbox.BBox `json:"bbox"`

	Text string `json:"text"`

	ImageBase64 string `json:"image_base64,omitempty"`
}

func roundBox(b *bbox.BBox) *bbox.BBox {
	if b == nil {
		return nil
	}

	r := b.Round(BBoxDecimals)
	return &r
}
