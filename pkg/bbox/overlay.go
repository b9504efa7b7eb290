package bbox

// Overlay maps a box in PDF point-space (origin bottom-left) onto a page of
// the given size in points, returning normalized coordinates with a top-left
// origin, rounded to 4 decimals. A page without size has no overlay.
func Overlay(b BBox, width, height float64) (BBox, bool) {
	if width <= 0 || height <= 0 {
		return BBox{}, false
	}

	x1 := b.Left() / width
	x2 := b.Right() / width
	y1 := 1.0 - b.Bottom()/height
	y2 := 1.0 - b.Top()/height

	return BBox{x1, y1, x2, y2}.Round(4), true
}

// Points converts a pixel length rendered at dpi into PDF points.
func Points(pixels int, dpi int) float64 {
	if dpi <= 0 {
		return 0
	}

	return float64(pixels) * 72 / float64(dpi)
}
