package native

type Option func(*Converter)

// WithLineSpacing sets the largest gap between two lines, as a multiple of
// the font size, that still joins them into one paragraph.
func WithLineSpacing(factor float64) Option {
	return func(c *Converter) {
		c.lineSpacing = factor
	}
}
