package tesseract

type Option func(*Converter)

func WithLanguages(languages ...string) Option {
	return func(c *Converter) {
		c.languages = languages
	}
}

// WithDPI sets the resolution pages are rendered at before recognition.
func WithDPI(dpi int) Option {
	return func(c *Converter) {
		c.dpi = dpi
	}
}
