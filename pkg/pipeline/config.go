package pipeline

type Option func(*Pipeline)

// WithDPI sets the resolution of the page renderings.
func WithDPI(dpi int) Option {
	return func(p *Pipeline) {
		if dpi > 0 {
			p.dpi = dpi
		}
	}
}
