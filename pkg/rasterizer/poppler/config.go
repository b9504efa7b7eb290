package poppler

type Option func(*Rasterizer)

func WithBinary(path string) Option {
	return func(r *Rasterizer) {
		r.binary = path
	}
}

func WithTempDir(dir string) Option {
	return func(r *Rasterizer) {
		r.tempDir = dir
	}
}
