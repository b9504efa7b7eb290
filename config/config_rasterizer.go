package config

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/adrianliechti/ocr2/pkg/limiter"
	"github.com/adrianliechti/ocr2/pkg/otel"
	"github.com/adrianliechti/ocr2/pkg/rasterizer"
	"github.com/adrianliechti/ocr2/pkg/rasterizer/poppler"
)

type renderConfig struct {
	DPI int `yaml:"dpi"`

	Rasterizer string `yaml:"rasterizer"`
	Binary     string `yaml:"binary"`

	Limit *int `yaml:"limit"`
}

func (cfg *Config) RegisterRasterizer(r rasterizer.Provider) {
	cfg.rasterizer = r
}

// Rasterizer returns the page renderer, or nil if pages are not rendered.
func (cfg *Config) Rasterizer() rasterizer.Provider {
	return cfg.rasterizer
}

func (cfg *Config) registerRasterizer(f *configFile) error {
	config := renderConfig{
		Rasterizer: "poppler",
	}

	if f.Render != nil {
		config = *f.Render
	}

	if config.DPI < 0 {
		return errors.New("invalid render dpi")
	}

	if config.DPI > 0 {
		cfg.DPI = config.DPI
	}

	var r rasterizer.Provider

	switch strings.ToLower(config.Rasterizer) {
	case "", "poppler", "pdftoppm":
		var options []poppler.Option

		if config.Binary != "" {
			options = append(options, poppler.WithBinary(config.Binary))
		}

		p, err := poppler.New(options...)

		if err != nil {
			// pages degrade to an empty list without a renderer
			slog.Warn("page rendering disabled", "error", err)
			return nil
		}

		r = p

	case "none":
		return nil

	default:
		return errors.New("invalid rasterizer type: " + config.Rasterizer)
	}

	if _, ok := r.(limiter.Rasterizer); !ok {
		r = limiter.NewRasterizer(createLimiter(config.Limit), r)
	}

	if _, ok := r.(otel.Rasterizer); !ok {
		r = otel.NewRasterizer("poppler", r)
	}

	cfg.RegisterRasterizer(r)

	return nil
}
