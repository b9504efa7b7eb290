package config

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/adrianliechti/ocr2/pkg/converter"
	"github.com/adrianliechti/ocr2/pkg/converter/docling"
	"github.com/adrianliechti/ocr2/pkg/converter/multi"
	"github.com/adrianliechti/ocr2/pkg/converter/native"
	"github.com/adrianliechti/ocr2/pkg/converter/tesseract"
	"github.com/adrianliechti/ocr2/pkg/limiter"
	"github.com/adrianliechti/ocr2/pkg/otel"
	"github.com/adrianliechti/ocr2/pkg/rasterizer"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"
)

func (cfg *Config) RegisterConverter(id string, p converter.Provider) {
	if cfg.converters == nil {
		cfg.converters = make(map[string]converter.Provider)
	}

	if _, ok := cfg.converters[""]; !ok {
		cfg.converters[""] = p
	}

	cfg.converters[id] = p
}

// Converter returns the converter registered as id. The empty id is the
// fallback chain over all configured converters.
func (cfg *Config) Converter(id string) (converter.Provider, error) {
	if cfg.converters != nil {
		if c, ok := cfg.converters[id]; ok {
			return c, nil
		}
	}

	return nil, errors.New("converter not found: " + id)
}

type converterConfig struct {
	Type string `yaml:"type"`

	URL   string `yaml:"url"`
	Token string `yaml:"token"`

	Engine    string   `yaml:"engine"`
	Languages []string `yaml:"languages"`

	DPI     int           `yaml:"dpi"`
	Timeout time.Duration `yaml:"timeout"`

	Limit *int `yaml:"limit"`
}

type converterContext struct {
	Languages []string
	Limiter   *rate.Limiter

	Rasterizer rasterizer.Provider
}

type namedConverter struct {
	id     string
	config converterConfig
}

func (cfg *Config) registerConverters(f *configFile) error {
	var configs map[string]converterConfig

	if err := f.Converters.Decode(&configs); err != nil {
		return err
	}

	var named []namedConverter

	// mapping keys and values alternate, keys keep the file order
	for i := 0; i+1 < len(f.Converters.Content); i += 2 {
		id := f.Converters.Content[i].Value

		if config, ok := configs[id]; ok {
			named = append(named, namedConverter{id, config})
		}
	}

	if len(named) == 0 {
		named = defaultConverters()
	}

	var converters []converter.Provider

	for _, n := range named {
		context := converterContext{
			Languages: cfg.Languages,
			Limiter:   createLimiter(n.config.Limit),

			Rasterizer: cfg.rasterizer,
		}

		if len(n.config.Languages) > 0 {
			context.Languages = n.config.Languages
		}

		c, err := createConverter(n.config, context)

		if err != nil {
			if len(f.Converters.Content) == 0 {
				slog.Warn("default converter unavailable", "converter", n.id, "error", err)
				continue
			}

			return err
		}

		if _, ok := c.(limiter.Converter); !ok {
			c = limiter.NewConverter(context.Limiter, c)
		}

		if _, ok := c.(otel.Converter); !ok {
			c = otel.NewConverter(strings.ToLower(n.config.Type), n.id, c)
		}

		converters = append(converters, c)

		cfg.RegisterConverter(n.id, c)
	}

	if len(converters) == 0 {
		return errors.New("no converter configured")
	}

	cfg.converters[""] = multi.New(converters...)

	return nil
}

func defaultConverters() []namedConverter {
	if url := os.Getenv("DOCLING_URL"); url != "" {
		return []namedConverter{
			{"docling", converterConfig{Type: "docling", URL: url, Token: os.Getenv("DOCLING_API_KEY")}},
		}
	}

	return []namedConverter{
		{"native", converterConfig{Type: "native"}},
		{"tesseract", converterConfig{Type: "tesseract"}},
	}
}

func createConverter(cfg converterConfig, context converterContext) (converter.Provider, error) {
	switch strings.ToLower(cfg.Type) {
	case "docling":
		return doclingConverter(cfg, context)

	case "native", "pdf":
		return nativeConverter(cfg)

	case "tesseract":
		return tesseractConverter(cfg, context)

	default:
		return nil, errors.New("invalid converter type: " + cfg.Type)
	}
}

func doclingConverter(cfg converterConfig, context converterContext) (converter.Provider, error) {
	options := []docling.Option{
		docling.WithLanguages(context.Languages...),
	}

	if cfg.Token != "" {
		options = append(options, docling.WithToken(cfg.Token))
	}

	if cfg.Engine != "" {
		options = append(options, docling.WithOCREngine(cfg.Engine))
	}

	client := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   cfg.Timeout,
	}

	options = append(options, docling.WithClient(client))

	return docling.New(cfg.URL, options...)
}

func nativeConverter(cfg converterConfig) (converter.Provider, error) {
	return native.New()
}

func tesseractConverter(cfg converterConfig, context converterContext) (converter.Provider, error) {
	options := []tesseract.Option{
		tesseract.WithLanguages(context.Languages...),
	}

	if cfg.DPI > 0 {
		options = append(options, tesseract.WithDPI(cfg.DPI))
	}

	return tesseract.New(context.Rasterizer, options...)
}
