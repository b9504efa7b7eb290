package config

import (
	"bytes"
	"errors"
	"io/fs"
	"os"

	"github.com/adrianliechti/ocr2/pkg/converter"
	"github.com/adrianliechti/ocr2/pkg/rasterizer"

	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAddress       = ":8000"
	DefaultMaxUploadSize = 64 << 20
)

type Config struct {
	Address string

	StaticDir     string
	MaxUploadSize int64

	AllowedOrigins []string

	DPI       int
	Languages []string

	rasterizer rasterizer.Provider
	converters map[string]converter.Provider
}

// Parse reads the config file at path. A missing file yields the defaults.
func Parse(path string) (*Config, error) {
	file, err := parseFile(path)

	if errors.Is(err, fs.ErrNotExist) {
		file, err = &configFile{}, nil
	}

	if err != nil {
		return nil, err
	}

	return load(file)
}

func load(file *configFile) (*Config, error) {
	c := &Config{
		Address: DefaultAddress,

		MaxUploadSize: DefaultMaxUploadSize,

		DPI:       rasterizer.DefaultDPI,
		Languages: converter.DefaultLanguages,
	}

	if err := c.registerServer(file); err != nil {
		return nil, err
	}

	if err := c.registerRasterizer(file); err != nil {
		return nil, err
	}

	if err := c.registerConverters(file); err != nil {
		return nil, err
	}

	return c, nil
}

type configFile struct {
	Address string `yaml:"address"`
	Static  string `yaml:"static"`

	Upload *uploadConfig `yaml:"upload"`
	CORS   *corsConfig   `yaml:"cors"`

	OCR    *ocrConfig    `yaml:"ocr"`
	Render *renderConfig `yaml:"render"`

	Converters yaml.Node `yaml:"converters"`
}

func parseFile(path string) (*configFile, error) {
	data, err := os.ReadFile(path)

	if err != nil {
		return nil, err
	}

	data = []byte(os.ExpandEnv(string(data)))

	var config configFile

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&config); err != nil {
		// an empty file decodes to io.EOF
		if len(bytes.TrimSpace(data)) == 0 {
			return &configFile{}, nil
		}

		return nil, err
	}

	return &config, nil
}

func createLimiter(limit *int) *rate.Limiter {
	if limit == nil || *limit <= 0 {
		return nil
	}

	return rate.NewLimiter(rate.Limit(*limit), *limit)
}
