package config

import (
	"errors"
)

type uploadConfig struct {
	MaxSize int64 `yaml:"max_size"`
}

type corsConfig struct {
	Origins []string `yaml:"origins"`
}

type ocrConfig struct {
	Languages []string `yaml:"languages"`
}

func (cfg *Config) registerServer(f *configFile) error {
	if f.Address != "" {
		cfg.Address = f.Address
	}

	cfg.StaticDir = f.Static

	if f.Upload != nil && f.Upload.MaxSize != 0 {
		if f.Upload.MaxSize < 0 {
			return errors.New("invalid upload max_size")
		}

		cfg.MaxUploadSize = f.Upload.MaxSize
	}

	if f.CORS != nil {
		cfg.AllowedOrigins = f.CORS.Origins
	}

	if f.OCR != nil && len(f.OCR.Languages) > 0 {
		cfg.Languages = f.OCR.Languages
	}

	return nil
}
