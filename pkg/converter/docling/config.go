package docling

import (
	"net/http"
	"time"
)

type Option func(*Client)

func WithClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithLanguages sets the tesseract languages docling-serve runs OCR with.
func WithLanguages(languages ...string) Option {
	return func(c *Client) {
		c.languages = languages
	}
}

func WithOCREngine(engine string) Option {
	return func(c *Client) {
		c.engine = engine
	}
}

// WithPollInterval sets how often an async conversion task is checked.
func WithPollInterval(interval time.Duration) Option {
	return func(c *Client) {
		c.interval = interval
	}
}

var SupportedExtensions = []string{
	".pdf",
}

var SupportedMimeTypes = []string{
	"application/pdf",
	"application/octet-stream",
}
