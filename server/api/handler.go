package api

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/adrianliechti/ocr2/config"
	"github.com/adrianliechti/ocr2/pkg/pipeline"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	*config.Config

	pipeline *pipeline.Pipeline
}

func New(cfg *config.Config) (*Handler, error) {
	c, err := cfg.Converter("")

	if err != nil {
		return nil, err
	}

	p, err := pipeline.New(c, cfg.Rasterizer(), pipeline.WithDPI(cfg.DPI))

	if err != nil {
		return nil, err
	}

	h := &Handler{
		Config: cfg,

		pipeline: p,
	}

	return h, nil
}

func (h *Handler) Attach(r chi.Router) {
	r.Get("/healthz", h.handleHealth)
	r.Post("/parse", h.handleParse)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJson(w, map[string]string{
		"status": "ok",
	})
}

// writeJson encodes v before touching the response so encoding failures can
// still be reported as an error.
func writeJson(w http.ResponseWriter, v any) error {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(v); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(buf.Bytes())

	return nil
}

func writeError(w http.ResponseWriter, code int, message string) {
	if message == "" {
		message = http.StatusText(code)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	enc.Encode(map[string]string{
		"error": message,
	})
}
