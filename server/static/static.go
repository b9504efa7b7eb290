package static

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/adrianliechti/ocr2/config"

	"github.com/go-chi/chi/v5"
)

//go:embed public
var public embed.FS

// Handler serves the upload UI, either from the configured directory or the
// bundled copy.
type Handler struct {
	*config.Config

	files http.FileSystem
}

func New(cfg *config.Config) (*Handler, error) {
	h := &Handler{
		Config: cfg,
	}

	if cfg.StaticDir != "" {
		h.files = http.Dir(cfg.StaticDir)
	} else {
		root, err := fs.Sub(public, "public")

		if err != nil {
			return nil, err
		}

		h.files = http.FS(root)
	}

	return h, nil
}

func (h *Handler) Attach(r chi.Router) {
	r.Get("/", h.handleIndex)

	// http.FileServer redirects index.html requests to the directory
	r.Get("/static/index.html", h.handlePage)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(h.files)))
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Location", "/static/index.html")
	w.Header().Set("Content-Type", "application/json")

	w.WriteHeader(http.StatusTemporaryRedirect)
	w.Write([]byte("{}"))
}

func (h *Handler) handlePage(w http.ResponseWriter, r *http.Request) {
	f, err := h.files.Open("index.html")

	if err != nil {
		http.NotFound(w, r)
		return
	}

	defer f.Close()

	info, err := f.Stat()

	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}

	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}
