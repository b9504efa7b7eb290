package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"slices"

	"github.com/adrianliechti/ocr2/pkg/converter"
)

var supportedContentTypes = []string{
	"application/pdf",
	"application/octet-stream",
}

func (h *Handler) handleParse(w http.ResponseWriter, r *http.Request) {
	if h.MaxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadSize)
	}

	file, header, err := r.FormFile("file")

	if err != nil {
		var maxBytesErr *http.MaxBytesError

		if errors.As(err, &maxBytesErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "File too large")
			return
		}

		writeError(w, http.StatusBadRequest, "Missing file")
		return
	}

	defer file.Close()

	contentType := header.Header.Get("Content-Type")

	if !slices.Contains(supportedContentTypes, contentType) {
		writeError(w, http.StatusBadRequest, "File must be a PDF")
		return
	}

	path, err := writeTemp(file)

	if path != "" {
		defer removeTemp(path)
	}

	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to process PDF: "+err.Error())
		return
	}

	input := converter.File{
		Name: header.Filename,
		Path: path,

		ContentType: contentType,
	}

	options := &converter.ConvertOptions{
		Languages: valueLanguages(r),
	}

	result, err := h.pipeline.Run(r.Context(), input, options)

	if err != nil {
		slog.ErrorContext(r.Context(), "failed to process pdf", "file", header.Filename, "error", err)

		writeError(w, http.StatusInternalServerError, "Failed to process PDF: "+err.Error())
		return
	}

	if err := writeJson(w, result); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to process PDF: "+err.Error())
	}
}

// writeTemp stores the upload in a uniquely named file. The path is returned
// even on error so the caller can clean up.
func writeTemp(r io.Reader) (string, error) {
	f, err := os.CreateTemp("", "upload-*.pdf")

	if err != nil {
		return "", err
	}

	path := f.Name()

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return path, err
	}

	return path, f.Close()
}

func removeTemp(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to remove upload", "path", path, "error", err)
	}
}
