package docling_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/adrianliechti/ocr2/pkg/converter"
	"github.com/adrianliechti/ocr2/pkg/converter/docling"
	"github.com/adrianliechti/ocr2/pkg/extract"
	"github.com/adrianliechti/ocr2/pkg/pdftest"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func newServer(t *testing.T, status string) (*httptest.Server, *[]string) {
	t.Helper()

	var polls atomic.Int32
	var languages []string

	mux := http.NewServeMux()

	mux.HandleFunc("POST /v1/convert/file/async", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "secret", r.Header.Get("X-Api-Key"))

		require.NoError(t, r.ParseMultipartForm(1<<20))

		file, header, err := r.FormFile("files")
		require.NoError(t, err)
		defer file.Close()

		require.Equal(t, "report.pdf", header.Filename)
		require.Equal(t, "true", r.FormValue("do_ocr"))
		require.Equal(t, "tesseract_cli", r.FormValue("ocr_engine"))

		languages = r.MultipartForm.Value["ocr_lang"]

		json.NewEncoder(w).Encode(map[string]any{"task_id": "task-1", "task_status": "pending"})
	})

	mux.HandleFunc("GET /v1/status/poll/{id}", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "task-1", r.PathValue("id"))

		s := "started"

		if polls.Add(1) > 1 {
			s = status
		}

		json.NewEncoder(w).Encode(map[string]any{"task_id": "task-1", "task_status": s})
	})

	mux.HandleFunc("GET /v1/result/{id}", func(w http.ResponseWriter, r *http.Request) {
		content := testDocument(t, nil, nil)

		json.NewEncoder(w).Encode(map[string]any{
			"document": map[string]any{
				"filename":     "report.pdf",
				"text_content": "Report\n\nFirst item",
				"json_content": content,
			},
			"status": "success",
			"errors": []any{},
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server, &languages
}

func TestConvert(t *testing.T) {
	server, languages := newServer(t, "success")

	c, err := docling.New(server.URL, docling.WithToken("secret"), docling.WithPollInterval(10*time.Millisecond))
	require.NoError(t, err)

	file := converter.File{
		Name: "report.pdf",
		Path: pdftest.Write(t, "Report"),

		ContentType: "application/pdf",
	}

	doc, err := c.Convert(context.Background(), file, nil)
	require.NoError(t, err)

	require.Equal(t, []string{"rus", "eng"}, *languages)
	require.Equal(t, "Report\n\nFirst item", doc.Text())
	require.Len(t, extract.Objects(context.Background(), doc), 5)
}

func TestConvertLanguageOverride(t *testing.T) {
	server, languages := newServer(t, "success")

	c, err := docling.New(server.URL, docling.WithToken("secret"), docling.WithLanguages("deu"), docling.WithPollInterval(10*time.Millisecond))
	require.NoError(t, err)

	file := converter.File{
		Name: "report.pdf",
		Path: pdftest.Write(t, "Report"),
	}

	_, err = c.Convert(context.Background(), file, &converter.ConvertOptions{Languages: []string{"fra", "eng"}})
	require.NoError(t, err)

	require.Equal(t, []string{"fra", "eng"}, *languages)
}

func TestConvertTaskFailure(t *testing.T) {
	server, _ := newServer(t, "failure")

	c, err := docling.New(server.URL, docling.WithToken("secret"), docling.WithPollInterval(10*time.Millisecond))
	require.NoError(t, err)

	file := converter.File{
		Name: "report.pdf",
		Path: pdftest.Write(t, "Report"),
	}

	_, err = c.Convert(context.Background(), file, nil)
	require.ErrorContains(t, err, "failure")
}

func TestConvertUnsupported(t *testing.T) {
	c, err := docling.New("http://localhost:5001")
	require.NoError(t, err)

	_, err = c.Convert(context.Background(), converter.File{Name: "notes.txt", ContentType: "text/plain"}, nil)
	require.ErrorIs(t, err, converter.ErrUnsupported)

	_, err = docling.New("")
	require.Error(t, err)
}

func TestConvertServer(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping docling-serve container in short mode")
	}

	ctx := context.Background()

	server, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		Started: true,

		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "quay.io/docling-project/docling-serve",
			ExposedPorts: []string{"5001/tcp"},
			WaitingFor:   wait.ForHTTP("/health").WithPort("5001/tcp").WithStartupTimeout(5 * time.Minute),
		},
	})

	require.NoError(t, err)
	testcontainers.CleanupContainer(t, server)

	url, err := server.Endpoint(ctx, "")
	require.NoError(t, err)

	c, err := docling.New("http://"+url, docling.WithLanguages("eng"))
	require.NoError(t, err)

	file := converter.File{
		Name: "hello.pdf",
		Path: pdftest.Write(t, "Hello World"),

		ContentType: "application/pdf",
	}

	doc, err := c.Convert(ctx, file, nil)
	require.NoError(t, err)

	require.Contains(t, doc.Text(), "Hello World")
	require.NotEmpty(t, extract.Objects(ctx, doc))
}
