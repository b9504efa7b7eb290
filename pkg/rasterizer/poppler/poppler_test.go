package poppler

import (
	"context"
	"image"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/adrianliechti/ocr2/pkg/pdftest"
	"github.com/adrianliechti/ocr2/pkg/rasterizer"

	"github.com/stretchr/testify/require"
)

func TestPageFilesOrder(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"page-10.png", "page-02.png", "page-1.png", "page-x.png", "notes.txt"} {
		f, err := os.Create(filepath.Join(dir, name))
		require.NoError(t, err)

		require.NoError(t, png.Encode(f, image.NewGray(image.Rect(0, 0, 1, 1))))
		require.NoError(t, f.Close())
	}

	files, err := pageFiles(dir)
	require.NoError(t, err)

	require.Equal(t, []string{
		filepath.Join(dir, "page-1.png"),
		filepath.Join(dir, "page-02.png"),
		filepath.Join(dir, "page-10.png"),
	}, files)
}

func TestNewMissingBinary(t *testing.T) {
	_, err := New(WithBinary("pdftoppm-does-not-exist"))
	require.Error(t, err)
}

func TestRasterize(t *testing.T) {
	if _, err := exec.LookPath("pdftoppm"); err != nil {
		t.Skip("pdftoppm not installed")
	}

	r, err := New(WithTempDir(t.TempDir()))
	require.NoError(t, err)

	path := pdftest.Write(t, "first", "second")

	pages, err := r.Rasterize(context.Background(), path, &rasterizer.RasterizeOptions{DPI: 150})
	require.NoError(t, err)
	require.Len(t, pages, 2)

	require.Equal(t, 1275, pages[0].Bounds().Dx())
	require.Equal(t, 1650, pages[0].Bounds().Dy())
}

func TestRasterizeInvalidFile(t *testing.T) {
	if _, err := exec.LookPath("pdftoppm"); err != nil {
		t.Skip("pdftoppm not installed")
	}

	r, err := New()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a pdf"), 0o600))

	_, err = r.Rasterize(context.Background(), path, nil)
	require.Error(t, err)
}
