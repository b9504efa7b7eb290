package poppler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/adrianliechti/ocr2/pkg/rasterizer"
)

var _ rasterizer.Provider = &Rasterizer{}

// Rasterizer renders pages with poppler's pdftoppm.
type Rasterizer struct {
	binary  string
	tempDir string
}

func New(options ...Option) (*Rasterizer, error) {
	r := &Rasterizer{
		binary: "pdftoppm",
	}

	for _, option := range options {
		option(r)
	}

	if _, err := exec.LookPath(r.binary); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Rasterizer) Rasterize(ctx context.Context, path string, options *rasterizer.RasterizeOptions) ([]image.Image, error) {
	dir, err := os.MkdirTemp(r.tempDir, "pages-")

	if err != nil {
		return nil, err
	}

	defer os.RemoveAll(dir)

	var stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, r.binary,
		"-r", strconv.Itoa(options.Resolution()),
		"-png",
		path,
		filepath.Join(dir, "page"),
	)

	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("pdftoppm: %s", msg)
		}

		return nil, fmt.Errorf("pdftoppm: %w", err)
	}

	files, err := pageFiles(dir)

	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		return nil, rasterizer.ErrNoPages
	}

	images := make([]image.Image, 0, len(files))

	for _, name := range files {
		img, err := readPNG(name)

		if err != nil {
			return nil, err
		}

		images = append(images, img)
	}

	return images, nil
}

// pageFiles lists page-N.png files ordered by N. pdftoppm pads N depending
// on the page count.
func pageFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)

	if err != nil {
		return nil, err
	}

	type page struct {
		number int
		path   string
	}

	var pages []page

	for _, e := range entries {
		name := e.Name()

		if e.IsDir() || !strings.HasPrefix(name, "page-") || !strings.HasSuffix(name, ".png") {
			continue
		}

		n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(name, "page-"), ".png"))

		if err != nil {
			continue
		}

		pages = append(pages, page{n, filepath.Join(dir, name)})
	}

	sort.Slice(pages, func(i, j int) bool {
		return pages[i].number < pages[j].number
	})

	result := make([]string, 0, len(pages))

	for _, p := range pages {
		result = append(result, p.path)
	}

	return result, nil
}

func readPNG(name string) (image.Image, error) {
	f, err := os.Open(name)

	if err != nil {
		return nil, err
	}

	defer f.Close()

	img, err := png.Decode(f)

	if err != nil {
		return nil, errors.Join(fmt.Errorf("decode %s", filepath.Base(name)), err)
	}

	return img, nil
}
