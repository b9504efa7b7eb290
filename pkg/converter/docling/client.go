package docling

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/adrianliechti/ocr2/pkg/converter"
	"github.com/adrianliechti/ocr2/pkg/document"

	"github.com/google/uuid"
)

var _ converter.Provider = &Client{}

// Client converts documents with a docling-serve instance.
type Client struct {
	client *http.Client

	url   string
	token string

	engine    string
	languages []string

	interval time.Duration
}

func New(url string, options ...Option) (*Client, error) {
	if url == "" {
		return nil, errors.New("invalid url")
	}

	c := &Client{
		client: http.DefaultClient,

		url: url,

		engine:    "tesseract_cli",
		languages: converter.DefaultLanguages,

		interval: 2 * time.Second,
	}

	for _, option := range options {
		option(c)
	}

	return c, nil
}

func (c *Client) Convert(ctx context.Context, file converter.File, options *converter.ConvertOptions) (document.Document, error) {
	if !isSupported(file) {
		return nil, converter.ErrUnsupported
	}

	body, contentType, err := c.formData(file, options.LanguagesOr(c.languages))

	if err != nil {
		return nil, err
	}

	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(c.url, "/")+"/v1/convert/file/async", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.do(req)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, convertError(resp)
	}

	var task Task

	if err := json.NewDecoder(resp.Body).Decode(&task); err != nil {
		return nil, err
	}

	if err := c.awaitTask(ctx, task.TaskID); err != nil {
		return nil, err
	}

	result, err := c.readResult(ctx, task.TaskID)

	if err != nil {
		return nil, err
	}

	return Parse(result.Document.Json, result.Document.Text)
}

func (c *Client) formData(file converter.File, languages []string) (io.Reader, string, error) {
	f, err := os.Open(file.Path)

	if err != nil {
		return nil, "", err
	}

	defer f.Close()

	name := file.Name

	if name == "" {
		name = uuid.NewString() + ".pdf"
	}

	var data bytes.Buffer
	w := multipart.NewWriter(&data)

	part, err := w.CreateFormFile("files", name)

	if err != nil {
		return nil, "", err
	}

	if _, err := io.Copy(part, f); err != nil {
		return nil, "", err
	}

	fields := [][2]string{
		{"from_formats", "pdf"},
		{"to_formats", "json"},
		{"to_formats", "text"},
		{"do_ocr", "true"},
		{"ocr_engine", c.engine},
		{"image_export_mode", "embedded"},
		{"include_images", "true"},
		{"do_table_structure", "true"},
	}

	for _, lang := range languages {
		fields = append(fields, [2]string{"ocr_lang", lang})
	}

	for _, field := range fields {
		if err := w.WriteField(field[0], field[1]); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return &data, w.FormDataContentType(), nil
}

func (c *Client) awaitTask(ctx context.Context, taskID string) error {
	if taskID == "" {
		return errors.New("missing task id")
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.interval):
		}

		task, err := c.pollTask(ctx, taskID)

		if err != nil {
			return err
		}

		switch task.TaskStatus {
		case TaskStatusPending, TaskStatusStarted:
			continue

		case TaskStatusSuccess:
			return nil
		}

		return fmt.Errorf("task %s: %s", taskID, task.TaskStatus)
	}
}

func (c *Client) pollTask(ctx context.Context, taskID string) (*Task, error) {
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(c.url, "/")+"/v1/status/poll/"+taskID, nil)

	resp, err := c.do(req)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, convertError(resp)
	}

	var task Task

	if err := json.NewDecoder(resp.Body).Decode(&task); err != nil {
		return nil, err
	}

	return &task, nil
}

func (c *Client) readResult(ctx context.Context, taskID string) (*ConvertResult, error) {
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(c.url, "/")+"/v1/result/"+taskID, nil)

	resp, err := c.do(req)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, convertError(resp)
	}

	var result ConvertResult

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	if result.Document == nil {
		return nil, resultError(&result)
	}

	if len(result.Document.Json) == 0 && result.Document.Text == "" {
		return nil, resultError(&result)
	}

	return &result, nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	if c.token != "" {
		req.Header.Set("X-Api-Key", c.token)
	}

	return c.client.Do(req)
}

func isSupported(file converter.File) bool {
	if file.Name != "" {
		ext := strings.ToLower(path.Ext(file.Name))

		if slices.Contains(SupportedExtensions, ext) {
			return true
		}
	}

	if file.ContentType != "" {
		if slices.Contains(SupportedMimeTypes, file.ContentType) {
			return true
		}
	}

	return file.Name == "" && file.ContentType == ""
}

func resultError(result *ConvertResult) error {
	var messages []string

	for _, e := range result.Errors {
		if e.Message != "" {
			messages = append(messages, e.Message)
		}
	}

	if len(messages) > 0 {
		return errors.New(strings.Join(messages, "; "))
	}

	if result.Status != "" {
		return errors.New("conversion " + result.Status)
	}

	return errors.New("no content")
}

func convertError(resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)

	if len(data) == 0 {
		return errors.New(http.StatusText(resp.StatusCode))
	}

	return errors.New(string(data))
}
