package main

import (
	"encoding/json"
	"mime"
	"path/filepath"
	"strings"

	"github.com/adrianliechti/ocr2/config"
	"github.com/adrianliechti/ocr2/pkg/converter"
	"github.com/adrianliechti/ocr2/pkg/pipeline"

	"github.com/spf13/cobra"
)

var (
	parseConverter string
	parseLanguages []string
	parsePages     bool
	parseIndent    bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a PDF and print the result as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().StringVar(&parseConverter, "converter", "", "converter id (default: all in order)")
	parseCmd.Flags().StringSliceVarP(&parseLanguages, "lang", "l", nil, "OCR languages, e.g. rus,eng")
	parseCmd.Flags().BoolVar(&parsePages, "pages", false, "include rendered pages")
	parseCmd.Flags().BoolVar(&parseIndent, "indent", true, "indent the JSON output")

	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()

	if err != nil {
		return err
	}

	result, err := parseFile(cmd, cfg, args[0])

	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetEscapeHTML(false)

	if parseIndent {
		enc.SetIndent("", "  ")
	}

	return enc.Encode(result)
}

func parseFile(cmd *cobra.Command, cfg *config.Config, path string) (*pipeline.Result, error) {
	c, err := cfg.Converter(parseConverter)

	if err != nil {
		return nil, err
	}

	var options []pipeline.Option

	options = append(options, pipeline.WithDPI(cfg.DPI))

	r := cfg.Rasterizer()

	if !parsePages {
		r = nil
	}

	p, err := pipeline.New(c, r, options...)

	if err != nil {
		return nil, err
	}

	file := converter.File{
		Name: filepath.Base(path),
		Path: path,

		ContentType: contentType(path),
	}

	return p.Run(cmd.Context(), file, &converter.ConvertOptions{
		Languages: parseLanguages,
	})
}

func contentType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))

	if ext == ".pdf" {
		return "application/pdf"
	}

	if val := mime.TypeByExtension(ext); val != "" {
		return val
	}

	return "application/octet-stream"
}
