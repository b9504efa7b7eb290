package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/adrianliechti/ocr2/config"
	"github.com/adrianliechti/ocr2/pkg/otel"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "ocr2",
	Short: "PDF OCR and layout extraction",
	Long:  `Extracts text, tables and images with their page positions from PDF files.`,

	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		shutdown, err := otel.Setup(cmd.Context(), "ocr2")

		if err != nil {
			return err
		}

		cobra.OnFinalize(func() {
			shutdown(context.Background())
		})

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to the config file")
}

func loadConfig() (*config.Config, error) {
	return config.Parse(configPath)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
