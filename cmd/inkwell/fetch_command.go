package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"inkwell/internal/source"
)

func newFetchCommand(ctx *commandContext) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "fetch <url>",
		Short: "Fetch a chapter page and save its cleaned text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			opts := []source.FetcherOption{
				source.WithUserAgent(cfg.Source.UserAgent),
			}
			if cfg.Source.RequestTimeout > 0 {
				opts = append(opts, source.WithFetchClient(&http.Client{
					Timeout: time.Duration(cfg.Source.RequestTimeout) * time.Second,
				}))
			}
			if cfg.Source.RetryAttempts > 0 {
				opts = append(opts, source.WithFetchAttempts(uint(cfg.Source.RetryAttempts)))
			}
			fetcher := source.NewFetcher(logger, opts...)

			html, err := fetcher.Fetch(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fragment, err := source.ExtractContent(html)
			if err != nil {
				return err
			}
			text, err := source.HTMLToText(fragment)
			if err != nil {
				return err
			}

			target := strings.TrimSpace(outputPath)
			if target == "" {
				target = filepath.Join(cfg.Paths.OutputDir, "fetched.txt")
			}
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}
			if err := os.WriteFile(target, []byte(text+"\n"), 0o644); err != nil {
				return fmt.Errorf("write fetched text: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d characters to %s\n", len([]rune(text)), target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Destination for the cleaned text")
	return cmd
}
