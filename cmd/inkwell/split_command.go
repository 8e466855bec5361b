package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"inkwell/internal/segment"
	"inkwell/internal/source"
	"inkwell/internal/splitter"
	"inkwell/internal/textutil"
)

func newSplitCommand(ctx *commandContext) *cobra.Command {
	var outputPath string
	var volume int
	var maxChars int
	var maxChapters int

	cmd := &cobra.Command{
		Use:   "split <source-file>",
		Short: "Split a source text file into translation segments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			text, err := source.ReadLocal(args[0])
			if err != nil {
				return err
			}

			opts := splitter.Options{
				MaxChars:    cfg.Splitter.MaxChars,
				MaxChapters: cfg.Splitter.MaxChapters,
			}
			if maxChars > 0 {
				opts.MaxChars = maxChars
			}
			if maxChapters > 0 {
				opts.MaxChapters = maxChapters
			}
			if volume > 0 {
				opts.Volume = &volume
			}

			segments, err := splitter.Split(text, opts)
			if err != nil {
				return err
			}

			target := strings.TrimSpace(outputPath)
			if target == "" {
				base := textutil.SanitizeUnitName(strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0])))
				target = filepath.Join(cfg.Paths.OutputDir, base+"_segments.yaml")
			}
			if err := segment.WriteFile(target, segments); err != nil {
				return err
			}

			chapters := 0
			interludes := 0
			for _, seg := range segments {
				if seg.IsSpecial {
					interludes++
				} else if parts := segment.ParseID(seg.ID); parts.Segment == nil || *parts.Segment == 1 {
					chapters++
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote %d segment(s) to %s\n", len(segments), target)
			fmt.Fprintf(out, "Chapters: %d, interludes: %d\n", chapters, interludes)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Destination for the segments file")
	cmd.Flags().IntVar(&volume, "volume", 0, "Volume number to stamp into segment identifiers")
	cmd.Flags().IntVar(&maxChars, "max-chars", 0, "Maximum characters per segment (overrides config)")
	cmd.Flags().IntVar(&maxChapters, "max-chapters", 0, "Split at most this many chapters")
	return cmd
}
