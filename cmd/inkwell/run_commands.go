package main

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"inkwell/internal/config"
	"inkwell/internal/language"
	"inkwell/internal/textutil"
	"inkwell/internal/translator"
	"inkwell/internal/workflow"
)

type runFlags struct {
	sourcePath   string
	segmentsPath string
	volume       int
	maxChars     int
	maxChapters  int
	targetLang   string
}

func (f *runFlags) register(cmd *cobra.Command, mode workflow.Mode) {
	if mode == workflow.ModeTranslate {
		cmd.Flags().StringVarP(&f.sourcePath, "source", "s", "", "Raw source text file to split and translate")
	}
	cmd.Flags().StringVar(&f.segmentsPath, "segments", "", "Previously split segments file (YAML)")
	cmd.Flags().IntVar(&f.volume, "volume", 0, "Volume number to stamp into segment identifiers")
	cmd.Flags().IntVar(&f.maxChars, "max-chars", 0, "Maximum characters per segment (overrides config)")
	cmd.Flags().IntVar(&f.maxChapters, "max-chapters", 0, "Process at most this many chapters")
	cmd.Flags().StringVar(&f.targetLang, "target-language", "", "Translation target language (overrides config)")
}

func newTranslateCommand(ctx *commandContext) *cobra.Command {
	flags := &runFlags{}
	cmd := &cobra.Command{
		Use:   "translate <unit-name>",
		Short: "Translate a unit-of-work, resuming from its checkpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeRun(ctx, cmd, workflow.ModeTranslate, args[0], flags)
		},
	}
	flags.register(cmd, workflow.ModeTranslate)
	return cmd
}

func newRetryCommand(ctx *commandContext) *cobra.Command {
	flags := &runFlags{}
	cmd := &cobra.Command{
		Use:   "retry <unit-name>",
		Short: "Re-attempt only the segments whose latest outcome is a failure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeRun(ctx, cmd, workflow.ModeRetry, args[0], flags)
		},
	}
	flags.register(cmd, workflow.ModeRetry)
	return cmd
}

func executeRun(ctx *commandContext, cmd *cobra.Command, mode workflow.Mode, unitName string, flags *runFlags) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	if err := cfg.RequireTranslatorKey(); err != nil {
		return err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return err
	}

	runCfg := buildRunConfig(cfg, mode, unitName, flags)
	client := newTranslatorClient(cfg, runCfg.TargetLanguage)

	runner, err := workflow.NewRunner(runCfg, client, logger)
	if err != nil {
		return err
	}
	result, err := runner.Run(cmd.Context())
	if err != nil {
		return err
	}
	printRunResult(cmd, result)
	if result.State == workflow.StatePartialFailure {
		return fmt.Errorf("%d segment(s) failed; see %s", result.Failed, result.LogPath)
	}
	return nil
}

func buildRunConfig(cfg *config.Config, mode workflow.Mode, unitName string, flags *runFlags) workflow.RunConfig {
	maxChars := cfg.Splitter.MaxChars
	if flags.maxChars > 0 {
		maxChars = flags.maxChars
	}
	maxChapters := cfg.Splitter.MaxChapters
	if flags.maxChapters > 0 {
		maxChapters = flags.maxChapters
	}
	targetLang := cfg.Translator.TargetLanguage
	if strings.TrimSpace(flags.targetLang) != "" {
		targetLang = language.Canonical(flags.targetLang)
	}
	var volume *int
	if flags.volume > 0 {
		v := flags.volume
		volume = &v
	}

	return workflow.RunConfig{
		Mode:            mode,
		UnitName:        unitName,
		SourcePath:      flags.sourcePath,
		SegmentsPath:    flags.segmentsPath,
		LogPath:         runLogPath(cfg, unitName),
		OutputDir:       cfg.Paths.OutputDir,
		CheckpointDir:   checkpointDir(cfg),
		MaxChars:        maxChars,
		MaxChapters:     maxChapters,
		Volume:          volume,
		TargetLanguage:  targetLang,
		CheckpointEvery: cfg.Workflow.CheckpointEvery,
	}
}

func newTranslatorClient(cfg *config.Config, targetLang string) *translator.Client {
	opts := []translator.Option{
		translator.WithBaseURL(cfg.Translator.BaseURL),
		translator.WithModel(cfg.Translator.Model),
		translator.WithTargetLanguage(targetLang),
	}
	if cfg.Translator.TimeoutSeconds > 0 {
		opts = append(opts, translator.WithHTTPClient(&http.Client{
			Timeout: time.Duration(cfg.Translator.TimeoutSeconds) * time.Second,
		}))
	}
	if cfg.Source.RetryAttempts > 0 {
		opts = append(opts, translator.WithAttempts(uint(cfg.Source.RetryAttempts)))
	}
	return translator.NewClient(cfg.Translator.APIKey, opts...)
}

func runLogPath(cfg *config.Config, unitName string) string {
	return filepath.Join(cfg.Paths.DataDir, textutil.SanitizeUnitName(unitName)+"_run.log")
}

func checkpointDir(cfg *config.Config) string {
	return filepath.Join(cfg.Paths.DataDir, "checkpoints")
}

func printRunResult(cmd *cobra.Command, result workflow.Result) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)

	kind := statusOK
	if result.State == workflow.StatePartialFailure {
		kind = statusWarn
	}
	fmt.Fprintln(out, renderStatusLine("State", kind, string(result.State), colorize))
	fmt.Fprintln(out, renderStatusLine("Attempted", statusInfo, fmt.Sprintf("%d", result.Attempted), colorize))
	fmt.Fprintln(out, renderStatusLine("Succeeded", statusOK, fmt.Sprintf("%d", result.Succeeded), colorize))
	if result.Failed > 0 {
		fmt.Fprintln(out, renderStatusLine("Failed", statusError, fmt.Sprintf("%d", result.Failed), colorize))
		fmt.Fprintln(out, renderStatusLine("Failed ids", statusError, strings.Join(result.FailedIDs, ", "), colorize))
	}
	if len(result.Consistency) > 0 {
		fmt.Fprintln(out, renderStatusLine("Missing ids", statusWarn, strings.Join(result.Consistency, ", "), colorize))
	}
	if result.MergedPath != "" {
		fmt.Fprintln(out, renderStatusLine("Output", statusInfo, result.MergedPath, colorize))
	}
	fmt.Fprintln(out, renderStatusLine("Run log", statusInfo, result.LogPath, colorize))
}
