package workflow

import (
	"strings"

	"inkwell/internal/services"
)

// Mode selects which segments a run attempts.
type Mode string

const (
	// ModeTranslate processes every pending segment, resuming past the
	// checkpoint when one exists.
	ModeTranslate Mode = "translate"
	// ModeRetry processes only the segments whose latest ledger outcome is
	// a failure.
	ModeRetry Mode = "retry"
)

// State names the phase a run is in. Runs move strictly forward.
type State string

const (
	StateIdle           State = "IDLE"
	StateSplitting      State = "SPLITTING"
	StateTranslating    State = "TRANSLATING"
	StateLogging        State = "LOGGING"
	StateComplete       State = "COMPLETE"
	StatePartialFailure State = "PARTIAL_FAILURE"
)

// RunConfig describes one unit-of-work run. Exactly one of SourcePath or
// SegmentsPath supplies the input: a raw text file to split, or a
// previously split segments file.
type RunConfig struct {
	Mode            Mode
	UnitName        string
	SourcePath      string
	SegmentsPath    string
	SourceURL       string
	LogPath         string
	OutputDir       string
	CheckpointDir   string
	MaxChars        int
	MaxChapters     int
	Volume          *int
	TargetLanguage  string
	CheckpointEvery int
}

// Validate rejects configurations that cannot produce a meaningful run.
func (c RunConfig) Validate() error {
	fail := func(msg string) error {
		return services.Wrap(services.ErrConfiguration, "workflow", "validate", msg, nil)
	}
	switch c.Mode {
	case ModeTranslate, ModeRetry:
	default:
		return fail("mode must be translate or retry")
	}
	if strings.TrimSpace(c.UnitName) == "" {
		return fail("unit name is required")
	}
	if c.SourcePath == "" && c.SegmentsPath == "" {
		return fail("either a source file or a segments file is required")
	}
	if c.SourcePath != "" && c.SegmentsPath != "" {
		return fail("source file and segments file are mutually exclusive")
	}
	if c.LogPath == "" {
		return fail("run log path is required")
	}
	if c.OutputDir == "" {
		return fail("output directory is required")
	}
	if c.CheckpointDir == "" {
		return fail("checkpoint directory is required")
	}
	if c.SourcePath != "" && c.MaxChars <= 0 {
		return fail("max_chars must be positive when splitting a source file")
	}
	if c.Mode == ModeRetry && c.SourcePath != "" {
		return fail("retry runs need the segments file the failing run used")
	}
	return nil
}

func (c RunConfig) checkpointEvery() int {
	if c.CheckpointEvery <= 0 {
		return 1
	}
	return c.CheckpointEvery
}

// Result summarizes a finished run.
type Result struct {
	State       State
	Attempted   int
	Succeeded   int
	Failed      int
	FailedIDs   []string
	Consistency []string
	LogPath     string
	OutputPath  string
	MergedPath  string
}
