package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"inkwell/internal/checkpoint"
	"inkwell/internal/logging"
	"inkwell/internal/retrysel"
	"inkwell/internal/runlog"
	"inkwell/internal/segment"
	"inkwell/internal/services"
	"inkwell/internal/source"
	"inkwell/internal/splitter"
	"inkwell/internal/textutil"
	"inkwell/internal/translator"
)

// Runner drives one unit-of-work through the pipeline: acquire the unit
// lock, obtain segments, translate them one at a time, and persist outcomes
// as it goes. A Runner is single-use.
type Runner struct {
	cfg         RunConfig
	translator  translator.Translator
	checkpoints *checkpoint.Store
	ledger      *runlog.Ledger
	selector    *retrysel.Selector
	logger      *slog.Logger
	state       State
}

// NewRunner validates the configuration and wires the run's dependencies.
func NewRunner(cfg RunConfig, tr translator.Translator, logger *slog.Logger) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if tr == nil {
		return nil, services.Wrap(services.ErrConfiguration, "workflow", "new", "translator is required", nil)
	}
	return &Runner{
		cfg:         cfg,
		translator:  tr,
		checkpoints: checkpoint.NewStore(cfg.CheckpointDir, logger),
		ledger:      runlog.NewLedger(cfg.LogPath, logger),
		selector:    retrysel.New(logger),
		logger:      logging.NewComponentLogger(logger, "workflow"),
		state:       StateIdle,
	}, nil
}

// State reports the phase the run last entered.
func (r *Runner) State() State {
	return r.state
}

func (r *Runner) setState(next State) {
	r.state = next
	r.logger.Info("run state changed",
		logging.String(logging.FieldStage, string(next)),
		logging.String(logging.FieldUnit, r.cfg.UnitName))
}

// Run executes the configured run to completion. Per-segment translation
// failures are recorded in the ledger and the Result, not returned as
// errors; the error return covers conditions that prevent the run from
// proceeding at all.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	result := Result{State: r.state, LogPath: r.cfg.LogPath}

	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	ctx = services.WithUnitName(ctx, r.cfg.UnitName)
	r.logger = r.logger.With(logging.String(logging.FieldRunID, runID))

	if err := os.MkdirAll(r.cfg.OutputDir, 0o755); err != nil {
		return result, services.Wrap(services.ErrPersistence, "workflow", "run", "create output directory", err)
	}
	lock := flock.New(r.lockPath())
	locked, err := lock.TryLock()
	if err != nil {
		return result, services.Wrap(services.ErrPersistence, "workflow", "run", "acquire unit lock", err)
	}
	if !locked {
		return result, services.Wrap(services.ErrConsistency, "workflow", "run",
			fmt.Sprintf("another run is already processing %q", r.cfg.UnitName), nil)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			r.logger.Warn("release unit lock failed", logging.Error(err))
		}
	}()

	r.setState(StateSplitting)
	segments, err := r.loadSegments()
	if err != nil {
		return result, err
	}

	pending, consistency, err := r.selectPending(segments)
	if err != nil {
		return result, err
	}
	result.Consistency = consistency

	r.setState(StateTranslating)
	translated := r.translateAll(ctx, pending, &result)

	r.setState(StateLogging)
	if len(translated) > 0 {
		merger := NewMerger(r.cfg.OutputDir, r.logger)
		outPath, mergedPath, err := merger.Merge(r.cfg.UnitName, translated)
		if err != nil {
			return result, err
		}
		result.OutputPath = outPath
		result.MergedPath = mergedPath
	}

	if result.Failed > 0 || len(result.Consistency) > 0 {
		r.setState(StatePartialFailure)
		r.logger.Warn("run finished with failures",
			logging.Int("failed", result.Failed),
			logging.String("run_log", r.cfg.LogPath),
			logging.String(logging.FieldErrorHint, "rerun with retry mode to reprocess failed segments"))
	} else {
		r.setState(StateComplete)
		r.checkpoints.Delete(r.cfg.UnitName)
		r.logger.Info("run complete",
			logging.Int("attempted", result.Attempted),
			logging.Int("succeeded", result.Succeeded))
	}
	result.State = r.state
	return result, nil
}

func (r *Runner) lockPath() string {
	return filepath.Join(r.cfg.OutputDir, textutil.SanitizeUnitName(r.cfg.UnitName)+".lock")
}

// loadSegments produces the full segment list, either by splitting a raw
// source file or by loading a previously written segments file.
func (r *Runner) loadSegments() ([]segment.Segment, error) {
	if r.cfg.SegmentsPath != "" {
		segs, err := segment.LoadFile(r.cfg.SegmentsPath)
		if err != nil {
			return nil, err
		}
		r.logger.Info("loaded segments file",
			logging.String("path", r.cfg.SegmentsPath),
			logging.Int("segments", len(segs)))
		return segs, nil
	}

	text, err := source.ReadLocal(r.cfg.SourcePath)
	if err != nil {
		return nil, err
	}
	segs, err := splitter.Split(text, splitter.Options{
		MaxChars:    r.cfg.MaxChars,
		MaxChapters: r.cfg.MaxChapters,
		Volume:      r.cfg.Volume,
	})
	if err != nil {
		return nil, err
	}
	r.logger.Info("split source file",
		logging.String("path", r.cfg.SourcePath),
		logging.Int("segments", len(segs)))
	return segs, nil
}

// selectPending narrows the segment list to what this run must attempt:
// the ledger's failed set for retry runs, everything past the checkpoint
// for translate runs.
func (r *Runner) selectPending(segments []segment.Segment) ([]segment.Segment, []string, error) {
	if r.cfg.Mode == ModeRetry {
		failed, err := r.ledger.FailedIDs()
		if err != nil {
			return nil, nil, err
		}
		sel := r.selector.Select(failed, segments)
		return sel.Segments, sel.Missing, nil
	}

	cp := r.checkpoints.Load(r.cfg.UnitName)
	if cp == nil {
		return segments, nil, nil
	}
	var pending []segment.Segment
	for _, seg := range segments {
		ch := segment.ParseID(seg.ID).Chapter
		if ch != nil && *ch <= cp.ChapterCount {
			continue
		}
		pending = append(pending, seg)
	}
	r.logger.Info("resuming from checkpoint",
		logging.Int("chapter_count", cp.ChapterCount),
		logging.Int("skipped", len(segments)-len(pending)))
	return pending, nil, nil
}

// translateAll runs the sequential translation loop. Each outcome is
// appended to the ledger immediately; the checkpoint advances whenever a
// chapter finishes with every segment succeeded.
func (r *Runner) translateAll(ctx context.Context, pending []segment.Segment, result *Result) []segment.Segment {
	var translated []segment.Segment
	bestChapter := 0
	if cp := r.checkpoints.Load(r.cfg.UnitName); cp != nil {
		bestChapter = cp.ChapterCount
	}

	currentChapter := 0
	chapterClean := false
	lastTitle := ""
	sinceCheckpoint := 0

	flushChapter := func() {
		if chapterClean && currentChapter > bestChapter {
			bestChapter = currentChapter
		}
	}
	// The checkpoint file appears only once a chapter has fully succeeded;
	// a run that fails every segment leaves no checkpoint behind.
	saveCheckpoint := func() {
		if r.cfg.Mode != ModeTranslate || bestChapter == 0 {
			return
		}
		r.checkpoints.Save(r.cfg.UnitName, bestChapter, r.cfg.SourceURL, lastTitle)
	}

	for _, seg := range pending {
		if ctx.Err() != nil {
			r.logger.Warn("run cancelled", logging.Error(ctx.Err()))
			break
		}
		segCtx := services.WithSegmentID(ctx, seg.ID)

		if ch := segment.ParseID(seg.ID).Chapter; ch != nil && *ch != currentChapter {
			flushChapter()
			currentChapter = *ch
			chapterClean = true
		}

		result.Attempted++
		text, err := r.translator.Translate(segCtx, seg)
		if err != nil {
			result.Failed++
			result.FailedIDs = append(result.FailedIDs, seg.ID)
			chapterClean = false
			r.logger.Error("segment translation failed",
				logging.String(logging.FieldSegmentID, seg.ID),
				logging.Error(err))
			if lerr := r.ledger.Record(seg.ID, runlog.StatusFailure, err.Error()); lerr != nil {
				r.logger.Error("ledger append failed", logging.Error(lerr))
			}
		} else {
			result.Succeeded++
			out := seg
			out.Content = text
			translated = append(translated, out)
			lastTitle = seg.Title
			r.logger.Info("segment translated",
				logging.String(logging.FieldSegmentID, seg.ID),
				logging.Int("chars", len([]rune(text))))
			if lerr := r.ledger.Record(seg.ID, runlog.StatusSuccess, ""); lerr != nil {
				r.logger.Error("ledger append failed", logging.Error(lerr))
			}
		}

		sinceCheckpoint++
		if sinceCheckpoint >= r.cfg.checkpointEvery() {
			saveCheckpoint()
			sinceCheckpoint = 0
		}
	}

	flushChapter()
	saveCheckpoint()
	return translated
}
