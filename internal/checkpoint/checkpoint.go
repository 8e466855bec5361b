package checkpoint

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"inkwell/internal/logging"
	"inkwell/internal/textutil"
)

// fileSuffix is the fixed suffix appended to the sanitized unit name. The
// combination is the deterministic checkpoint filename contract.
const fileSuffix = "_checkpoint.json"

// Checkpoint is the persisted resume state for one named unit-of-work.
// Absence of a checkpoint means "start from scratch".
type Checkpoint struct {
	SeriesName   string    `json:"series_name"`
	ChapterCount int       `json:"chapter_count"`
	LastURL      string    `json:"last_url"`
	LastTitle    string    `json:"last_title"`
	Timestamp    time.Time `json:"timestamp"`
	LastUpdated  time.Time `json:"last_updated"`
}

// Store persists one checkpoint file per unit-of-work under a root
// directory. Persistence errors never escape the store: failures are logged
// and reported through boolean or nil results so a broken disk cannot crash
// an otherwise-successful run.
type Store struct {
	dir    string
	logger *slog.Logger
}

// NewStore creates a checkpoint store rooted at dir.
func NewStore(dir string, logger *slog.Logger) *Store {
	return &Store{
		dir:    dir,
		logger: logging.NewComponentLogger(logger, "checkpoint"),
	}
}

// Path returns the checkpoint file path for a unit name.
func (s *Store) Path(unitName string) string {
	return filepath.Join(s.dir, textutil.SanitizeUnitName(unitName)+fileSuffix)
}

// Save writes a full checkpoint atomically, overwriting any prior checkpoint
// for the unit. There is no checkpoint history, only the latest. Returns
// false when persistence fails.
func (s *Store) Save(unitName string, chapterCount int, lastURL, lastTitle string) bool {
	if strings.TrimSpace(unitName) == "" {
		s.logger.Warn("refusing to save checkpoint without a unit name")
		return false
	}
	now := time.Now().UTC()
	cp := Checkpoint{
		SeriesName:   unitName,
		ChapterCount: chapterCount,
		LastURL:      lastURL,
		LastTitle:    lastTitle,
		Timestamp:    now,
		LastUpdated:  now,
	}
	if existing := s.Load(unitName); existing != nil {
		cp.Timestamp = existing.Timestamp
	}

	data, err := json.MarshalIndent(cp, "", "  ")
	if err != nil {
		s.logger.Error("marshal checkpoint failed", logging.Error(err), logging.String(logging.FieldUnit, unitName))
		return false
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		s.logger.Error("create checkpoint directory failed", logging.Error(err), logging.String("dir", s.dir))
		return false
	}

	path := s.Path(unitName)
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		s.logger.Error("write checkpoint failed", logging.Error(err), logging.String("path", tmpPath))
		return false
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		s.logger.Error("rename checkpoint failed", logging.Error(err), logging.String("path", path))
		return false
	}

	s.logger.Debug("checkpoint saved",
		logging.String(logging.FieldUnit, unitName),
		logging.Int("chapter_count", chapterCount),
		logging.String("last_title", lastTitle))
	return true
}

// Load reads the checkpoint for a unit. A nil result means no usable
// checkpoint exists, which is a normal outcome for a new unit-of-work.
func (s *Store) Load(unitName string) *Checkpoint {
	data, err := os.ReadFile(s.Path(unitName))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("read checkpoint failed", logging.Error(err), logging.String(logging.FieldUnit, unitName))
		}
		return nil
	}
	var cp Checkpoint
	if err := json.Unmarshal(data, &cp); err != nil {
		s.logger.Warn("checkpoint file is corrupt",
			logging.Error(err),
			logging.String(logging.FieldUnit, unitName),
			logging.String(logging.FieldErrorHint, "delete the checkpoint to start over"))
		return nil
	}
	return &cp
}

// Exists reports whether a checkpoint file is present for the unit.
func (s *Store) Exists(unitName string) bool {
	info, err := os.Stat(s.Path(unitName))
	return err == nil && !info.IsDir()
}

// Delete removes the checkpoint for a unit. Deleting a nonexistent
// checkpoint returns false, not an error.
func (s *Store) Delete(unitName string) bool {
	err := os.Remove(s.Path(unitName))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("delete checkpoint failed", logging.Error(err), logging.String(logging.FieldUnit, unitName))
		}
		return false
	}
	s.logger.Debug("checkpoint deleted", logging.String(logging.FieldUnit, unitName))
	return true
}

// ListAll returns every readable checkpoint, newest first. Unreadable or
// corrupt entries are skipped so one bad file cannot hide the rest.
func (s *Store) ListAll() []Checkpoint {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("list checkpoints failed", logging.Error(err), logging.String("dir", s.dir))
		}
		return nil
	}

	var checkpoints []Checkpoint
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), fileSuffix) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			s.logger.Debug("skipping unreadable checkpoint", logging.Error(err), logging.String("file", entry.Name()))
			continue
		}
		var cp Checkpoint
		if err := json.Unmarshal(data, &cp); err != nil {
			s.logger.Debug("skipping corrupt checkpoint", logging.Error(err), logging.String("file", entry.Name()))
			continue
		}
		checkpoints = append(checkpoints, cp)
	}

	sort.Slice(checkpoints, func(i, j int) bool {
		return checkpoints[i].LastUpdated.After(checkpoints[j].LastUpdated)
	})
	return checkpoints
}
