package runlog

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"inkwell/internal/logging"
	"inkwell/internal/services"
)

// Status is the recorded outcome of one segment attempt.
type Status int

const (
	StatusSuccess Status = iota
	StatusFailure
)

// Serialized status tokens. The ledger file uses these localized tokens;
// everything above the parse/format boundary works with Status values.
const (
	tokenSuccess = "成功"
	tokenFailure = "失败"
)

const timeLayout = "2006-01-02 15:04:05"

func (s Status) token() string {
	if s == StatusSuccess {
		return tokenSuccess
	}
	return tokenFailure
}

// String returns a language-neutral name for logs and table output.
func (s Status) String() string {
	if s == StatusSuccess {
		return "success"
	}
	return "failure"
}

// Entry is one parsed ledger line. LineNumber is the 1-based position in
// the backing file, so derived views can point back at the exact line.
type Entry struct {
	Timestamp  time.Time
	SegmentID  string
	Status     Status
	ErrorMsg   string
	LineNumber int
}

// entryPattern matches "[<ts>] <id>: <STATUS>" with an optional trailing
// " - Error: <message>". Segment ids never contain ": " so the first
// ": " after the bracket closes the id.
var entryPattern = regexp.MustCompile(`^\[([^\]]+)\] (.+?): (` + tokenSuccess + `|` + tokenFailure + `)(?: - Error: (.*))?$`)

// Ledger is an append-only, line-oriented record of segment outcomes.
// Every Record call flushes to disk immediately so a crash mid-run loses at
// most the segment currently in flight.
type Ledger struct {
	path   string
	logger *slog.Logger
}

// NewLedger creates a ledger backed by the file at path. The file is created
// on first Record.
func NewLedger(path string, logger *slog.Logger) *Ledger {
	return &Ledger{
		path:   path,
		logger: logging.NewComponentLogger(logger, "runlog"),
	}
}

// Path returns the backing file path.
func (l *Ledger) Path() string {
	return l.path
}

// Record appends one outcome line and syncs it to disk. errMsg is recorded
// only for failures; newlines inside it are flattened so the file stays
// line-oriented.
func (l *Ledger) Record(segmentID string, status Status, errMsg string) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return services.Wrap(services.ErrPersistence, "logging", "record", "create log directory", err)
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return services.Wrap(services.ErrPersistence, "logging", "record", "open run log", err)
	}
	defer f.Close()

	line := fmt.Sprintf("[%s] %s: %s", time.Now().Format(timeLayout), segmentID, status.token())
	if status == StatusFailure && errMsg != "" {
		line += " - Error: " + flatten(errMsg)
	}
	if _, err := f.WriteString(line + "\n"); err != nil {
		return services.Wrap(services.ErrPersistence, "logging", "record", "append run log entry", err)
	}
	if err := f.Sync(); err != nil {
		l.logger.Warn("run log sync failed", logging.Error(err), logging.String("path", l.path))
	}
	return nil
}

// Parse reads every well-formed entry in file order. Blank and malformed
// lines are skipped with a warning naming the line number; they never abort
// the read. A missing file yields an empty ledger.
func (l *Ledger) Parse() ([]Entry, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, services.Wrap(services.ErrPersistence, "logging", "parse", "open run log", err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		entry, ok := parseLine(line)
		if !ok {
			l.logger.Warn("skipping malformed run log line",
				logging.Int("line", lineNo),
				logging.String("path", l.path))
			continue
		}
		entry.LineNumber = lineNo
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return entries, services.Wrap(services.ErrPersistence, "logging", "parse", "read run log", err)
	}
	return entries, nil
}

func parseLine(line string) (Entry, bool) {
	m := entryPattern.FindStringSubmatch(line)
	if m == nil {
		return Entry{}, false
	}
	ts, err := time.ParseInLocation(timeLayout, m[1], time.Local)
	if err != nil {
		return Entry{}, false
	}
	status := StatusFailure
	if m[3] == tokenSuccess {
		status = StatusSuccess
	}
	return Entry{
		Timestamp: ts,
		SegmentID: m[2],
		Status:    status,
		ErrorMsg:  m[4],
	}, true
}

// FailedIDs returns the segment ids whose most recent recorded outcome is a
// failure. The last entry for an id wins, so a failure followed by a later
// success drops out. Order follows each id's final failure position in the
// file, with no duplicates.
func (l *Ledger) FailedIDs() ([]string, error) {
	entries, err := l.Parse()
	if err != nil {
		return nil, err
	}

	latest := make(map[string]Status, len(entries))
	for _, e := range entries {
		latest[e.SegmentID] = e.Status
	}

	seen := make(map[string]bool, len(latest))
	var failed []string
	for i := len(entries) - 1; i >= 0; i-- {
		id := entries[i].SegmentID
		if seen[id] {
			continue
		}
		seen[id] = true
		if latest[id] == StatusFailure {
			failed = append(failed, id)
		}
	}
	// The reverse walk found final positions newest-first; present them in
	// file order.
	for i, j := 0, len(failed)-1; i < j; i, j = i+1, j-1 {
		failed[i], failed[j] = failed[j], failed[i]
	}
	return failed, nil
}

// ErrorCount pairs an error message with its occurrence count.
type ErrorCount struct {
	Message string
	Count   int
}

// ErrorStatistics aggregates failure entries by exact error message and
// returns them most frequent first, ties broken alphabetically.
func (l *Ledger) ErrorStatistics() ([]ErrorCount, error) {
	entries, err := l.Parse()
	if err != nil {
		return nil, err
	}

	counts := map[string]int{}
	for _, e := range entries {
		if e.Status != StatusFailure {
			continue
		}
		msg := e.ErrorMsg
		if msg == "" {
			msg = "(no error message)"
		}
		counts[msg]++
	}

	stats := make([]ErrorCount, 0, len(counts))
	for msg, n := range counts {
		stats = append(stats, ErrorCount{Message: msg, Count: n})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Message < stats[j].Message
	})
	return stats, nil
}

func flatten(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "\r", " ")
}
