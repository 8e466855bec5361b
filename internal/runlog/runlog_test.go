package runlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"inkwell/internal/logging"
)

func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	return NewLedger(filepath.Join(t.TempDir(), "run.log"), logging.NewNop())
}

func TestRecordThenParseRoundTrip(t *testing.T) {
	ledger := newTestLedger(t)

	if err := ledger.Record("Chapter_1", StatusSuccess, ""); err != nil {
		t.Fatal(err)
	}
	if err := ledger.Record("Chapter_2", StatusFailure, "API timeout"); err != nil {
		t.Fatal(err)
	}

	entries, err := ledger.Parse()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("Parse returned %d entries, want 2", len(entries))
	}
	if entries[0].SegmentID != "Chapter_1" || entries[0].Status != StatusSuccess {
		t.Errorf("entry 0 = %+v", entries[0])
	}
	if entries[1].SegmentID != "Chapter_2" || entries[1].Status != StatusFailure {
		t.Errorf("entry 1 = %+v", entries[1])
	}
	if entries[1].ErrorMsg != "API timeout" {
		t.Errorf("ErrorMsg = %q, want %q", entries[1].ErrorMsg, "API timeout")
	}
	if entries[0].Timestamp.IsZero() {
		t.Error("timestamp not parsed")
	}
}

func TestLedgerFileFormat(t *testing.T) {
	ledger := newTestLedger(t)
	if err := ledger.Record("Volume_1_Chapter_3", StatusFailure, "connection reset"); err != nil {
		t.Fatal(err)
	}
	if err := ledger.Record("Volume_1_Chapter_4", StatusSuccess, "ignored for success"); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(ledger.Path())
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "Volume_1_Chapter_3: 失败 - Error: connection reset") {
		t.Errorf("failure line = %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], "Volume_1_Chapter_4: 成功") {
		t.Errorf("success line = %q", lines[1])
	}
	if strings.Contains(lines[1], "Error:") {
		t.Errorf("success line carries an error suffix: %q", lines[1])
	}
}

func TestRecordFlattensMultilineErrors(t *testing.T) {
	ledger := newTestLedger(t)
	if err := ledger.Record("Chapter_1", StatusFailure, "line one\nline two"); err != nil {
		t.Fatal(err)
	}

	entries, err := ledger.Parse()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].ErrorMsg != "line one line two" {
		t.Errorf("ErrorMsg = %q", entries[0].ErrorMsg)
	}
}

func TestFailedIDsLastEntryWins(t *testing.T) {
	ledger := newTestLedger(t)
	ledger.Record("seg1", StatusFailure, "boom")
	ledger.Record("seg2", StatusSuccess, "")
	ledger.Record("seg1", StatusSuccess, "")

	failed, err := ledger.FailedIDs()
	if err != nil {
		t.Fatal(err)
	}
	if len(failed) != 0 {
		t.Errorf("FailedIDs = %v, want empty after later success", failed)
	}
}

func TestFailedIDsDeduplicatesAndKeepsOrder(t *testing.T) {
	ledger := newTestLedger(t)
	ledger.Record("Chapter_3", StatusFailure, "x")
	ledger.Record("Chapter_1", StatusFailure, "y")
	ledger.Record("Chapter_3", StatusFailure, "z")
	ledger.Record("Chapter_2", StatusSuccess, "")

	failed, err := ledger.FailedIDs()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"Chapter_1", "Chapter_3"}
	if len(failed) != len(want) {
		t.Fatalf("FailedIDs = %v, want %v", failed, want)
	}
	for i := range want {
		if failed[i] != want[i] {
			t.Errorf("FailedIDs[%d] = %q, want %q", i, failed[i], want[i])
		}
	}
}

func TestParseSkipsMalformedLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.log")
	content := "[2026-01-02 10:00:00] Chapter_1: 成功\n" +
		"this line is not a ledger entry\n" +
		"\n" +
		"[2026-01-02 10:01:00] Chapter_2: 失败 - Error: bad gateway\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	ledger := NewLedger(path, logging.NewNop())
	entries, err := ledger.Parse()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("Parse returned %d entries, want 2", len(entries))
	}
	if entries[1].SegmentID != "Chapter_2" || entries[1].ErrorMsg != "bad gateway" {
		t.Errorf("entry 1 = %+v", entries[1])
	}
	if entries[0].LineNumber != 1 || entries[1].LineNumber != 4 {
		t.Errorf("line numbers = %d, %d, want 1, 4", entries[0].LineNumber, entries[1].LineNumber)
	}
}

func TestParseMissingFileReturnsEmpty(t *testing.T) {
	ledger := NewLedger(filepath.Join(t.TempDir(), "absent.log"), logging.NewNop())
	entries, err := ledger.Parse()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("got %d entries from a missing file", len(entries))
	}
}

func TestErrorStatisticsSortedByFrequency(t *testing.T) {
	ledger := newTestLedger(t)
	ledger.Record("a", StatusFailure, "timeout")
	ledger.Record("b", StatusFailure, "timeout")
	ledger.Record("c", StatusFailure, "rate limited")
	ledger.Record("d", StatusSuccess, "")
	ledger.Record("e", StatusFailure, "timeout")

	stats, err := ledger.ErrorStatistics()
	if err != nil {
		t.Fatal(err)
	}
	if len(stats) != 2 {
		t.Fatalf("got %d error groups, want 2", len(stats))
	}
	if stats[0].Message != "timeout" || stats[0].Count != 3 {
		t.Errorf("stats[0] = %+v", stats[0])
	}
	if stats[1].Message != "rate limited" || stats[1].Count != 1 {
		t.Errorf("stats[1] = %+v", stats[1])
	}
}
