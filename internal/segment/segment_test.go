package segment_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"inkwell/internal/segment"
	"inkwell/internal/services"
)

func TestWriteAndLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "segments.yaml")
	in := []segment.Segment{
		{ID: "Chapter_1", Title: "第1章 启程", Content: "first paragraph\n\nsecond paragraph"},
		{ID: "Chapter_2", Title: "第2章", Content: "body"},
		{ID: "Chapter_2_Segment_2", Title: "第2章", Content: "more body"},
	}
	if err := segment.WriteFile(path, in); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	out, err := segment.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("expected %d segments, got %d", len(in), len(out))
	}
	for i := range in {
		if out[i].ID != in[i].ID || out[i].Title != in[i].Title || out[i].Content != in[i].Content {
			t.Fatalf("segment %d mismatch: %+v vs %+v", i, out[i], in[i])
		}
	}
	if out[0].Kind != segment.KindChapter || out[0].Number == nil || *out[0].Number != 1 {
		t.Fatalf("derived fields not populated: %+v", out[0])
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := segment.LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, services.ErrSourceNotFound) {
		t.Fatalf("expected source-not-found, got %v", err)
	}
}

func TestDecodeRejectsDuplicateIDs(t *testing.T) {
	doc := strings.Join([]string{
		"- id: Chapter_1",
		"  title: a",
		"  content: x",
		"- id: Chapter_1",
		"  title: b",
		"  content: y",
	}, "\n")
	if _, err := segment.Decode([]byte(doc)); err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("expected duplicate id error, got %v", err)
	}
}

func TestDecodeRejectsEmptyID(t *testing.T) {
	doc := "- id: \"\"\n  title: a\n  content: x\n"
	if _, err := segment.Decode([]byte(doc)); err == nil {
		t.Fatal("expected error for empty id")
	}
}

func TestLoadFileCorruptYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(path, []byte(":\t not yaml ["), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := segment.LoadFile(path); !errors.Is(err, services.ErrPersistence) {
		t.Fatalf("expected persistence error, got %v", err)
	}
}
