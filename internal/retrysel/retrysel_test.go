package retrysel

import (
	"errors"
	"testing"

	"inkwell/internal/logging"
	"inkwell/internal/segment"
	"inkwell/internal/services"
)

func sourceSegments() []segment.Segment {
	return []segment.Segment{
		{ID: "Chapter_1", Title: "第一章", Content: "one"},
		{ID: "Chapter_2", Title: "第二章", Content: "two"},
		{ID: "Chapter_3", Title: "间奏", Content: "three"},
	}
}

func TestSelectReturnsOnlyFailedSegments(t *testing.T) {
	sel := New(logging.NewNop()).Select([]string{"Chapter_2"}, sourceSegments())

	if len(sel.Segments) != 1 {
		t.Fatalf("got %d segments, want 1", len(sel.Segments))
	}
	got := sel.Segments[0]
	if got.ID != "Chapter_2" || got.Title != "第二章" || got.Content != "two" {
		t.Errorf("segment attributes changed: %+v", got)
	}
	if len(sel.Missing) != 0 {
		t.Errorf("Missing = %v, want empty", sel.Missing)
	}
	if err := sel.Err(); err != nil {
		t.Errorf("Err = %v, want nil", err)
	}
}

func TestSelectPreservesSourceOrder(t *testing.T) {
	sel := New(logging.NewNop()).Select([]string{"Chapter_3", "Chapter_1"}, sourceSegments())

	if len(sel.Segments) != 2 {
		t.Fatalf("got %d segments, want 2", len(sel.Segments))
	}
	if sel.Segments[0].ID != "Chapter_1" || sel.Segments[1].ID != "Chapter_3" {
		t.Errorf("order = [%s, %s], want source order", sel.Segments[0].ID, sel.Segments[1].ID)
	}
}

func TestSelectReportsMissingIDs(t *testing.T) {
	sel := New(logging.NewNop()).Select([]string{"Chapter_2", "Chapter_9"}, sourceSegments())

	if len(sel.Segments) != 1 || sel.Segments[0].ID != "Chapter_2" {
		t.Errorf("Segments = %+v", sel.Segments)
	}
	if len(sel.Missing) != 1 || sel.Missing[0] != "Chapter_9" {
		t.Errorf("Missing = %v, want [Chapter_9]", sel.Missing)
	}
	err := sel.Err()
	if err == nil {
		t.Fatal("Err = nil, want consistency error")
	}
	if !errors.Is(err, services.ErrConsistency) {
		t.Errorf("Err = %v, want ErrConsistency", err)
	}
}

func TestSelectEmptyFailedList(t *testing.T) {
	sel := New(logging.NewNop()).Select(nil, sourceSegments())
	if len(sel.Segments) != 0 || len(sel.Missing) != 0 {
		t.Errorf("Selection = %+v, want empty", sel)
	}
}
