package services_test

import (
	"errors"
	"strings"
	"testing"

	"inkwell/internal/services"
)

func TestWrapTagsMarker(t *testing.T) {
	base := errors.New("connection refused")
	err := services.Wrap(services.ErrTranslation, "translating", "call api", "request failed", base)
	if !errors.Is(err, services.ErrTranslation) {
		t.Fatalf("expected translation marker, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
	if !strings.Contains(err.Error(), "translating: call api: request failed") {
		t.Fatalf("unexpected detail: %v", err)
	}
}

func TestWrapDefaultsToTransient(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected default detail, got %v", err)
	}
}

func TestIsFatal(t *testing.T) {
	if !services.IsFatal(services.Wrap(services.ErrConfiguration, "config", "load", "missing api key", nil)) {
		t.Fatal("configuration errors are fatal")
	}
	if !services.IsFatal(services.Wrap(services.ErrSourceNotFound, "source", "open", "no such file", nil)) {
		t.Fatal("missing sources are fatal")
	}
	if services.IsFatal(services.Wrap(services.ErrTranslation, "translating", "call", "boom", nil)) {
		t.Fatal("translation failures are per-segment, not fatal")
	}
}
