package main

import (
	"os"
	"path/filepath"
	"testing"

	"inkwell/internal/checkpoint"
	"inkwell/internal/logging"
	"inkwell/internal/runlog"
	"inkwell/internal/textutil"
)

func TestVersionCommand(t *testing.T) {
	out, _, err := runCLI(t, []string{"version"}, "")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	requireContains(t, out, "inkwell")
}

func TestConfigInit(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err := runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")

	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	_, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err == nil {
		t.Fatal("second init without --overwrite should fail")
	}
}

func TestConfigShow(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, []string{"config", "show", "--config", env.configPath}, "")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "Config path:")
	requireContains(t, out, "translator.model")
}

func TestSplitCommandWritesSegments(t *testing.T) {
	env := setupCLITestEnv(t)
	sourcePath := filepath.Join(env.baseDir, "novel.txt")
	content := "第一章 出发\n\n他背起行囊。\n\n第二章 山路\n\n山路崎岖。\n"
	if err := os.WriteFile(sourcePath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	target := filepath.Join(env.baseDir, "segments.yaml")
	out, _, err := runCLI(t, []string{"split", sourcePath, "--output", target}, env.configPath)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	requireContains(t, out, "Wrote 2 segment(s)")

	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected segments file at %s: %v", target, err)
	}
}

func TestCheckpointsListAndDelete(t *testing.T) {
	env := setupCLITestEnv(t)

	store := checkpoint.NewStore(filepath.Join(env.dataDir, "checkpoints"), logging.NewNop())
	if !store.Save("Sword of Dawn", 7, "", "第七章") {
		t.Fatal("seed checkpoint failed")
	}

	out, _, err := runCLI(t, []string{"checkpoints", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("checkpoints list: %v", err)
	}
	requireContains(t, out, "Sword of Dawn")
	requireContains(t, out, "7")

	out, _, err = runCLI(t, []string{"checkpoints", "delete", "Sword of Dawn"}, env.configPath)
	if err != nil {
		t.Fatalf("checkpoints delete: %v", err)
	}
	requireContains(t, out, "Deleted checkpoint")

	out, _, err = runCLI(t, []string{"checkpoints", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("checkpoints list after delete: %v", err)
	}
	requireContains(t, out, "No checkpoints found")
}

func TestLogFailedAndStats(t *testing.T) {
	env := setupCLITestEnv(t)

	logPath := filepath.Join(env.dataDir, textutil.SanitizeUnitName("my novel")+"_run.log")
	ledger := runlog.NewLedger(logPath, logging.NewNop())
	ledger.Record("Chapter_1", runlog.StatusSuccess, "")
	ledger.Record("Chapter_2", runlog.StatusFailure, "timeout")

	out, _, err := runCLI(t, []string{"log", "failed", "my novel"}, env.configPath)
	if err != nil {
		t.Fatalf("log failed: %v", err)
	}
	requireContains(t, out, "Chapter_2")

	out, _, err = runCLI(t, []string{"log", "stats", "my novel"}, env.configPath)
	if err != nil {
		t.Fatalf("log stats: %v", err)
	}
	requireContains(t, out, "timeout")
	requireContains(t, out, "1 failure")
}
