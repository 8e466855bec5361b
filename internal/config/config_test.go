package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"inkwell/internal/config"
	"inkwell/internal/testsupport"
)

func TestLoadDefaultsAndEnvOverride(t *testing.T) {
	t.Setenv(config.EnvTranslatorAPIKey, "env-key")
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantData := filepath.Join(tempHome, ".local", "share", "inkwell", "data")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.Translator.APIKey != "env-key" {
		t.Fatalf("expected key from env, got %q", cfg.Translator.APIKey)
	}
	if cfg.Translator.BaseURL != config.Default().Translator.BaseURL {
		t.Fatalf("unexpected base url: %q", cfg.Translator.BaseURL)
	}
	if cfg.Splitter.MaxChars != 3000 {
		t.Fatalf("unexpected max_chars default: %d", cfg.Splitter.MaxChars)
	}
	if cfg.Workflow.CheckpointEvery != 1 {
		t.Fatalf("unexpected checkpoint_every default: %d", cfg.Workflow.CheckpointEvery)
	}
}

func TestLoadParsesFileAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := strings.Join([]string{
		"[paths]",
		`data_dir = "` + filepath.Join(dir, "data") + `"`,
		`log_dir = "` + filepath.Join(dir, "logs") + `"`,
		`output_dir = "` + filepath.Join(dir, "out") + `"`,
		"",
		"[translator]",
		`api_key = "file-key"`,
		`base_url = "https://example.test/v1/"`,
		`model = "demo-model"`,
		`target_language = " English "`,
		"timeout_seconds = 30",
	}, "\n")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to be found")
	}
	if cfg.Translator.APIKey != "file-key" {
		t.Fatalf("unexpected api key: %q", cfg.Translator.APIKey)
	}
	if cfg.Translator.BaseURL != "https://example.test/v1" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.Translator.BaseURL)
	}
	if cfg.Translator.TargetLanguage != "English" {
		t.Fatalf("expected trimmed language, got %q", cfg.Translator.TargetLanguage)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"max_chars", func(c *config.Config) { c.Splitter.MaxChars = 0 }, "splitter.max_chars"},
		{"timeout", func(c *config.Config) { c.Translator.TimeoutSeconds = 0 }, "translator.timeout_seconds"},
		{"checkpoint_every", func(c *config.Config) { c.Workflow.CheckpointEvery = 0 }, "workflow.checkpoint_every"},
		{"base_url", func(c *config.Config) { c.Translator.BaseURL = "" }, "translator.base_url"},
		{"data_dir", func(c *config.Config) { c.Paths.DataDir = "" }, "paths.data_dir"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}

func TestRequireTranslatorKey(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithTranslatorKey(""))
	if err := cfg.RequireTranslatorKey(); err == nil {
		t.Fatal("expected error when api key missing")
	}
	cfg = testsupport.NewConfig(t, testsupport.WithTranslatorKey("k"))
	if err := cfg.RequireTranslatorKey(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSampleConfigParses(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	var cfg config.Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("sample config does not parse: %v", err)
	}
	if cfg.Splitter.MaxChars != 3000 {
		t.Fatalf("sample max_chars = %d", cfg.Splitter.MaxChars)
	}
}
