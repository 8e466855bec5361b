package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable. Validation failures abort
// before any work starts.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateTranslator(); err != nil {
		return err
	}
	if err := c.validateSplitter(); err != nil {
		return err
	}
	if err := c.validateSource(); err != nil {
		return err
	}
	if err := c.validateWorkflow(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.DataDir == "" {
		return errors.New("paths.data_dir must be set")
	}
	if c.Paths.LogDir == "" {
		return errors.New("paths.log_dir must be set")
	}
	if c.Paths.OutputDir == "" {
		return errors.New("paths.output_dir must be set")
	}
	return nil
}

func (c *Config) validateTranslator() error {
	if c.Translator.BaseURL == "" {
		return errors.New("translator.base_url must be set")
	}
	if c.Translator.Model == "" {
		return errors.New("translator.model must be set")
	}
	if c.Translator.TargetLanguage == "" {
		return errors.New("translator.target_language must be set")
	}
	if c.Translator.TimeoutSeconds <= 0 {
		return errors.New("translator.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateSplitter() error {
	if c.Splitter.MaxChars <= 0 {
		return errors.New("splitter.max_chars must be positive")
	}
	if c.Splitter.MaxChapters < 0 {
		return errors.New("splitter.max_chapters must not be negative")
	}
	return nil
}

func (c *Config) validateSource() error {
	if c.Source.RequestTimeout <= 0 {
		return errors.New("source.request_timeout must be positive (seconds)")
	}
	if c.Source.RetryAttempts < 0 {
		return errors.New("source.retry_attempts must not be negative")
	}
	return nil
}

func (c *Config) validateWorkflow() error {
	if c.Workflow.CheckpointEvery <= 0 {
		return fmt.Errorf("workflow.checkpoint_every must be positive, got %d", c.Workflow.CheckpointEvery)
	}
	return nil
}

// RequireTranslatorKey verifies the API key is present. It is checked at run
// start rather than config load so read-only commands (checkpoint listing,
// log stats) work without credentials.
func (c *Config) RequireTranslatorKey() error {
	if c.Translator.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/inkwell/config.toml"
		}
		return fmt.Errorf("translator.api_key is required. Set %s env var or edit %s (create with 'inkwell config init')", EnvTranslatorAPIKey, defaultPath)
	}
	return nil
}
