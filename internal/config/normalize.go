package config

import (
	"strings"

	"inkwell/internal/language"
)

// normalize expands home-relative paths and trims string fields so the rest
// of the pipeline never has to reason about "~" or stray whitespace.
func (c *Config) normalize() error {
	for _, field := range []*string{&c.Paths.DataDir, &c.Paths.LogDir, &c.Paths.OutputDir} {
		trimmed := strings.TrimSpace(*field)
		if trimmed == "" {
			*field = ""
			continue
		}
		expanded, err := expandPath(trimmed)
		if err != nil {
			return err
		}
		*field = expanded
	}

	c.Translator.APIKey = strings.TrimSpace(c.Translator.APIKey)
	c.Translator.BaseURL = strings.TrimRight(strings.TrimSpace(c.Translator.BaseURL), "/")
	c.Translator.Model = strings.TrimSpace(c.Translator.Model)
	c.Translator.TargetLanguage = language.Canonical(c.Translator.TargetLanguage)
	c.Source.UserAgent = strings.TrimSpace(c.Source.UserAgent)
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	return nil
}
