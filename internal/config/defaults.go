package config

const (
	defaultDataDir                  = "~/.local/share/inkwell/data"
	defaultLogDir                   = "~/.local/share/inkwell/logs"
	defaultOutputDir                = "~/.local/share/inkwell/output"
	defaultTranslatorBaseURL        = "https://api.deepseek.com"
	defaultTranslatorModel          = "deepseek-chat"
	defaultTranslatorTargetLanguage = "English"
	defaultTranslatorTimeoutSeconds = 120
	defaultSplitterMaxChars         = 3000
	defaultSourceUserAgent          = "inkwell/1.0"
	defaultSourceRequestTimeout     = 30
	defaultSourceRetryAttempts      = 3
	defaultWorkflowCheckpointEvery  = 1
	defaultLogFormat                = "console"
	defaultLogLevel                 = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:   defaultDataDir,
			LogDir:    defaultLogDir,
			OutputDir: defaultOutputDir,
		},
		Translator: Translator{
			BaseURL:        defaultTranslatorBaseURL,
			Model:          defaultTranslatorModel,
			TargetLanguage: defaultTranslatorTargetLanguage,
			TimeoutSeconds: defaultTranslatorTimeoutSeconds,
		},
		Splitter: Splitter{
			MaxChars: defaultSplitterMaxChars,
		},
		Source: Source{
			UserAgent:      defaultSourceUserAgent,
			RequestTimeout: defaultSourceRequestTimeout,
			RetryAttempts:  defaultSourceRetryAttempts,
		},
		Workflow: Workflow{
			CheckpointEvery: defaultWorkflowCheckpointEvery,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
