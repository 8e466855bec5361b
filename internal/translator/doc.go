// Package translator sends segments to an OpenAI-compatible chat completion
// API and returns the translated text. Failures are classified so the
// workflow can distinguish permanent errors from transient ones.
package translator
