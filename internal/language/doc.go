// Package language normalizes translation target language names.
//
// Users write the target language as a code ("en", "eng"), a lowercase word
// ("english"), or a display name ("English"); prompts need one canonical
// display form. All of those conversions live here so config, CLI flags, and
// the translator agree on the spelling.
package language
