// Package config loads, normalizes, and validates inkwell configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// INKWELL_TRANSLATOR_API_KEY (including .env files). The Config type
// centralizes every knob the CLI needs so downstream code receives sanitized
// paths, canonical log formats, and clear validation errors.
package config
