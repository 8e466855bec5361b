// Package source acquires raw novel text, either by fetching and cleaning a
// web page or by reading a local file, and normalizes it for splitting.
package source
