// Package splitter partitions raw long-form text into translation-sized
// segments: chapter boundaries first (heading-line detection), then
// paragraph-boundary packing for chapters that exceed the size bound.
package splitter
