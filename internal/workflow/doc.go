// Package workflow orchestrates a translation run end to end: it locks the
// unit-of-work, obtains segments, translates them sequentially, records
// every outcome in the run ledger, advances the checkpoint, and merges the
// translated output into a readable document.
package workflow
