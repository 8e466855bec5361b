// Package runlog maintains the append-only outcome ledger for a run. Each
// line records one segment attempt; the ledger is both the human-readable
// progress log and the machine-readable input for retry selection.
package runlog
