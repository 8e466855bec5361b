// Package segment defines the atomic unit of translation work: the segment
// record, the deterministic identifier scheme that names it, the
// chapter/interlude classifier that types it, and the YAML interchange format
// that carries it between pipeline components.
package segment
