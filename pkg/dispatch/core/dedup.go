package core

import (
	"bytes"

	"github.com/merlincluster/dispatch/pkg/dispatch/types"
)

// DedupSlot is the one-slot cache of the last emitted event: it drops
// exact repeats when enabled. The slot persists across callbacks and is
// emptied only by Clear; whether it applies is decided per call by the
// engine's caller. It is safe without locking only because of the
// single-threaded cooperative contract documented in spec.md §5.
type DedupSlot struct {
	lastBytes []byte
	lastKind  types.Kind
	valid     bool
}

// IsDuplicate reports whether encoded is byte-identical to the last
// successfully emitted event of the same kind, and the slot is enabled
// for this call.
func (d *DedupSlot) IsDuplicate(enabled bool, kind types.Kind, encoded []byte) bool {
	if !enabled || !d.valid {
		return false
	}
	return d.lastKind == kind && bytes.Equal(d.lastBytes, encoded)
}

// Store records a successfully emitted event so a later identical emit
// can be recognized as a duplicate.
func (d *DedupSlot) Store(kind types.Kind, encoded []byte) {
	cp := make([]byte, len(encoded))
	copy(cp, encoded)
	d.lastBytes = cp
	d.lastKind = kind
	d.valid = true
}

// Clear empties the slot, e.g. after a local-IPC send failure: a packet
// that never reached local IPC must not suppress a legitimate retry.
func (d *DedupSlot) Clear() {
	d.lastBytes = nil
	d.valid = false
}
