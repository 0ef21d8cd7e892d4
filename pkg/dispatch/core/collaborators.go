package core

import (
	"time"

	"github.com/merlincluster/dispatch/pkg/dispatch/types"
)

// CheckKind distinguishes host from service checks for the expiration
// scheduler.
type CheckKind uint8

const (
	HostCheckKind CheckKind = iota
	ServiceCheckKind
)

func (k CheckKind) String() string {
	if k == HostCheckKind {
		return "host"
	}
	return "service"
}

// ExpirationScheduler is the external collaborator that reaps a check
// whose owning node never reports back. The dispatch core only ever
// schedules against it at PRECHECK time; it never cancels or inspects
// the schedule itself.
type ExpirationScheduler interface {
	ScheduleExpiration(kind CheckKind, node *types.Node, objectID uint64)
}

// ObjectModel is the host process's own object model, treated as an
// opaque collaborator: the dispatch core mutates a handful of
// object-level fields (the expired flag, the executing node, and
// optionally last_check) but owns none of the underlying storage.
type ObjectModel interface {
	// ClearExpired clears the "expired" flag set by a missed
	// expiration event.
	ClearExpired(objectID uint64)
	// SetCheckNode records which node executed the check that just
	// completed, preserving the passive/active check type verbatim.
	SetCheckNode(objectID uint64, node *types.Node, passive bool)
	// RewriteLastCheck rewrites the object's last_check to the check's
	// end time, gated by types.Config.RewriteLastCheckOnProcessed.
	RewriteLastCheck(objectID uint64, end time.Time)
	// IsCurrentReceiver reports whether objectID is the object the host
	// is currently re-injecting a check result for (the "current
	// receiver" pseudo-pointer of spec.md §4.4): when true, the
	// PROCESSED hook must drop without emitting to avoid re-processing
	// a check result that just arrived via the network.
	IsCurrentReceiver(objectID uint64) bool
}

// HostAPI is the host process's own callback registration mechanism,
// out of scope per spec.md §1 beyond this boundary (spec.md §6).
type HostAPI interface {
	Register(kind types.Kind, handler any)
	Deregister(kind types.Kind, handler any)
}
