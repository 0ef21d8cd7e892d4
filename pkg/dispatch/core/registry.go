package core

import "github.com/merlincluster/dispatch/pkg/dispatch/types"

// Destination names which external gate a hook row is subject to,
// beyond the enabled-kind bitmask.
type Destination uint8

const (
	// DestNone rows are always registered once their bit is set.
	DestNone Destination = iota
	// DestDatabase rows are skipped when no database is configured.
	DestDatabase
	// DestNetwork rows are skipped when no peers are configured.
	DestNetwork
)

// HookRow is one entry of the static (destination, kind, handler) table
// spec.md §4.8 describes.
type HookRow struct {
	Destination Destination
	Kind        types.Kind
	Handler     any
}

// HookRegistry wires a static hook table to the host process's
// callback-registration mechanism, gated by the init-time mask, the
// use_database flag, and peer presence. Registration and
// deregistration are idempotent: rows skipped at Init are simply never
// handed to the HostAPI, and Deinit deregisters every row regardless of
// whether it was registered, relying on the HostAPI to ignore unknown
// handlers gracefully (spec.md §4.8).
type HookRegistry struct {
	rows []HookRow
	// registered mirrors which rows actually made it through Init's
	// gates, purely so tests can assert property P7 without a fake
	// HostAPI recording calls.
	registered map[types.Kind]bool
}

// NewHookRegistry builds a registry from the given static table.
func NewHookRegistry(rows []HookRow) *HookRegistry {
	return &HookRegistry{rows: rows, registered: map[types.Kind]bool{}}
}

// Init registers every row whose gates pass: its bit is set in mask,
// its database destination isn't skipped by !useDatabase, and its
// network destination isn't skipped by numPeers+numMasters+numPollers
// == 0.
func (r *HookRegistry) Init(cfg types.Config, numNodes int, host HostAPI, log types.Logger) {
	for _, row := range r.rows {
		if row.Destination == DestDatabase && !cfg.UseDatabase {
			if log != nil {
				log.Debugf("not using database. ignoring %s events", row.Kind)
			}
			continue
		}
		if row.Destination == DestNetwork && numNodes == 0 {
			if log != nil {
				log.Debugf("no nodes configured. ignoring %s events", row.Kind)
			}
			continue
		}
		if !cfg.Wants(row.Kind) {
			if log != nil {
				log.Debugf("eventfilter: ignoring %s events", row.Kind)
			}
			continue
		}
		host.Register(row.Kind, row.Handler)
		r.registered[row.Kind] = true
	}
}

// Deinit deregisters every row, idempotently.
func (r *HookRegistry) Deinit(host HostAPI) {
	for _, row := range r.rows {
		host.Deregister(row.Kind, row.Handler)
	}
	r.registered = map[types.Kind]bool{}
}

// Registered reports whether kind was actually wired to the host at the
// last Init call.
func (r *HookRegistry) Registered(kind types.Kind) bool { return r.registered[kind] }
