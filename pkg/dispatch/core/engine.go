package core

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/merlincluster/dispatch/pkg/dispatch/types"
)

// Codec is the external wire codec collaborator: it turns an event
// header plus its kind-specific body into a length-prefixed binary
// record. Out of scope per spec.md §1 beyond this boundary.
type Codec interface {
	Encode(ev *types.Event, body any) ([]byte, error)
}

// IPC is the local IPC channel to the cluster daemon. Out of scope per
// spec.md §1 beyond this boundary; Send is expected to be non-blocking
// and to report backlog as a negative count or an error.
type IPC interface {
	Send(ev *types.Event) (int, error)
}

// PeerTransport is the per-node network transport. Out of scope per
// spec.md §1 beyond this boundary; Send is expected to be non-blocking
// and best-effort.
type PeerTransport interface {
	Send(node *types.Node, ev *types.Event) (int, error)
}

// Engine is the dispatch engine: it applies the routing mask, dedup,
// and fan-out rules of spec.md §4.3 to a single Event. It holds no
// state of its own beyond what it's handed — the dedup slot is owned
// by the caller (the Dispatcher) so several independent test engines
// can run without sharing mutable globals.
type Engine struct {
	Directory NodeDirectory
	Codec     Codec
	IPC       IPC
	Transport PeerTransport
	Metrics   types.Metrics
	Log       types.Logger
	Config    types.Config
}

func (e *Engine) metrics() types.Metrics {
	if e.Metrics == nil {
		return types.NoopMetrics{}
	}
	return e.Metrics
}

// Send runs the eight-step decision pipeline of spec.md §4.3 and
// returns the number of network recipients (advisory) or a negative
// value on a codec/selection failure. dedup is the per-call dedup slot;
// passing nil disables dedup for this call regardless of dedupEnabled.
func (e *Engine) Send(ev *types.Event, body any, dedup *DedupSlot, dedupEnabled bool) (int, error) {
	if ev == nil {
		return -1, types.ErrNilEvent
	}

	tables := e.Directory.Tables()
	numNodes := tables.NumNodes()
	wants := e.Config.Wants(ev.Header.Kind)

	// Step 1: early drop. Note the intended semantics (code != Nonet),
	// not the source's unary-not typo flagged in SPEC_FULL.md §9.
	if (numNodes == 0 && ev.Header.Code == types.CodeNonet) || !wants {
		e.debugf("not sending %s event: no nodes and no-net, or daemon doesn't want it", ev.Header.Kind)
		return 0, nil
	}

	// Step 2: encode.
	encoded, err := e.Codec.Encode(ev, body)
	if err != nil {
		return -1, fmt.Errorf("dispatch: encode %s event: %w", ev.Header.Kind, err)
	}
	if len(encoded) == 0 {
		e.Log.Errorf("header len is 0 for callback %s", ev.Header.Kind)
		return -1, types.ErrEncodeFailed
	}
	ev.Header.Length = len(encoded)

	// Step 3: dedup.
	if dedup != nil && dedup.IsDuplicate(dedupEnabled, ev.Header.Kind, encoded) {
		e.metrics().IncDupe(len(encoded))
		e.debugf("not sending %s event: duplicate packet", ev.Header.Kind)
		return 0, nil
	}

	// Step 4: local emit.
	if wants {
		n, ipcErr := e.IPC.Send(ev)
		if ipcErr != nil || n < 0 {
			if dedup != nil {
				dedup.Clear()
			}
			e.metrics().IncBacklog()
		} else if dedup != nil {
			dedup.Store(ev.Header.Kind, encoded)
		}
	}

	// Step 5: network fan-out.
	if numNodes == 0 {
		return 0, nil
	}

	// Step 6: magic destination.
	if ev.Header.Code == types.CodeNonet || ev.Header.Selection.HasMagicDestination() {
		return e.sendMagic(ev, tables)
	}

	// Step 7: broadcast vs. targeted.
	var rng []*types.Node
	broadcast := ev.Header.Selection == types.SelCtrlGeneric && ev.Header.Kind == types.KindCtrlPacket
	if broadcast {
		rng = tables.AllNodes()
	} else {
		rng = tables.PeersAndMasters()
	}

	var merr *multierror.Error
	for _, n := range rng {
		if _, sendErr := e.Transport.Send(n, ev); sendErr != nil {
			merr = multierror.Append(merr, fmt.Errorf("send to %s: %w", n.Name, sendErr))
		}
	}
	sent := len(rng)

	// A broadcast already reached every poller via AllNodes(); with no
	// pollers configured there is nothing step 8 could add either way.
	if broadcast || tables.NumPollers() == 0 {
		return sent, merr.ErrorOrNil()
	}

	// Step 8: poller subset.
	pollers, ok := e.Directory.NodesBySelection(ev.Header.Selection)
	if !ok {
		e.Log.Errorf("no matching selection for id %d", ev.Header.Selection)
		return -1, types.ErrNoSelection
	}
	for _, n := range pollers {
		if _, sendErr := e.Transport.Send(n, ev); sendErr != nil {
			merr = multierror.Append(merr, fmt.Errorf("send to %s: %w", n.Name, sendErr))
		}
	}
	sent += len(pollers)

	return sent, merr.ErrorOrNil()
}

func (e *Engine) sendMagic(ev *types.Event, tables *types.NodeTables) (int, error) {
	var merr *multierror.Error
	sent := 0
	emit := func(nodes []*types.Node) {
		for _, n := range nodes {
			if _, err := e.Transport.Send(n, ev); err != nil {
				merr = multierror.Append(merr, fmt.Errorf("send to %s: %w", n.Name, err))
			}
			sent++
		}
	}
	if ev.Header.Selection&types.SelDestMasters == types.SelDestMasters {
		emit(tables.Masters)
	}
	if ev.Header.Selection&types.SelDestPeers == types.SelDestPeers {
		emit(tables.Peers)
	}
	if ev.Header.Selection&types.SelDestPollers == types.SelDestPollers {
		emit(tables.Pollers)
	}
	return sent, merr.ErrorOrNil()
}

func (e *Engine) debugf(format string, args ...any) {
	if e.Log != nil {
		e.Log.Debugf(format, args...)
	}
}
