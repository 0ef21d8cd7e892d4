// Package dispatch wires the load-bearing primitives of pkg/dispatch/core
// into the per-kind hook logic spec.md §4.4-§4.8 describes, and exposes
// the single Handle entry point a host process's callback trampoline
// calls into.
package dispatch

import (
	"time"

	"github.com/merlincluster/dispatch/pkg/dispatch/core"
	"github.com/merlincluster/dispatch/pkg/dispatch/types"
)

// Dispatcher is the top-level, per-process object: one per running
// cluster module instance. It owns the mutable state the core package
// deliberately keeps out of its own stateless pieces (the dedup slot,
// the notification hold slot, and the flood/heartbeat throttles), and
// binds them to a concrete Engine and its collaborators.
type Dispatcher struct {
	Self       *types.Node
	Directory  core.NodeDirectory
	Registry   core.SelectionRegistry
	Engine     *core.Engine
	Config     types.Config
	Metrics    types.Metrics
	Log        types.Logger
	Objects    core.ObjectModel
	Expiration core.ExpirationScheduler

	dedup *core.DedupSlot
	hold  *core.NotificationHoldSlot
	hooks *core.HookRegistry

	// BlockComment, when set, names the next comment expected to echo
	// back from the host process after this module itself requested its
	// deletion; the matching comment is marked NONET instead of being
	// re-broadcast (property P6). Cleared the moment it is consumed.
	BlockComment *types.CommentBody

	lastObjectID     map[types.Kind]uint64
	lastPulse        time.Time
	lastFloodWarning time.Time
	backlogged       bool
}

// New builds a Dispatcher around the given collaborators and wraps ipc so
// the dispatcher can throttle its own backlog warning without the core
// Engine needing to know anything about logging cadence.
func New(
	self *types.Node,
	dir core.NodeDirectory,
	registry core.SelectionRegistry,
	codec core.Codec,
	ipc core.IPC,
	transport core.PeerTransport,
	cfg types.Config,
	metrics types.Metrics,
	log types.Logger,
	objects core.ObjectModel,
	expiration core.ExpirationScheduler,
) *Dispatcher {
	d := &Dispatcher{
		Self:         self,
		Directory:    dir,
		Registry:     registry,
		Config:       cfg,
		Metrics:      metrics,
		Log:          log,
		Objects:      objects,
		Expiration:   expiration,
		dedup:        &core.DedupSlot{},
		hold:         &core.NotificationHoldSlot{},
		lastObjectID: map[types.Kind]uint64{},
	}
	d.Engine = &core.Engine{
		Directory: dir,
		Codec:     codec,
		IPC:       &backlogTrackingIPC{inner: ipc, onBacklog: func() { d.backlogged = true }},
		Transport: transport,
		Metrics:   metrics,
		Log:       log,
		Config:    cfg,
	}
	d.hooks = core.NewHookRegistry(d.hookTable())
	return d
}

// Init registers every hook row the current config/node-count gates
// allow, exactly as spec.md §4.8 describes.
func (d *Dispatcher) Init(host core.HostAPI) {
	tables := d.Directory.Tables()
	d.hooks.Init(d.Config, tables.NumNodes()+tables.NumPollers(), host, d.Log)
}

// Deinit deregisters every hook row, idempotently.
func (d *Dispatcher) Deinit(host core.HostAPI) { d.hooks.Deinit(host) }

// Registered reports whether kind is currently wired to the host, for
// property P7 assertions.
func (d *Dispatcher) Registered(kind types.Kind) bool { return d.hooks.Registered(kind) }

// PendingNotification reports whether the hold slot currently carries a
// notification waiting for its triggering check result to flush it.
func (d *Dispatcher) PendingNotification() bool { return d.hold.Pending() }

func (d *Dispatcher) hookTable() []core.HookRow {
	return []core.HookRow{
		{Destination: core.DestNone, Kind: types.KindHostCheck, Handler: d.hostCheckHandler},
		{Destination: core.DestNone, Kind: types.KindServiceCheck, Handler: d.serviceCheckHandler},
		{Destination: core.DestNetwork, Kind: types.KindNotification, Handler: d.notificationHandler},
		{Destination: core.DestNone, Kind: types.KindContactNotificationMethod, Handler: d.contactNotificationMethodHandler},
		{Destination: core.DestNone, Kind: types.KindComment, Handler: d.commentHandler},
		{Destination: core.DestNone, Kind: types.KindDowntime, Handler: d.downtimeHandler},
		{Destination: core.DestNetwork, Kind: types.KindExternalCommand, Handler: d.externalCommandHandler},
		{Destination: core.DestDatabase, Kind: types.KindProgramStatus, Handler: d.programStatusHandler},
		{Destination: core.DestDatabase, Kind: types.KindProcess, Handler: d.processHandler},
		{Destination: core.DestDatabase, Kind: types.KindFlapping, Handler: d.flappingHandler},
		{Destination: core.DestDatabase, Kind: types.KindHostStatus, Handler: d.ignoredHandler},
		{Destination: core.DestDatabase, Kind: types.KindServiceStatus, Handler: d.ignoredHandler},
	}
}

// Handle is the single entry point a host callback trampoline calls for
// every event. It pulses the heartbeat, dispatches to the per-kind hook,
// and throttles the flood warning before returning the hook's result.
func (d *Dispatcher) Handle(kind types.Kind, body any, inbound *types.Node) types.Result {
	d.pulseHeartbeat()
	d.backlogged = false

	var res types.Result
	switch kind {
	case types.KindHostCheck, types.KindServiceCheck:
		cr, ok := body.(*types.CheckResultBody)
		if !ok {
			d.Log.Errorf("dispatch: %s callback got the wrong body type", kind)
			res = types.Cancel("bad callback body")
			break
		}
		res = d.checkResultHook(kind, cr, inbound)
	case types.KindNotification:
		nb, ok := body.(*types.NotificationBody)
		if !ok {
			res = types.Cancel("bad callback body")
			break
		}
		res = d.notificationHook(nb, inbound)
	case types.KindContactNotificationMethod:
		cb, _ := body.(*types.ContactNotificationMethodBody)
		res = d.contactNotificationMethodHook(cb)
	case types.KindComment:
		cb, _ := body.(*types.CommentBody)
		res = d.commentHook(cb, inbound)
	case types.KindDowntime:
		db, _ := body.(*types.DowntimeBody)
		res = d.downtimeHook(db, inbound)
	case types.KindExternalCommand:
		eb, _ := body.(*types.CommandBody)
		res = d.externalCommandHook(eb, inbound)
	case types.KindFlapping, types.KindProgramStatus, types.KindProcess:
		res = d.localOnlyHook(kind, body)
	case types.KindHostStatus, types.KindServiceStatus:
		res = types.OK()
	default:
		d.Log.Errorf("dispatch: unhandled callback kind %s", kind)
		res = types.Cancel("unhandled callback kind")
	}

	if d.backlogged {
		d.warnFlood()
	}
	return res
}

// pulseHeartbeat emits a CTRL_GENERIC heartbeat to local IPC at most once
// every 15 seconds, the cadence spec.md §5 calls out for liveness
// detection. The pulse is marked NONET so it never crosses the network.
func (d *Dispatcher) pulseHeartbeat() {
	now := time.Now()
	if !d.lastPulse.IsZero() && now.Sub(d.lastPulse) < 15*time.Second {
		return
	}
	d.lastPulse = now
	ev := types.NewEvent(types.KindCtrlPacket)
	ev.Header.Selection = types.SelCtrlGeneric
	ev.Header.MarkNonet()
	if _, err := d.Engine.Send(ev, struct{}{}, nil, false); err != nil {
		d.Log.Debugf("dispatch: heartbeat pulse failed: %v", err)
	}
}

// warnFlood logs at most once every 30 seconds, regardless of how many
// callbacks reported a backlogged local IPC send in the interim.
func (d *Dispatcher) warnFlood() {
	now := time.Now()
	if !d.lastFloodWarning.IsZero() && now.Sub(d.lastFloodWarning) < 30*time.Second {
		return
	}
	d.lastFloodWarning = now
	d.Log.Warnf("dispatch: local IPC channel is backlogged; events are being dropped")
}

// dedupEnabledFor implements the identity-keyed "same object as the
// previous callback of this kind" cache spec.md §9 calls out: dedup only
// kicks in when the immediately preceding callback of the same kind
// named the same object id.
func (d *Dispatcher) dedupEnabledFor(kind types.Kind, objectID uint64) bool {
	last, ok := d.lastObjectID[kind]
	d.lastObjectID[kind] = objectID
	return ok && last == objectID
}

// backlogTrackingIPC decorates an IPC collaborator so the Dispatcher can
// throttle its own flood warning without the stateless Engine needing a
// notion of "recently".
type backlogTrackingIPC struct {
	inner     core.IPC
	onBacklog func()
}

func (b *backlogTrackingIPC) Send(ev *types.Event) (int, error) {
	n, err := b.inner.Send(ev)
	if err != nil || n < 0 {
		if b.onBacklog != nil {
			b.onBacklog()
		}
	}
	return n, err
}
