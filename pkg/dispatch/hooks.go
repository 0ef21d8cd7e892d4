package dispatch

import (
	"fmt"

	"github.com/merlincluster/dispatch/pkg/dispatch/core"
	"github.com/merlincluster/dispatch/pkg/dispatch/types"
)

// The hostCheckHandler/serviceCheckHandler/... methods below are the
// values registered with the host's callback mechanism (see hookTable).
// Each is a thin adapter from the host's native per-kind signature into
// Handle, so HookRegistry can treat every row as an opaque `any` without
// this package losing the per-kind type safety its own logic wants.

func (d *Dispatcher) hostCheckHandler(body *types.CheckResultBody, inbound *types.Node) types.Result {
	return d.Handle(types.KindHostCheck, body, inbound)
}

func (d *Dispatcher) serviceCheckHandler(body *types.CheckResultBody, inbound *types.Node) types.Result {
	return d.Handle(types.KindServiceCheck, body, inbound)
}

func (d *Dispatcher) notificationHandler(body *types.NotificationBody, inbound *types.Node) types.Result {
	return d.Handle(types.KindNotification, body, inbound)
}

func (d *Dispatcher) contactNotificationMethodHandler(body *types.ContactNotificationMethodBody, inbound *types.Node) types.Result {
	return d.Handle(types.KindContactNotificationMethod, body, inbound)
}

func (d *Dispatcher) commentHandler(body *types.CommentBody, inbound *types.Node) types.Result {
	return d.Handle(types.KindComment, body, inbound)
}

func (d *Dispatcher) downtimeHandler(body *types.DowntimeBody, inbound *types.Node) types.Result {
	return d.Handle(types.KindDowntime, body, inbound)
}

func (d *Dispatcher) externalCommandHandler(body *types.CommandBody, inbound *types.Node) types.Result {
	return d.Handle(types.KindExternalCommand, body, inbound)
}

func (d *Dispatcher) programStatusHandler(body any, inbound *types.Node) types.Result {
	return d.Handle(types.KindProgramStatus, body, inbound)
}

func (d *Dispatcher) processHandler(body any, inbound *types.Node) types.Result {
	return d.Handle(types.KindProcess, body, inbound)
}

func (d *Dispatcher) flappingHandler(body any, inbound *types.Node) types.Result {
	return d.Handle(types.KindFlapping, body, inbound)
}

func (d *Dispatcher) ignoredHandler(body any, inbound *types.Node) types.Result {
	return types.OK()
}

// checkResultHook implements the symmetric host/service check-result
// hook of spec.md §4.4. The PRECHECK phases only ever decide whether
// this node is allowed to run the check at all; PROCESSED does the
// actual routing.
func (d *Dispatcher) checkResultHook(kind types.Kind, body *types.CheckResultBody, inbound *types.Node) types.Result {
	checkKind := core.HostCheckKind
	if kind == types.KindServiceCheck {
		checkKind = core.ServiceCheckKind
	}

	switch body.Phase {
	case types.PrecheckAsync, types.PrecheckSync:
		node := core.NodeForCheck(d.Directory, body.ObjectID)
		d.Expiration.ScheduleExpiration(checkKind, node, body.ObjectID)
		if node.Kind != types.NodeSelf {
			d.metrics().IncCheckOwner(checkKind.String(), "peer")
			return types.Cancel(fmt.Sprintf("%s owns this check", node.Name))
		}
		d.metrics().IncCheckOwner(checkKind.String(), "self")
		return types.OK()

	case types.Processed:
		d.Objects.ClearExpired(body.ObjectID)

		ev := types.NewEvent(kind)
		if inbound != nil {
			ev.Header.MarkNonet()
			d.Objects.SetCheckNode(body.ObjectID, inbound, body.CheckType == types.CheckPassive)
		} else {
			ev.Header.Selection = types.SelPeersMasters
			d.Objects.SetCheckNode(body.ObjectID, d.Self, body.CheckType == types.CheckPassive)
		}

		if d.Objects.IsCurrentReceiver(body.ObjectID) {
			// This PROCESSED callback is the host re-injecting a result
			// that just arrived over the network; don't re-broadcast it.
			// Anything already parked in the hold slot stays there for
			// the real triggering check result to flush.
			return types.OK()
		}

		if d.Config.RewriteLastCheckOnProcessed {
			d.Objects.RewriteLastCheck(body.ObjectID, body.EndTime)
		}

		dedup := d.dedupEnabledFor(kind, body.ObjectID)
		n, err := d.Engine.Send(ev, body, d.dedup, dedup)
		if err != nil {
			d.Log.Debugf("dispatch: sending %s result for object %d: %v", kind, body.ObjectID, err)
		}

		// A check result always precedes any notification it triggered
		// on the wire (property P3): flush whatever the notification
		// hook parked during this same callback chain.
		d.flushHeld()

		return types.Result{ReturnCode: n}
	}

	return types.OK()
}

func (d *Dispatcher) flushHeld() {
	held := d.hold.Flush()
	if held == nil {
		return
	}
	if n, err := d.Engine.Send(held.Event, held.Body, nil, false); err != nil {
		d.Log.Debugf("dispatch: sending held notification: %v (sent to %d)", err, n)
	}
}

// notificationHook implements spec.md §4.5: NOTIFICATION_START runs the
// ten-rule decision table; NOTIFICATION_END either sends immediately
// (custom reason, or the event arrived from the network) or parks the
// packet in the hold slot for the triggering check result to flush.
func (d *Dispatcher) notificationHook(body *types.NotificationBody, inbound *types.Node) types.Result {
	switch body.Phase {
	case types.NotificationEnd:
		ev := types.NewEvent(types.KindNotification)
		ev.Header.Selection = types.SelPeersMasters

		if inbound != nil || body.Reason == types.ReasonCustom {
			n, err := d.Engine.Send(ev, body, nil, false)
			if err != nil {
				d.Log.Debugf("dispatch: sending notification end: %v", err)
			}
			return types.Result{ReturnCode: n}
		}

		if err := d.hold.Hold(ev, body); err != nil {
			d.Log.Errorf("dispatch: notification hold slot already occupied: %v", err)
			return types.Cancel("notification already held")
		}
		return types.OK()

	case types.NotificationStart:
		return d.notificationDecision(body, inbound)
	}
	return types.OK()
}

func (d *Dispatcher) notificationDecision(body *types.NotificationBody, inbound *types.Node) types.Result {
	tables := d.Directory.Tables()
	activePeers := tables.NumPeers()
	owner := core.Owner(body.ObjectID, activePeers+1)

	outcome := func(result string) {
		d.metrics().IncNotifyOutcome(body.Reason.String(), body.Type.String(), body.CheckType.String(), result)
	}
	ownerName := func() string {
		if n, ok := d.Directory.NodeByID(owner); ok {
			return n.Name
		}
		return "<unknown>"
	}

	// Rule 1: a master is online and we aren't allowed to notify
	// ourselves; always defer.
	if tables.AnyMasterOnline() && !d.Self.Notifies() {
		outcome("master")
		return types.Cancel("a master is online and will send this notification")
	}

	if inbound != nil {
		// Rule 2: the event arrived from a poller that notifies on its
		// own behalf; it already decided to send.
		if inbound.Kind == types.NodePoller && inbound.Notifies() {
			outcome("poller")
			return types.Cancel(fmt.Sprintf("poller %s already handled this notification", inbound.Name))
		}
		// Rule 3: the event arrived from the peer that owns this object;
		// it already decided to send.
		if inbound.Kind == types.NodePeer && inbound.ID == owner {
			outcome("peer")
			return types.Cancel(fmt.Sprintf("owning peer %s already handled this notification", inbound.Name))
		}
		// Rule 4: no peers at all, or we own this object ourselves -
		// send locally regardless of where the event came from.
		if activePeers == 0 || core.ShouldRunLocally(body.ObjectID, activePeers, d.Self.ID) {
			outcome("sent")
			return types.OK()
		}
		// Rule 5: some other peer owns it; defer.
		outcome("peer")
		return types.Cancel(fmt.Sprintf("peer %s is supposed to handle this notification", ownerName()))
	}

	// Rule 6: passive, normal-reason notifications always send locally -
	// there's no other node that could have originated the check.
	if body.CheckType == types.CheckPassive && body.Reason == types.ReasonNormal {
		outcome("sent")
		return types.OK()
	}
	// Rule 7: no peers to defer to.
	if activePeers == 0 {
		outcome("sent")
		return types.OK()
	}
	// Rule 8: acknowledgement and custom notifications always send from
	// whichever node the operator or plugin triggered them on.
	if body.Reason == types.ReasonAcknowledgement || body.Reason == types.ReasonCustom {
		outcome("sent")
		return types.OK()
	}
	// Rule 9: we own this object ourselves.
	if core.ShouldRunLocally(body.ObjectID, activePeers, d.Self.ID) {
		outcome("sent")
		return types.OK()
	}
	// Rule 10: some other peer owns it; defer.
	outcome("peer")
	return types.Cancel(fmt.Sprintf("peer %s is supposed to send this notification", ownerName()))
}

// contactNotificationMethodHook forwards only the end of a per-contact
// notification method, mirroring the notification packet's own
// start/end asymmetry; the start carries nothing peers need.
func (d *Dispatcher) contactNotificationMethodHook(body *types.ContactNotificationMethodBody) types.Result {
	if body == nil || body.Phase != types.ContactMethodEnd {
		return types.OK()
	}
	ev := types.NewEvent(types.KindContactNotificationMethod)
	ev.Header.Selection = types.SelPeersMasters
	n, err := d.Engine.Send(ev, body, nil, false)
	if err != nil {
		d.Log.Debugf("dispatch: sending contact notification method: %v", err)
	}
	return types.Result{ReturnCode: n}
}

// commentHook implements spec.md §4.6: only CommentLoad and
// CommentDelete are forwarded (CommentAdd is the host's own
// not-yet-persisted echo); downtime- and acknowledgement-originated
// comments are local-only unless they're being deleted; and a pending
// BlockComment suppresses exactly the one matching echo it was set for
// (property P6).
func (d *Dispatcher) commentHook(body *types.CommentBody, inbound *types.Node) types.Result {
	if body == nil || body.Phase == types.CommentAdd {
		return types.OK()
	}
	if inbound != nil {
		return types.OK()
	}

	ev := types.NewEvent(types.KindComment)

	if body.EntryType == types.CommentDowntimeEntry && body.Phase != types.CommentDelete {
		ev.Header.MarkNonet()
	}
	if body.EntryType == types.CommentAcknowledgementEntry && body.Phase != types.CommentDelete {
		ev.Header.MarkNonet()
	}

	matched := ev.Header.Code != types.CodeNonet && d.BlockComment != nil && d.BlockComment.Matches(body)
	if matched {
		d.Log.Debugf("dispatch: comment matches pending block comment, marking nonet")
		ev.Header.MarkNonet()
		d.BlockComment = nil
	} else {
		if d.BlockComment != nil {
			d.Log.Debugf("dispatch: pending block comment doesn't match this one")
		}
		ev.Header.Selection = core.SelectionForHostname(d.Registry, body.HostName)
	}

	n, err := d.Engine.Send(ev, body, nil, false)
	if err != nil {
		d.Log.Debugf("dispatch: sending comment: %v", err)
	}
	return types.Result{ReturnCode: n}
}

// downtimeHook implements spec.md §4.6: downtime scheduling/expiry stays
// local (NONET) except a user cancelling downtime early, which routes
// like a normal per-host event so peers clear their own copy.
func (d *Dispatcher) downtimeHook(body *types.DowntimeBody, inbound *types.Node) types.Result {
	if body == nil || inbound != nil {
		return types.OK()
	}
	ev := types.NewEvent(types.KindDowntime)
	if body.Attr == types.DowntimeStopCancelled {
		ev.Header.Selection = core.SelectionForHostname(d.Registry, body.HostName)
	} else {
		ev.Header.MarkNonet()
	}
	n, err := d.Engine.Send(ev, body, nil, false)
	if err != nil {
		d.Log.Debugf("dispatch: sending downtime: %v", err)
	}
	return types.Result{ReturnCode: n}
}

// externalCommandHook classifies body.ID into a CommandCategory (see
// CommandID.Category) and routes on it. Commands that merely duplicate
// data a dedicated comment/downtime event already carries are dropped
// outright; the rest pick a selection and, for
// CmdProcessCheckResultOrCustomNotification, additionally cancel local
// execution when another node owns the named object.
func (d *Dispatcher) externalCommandHook(body *types.CommandBody, inbound *types.Node) types.Result {
	if body == nil || body.Phase != types.CommandStart {
		return types.OK()
	}
	category := body.ID.Category()
	if category == types.CmdCommentOrDowntimeID {
		return types.OK()
	}

	ev := types.NewEvent(types.KindExternalCommand)
	var cancelReason string

	switch category {
	case types.CmdProcessCheckResultOrCustomNotification:
		if inbound == nil {
			ev.Header.Selection = core.SelectionForHostname(d.Registry, body.FirstArg())
		}
		if owner := core.NodeForCheck(d.Directory, body.ObjectID); owner.Kind != types.NodeSelf {
			cancelReason = fmt.Sprintf("%s owns this object", owner.Name)
		}
	case types.CmdPerHostService:
		if inbound == nil {
			ev.Header.Selection = core.SelectionForHostname(d.Registry, body.FirstArg())
		}
	case types.CmdHostgroup:
		if inbound == nil {
			ev.Header.Selection = core.SelectionForHostgroup(d.Registry, body.FirstArg())
		}
	case types.CmdServicegroup:
		if d.Directory.Tables().NumMasters() > 0 {
			d.Log.Warnf("dispatch: submitting servicegroup command %d on a node with masters configured", body.ID)
		}
		if inbound == nil {
			ev.Header.Selection = types.SelPeersPollers
		}
	default: // CmdUnknown
		tables := d.Directory.Tables()
		if tables.NumPeers()+tables.NumPollers() == 0 {
			d.Log.Debugf("dispatch: no peers or pollers, dropping command %d", body.ID)
			return types.OK()
		}
		if inbound == nil {
			ev.Header.Selection = types.SelPeersPollers
		}
	}

	if inbound != nil {
		ev.Header.MarkNonet()
	}

	n, err := d.Engine.Send(ev, body, nil, false)
	if err != nil {
		d.Log.Debugf("dispatch: sending command %d: %v", body.ID, err)
	}

	if cancelReason != "" {
		return types.Cancel(cancelReason)
	}
	return types.Result{ReturnCode: n}
}

// localOnlyHook implements spec.md §4.6's flapping/program-status/process
// hooks: they always mark NONET and exist purely to keep a local
// database collaborator current, never the network.
func (d *Dispatcher) localOnlyHook(kind types.Kind, body any) types.Result {
	ev := types.NewEvent(kind)
	ev.Header.MarkNonet()
	n, err := d.Engine.Send(ev, body, nil, false)
	if err != nil {
		d.Log.Debugf("dispatch: sending %s: %v", kind, err)
	}
	return types.Result{ReturnCode: n}
}

func (d *Dispatcher) metrics() types.Metrics {
	if d.Metrics == nil {
		return types.NoopMetrics{}
	}
	return d.Metrics
}
