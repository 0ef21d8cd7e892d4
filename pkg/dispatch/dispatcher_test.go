package dispatch

import (
	"testing"

	"github.com/merlincluster/dispatch/pkg/dispatch/core"
	"github.com/merlincluster/dispatch/pkg/dispatch/definition"
	"github.com/merlincluster/dispatch/pkg/dispatch/types"
)

// harness bundles a Dispatcher with every fake collaborator a test
// might want to inspect afterward.
type harness struct {
	self       *types.Node
	peer       *types.Node
	master     *types.Node
	poller     *types.Node
	dir        *core.StaticDirectory
	ipc        *definition.MemoryIPC
	transport  *definition.MemoryTransport
	objects    *definition.MemoryObjectModel
	expiration *definition.MemoryExpirationScheduler
	d          *Dispatcher
}

func newHarness(cfg types.Config) *harness {
	self := &types.Node{Name: "self", ID: 0, Kind: types.NodeSelf, Flags: types.FlagNotifies}
	peer := &types.Node{Name: "peer1", ID: 1, Kind: types.NodePeer, Flags: types.FlagNotifies}
	master := &types.Node{Name: "master1", ID: 2, Kind: types.NodeMaster}
	poller := &types.Node{Name: "poller1", ID: 3, Kind: types.NodePoller, Flags: types.FlagNotifies}

	tables := &types.NodeTables{Peers: []*types.Node{peer}, Masters: []*types.Node{master}, Pollers: []*types.Node{poller}}
	dir := core.NewStaticDirectory(self, tables, map[types.Selection][]*types.Node{0x10: {poller}},
		map[string]types.Selection{"web01": 0x10}, nil)

	ipc := definition.NewMemoryIPC()
	transport := definition.NewMemoryTransport()
	objects := definition.NewMemoryObjectModel()
	expiration := definition.NewMemoryExpirationScheduler()

	d := New(self, dir, dir, definition.GobCodec{}, ipc, transport, cfg, nil, testLogger{}, objects, expiration)

	return &harness{
		self: self, peer: peer, master: master, poller: poller,
		dir: dir, ipc: ipc, transport: transport, objects: objects, expiration: expiration, d: d,
	}
}

type testLogger struct{}

func (testLogger) Info(v ...interface{})          {}
func (testLogger) Infof(string, ...interface{})   {}
func (testLogger) Warn(v ...interface{})          {}
func (testLogger) Warnf(string, ...interface{})   {}
func (testLogger) Error(v ...interface{})         {}
func (testLogger) Errorf(string, ...interface{})  {}
func (testLogger) Debug(v ...interface{})         {}
func (testLogger) Debugf(string, ...interface{})  {}
func (testLogger) ToggleDebug(bool) bool          { return false }

func TestDispatcher_HandleUnknownBodyTypeCancels(t *testing.T) {
	h := newHarness(types.DefaultConfig())
	res := h.d.Handle(types.KindHostCheck, "not a check result body", nil)
	if !res.Cancelled() {
		t.Error("a mistyped callback body must cancel rather than panic")
	}
}

func TestDispatcher_HandleIgnoredStatusKindsAlwaysOK(t *testing.T) {
	h := newHarness(types.DefaultConfig())
	for _, k := range []types.Kind{types.KindHostStatus, types.KindServiceStatus} {
		if res := h.d.Handle(k, nil, nil); res.Cancelled() {
			t.Errorf("%s must never cancel", k)
		}
	}
}

func TestDispatcher_PendingNotificationReflectsHoldSlot(t *testing.T) {
	h := newHarness(types.DefaultConfig())
	if h.d.PendingNotification() {
		t.Fatal("a fresh dispatcher must not have a pending notification")
	}
	h.d.Handle(types.KindNotification, &types.NotificationBody{
		Phase: types.NotificationEnd, Reason: types.ReasonNormal, ObjectID: 1,
	}, nil)
	if !h.d.PendingNotification() {
		t.Error("a normal-reason NOTIFICATION_END with no inbound must be held, not sent")
	}
}
