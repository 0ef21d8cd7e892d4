package dispatch

import (
	"testing"

	"github.com/merlincluster/dispatch/pkg/dispatch/types"
)

func TestDispatcher_PulseHeartbeat_OnlyOnFirstCallbackUntilIntervalElapses(t *testing.T) {
	h := newHarness(types.DefaultConfig())

	h.d.Handle(types.KindHostStatus, nil, nil)
	firstPulseCount := countCtrlPackets(h)
	if firstPulseCount != 1 {
		t.Fatalf("the first callback must pulse exactly one heartbeat, got %d", firstPulseCount)
	}

	// A second callback immediately after must not pulse again, since the
	// 15s heartbeat window has not elapsed.
	h.d.Handle(types.KindHostStatus, nil, nil)
	if got := countCtrlPackets(h); got != firstPulseCount {
		t.Errorf("a callback inside the 15s heartbeat window must not pulse again, got %d pulses", got)
	}
}

func TestDispatcher_WarnFlood_OnlyWhenIPCBacklogged(t *testing.T) {
	h := newHarness(types.DefaultConfig())
	h.d.Handle(types.KindHostCheck, &types.CheckResultBody{Phase: types.Processed, ObjectID: 0}, nil)
	if h.d.backlogged {
		t.Error("a successful IPC send must never leave the dispatcher marked backlogged")
	}

	// A different object id, so the dedup slot does not swallow the send
	// before it reaches the failing IPC.
	h.ipc.Fail = true
	h.d.Handle(types.KindHostCheck, &types.CheckResultBody{Phase: types.Processed, ObjectID: 1}, nil)
	// warnFlood itself is still throttled by lastFloodWarning, but the
	// backlogged flag that gates it must have been set by the failing send.
	if !h.d.backlogged {
		t.Error("a failing IPC send during the callback must mark the dispatcher backlogged")
	}
}

func countCtrlPackets(h *harness) int {
	n := 0
	for _, ev := range h.ipc.Sent() {
		if ev.Header.Kind == types.KindCtrlPacket {
			n++
		}
	}
	return n
}
