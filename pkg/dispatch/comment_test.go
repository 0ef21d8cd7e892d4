package dispatch

import (
	"testing"

	"github.com/merlincluster/dispatch/pkg/dispatch/types"
)

func TestCommentHook_AddPhaseNeverForwards(t *testing.T) {
	h := newHarness(types.DefaultConfig())
	h.d.Handle(types.KindComment, &types.CommentBody{Phase: types.CommentAdd, HostName: "web01"}, nil)
	if len(h.transport.Sent()) != 0 {
		t.Error("CommentAdd is the host's own not-yet-persisted echo and must never be forwarded")
	}
}

func TestCommentHook_InboundNeverReForwarded(t *testing.T) {
	h := newHarness(types.DefaultConfig())
	h.d.Handle(types.KindComment, &types.CommentBody{Phase: types.CommentLoad, HostName: "web01"}, h.peer)
	if len(h.transport.Sent()) != 0 {
		t.Error("a comment that arrived from the network must not be re-forwarded")
	}
}

func TestCommentHook_DowntimeEntryIsLocalOnlyUnlessDeleted(t *testing.T) {
	h := newHarness(types.DefaultConfig())
	h.d.Handle(types.KindComment, &types.CommentBody{
		Phase: types.CommentLoad, EntryType: types.CommentDowntimeEntry, HostName: "web01",
	}, nil)
	sent := h.ipc.Sent()
	if len(sent) == 0 || sent[len(sent)-1].Header.Code != types.CodeNonet {
		t.Error("a downtime-entry comment being loaded must be marked NONET")
	}
	if len(h.transport.Sent()) != 0 {
		t.Error("a downtime-entry comment being loaded must never reach the network")
	}

	h.d.Handle(types.KindComment, &types.CommentBody{
		Phase: types.CommentDelete, EntryType: types.CommentDowntimeEntry, HostName: "web01",
	}, nil)
	if len(h.transport.Sent()) == 0 {
		t.Error("a downtime-entry comment being deleted must still reach the network like a normal comment")
	}
}

func TestCommentHook_BlockCommentSuppressesExactlyOneMatch(t *testing.T) {
	h := newHarness(types.DefaultConfig())
	blocked := &types.CommentBody{
		Phase: types.CommentLoad, EntryType: types.CommentUser, HostName: "web01",
		AuthorName: "op", CommentData: "ack note",
	}
	h.d.BlockComment = blocked

	// The matching echo: marked NONET and consumes the block comment.
	h.d.Handle(types.KindComment, &types.CommentBody{
		Phase: types.CommentLoad, EntryType: types.CommentUser, HostName: "web01",
		AuthorName: "op", CommentData: "ack note",
	}, nil)
	if h.d.BlockComment != nil {
		t.Fatal("a matching comment must consume the pending block comment")
	}
	ipcEvents := h.ipc.Sent()
	if ipcEvents[len(ipcEvents)-1].Header.Code != types.CodeNonet {
		t.Error("the first matching comment must be marked NONET and suppressed from the network")
	}
	suppressedNetworkCount := len(h.transport.Sent())

	// A second, unrelated comment must forward normally - the block was
	// already consumed.
	h.d.Handle(types.KindComment, &types.CommentBody{
		Phase: types.CommentLoad, EntryType: types.CommentUser, HostName: "web01",
		AuthorName: "op", CommentData: "a different note",
	}, nil)
	if len(h.transport.Sent()) <= suppressedNetworkCount {
		t.Error("a comment after the block was consumed must reach the network normally")
	}
}

func TestCommentHook_NonMatchingBlockCommentStillForwards(t *testing.T) {
	h := newHarness(types.DefaultConfig())
	h.d.BlockComment = &types.CommentBody{
		Phase: types.CommentLoad, EntryType: types.CommentUser, HostName: "other-host",
		AuthorName: "op", CommentData: "unrelated",
	}
	h.d.Handle(types.KindComment, &types.CommentBody{
		Phase: types.CommentLoad, EntryType: types.CommentUser, HostName: "web01",
		AuthorName: "op", CommentData: "ack note",
	}, nil)
	if h.d.BlockComment == nil {
		t.Error("a non-matching comment must not consume the pending block comment")
	}
	if len(h.transport.Sent()) == 0 {
		t.Error("a non-matching comment must still be forwarded normally")
	}
}
