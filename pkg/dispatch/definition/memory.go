package definition

import (
	"sync"

	"github.com/merlincluster/dispatch/pkg/dispatch/core"
	"github.com/merlincluster/dispatch/pkg/dispatch/types"
)

// MemoryIPC is an in-memory core.IPC implementation: it appends every
// sent event to an in-process log instead of talking to a real host
// process, for use in tests and the cmd/dispatchsim demo. Mirrors the
// teacher's own test/testing.go pattern of a minimal fake transport kept
// alongside the real one.
type MemoryIPC struct {
	mu    sync.Mutex
	sent  []*types.Event
	Fail  bool
}

var _ core.IPC = (*MemoryIPC)(nil)

func NewMemoryIPC() *MemoryIPC { return &MemoryIPC{} }

func (m *MemoryIPC) Send(ev *types.Event) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail {
		return -1, types.ErrEncodeFailed
	}
	m.sent = append(m.sent, ev)
	return 1, nil
}

// Sent returns a snapshot of every event handed to Send so far.
func (m *MemoryIPC) Sent() []*types.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*types.Event, len(m.sent))
	copy(out, m.sent)
	return out
}

// MemoryTransport is an in-memory core.PeerTransport implementation: it
// records which node each event was sent to instead of opening a real
// network connection.
type MemoryTransport struct {
	mu   sync.Mutex
	sent []MemorySend
	Fail map[string]bool
}

// MemorySend is one recorded PeerTransport.Send call.
type MemorySend struct {
	Node *types.Node
	Event *types.Event
}

var _ core.PeerTransport = (*MemoryTransport)(nil)

func NewMemoryTransport() *MemoryTransport {
	return &MemoryTransport{Fail: map[string]bool{}}
}

func (m *MemoryTransport) Send(node *types.Node, ev *types.Event) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if node != nil && m.Fail[node.Name] {
		return -1, types.ErrEncodeFailed
	}
	m.sent = append(m.sent, MemorySend{Node: node, Event: ev})
	return 1, nil
}

// Sent returns a snapshot of every recorded send.
func (m *MemoryTransport) Sent() []MemorySend {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MemorySend, len(m.sent))
	copy(out, m.sent)
	return out
}
