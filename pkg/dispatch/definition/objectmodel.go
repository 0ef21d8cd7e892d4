package definition

import (
	"sync"
	"time"

	"github.com/merlincluster/dispatch/pkg/dispatch/core"
	"github.com/merlincluster/dispatch/pkg/dispatch/types"
)

// object is the bookkeeping MemoryObjectModel keeps per monitored
// object id: just the handful of fields the dispatch core actually
// mutates, per core.ObjectModel's doc comment.
type object struct {
	expired        bool
	checkNode      *types.Node
	passive        bool
	lastCheck      time.Time
	currentReceiver bool
}

// MemoryObjectModel is a minimal, in-memory core.ObjectModel
// implementation (MemoryExpirationScheduler below is the
// core.ExpirationScheduler counterpart): good enough to exercise the
// dispatch core's object-level bookkeeping in tests and
// cmd/dispatchsim, without pulling in a real monitoring host's object
// tables.
type MemoryObjectModel struct {
	mu      sync.Mutex
	objects map[uint64]*object
	// CurrentReceiver, when non-zero, names the object id the next
	// IsCurrentReceiver call should report true for, exactly once.
	CurrentReceiver uint64
}

var _ core.ObjectModel = (*MemoryObjectModel)(nil)

func NewMemoryObjectModel() *MemoryObjectModel {
	return &MemoryObjectModel{objects: map[uint64]*object{}}
}

func (m *MemoryObjectModel) get(id uint64) *object {
	o, ok := m.objects[id]
	if !ok {
		o = &object{}
		m.objects[id] = o
	}
	return o
}

func (m *MemoryObjectModel) ClearExpired(id uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.get(id).expired = false
}

func (m *MemoryObjectModel) SetCheckNode(id uint64, node *types.Node, passive bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o := m.get(id)
	o.checkNode = node
	o.passive = passive
}

func (m *MemoryObjectModel) RewriteLastCheck(id uint64, end time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.get(id).lastCheck = end
}

func (m *MemoryObjectModel) IsCurrentReceiver(id uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CurrentReceiver != 0 && m.CurrentReceiver == id {
		m.CurrentReceiver = 0
		return true
	}
	return false
}

// MarkExpired sets the expired flag directly, for tests that want to
// assert ClearExpired actually ran.
func (m *MemoryObjectModel) MarkExpired(id uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.get(id).expired = true
}

// Expired reports the current expired flag for id.
func (m *MemoryObjectModel) Expired(id uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.get(id).expired
}

// CheckNode reports which node SetCheckNode last recorded for id.
func (m *MemoryObjectModel) CheckNode(id uint64) *types.Node {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.get(id).checkNode
}

// LastCheck reports the last RewriteLastCheck time recorded for id.
func (m *MemoryObjectModel) LastCheck(id uint64) time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.get(id).lastCheck
}

// Expiration is one scheduled-but-not-yet-fired expiration.
type Expiration struct {
	Kind     core.CheckKind
	Node     *types.Node
	ObjectID uint64
}

// MemoryExpirationScheduler records every ScheduleExpiration call
// instead of arming a real timer, so tests can assert PRECHECK always
// schedules exactly one expiration per callback.
type MemoryExpirationScheduler struct {
	mu        sync.Mutex
	scheduled []Expiration
}

var _ core.ExpirationScheduler = (*MemoryExpirationScheduler)(nil)

func NewMemoryExpirationScheduler() *MemoryExpirationScheduler {
	return &MemoryExpirationScheduler{}
}

func (s *MemoryExpirationScheduler) ScheduleExpiration(kind core.CheckKind, node *types.Node, objectID uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scheduled = append(s.scheduled, Expiration{Kind: kind, Node: node, ObjectID: objectID})
}

// Scheduled returns a snapshot of every recorded ScheduleExpiration call.
func (s *MemoryExpirationScheduler) Scheduled() []Expiration {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Expiration, len(s.scheduled))
	copy(out, s.scheduled)
	return out
}
