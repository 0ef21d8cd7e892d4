// Package core implements the load-bearing dispatch primitives: the
// node directory, the ownership function, the dedup buffer, the
// notification hold slot and the dispatch engine itself. Every piece
// here assumes the single-threaded cooperative contract spec.md §5
// describes — no locking is done around the dedup or hold slots.
package core

import "github.com/merlincluster/dispatch/pkg/dispatch/types"

// NodeDirectory is the read-only view over the node tables a real
// deployment builds from its peer-group collaborator. Everything in
// this module only ever reads it.
type NodeDirectory interface {
	// NodeByID looks up a node (peer, master or poller) by its id.
	NodeByID(id int) (*types.Node, bool)
	// NodesBySelection returns the poller nodes belonging to a
	// selection id, and whether that id was recognized at all. Reserved
	// symbolic selections (see types.Selection) are always recognized
	// and trivially empty, since they never name a poller group.
	NodesBySelection(sel types.Selection) ([]*types.Node, bool)
	// Tables returns the current peer/master/poller tables.
	Tables() *types.NodeTables
	// Self returns the local pseudo-node.
	Self() *types.Node
}

// SelectionRegistry maps object names to a routing selection, per
// spec.md §4.1.
type SelectionRegistry interface {
	// SelectionByHostname resolves the selection registered for a
	// host. Callers fall back to types.SelPeersMasters when ok is
	// false.
	SelectionByHostname(name string) (sel types.Selection, ok bool)
	// SelectionByHostgroup resolves the selection registered for a
	// hostgroup. Callers fall back to types.SelPeersPollers when ok is
	// false.
	SelectionByHostgroup(name string) (sel types.Selection, ok bool)
}

// StaticDirectory is the default, in-memory NodeDirectory and
// SelectionRegistry implementation: the node tables and name-to-
// selection maps are built once (by the config loader, in a real
// deployment) and never mutated by this module afterwards, matching
// the "immutable thereafter in this core" invariant of spec.md §3.
type StaticDirectory struct {
	self    *types.Node
	tables  *types.NodeTables
	byID    map[int]*types.Node
	bySel   map[types.Selection][]*types.Node
	byHost  map[string]types.Selection
	byGroup map[string]types.Selection
}

// NewStaticDirectory builds a StaticDirectory from fully-resolved
// tables. groupMembers maps a poller-group selection id to its member
// poller nodes; hostSelections/hostgroupSelections are the registry
// entries populated by the (external) peer-group assignment algorithm.
func NewStaticDirectory(
	self *types.Node,
	tables *types.NodeTables,
	groupMembers map[types.Selection][]*types.Node,
	hostSelections map[string]types.Selection,
	hostgroupSelections map[string]types.Selection,
) *StaticDirectory {
	d := &StaticDirectory{
		self:    self,
		tables:  tables,
		byID:    make(map[int]*types.Node),
		bySel:   make(map[types.Selection][]*types.Node),
		byHost:  hostSelections,
		byGroup: hostgroupSelections,
	}
	if d.byHost == nil {
		d.byHost = map[string]types.Selection{}
	}
	if d.byGroup == nil {
		d.byGroup = map[string]types.Selection{}
	}
	for _, n := range tables.AllNodes() {
		d.byID[n.ID] = n
	}
	if self != nil {
		d.byID[self.ID] = self
	}
	for sel, members := range groupMembers {
		d.bySel[sel] = members
	}
	return d
}

func (d *StaticDirectory) NodeByID(id int) (*types.Node, bool) {
	n, ok := d.byID[id]
	return n, ok
}

func (d *StaticDirectory) NodesBySelection(sel types.Selection) ([]*types.Node, bool) {
	if !sel.IsPollerGroupID() {
		// Reserved symbolic selections never name a poller group; they
		// are always "recognized" as trivially empty so the dispatch
		// engine's step 8 does not mistake them for a missing
		// registration (spec.md §4.3 step 8 / §4.1).
		return nil, true
	}
	members, ok := d.bySel[sel]
	return members, ok
}

func (d *StaticDirectory) Tables() *types.NodeTables { return d.tables }
func (d *StaticDirectory) Self() *types.Node         { return d.self }

func (d *StaticDirectory) SelectionByHostname(name string) (types.Selection, bool) {
	sel, ok := d.byHost[name]
	return sel, ok
}

func (d *StaticDirectory) SelectionByHostgroup(name string) (types.Selection, bool) {
	sel, ok := d.byGroup[name]
	return sel, ok
}

// SelectionForHostname applies the §4.1 default fallback.
func SelectionForHostname(r SelectionRegistry, name string) types.Selection {
	if sel, ok := r.SelectionByHostname(name); ok {
		return sel
	}
	return types.SelPeersMasters
}

// SelectionForHostgroup applies the §4.1 default fallback.
func SelectionForHostgroup(r SelectionRegistry, name string) types.Selection {
	if sel, ok := r.SelectionByHostgroup(name); ok {
		return sel
	}
	return types.SelPeersPollers
}
