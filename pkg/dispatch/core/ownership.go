package core

import "github.com/merlincluster/dispatch/pkg/dispatch/types"

// Owner is the deterministic ownership/sharding function: a pure, total
// mapping from (objectID, activePeersPlusSelf) to a peer index in
// [0, activePeersPlusSelf). It is the only place this module decides
// who runs a check or sends a notification, so every caller goes
// through here rather than re-deriving the mapping.
//
// A modulus over the object id gives permutation-stable, uniformly
// distributed ownership: the same object always maps to the same index
// for a given cluster size, and every index in range is reachable for
// some object id, which is all spec.md §4.2 and property P4 require.
func Owner(objectID uint64, activePeersPlusSelf int) int {
	if activePeersPlusSelf <= 0 {
		return 0
	}
	return int(objectID % uint64(activePeersPlusSelf))
}

// ShouldRunLocally reports whether the local node (selfPeerID) owns
// objectID given the current number of active peers.
func ShouldRunLocally(objectID uint64, activePeers int, selfPeerID int) bool {
	return Owner(objectID, activePeers+1) == selfPeerID
}

// NodeForCheck resolves the node that must execute a check for
// objectID: either the self pseudo-node (meaning "execute locally") or
// the remote peer that owns it. It is consulted at PRECHECK time to
// cancel local execution when another node owns the object.
func NodeForCheck(dir NodeDirectory, objectID uint64) *types.Node {
	self := dir.Self()
	tables := dir.Tables()
	idx := Owner(objectID, tables.NumPeers()+1)
	if idx == self.ID {
		return self
	}
	for _, p := range tables.Peers {
		if p.ID == idx {
			return p
		}
	}
	// No peer claims this index (e.g. a reconfiguration in flight);
	// fail safe to local execution rather than silently dropping the
	// check.
	return self
}
