// Package config loads the node tables, selection registries and
// dispatch mask a real deployment needs from a TOML file, the format
// the rest of the example pack's configuration-heavy services (moby's
// daemon config among them) standardize on via
// github.com/pelletier/go-toml.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml"

	"github.com/merlincluster/dispatch/pkg/dispatch/core"
	"github.com/merlincluster/dispatch/pkg/dispatch/types"
)

// File is the on-disk shape of a dispatch configuration file.
type File struct {
	Self  NodeEntry            `toml:"self"`
	Peer  []NodeEntry          `toml:"peer"`
	Poller []PollerGroupEntry  `toml:"poller_group"`

	EventMask    []string `toml:"event_mask"`
	UseDatabase  bool     `toml:"use_database"`
	RewriteLastCheck *bool `toml:"rewrite_last_check"`

	HostSelection      map[string]string `toml:"host_selection"`
	HostgroupSelection map[string]string `toml:"hostgroup_selection"`
}

// NodeEntry is one [[peer]]/[self] table entry.
type NodeEntry struct {
	Name     string `toml:"name"`
	ID       int    `toml:"id"`
	Kind     string `toml:"kind"` // "peer", "master", "poller"; ignored for [self]
	Notifies bool   `toml:"notifies"`
	Online   bool   `toml:"online"`
}

// PollerGroupEntry is one [[poller_group]] table entry: a symbolic
// selection id and the poller node names that belong to it.
type PollerGroupEntry struct {
	Selection uint16   `toml:"selection"`
	Members   []string `toml:"members"`
}

// kindNames maps the textual event_mask entries to types.Kind, in the
// same spirit as the teacher's own string-keyed lookup tables.
var kindNames = map[string]types.Kind{
	"host_check":                   types.KindHostCheck,
	"service_check":                types.KindServiceCheck,
	"notification":                 types.KindNotification,
	"contact_notification_method":  types.KindContactNotificationMethod,
	"comment":                      types.KindComment,
	"downtime":                     types.KindDowntime,
	"external_command":             types.KindExternalCommand,
	"program_status":               types.KindProgramStatus,
	"process":                      types.KindProcess,
	"flapping":                     types.KindFlapping,
	"host_status":                  types.KindHostStatus,
	"service_status":               types.KindServiceStatus,
}

// Load reads and parses a dispatch config file from path.
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	var f File
	if err := toml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return &f, nil
}

// Build turns a parsed File into the directory, registry and
// types.Config a Dispatcher is constructed from.
func Build(f *File) (*types.Node, *core.StaticDirectory, types.Config, error) {
	self := &types.Node{Name: f.Self.Name, ID: f.Self.ID, Kind: types.NodeSelf}

	tables := &types.NodeTables{}
	byName := map[string]*types.Node{self.Name: self}

	for _, p := range f.Peer {
		var flags types.Flags
		if p.Notifies {
			flags |= types.FlagNotifies
		}
		if p.Online {
			flags |= types.FlagOnline
		}
		node := &types.Node{Name: p.Name, ID: p.ID, Flags: flags}
		switch p.Kind {
		case "master":
			node.Kind = types.NodeMaster
			tables.Masters = append(tables.Masters, node)
		case "poller":
			node.Kind = types.NodePoller
			tables.Pollers = append(tables.Pollers, node)
		default:
			node.Kind = types.NodePeer
			tables.Peers = append(tables.Peers, node)
		}
		byName[node.Name] = node
	}

	groupMembers := map[types.Selection][]*types.Node{}
	for _, g := range f.Poller {
		sel := types.Selection(g.Selection)
		members := make([]*types.Node, 0, len(g.Members))
		for _, name := range g.Members {
			n, ok := byName[name]
			if !ok {
				return nil, nil, types.Config{}, fmt.Errorf("config: poller group %d references unknown node %q", g.Selection, name)
			}
			members = append(members, n)
		}
		groupMembers[sel] = members
	}

	hostSel := map[string]types.Selection{}
	for host, name := range f.HostSelection {
		sel, err := resolveSelection(name, groupMembers)
		if err != nil {
			return nil, nil, types.Config{}, fmt.Errorf("config: host_selection[%q]: %w", host, err)
		}
		hostSel[host] = sel
	}
	groupSel := map[string]types.Selection{}
	for group, name := range f.HostgroupSelection {
		sel, err := resolveSelection(name, groupMembers)
		if err != nil {
			return nil, nil, types.Config{}, fmt.Errorf("config: hostgroup_selection[%q]: %w", group, err)
		}
		groupSel[group] = sel
	}

	dir := core.NewStaticDirectory(self, tables, groupMembers, hostSel, groupSel)

	cfg := types.Config{UseDatabase: f.UseDatabase, RewriteLastCheckOnProcessed: true}
	if f.RewriteLastCheck != nil {
		cfg.RewriteLastCheckOnProcessed = *f.RewriteLastCheck
	}
	if len(f.EventMask) == 0 {
		cfg.Mask = ^uint32(0)
	} else {
		for _, name := range f.EventMask {
			k, ok := kindNames[name]
			if !ok {
				return nil, nil, types.Config{}, fmt.Errorf("config: event_mask: unknown kind %q", name)
			}
			cfg.Mask |= 1 << uint(k)
		}
	}

	return self, dir, cfg, nil
}

// resolveSelection accepts either a bare poller-group id (decimal) or
// one of the symbolic names below, so operators don't have to memorize
// the reserved-bit layout to write a config file.
func resolveSelection(name string, groups map[types.Selection][]*types.Node) (types.Selection, error) {
	switch name {
	case "peers_masters":
		return types.SelPeersMasters, nil
	case "peers_pollers":
		return types.SelPeersPollers, nil
	case "broadcast":
		return types.SelBroadcast, nil
	}
	var id uint16
	if _, err := fmt.Sscanf(name, "%d", &id); err != nil {
		return 0, fmt.Errorf("not a known symbolic selection or numeric poller group id: %q", name)
	}
	sel := types.Selection(id)
	if _, ok := groups[sel]; !ok {
		return 0, fmt.Errorf("poller group %d not declared in [[poller_group]]", id)
	}
	return sel, nil
}
