package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/merlincluster/dispatch/pkg/dispatch/core"
	"github.com/merlincluster/dispatch/pkg/dispatch/types"
)

const sampleConfig = `
event_mask = ["host_check", "service_check", "notification"]
use_database = false

[self]
name = "self"
id = 0

[[peer]]
name = "peer1"
id = 1
kind = "peer"
notifies = true
online = true

[[peer]]
name = "master1"
id = 2
kind = "master"
online = true

[[peer]]
name = "poller1"
id = 3
kind = "poller"
notifies = true

[[poller_group]]
selection = 16
members = ["poller1"]

[host_selection]
web01 = "16"
web02 = "peers_pollers"

[hostgroup_selection]
web-tier = "broadcast"
`

func writeTempConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "dispatch.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestLoad_ParsesFile(t *testing.T) {
	path := writeTempConfig(t, sampleConfig)
	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if f.Self.Name != "self" {
		t.Errorf("Self.Name = %q, want %q", f.Self.Name, "self")
	}
	if len(f.Peer) != 3 {
		t.Fatalf("len(Peer) = %d, want 3", len(f.Peer))
	}
	if len(f.Poller) != 1 || f.Poller[0].Selection != 16 {
		t.Errorf("Poller = %+v, want one entry with selection 16", f.Poller)
	}
}

func TestLoad_MissingFileReturnsError(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml")); err == nil {
		t.Error("Load of a missing file must return an error")
	}
}

func TestBuild_ClassifiesPeersMastersPollers(t *testing.T) {
	f, err := Load(writeTempConfig(t, sampleConfig))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	self, dir, cfg, err := Build(f)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if self.Name != "self" {
		t.Errorf("self.Name = %q, want %q", self.Name, "self")
	}
	tables := dir.Tables()
	if len(tables.Peers) != 1 || tables.Peers[0].Name != "peer1" {
		t.Errorf("Peers = %+v", tables.Peers)
	}
	if len(tables.Masters) != 1 || tables.Masters[0].Name != "master1" {
		t.Errorf("Masters = %+v", tables.Masters)
	}
	if len(tables.Pollers) != 1 || tables.Pollers[0].Name != "poller1" {
		t.Errorf("Pollers = %+v", tables.Pollers)
	}
	if !cfg.Wants(types.KindHostCheck) || !cfg.Wants(types.KindNotification) {
		t.Error("event_mask entries must be reflected in cfg.Mask")
	}
	if cfg.Wants(types.KindComment) {
		t.Error("a kind absent from event_mask must not be wanted")
	}
}

func TestBuild_ResolvesHostAndHostgroupSelections(t *testing.T) {
	f, err := Load(writeTempConfig(t, sampleConfig))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	_, dir, _, err := Build(f)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := core.SelectionForHostname(dir, "web01"); got != types.Selection(16) {
		t.Errorf("SelectionForHostname(web01) = %v, want 16", got)
	}
	if got := core.SelectionForHostname(dir, "web02"); got != types.SelPeersPollers {
		t.Errorf("SelectionForHostname(web02) = %v, want SelPeersPollers", got)
	}
	if got := core.SelectionForHostgroup(dir, "web-tier"); got != types.SelBroadcast {
		t.Errorf("SelectionForHostgroup(web-tier) = %v, want SelBroadcast", got)
	}
}

func TestBuild_EmptyEventMaskEnablesEverything(t *testing.T) {
	body := `
[self]
name = "self"
id = 0
`
	f, err := Load(writeTempConfig(t, body))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	_, _, cfg, err := Build(f)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !cfg.Wants(types.KindHostCheck) || !cfg.Wants(types.KindServiceStatus) {
		t.Error("an empty event_mask must enable every kind")
	}
	if !cfg.RewriteLastCheckOnProcessed {
		t.Error("RewriteLastCheckOnProcessed must default to true when the key is absent")
	}
}

func TestBuild_RewriteLastCheckExplicitFalse(t *testing.T) {
	body := `
rewrite_last_check = false

[self]
name = "self"
id = 0
`
	f, err := Load(writeTempConfig(t, body))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	_, _, cfg, err := Build(f)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if cfg.RewriteLastCheckOnProcessed {
		t.Error("an explicit rewrite_last_check = false must be honored")
	}
}

func TestBuild_UnknownEventMaskKindIsAnError(t *testing.T) {
	body := `
event_mask = ["not_a_real_kind"]

[self]
name = "self"
id = 0
`
	f, err := Load(writeTempConfig(t, body))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, _, _, err := Build(f); err == nil {
		t.Error("an unknown event_mask entry must fail Build")
	}
}

func TestBuild_HostSelectionReferencingUndeclaredPollerGroupIsAnError(t *testing.T) {
	body := `
[self]
name = "self"
id = 0

[host_selection]
web01 = "99"
`
	f, err := Load(writeTempConfig(t, body))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, _, _, err := Build(f); err == nil {
		t.Error("a host_selection naming an undeclared poller group must fail Build")
	}
}

func TestBuild_PollerGroupReferencingUnknownMemberIsAnError(t *testing.T) {
	body := `
[self]
name = "self"
id = 0

[[poller_group]]
selection = 16
members = ["ghost"]
`
	f, err := Load(writeTempConfig(t, body))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, _, _, err := Build(f); err == nil {
		t.Error("a poller_group referencing an unknown node must fail Build")
	}
}
