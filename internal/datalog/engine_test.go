package datalog

import (
	"testing"

	"chainlex/internal/registry"
)

func loadedEngine(t *testing.T) *Engine {
	t.Helper()
	reg, err := registry.LoadBuiltin()
	if err != nil {
		t.Fatalf("LoadBuiltin failed: %v", err)
	}
	e, err := NewEngine()
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	if err := e.LoadRegistry(reg); err != nil {
		t.Fatalf("LoadRegistry failed: %v", err)
	}
	return e
}

func TestAncestorsTransitive(t *testing.T) {
	e := loadedEngine(t)

	anc := e.Ancestors("contractual-damages?")
	want := map[string]bool{
		"breach-of-contract?": true, // direct
		"contract-valid?":     true, // one step up
		"pacta-sunt-servanda": true, // root principle
		"good-faith":          true, // root principle via contract-valid?
	}
	got := make(map[string]bool, len(anc))
	for _, a := range anc {
		got[a] = true
	}
	for id := range want {
		if !got[id] {
			t.Errorf("ancestor %s missing from %v", id, anc)
		}
	}
	// Sorted output.
	for i := 1; i < len(anc); i++ {
		if anc[i-1] >= anc[i] {
			t.Errorf("ancestors not sorted: %v", anc)
		}
	}
}

func TestDescendants(t *testing.T) {
	e := loadedEngine(t)

	desc := e.Descendants("pacta-sunt-servanda")
	got := make(map[string]bool, len(desc))
	for _, d := range desc {
		got[d] = true
	}
	for _, id := range []string{"contract-valid?", "breach-of-contract?", "contractual-damages?", "treaty-binding?"} {
		if !got[id] {
			t.Errorf("descendant %s missing from %v", id, desc)
		}
	}
	if got["murder?"] {
		t.Errorf("murder? should not descend from pacta-sunt-servanda")
	}
}

func TestSupports(t *testing.T) {
	e := loadedEngine(t)

	if !e.Supports("pacta-sunt-servanda", "contractual-damages?") {
		t.Errorf("pacta-sunt-servanda should transitively support contractual-damages?")
	}
	if e.Supports("polluter-pays", "murder?") {
		t.Errorf("unrelated principle must not support murder?")
	}
	if e.Supports("no-such-id", "murder?") {
		t.Errorf("unknown premise must not support anything")
	}
}

func TestUnknownIDHasNoAncestors(t *testing.T) {
	e := loadedEngine(t)
	if anc := e.Ancestors("no-such-rule?"); anc != nil {
		t.Errorf("unknown id ancestors = %v, want nil", anc)
	}
}

func TestLoadRegistryReplacesFacts(t *testing.T) {
	e := loadedEngine(t)
	before := e.FactCount()
	if before == 0 {
		t.Fatalf("no facts loaded")
	}

	small := registry.New()
	if err := small.AddFramework(registry.Framework{
		ID:         "f",
		Principles: []registry.Principle{{ID: "p"}},
		Rules: []registry.Rule{
			{ID: "r?", DerivedFrom: []string{"p"}},
		},
	}); err != nil {
		t.Fatalf("AddFramework failed: %v", err)
	}
	if err := e.LoadRegistry(small); err != nil {
		t.Fatalf("reload failed: %v", err)
	}

	if e.FactCount() != 1 {
		t.Errorf("fact count after reload = %d, want 1", e.FactCount())
	}
	if e.Ancestors("contractual-damages?") != nil {
		t.Errorf("old facts survived the reload")
	}
	if anc := e.Ancestors("r?"); len(anc) != 1 || anc[0] != "p" {
		t.Errorf("Ancestors(r?) = %v, want [p]", anc)
	}
}
