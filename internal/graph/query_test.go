package graph

import (
	"strings"
	"testing"
)

func TestFindChainTwoDeductiveSteps(t *testing.T) {
	g := buildBuiltin(t)

	chain, ok := g.FindChain("pacta-sunt-servanda", "breach-of-contract?")
	if !ok {
		t.Fatalf("no chain found")
	}
	want := []string{"pacta-sunt-servanda", "contract-valid?", "breach-of-contract?"}
	if len(chain.Path) != len(want) {
		t.Fatalf("path = %v, want %v", chain.Path, want)
	}
	for i := range want {
		if chain.Path[i] != want[i] {
			t.Fatalf("path = %v, want %v", chain.Path, want)
		}
	}
	// Root confidence 1.0 through two 0.95 steps.
	if chain.Confidence != 0.9025 {
		t.Errorf("chain confidence = %v, want 0.9025", chain.Confidence)
	}
	if len(chain.Edges) != 2 {
		t.Errorf("edges = %d, want 2", len(chain.Edges))
	}
}

func TestFindChainDisconnectedIsNotFound(t *testing.T) {
	g := buildBuiltin(t)

	// Environmental principles never derive criminal rules.
	if _, ok := g.FindChain("polluter-pays", "murder?"); ok {
		t.Fatalf("expected no chain between disconnected components")
	}
}

func TestFindChainUnknownEndpoints(t *testing.T) {
	g := buildBuiltin(t)

	if _, ok := g.FindChain("no-such-node", "murder?"); ok {
		t.Errorf("unknown start should be not-found")
	}
	if _, ok := g.FindChain("murder?", "no-such-node"); ok {
		t.Errorf("unknown target should be not-found")
	}
}

func TestFindChainSelf(t *testing.T) {
	g := buildBuiltin(t)

	chain, ok := g.FindChain("murder?", "murder?")
	if !ok {
		t.Fatalf("self chain should exist")
	}
	if len(chain.Path) != 1 || len(chain.Edges) != 0 {
		t.Errorf("self chain = %+v", chain)
	}
	n, _ := g.Node("murder?")
	if chain.Confidence != n.Confidence {
		t.Errorf("self chain confidence = %v, want node confidence %v", chain.Confidence, n.Confidence)
	}
}

func TestDomainMembershipNotTraversable(t *testing.T) {
	g := buildBuiltin(t)

	// murder? and theft? share the criminal domain node but no derivation
	// path runs between them; membership edges must not bridge the gap.
	if _, ok := g.FindChain("murder?", "theft?"); ok {
		t.Fatalf("chain search traversed a domain membership edge")
	}
	if _, ok := g.FindChain("murder?", "domain:criminal"); ok {
		t.Fatalf("chain search reached a domain node")
	}
}

func TestFindChainMonotoneConfidence(t *testing.T) {
	g := buildBuiltin(t)

	short, ok := g.FindChain("pacta-sunt-servanda", "contract-valid?")
	if !ok {
		t.Fatalf("no short chain")
	}
	long, ok := g.FindChain("pacta-sunt-servanda", "contractual-damages?")
	if !ok {
		t.Fatalf("no long chain")
	}
	if long.Confidence > short.Confidence {
		t.Errorf("longer chain gained confidence: %v > %v", long.Confidence, short.Confidence)
	}
	if short.Confidence > 1.0 {
		t.Errorf("confidence above root: %v", short.Confidence)
	}
}

func TestFindChainDeterministic(t *testing.T) {
	g := buildBuiltin(t)

	first, ok := g.FindChain("nullum-crimen-sine-lege", "murder?")
	if !ok {
		t.Fatalf("no chain")
	}
	for i := 0; i < 5; i++ {
		again, ok := g.FindChain("nullum-crimen-sine-lege", "murder?")
		if !ok || strings.Join(again.Path, "/") != strings.Join(first.Path, "/") {
			t.Fatalf("chain not deterministic: %v vs %v", first.Path, again.Path)
		}
	}
}

func TestExplain(t *testing.T) {
	g := buildBuiltin(t)

	chain, ok := g.FindChain("pacta-sunt-servanda", "breach-of-contract?")
	if !ok {
		t.Fatalf("no chain")
	}
	text := chain.Explain(g)
	for _, want := range []string{"Pacta sunt servanda", "breach-of-contract?", "chain confidence: 0.9025"} {
		if !strings.Contains(text, want) {
			t.Errorf("explain output missing %q:\n%s", want, text)
		}
	}
}

func TestSimilarNodes(t *testing.T) {
	g := buildBuiltin(t)

	// Murder and culpable homicide share domain, premises and neighbors.
	score := g.Similar("murder?", "culpable-homicide?")
	if score <= 0 {
		t.Fatalf("similar rules scored %v", score)
	}
	cross := g.Similar("murder?", "treaty-binding?")
	if cross >= score {
		t.Errorf("cross-domain similarity %v should be below %v", cross, score)
	}

	ranked := g.SimilarNodes("murder?", 3)
	if len(ranked) == 0 {
		t.Fatalf("no similar nodes")
	}
	top := map[string]bool{}
	for _, r := range ranked {
		top[r.ID] = true
	}
	if !top["culpable-homicide?"] || !top["theft?"] {
		t.Errorf("fellow criminal offences missing from top ranks: %+v", ranked)
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i-1].Score < ranked[i].Score {
			t.Errorf("ranking not sorted")
		}
	}

	if g.SimilarNodes("no-such-node", 3) != nil {
		t.Errorf("unknown id should rank nothing")
	}
}

func TestNeighbors(t *testing.T) {
	g := buildBuiltin(t)

	out := g.Neighbors("pacta-sunt-servanda", Out)
	if len(out) == 0 {
		t.Fatalf("pacta-sunt-servanda has no outgoing edges")
	}
	in := g.Neighbors("contract-valid?", In)
	foundPacta := false
	for _, w := range in {
		if w.Source == "pacta-sunt-servanda" && w.EdgeType == EdgeTypeDerivation {
			foundPacta = true
		}
	}
	if !foundPacta {
		t.Errorf("derivation edge from pacta-sunt-servanda missing: %+v", in)
	}

	both := g.Neighbors("contract-valid?", Both)
	if len(both) < len(in) {
		t.Errorf("Both returned fewer edges than In")
	}
	if g.Neighbors("no-such-node", Both) != nil {
		t.Errorf("unknown id should have nil neighbors")
	}
}
