package graph

import (
	"fmt"
	"sort"

	"chainlex/internal/config"
	"chainlex/internal/evaluator"
	"chainlex/internal/inference"
	"chainlex/internal/logging"
	"chainlex/internal/registry"
)

// Builder assembles a knowledge graph from a validated registry.
// Construction is the one place where structural defects are fatal:
// dangling references and duplicate ids abort the build. Once a graph
// exists, every query on it is total.
type Builder struct {
	reg  *registry.Registry
	eval *evaluator.Evaluator
	cfg  config.GraphConfig
}

// NewBuilder creates a builder over a registry. The evaluator supplies
// derived rule confidences.
func NewBuilder(reg *registry.Registry, eval *evaluator.Evaluator, cfg config.GraphConfig) *Builder {
	return &Builder{reg: reg, eval: eval, cfg: cfg}
}

// Build validates the registry and constructs the graph.
func (b *Builder) Build() (*Graph, error) {
	timer := logging.StartTimer(logging.CategoryGraph, "graph build")
	defer timer.Stop()

	if rep := registry.Validate(b.reg); !rep.OK() {
		return nil, fmt.Errorf("registry validation: %w", rep.Err())
	}

	nodes := make(map[string]Node)
	var raw []Edge

	addNode := func(n Node) error {
		if _, dup := nodes[n.ID]; dup {
			return fmt.Errorf("duplicate node id %q", n.ID)
		}
		nodes[n.ID] = n
		return nil
	}

	// Domain nodes first: every domain any principle or rule mentions.
	for _, d := range b.collectDomains() {
		if err := addNode(Node{
			ID:       domainNodeID(d),
			NodeType: NodeTypeDomain,
			Name:     d,
		}); err != nil {
			return nil, err
		}
	}

	for _, p := range b.reg.Principles() {
		if err := addNode(Node{
			ID:           p.ID,
			NodeType:     NodeTypePrinciple,
			Level:        p.Level,
			Name:         p.Name,
			Description:  p.Description,
			Domains:      p.Domains,
			Confidence:   p.Confidence,
			Provenance:   p.Provenance,
			Jurisdiction: p.Jurisdiction,
		}); err != nil {
			return nil, err
		}
		for _, d := range p.Domains {
			raw = append(raw, membershipEdge(p.ID, d))
		}
	}

	for _, rl := range b.reg.Rules() {
		if err := addNode(Node{
			ID:            rl.ID,
			NodeType:      NodeTypeRule,
			Level:         rl.Level,
			Name:          rl.Name,
			Description:   rl.Description,
			LegalDomain:   rl.Domain,
			Confidence:    b.eval.Confidence(rl.ID),
			Provenance:    rl.Provenance,
			Jurisdiction:  rl.Jurisdiction,
			DerivedFrom:   rl.DerivedFrom,
			InferenceType: rl.InferenceType,
		}); err != nil {
			return nil, err
		}
		if rl.Domain != "" {
			raw = append(raw, membershipEdge(rl.ID, rl.Domain))
		}

		// Derivation edges run premise -> rule, carrying the decay of the
		// rule's inference type as confidence impact.
		decay := inference.Decay(rl.InfType())
		for _, premise := range rl.DerivedFrom {
			e := NewEdge(premise, rl.ID, EdgeTypeDerivation)
			e.Strength = 1.0
			e.Confidence = decay
			e.InferenceType = string(rl.InfType())
			raw = append(raw, e)
		}

		for _, rel := range rl.Relationships {
			e := NewEdge(rl.ID, rel.Target, EdgeTypeRelationship)
			e.RelationshipName = rel.Name
			e.Strength = rel.Strength
			if e.Strength == 0 {
				e.Strength = b.cfg.DefaultStrength
			}
			e.Confidence = rel.ConfidenceImpact
			if e.Confidence == 0 {
				e.Confidence = b.cfg.DefaultConfidenceImpact
			}
			e.InferenceType = rel.InferenceType
			raw = append(raw, e)
		}
	}

	// Every edge endpoint must resolve to a node. The validator already
	// checks registry references; this also covers generated edges.
	for _, e := range raw {
		if _, ok := nodes[e.Source]; !ok {
			return nil, fmt.Errorf("edge %s -> %s: unknown source node", e.Source, e.Target)
		}
		if _, ok := nodes[e.Target]; !ok {
			return nil, fmt.Errorf("edge %s -> %s: unknown target node", e.Source, e.Target)
		}
	}

	g := newGraph(nodes, raw, b.cfg.MaxChainDepth)
	logging.Graph("built graph: %d nodes, %d raw edges, %d weighted edges",
		len(g.nodes), len(g.raw), len(g.weighted))
	return g, nil
}

func (b *Builder) collectDomains() []string {
	set := make(map[string]bool)
	for _, p := range b.reg.Principles() {
		for _, d := range p.Domains {
			set[d] = true
		}
	}
	for _, rl := range b.reg.Rules() {
		if rl.Domain != "" {
			set[rl.Domain] = true
		}
	}
	out := make([]string, 0, len(set))
	for d := range set {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

func domainNodeID(domain string) string {
	return "domain:" + domain
}

func membershipEdge(id, domain string) Edge {
	e := NewEdge(id, domainNodeID(domain), EdgeTypeDomainMembership)
	e.Strength = 1.0
	e.Confidence = 1.0
	return e
}
