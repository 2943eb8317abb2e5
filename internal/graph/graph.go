package graph

import (
	"sort"
)

// Graph is an immutable knowledge graph snapshot. All query methods are
// safe for concurrent use; rebuilt graphs replace rather than mutate.
type Graph struct {
	nodes    map[string]Node
	raw      []Edge
	weighted []WeightedEdge

	// Adjacency over weighted edges, indexed into weighted.
	out map[string][]int
	in  map[string][]int

	maxChainDepth int
}

func newGraph(nodes map[string]Node, raw []Edge, maxChainDepth int) *Graph {
	if maxChainDepth < 1 {
		maxChainDepth = 32
	}
	g := &Graph{
		nodes:         nodes,
		raw:           raw,
		weighted:      Aggregate(raw),
		out:           make(map[string][]int),
		in:            make(map[string][]int),
		maxChainDepth: maxChainDepth,
	}
	for i, w := range g.weighted {
		g.out[w.Source] = append(g.out[w.Source], i)
		g.in[w.Target] = append(g.in[w.Target], i)
	}
	return g
}

// Node returns a node by id.
func (g *Graph) Node(id string) (Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes sorted by id.
func (g *Graph) Nodes() []Node {
	out := make([]Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// RawEdges returns the unaggregated edge instances.
func (g *Graph) RawEdges() []Edge {
	out := make([]Edge, len(g.raw))
	copy(out, g.raw)
	return out
}

// WeightedEdges returns the aggregated edges in deterministic order.
func (g *Graph) WeightedEdges() []WeightedEdge {
	out := make([]WeightedEdge, len(g.weighted))
	copy(out, g.weighted)
	return out
}

// Direction selects which edges Neighbors follows.
type Direction int

const (
	Out Direction = iota
	In
	Both
)

// Neighbors returns the weighted edges incident to id in the given
// direction. An unknown id yields nil, never an error.
func (g *Graph) Neighbors(id string, dir Direction) []WeightedEdge {
	var idx []int
	switch dir {
	case Out:
		idx = g.out[id]
	case In:
		idx = g.in[id]
	case Both:
		idx = append(append([]int{}, g.out[id]...), g.in[id]...)
	}
	if len(idx) == 0 {
		return nil
	}
	out := make([]WeightedEdge, 0, len(idx))
	for _, i := range idx {
		out = append(out, g.weighted[i])
	}
	return out
}

// NodesByDomain returns the principle and rule nodes belonging to a
// domain, sorted by id.
func (g *Graph) NodesByDomain(domain string) []Node {
	var out []Node
	for _, i := range g.in[domainNodeID(domain)] {
		w := g.weighted[i]
		if w.EdgeType != EdgeTypeDomainMembership {
			continue
		}
		if n, ok := g.nodes[w.Source]; ok {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Subgraph returns a new graph containing only the nodes of the given
// domain (plus the domain node itself) and the raw edges with both
// endpoints inside. The receiver is unchanged.
func (g *Graph) Subgraph(domain string) *Graph {
	keep := make(map[string]Node)
	if dn, ok := g.nodes[domainNodeID(domain)]; ok {
		keep[dn.ID] = dn
	}
	for _, n := range g.NodesByDomain(domain) {
		keep[n.ID] = n
	}

	var raw []Edge
	for _, e := range g.raw {
		if _, s := keep[e.Source]; !s {
			continue
		}
		if _, t := keep[e.Target]; !t {
			continue
		}
		raw = append(raw, e)
	}
	return newGraph(keep, raw, g.maxChainDepth)
}

// GraphStats summarizes a graph snapshot.
type GraphStats struct {
	Nodes         int            `json:"nodes"`
	RawEdges      int            `json:"raw_edges"`
	WeightedEdges int            `json:"weighted_edges"`
	NodesByType   map[string]int `json:"nodes_by_type"`
	EdgesByType   map[string]int `json:"edges_by_type"`
}

// Stats returns counts over nodes and edges.
func (g *Graph) Stats() GraphStats {
	s := GraphStats{
		Nodes:         len(g.nodes),
		RawEdges:      len(g.raw),
		WeightedEdges: len(g.weighted),
		NodesByType:   make(map[string]int),
		EdgesByType:   make(map[string]int),
	}
	for _, n := range g.nodes {
		s.NodesByType[n.NodeType]++
	}
	for _, e := range g.raw {
		s.EdgesByType[e.EdgeType]++
	}
	return s
}
