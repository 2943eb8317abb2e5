package graph

import (
	"fmt"
	"sort"
	"strings"

	"chainlex/internal/inference"
	"chainlex/internal/logging"
)

// Chain is a derivation path between two nodes. Confidence is the start
// node's confidence attenuated by every traversed edge, rounded to 4
// decimals; it never exceeds the start confidence.
type Chain struct {
	Path       []string       `json:"path"`
	Edges      []WeightedEdge `json:"edges"`
	Confidence float64        `json:"confidence"`
}

// FindChain searches for the best derivation chain from one node to
// another. "Best" means highest cumulative confidence; ties break toward
// the shorter path, then the lexicographically smaller one. Domain
// membership edges are never traversed. The second return is false when no
// chain exists or either endpoint is unknown; that is an ordinary result,
// not an error.
func (g *Graph) FindChain(from, to string) (Chain, bool) {
	start, ok := g.nodes[from]
	if !ok {
		logging.QueryDebug("chain start %s unknown", from)
		return Chain{}, false
	}
	if _, ok := g.nodes[to]; !ok {
		logging.QueryDebug("chain target %s unknown", to)
		return Chain{}, false
	}

	type state struct {
		conf  float64
		depth int
		path  string // "\x00"-joined ids for lexicographic tiebreak
		prev  string
		edge  int
	}
	best := map[string]state{
		from: {conf: 1.0, depth: 0, path: from, edge: -1},
	}
	frontier := []string{from}

	better := func(a, b state) bool {
		if a.conf != b.conf {
			return a.conf > b.conf
		}
		if a.depth != b.depth {
			return a.depth < b.depth
		}
		return a.path < b.path
	}

	for len(frontier) > 0 {
		// Pop the best frontier state. The graph is small enough that a
		// linear scan beats maintaining a heap with tiebreak ordering.
		bi := 0
		for i := 1; i < len(frontier); i++ {
			if better(best[frontier[i]], best[frontier[bi]]) {
				bi = i
			}
		}
		cur := frontier[bi]
		frontier = append(frontier[:bi], frontier[bi+1:]...)
		cs := best[cur]

		if cur == to {
			continue
		}
		if cs.depth >= g.maxChainDepth {
			continue
		}
		for _, i := range g.out[cur] {
			w := g.weighted[i]
			if !w.Traversable() {
				continue
			}
			next := state{
				conf:  cs.conf * w.AvgConfidence,
				depth: cs.depth + 1,
				path:  cs.path + "\x00" + w.Target,
				prev:  cur,
				edge:  i,
			}
			old, seen := best[w.Target]
			if seen && !better(next, old) {
				continue
			}
			best[w.Target] = next
			frontier = append(frontier, w.Target)
		}
	}

	final, ok := best[to]
	if !ok {
		return Chain{}, false
	}

	c := Chain{
		Path:       strings.Split(final.path, "\x00"),
		Confidence: inference.Round(start.Confidence * final.conf),
	}
	// Reconstruct edges from the recorded predecessors.
	for at := to; at != from; {
		s := best[at]
		c.Edges = append([]WeightedEdge{g.weighted[s.edge]}, c.Edges...)
		at = s.prev
	}
	return c, true
}

// Explain renders the chain as human-readable derivation steps.
func (c Chain) Explain(g *Graph) string {
	if len(c.Path) == 0 {
		return "no chain"
	}
	var b strings.Builder
	for i, id := range c.Path {
		name := id
		if n, ok := g.Node(id); ok && n.Name != "" {
			name = fmt.Sprintf("%s (%s)", n.Name, id)
		}
		if i == 0 {
			fmt.Fprintf(&b, "%s\n", name)
			continue
		}
		e := c.Edges[i-1]
		label := e.EdgeType
		if len(e.RelationshipNames) > 0 {
			label = strings.Join(e.RelationshipNames, ",")
		}
		fmt.Fprintf(&b, "  -[%s x%d conf=%.4f]-> %s\n", label, e.RepetitionCount, e.AvgConfidence, name)
	}
	fmt.Fprintf(&b, "chain confidence: %.4f", c.Confidence)
	return b.String()
}

// Similar scores how alike two nodes are: the Jaccard overlap of their
// domain memberships and of their neighbor sets, averaged. Unknown ids
// score zero.
func (g *Graph) Similar(a, b string) float64 {
	na, okA := g.nodes[a]
	nb, okB := g.nodes[b]
	if !okA || !okB || a == b {
		if okA && okB {
			return 1.0
		}
		return 0
	}

	domains := jaccard(nodeDomains(na), nodeDomains(nb))
	neighbors := jaccard(g.neighborIDs(a), g.neighborIDs(b))
	return inference.Round((domains + neighbors) / 2)
}

// SimilarNode is one entry in a similarity ranking.
type SimilarNode struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
}

// SimilarNodes ranks all nodes of the same type by similarity to id,
// highest first, dropping zero scores. An unknown id yields nil.
func (g *Graph) SimilarNodes(id string, limit int) []SimilarNode {
	ref, ok := g.nodes[id]
	if !ok {
		return nil
	}
	var out []SimilarNode
	for other, n := range g.nodes {
		if other == id || n.NodeType != ref.NodeType {
			continue
		}
		if s := g.Similar(id, other); s > 0 {
			out = append(out, SimilarNode{ID: other, Score: s})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func nodeDomains(n Node) map[string]bool {
	set := make(map[string]bool)
	for _, d := range n.Domains {
		set[d] = true
	}
	if n.LegalDomain != "" {
		set[n.LegalDomain] = true
	}
	return set
}

func (g *Graph) neighborIDs(id string) map[string]bool {
	set := make(map[string]bool)
	for _, i := range g.out[id] {
		set[g.weighted[i].Target] = true
	}
	for _, i := range g.in[id] {
		set[g.weighted[i].Source] = true
	}
	return set
}

func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	inter := 0
	for k := range a {
		if b[k] {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}
