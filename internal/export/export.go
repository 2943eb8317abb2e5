// Package export serializes knowledge graph snapshots for external tools:
// node-link JSON for visualization frontends and GraphML for graph
// analysis suites.
package export

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"chainlex/internal/graph"
)

// nodeLink is the JSON node-link document shape.
type nodeLink struct {
	Directed bool                 `json:"directed"`
	Nodes    []graph.Node         `json:"nodes"`
	Links    []graph.WeightedEdge `json:"links"`
}

// WriteJSON writes the graph as a node-link JSON document. Nodes and links
// appear in deterministic order, so identical graphs export identical
// bytes.
func WriteJSON(w io.Writer, g *graph.Graph) error {
	doc := nodeLink{
		Directed: true,
		Nodes:    g.Nodes(),
		Links:    g.WeightedEdges(),
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode node-link json: %w", err)
	}
	return nil
}

// ============================================================================
// GRAPHML
// ============================================================================

// GraphML is plain XML with a fixed key preamble declaring the attribute
// schema before the graph body.

type graphmlDoc struct {
	XMLName xml.Name     `xml:"graphml"`
	Xmlns   string       `xml:"xmlns,attr"`
	Keys    []graphmlKey `xml:"key"`
	Graph   graphmlGraph `xml:"graph"`
}

type graphmlKey struct {
	ID   string `xml:"id,attr"`
	For  string `xml:"for,attr"`
	Name string `xml:"attr.name,attr"`
	Type string `xml:"attr.type,attr"`
}

type graphmlGraph struct {
	ID          string        `xml:"id,attr"`
	EdgeDefault string        `xml:"edgedefault,attr"`
	Nodes       []graphmlNode `xml:"node"`
	Edges       []graphmlEdge `xml:"edge"`
}

type graphmlNode struct {
	ID   string        `xml:"id,attr"`
	Data []graphmlData `xml:"data"`
}

type graphmlEdge struct {
	Source string        `xml:"source,attr"`
	Target string        `xml:"target,attr"`
	Data   []graphmlData `xml:"data"`
}

type graphmlData struct {
	Key   string `xml:"key,attr"`
	Value string `xml:",chardata"`
}

// WriteGraphML writes the graph in GraphML form, one edge per weighted
// edge with its aggregate attributes.
func WriteGraphML(w io.Writer, g *graph.Graph) error {
	doc := graphmlDoc{
		Xmlns: "http://graphml.graphdrawing.org/xmlns",
		Keys: []graphmlKey{
			{ID: "node_type", For: "node", Name: "node_type", Type: "string"},
			{ID: "name", For: "node", Name: "name", Type: "string"},
			{ID: "level", For: "node", Name: "level", Type: "int"},
			{ID: "confidence", For: "node", Name: "confidence", Type: "double"},
			{ID: "legal_domain", For: "node", Name: "legal_domain", Type: "string"},
			{ID: "edge_type", For: "edge", Name: "edge_type", Type: "string"},
			{ID: "weight", For: "edge", Name: "weight", Type: "double"},
			{ID: "repetition_count", For: "edge", Name: "repetition_count", Type: "int"},
			{ID: "avg_confidence", For: "edge", Name: "avg_confidence", Type: "double"},
			{ID: "avg_strength", For: "edge", Name: "avg_strength", Type: "double"},
			{ID: "relationship_names", For: "edge", Name: "relationship_names", Type: "string"},
		},
		Graph: graphmlGraph{
			ID:          "chainlex",
			EdgeDefault: "directed",
		},
	}

	for _, n := range g.Nodes() {
		gn := graphmlNode{
			ID: n.ID,
			Data: []graphmlData{
				{Key: "node_type", Value: n.NodeType},
				{Key: "name", Value: n.Name},
				{Key: "level", Value: fmt.Sprintf("%d", n.Level)},
				{Key: "confidence", Value: fmt.Sprintf("%.4f", n.Confidence)},
			},
		}
		if n.LegalDomain != "" {
			gn.Data = append(gn.Data, graphmlData{Key: "legal_domain", Value: n.LegalDomain})
		}
		doc.Graph.Nodes = append(doc.Graph.Nodes, gn)
	}

	for _, e := range g.WeightedEdges() {
		ge := graphmlEdge{
			Source: e.Source,
			Target: e.Target,
			Data: []graphmlData{
				{Key: "edge_type", Value: e.EdgeType},
				{Key: "weight", Value: fmt.Sprintf("%.4f", e.Weight)},
				{Key: "repetition_count", Value: fmt.Sprintf("%d", e.RepetitionCount)},
				{Key: "avg_confidence", Value: fmt.Sprintf("%.4f", e.AvgConfidence)},
				{Key: "avg_strength", Value: fmt.Sprintf("%.4f", e.AvgStrength)},
			},
		}
		if len(e.RelationshipNames) > 0 {
			ge.Data = append(ge.Data, graphmlData{
				Key:   "relationship_names",
				Value: strings.Join(e.RelationshipNames, ","),
			})
		}
		doc.Graph.Edges = append(doc.Graph.Edges, ge)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode graphml: %w", err)
	}
	return enc.Close()
}
