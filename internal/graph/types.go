// Package graph builds and queries the legal knowledge graph: principles,
// rules, domains and concepts as nodes, derivations and declared
// relationships as edges, with repeated edges aggregated into weighted
// edges.
package graph

import (
	"github.com/google/uuid"
)

// Node types.
const (
	NodeTypePrinciple = "principle"
	NodeTypeRule      = "rule"
	NodeTypeDomain    = "domain"
	NodeTypeConcept   = "concept"
)

// Edge types.
const (
	EdgeTypeDerivation       = "derivation"
	EdgeTypeRelationship     = "relationship"
	EdgeTypeDomainMembership = "domain_membership"
)

// Node is a vertex in the knowledge graph.
type Node struct {
	ID            string   `json:"id"`
	NodeType      string   `json:"node_type"`
	Level         int      `json:"level,omitempty"`
	Name          string   `json:"name,omitempty"`
	Description   string   `json:"description,omitempty"`
	Domains       []string `json:"domains,omitempty"`
	Confidence    float64  `json:"confidence,omitempty"`
	Provenance    string   `json:"provenance,omitempty"`
	Jurisdiction  string   `json:"jurisdiction,omitempty"`
	LegalDomain   string   `json:"legal_domain,omitempty"`
	DerivedFrom   []string `json:"derived_from,omitempty"`
	InferenceType string   `json:"inference_type,omitempty"`
}

// Edge is one raw, unaggregated edge instance. Multiple declarations of
// the same semantic link each produce their own instance; aggregation
// collapses them afterwards.
type Edge struct {
	// InstanceID distinguishes repeated declarations of the same link.
	InstanceID       string  `json:"instance_id"`
	Source           string  `json:"source"`
	Target           string  `json:"target"`
	EdgeType         string  `json:"edge_type"`
	RelationshipName string  `json:"relationship_name,omitempty"`
	Strength         float64 `json:"strength"`
	InferenceType    string  `json:"inference_type,omitempty"`
	Confidence       float64 `json:"confidence_impact"`
}

// NewEdge creates a raw edge instance with a fresh instance id.
func NewEdge(source, target, edgeType string) Edge {
	return Edge{
		InstanceID: uuid.NewString(),
		Source:     source,
		Target:     target,
		EdgeType:   edgeType,
	}
}

// WeightedEdge is the aggregate of all raw edges sharing
// (source, target, edge_type).
type WeightedEdge struct {
	Source            string   `json:"source"`
	Target            string   `json:"target"`
	EdgeType          string   `json:"edge_type"`
	RepetitionCount   int      `json:"repetition_count"`
	AvgConfidence     float64  `json:"avg_confidence"`
	AvgStrength       float64  `json:"avg_strength"`
	Weight            float64  `json:"weight"`
	InferenceTypes    []string `json:"inference_types,omitempty"`
	RelationshipNames []string `json:"relationship_names,omitempty"`
}

// Traversable reports whether the edge participates in derivation chain
// search. Domain membership edges describe classification, not inference,
// and are never walked.
func (w WeightedEdge) Traversable() bool {
	return w.EdgeType != EdgeTypeDomainMembership
}
