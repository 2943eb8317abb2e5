package graph

import (
	"sort"

	"chainlex/internal/inference"
	"chainlex/internal/logging"
)

type edgeKey struct {
	source   string
	target   string
	edgeType string
}

// Aggregate collapses raw edge instances into weighted edges, grouping by
// (source, target, edge_type). For each group:
//
//	weight = repetition_count * avg_confidence * avg_strength
//
// rounded to 4 decimals. Output order is deterministic regardless of input
// order, and the result for a set of already-unique groups is a fixed
// point: aggregating the expansion of the output reproduces the output.
func Aggregate(raw []Edge) []WeightedEdge {
	groups := make(map[edgeKey][]Edge)
	for _, e := range raw {
		k := edgeKey{e.Source, e.Target, e.EdgeType}
		groups[k] = append(groups[k], e)
	}

	out := make([]WeightedEdge, 0, len(groups))
	for k, edges := range groups {
		var confSum, strSum float64
		infTypes := make(map[string]bool)
		relNames := make(map[string]bool)
		for _, e := range edges {
			confSum += e.Confidence
			strSum += e.Strength
			if e.InferenceType != "" {
				infTypes[e.InferenceType] = true
			}
			if e.RelationshipName != "" {
				relNames[e.RelationshipName] = true
			}
		}

		n := len(edges)
		avgConf := inference.Round(confSum / float64(n))
		avgStr := inference.Round(strSum / float64(n))
		out = append(out, WeightedEdge{
			Source:            k.source,
			Target:            k.target,
			EdgeType:          k.edgeType,
			RepetitionCount:   n,
			AvgConfidence:     avgConf,
			AvgStrength:       avgStr,
			Weight:            inference.Round(float64(n) * avgConf * avgStr),
			InferenceTypes:    sortedKeys(infTypes),
			RelationshipNames: sortedKeys(relNames),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Source != b.Source {
			return a.Source < b.Source
		}
		if a.Target != b.Target {
			return a.Target < b.Target
		}
		return a.EdgeType < b.EdgeType
	})

	logging.GraphDebug("aggregated %d raw edges into %d weighted edges", len(raw), len(out))
	return out
}

func sortedKeys(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
