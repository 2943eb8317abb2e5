// Package inference implements confidence propagation across derivation
// steps. Every derivation carries an inference type whose decay factor
// attenuates the premise confidence; chains of derivations multiply their
// decays so confidence is monotonically non-increasing along any chain.
package inference

import (
	"math"
	"strings"
)

// Type classifies how a conclusion was derived from its premises.
type Type string

const (
	Deductive  Type = "deductive"
	Inductive  Type = "inductive"
	Abductive  Type = "abductive"
	Analogical Type = "analogical"
	Unknown    Type = "unknown"
)

// Decay factors per inference type. An unrecognized type falls back to the
// Unknown factor rather than failing: a mistyped framework entry weakens its
// conclusions, it never halts the engine.
const (
	DeductiveDecay  = 0.95
	InductiveDecay  = 0.80
	AbductiveDecay  = 0.70
	AnalogicalDecay = 0.65
	UnknownDecay    = 0.50
)

// Parse maps a free-form inference type label onto a known Type.
// Matching is case-insensitive; anything unrecognized is Unknown.
func Parse(s string) Type {
	switch Type(strings.ToLower(strings.TrimSpace(s))) {
	case Deductive:
		return Deductive
	case Inductive:
		return Inductive
	case Abductive:
		return Abductive
	case Analogical:
		return Analogical
	default:
		return Unknown
	}
}

// Decay returns the attenuation factor for the given inference type.
func Decay(t Type) float64 {
	switch t {
	case Deductive:
		return DeductiveDecay
	case Inductive:
		return InductiveDecay
	case Abductive:
		return AbductiveDecay
	case Analogical:
		return AnalogicalDecay
	default:
		return UnknownDecay
	}
}

// CombinePolicy controls how the confidences of multiple premises merge
// into the single premise confidence of a conjunctive derivation.
type CombinePolicy int

const (
	// CombineMin takes the weakest premise: a conclusion is no more
	// credible than its least credible support. This is the default.
	CombineMin CombinePolicy = iota
	// CombineProduct multiplies premise confidences, treating premises
	// as independent evidence.
	CombineProduct
	// CombineMean averages premise confidences.
	CombineMean
)

// Combine merges premise confidences under the given policy.
// An empty premise set yields 1.0 (an axiom has nothing to weaken it).
func Combine(policy CombinePolicy, confidences []float64) float64 {
	if len(confidences) == 0 {
		return 1.0
	}
	switch policy {
	case CombineProduct:
		p := 1.0
		for _, c := range confidences {
			p *= c
		}
		return p
	case CombineMean:
		sum := 0.0
		for _, c := range confidences {
			sum += c
		}
		return sum / float64(len(confidences))
	default:
		min := confidences[0]
		for _, c := range confidences[1:] {
			if c < min {
				min = c
			}
		}
		return min
	}
}

// Step computes the confidence of a conclusion derived in a single step:
// the premise confidence attenuated by the decay of the inference type.
func Step(premise float64, t Type) float64 {
	return Round(premise * Decay(t))
}

// Chain computes the confidence at the end of a derivation chain starting
// from root confidence and passing through the given inference types in
// order. The result is never greater than root.
func Chain(root float64, types []Type) float64 {
	c := root
	for _, t := range types {
		c *= Decay(t)
	}
	return Round(c)
}

// Round truncates a confidence to 4 decimal places, the precision carried
// by all persisted and reported confidence values.
func Round(c float64) float64 {
	return math.Round(c*10000) / 10000
}
