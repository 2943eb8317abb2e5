// Package evaluator applies rule predicates to entities and derives rule
// confidences from their derivation ancestry. Evaluation is total: unknown
// rules, missing attributes and malformed conditions all evaluate to false
// or fall back to declared defaults, they never abort.
package evaluator

import (
	"sort"

	"chainlex/internal/entity"
	"chainlex/internal/inference"
	"chainlex/internal/logging"
	"chainlex/internal/registry"
)

// Result reports the outcome of evaluating one rule against one entity.
type Result struct {
	RuleID string `json:"rule_id"`
	// Known is false when the rule id is not registered. Holds is then
	// always false.
	Known bool `json:"known"`
	Holds bool `json:"holds"`
	// Confidence is the derived confidence of the rule itself, independent
	// of the entity.
	Confidence float64 `json:"confidence"`
	// Failed lists the attributes of conditions that did not pass, in
	// rule order. Empty when the rule holds.
	Failed []string `json:"failed,omitempty"`
}

// Evaluator evaluates registry rules against entities.
type Evaluator struct {
	reg    *registry.Registry
	policy inference.CombinePolicy
}

// New creates an evaluator over the given registry.
func New(reg *registry.Registry, policy inference.CombinePolicy) *Evaluator {
	return &Evaluator{reg: reg, policy: policy}
}

// Evaluate applies the rule's predicate to the entity.
// An unknown rule id yields a Result with Known=false, not an error.
func (e *Evaluator) Evaluate(ruleID string, ent entity.Entity) Result {
	return e.evaluate(ruleID, ent, make(map[string]bool))
}

// Holds is a convenience wrapper returning only the boolean outcome.
func (e *Evaluator) Holds(ruleID string, ent entity.Entity) bool {
	return e.Evaluate(ruleID, ent).Holds
}

func (e *Evaluator) evaluate(ruleID string, ent entity.Entity, inProgress map[string]bool) Result {
	rl, ok := e.reg.Rule(ruleID)
	if !ok {
		logging.EvaluatorDebug("rule %s not registered", ruleID)
		return Result{RuleID: ruleID}
	}
	res := Result{RuleID: ruleID, Known: true, Confidence: e.Confidence(ruleID)}

	// A rule reached through its own requires-chain cannot hold; the
	// validator reports such cycles, the evaluator just refuses them.
	if inProgress[ruleID] {
		return res
	}
	inProgress[ruleID] = true
	defer delete(inProgress, ruleID)

	for _, req := range rl.Requires {
		sub := e.evaluate(req, ent, inProgress)
		if !sub.Holds {
			res.Failed = append(res.Failed, req)
		}
	}
	if len(res.Failed) > 0 {
		return res
	}

	res.Holds = e.conditionsHold(rl, ent, &res)
	return res
}

func (e *Evaluator) conditionsHold(rl *registry.Rule, ent entity.Entity, res *Result) bool {
	if len(rl.Conditions) == 0 {
		return true
	}

	disjunctive := rl.Combine == "any"
	passedAny := false
	for _, c := range rl.Conditions {
		if checkCondition(c, ent) {
			passedAny = true
			if disjunctive {
				break
			}
			continue
		}
		res.Failed = append(res.Failed, c.Attribute)
	}
	if disjunctive {
		if passedAny {
			res.Failed = nil
		}
		return passedAny
	}
	return len(res.Failed) == 0
}

// checkCondition applies a single attribute check. The attribute value, or
// the condition's default when absent, is compared with type-directed
// equality; a cross-type comparison is simply false.
func checkCondition(c registry.Condition, ent entity.Entity) bool {
	value, present := ent.Get(c.Attribute)
	if !present {
		value = entity.Normalize(c.Default)
	}

	var pass bool
	if c.Equals == nil {
		b, isBool := value.(bool)
		pass = isBool && b
	} else {
		pass = entity.Equal(value, entity.Normalize(c.Equals))
	}
	if c.Negate {
		pass = !pass
	}
	return pass
}

// ============================================================================
// CONFIDENCE DERIVATION
// ============================================================================

// Confidence returns the derived confidence of a principle or rule.
// A principle carries its own confidence. A rule combines its premises'
// confidences under the configured policy and attenuates by the decay of
// its inference type, rounded to 4 decimals. Unknown ids and derivation
// cycles contribute the unknown-inference floor instead of failing.
func (e *Evaluator) Confidence(id string) float64 {
	return e.confidence(id, make(map[string]bool), make(map[string]float64))
}

func (e *Evaluator) confidence(id string, inProgress map[string]bool, memo map[string]float64) float64 {
	if c, ok := memo[id]; ok {
		return c
	}
	if p, ok := e.reg.Principle(id); ok {
		memo[id] = p.Confidence
		return p.Confidence
	}
	rl, ok := e.reg.Rule(id)
	if !ok {
		logging.EvaluatorDebug("confidence of unknown id %s falls back to %v", id, inference.UnknownDecay)
		return inference.UnknownDecay
	}
	if inProgress[id] {
		return inference.UnknownDecay
	}
	inProgress[id] = true
	defer delete(inProgress, id)

	premises := make([]float64, 0, len(rl.DerivedFrom))
	for _, p := range rl.DerivedFrom {
		premises = append(premises, e.confidence(p, inProgress, memo))
	}
	c := inference.Round(inference.Combine(e.policy, premises) * inference.Decay(rl.InfType()))
	memo[id] = c
	return c
}

// Chain walks one derivation path from id up to a root principle,
// preferring the highest-confidence premise at each step, and returns the
// ids root-first. Used for explanation output.
func (e *Evaluator) Chain(id string) []string {
	var path []string
	seen := make(map[string]bool)
	cur := id
	for !seen[cur] {
		seen[cur] = true
		path = append(path, cur)
		rl, ok := e.reg.Rule(cur)
		if !ok || len(rl.DerivedFrom) == 0 {
			break
		}
		best := rl.DerivedFrom[0]
		bestConf := e.Confidence(best)
		for _, p := range rl.DerivedFrom[1:] {
			if c := e.Confidence(p); c > bestConf || (c == bestConf && p < best) {
				best, bestConf = p, c
			}
		}
		cur = best
	}
	// Reverse to root-first order.
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// ApplicableRules returns the ids of all rules in the domain that hold for
// the entity, sorted by descending confidence then id.
func (e *Evaluator) ApplicableRules(domain string, ent entity.Entity) []Result {
	var out []Result
	for _, rl := range e.reg.RulesByDomain(domain) {
		if res := e.Evaluate(rl.ID, ent); res.Holds {
			out = append(out, res)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Confidence != out[j].Confidence {
			return out[i].Confidence > out[j].Confidence
		}
		return out[i].RuleID < out[j].RuleID
	})
	return out
}
