package registry

import (
	"fmt"
	"sort"

	"chainlex/internal/inference"
	"chainlex/internal/logging"
)

// Issue is one finding from Validate.
type Issue struct {
	Severity string `json:"severity"` // "error", "warning" or "info"
	Subject  string `json:"subject"`  // id of the offending object
	Message  string `json:"message"`
}

// Report collects validation findings for a registry.
type Report struct {
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
	Info     []Issue `json:"info"`
}

// OK reports whether the registry is structurally sound (no errors).
// Warnings and info never block graph construction.
func (r Report) OK() bool {
	return len(r.Errors) == 0
}

// Err folds the error findings into a single error, or nil when clean.
func (r Report) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	first := r.Errors[0]
	if len(r.Errors) == 1 {
		return fmt.Errorf("%s: %s", first.Subject, first.Message)
	}
	return fmt.Errorf("%s: %s (and %d more errors)", first.Subject, first.Message, len(r.Errors)-1)
}

func (r *Report) errorf(subject, format string, args ...any) {
	r.Errors = append(r.Errors, Issue{Severity: "error", Subject: subject, Message: fmt.Sprintf(format, args...)})
}

func (r *Report) warnf(subject, format string, args ...any) {
	r.Warnings = append(r.Warnings, Issue{Severity: "warning", Subject: subject, Message: fmt.Sprintf(format, args...)})
}

func (r *Report) infof(subject, format string, args ...any) {
	r.Info = append(r.Info, Issue{Severity: "info", Subject: subject, Message: fmt.Sprintf(format, args...)})
}

// Validate checks referential integrity and value ranges across the whole
// registry. Dangling references and out-of-range confidences are errors;
// unknown inference types and suspicious levels are warnings.
func Validate(reg *Registry) Report {
	var rep Report

	exists := func(id string) bool {
		if _, ok := reg.Principle(id); ok {
			return true
		}
		_, ok := reg.Rule(id)
		return ok
	}

	for _, p := range reg.Principles() {
		if p.Confidence < 0 || p.Confidence > 1 {
			rep.errorf(p.ID, "confidence %v out of [0,1]", p.Confidence)
		}
		if p.Level != 1 {
			rep.warnf(p.ID, "principle at level %d; principles are conventionally level 1", p.Level)
		}
		if len(p.Domains) == 0 {
			rep.infof(p.ID, "principle lists no domains")
		}
	}

	for _, rl := range reg.Rules() {
		if len(rl.DerivedFrom) == 0 {
			rep.warnf(rl.ID, "rule derives from nothing; its confidence cannot be grounded")
		}
		for _, premise := range rl.DerivedFrom {
			if !exists(premise) {
				rep.errorf(rl.ID, "derived_from references unknown id %q", premise)
			}
		}
		for _, req := range rl.Requires {
			if _, ok := reg.Rule(req); !ok {
				rep.errorf(rl.ID, "requires references unknown rule %q", req)
			}
		}
		for _, rel := range rl.Relationships {
			if !exists(rel.Target) {
				rep.errorf(rl.ID, "relationship %q targets unknown id %q", rel.Name, rel.Target)
			}
			if rel.Strength < 0 || rel.Strength > 1 {
				rep.errorf(rl.ID, "relationship %q strength %v out of [0,1]", rel.Name, rel.Strength)
			}
			if rel.ConfidenceImpact < 0 || rel.ConfidenceImpact > 1 {
				rep.errorf(rl.ID, "relationship %q confidence impact %v out of [0,1]", rel.Name, rel.ConfidenceImpact)
			}
		}
		if rl.InferenceType != "" && inference.Parse(rl.InferenceType) == inference.Unknown {
			rep.warnf(rl.ID, "unknown inference type %q; decay falls back to %v", rl.InferenceType, inference.UnknownDecay)
		}
		switch rl.Combine {
		case "", "all", "any":
		default:
			rep.errorf(rl.ID, "unknown combine mode %q", rl.Combine)
		}
		if len(rl.Conditions) == 0 && len(rl.Requires) == 0 {
			rep.infof(rl.ID, "rule has no conditions; its predicate is vacuously true")
		}
	}

	if cycle := findDerivationCycle(reg); len(cycle) > 0 {
		rep.errorf(cycle[0], "derivation cycle: %v", cycle)
	}

	sortIssues(rep.Errors)
	sortIssues(rep.Warnings)
	sortIssues(rep.Info)

	logging.Registry("validation: %d errors, %d warnings, %d info",
		len(rep.Errors), len(rep.Warnings), len(rep.Info))
	return rep
}

func sortIssues(issues []Issue) {
	sort.Slice(issues, func(i, j int) bool {
		if issues[i].Subject != issues[j].Subject {
			return issues[i].Subject < issues[j].Subject
		}
		return issues[i].Message < issues[j].Message
	})
}

// findDerivationCycle returns the ids of one derivation cycle, or nil.
// Derivation must be a DAG for confidence propagation to terminate.
func findDerivationCycle(reg *Registry) []string {
	const (
		white = 0
		grey  = 1
		black = 2
	)
	color := make(map[string]int)
	var cycle []string

	var visit func(id string, path []string) bool
	visit = func(id string, path []string) bool {
		rl, ok := reg.Rule(id)
		if !ok {
			return false // principles (and unknowns) terminate paths
		}
		switch color[id] {
		case grey:
			// Trim path to the cycle itself.
			for i, p := range path {
				if p == id {
					cycle = append(append([]string{}, path[i:]...), id)
					return true
				}
			}
			cycle = append(path, id)
			return true
		case black:
			return false
		}
		color[id] = grey
		for _, premise := range rl.DerivedFrom {
			if visit(premise, append(path, id)) {
				return true
			}
		}
		color[id] = black
		return false
	}

	for _, rl := range reg.Rules() {
		if color[rl.ID] == white {
			if visit(rl.ID, nil) {
				return cycle
			}
		}
	}
	return nil
}
