// Package registry holds the declarative knowledge base: legal frameworks
// containing foundational principles and derived rules. The registry is the
// single source the evaluator, the inference engine and the graph builder
// read from.
package registry

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"chainlex/internal/inference"
	"chainlex/internal/logging"
)

// ============================================================================
// RECORD TYPES
// ============================================================================

// Principle is a foundational legal principle. Principles are axiomatic:
// they are not derived from anything and carry their own confidence.
type Principle struct {
	ID           string   `yaml:"id" json:"id"`
	Name         string   `yaml:"name" json:"name"`
	Description  string   `yaml:"description,omitempty" json:"description,omitempty"`
	Domains      []string `yaml:"domains,omitempty" json:"domains,omitempty"`
	Level        int      `yaml:"level,omitempty" json:"level"`
	Confidence   float64  `yaml:"confidence,omitempty" json:"confidence"`
	Jurisdiction string   `yaml:"jurisdiction,omitempty" json:"jurisdiction,omitempty"`
	Provenance   string   `yaml:"provenance,omitempty" json:"provenance,omitempty"`
}

// Condition is a single attribute check applied to an entity.
// Absent attributes take Default before comparison.
type Condition struct {
	Attribute string `yaml:"attribute" json:"attribute"`
	// Equals is the expected value. When nil the check passes if the
	// attribute (or its default) is boolean true.
	Equals any `yaml:"equals,omitempty" json:"equals,omitempty"`
	// Default substitutes for an absent attribute.
	Default any `yaml:"default,omitempty" json:"default,omitempty"`
	// Negate inverts the outcome of the check.
	Negate bool `yaml:"negate,omitempty" json:"negate,omitempty"`
}

// Relationship is a declared semantic edge from a rule or principle to
// another node in the knowledge graph.
type Relationship struct {
	Target string `yaml:"target" json:"target"`
	// Name is the relationship label, e.g. "enables" or "presupposes".
	Name string `yaml:"name" json:"name"`
	// Strength in (0,1]; zero means "use the configured default".
	Strength float64 `yaml:"strength,omitempty" json:"strength,omitempty"`
	// ConfidenceImpact in (0,1]; zero means "use the configured default".
	ConfidenceImpact float64 `yaml:"confidence_impact,omitempty" json:"confidence_impact,omitempty"`
	// InferenceType annotating the relationship, if any.
	InferenceType string `yaml:"inference_type,omitempty" json:"inference_type,omitempty"`
}

// Rule is a derived legal rule: a predicate over entities plus the
// derivation that gives it its confidence.
type Rule struct {
	ID            string   `yaml:"id" json:"id"`
	Name          string   `yaml:"name" json:"name"`
	Description   string   `yaml:"description,omitempty" json:"description,omitempty"`
	Domain        string   `yaml:"domain,omitempty" json:"domain,omitempty"`
	Level         int      `yaml:"level,omitempty" json:"level"`
	InferenceType string   `yaml:"inference_type,omitempty" json:"inference_type,omitempty"`
	Jurisdiction  string   `yaml:"jurisdiction,omitempty" json:"jurisdiction,omitempty"`
	Provenance    string   `yaml:"provenance,omitempty" json:"provenance,omitempty"`
	DerivedFrom   []string `yaml:"derived_from,omitempty" json:"derived_from,omitempty"`

	// Combine is "all" (conjunction, default) or "any" (disjunction) over
	// Conditions.
	Combine    string      `yaml:"combine,omitempty" json:"combine,omitempty"`
	Conditions []Condition `yaml:"conditions,omitempty" json:"conditions,omitempty"`
	// Requires names other rules whose predicate must also hold.
	Requires []string `yaml:"requires,omitempty" json:"requires,omitempty"`

	Relationships []Relationship `yaml:"relationships,omitempty" json:"relationships,omitempty"`
}

// Framework groups principles and rules for one body of law.
type Framework struct {
	ID          string      `yaml:"id" json:"id"`
	Name        string      `yaml:"name" json:"name"`
	Description string      `yaml:"description,omitempty" json:"description,omitempty"`
	Domains     []string    `yaml:"domains,omitempty" json:"domains,omitempty"`
	Principles  []Principle `yaml:"principles,omitempty" json:"principles,omitempty"`
	Rules       []Rule      `yaml:"rules,omitempty" json:"rules,omitempty"`
}

// InfType returns the parsed inference type of a rule.
func (r Rule) InfType() inference.Type {
	return inference.Parse(r.InferenceType)
}

// ============================================================================
// REGISTRY
// ============================================================================

// Registry indexes frameworks, principles and rules by id.
// Ids are globally unique across all loaded frameworks.
type Registry struct {
	mu         sync.RWMutex
	frameworks map[string]*Framework
	principles map[string]*Principle
	rules      map[string]*Rule
	// owner maps a principle or rule id to its framework id.
	owner map[string]string
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		frameworks: make(map[string]*Framework),
		principles: make(map[string]*Principle),
		rules:      make(map[string]*Rule),
		owner:      make(map[string]string),
	}
}

// AddFramework registers a framework and indexes its contents.
// Duplicate framework, principle or rule ids are rejected.
func (r *Registry) AddFramework(f Framework) error {
	if f.ID == "" {
		return fmt.Errorf("framework has no id")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.frameworks[f.ID]; exists {
		return fmt.Errorf("duplicate framework id %q", f.ID)
	}
	// Ids must be unique against every loaded framework and within the
	// incoming framework itself.
	seen := make(map[string]bool, len(f.Principles)+len(f.Rules))
	for i := range f.Principles {
		p := &f.Principles[i]
		if p.ID == "" {
			return fmt.Errorf("framework %s: principle %d has no id", f.ID, i)
		}
		if prev, dup := r.owner[p.ID]; dup {
			return fmt.Errorf("duplicate id %q (already defined in framework %s)", p.ID, prev)
		}
		if seen[p.ID] {
			return fmt.Errorf("framework %s: duplicate id %q", f.ID, p.ID)
		}
		seen[p.ID] = true
	}
	for i := range f.Rules {
		rl := &f.Rules[i]
		if rl.ID == "" {
			return fmt.Errorf("framework %s: rule %d has no id", f.ID, i)
		}
		if prev, dup := r.owner[rl.ID]; dup {
			return fmt.Errorf("duplicate id %q (already defined in framework %s)", rl.ID, prev)
		}
		if seen[rl.ID] {
			return fmt.Errorf("framework %s: duplicate id %q", f.ID, rl.ID)
		}
		seen[rl.ID] = true
	}

	fcopy := f
	r.frameworks[f.ID] = &fcopy
	for i := range fcopy.Principles {
		p := &fcopy.Principles[i]
		if p.Confidence == 0 {
			p.Confidence = 1.0
		}
		if p.Level == 0 {
			p.Level = 1
		}
		r.principles[p.ID] = p
		r.owner[p.ID] = f.ID
	}
	for i := range fcopy.Rules {
		rl := &fcopy.Rules[i]
		r.rules[rl.ID] = rl
		r.owner[rl.ID] = f.ID
	}

	logging.Registry("framework %s registered: %d principles, %d rules",
		f.ID, len(f.Principles), len(f.Rules))
	return nil
}

// Framework returns a framework by id.
func (r *Registry) Framework(id string) (*Framework, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.frameworks[id]
	return f, ok
}

// Frameworks returns all framework ids in sorted order.
func (r *Registry) Frameworks() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.frameworks))
	for id := range r.frameworks {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Principle returns a principle by id.
func (r *Registry) Principle(id string) (*Principle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.principles[id]
	return p, ok
}

// Rule returns a rule by id.
func (r *Registry) Rule(id string) (*Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rl, ok := r.rules[id]
	return rl, ok
}

// Owner returns the framework id owning the given principle or rule id.
func (r *Registry) Owner(id string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fw, ok := r.owner[id]
	return fw, ok
}

// Principles returns all principles, sorted by id.
func (r *Registry) Principles() []*Principle {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Principle, 0, len(r.principles))
	for _, p := range r.principles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Rules returns all rules, sorted by id.
func (r *Registry) Rules() []*Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Rule, 0, len(r.rules))
	for _, rl := range r.rules {
		out = append(out, rl)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// RulesByDomain returns the rules belonging to a domain, sorted by id.
func (r *Registry) RulesByDomain(domain string) []*Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Rule
	for _, rl := range r.rules {
		if rl.Domain == domain {
			out = append(out, rl)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// PrinciplesByDomain returns the principles that list the domain.
func (r *Registry) PrinciplesByDomain(domain string) []*Principle {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Principle
	for _, p := range r.principles {
		for _, d := range p.Domains {
			if d == domain {
				out = append(out, p)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// RulesDerivedFrom returns the rules that directly cite the given principle
// or rule in their derivation, sorted by id.
func (r *Registry) RulesDerivedFrom(id string) []*Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Rule
	for _, rl := range r.rules {
		for _, from := range rl.DerivedFrom {
			if from == id {
				out = append(out, rl)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Search relevance tiers, strongest first.
const (
	RelevanceExact       = "exact"       // id equals the query
	RelevancePartial     = "partial"     // id or name contains the query
	RelevanceDescription = "description" // only the description matches
)

// SearchResult is a single hit from Search.
type SearchResult struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"` // "principle" or "rule"
	Name      string `json:"name"`
	Framework string `json:"framework"`
	Relevance string `json:"relevance"`
}

// Search finds principles and rules matching the query, case-insensitively.
// A non-empty domain restricts hits to that domain. Results are ordered
// exact match first, then id/name matches, then description-only matches,
// by id within each tier.
func (r *Registry) Search(query, domain string) []SearchResult {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []SearchResult
	for id, p := range r.principles {
		if domain != "" && !containsString(p.Domains, domain) {
			continue
		}
		if rel, ok := relevance(q, id, p.Name, p.Description); ok {
			out = append(out, SearchResult{ID: id, Kind: "principle", Name: p.Name, Framework: r.owner[id], Relevance: rel})
		}
	}
	for id, rl := range r.rules {
		if domain != "" && rl.Domain != domain {
			continue
		}
		if rel, ok := relevance(q, id, rl.Name, rl.Description); ok {
			out = append(out, SearchResult{ID: id, Kind: "rule", Name: rl.Name, Framework: r.owner[id], Relevance: rel})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		ri, rj := relevanceRank(out[i].Relevance), relevanceRank(out[j].Relevance)
		if ri != rj {
			return ri < rj
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func relevance(q, id, name, description string) (string, bool) {
	switch {
	case strings.ToLower(id) == q:
		return RelevanceExact, true
	case strings.Contains(strings.ToLower(id), q) || strings.Contains(strings.ToLower(name), q):
		return RelevancePartial, true
	case strings.Contains(strings.ToLower(description), q):
		return RelevanceDescription, true
	}
	return "", false
}

func relevanceRank(rel string) int {
	switch rel {
	case RelevanceExact:
		return 0
	case RelevancePartial:
		return 1
	default:
		return 2
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Stats summarizes registry contents.
type Stats struct {
	Frameworks int `json:"frameworks"`
	Principles int `json:"principles"`
	Rules      int `json:"rules"`
}

// Stats returns counts of registered objects.
func (r *Registry) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return Stats{
		Frameworks: len(r.frameworks),
		Principles: len(r.principles),
		Rules:      len(r.rules),
	}
}
