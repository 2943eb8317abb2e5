// Package datalog computes the transitive derivation closure of the
// registry with the Google Mangle engine. Direct derived_from facts come
// straight from rule definitions; Mangle derives the derives_any closure,
// which answers ancestry questions without walking the graph.
package datalog

import (
	"bytes"
	"fmt"
	"sort"
	"sync"

	"github.com/google/mangle/analysis"
	"github.com/google/mangle/ast"
	_ "github.com/google/mangle/builtin"
	mengine "github.com/google/mangle/engine"
	"github.com/google/mangle/factstore"
	"github.com/google/mangle/parse"

	"chainlex/internal/logging"
	"chainlex/internal/registry"
)

// program declares the derivation relation and its transitive closure.
const program = `
Decl derived_from(Rule, Premise).
Decl derives_any(Rule, Premise).

derives_any(R, P) :- derived_from(R, P).
derives_any(R, P) :- derived_from(R, M), derives_any(M, P).
`

// Engine wraps a Mangle program over the registry's derivation facts.
type Engine struct {
	mu          sync.RWMutex
	store       factstore.ConcurrentFactStore
	baseStore   factstore.FactStoreWithRemove
	programInfo *analysis.ProgramInfo
	derivedSym  ast.PredicateSym
	closureSym  ast.PredicateSym
	factCount   int
}

// NewEngine compiles the derivation program into a fresh engine.
func NewEngine() (*Engine, error) {
	unit, err := parse.Unit(bytes.NewReader([]byte(program)))
	if err != nil {
		return nil, fmt.Errorf("parse derivation program: %w", err)
	}
	programInfo, err := analysis.AnalyzeOneUnit(unit, nil)
	if err != nil {
		return nil, fmt.Errorf("analyze derivation program: %w", err)
	}

	e := &Engine{programInfo: programInfo}
	for sym := range programInfo.Decls {
		switch sym.Symbol {
		case "derived_from":
			e.derivedSym = sym
		case "derives_any":
			e.closureSym = sym
		}
	}
	if e.derivedSym.Symbol == "" || e.closureSym.Symbol == "" {
		return nil, fmt.Errorf("derivation predicates missing from program")
	}

	e.baseStore = factstore.NewSimpleInMemoryStore()
	e.store = factstore.NewConcurrentFactStore(e.baseStore)
	return e, nil
}

// LoadRegistry replaces all facts with the registry's derived_from pairs
// and recomputes the closure.
func (e *Engine) LoadRegistry(reg *registry.Registry) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.baseStore = factstore.NewSimpleInMemoryStore()
	e.store = factstore.NewConcurrentFactStore(e.baseStore)
	e.factCount = 0

	for _, rl := range reg.Rules() {
		for _, premise := range rl.DerivedFrom {
			atom := ast.Atom{
				Predicate: e.derivedSym,
				Args:      []ast.BaseTerm{ast.String(rl.ID), ast.String(premise)},
			}
			if e.store.Add(atom) {
				e.factCount++
			}
		}
	}

	if _, err := mengine.EvalProgramWithStats(e.programInfo, e.store); err != nil {
		return fmt.Errorf("evaluate derivation closure: %w", err)
	}
	logging.Datalog("closure computed over %d derivation facts, %d stored",
		e.factCount, e.store.EstimateFactCount())
	return nil
}

// Ancestors returns every principle or rule the given id transitively
// derives from, sorted. Unknown ids have no ancestors; that is a result,
// not an error.
func (e *Engine) Ancestors(id string) []string {
	return e.closure(func(rule, premise string) (string, bool) {
		if rule == id {
			return premise, true
		}
		return "", false
	})
}

// Descendants returns every rule that transitively derives from id,
// sorted.
func (e *Engine) Descendants(id string) []string {
	return e.closure(func(rule, premise string) (string, bool) {
		if premise == id {
			return rule, true
		}
		return "", false
	})
}

// Supports reports whether rule transitively derives from premise.
func (e *Engine) Supports(premise, rule string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()

	found := false
	_ = e.store.GetFacts(ast.NewQuery(e.closureSym), func(atom ast.Atom) error {
		r, p, ok := pairArgs(atom)
		if ok && r == rule && p == premise {
			found = true
		}
		return nil
	})
	return found
}

// FactCount returns the number of base derivation facts loaded.
func (e *Engine) FactCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.factCount
}

func (e *Engine) closure(pick func(rule, premise string) (string, bool)) []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	set := make(map[string]bool)
	_ = e.store.GetFacts(ast.NewQuery(e.closureSym), func(atom ast.Atom) error {
		if r, p, ok := pairArgs(atom); ok {
			if v, want := pick(r, p); want {
				set[v] = true
			}
		}
		return nil
	})

	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func pairArgs(atom ast.Atom) (rule, premise string, ok bool) {
	if len(atom.Args) != 2 {
		return "", "", false
	}
	rc, okR := atom.Args[0].(ast.Constant)
	pc, okP := atom.Args[1].(ast.Constant)
	if !okR || !okP || rc.Type != ast.StringType || pc.Type != ast.StringType {
		return "", "", false
	}
	return rc.Symbol, pc.Symbol, true
}
