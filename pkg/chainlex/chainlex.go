// Package chainlex is the public entry point to the legal knowledge
// inference engine: declarative frameworks of principles and rules,
// predicate evaluation over entity facts, confidence propagation, and a
// weighted knowledge graph with chain search.
package chainlex

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"chainlex/internal/config"
	"chainlex/internal/datalog"
	"chainlex/internal/entity"
	"chainlex/internal/evaluator"
	"chainlex/internal/export"
	"chainlex/internal/graph"
	"chainlex/internal/inference"
	"chainlex/internal/logging"
	"chainlex/internal/registry"
)

// Entity is the fact container passed to predicate evaluation.
type Entity = entity.Entity

// NewEntity builds an entity from a table-like container.
func NewEntity(m map[string]any) Entity {
	return entity.FromMap(m)
}

// NewEntityFromPairs builds an entity from a list-like container of
// [key, value] pairs.
func NewEntityFromPairs(pairs []any) Entity {
	return entity.FromPairs(pairs)
}

// Engine is the top-level handle. All methods are safe for concurrent use;
// reloads swap complete snapshots, readers never see partial state.
type Engine struct {
	cfg    config.Config
	policy inference.CombinePolicy

	mu   sync.RWMutex
	reg  *registry.Registry
	eval *evaluator.Evaluator

	store   *graph.Store
	closure *datalog.Engine
	watcher *registry.Watcher
}

// Open loads the configuration file (missing file means defaults) and
// starts an engine from it.
func Open(configPath string) (*Engine, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return New(cfg)
}

// New starts an engine from an explicit configuration. Frameworks load
// from cfg.Registry.Dir when it exists, otherwise the builtin corpus is
// used. Construction fails on validation errors; a constructed engine
// never fails a query.
func New(cfg config.Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := logging.Initialize(logging.Options{
		Enabled:    cfg.Logging.Enabled,
		Dir:        cfg.Logging.Dir,
		Level:      cfg.Logging.Level,
		Categories: cfg.Logging.Categories,
	}); err != nil {
		return nil, err
	}

	var policy inference.CombinePolicy
	switch cfg.Inference.CombinePolicy {
	case "product":
		policy = inference.CombineProduct
	case "mean":
		policy = inference.CombineMean
	default:
		policy = inference.CombineMin
	}

	reg, err := loadFrameworks(cfg.Registry)
	if err != nil {
		return nil, err
	}

	closure, err := datalog.NewEngine()
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:     cfg,
		policy:  policy,
		store:   graph.NewStore(nil),
		closure: closure,
	}
	if err := e.install(reg); err != nil {
		return nil, err
	}

	logging.Boot("engine started: %d frameworks, combine policy %s",
		len(reg.Frameworks()), cfg.Inference.CombinePolicy)
	return e, nil
}

func loadFrameworks(rc config.RegistryConfig) (*registry.Registry, error) {
	if rc.Dir != "" {
		if _, err := os.Stat(rc.Dir); err == nil {
			return registry.LoadDir(rc.Dir, rc.Frameworks)
		}
	}
	logging.Boot("framework directory unavailable, using builtin corpus")
	return registry.LoadBuiltin()
}

// install validates, rebuilds all derived state and swaps it in.
func (e *Engine) install(reg *registry.Registry) error {
	if rep := registry.Validate(reg); !rep.OK() {
		return fmt.Errorf("framework validation: %w", rep.Err())
	}

	eval := evaluator.New(reg, e.policy)
	g, err := graph.NewBuilder(reg, eval, e.cfg.Graph).Build()
	if err != nil {
		return err
	}
	if err := e.closure.LoadRegistry(reg); err != nil {
		return err
	}

	e.mu.Lock()
	e.reg = reg
	e.eval = eval
	e.store.Swap(g)
	e.mu.Unlock()
	return nil
}

// Close stops any watcher and flushes logs.
func (e *Engine) Close() {
	e.StopWatch()
	logging.CloseAll()
}

func (e *Engine) snapshot() (*registry.Registry, *evaluator.Evaluator) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.reg, e.eval
}

// ============================================================================
// EVALUATION
// ============================================================================

// Evaluate applies a rule's predicate to an entity. Unknown rules evaluate
// to a not-known result, never an error.
func (e *Engine) Evaluate(ruleID string, ent Entity) evaluator.Result {
	_, eval := e.snapshot()
	return eval.Evaluate(ruleID, ent)
}

// Holds reports only the boolean predicate outcome.
func (e *Engine) Holds(ruleID string, ent Entity) bool {
	_, eval := e.snapshot()
	return eval.Holds(ruleID, ent)
}

// EvaluateBatch evaluates many rule/entity pairs concurrently, preserving
// request order.
func (e *Engine) EvaluateBatch(ctx context.Context, reqs []evaluator.Request) ([]evaluator.Result, error) {
	_, eval := e.snapshot()
	return eval.EvaluateBatch(ctx, reqs)
}

// Confidence returns the derived confidence of a principle or rule.
func (e *Engine) Confidence(id string) float64 {
	_, eval := e.snapshot()
	return eval.Confidence(id)
}

// ApplicableRules returns every rule of the domain that holds for the
// entity, highest confidence first.
func (e *Engine) ApplicableRules(domain string, ent Entity) []evaluator.Result {
	_, eval := e.snapshot()
	return eval.ApplicableRules(domain, ent)
}

// ============================================================================
// GRAPH QUERIES
// ============================================================================

// Graph returns the current immutable graph snapshot.
func (e *Engine) Graph() *graph.Graph {
	return e.store.Load()
}

// FindChain searches the best derivation chain between two nodes. The
// boolean is false when no chain exists; that is a result, not an error.
func (e *Engine) FindChain(from, to string) (graph.Chain, bool) {
	return e.Graph().FindChain(from, to)
}

// Neighbors returns the weighted edges around a node.
func (e *Engine) Neighbors(id string, dir graph.Direction) []graph.WeightedEdge {
	return e.Graph().Neighbors(id, dir)
}

// SimilarNodes ranks same-typed nodes by similarity to id.
func (e *Engine) SimilarNodes(id string, limit int) []graph.SimilarNode {
	return e.Graph().SimilarNodes(id, limit)
}

// Subgraph extracts the subgraph of one legal domain.
func (e *Engine) Subgraph(domain string) *graph.Graph {
	return e.Graph().Subgraph(domain)
}

// Ancestors returns everything id transitively derives from.
func (e *Engine) Ancestors(id string) []string {
	return e.closure.Ancestors(id)
}

// Descendants returns everything transitively derived from id.
func (e *Engine) Descendants(id string) []string {
	return e.closure.Descendants(id)
}

// Supports reports whether rule transitively derives from premise.
func (e *Engine) Supports(premise, rule string) bool {
	return e.closure.Supports(premise, rule)
}

// ============================================================================
// REGISTRY ACCESS
// ============================================================================

// Search finds principles and rules matching the query text, most relevant
// first. An empty domain searches every domain.
func (e *Engine) Search(query, domain string) []registry.SearchResult {
	reg, _ := e.snapshot()
	return reg.Search(query, domain)
}

// RulesDerivedFrom returns the rules directly citing the given principle
// or rule. For the transitive set, see Ancestors and Supports.
func (e *Engine) RulesDerivedFrom(id string) []*registry.Rule {
	reg, _ := e.snapshot()
	return reg.RulesDerivedFrom(id)
}

// Principle returns a principle record by id.
func (e *Engine) Principle(id string) (*registry.Principle, bool) {
	reg, _ := e.snapshot()
	return reg.Principle(id)
}

// Rule returns a rule record by id.
func (e *Engine) Rule(id string) (*registry.Rule, bool) {
	reg, _ := e.snapshot()
	return reg.Rule(id)
}

// Frameworks lists the loaded framework ids.
func (e *Engine) Frameworks() []string {
	reg, _ := e.snapshot()
	return reg.Frameworks()
}

// ValidateFrameworks re-runs validation and returns the full report,
// including warnings and info findings.
func (e *Engine) ValidateFrameworks() registry.Report {
	reg, _ := e.snapshot()
	return registry.Validate(reg)
}

// Stats summarizes the engine state.
type Stats struct {
	Registry registry.Stats   `json:"registry"`
	Graph    graph.GraphStats `json:"graph"`
}

// Stats returns registry and graph counts for the current snapshot.
func (e *Engine) Stats() Stats {
	reg, _ := e.snapshot()
	return Stats{
		Registry: reg.Stats(),
		Graph:    e.Graph().Stats(),
	}
}

// ============================================================================
// EXPORT
// ============================================================================

// ExportJSON writes the current graph as node-link JSON.
func (e *Engine) ExportJSON(w io.Writer) error {
	return export.WriteJSON(w, e.Graph())
}

// ExportGraphML writes the current graph as GraphML.
func (e *Engine) ExportGraphML(w io.Writer) error {
	return export.WriteGraphML(w, e.Graph())
}

// ============================================================================
// RELOAD AND WATCH
// ============================================================================

// Reload re-reads the framework directory and swaps in the new state.
// On any error the previous state stays in effect.
func (e *Engine) Reload() error {
	reg, err := loadFrameworks(e.cfg.Registry)
	if err != nil {
		return err
	}
	return e.install(reg)
}

// Watch starts the definition file watcher. Changed frameworks reload
// automatically after the configured debounce; broken files keep the
// previous snapshot. No-op directory or double start is an error.
func (e *Engine) Watch() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.watcher != nil {
		return fmt.Errorf("watcher already running")
	}

	w, err := registry.NewWatcher(e.cfg.Registry.Dir, e.cfg.Registry.Frameworks,
		e.cfg.Watcher.Debounce, func(reg *registry.Registry) {
			if err := e.install(reg); err != nil {
				logging.WatcherError("install of reloaded frameworks failed: %v", err)
			}
		})
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	e.watcher = w
	return nil
}

// StopWatch stops the watcher if one is running.
func (e *Engine) StopWatch() {
	e.mu.Lock()
	w := e.watcher
	e.watcher = nil
	e.mu.Unlock()
	if w != nil {
		w.Stop()
	}
}
