// Package logging provides categorized file-based logging for chainlex.
// Each category writes to its own file under the configured log directory,
// backed by zap. Logging is off unless explicitly enabled; every call is a
// cheap no-op in that case, so library code logs unconditionally.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/subsystem.
type Category string

const (
	CategoryBoot      Category = "boot"      // Initialization, framework loading
	CategoryRegistry  Category = "registry"  // Principle/rule registry operations
	CategoryEvaluator Category = "evaluator" // Predicate evaluation
	CategoryInference Category = "inference" // Confidence propagation
	CategoryGraph     Category = "graph"     // Graph construction, aggregation
	CategoryQuery     Category = "query"     // Chain search, similarity, neighborhood
	CategoryDatalog   Category = "datalog"   // Mangle derivation closure
	CategoryWatcher   Category = "watcher"   // Definition file watching, reloads
)

// Options mirrors the relevant parts of config.LoggingConfig to avoid a
// circular import with the config package.
type Options struct {
	Enabled    bool
	Dir        string
	Level      string          // debug | info | warn | error
	Categories map[string]bool // nil means all categories enabled
}

type state struct {
	opts    Options
	level   zapcore.Level
	loggers map[Category]*zap.SugaredLogger
	closers []func() error
}

var (
	mu  sync.RWMutex
	cur = &state{loggers: make(map[Category]*zap.SugaredLogger)}

	nop = zap.NewNop().Sugar()
)

// Initialize configures the logging subsystem. Safe to call more than once;
// later calls close previously opened files first. When opts.Enabled is
// false everything downstream is a no-op.
func Initialize(opts Options) error {
	mu.Lock()
	defer mu.Unlock()

	closeLocked()

	lvl := zapcore.InfoLevel
	switch opts.Level {
	case "debug":
		lvl = zapcore.DebugLevel
	case "info", "":
		lvl = zapcore.InfoLevel
	case "warn", "warning":
		lvl = zapcore.WarnLevel
	case "error":
		lvl = zapcore.ErrorLevel
	default:
		return fmt.Errorf("unknown log level %q", opts.Level)
	}

	if opts.Enabled {
		dir := opts.Dir
		if dir == "" {
			dir = "logs"
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
	}

	cur = &state{
		opts:    opts,
		level:   lvl,
		loggers: make(map[Category]*zap.SugaredLogger),
	}
	return nil
}

// IsEnabled reports whether logging is globally enabled.
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return cur.opts.Enabled
}

// IsCategoryEnabled reports whether a specific category is enabled.
func IsCategoryEnabled(category Category) bool {
	mu.RLock()
	defer mu.RUnlock()
	return cur.categoryEnabledLocked(category)
}

func (s *state) categoryEnabledLocked(category Category) bool {
	if !s.opts.Enabled {
		return false
	}
	if s.opts.Categories == nil {
		return true
	}
	enabled, exists := s.opts.Categories[string(category)]
	if !exists {
		return true // enabled by default when not listed
	}
	return enabled
}

// Get returns (or creates) the logger for the given category.
// Returns a no-op logger when logging or the category is disabled, or when
// the category's log file cannot be opened.
func Get(category Category) *zap.SugaredLogger {
	mu.RLock()
	if !cur.categoryEnabledLocked(category) {
		mu.RUnlock()
		return nop
	}
	if l, ok := cur.loggers[category]; ok {
		mu.RUnlock()
		return l
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()

	// Double-check after acquiring write lock
	if l, ok := cur.loggers[category]; ok {
		return l
	}
	if !cur.categoryEnabledLocked(category) {
		return nop
	}

	dir := cur.opts.Dir
	if dir == "" {
		dir = "logs"
	}
	date := time.Now().Format("2006-01-02")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.log", date, category))

	sink, closeFn, err := zap.Open(path)
	if err != nil {
		cur.loggers[category] = nop
		return nop
	}

	enc := zap.NewProductionEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), sink, cur.level)

	l := zap.New(core).Named(string(category)).Sugar()
	cur.loggers[category] = l
	cur.closers = append(cur.closers, func() error {
		err := l.Sync()
		closeFn()
		return err
	})
	return l
}

// CloseAll flushes and closes all open log files. Call at shutdown.
func CloseAll() {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
}

func closeLocked() {
	for _, c := range cur.closers {
		_ = c()
	}
	cur.closers = nil
	cur.loggers = make(map[Category]*zap.SugaredLogger)
}

// ============================================================================
// CONVENIENCE FUNCTIONS - quick logging without fetching a logger first.
// All are no-ops when the category is disabled.
// ============================================================================

// Boot logs to the boot category.
func Boot(format string, args ...interface{}) {
	Get(CategoryBoot).Infof(format, args...)
}

// BootError logs an error to the boot category.
func BootError(format string, args ...interface{}) {
	Get(CategoryBoot).Errorf(format, args...)
}

// Registry logs to the registry category.
func Registry(format string, args ...interface{}) {
	Get(CategoryRegistry).Infof(format, args...)
}

// RegistryDebug logs debug to the registry category.
func RegistryDebug(format string, args ...interface{}) {
	Get(CategoryRegistry).Debugf(format, args...)
}

// RegistryWarn logs a warning to the registry category.
func RegistryWarn(format string, args ...interface{}) {
	Get(CategoryRegistry).Warnf(format, args...)
}

// Evaluator logs to the evaluator category.
func Evaluator(format string, args ...interface{}) {
	Get(CategoryEvaluator).Infof(format, args...)
}

// EvaluatorDebug logs debug to the evaluator category.
func EvaluatorDebug(format string, args ...interface{}) {
	Get(CategoryEvaluator).Debugf(format, args...)
}

// Inference logs to the inference category.
func Inference(format string, args ...interface{}) {
	Get(CategoryInference).Infof(format, args...)
}

// InferenceDebug logs debug to the inference category.
func InferenceDebug(format string, args ...interface{}) {
	Get(CategoryInference).Debugf(format, args...)
}

// Graph logs to the graph category.
func Graph(format string, args ...interface{}) {
	Get(CategoryGraph).Infof(format, args...)
}

// GraphDebug logs debug to the graph category.
func GraphDebug(format string, args ...interface{}) {
	Get(CategoryGraph).Debugf(format, args...)
}

// Query logs to the query category.
func Query(format string, args ...interface{}) {
	Get(CategoryQuery).Infof(format, args...)
}

// QueryDebug logs debug to the query category.
func QueryDebug(format string, args ...interface{}) {
	Get(CategoryQuery).Debugf(format, args...)
}

// Datalog logs to the datalog category.
func Datalog(format string, args ...interface{}) {
	Get(CategoryDatalog).Infof(format, args...)
}

// DatalogDebug logs debug to the datalog category.
func DatalogDebug(format string, args ...interface{}) {
	Get(CategoryDatalog).Debugf(format, args...)
}

// DatalogError logs an error to the datalog category.
func DatalogError(format string, args ...interface{}) {
	Get(CategoryDatalog).Errorf(format, args...)
}

// Watcher logs to the watcher category.
func Watcher(format string, args ...interface{}) {
	Get(CategoryWatcher).Infof(format, args...)
}

// WatcherDebug logs debug to the watcher category.
func WatcherDebug(format string, args ...interface{}) {
	Get(CategoryWatcher).Debugf(format, args...)
}

// WatcherError logs an error to the watcher category.
func WatcherError(format string, args ...interface{}) {
	Get(CategoryWatcher).Errorf(format, args...)
}

// ============================================================================
// TIMING HELPERS
// ============================================================================

// Timer measures operation duration.
type Timer struct {
	category Category
	op       string
	start    time.Time
}

// StartTimer begins timing an operation.
func StartTimer(category Category, operation string) *Timer {
	return &Timer{category: category, op: operation, start: time.Now()}
}

// Stop ends the timer and logs the duration at debug level.
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	Get(t.category).Debugf("%s completed in %v", t.op, elapsed)
	return elapsed
}

// StopWithThreshold logs a warning if the duration exceeds the threshold.
func (t *Timer) StopWithThreshold(threshold time.Duration) time.Duration {
	elapsed := time.Since(t.start)
	if elapsed > threshold {
		Get(t.category).Warnf("%s took %v (threshold: %v)", t.op, elapsed, threshold)
	} else {
		Get(t.category).Debugf("%s completed in %v", t.op, elapsed)
	}
	return elapsed
}
