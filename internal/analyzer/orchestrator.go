package analyzer

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/blackwell-systems/scorecard/internal/category"
	"github.com/blackwell-systems/scorecard/internal/project"
)

// DefaultConcurrency bounds the analyzer fan-out when no limit is configured.
const DefaultConcurrency = 4

// ProgressFunc receives informational per-analyzer completion events. It is
// not part of the data contract and may be nil.
type ProgressFunc func(key category.Key, failed bool)

// Orchestrator runs a configured set of analyzers concurrently and collects
// their raw results. One analyzer's failure never aborts the others: failures
// are converted into zero-score results for that category alone.
type Orchestrator struct {
	defs        []category.Definition
	registry    map[category.Key]Analyzer
	concurrency int
	ignoreDirs  []string
	progress    ProgressFunc
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithConcurrency bounds the number of analyzers running at once.
func WithConcurrency(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithIgnoreDirs overrides the directories analyzers skip while walking.
func WithIgnoreDirs(dirs []string) Option {
	return func(o *Orchestrator) { o.ignoreDirs = dirs }
}

// WithProgress installs a progress callback invoked as analyzers finish.
func WithProgress(fn ProgressFunc) Option {
	return func(o *Orchestrator) { o.progress = fn }
}

// WithAnalyzers replaces the registry. Used by tests to inject fakes.
func WithAnalyzers(analyzers ...Analyzer) Option {
	return func(o *Orchestrator) {
		o.registry = make(map[category.Key]Analyzer, len(analyzers))
		for _, a := range analyzers {
			o.registry[a.Key()] = a
		}
	}
}

// NewOrchestrator creates an orchestrator over the given category definitions
// with all built-in analyzers registered.
func NewOrchestrator(defs []category.Definition, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		defs:        defs,
		registry:    builtinRegistry(),
		concurrency: DefaultConcurrency,
		ignoreDirs:  project.DefaultIgnoreDirs,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// builtinRegistry returns the standard analyzer lookup table.
func builtinRegistry() map[category.Key]Analyzer {
	analyzers := []Analyzer{
		&StructureAnalyzer{},
		&QualityAnalyzer{},
		&PerformanceAnalyzer{},
		&TestingAnalyzer{},
		&SecurityAnalyzer{},
		&DevExpAnalyzer{},
		&CompletenessAnalyzer{},
	}
	registry := make(map[category.Key]Analyzer, len(analyzers))
	for _, a := range analyzers {
		registry[a.Key()] = a
	}
	return registry
}

// Run executes the analyzers for the requested categories and returns their
// results keyed by category. The requested set is validated up front: an
// unregistered category aborts the run before any analysis starts. After
// that point failures are isolated per category.
func (o *Orchestrator) Run(ctx context.Context, meta *project.Metadata, keys []category.Key) (map[category.Key]*Result, error) {
	type job struct {
		def      category.Definition
		analyzer Analyzer
	}

	// Fail fast on unknown categories before any analyzer runs.
	jobs := make([]job, 0, len(keys))
	for _, key := range keys {
		def, ok := category.Find(key, o.defs)
		if !ok {
			return nil, &category.UnknownError{Key: string(key), Known: definitionKeys(o.defs)}
		}
		a, ok := o.registry[key]
		if !ok {
			return nil, &category.UnknownError{Key: string(key), Known: registryKeys(o.registry)}
		}
		jobs = append(jobs, job{def: def, analyzer: a})
	}

	results := make(map[category.Key]*Result, len(jobs))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)

	for _, j := range jobs {
		j := j
		g.Go(func() error {
			res := o.runOne(gctx, j.analyzer, meta, j.def)
			mu.Lock()
			results[j.def.Key] = res
			mu.Unlock()
			if o.progress != nil {
				o.progress(j.def.Key, res.Err != "")
			}
			return nil
		})
	}

	// Workers never return errors; Wait is purely a completion barrier.
	_ = g.Wait()

	// Any category not recorded before cancellation is degraded rather than
	// dropped, so the total weight stays intact.
	for _, j := range jobs {
		if _, ok := results[j.def.Key]; !ok {
			results[j.def.Key] = failedResult(j.def, "cancelled")
		}
	}

	return results, nil
}

// runOne executes a single analyzer, converting errors, panics, and
// cancellation into a degraded result for that category only.
func (o *Orchestrator) runOne(ctx context.Context, a Analyzer, meta *project.Metadata, def category.Definition) (res *Result) {
	defer func() {
		if r := recover(); r != nil {
			res = failedResult(def, fmt.Sprintf("panic: %v", r))
		}
	}()

	if err := ctx.Err(); err != nil {
		return failedResult(def, "cancelled")
	}

	cfg := Config{MaxScore: def.MaxScore, IgnoreDirs: o.ignoreDirs}
	res, err := a.Analyze(ctx, meta, cfg)
	if err != nil {
		if ctx.Err() != nil {
			return failedResult(def, "cancelled")
		}
		return failedResult(def, err.Error())
	}
	if res == nil {
		return failedResult(def, "analyzer returned no result")
	}

	res.Key = def.Key
	res.MaxScore = def.MaxScore
	res.Score = clamp(res.Score, def.MaxScore)
	return res
}

// failedResult builds the degraded result for a failed or cancelled category.
func failedResult(def category.Definition, msg string) *Result {
	return &Result{
		Key:      def.Key,
		Score:    0,
		MaxScore: def.MaxScore,
		Issues:   []string{fmt.Sprintf("Analysis failed: %s", msg)},
		Err:      msg,
	}
}

func definitionKeys(defs []category.Definition) []category.Key {
	keys := make([]category.Key, len(defs))
	for i, def := range defs {
		keys[i] = def.Key
	}
	return keys
}

func registryKeys(registry map[category.Key]Analyzer) []category.Key {
	keys := make([]category.Key, 0, len(registry))
	for key := range registry {
		keys = append(keys, key)
	}
	return keys
}
