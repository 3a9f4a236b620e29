package analyzer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/blackwell-systems/scorecard/internal/category"
	"github.com/blackwell-systems/scorecard/internal/project"
)

// fakeAnalyzer is a scriptable Analyzer for orchestrator tests.
type fakeAnalyzer struct {
	key     category.Key
	score   float64
	err     error
	panics  bool
	nilRes  bool
	block   bool
	started chan struct{}
}

func (f *fakeAnalyzer) Key() category.Key { return f.key }

func (f *fakeAnalyzer) Analyze(ctx context.Context, _ *project.Metadata, cfg Config) (*Result, error) {
	if f.started != nil {
		close(f.started)
	}
	if f.panics {
		panic("fake exploded")
	}
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}
	if f.nilRes {
		return nil, nil
	}
	return &Result{Score: f.score, MaxScore: cfg.MaxScore}, nil
}

func testDefs() []category.Definition {
	return []category.Definition{
		{Key: category.Structure, Name: "Project Structure", MaxScore: 20},
		{Key: category.Quality, Name: "Code Quality", MaxScore: 20},
		{Key: category.Security, Name: "Security", MaxScore: 15},
	}
}

func testMeta() *project.Metadata {
	return &project.Metadata{Root: ".", Name: "fixture", Type: project.TypeUnknown}
}

func TestRun_CollectsAllResults(t *testing.T) {
	o := NewOrchestrator(testDefs(), WithAnalyzers(
		&fakeAnalyzer{key: category.Structure, score: 18},
		&fakeAnalyzer{key: category.Quality, score: 12},
		&fakeAnalyzer{key: category.Security, score: 10},
	))

	results, err := o.Run(context.Background(), testMeta(), []category.Key{category.Structure, category.Quality, category.Security})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if got := results[category.Structure]; got.Score != 18 || got.MaxScore != 20 || got.Key != category.Structure {
		t.Errorf("unexpected structure result: %+v", got)
	}
}

func TestRun_UnknownCategoryFailsFast(t *testing.T) {
	ran := false
	o := NewOrchestrator(testDefs(),
		WithAnalyzers(&fakeAnalyzer{key: category.Structure, score: 18}),
		WithProgress(func(category.Key, bool) { ran = true }),
	)

	_, err := o.Run(context.Background(), testMeta(), []category.Key{category.Structure, "nonsense"})
	var unknown *category.UnknownError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownError, got %v", err)
	}
	if unknown.Key != "nonsense" {
		t.Errorf("expected offending key in error, got %q", unknown.Key)
	}
	if ran {
		t.Error("no analyzer should run when validation fails")
	}
}

func TestRun_FailureIsIsolated(t *testing.T) {
	o := NewOrchestrator(testDefs(), WithAnalyzers(
		&fakeAnalyzer{key: category.Structure, score: 18},
		&fakeAnalyzer{key: category.Security, err: errors.New("timeout")},
	))

	results, err := o.Run(context.Background(), testMeta(), []category.Key{category.Structure, category.Security})
	if err != nil {
		t.Fatalf("one analyzer failing must not fail the run: %v", err)
	}

	sec := results[category.Security]
	if sec.Score != 0 || sec.MaxScore != 15 {
		t.Errorf("failed category must score 0 of full weight, got %f/%f", sec.Score, sec.MaxScore)
	}
	if sec.Err != "timeout" {
		t.Errorf("expected err %q, got %q", "timeout", sec.Err)
	}
	if len(sec.Issues) != 1 || sec.Issues[0] != "Analysis failed: timeout" {
		t.Errorf("unexpected issues: %v", sec.Issues)
	}

	if got := results[category.Structure]; got.Score != 18 || got.Err != "" {
		t.Errorf("healthy category affected by neighbour failure: %+v", got)
	}
}

func TestRun_PanicIsRecovered(t *testing.T) {
	o := NewOrchestrator(testDefs(), WithAnalyzers(
		&fakeAnalyzer{key: category.Quality, panics: true},
		&fakeAnalyzer{key: category.Structure, score: 18},
	))

	results, err := o.Run(context.Background(), testMeta(), []category.Key{category.Quality, category.Structure})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	q := results[category.Quality]
	if q.Err != "panic: fake exploded" {
		t.Errorf("expected panic converted to error, got %q", q.Err)
	}
	if results[category.Structure].Score != 18 {
		t.Error("panic in one analyzer disturbed another")
	}
}

func TestRun_NilResultIsFailure(t *testing.T) {
	o := NewOrchestrator(testDefs(), WithAnalyzers(
		&fakeAnalyzer{key: category.Structure, nilRes: true},
	))

	results, err := o.Run(context.Background(), testMeta(), []category.Key{category.Structure})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results[category.Structure].Err != "analyzer returned no result" {
		t.Errorf("unexpected result: %+v", results[category.Structure])
	}
}

func TestRun_ScoreClampedToWeight(t *testing.T) {
	o := NewOrchestrator(testDefs(), WithAnalyzers(
		&fakeAnalyzer{key: category.Structure, score: 250},
	))

	results, err := o.Run(context.Background(), testMeta(), []category.Key{category.Structure})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := results[category.Structure].Score; got != 20 {
		t.Errorf("expected score clamped to 20, got %f", got)
	}
}

func TestRun_CancellationDegradesResults(t *testing.T) {
	started := make(chan struct{})
	o := NewOrchestrator(testDefs(),
		WithConcurrency(1),
		WithAnalyzers(
			&fakeAnalyzer{key: category.Structure, block: true, started: started},
			&fakeAnalyzer{key: category.Quality, score: 12},
			&fakeAnalyzer{key: category.Security, score: 10},
		),
	)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	done := make(chan struct{})
	var results map[category.Key]*Result
	var err error
	go func() {
		results, err = o.Run(ctx, testMeta(), []category.Key{category.Structure, category.Quality, category.Security})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after cancellation")
	}
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Every requested category must still be present so the total weight is
	// intact; cancelled ones carry a degraded result.
	if len(results) != 3 {
		t.Fatalf("expected 3 results after cancellation, got %d", len(results))
	}
	if results[category.Structure].Err != "cancelled" {
		t.Errorf("in-flight analyzer should report cancelled, got %q", results[category.Structure].Err)
	}
	var totalMax float64
	for _, r := range results {
		totalMax += r.MaxScore
	}
	if totalMax != 55 {
		t.Errorf("total weight changed under cancellation: %f", totalMax)
	}
}

func TestRun_ConcurrencyLimitRespected(t *testing.T) {
	var mu sync.Mutex
	running, peak := 0, 0

	slow := func(key category.Key) Analyzer {
		return analyzerFunc{key: key, fn: func(ctx context.Context, cfg Config) (*Result, error) {
			mu.Lock()
			running++
			if running > peak {
				peak = running
			}
			mu.Unlock()

			time.Sleep(20 * time.Millisecond)

			mu.Lock()
			running--
			mu.Unlock()
			return &Result{Score: 1, MaxScore: cfg.MaxScore}, nil
		}}
	}

	o := NewOrchestrator(testDefs(),
		WithConcurrency(2),
		WithAnalyzers(slow(category.Structure), slow(category.Quality), slow(category.Security)),
	)

	_, err := o.Run(context.Background(), testMeta(), []category.Key{category.Structure, category.Quality, category.Security})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if peak > 2 {
		t.Errorf("concurrency limit exceeded: peak %d", peak)
	}
}

// analyzerFunc adapts a closure to the Analyzer interface.
type analyzerFunc struct {
	key category.Key
	fn  func(ctx context.Context, cfg Config) (*Result, error)
}

func (a analyzerFunc) Key() category.Key { return a.key }

func (a analyzerFunc) Analyze(ctx context.Context, _ *project.Metadata, cfg Config) (*Result, error) {
	return a.fn(ctx, cfg)
}

func TestRun_ProgressCallback(t *testing.T) {
	var mu sync.Mutex
	events := make(map[category.Key]bool)

	o := NewOrchestrator(testDefs(),
		WithAnalyzers(
			&fakeAnalyzer{key: category.Structure, score: 18},
			&fakeAnalyzer{key: category.Security, err: errors.New("boom")},
		),
		WithProgress(func(key category.Key, failed bool) {
			mu.Lock()
			events[key] = failed
			mu.Unlock()
		}),
	)

	_, err := o.Run(context.Background(), testMeta(), []category.Key{category.Structure, category.Security})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if failed, ok := events[category.Structure]; !ok || failed {
		t.Errorf("expected success event for structure, got ok=%v failed=%v", ok, failed)
	}
	if failed, ok := events[category.Security]; !ok || !failed {
		t.Errorf("expected failure event for security, got ok=%v failed=%v", ok, failed)
	}
}
