// SoberShot - Drink Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sobershot

package recommend

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/sobershot/internal/models"
)

// mockFeatures returns row i as a one-element vector holding i.
type mockFeatures struct {
	rows int
}

func (f mockFeatures) Rows() int { return f.rows }
func (f mockFeatures) Row(i int) []float32 {
	return []float32{float32(i)}
}

// mockScorer returns a fixed score vector and counts calls.
type mockScorer struct {
	scores []float64
	err    error
	calls  atomic.Int32
	last   atomic.Int32
}

func (m *mockScorer) Score(ctx context.Context, query []float32) ([]float64, error) {
	m.calls.Add(1)
	if len(query) > 0 {
		m.last.Store(int32(query[0]))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.scores, nil
}

func drinkRecords(n int) []models.DrinkRecord {
	recs := make([]models.DrinkRecord, n)
	for i := range recs {
		recs[i] = models.DrinkRecord{
			Name:        fmt.Sprintf("drink-%d", i),
			Ingredients: map[string]string{"Gin": fmt.Sprintf("%d oz", i)},
		}
	}
	return recs
}

func newTestEngine(t *testing.T, scores []float64, cfg Config) (*Engine, *mockScorer) {
	t.Helper()
	scorer := &mockScorer{scores: scores}
	e, err := NewEngine(drinkRecords(len(scores)), mockFeatures{rows: len(scores)}, scorer, cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e, scorer
}

func names(recs []models.DrinkRecord) []string {
	out := make([]string, len(recs))
	for i := range recs {
		out[i] = recs[i].Name
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ========================================
// Construction
// ========================================

func TestNewEngine_Misaligned(t *testing.T) {
	_, err := NewEngine(drinkRecords(3), mockFeatures{rows: 4}, &mockScorer{}, Config{}, zerolog.Nop())
	if !errors.Is(err, ErrMisaligned) {
		t.Errorf("err = %v, want ErrMisaligned", err)
	}
}

func TestNewEngine_RequiresModel(t *testing.T) {
	if _, err := NewEngine(nil, mockFeatures{}, nil, Config{}, zerolog.Nop()); err == nil {
		t.Error("expected error for nil model")
	}
}

// ========================================
// Ranking
// ========================================

func TestRecommend_Ranking(t *testing.T) {
	scores := []float64{1.0, 0.2, 0.9, 0.9, 0.5}

	tests := []struct {
		name  string
		index int
		topN  int
		want  []string
	}{
		{"top two", 0, 2, []string{"drink-2", "drink-3"}},
		{"ties by ascending index", 0, 4, []string{"drink-2", "drink-3", "drink-4", "drink-1"}},
		{"self excluded when not highest", 3, 2, []string{"drink-0", "drink-2"}},
		{"top_n larger than dataset", 1, 100, []string{"drink-0", "drink-2", "drink-3", "drink-4"}},
		{"top_n equal to rows minus one", 4, 4, []string{"drink-0", "drink-2", "drink-3", "drink-1"}},
		{"single", 2, 1, []string{"drink-0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e, scorer := newTestEngine(t, scores, Config{})
			got, err := e.Recommend(context.Background(), tt.index, tt.topN)
			if err != nil {
				t.Fatalf("Recommend: %v", err)
			}
			if !equalStrings(names(got), tt.want) {
				t.Errorf("got %v, want %v", names(got), tt.want)
			}
			if int(scorer.last.Load()) != tt.index {
				t.Errorf("model scored row %d, want %d", scorer.last.Load(), tt.index)
			}
		})
	}
}

func TestRecommend_Scenarios(t *testing.T) {
	tests := []struct {
		name   string
		scores []float64
		index  int
		topN   int
		want   []string
	}{
		{
			name:   "three-way tie keeps ascending index",
			scores: []float64{1.0, 0.1, 0.8, 0.2, 0.3, 0.8, 0.4, 0.8, 0.5},
			index:  0,
			topN:   3,
			want:   []string{"drink-2", "drink-5", "drink-7"},
		},
		{
			name:   "five records excluding the query row",
			scores: []float64{0.3, 0.9, 1.0, 0.1, 0.6},
			index:  2,
			topN:   3,
			want:   []string{"drink-1", "drink-4", "drink-0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e, _ := newTestEngine(t, tt.scores, Config{})
			got, err := e.Recommend(context.Background(), tt.index, tt.topN)
			if err != nil {
				t.Fatalf("Recommend: %v", err)
			}
			if !equalStrings(names(got), tt.want) {
				t.Errorf("got %v, want %v", names(got), tt.want)
			}
		})
	}
}

func TestRecommend_Deterministic(t *testing.T) {
	scores := []float64{0.5, 0.5, 0.5, 0.5, 0.5, 0.5}
	e, _ := newTestEngine(t, scores, Config{})

	first, err := e.Recommend(context.Background(), 2, 5)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	for i := 0; i < 20; i++ {
		again, err := e.Recommend(context.Background(), 2, 5)
		if err != nil {
			t.Fatalf("Recommend: %v", err)
		}
		if !equalStrings(names(first), names(again)) {
			t.Fatalf("run %d = %v, want %v", i, names(again), names(first))
		}
	}
	want := []string{"drink-0", "drink-1", "drink-3", "drink-4", "drink-5"}
	if !equalStrings(names(first), want) {
		t.Errorf("got %v, want %v", names(first), want)
	}
}

func TestRecommend_SingleRowDataset(t *testing.T) {
	e, _ := newTestEngine(t, []float64{1}, Config{})
	got, err := e.Recommend(context.Background(), 0, 10)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d records, want 0", len(got))
	}
}

func TestRecommend_DefaultsIngredients(t *testing.T) {
	scorer := &mockScorer{scores: []float64{1, 0.5}}
	recs := []models.DrinkRecord{{Name: "a"}, {Name: "b"}}
	e, err := NewEngine(recs, mockFeatures{rows: 2}, scorer, Config{}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	got, err := e.Recommend(context.Background(), 0, 1)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if got[0].Ingredients == nil {
		t.Error("Ingredients is nil, want empty map")
	}
}

// ========================================
// Validation and failures
// ========================================

func TestRecommend_InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		index   int
		topN    int
		wantErr error
	}{
		{"negative index", -1, 5, ErrInvalidIndex},
		{"index equal to rows", 3, 5, ErrInvalidIndex},
		{"index far out of range", 1000, 5, ErrInvalidIndex},
		{"zero top_n", 0, 0, ErrInvalidCount},
		{"negative top_n", 0, -3, ErrInvalidCount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e, scorer := newTestEngine(t, []float64{1, 2, 3}, Config{CacheSize: 8})
			got, err := e.Recommend(context.Background(), tt.index, tt.topN)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
			if got != nil {
				t.Errorf("got %v alongside error", got)
			}
			if n := scorer.calls.Load(); n != 0 {
				t.Errorf("model called %d times, want 0", n)
			}
		})
	}
}

func TestRecommend_ModelFailures(t *testing.T) {
	tests := []struct {
		name   string
		scores []float64
		err    error
	}{
		{"model error", nil, errors.New("onnx: session crashed")},
		{"short output", []float64{1, 2}, nil},
		{"long output", []float64{1, 2, 3, 4}, nil},
		{"NaN output", []float64{1, math.NaN(), 3}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			scorer := &mockScorer{scores: tt.scores, err: tt.err}
			e, err := NewEngine(drinkRecords(3), mockFeatures{rows: 3}, scorer, Config{CacheSize: 8}, zerolog.Nop())
			if err != nil {
				t.Fatalf("NewEngine: %v", err)
			}

			_, err = e.Recommend(context.Background(), 0, 2)
			if !errors.Is(err, ErrUnavailable) {
				t.Fatalf("err = %v, want ErrUnavailable", err)
			}
			if tt.err != nil && !errors.Is(err, tt.err) {
				t.Errorf("err = %v does not wrap model error", err)
			}
			if n := scorer.calls.Load(); n != 1 {
				t.Errorf("model called %d times, want exactly 1 (no retry)", n)
			}
			if e.cache.Len() != 0 {
				t.Error("failed result was cached")
			}
		})
	}
}

func TestRecommend_ContextCanceled(t *testing.T) {
	e, _ := newTestEngine(t, []float64{1, 2, 3}, Config{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Recommend(ctx, 0, 2)
	if !errors.Is(err, ErrUnavailable) || !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want ErrUnavailable wrapping context.Canceled", err)
	}
}

// slowScorer blocks until its context is done.
type slowScorer struct{}

func (slowScorer) Score(ctx context.Context, _ []float32) ([]float64, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestRecommend_Timeout(t *testing.T) {
	e, err := NewEngine(drinkRecords(2), mockFeatures{rows: 2}, slowScorer{}, Config{Timeout: 10 * time.Millisecond}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	_, err = e.Recommend(context.Background(), 0, 1)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want DeadlineExceeded", err)
	}
}

// ========================================
// Cache
// ========================================

func TestRecommend_CacheHit(t *testing.T) {
	e, scorer := newTestEngine(t, []float64{1, 0.5, 0.7}, Config{CacheSize: 4, CacheTTL: time.Minute})

	first, err := e.Recommend(context.Background(), 0, 2)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	first[0].Ingredients["Gin"] = "mutated"
	first[0].Name = "mutated"

	second, err := e.Recommend(context.Background(), 0, 2)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if n := scorer.calls.Load(); n != 1 {
		t.Errorf("model called %d times, want 1", n)
	}
	if second[0].Name != "drink-2" || second[0].Ingredients["Gin"] != "2 oz" {
		t.Errorf("cached result aliased caller state: %+v", second[0])
	}

	if _, err := e.Recommend(context.Background(), 0, 1); err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if n := scorer.calls.Load(); n != 2 {
		t.Errorf("different top_n should miss: model calls = %d, want 2", n)
	}

	stats := e.Stats()
	if stats.Requests != 3 || stats.CacheHits != 1 || stats.CacheMisses != 2 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestRecommend_CacheDisabled(t *testing.T) {
	e, scorer := newTestEngine(t, []float64{1, 0.5, 0.7}, Config{})
	for i := 0; i < 3; i++ {
		if _, err := e.Recommend(context.Background(), 1, 1); err != nil {
			t.Fatalf("Recommend: %v", err)
		}
	}
	if n := scorer.calls.Load(); n != 3 {
		t.Errorf("model called %d times, want 3", n)
	}
}

func TestPurgeExpired(t *testing.T) {
	e, scorer := newTestEngine(t, []float64{1, 0.5, 0.7}, Config{CacheSize: 4, CacheTTL: 20 * time.Millisecond})

	if _, err := e.Recommend(context.Background(), 0, 2); err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if n := e.PurgeExpired(); n != 0 {
		t.Errorf("purged %d fresh entries, want 0", n)
	}

	time.Sleep(40 * time.Millisecond)
	if n := e.PurgeExpired(); n != 1 {
		t.Errorf("purged %d, want 1", n)
	}

	if _, err := e.Recommend(context.Background(), 0, 2); err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if n := scorer.calls.Load(); n != 2 {
		t.Errorf("scorer calls = %d, want 2 after purge", n)
	}

	disabled, _ := newTestEngine(t, []float64{1, 2}, Config{})
	if n := disabled.PurgeExpired(); n != 0 {
		t.Errorf("disabled cache purged %d", n)
	}
}

func TestRecommend_Concurrent(t *testing.T) {
	scores := make([]float64, 50)
	for i := range scores {
		scores[i] = float64(i % 7)
	}
	e, _ := newTestEngine(t, scores, Config{CacheSize: 16})

	want, err := e.Recommend(context.Background(), 10, 5)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := e.Recommend(context.Background(), 10, 5)
			if err != nil {
				errs <- err
				return
			}
			if !equalStrings(names(got), names(want)) {
				errs <- fmt.Errorf("got %v, want %v", names(got), names(want))
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestRank(t *testing.T) {
	tests := []struct {
		name    string
		scores  []float64
		exclude int
		topN    int
		want    []int
	}{
		{"empty", nil, 0, 3, []int{}},
		{"excludes self", []float64{3, 2, 1}, 0, 5, []int{1, 2}},
		{"negative scores", []float64{-1, -0.5, -2}, 2, 2, []int{1, 0}},
		{"infinities", []float64{math.Inf(-1), 0, math.Inf(1)}, 1, 2, []int{2, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rank(tt.scores, tt.exclude, tt.topN)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("got %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}
