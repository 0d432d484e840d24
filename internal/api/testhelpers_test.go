// SoberShot - Drink Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sobershot

package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/sobershot/internal/catalog"
	"github.com/tomtom215/sobershot/internal/dataset"
	"github.com/tomtom215/sobershot/internal/models"
	"github.com/tomtom215/sobershot/internal/recommend"
	"github.com/tomtom215/sobershot/internal/similarity"
)

// fakeStore is an in-memory catalog.Store with injectable failures.
type fakeStore struct {
	mu      sync.Mutex
	drinks  []models.DrinkRecord
	err     error
	pingErr error

	inserts atomic.Int32
}

func (s *fakeStore) InsertIfAbsent(_ context.Context, rec models.DrinkRecord) (models.StoredDrink, error) {
	s.inserts.Add(1)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return models.StoredDrink{}, s.err
	}
	for i := range s.drinks {
		if s.drinks[i].Name == rec.Name {
			return models.StoredDrink{}, catalog.ErrDuplicateKey
		}
	}
	s.drinks = append(s.drinks, rec)
	return models.StoredDrink{DrinkRecord: rec, ID: "id-" + rec.Name}, nil
}

func (s *fakeStore) SearchByText(_ context.Context, query string) ([]models.DrinkRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	q := strings.ToLower(query)
	var out []models.DrinkRecord
	for i := range s.drinks {
		if strings.Contains(strings.ToLower(s.drinks[i].Name), q) ||
			strings.Contains(strings.ToLower(s.drinks[i].Category), q) {
			out = append(out, s.drinks[i])
		}
	}
	if len(out) == 0 {
		return nil, catalog.ErrNoMatch
	}
	return out, nil
}

func (s *fakeStore) Ping(context.Context) error { return s.pingErr }
func (s *fakeStore) Close() error               { return nil }

// failingScorer always errors.
type failingScorer struct {
	calls atomic.Int32
}

func (f *failingScorer) Score(context.Context, []float32) ([]float64, error) {
	f.calls.Add(1)
	return nil, errors.New("model exploded")
}

// testDrinks are row-aligned with testVectors.
func testDrinks() []models.DrinkRecord {
	return []models.DrinkRecord{
		{Name: "Margarita", Category: "Cocktail", Ingredients: map[string]string{"Tequila": "2 oz"}, Glass: "Coupe"},
		{Name: "Paloma", Category: "Cocktail", Ingredients: map[string]string{"Tequila": "2 oz", "Grapefruit": "4 oz"}},
		{Name: "Hot Chocolate", Category: "Cocoa"},
		{Name: "Mocha Martini", Category: "Cocktail"},
	}
}

var testVectors = []float32{
	1, 0,
	0.9, 0.1,
	0, 1,
	0.5, 0.5,
}

func newTestEngine(t *testing.T, scorer recommend.Scorer) *recommend.Engine {
	t.Helper()
	m, err := dataset.NewMatrix(4, 2, append([]float32(nil), testVectors...))
	if err != nil {
		t.Fatalf("NewMatrix: %v", err)
	}
	if scorer == nil {
		scorer = similarity.NewCosine(m)
	}
	engine, err := recommend.NewEngine(testDrinks(), m, scorer, recommend.Config{}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return engine
}

// newTestServer returns the full router with rate limiting disabled.
func newTestServer(t *testing.T, store catalog.Store, rec Recommender) http.Handler {
	t.Helper()
	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitDisabled = true
	return NewRouter(NewHandler(store, rec, nil), NewChiMiddleware(cfg)).SetupChi()
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rr.Body.String(), err)
	}
	return out
}

func detailOf(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	return decodeBody[models.ErrorResponse](t, rr).Detail
}

func recordNames(recs []models.DrinkRecord) []string {
	names := make([]string, len(recs))
	for i := range recs {
		names[i] = recs[i].Name
	}
	return names
}
