// Mealshare - Dish Catalog, Favorites and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mealshare

package recommend

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/mealshare/internal/models"
)

// mockDataProvider implements DataProvider for testing.
type mockDataProvider struct {
	mu         sync.Mutex
	dishes     map[int64]models.Dish
	getErr     error
	listErr    error
	listCalls  atomic.Int32
	lastExcept int64
}

func newMockProvider(dishes ...models.Dish) *mockDataProvider {
	m := &mockDataProvider{dishes: make(map[int64]models.Dish)}
	for _, d := range dishes {
		m.dishes[d.ID] = d
	}
	return m
}

func (m *mockDataProvider) GetDish(_ context.Context, id int64) (*models.Dish, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.dishes[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (m *mockDataProvider) ListCandidates(_ context.Context, excludeID int64) ([]models.Dish, error) {
	m.listCalls.Add(1)
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastExcept = excludeID
	out := make([]models.Dish, 0, len(m.dishes))
	for id, d := range m.dishes {
		if id != excludeID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *mockDataProvider) put(d models.Dish) {
	m.mu.Lock()
	m.dishes[d.ID] = d
	m.mu.Unlock()
}

func testDishes() []models.Dish {
	return []models.Dish{
		{ID: 1, Name: "Pancakes", Ingredients: Ingredients{"flour": 2, "egg": 1, "milk": 1}},
		{ID: 2, Name: "Crepes", Ingredients: Ingredients{"flour": 2, "egg": 1, "milk": 1}},
		{ID: 3, Name: "Shortbread", Ingredients: Ingredients{"flour": 1, "sugar": 1, "butter": 1}},
		{ID: 4, Name: "Omelette", Ingredients: Ingredients{"egg": 3}},
		{ID: 5, Name: "Rice", Ingredients: Ingredients{"rice": 1}},
		{ID: 6, Name: "Water"},
		{ID: 7, Name: "Bread", Ingredients: Ingredients{"flour": 2, "water": 1}},
		{ID: 8, Name: "Pasta", Ingredients: Ingredients{"flour": 2, "egg": 1}},
	}
}

func newTestRecommender(t *testing.T, p DataProvider, cfg Config) *Recommender {
	t.Helper()
	r, err := NewRecommender(p, cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewRecommender() error = %v", err)
	}
	t.Cleanup(r.Close)
	return r
}

func TestRecommend(t *testing.T) {
	t.Parallel()

	r := newTestRecommender(t, newMockProvider(testDishes()...), Config{TopK: 5})

	got, err := r.Recommend(context.Background(), 1)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("Recommend() returned %d dishes, want 5", len(got))
	}

	wantIDs := []int64{2, 8, 7, 4, 3}
	for i, id := range wantIDs {
		if got[i].ID != id {
			t.Errorf("Recommend()[%d].ID = %d, want %d", i, got[i].ID, id)
		}
	}
	for _, d := range got {
		if d.ID == 1 {
			t.Error("Recommend() included the target dish")
		}
		if d.Name == "" {
			t.Errorf("Recommend() dish %d missing full representation", d.ID)
		}
	}
}

func TestRecommendErrors(t *testing.T) {
	t.Parallel()

	fetchErr := errors.New("connection reset")

	tests := []struct {
		name     string
		provider *mockDataProvider
		dishID   int64
		wantErr  error
	}{
		{name: "unknown dish", provider: newMockProvider(testDishes()...), dishID: 99, wantErr: ErrNotFound},
		{name: "target without ingredients", provider: newMockProvider(testDishes()...), dishID: 6, wantErr: ErrInvalidInput},
		{
			name:     "target fetch failure",
			provider: func() *mockDataProvider { m := newMockProvider(testDishes()...); m.getErr = fetchErr; return m }(),
			dishID:   1,
			wantErr:  fetchErr,
		},
		{
			name:     "candidate fetch failure",
			provider: func() *mockDataProvider { m := newMockProvider(testDishes()...); m.listErr = fetchErr; return m }(),
			dishID:   1,
			wantErr:  fetchErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := newTestRecommender(t, tt.provider, Config{})
			got, err := r.Recommend(context.Background(), tt.dishID)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Recommend() error = %v, want %v", err, tt.wantErr)
			}
			if got != nil {
				t.Errorf("Recommend() = %v, want nil", got)
			}
		})
	}
}

func TestRecommendFewerThanK(t *testing.T) {
	t.Parallel()

	p := newMockProvider(
		models.Dish{ID: 1, Name: "A", Ingredients: Ingredients{"egg": 1}},
		models.Dish{ID: 2, Name: "B", Ingredients: Ingredients{"egg": 1}},
	)
	r := newTestRecommender(t, p, Config{TopK: 5})

	got, err := r.Recommend(context.Background(), 1)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != 2 {
		t.Errorf("Recommend() = %+v, want only dish 2", got)
	}
}

func TestRecommendCacheAndInvalidate(t *testing.T) {
	t.Parallel()

	p := newMockProvider(testDishes()...)
	r := newTestRecommender(t, p, Config{TopK: 1, CacheTTL: time.Minute})
	ctx := context.Background()

	first, err := r.Recommend(ctx, 4)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if _, err := r.Recommend(ctx, 4); err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if calls := p.listCalls.Load(); calls != 1 {
		t.Errorf("ListCandidates called %d times, want 1 (second call cached)", calls)
	}

	// A new exact match for the omelette must show up after invalidation.
	p.put(models.Dish{ID: 100, Name: "Scramble", Ingredients: Ingredients{"egg": 3}})
	r.Invalidate()

	second, err := r.Recommend(ctx, 4)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if calls := p.listCalls.Load(); calls != 2 {
		t.Errorf("ListCandidates called %d times, want 2 after invalidation", calls)
	}
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("Recommend() lengths = %d, %d, want 1, 1", len(first), len(second))
	}
	if second[0].ID != 100 {
		t.Errorf("Recommend() after invalidation = %d, want 100", second[0].ID)
	}
}

// gatedProvider holds the first ListCandidates call until release is closed.
type gatedProvider struct {
	*mockDataProvider
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func (g *gatedProvider) ListCandidates(ctx context.Context, excludeID int64) ([]models.Dish, error) {
	dishes, err := g.mockDataProvider.ListCandidates(ctx, excludeID)
	g.once.Do(func() {
		close(g.entered)
		<-g.release
	})
	return dishes, err
}

func (m *mockDataProvider) remove(id int64) {
	m.mu.Lock()
	delete(m.dishes, id)
	m.mu.Unlock()
}

func TestRecommendInvalidateDuringLoadSkipsCache(t *testing.T) {
	t.Parallel()

	base := newMockProvider(testDishes()...)
	gated := &gatedProvider{mockDataProvider: base, entered: make(chan struct{}), release: make(chan struct{})}
	r := newTestRecommender(t, gated, Config{TopK: 1, CacheTTL: time.Minute})
	ctx := context.Background()

	type result struct {
		dishes []models.Dish
		err    error
	}
	done := make(chan result, 1)
	go func() {
		d, err := r.Recommend(ctx, 1)
		done <- result{d, err}
	}()

	<-gated.entered
	// Crepes is deleted after the candidates were read.
	base.remove(2)
	r.Invalidate()
	close(gated.release)

	res := <-done
	if res.err != nil {
		t.Fatalf("Recommend() error = %v", res.err)
	}
	if len(res.dishes) != 1 || res.dishes[0].ID != 2 {
		t.Fatalf("in-flight Recommend() = %+v, want the pre-delete ranking", res.dishes)
	}

	// The in-flight ranking must not have been cached.
	after, err := r.Recommend(ctx, 1)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	for _, d := range after {
		if d.ID == 2 {
			t.Errorf("deleted dish 2 served after Invalidate: %+v", after)
		}
	}
	if calls := base.listCalls.Load(); calls != 2 {
		t.Errorf("ListCandidates called %d times, want 2", calls)
	}
}

func TestRecommendWithoutCache(t *testing.T) {
	t.Parallel()

	p := newMockProvider(testDishes()...)
	r := newTestRecommender(t, p, Config{TopK: 3})

	for i := 0; i < 3; i++ {
		if _, err := r.Recommend(context.Background(), 1); err != nil {
			t.Fatalf("Recommend() error = %v", err)
		}
	}
	if calls := p.listCalls.Load(); calls != 3 {
		t.Errorf("ListCandidates called %d times, want 3", calls)
	}
	r.Invalidate()
}

func TestRecommendParallelPath(t *testing.T) {
	t.Parallel()

	dishes := testDishes()
	serial := newTestRecommender(t, newMockProvider(dishes...), Config{TopK: 5})
	parallel := newTestRecommender(t, newMockProvider(dishes...), Config{TopK: 5, ParallelThreshold: 2, Workers: 3})

	want, err := serial.Recommend(context.Background(), 1)
	if err != nil {
		t.Fatalf("serial Recommend() error = %v", err)
	}
	got, err := parallel.Recommend(context.Background(), 1)
	if err != nil {
		t.Fatalf("parallel Recommend() error = %v", err)
	}
	for i := range want {
		if got[i].ID != want[i].ID {
			t.Errorf("parallel Recommend()[%d].ID = %d, want %d", i, got[i].ID, want[i].ID)
		}
	}
}

func TestNewRecommenderDefaults(t *testing.T) {
	t.Parallel()

	r := newTestRecommender(t, newMockProvider(), Config{})
	if r.cfg.TopK != 5 {
		t.Errorf("TopK = %d, want 5", r.cfg.TopK)
	}
	if r.cfg.Workers < 1 {
		t.Errorf("Workers = %d, want >= 1", r.cfg.Workers)
	}
	if r.cache != nil {
		t.Error("cache created with zero TTL")
	}
}
