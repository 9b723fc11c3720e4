// Package trends implements the in-memory trend repository.
//
// The Store is the single piece of shared mutable state in the process. All
// writes go through one mutex held for the duration of the read-modify-write;
// reads hand out value copies, never pointers into the store.
package trends

import (
	"context"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/trendpulse/trendpulse/internal/domain"
	"github.com/trendpulse/trendpulse/internal/metrics"
)

// Store is a mutex-guarded in-memory domain.TrendRepository.
type Store struct {
	clock clockwork.Clock

	mu     sync.RWMutex
	byID   map[int64]*domain.Trend
	order  []int64
	nextID int64
}

var _ domain.TrendRepository = (*Store)(nil)

func NewStore(clock clockwork.Clock) *Store {
	return &Store{
		clock:  clock,
		byID:   make(map[int64]*domain.Trend),
		nextID: 1,
	}
}

// List returns all active trends in creation order.
func (s *Store) List(_ context.Context) ([]domain.Trend, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(t *domain.Trend) bool { return true }), nil
}

// ListByCategory returns active trends in the given category.
func (s *Store) ListByCategory(_ context.Context, category domain.Category) ([]domain.Trend, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(t *domain.Trend) bool { return t.Category == category }), nil
}

// ListByRegion returns active trends in the given region.
func (s *Store) ListByRegion(_ context.Context, region string) ([]domain.Trend, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(t *domain.Trend) bool { return t.Region == region }), nil
}

// Get returns the active trend with the given id.
func (s *Store) Get(_ context.Context, id int64) (domain.Trend, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.byID[id]
	if !ok || !t.IsActive {
		return domain.Trend{}, domain.ErrTrendNotFound
	}
	return *t, nil
}

// Create allocates the next id, applies defaults and clamps, and stores the
// trend. The stored value is returned.
func (s *Store) Create(_ context.Context, draft domain.TrendDraft) (domain.Trend, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := domain.Trend{
		ID:         s.nextID,
		Title:      draft.Title,
		Category:   draft.Category,
		Region:     draft.Region,
		Searches:   clampSearches(draft.Searches),
		Growth:     clampGrowth(draft.Growth),
		Countries:  draft.Countries,
		AISummary:  draft.AISummary,
		Prediction: draft.Prediction,
		IsActive:   true,
		CreatedAt:  s.clock.Now(),
	}
	s.nextID++

	s.byID[t.ID] = &t
	s.order = append(s.order, t.ID)

	metrics.StoreTrendsCreatedTotal.Inc()
	metrics.StoreActiveTrends.Set(float64(s.activeCount()))

	return t, nil
}

// Update applies a partial mutation to an active trend. Clamps are enforced
// on every write path, so no caller can push a trend out of bounds.
func (s *Store) Update(_ context.Context, id int64, change domain.TrendChange) (domain.Trend, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.byID[id]
	if !ok || !t.IsActive {
		return domain.Trend{}, domain.ErrTrendNotFound
	}

	if change.Searches != nil {
		t.Searches = clampSearches(*change.Searches)
	}
	if change.Growth != nil {
		t.Growth = clampGrowth(*change.Growth)
	}

	return *t, nil
}

// collect must be called with at least the read lock held.
func (s *Store) collect(keep func(*domain.Trend) bool) []domain.Trend {
	result := make([]domain.Trend, 0, len(s.order))
	for _, id := range s.order {
		t := s.byID[id]
		if t.IsActive && keep(t) {
			result = append(result, *t)
		}
	}
	return result
}

func (s *Store) activeCount() int {
	n := 0
	for _, t := range s.byID {
		if t.IsActive {
			n++
		}
	}
	return n
}

func clampSearches(searches int64) int64 {
	if searches < domain.SearchesFloor {
		return domain.SearchesFloor
	}
	return searches
}

func clampGrowth(growth float64) float64 {
	if growth < domain.GrowthMin {
		return domain.GrowthMin
	}
	if growth > domain.GrowthMax {
		return domain.GrowthMax
	}
	return growth
}
