package eventrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/yanqian/unievents/internal/domain/event"
)

// MemoryRepository provides an in-memory event store for tests/dev.
// Listings keep insertion order within a day.
type MemoryRepository struct {
	mu     sync.RWMutex
	order  []string
	events map[string]event.Event
}

// NewMemoryRepository constructs a repository preloaded with events.
func NewMemoryRepository(seed ...event.Event) *MemoryRepository {
	repo := &MemoryRepository{events: make(map[string]event.Event, len(seed))}
	for _, ev := range seed {
		if _, exists := repo.events[ev.ID]; exists {
			continue
		}
		repo.order = append(repo.order, ev.ID)
		repo.events[ev.ID] = ev
	}
	return repo
}

// ListByDateRange returns events dated within [from, to).
func (r *MemoryRepository) ListByDateRange(_ context.Context, from, to string) ([]event.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]event.Event, 0)
	for _, id := range r.order {
		ev := r.events[id]
		if ev.Date >= from && ev.Date < to {
			out = append(out, ev)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

// ListByClub returns every event owned by the named club.
func (r *MemoryRepository) ListByClub(_ context.Context, clubName string) ([]event.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]event.Event, 0)
	for _, id := range r.order {
		if ev := r.events[id]; ev.ClubName == clubName {
			out = append(out, ev)
		}
	}
	return out, nil
}

// Get fetches by ID.
func (r *MemoryRepository) Get(_ context.Context, id string) (event.Event, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ev, ok := r.events[id]
	return ev, ok, nil
}

// Create stores a new event.
func (r *MemoryRepository) Create(_ context.Context, ev event.Event) (event.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.events[ev.ID]; exists {
		return event.Event{}, event.ErrDuplicateID
	}
	r.order = append(r.order, ev.ID)
	r.events[ev.ID] = ev
	return ev, nil
}

// Update replaces an existing event in place.
func (r *MemoryRepository) Update(_ context.Context, ev event.Event) (event.Event, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.events[ev.ID]; !exists {
		return event.Event{}, false, nil
	}
	r.events[ev.ID] = ev
	return ev, true, nil
}

var _ event.Repository = (*MemoryRepository)(nil)
