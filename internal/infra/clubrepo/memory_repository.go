package clubrepo

import (
	"context"
	"sync"

	"github.com/yanqian/unievents/internal/domain/club"
)

// MemoryRepository keeps the club directory in process memory.
type MemoryRepository struct {
	mu    sync.RWMutex
	order []string
	clubs map[string]club.Club
}

// NewMemoryRepository constructs an empty directory.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{clubs: make(map[string]club.Club)}
}

// List returns clubs in insertion order.
func (r *MemoryRepository) List(_ context.Context) ([]club.Club, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]club.Club, 0, len(r.order))
	for _, slug := range r.order {
		out = append(out, r.clubs[slug])
	}
	return out, nil
}

// GetBySlug fetches one club.
func (r *MemoryRepository) GetBySlug(_ context.Context, slug string) (club.Club, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.clubs[slug]
	return c, ok, nil
}

// UpdateLogo points the club at a new logo URL.
func (r *MemoryRepository) UpdateLogo(_ context.Context, slug, logoURL string) (club.Club, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.clubs[slug]
	if !ok {
		return club.Club{}, false, nil
	}
	c.LogoURL = logoURL
	r.clubs[slug] = c
	return c, true, nil
}

// Upsert inserts or replaces a club by slug. A stored logo URL survives a replace.
func (r *MemoryRepository) Upsert(_ context.Context, c club.Club) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.clubs[c.Slug]; ok {
		if existing.LogoURL != "" {
			c.LogoURL = existing.LogoURL
		}
	} else {
		r.order = append(r.order, c.Slug)
	}
	r.clubs[c.Slug] = c
	return nil
}

var _ club.Repository = (*MemoryRepository)(nil)
