package tokenstore

import (
	"context"
	"sync"
	"time"

	"github.com/yanqian/unievents/internal/domain/auth"
)

// MemoryStore tracks revoked token IDs in process memory.
type MemoryStore struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

// NewMemoryStore constructs an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{revoked: make(map[string]time.Time), now: time.Now}
}

// Revoke marks the token ID revoked for ttl.
func (s *MemoryStore) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	if tokenID == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[tokenID] = s.now().Add(ttl)
	s.sweep()
	return nil
}

// IsRevoked reports whether the token ID is still on the revocation list.
func (s *MemoryStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp, ok := s.revoked[tokenID]
	if !ok {
		return false, nil
	}
	if exp.Before(s.now()) {
		delete(s.revoked, tokenID)
		return false, nil
	}
	return true, nil
}

func (s *MemoryStore) sweep() {
	now := s.now()
	for id, exp := range s.revoked {
		if exp.Before(now) {
			delete(s.revoked, id)
		}
	}
}

var _ auth.RevocationStore = (*MemoryStore)(nil)
