package tokenstore

import (
	"context"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/unievents/internal/domain/auth"
)

// ValkeyStore keeps revoked token IDs in Valkey with an expiry matching the token's.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "unievents"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

func (s *ValkeyStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if tokenID == "" {
		return nil
	}
	if ttl < time.Second {
		ttl = time.Second
	}
	cmd := s.client.B().Set().Key(s.key(tokenID)).Value("1").Ex(ttl).Build()
	return s.client.Do(ctx, cmd).Error()
}

func (s *ValkeyStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Do(ctx, s.client.B().Exists().Key(s.key(tokenID)).Build()).AsInt64()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *ValkeyStore) key(tokenID string) string {
	return fmt.Sprintf("%s:revoked:%s", s.prefix, tokenID)
}

var _ auth.RevocationStore = (*ValkeyStore)(nil)
