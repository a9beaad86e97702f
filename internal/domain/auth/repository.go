package auth

import (
	"context"
	"time"
)

// Repository abstracts user persistence.
type Repository interface {
	Create(ctx context.Context, user User) (User, error)
	GetByEmail(ctx context.Context, email string) (User, bool, error)
	GetByID(ctx context.Context, id int64) (User, bool, error)
}

// RevocationStore remembers revoked token IDs until they would have expired anyway.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
