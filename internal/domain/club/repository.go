package club

import (
	"context"

	"github.com/yanqian/unievents/internal/domain/event"
)

// Repository abstracts club persistence.
type Repository interface {
	List(ctx context.Context) ([]Club, error)
	GetBySlug(ctx context.Context, slug string) (Club, bool, error)
	UpdateLogo(ctx context.Context, slug, logoURL string) (Club, bool, error)
}

// LogoStorage keeps logo images in blob storage.
type LogoStorage interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (StoredLogo, error)
	Get(ctx context.Context, key string) (LogoObject, bool, error)
}

// EventLister is the slice of the event service the club pages need.
type EventLister interface {
	ListByClub(ctx context.Context, clubName string) ([]event.Event, error)
}
