package event

import (
	"context"
	"time"
)

// Repository abstracts event persistence.
// Date bounds are YYYY-MM-DD keys; from is inclusive, to is exclusive.
type Repository interface {
	ListByDateRange(ctx context.Context, from, to string) ([]Event, error)
	ListByClub(ctx context.Context, clubName string) ([]Event, error)
	Get(ctx context.Context, id string) (Event, bool, error)
	Create(ctx context.Context, event Event) (Event, error)
	Update(ctx context.Context, event Event) (Event, bool, error)
}

// RangeCache caches grouped range listings. Version is read before the repository query and handed
// back to Save; a Save carrying a version older than the latest Invalidate must not be visible to Get.
type RangeCache interface {
	Version(ctx context.Context) (int64, error)
	Get(ctx context.Context, version int64, from, to string) (map[string][]Event, bool, error)
	Save(ctx context.Context, version int64, from, to string, grouped map[string][]Event, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}
