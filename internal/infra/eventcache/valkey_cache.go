package eventcache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/unievents/internal/domain/event"
)

// ValkeyCache stores grouped range listings in Valkey. Keys embed a generation number;
// Invalidate bumps the generation so every older entry becomes unreachable and ages out by TTL.
type ValkeyCache struct {
	client valkey.Client
	prefix string
}

// NewValkeyCache constructs a cache backed by Valkey.
func NewValkeyCache(client valkey.Client, prefix string) *ValkeyCache {
	if prefix == "" {
		prefix = "unievents"
	}
	return &ValkeyCache{client: client, prefix: prefix}
}

// Version returns the generation the next Get and Save should use.
func (c *ValkeyCache) Version(ctx context.Context) (int64, error) {
	return c.generation(ctx)
}

func (c *ValkeyCache) Get(ctx context.Context, version int64, from, to string) (map[string][]event.Event, bool, error) {
	payload, err := c.client.Do(ctx, c.client.B().Get().Key(c.entryKey(version, from, to)).Build()).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var grouped map[string][]event.Event
	if err := json.Unmarshal([]byte(payload), &grouped); err != nil {
		return nil, false, err
	}
	return grouped, true, nil
}

// Save writes under the generation read before the listing was loaded. After an Invalidate
// that key is never read again and ages out by TTL.
func (c *ValkeyCache) Save(ctx context.Context, version int64, from, to string, grouped map[string][]event.Event, ttl time.Duration) error {
	payload, err := json.Marshal(grouped)
	if err != nil {
		return err
	}
	builder := c.client.B().Set().Key(c.entryKey(version, from, to)).Value(string(payload))
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return c.client.Do(ctx, cmd).Error()
}

func (c *ValkeyCache) Invalidate(ctx context.Context) error {
	return c.client.Do(ctx, c.client.B().Incr().Key(c.generationKey()).Build()).Error()
}

func (c *ValkeyCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Do(ctx, c.client.B().Get().Key(c.generationKey()).Build()).AsInt64()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return 0, nil
		}
		return 0, err
	}
	return gen, nil
}

func (c *ValkeyCache) generationKey() string {
	return fmt.Sprintf("%s:events:gen", c.prefix)
}

func (c *ValkeyCache) entryKey(gen int64, from, to string) string {
	return fmt.Sprintf("%s:events:%d:%s:%s", c.prefix, gen, from, to)
}

var _ event.RangeCache = (*ValkeyCache)(nil)
