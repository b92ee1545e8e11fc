package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/clinicore/clinicore/internal/model"
)

const (
	// identityCachePrefix is the Redis key prefix for resolved identities.
	identityCachePrefix = "auth:identity:"
	// identityCacheTTL caps how long a resolved identity is reused.
	// Token signature and expiry are still verified on every request;
	// only the user lookup is cached, so a deleted user is rejected
	// within this window at the latest.
	identityCacheTTL = 5 * time.Minute
)

// GetIdentity retrieves a cached identity by token cache key.
// Returns nil on a cache miss.
func (c *Cache) GetIdentity(ctx context.Context, cacheKey string) (*model.Identity, error) {
	key := identityCachePrefix + cacheKey

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		// Cache miss is not an error
		return nil, nil //nolint:nilerr
	}

	var identity model.Identity
	if err := json.Unmarshal(data, &identity); err != nil {
		// Corrupted cache entry - treat as miss
		return nil, nil //nolint:nilerr
	}

	return &identity, nil
}

// SetIdentity caches a resolved identity.
func (c *Cache) SetIdentity(ctx context.Context, cacheKey string, identity *model.Identity) error {
	key := identityCachePrefix + cacheKey

	data, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("marshal identity: %w", err)
	}

	return c.client.Set(ctx, key, data, identityCacheTTL).Err()
}

// DeleteIdentity removes a cached identity.
// Used on logout so a discarded token stops resolving immediately.
func (c *Cache) DeleteIdentity(ctx context.Context, cacheKey string) error {
	key := identityCachePrefix + cacheKey
	return c.client.Del(ctx, key).Err()
}
