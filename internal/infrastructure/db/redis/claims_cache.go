package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// ClaimsVersionCache publishes the current claims version per principal so
// the auth middleware can flag credentials issued before the latest claims
// write. Key format: claims_ver:<uid>. Versions do not expire: the record in
// the document store is the source of truth and the cache is repopulated on
// every claims write.
type ClaimsVersionCache struct {
	client *redis.Client
}

// NewClaimsVersionCache wraps the given Redis client.
func NewClaimsVersionCache(client *redis.Client) *ClaimsVersionCache {
	return &ClaimsVersionCache{client: client}
}

// CurrentVersion returns the latest published version for the principal, or
// zero when none has been published yet.
func (c *ClaimsVersionCache) CurrentVersion(ctx context.Context, uid string) (int64, error) {
	v, err := c.client.Get(ctx, c.key(uid)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("claims version read: %w", err)
	}
	return v, nil
}

// SetVersion publishes a new claims version for the principal.
func (c *ClaimsVersionCache) SetVersion(ctx context.Context, uid string, version int64) error {
	return c.client.Set(ctx, c.key(uid), version, 0).Err()
}

func (c *ClaimsVersionCache) key(uid string) string {
	return "claims_ver:" + uid
}
