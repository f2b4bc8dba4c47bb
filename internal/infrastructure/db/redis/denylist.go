package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/appointly/identity-service/internal/core/domain"
)

// Denylist implements token revocation on Redis. Entries are keyed by token
// id and expire together with the token, so the set is self-pruning.
// Key format: revoked:<token_id>
type Denylist struct {
	client *redis.Client
}

// NewDenylist creates a Denylist wrapping the given Redis client.
func NewDenylist(client *redis.Client) *Denylist {
	return &Denylist{client: client}
}

// Revoke marks the token id as revoked until the token's expiry. Tokens
// already past expiry need no entry.
func (d *Denylist) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	if err := d.client.Set(ctx, d.key(tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("%w: revoke token: %v", domain.ErrStorageUnavailable, err)
	}
	return nil
}

// IsRevoked reports whether the token id is on the denylist. A Redis failure
// is an error, not a silent allow: revocation checks fail closed.
func (d *Denylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("%w: revocation check: %v", domain.ErrStorageUnavailable, err)
	}
	return n > 0, nil
}

func (d *Denylist) key(tokenID string) string {
	return "revoked:" + tokenID
}
