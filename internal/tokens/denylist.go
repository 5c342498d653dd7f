package tokens

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// Denylist stores revoked token ids (jti) until their natural expiry, so a
// logged-out token stops working before it expires.
type Denylist struct {
	rdb *redis.Client
}

func NewDenylist(rdb *redis.Client) *Denylist {
	return &Denylist{rdb: rdb}
}

func key(jti string) string {
	return "revoked_token:" + jti
}

func (d *Denylist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		// Token already expired, nothing to remember.
		return nil
	}
	return d.rdb.Set(ctx, key(jti), "1", ttl).Err()
}

func (d *Denylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := d.rdb.Exists(ctx, key(jti)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
