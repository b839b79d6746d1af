package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

const (
	postKeyPrefix    = "post:%d"
	userKeyPrefix    = "user:%d"
	reactionsListKey = "reactions:catalog"
	revokedKeyPrefix = "revoked:%s"
)

const (
	PostTTL      = 10 * time.Minute
	UserTTL      = 5 * time.Minute
	ReactionsTTL = time.Hour
)

func PostKey(postID uint) string {
	return fmt.Sprintf(postKeyPrefix, postID)
}

func UserKey(userID uint) string {
	return fmt.Sprintf(userKeyPrefix, userID)
}

func ReactionsKey() string {
	return reactionsListKey
}

func revokedKey(token string) string {
	return fmt.Sprintf(revokedKeyPrefix, token)
}

// Aside implements the cache-aside pattern: return the cached value when
// present, otherwise run fetch (which must populate dest) and store the
// result. A nil client degrades to calling fetch directly.
func Aside(ctx context.Context, key string, dest interface{}, ttl time.Duration, fetch func() error) error {
	if client == nil {
		return fetch()
	}

	raw, err := client.Get(ctx, key).Result()
	if err == nil {
		if unmarshalErr := json.Unmarshal([]byte(raw), dest); unmarshalErr == nil {
			return nil
		}
		// Corrupt entry: drop it and fall through to the source of truth.
		client.Del(ctx, key)
	}

	if err := fetch(); err != nil {
		return err
	}

	if encoded, marshalErr := json.Marshal(dest); marshalErr == nil {
		client.Set(ctx, key, encoded, ttl)
	}
	return nil
}

// Invalidate removes a key; it is a no-op without a client.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateReactions(ctx context.Context) {
	Invalidate(ctx, ReactionsKey())
}

// MarkTokenRevoked stores a revoked token for its remaining validity.
// The database row is the source of truth; this is only the fast path.
func MarkTokenRevoked(ctx context.Context, token string, ttl time.Duration) {
	if client == nil || ttl <= 0 {
		return
	}
	client.Set(ctx, revokedKey(token), "1", ttl)
}

// IsTokenRevoked reports whether the token is known-revoked in the fast path.
// Only a positive hit is authoritative: the cache can lose entries (restart,
// flush, eviction) while the database row remains, so a miss returns ok=false
// and the caller must consult the database.
func IsTokenRevoked(ctx context.Context, token string) (bool, bool) {
	if client == nil {
		return false, false
	}
	_, err := client.Get(ctx, revokedKey(token)).Result()
	if err == nil {
		return true, true
	}
	return false, false
}
