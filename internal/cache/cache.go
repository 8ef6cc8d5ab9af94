package cache

import (
	"context"
	"time"
)

// Repository is the read-cache abstraction wrapped around the query
// surface. Misses are reported as (found=false, nil error) so callers can
// fall through to the store without error plumbing.
type Repository interface {
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeletePrefix(ctx context.Context, prefix string) error
}

// Cache key namespaces invalidated on claim, mint and reset. Leaderboard
// keys carry a limit suffix, so invalidation works by prefix.
const (
	KeyLeaderboardExpensive = "leaderboard:expensive"
	KeyLeaderboardRecent    = "leaderboard:recent"
	KeyPlatformStats        = "leaderboard:stats"

	leaderboardPrefix = "leaderboard:"
)

// InvalidateLeaderboards drops the cached leaderboard reads after any
// mutation of the ledger. Best effort; a stale entry expires by TTL.
func InvalidateLeaderboards(ctx context.Context, c Repository) error {
	return c.DeletePrefix(ctx, leaderboardPrefix)
}
