// Package bootstrap establishes runtime dependencies shared by the binaries.
package bootstrap

import (
	"fmt"

	"microblog/internal/cache"
	"microblog/internal/config"
	"microblog/internal/database"
	"microblog/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedReactions upserts the reaction-kind catalog after connecting.
	// The API cannot serve reactions without it.
	SeedReactions bool
}

// InitRuntime connects to the database and Redis and optionally seeds the
// reaction catalog. The Redis client is nil when the server is unreachable;
// callers degrade to the database-only paths.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if opts.SeedReactions {
		if err := seed.ReactionReferences(db); err != nil {
			return nil, nil, fmt.Errorf("failed to seed reaction catalog: %w", err)
		}
	}

	return db, r, nil
}
