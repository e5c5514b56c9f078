// Package bootstrap wires up the process-level dependencies shared by the
// API server and the operational commands.
package bootstrap

import (
	"fmt"
	"log"

	"github.com/clairelorenzo/app-backend-6104/internal/cache"
	"github.com/clairelorenzo/app-backend-6104/internal/config"
	"github.com/clairelorenzo/app-backend-6104/internal/database"
	"github.com/clairelorenzo/app-backend-6104/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedDemoData populates the database with demo users, posts, and
	// friendships after connecting. Development environments only.
	SeedDemoData bool
}

// InitRuntime connects to DB and Redis and optionally runs demo seeding.
// The returned Redis client is nil when the cache is unreachable; callers
// own both handles and close them on shutdown.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	// Connect DB
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Init Redis (may result in nil client if unreachable)
	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if opts.SeedDemoData {
		if err := seedDemoData(cfg, db); err != nil {
			return nil, nil, err
		}
	}

	return db, r, nil
}

func seedDemoData(cfg *config.Config, db *gorm.DB) error {
	if cfg.Env != "" && cfg.Env != "development" {
		return fmt.Errorf("demo seeding is limited to development, current env is %q", cfg.Env)
	}
	if err := seed.Seed(db, seed.Options{}); err != nil {
		return fmt.Errorf("failed to seed demo data: %w", err)
	}
	log.Println("demo data seeded for development")
	return nil
}
