package cache

import (
	"context"
	"fmt"
	"os"
)

// Backend names accepted by Open.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// Environment variables consulted by Open when Config leaves an address
// empty.
const (
	EnvRedisAddr = "LINTRANS_REDIS_ADDR"
	EnvMongoURI  = "LINTRANS_MONGO_URI"
)

// Config selects and configures a backend.
type Config struct {
	Backend   string `toml:"backend" yaml:"backend"`
	Dir       string `toml:"dir" yaml:"dir"`
	RedisAddr string `toml:"redis_addr" yaml:"redis_addr"`
	MongoURI  string `toml:"mongo_uri" yaml:"mongo_uri"`
}

// Open returns the cache described by cfg. An empty backend selects the
// file cache in DefaultDir.
func Open(ctx context.Context, cfg Config) (Cache, error) {
	switch cfg.Backend {
	case "", BackendFile:
		dir := cfg.Dir
		if dir == "" {
			d, err := DefaultDir()
			if err != nil {
				return nil, fmt.Errorf("resolve cache dir: %w", err)
			}
			dir = d
		}
		c, err := NewFileCache(dir)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendRedis:
		addr := firstNonEmpty(cfg.RedisAddr, os.Getenv(EnvRedisAddr), "localhost:6379")
		c, err := NewRedisCache(ctx, addr)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendMongo:
		uri := firstNonEmpty(cfg.MongoURI, os.Getenv(EnvMongoURI), "mongodb://localhost:27017")
		c, err := NewMongoCache(ctx, uri)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendNone:
		return NewNullCache(), nil
	default:
		return nil, fmt.Errorf("%w: %q (must be one of: file, redis, mongo, none)", ErrUnknownBackend, cfg.Backend)
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
