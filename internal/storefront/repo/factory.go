package repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/qkart/storefront/internal/storefront/model"
	pkgredis "github.com/qkart/storefront/pkg/redis"
)

const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// NewSessionRepository builds the backend selected by SESSION_BACKEND. The returned
// close func releases whatever the backend holds open.
func NewSessionRepository(ctx context.Context, cfg model.SessionConfig, redisCfg pkgredis.Config) (model.SessionRepository, func() error, error) {
	noop := func() error { return nil }

	switch strings.ToLower(cfg.Backend) {
	case "", BackendFile:
		path := cfg.File
		if path == "" {
			path = DefaultSessionPath()
		}
		return NewFileSessionRepository(path, cfg.Profile), noop, nil
	case BackendMemory:
		return NewMemorySessionRepository(), noop, nil
	case BackendRedis:
		rdb, err := redisCfg.New(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("connect session redis: %w", err)
		}
		return NewRedisSessionRepository(rdb, cfg.Profile, cfg.TTL), rdb.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown session backend %q", cfg.Backend)
	}
}
