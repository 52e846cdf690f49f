package repo

import (
	"context"
	"fmt"
	"strconv"
	"time"

	errx "github.com/qkart/storefront/internal/core/error"
	"github.com/qkart/storefront/internal/storefront/model"
	logx "github.com/qkart/storefront/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const (
	fieldToken    = "token"
	fieldUsername = "username"
	fieldBalance  = "balance"
)

type RedisSessionRepository struct {
	rdb     redis.Cmdable
	profile string
	ttl     time.Duration
}

func NewRedisSessionRepository(rdb redis.Cmdable, profile string, ttl time.Duration) *RedisSessionRepository {
	return &RedisSessionRepository{rdb: rdb, profile: profile, ttl: ttl}
}

func (r *RedisSessionRepository) sessionKey() string {
	return fmt.Sprintf("qkart:session:%s", r.profile)
}

func (r *RedisSessionRepository) Save(ctx context.Context, session *model.Session) error {
	key := r.sessionKey()

	if err := r.rdb.HSet(ctx, key,
		fieldToken, session.Token,
		fieldUsername, session.Username,
		fieldBalance, session.Balance,
	).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to save session to redis")
		return errx.WrapRedis(err)
	}
	// extend TTL on touch
	if r.ttl > 0 {
		if ok, err := r.rdb.Expire(ctx, key, r.ttl).Result(); err != nil {
			logx.Error().Err(err).Str("key", key).Msg("failed to set expire")
			return errx.WrapRedis(err)
		} else if !ok {
			logx.Warn().Str("key", key).Dur("ttl", r.ttl).Msg("failed to set TTL on session key")
		}
	}
	return nil
}

func (r *RedisSessionRepository) Load(ctx context.Context) (*model.Session, error) {
	key := r.sessionKey()

	fields, err := r.rdb.HGetAll(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return &model.Session{}, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to load session from redis")
		return nil, errx.WrapRedis(err)
	}

	session := &model.Session{
		Token:    fields[fieldToken],
		Username: fields[fieldUsername],
	}
	if raw := fields[fieldBalance]; raw != "" {
		balance, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			logx.Warn().Err(err).Str("key", key).Str("balance", raw).Msg("stored balance is not an integer")
		}
		session.Balance = balance
	}
	return session, nil
}

func (r *RedisSessionRepository) Clear(ctx context.Context) error {
	key := r.sessionKey()
	if err := r.rdb.Del(ctx, key).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to delete session from redis")
		return errx.WrapRedis(err)
	}
	return nil
}

var _ model.SessionRepository = (*RedisSessionRepository)(nil)
