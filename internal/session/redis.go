package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/catalog-dash-poc-v1/client/internal/catalog"
	errx "github.com/catalog-dash-poc-v1/client/internal/core/error"
	logx "github.com/catalog-dash-poc-v1/client/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// RedisRepository stores the session as a JSON document under one key per
// owner.
type RedisRepository struct {
	rdb   redis.Cmdable
	owner string
	ttl   time.Duration
}

func NewRedisRepository(rdb redis.Cmdable, owner string, ttl time.Duration) *RedisRepository {
	return &RedisRepository{rdb: rdb, owner: owner, ttl: ttl}
}

func (r *RedisRepository) key() string {
	return fmt.Sprintf("session:%s", r.owner)
}

func (r *RedisRepository) Save(ctx context.Context, sess catalog.Session) error {
	b, err := json.Marshal(sess)
	if err != nil {
		logx.Error().Err(err).Str("owner", r.owner).Msg("failed to marshal session")
		return fmt.Errorf("marshal session: %w", err)
	}

	key := r.key()
	if err := r.rdb.Set(ctx, key, b, r.ttl).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to write session to redis")
		return errx.WrapRedis(err)
	}
	return nil
}

func (r *RedisRepository) Load(ctx context.Context) (catalog.Session, bool, error) {
	key := r.key()

	raw, err := r.rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return catalog.Session{}, false, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to load session from redis")
		return catalog.Session{}, false, errx.WrapRedis(err)
	}

	var sess catalog.Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to unmarshal session")
		return catalog.Session{}, false, fmt.Errorf("unmarshal session: %w", err)
	}
	return sess, true, nil
}

func (r *RedisRepository) Clear(ctx context.Context) error {
	key := r.key()
	if err := r.rdb.Del(ctx, key).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to delete session from redis")
		return errx.WrapRedis(err)
	}
	return nil
}

var _ Repository = (*RedisRepository)(nil)
