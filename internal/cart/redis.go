package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	errx "github.com/catalog-dash-poc-v1/client/internal/core/error"
	logx "github.com/catalog-dash-poc-v1/client/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// RedisRepository stores the cart line snapshot as a JSON array under one key
// per owner. TTL, when set, is refreshed on every save so an active cart
// never expires mid-session.
type RedisRepository struct {
	rdb   redis.Cmdable
	owner string
	ttl   time.Duration
}

func NewRedisRepository(rdb redis.Cmdable, owner string, ttl time.Duration) *RedisRepository {
	return &RedisRepository{rdb: rdb, owner: owner, ttl: ttl}
}

func (r *RedisRepository) key() string {
	return fmt.Sprintf("cart:%s:lines", r.owner)
}

func (r *RedisRepository) Save(ctx context.Context, lines []Line) error {
	b, err := json.Marshal(lines)
	if err != nil {
		logx.Error().Err(err).Str("owner", r.owner).Msg("failed to marshal cart lines")
		return fmt.Errorf("marshal cart lines: %w", err)
	}

	key := r.key()
	if err := r.rdb.Set(ctx, key, b, r.ttl).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to write cart to redis")
		return errx.WrapRedis(err)
	}
	return nil
}

func (r *RedisRepository) Load(ctx context.Context) ([]Line, error) {
	key := r.key()

	raw, err := r.rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []Line{}, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to load cart from redis")
		return nil, errx.WrapRedis(err)
	}

	var lines []Line
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to unmarshal cart lines")
		return nil, fmt.Errorf("unmarshal cart lines: %w", err)
	}
	return lines, nil
}

func (r *RedisRepository) Clear(ctx context.Context) error {
	key := r.key()
	if err := r.rdb.Del(ctx, key).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to delete cart from redis")
		return errx.WrapRedis(err)
	}
	return nil
}

var _ Repository = (*RedisRepository)(nil)
