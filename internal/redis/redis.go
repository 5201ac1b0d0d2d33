package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var Rdb *redis.Client

func InitRedis(redisAddress string, redisUsername string, redisPassword string) {
	Rdb = redis.NewClient(&redis.Options{
		Addr:     redisAddress,
		Username: redisUsername,
		Password: redisPassword,
		DB:       0,
	})
}

func Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if err := Rdb.Set(ctx, key, value, expiration).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("redis set failed")
		return err
	}
	return nil
}

// Get returns the value for key, or "" with redis.Nil when the key is
// missing or expired.
func Get(ctx context.Context, key string) (string, error) {
	val, err := Rdb.Get(ctx, key).Result()
	if err != nil && err != redis.Nil {
		log.Error().Err(err).Str("key", key).Msg("redis get failed")
	}
	return val, err
}

func Del(ctx context.Context, key string) error {
	if err := Rdb.Del(ctx, key).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("redis del failed")
		return err
	}
	return nil
}

// IsMissing reports whether err means "no such key".
func IsMissing(err error) bool {
	return err == redis.Nil
}
