package cache

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "pagecache:"

// Redis is a PageCache backed by a shared redis instance, for deployments
// running more than one web process. Redis errors degrade to cache misses;
// they are never surfaced to the request.
type Redis struct {
	client *redis.Client
}

var _ PageCache = (*Redis)(nil)

func NewRedis(addr, password string) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return &Redis{client: client}, nil
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	body, err := r.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Println("redis get failed, treating as miss", err)
		}
		return nil, false
	}
	return body, true
}

func (r *Redis) Set(ctx context.Context, key string, body []byte, ttl time.Duration) {
	if err := r.client.Set(ctx, redisKeyPrefix+key, body, ttl).Err(); err != nil {
		log.Println("redis set failed", err)
	}
}

func (r *Redis) Flush(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, redisKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
