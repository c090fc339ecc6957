package rdx

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

func init() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	Conn = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
}

func RdxSet(key, value string) error {
	return Conn.Set(context.Background(), key, value, 0).Err()
}

func RdxGet(key string) (string, error) {
	return Conn.Get(context.Background(), key).Result()
}

func RdxDel(key string) error {
	return Conn.Del(context.Background(), key).Err()
}

// CachedJSON is a read-through cache: return the cached value for key if
// present, otherwise compute it, store it with the given TTL, and return it.
// Cache failures degrade to computing fresh; they are logged, never
// surfaced.
func CachedJSON[T any](ctx context.Context, key string, ttl time.Duration, compute func(context.Context) (T, error)) (T, error) {
	var out T

	if raw, err := Conn.Get(ctx, key).Result(); err == nil {
		if err := json.Unmarshal([]byte(raw), &out); err == nil {
			return out, nil
		}
	} else if err != redis.Nil {
		log.Printf("redis get %s: %v", key, err)
	}

	out, err := compute(ctx)
	if err != nil {
		return out, err
	}

	if data, err := json.Marshal(out); err == nil {
		if err := Conn.Set(ctx, key, data, ttl).Err(); err != nil {
			log.Printf("redis set %s: %v", key, err)
		}
	}
	return out, nil
}
