package rdx

import (
	"log"
	"os"
	"time"

	"voyago/globals"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

// Init creates the shared Redis connection. Callers that run before Init
// (tests, offline tools) see a nil Conn; the helpers treat that as a miss.
func Init() {
	addr := os.Getenv("REDIS_URL")
	if addr == "" {
		addr = "localhost:6379"
	}

	Conn = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	if err := Conn.Ping(globals.Ctx).Err(); err != nil {
		log.Printf("Redis unavailable (%v); continuing without cache", err)
	}
}

func RdxGet(key string) (string, error) {
	if Conn == nil {
		return "", redis.Nil
	}
	return Conn.Get(globals.Ctx, key).Result()
}

func RdxSet(key, value string) error {
	if Conn == nil {
		return nil
	}
	return Conn.Set(globals.Ctx, key, value, 0).Err()
}

func SetWithExpiry(key, value string, ttl time.Duration) error {
	if Conn == nil {
		return nil
	}
	return Conn.Set(globals.Ctx, key, value, ttl).Err()
}

func RdxDel(key string) error {
	if Conn == nil {
		return nil
	}
	return Conn.Del(globals.Ctx, key).Err()
}

func RdxHset(hash, field, value string) error {
	if Conn == nil {
		return nil
	}
	return Conn.HSet(globals.Ctx, hash, field, value).Err()
}

func RdxHget(hash, field string) (string, error) {
	if Conn == nil {
		return "", redis.Nil
	}
	return Conn.HGet(globals.Ctx, hash, field).Result()
}

func RdxHdel(hash, field string) error {
	if Conn == nil {
		return nil
	}
	return Conn.HDel(globals.Ctx, hash, field).Err()
}
