package rdx

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"pitchpro/globals"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

func init() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	Conn = redis.NewClient(&redis.Options{Addr: addr})
}

func RdxSet(key, value string) error {
	return Conn.Set(globals.Ctx, key, value, 0).Err()
}

func RdxGet(key string) (string, error) {
	return Conn.Get(globals.Ctx, key).Result()
}

func SetWithExpiry(key, value string, ttl time.Duration) error {
	return Conn.Set(globals.Ctx, key, value, ttl).Err()
}

func RdxHset(hash, field, value string) error {
	return Conn.HSet(globals.Ctx, hash, field, value).Err()
}

func RdxHget(hash, field string) (string, error) {
	return Conn.HGet(globals.Ctx, hash, field).Result()
}

func RdxHdel(hash, field string) (int64, error) {
	return Conn.HDel(globals.Ctx, hash, field).Result()
}

// CacheJSON stores v as JSON under key with a TTL. Failures are logged and
// swallowed; the cache is best-effort.
func CacheJSON(key string, v any, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("[rdx] marshal for %s failed: %v", key, err)
		return
	}
	if err := Conn.Set(globals.Ctx, key, data, ttl).Err(); err != nil {
		log.Printf("[rdx] set %s failed: %v", key, err)
	}
}

// FetchJSON loads a JSON value cached under key into out; reports whether a
// usable value was present.
func FetchJSON(key string, out any) bool {
	data, err := Conn.Get(globals.Ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, out) == nil
}
