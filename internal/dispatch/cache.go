package dispatch

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/guni-dev/guni-chatbot-go/internal/config"
	"github.com/guni-dev/guni-chatbot-go/internal/logger"
)

// Cache TTLs. Timetables change between semesters, not between requests;
// room availability changes every period boundary, so it gets a short TTL
// that only smooths over request bursts.
const (
	timetableCacheTTL = 10 * time.Minute
	roomsCacheTTL     = time.Minute
)

// Cache is an optional Redis-backed reply cache. A nil *Cache is a valid
// no-op cache, so callers never branch on whether caching is configured.
type Cache struct {
	client *redis.Client
	log    *logger.Logger
}

// cachedReply is the stored shape: the rendered text plus the row count the
// chat response echoes back.
type cachedReply struct {
	Reply string `json:"reply"`
	Count int    `json:"count"`
}

// NewCache connects the reply cache, or returns nil when no Redis address is
// configured. A failed ping is an error: a configured but unreachable cache
// is a deployment fault, not something to silently run without.
func NewCache(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Cache, error) {
	if !cfg.HasRedis() {
		return nil, nil //nolint:nilnil // nil cache means caching disabled
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, err
	}

	return &Cache{
		client: client,
		log:    log.WithModule("cache"),
	}, nil
}

// newCacheWithClient wires an existing client, for tests against miniredis.
func newCacheWithClient(client *redis.Client, log *logger.Logger) *Cache {
	return &Cache{client: client, log: log.WithModule("cache")}
}

// Get returns a cached reply. Cache errors degrade to a miss; the source of
// truth is one query away.
func (c *Cache) Get(ctx context.Context, key string) (string, int, bool) {
	if c == nil {
		return "", 0, false
	}

	raw, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("cache read failed", "key", key, "error", err)
		}
		return "", 0, false
	}

	var entry cachedReply
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		c.log.Warn("cache entry corrupt, dropping", "key", key, "error", err)
		c.client.Del(ctx, key)
		return "", 0, false
	}
	return entry.Reply, entry.Count, true
}

// Set stores a rendered reply. Failures are logged and swallowed.
func (c *Cache) Set(ctx context.Context, key, reply string, count int, ttl time.Duration) {
	if c == nil {
		return
	}

	raw, err := json.Marshal(cachedReply{Reply: reply, Count: count})
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		c.log.Warn("cache write failed", "key", key, "error", err)
	}
}

// Close releases the Redis connection. Safe on a nil cache.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
