package crud

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	cacheKeyPrefix  = "portfolio:collection:" // listing of a collection: portfolio:collection:{name}
	DefaultCacheTTL = 5 * time.Minute
)

// Cache is a read-through Redis cache in front of a Reader. Only listings
// are cached; single-record reads and collection names pass through. Redis
// failures are logged and the inner reader is used instead.
type Cache struct {
	inner  Reader
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCache wraps inner. A non-positive ttl selects DefaultCacheTTL.
func NewCache(inner Reader, client *redis.Client, ttl time.Duration, logger *slog.Logger) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Cache{inner: inner, client: client, ttl: ttl, logger: logger}
}

func (c *Cache) GetAll(ctx context.Context, collection string) (*Result, error) {
	if err := ValidateCollection(collection); err != nil {
		return nil, err
	}
	key := c.key(collection)

	data, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var res Result
		if err := json.Unmarshal(data, &res); err == nil {
			return &res, nil
		}
		c.logger.Warn("discarding corrupt cache entry", "collection", collection)
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("cache read failed", "collection", collection, "error", err)
	}

	res, err := c.inner.GetAll(ctx, collection)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(res); err == nil {
		if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.logger.Warn("cache write failed", "collection", collection, "error", err)
		}
	}
	return res, nil
}

func (c *Cache) Get(ctx context.Context, collection, id string) (Document, error) {
	return c.inner.Get(ctx, collection, id)
}

func (c *Cache) Collections(ctx context.Context) ([]string, error) {
	return c.inner.Collections(ctx)
}

// Invalidate drops the cached listings of the given collections.
func (c *Cache) Invalidate(ctx context.Context, collections ...string) error {
	if len(collections) == 0 {
		return nil
	}
	keys := make([]string, 0, len(collections))
	for _, name := range collections {
		keys = append(keys, c.key(name))
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *Cache) key(collection string) string {
	return cacheKeyPrefix + collection
}

// CachedService is a Service whose listings go through a Cache and whose
// writes invalidate the affected collection.
type CachedService struct {
	Service
	cache *Cache
}

// NewCachedService wraps svc with a Cache.
func NewCachedService(svc Service, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedService {
	return &CachedService{Service: svc, cache: NewCache(svc, client, ttl, logger)}
}

func (s *CachedService) GetAll(ctx context.Context, collection string) (*Result, error) {
	return s.cache.GetAll(ctx, collection)
}

func (s *CachedService) Create(ctx context.Context, collection string, doc Document) (Document, error) {
	out, err := s.Service.Create(ctx, collection, doc)
	s.invalidate(ctx, collection)
	return out, err
}

func (s *CachedService) Update(ctx context.Context, collection string, doc Document) (Document, error) {
	out, err := s.Service.Update(ctx, collection, doc)
	s.invalidate(ctx, collection)
	return out, err
}

func (s *CachedService) Delete(ctx context.Context, collection, id string) error {
	err := s.Service.Delete(ctx, collection, id)
	s.invalidate(ctx, collection)
	return err
}

func (s *CachedService) invalidate(ctx context.Context, collection string) {
	if err := s.cache.Invalidate(ctx, collection); err != nil {
		s.cache.logger.Warn("cache invalidation failed", "collection", collection, "error", err)
	}
}

// OpenRedis parses url and verifies the connection.
func OpenRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}
