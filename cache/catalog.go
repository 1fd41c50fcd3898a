package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"storefront/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	productListPrefix = "products:v"
	versionKey        = "products:version"
)

// CatalogCache caches product listings in Redis. Keys embed a version number
// so a single INCR invalidates every cached listing at once.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger

	pending sync.WaitGroup
}

func NewCatalogCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *CatalogCache {
	return &CatalogCache{client: client, ttl: ttl, logger: logger}
}

// GetProducts returns the cached listing for filter, if any. The returned key
// pins the catalog version seen before the caller reads the store; pass it
// to SetProducts so a listing read before an invalidation is never stored
// under the newer version. key is empty when the version is unknown.
func (c *CatalogCache) GetProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, string, bool) {
	key, err := c.listKey(ctx, filter)
	if err != nil {
		c.logger.Debug("catalog cache version read failed", zap.Error(err))
		return nil, "", false
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Debug("catalog cache read failed", zap.Error(err))
		}
		return nil, key, false
	}

	var products []models.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		c.logger.Warn("discarding undecodable catalog cache entry", zap.String("key", key), zap.Error(err))
		return nil, key, false
	}
	return products, key, true
}

// SetProducts stores a listing under key in the background. An empty key is
// ignored.
func (c *CatalogCache) SetProducts(key string, products []models.Product) {
	if key == "" {
		return
	}
	data, err := json.Marshal(products)
	if err != nil {
		c.logger.Warn("failed to encode catalog listing", zap.Error(err))
		return
	}

	c.pending.Add(1)
	go func() {
		defer c.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.logger.Debug("catalog cache write failed", zap.Error(err))
		}
	}()
}

// Wait blocks until background writes have finished.
func (c *CatalogCache) Wait() {
	c.pending.Wait()
}

// Invalidate drops every cached listing by bumping the version.
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, versionKey).Err(); err != nil {
		return fmt.Errorf("invalidate catalog cache: %w", err)
	}
	return nil
}

func (c *CatalogCache) listKey(ctx context.Context, filter models.ProductFilter) (string, error) {
	version, err := c.client.Get(ctx, versionKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", err
	}
	return fmt.Sprintf("%s%d:%s", productListPrefix, version, filterHash(filter)), nil
}

func filterHash(f models.ProductFilter) string {
	b, _ := json.Marshal(f)
	sum := sha1.Sum(b)
	return hex.EncodeToString(sum[:8])
}
