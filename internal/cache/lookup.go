package cache

import (
	"context"
	"errors"
	"strconv"

	"github.com/fjod/storefront/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ProductSource is the authoritative catalog behind the cache.
type ProductSource interface {
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
}

// CachedLookup is a read-through product lookup. Cache failures are logged and
// fall back to the source; they never fail the read.
type CachedLookup struct {
	source ProductSource
	cache  ProductCache
	log    *zap.Logger
	sfg    singleflight.Group // Prevents cache stampede
}

func NewCachedLookup(source ProductSource, cache ProductCache, log *zap.Logger) *CachedLookup {
	return &CachedLookup{
		source: source,
		cache:  cache,
		log:    log,
	}
}

func (l *CachedLookup) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	v, err, _ := l.sfg.Do(strconv.FormatInt(id, 10), func() (interface{}, error) {
		product, err := l.cache.Get(ctx, id)
		if err == nil {
			return product, nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			l.log.Warn("cache get error", zap.Int64("product_id", id), zap.Error(err))
		}

		product, err = l.source.GetProduct(ctx, id)
		if err != nil {
			return nil, err
		}

		if errSet := l.cache.Set(ctx, product); errSet != nil {
			l.log.Warn("cache set error", zap.Int64("product_id", id), zap.Error(errSet))
		}
		return product, nil
	})
	if err != nil {
		return nil, err
	}

	// copy so callers cannot mutate a value shared through singleflight
	product := *v.(*domain.Product)
	return &product, nil
}
