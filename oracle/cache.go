package oracle

import (
	"context"
	"math/big"
	"slices"

	"github.com/cespare/xxhash"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
)

// DefaultCacheSize is the default number of entries kept by oracle caches.
const DefaultCacheSize = 1024

type cacheEntry[V any] struct {
	key   string
	value V
}

func newCache[V any](size int) (*lru.Cache[uint64, cacheEntry[V]], error) {
	c, err := lru.New[uint64, cacheEntry[V]](size)
	if err != nil {
		return nil, errors.Wrapf(err, "creating cache of size %d failed", size)
	}
	return c, nil
}

func cacheGet[V any](c *lru.Cache[uint64, cacheEntry[V]], key string) (V, bool) {
	entry, ok := c.Get(xxhash.Sum64String(key))
	if !ok || entry.key != key {
		var v V
		return v, false
	}
	return entry.value, true
}

func cacheAdd[V any](c *lru.Cache[uint64, cacheEntry[V]], key string, value V) {
	c.Add(xxhash.Sum64String(key), cacheEntry[V]{key: key, value: value})
}

// NewCachedFactorizer wraps factorizer with LRU cache.
func NewCachedFactorizer(f Factorizer, size int) (*CachedFactorizer, error) {
	c, err := newCache[[]Record](size)
	if err != nil {
		return nil, err
	}
	return &CachedFactorizer{
		factorizer: f,
		cache:      c,
	}, nil
}

// CachedFactorizer memoizes factorizations.
type CachedFactorizer struct {
	factorizer Factorizer
	cache      *lru.Cache[uint64, cacheEntry[[]Record]]
}

// Factorize factorizes the value or returns cached result.
func (cf *CachedFactorizer) Factorize(ctx context.Context, value string) ([]Record, error) {
	if records, ok := cacheGet(cf.cache, value); ok {
		return slices.Clone(records), nil
	}

	records, err := cf.factorizer.Factorize(ctx, value)
	if err != nil {
		return nil, err
	}
	cacheAdd(cf.cache, value, slices.Clone(records))
	return records, nil
}

// NewCachedStatistic wraps statistic with LRU caches.
func NewCachedStatistic(s Statistic, size int) (*CachedStatistic, error) {
	pi, err := newCache[*big.Int](size)
	if err != nil {
		return nil, err
	}
	li, err := newCache[*big.Int](size)
	if err != nil {
		return nil, err
	}
	return &CachedStatistic{
		statistic: s,
		pi:        pi,
		li:        li,
	}, nil
}

// CachedStatistic memoizes prime-counting statistics.
type CachedStatistic struct {
	statistic Statistic
	pi        *lru.Cache[uint64, cacheEntry[*big.Int]]
	li        *lru.Cache[uint64, cacheEntry[*big.Int]]
}

// PrimePi computes the number of primes not greater than x or returns cached result.
func (cs *CachedStatistic) PrimePi(ctx context.Context, x *big.Int) (*big.Int, error) {
	return cached(ctx, cs.pi, x, cs.statistic.PrimePi)
}

// LogInt computes logarithmic integral or returns cached result.
func (cs *CachedStatistic) LogInt(ctx context.Context, x *big.Int) (*big.Int, error) {
	return cached(ctx, cs.li, x, cs.statistic.LogInt)
}

func cached(
	ctx context.Context,
	c *lru.Cache[uint64, cacheEntry[*big.Int]],
	x *big.Int,
	compute func(ctx context.Context, x *big.Int) (*big.Int, error),
) (*big.Int, error) {
	key := x.String()
	if v, ok := cacheGet(c, key); ok {
		return new(big.Int).Set(v), nil
	}

	v, err := compute(ctx, x)
	if err != nil {
		return nil, err
	}
	cacheAdd(c, key, new(big.Int).Set(v))
	return v, nil
}
