package server

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"github.com/golang/groupcache/lru"
	"github.com/zacgt/cgt"
	"golang.org/x/sync/singleflight"
)

// computation is a parsed and replayed ledger. It is shared between requests
// and must not be modified.
type computation struct {
	transactions []cgt.Transaction
	result       *cgt.Result
}

// resultCache memoizes computations by ledger text. Concurrent requests for
// the same text share a single replay. The least recently used entry is
// evicted first.
type resultCache struct {
	metrics *metrics
	group   singleflight.Group

	mu  sync.Mutex // lru.Cache is not safe for concurrent use
	lru *lru.Cache // nil when caching is disabled
}

func newResultCache(size int, m *metrics) *resultCache {
	c := &resultCache{metrics: m}
	if size > 0 {
		c.lru = lru.New(size)
	}
	return c
}

func cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// compute returns the computation for text, replaying it at most once at a
// time. Failures are never cached.
func (c *resultCache) compute(text string) (*computation, error) {
	key := cacheKey(text)
	if comp, ok := c.get(key); ok {
		c.metrics.cache.WithLabelValues("hit").Inc()
		return comp, nil
	}

	v, err, shared := c.group.Do(key, func() (any, error) {
		comp, err := c.replay(text)
		if err != nil {
			return nil, err
		}
		c.put(key, comp)
		return comp, nil
	})
	if shared {
		c.metrics.cache.WithLabelValues("shared").Inc()
	} else {
		c.metrics.cache.WithLabelValues("miss").Inc()
	}
	if err != nil {
		return nil, err
	}
	return v.(*computation), nil
}

func (c *resultCache) replay(text string) (*computation, error) {
	transactions, err := cgt.Parse(text)
	if err != nil {
		c.metrics.computations.WithLabelValues("parse_error").Inc()
		return nil, err
	}
	result, err := cgt.Compute(transactions)
	if err != nil {
		c.metrics.computations.WithLabelValues("compute_error").Inc()
		return nil, err
	}
	c.metrics.computations.WithLabelValues("ok").Inc()
	c.metrics.transactions.Add(float64(len(transactions)))
	return &computation{transactions: transactions, result: result}, nil
}

func (c *resultCache) get(key string) (*computation, bool) {
	if c.lru == nil {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.lru.Get(key)
	if !ok {
		return nil, false
	}
	return v.(*computation), true
}

func (c *resultCache) put(key string, comp *computation) {
	if c.lru == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Add(key, comp)
}

// count returns the number of cached computations.
func (c *resultCache) count() int {
	if c.lru == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}
