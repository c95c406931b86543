/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package cache

import (
	"container/list"
	"sync"
	"time"

	"github.com/asgardeo/spark/internal/system/log"
)

// inMemoryCacheEntry represents an entry in the in-memory cache with access metadata.
type inMemoryCacheEntry[T any] struct {
	*CacheEntry[T]
	listElement *list.Element
}

// inMemoryCache implements an in-memory cache with LRU eviction.
type inMemoryCache[T any] struct {
	enabled     bool
	name        string
	cache       map[CacheKey]*inMemoryCacheEntry[T]
	accessOrder *list.List
	mu          sync.RWMutex
	size        int
	ttl         time.Duration
	hitCount    int64
	missCount   int64
}

// newInMemoryCache creates a new instance of inMemoryCache.
func newInMemoryCache[T any](name string, enabled bool, size int, ttl time.Duration) *inMemoryCache[T] {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "InMemoryCache"),
		log.String("name", name))

	if !enabled {
		logger.Warn("In-memory cache is disabled, returning empty cache")
		return &inMemoryCache[T]{
			name:    name,
			enabled: false,
		}
	}

	cacheSize := size
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}

	cacheTTL := ttl
	if cacheTTL <= 0 {
		cacheTTL = defaultCacheTTL * time.Second
	}

	logger.Debug("Initializing in-memory cache", log.Int("size", cacheSize), log.Any("ttl", cacheTTL))

	return &inMemoryCache[T]{
		enabled:     true,
		name:        name,
		cache:       make(map[CacheKey]*inMemoryCacheEntry[T]),
		accessOrder: list.New(),
		size:        cacheSize,
		ttl:         cacheTTL,
	}
}

// GetName returns the name of the cache.
func (c *inMemoryCache[T]) GetName() string {
	return c.name
}

// IsEnabled returns whether the cache is enabled.
func (c *inMemoryCache[T]) IsEnabled() bool {
	return c.enabled
}

// Set adds or updates an entry in the cache.
func (c *inMemoryCache[T]) Set(key CacheKey, value T) error {
	if !c.enabled {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	expiryTime := time.Now().Add(c.ttl)

	if existingEntry, exists := c.cache[key]; exists {
		existingEntry.Value = value
		existingEntry.ExpiryTime = expiryTime
		c.accessOrder.MoveToFront(existingEntry.listElement)
		return nil
	}

	c.cache[key] = &inMemoryCacheEntry[T]{
		CacheEntry: &CacheEntry[T]{
			Value:      value,
			ExpiryTime: expiryTime,
		},
		listElement: c.accessOrder.PushFront(key),
	}

	if len(c.cache) > c.size {
		c.evictOldest()
	}

	return nil
}

// Get retrieves a value from the cache.
func (c *inMemoryCache[T]) Get(key CacheKey) (T, bool) {
	var zero T
	if !c.enabled {
		return zero, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.cache[key]
	if !exists {
		c.missCount++
		return zero, false
	}

	if time.Now().After(entry.ExpiryTime) {
		c.removeEntry(key, entry)
		c.missCount++
		return zero, false
	}

	c.accessOrder.MoveToFront(entry.listElement)
	c.hitCount++
	return entry.Value, true
}

// Delete removes a value from the cache.
func (c *inMemoryCache[T]) Delete(key CacheKey) error {
	if !c.enabled {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, exists := c.cache[key]; exists {
		c.removeEntry(key, entry)
	}
	return nil
}

// Clear removes all entries in the cache.
func (c *inMemoryCache[T]) Clear() error {
	if !c.enabled {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache = make(map[CacheKey]*inMemoryCacheEntry[T])
	c.accessOrder.Init()
	return nil
}

// CleanupExpired removes all expired entries from the cache.
func (c *inMemoryCache[T]) CleanupExpired() {
	if !c.enabled {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, entry := range c.cache {
		if now.After(entry.ExpiryTime) {
			c.removeEntry(key, entry)
		}
	}
}

// GetStats returns the current cache statistics.
func (c *inMemoryCache[T]) GetStats() CacheStat {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return CacheStat{
		Enabled:   c.enabled,
		Size:      len(c.cache),
		MaxSize:   c.size,
		HitCount:  c.hitCount,
		MissCount: c.missCount,
	}
}

// evictOldest removes the least recently used entry. Caller must hold the lock.
func (c *inMemoryCache[T]) evictOldest() {
	oldest := c.accessOrder.Back()
	if oldest == nil {
		return
	}

	key := oldest.Value.(CacheKey)
	if entry, exists := c.cache[key]; exists {
		c.removeEntry(key, entry)
	}
}

// removeEntry removes a single entry from the cache. Caller must hold the lock.
func (c *inMemoryCache[T]) removeEntry(key CacheKey, entry *inMemoryCacheEntry[T]) {
	c.accessOrder.Remove(entry.listElement)
	delete(c.cache, key)
}
