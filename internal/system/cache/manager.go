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

// Package cache provides a centralized cache management system for different cache implementations.
package cache

import (
	"time"

	"github.com/asgardeo/spark/internal/system/config"
	"github.com/asgardeo/spark/internal/system/log"
)

const loggerComponentName = "CacheManager"

// CacheManagerInterface defines the interface for cache manager.
type CacheManagerInterface[T any] interface {
	Set(key CacheKey, value T) error
	Get(key CacheKey) (T, bool)
	Delete(key CacheKey) error
	Clear() error
	IsEnabled() bool
	CleanupExpired()
}

// CacheManager implements the CacheManagerInterface for managing caches.
type CacheManager[T any] struct {
	enabled bool
	cache   *inMemoryCache[T]
}

// newCacheManager creates a new cache manager instance for the given cache name.
func newCacheManager[T any](cacheName string) CacheManagerInterface[T] {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName),
		log.String("cacheName", cacheName))

	cacheConfig := config.GetSparkRuntime().Config.Cache
	if cacheConfig.Disabled {
		logger.Debug("Caching is disabled, returning empty cache manager")
		return &CacheManager[T]{
			enabled: false,
		}
	}

	cacheProperty := getCacheProperty(cacheConfig, cacheName)
	if cacheProperty.Disabled {
		logger.Debug("Individual cache is disabled, returning empty cache manager")
		return &CacheManager[T]{
			enabled: false,
		}
	}

	size := cacheProperty.Size
	if size <= 0 {
		size = cacheConfig.Size
	}

	ttl := cacheProperty.TTL
	if ttl <= 0 {
		ttl = cacheConfig.TTL
	}

	logger.Debug("Initializing the cache manager")

	return &CacheManager[T]{
		enabled: true,
		cache:   newInMemoryCache[T](cacheName, true, size, time.Duration(ttl)*time.Second),
	}
}

// Set stores a value in the cache.
func (cm *CacheManager[T]) Set(key CacheKey, value T) error {
	if !cm.IsEnabled() {
		return nil
	}

	if err := cm.cache.Set(key, value); err != nil {
		log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName)).
			Warn("Failed to set value in the cache", log.String("key", key.ToString()), log.Error(err))
	}
	return nil
}

// Get retrieves a value from the cache.
func (cm *CacheManager[T]) Get(key CacheKey) (T, bool) {
	if !cm.IsEnabled() {
		var zero T
		return zero, false
	}
	return cm.cache.Get(key)
}

// Delete removes a value from the cache.
func (cm *CacheManager[T]) Delete(key CacheKey) error {
	if !cm.IsEnabled() {
		return nil
	}

	if err := cm.cache.Delete(key); err != nil {
		log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName)).
			Warn("Failed to delete value from the cache", log.String("key", key.ToString()), log.Error(err))
	}
	return nil
}

// Clear removes all entries in the cache.
func (cm *CacheManager[T]) Clear() error {
	if !cm.IsEnabled() {
		return nil
	}
	return cm.cache.Clear()
}

// IsEnabled returns whether the cache manager is enabled.
func (cm *CacheManager[T]) IsEnabled() bool {
	return cm.enabled && cm.cache != nil
}

// CleanupExpired cleans up expired entries in the cache.
func (cm *CacheManager[T]) CleanupExpired() {
	if !cm.IsEnabled() {
		return
	}
	cm.cache.CleanupExpired()
}

// getCacheProperty retrieves the cache property for the specified cache name.
func getCacheProperty(cacheConfig config.CacheConfig, cacheName string) config.CacheProperty {
	for _, property := range cacheConfig.Properties {
		if property.Name == cacheName {
			return property
		}
	}
	return config.CacheProperty{}
}
