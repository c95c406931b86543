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

package permission

import (
	"sync"

	oauth2model "github.com/asgardeo/spark/internal/oauth/oauth2/model"
	"github.com/asgardeo/spark/internal/system/cache"
	"github.com/asgardeo/spark/internal/system/log"
)

const (
	rolePermissionCacheName = "RolePermissionCache"
	loggerComponentName     = "RolePermissionCache"
)

// PermissionDescriptor is a cached permission granted to a role.
type PermissionDescriptor struct {
	Name string
	ID   string
}

// RoleCacheInterface defines the role-permission cache operations.
type RoleCacheInterface interface {
	RefreshRolePermissions(roleName string, permissionClaims []oauth2model.Claim)
	GetRolePermissions(roleName string) ([]PermissionDescriptor, bool)
}

// RoleCache maps a role name to the permissions granted to it. Every sign-in by
// a member of the role overwrites the entry, so the cache tracks the latest
// claim definitions without explicit invalidation.
type RoleCache struct {
	cacheManager cache.CacheManagerInterface[[]PermissionDescriptor]
}

var (
	instance RoleCacheInterface
	once     sync.Once
)

// GetRoleCache returns the singleton instance of the role-permission cache.
func GetRoleCache() RoleCacheInterface {
	once.Do(func() {
		instance = &RoleCache{
			cacheManager: cache.GetCacheManager[[]PermissionDescriptor](rolePermissionCacheName),
		}
	})
	return instance
}

// RefreshRolePermissions replaces the cached permission set for the given role
// with the set derived from the supplied permission claims. The clear and the
// set are separate cache operations; a concurrent reader may briefly observe a
// missing entry, which downstream consumers treat as a cache miss.
func (rc *RoleCache) RefreshRolePermissions(roleName string, permissionClaims []oauth2model.Claim) {
	if roleName == "" {
		return
	}

	key := cache.CacheKey{Key: roleName}
	if err := rc.cacheManager.Delete(key); err != nil {
		log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName)).
			Warn("Failed to clear role permission entry", log.String("roleName", roleName), log.Error(err))
	}

	descriptors := make([]PermissionDescriptor, 0, len(permissionClaims))
	for _, claim := range permissionClaims {
		descriptors = append(descriptors, PermissionDescriptor{
			Name: claim.Type,
			ID:   claim.Value,
		})
	}

	if err := rc.cacheManager.Set(key, descriptors); err != nil {
		log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName)).
			Warn("Failed to cache role permissions", log.String("roleName", roleName), log.Error(err))
	}
}

// GetRolePermissions returns the cached permission set for the given role.
func (rc *RoleCache) GetRolePermissions(roleName string) ([]PermissionDescriptor, bool) {
	return rc.cacheManager.Get(cache.CacheKey{Key: roleName})
}
