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

// Package permission provides the static permission registry and the role-permission cache.
package permission

import "strconv"

// Permission categories group related permissions.
const (
	CategorySysAdmin = "SYS_ADMIN"
)

// System role definitions.
const (
	// SysAdminRoleName is the built-in administrator role.
	SysAdminRoleName = "SYS_ADMIN"
	// SysAdminRoleID is the fixed identifier of the built-in administrator role.
	SysAdminRoleID = "f564a1ff-03b4-4c74-a1a3-928ce780ee7a"
)

// Permission is a statically registered permission definition.
type Permission struct {
	Name     string
	ID       int
	Category string
}

// FullControl grants unrestricted access to every protected operation.
var FullControl = Permission{Name: "FULL_CONTROL", ID: 1001, Category: CategorySysAdmin}

// registry is the complete static permission table. Lookup tables derive from it
// at package initialization so no runtime reflection is needed.
var registry = []Permission{
	FullControl,
}

var permissionsByName = func() map[string]Permission {
	byName := make(map[string]Permission, len(registry))
	for _, p := range registry {
		byName[p.Name] = p
	}
	return byName
}()

// All returns every registered permission.
func All() []Permission {
	return append([]Permission(nil), registry...)
}

// ByCategory returns every registered permission in the given category.
func ByCategory(category string) []Permission {
	var matched []Permission
	for _, p := range registry {
		if p.Category == category {
			matched = append(matched, p)
		}
	}
	return matched
}

// IsPermissionClaim reports whether the given claim type names a registered permission.
func IsPermissionClaim(claimType string) bool {
	_, ok := permissionsByName[claimType]
	return ok
}

// IDString returns the permission identifier in its claim value representation.
func (p Permission) IDString() string {
	return strconv.Itoa(p.ID)
}
