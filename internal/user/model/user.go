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

// Package model defines the data structures for user management.
package model

import (
	"errors"
	"time"
)

// User represents a user record in the identity store.
type User struct {
	ID             string
	Username       string
	Email          string
	EmailConfirmed bool
	Disabled       bool
	LockoutEnabled bool
	FailedAttempts int
	LockoutUntil   *time.Time
	Role           string
	SecurityStamp  string
	FirstName      string
	LastName       string
}

// IsLockedOut reports whether the user is currently locked out.
func (u *User) IsLockedOut(now time.Time) bool {
	return u.LockoutEnabled && u.LockoutUntil != nil && u.LockoutUntil.After(now)
}

// Credentials represents the stored credentials of a user.
type Credentials struct {
	CredentialType string
	StorageAlgo    string
	Value          string
	Salt           string
}

// RoleClaim represents a claim attached to a role.
type RoleClaim struct {
	ClaimType  string
	ClaimValue string
}

// ErrUserNotFound is returned when the user is not found in the system.
var ErrUserNotFound = errors.New("user not found")
