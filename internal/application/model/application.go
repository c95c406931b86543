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

// Package model defines the data structures for OAuth application configuration.
package model

// ClientConfiguration holds the resolved, materialized configuration of a single
// OAuth client application.
type ClientConfiguration struct {
	ClientID               string
	ClientSecret           string
	ClientType             string
	RedirectURIs           []string
	PostLogoutRedirectURIs []string
	Permissions            []string

	// AccessTokenLifetime and RefreshTokenLifetime override the server-wide token
	// lifetimes, in seconds. Nil means the server default applies.
	AccessTokenLifetime  *int64
	RefreshTokenLifetime *int64
}

// IsConfidential returns whether the client is registered as a confidential client.
func (c *ClientConfiguration) IsConfidential() bool {
	return c.ClientSecret != ""
}

// HasLifetimeOverrides returns whether the client carries any token lifetime overrides.
func (c *ClientConfiguration) HasLifetimeOverrides() bool {
	return c.AccessTokenLifetime != nil || c.RefreshTokenLifetime != nil
}
