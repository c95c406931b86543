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

// Package constants defines constants used across OAuth 2.0 token exchange flows.
package constants

// GrantType defines the OAuth 2.0 grant types supported by the server.
type GrantType string

const (
	// GrantTypeAuthorizationCode is the authorization code grant type.
	GrantTypeAuthorizationCode GrantType = "authorization_code"
	// GrantTypePassword is the resource owner password credentials grant type.
	GrantTypePassword GrantType = "password"
	// GrantTypeRefreshToken is the refresh token grant type.
	GrantTypeRefreshToken GrantType = "refresh_token"
	// GrantTypeDeviceCode is the device authorization grant type.
	GrantTypeDeviceCode GrantType = "urn:ietf:params:oauth:grant-type:device_code"
)

// Standard OAuth 2.0 / OIDC scopes gating claim visibility.
const (
	ScopeOpenID  = "openid"
	ScopeProfile = "profile"
	ScopeEmail   = "email"
	ScopeRoles   = "roles"
)

// Claim types attached to an authenticated principal.
const (
	ClaimTypeName     = "name"
	ClaimTypeEmail    = "email"
	ClaimTypeRole     = "role"
	ClaimTypeNickname = "nickname"
	ClaimTypeID       = "id"
	ClaimTypeSubject  = "sub"
	// ClaimTypeSecurityStamp carries the per-user secret used to invalidate
	// outstanding sessions. It must never be emitted to any token.
	ClaimTypeSecurityStamp = "security_stamp"
	// ClaimTypePermission marks permission claims granted through the user's role.
	ClaimTypePermission = "permission"
)

// Token destinations a claim may be emitted to.
const (
	DestinationAccessToken   = "access_token"
	DestinationIdentityToken = "id_token"
)

// Client types inferred from the presence of a client secret.
const (
	ClientTypePublic       = "public"
	ClientTypeConfidential = "confidential"
)

// OAuth 2.0 wire error codes.
const (
	ErrorInvalidRequest       = "invalid_request"
	ErrorInvalidClient        = "invalid_client"
	ErrorInvalidGrant         = "invalid_grant"
	ErrorUnsupportedGrantType = "unsupported_grant_type"
	ErrorServerError          = "server_error"
)
