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

// Package model defines the data structures used across OAuth 2.0 token exchange flows.
package model

import "slices"

// GrantRequest represents an inbound token grant request.
// It is constructed once per inbound call and never mutated after construction.
type GrantRequest struct {
	GrantType    string
	ClientID     string
	Username     string
	Password     string
	Code         string
	RefreshToken string
	DeviceCode   string
	Scopes       []string
}

// HasScope checks whether the request carries the given scope.
func (r *GrantRequest) HasScope(scope string) bool {
	return slices.Contains(r.Scopes, scope)
}

// Claim represents a single (type, value) claim with its token destinations.
type Claim struct {
	Type         string
	Value        string
	Destinations []string
}
