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

// Package principal provides the enriched principal model and the enrichment pipeline
// that prepares an authenticated user for token issuance.
package principal

import (
	"slices"

	"github.com/asgardeo/spark/internal/oauth/oauth2/model"
)

// Principal is the authenticated identity with its claim set, scope set, and
// lifetime overrides, ready for token signing by the transport layer.
type Principal struct {
	UserID   string
	Username string
	Claims   []model.Claim
	Scopes   []string

	// AccessTokenLifetime and RefreshTokenLifetime override the server defaults,
	// in seconds, when the resolved client configuration specifies them.
	AccessTokenLifetime  *int64
	RefreshTokenLifetime *int64
}

// HasScope checks whether the principal carries the given scope.
func (p *Principal) HasScope(scope string) bool {
	return slices.Contains(p.Scopes, scope)
}

// GetClaim returns the first claim of the given type, if present.
func (p *Principal) GetClaim(claimType string) (model.Claim, bool) {
	for _, claim := range p.Claims {
		if claim.Type == claimType {
			return claim, true
		}
	}
	return model.Claim{}, false
}

// AddClaim appends a claim to the principal.
func (p *Principal) AddClaim(claimType, value string) {
	p.Claims = append(p.Claims, model.Claim{Type: claimType, Value: value})
}
