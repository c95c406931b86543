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

package principal

import "github.com/asgardeo/spark/internal/oauth/oauth2/constants"

// destinationsForClaim computes the token destination set of a single claim.
// The name, email, and role claims always reach the access token and reach the
// identity token only when the matching scope was granted. The security stamp
// never reaches any token. Every other claim type is access-token only.
func destinationsForClaim(p *Principal, claimType string) []string {
	switch claimType {
	case constants.ClaimTypeName:
		return withIdentityTokenIf(p.HasScope(constants.ScopeProfile))
	case constants.ClaimTypeEmail:
		return withIdentityTokenIf(p.HasScope(constants.ScopeEmail))
	case constants.ClaimTypeRole:
		return withIdentityTokenIf(p.HasScope(constants.ScopeRoles))
	case constants.ClaimTypeSecurityStamp:
		return nil
	default:
		return []string{constants.DestinationAccessToken}
	}
}

func withIdentityTokenIf(includeIdentityToken bool) []string {
	if includeIdentityToken {
		return []string{constants.DestinationAccessToken, constants.DestinationIdentityToken}
	}
	return []string{constants.DestinationAccessToken}
}
