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

import (
	appprovider "github.com/asgardeo/spark/internal/application/provider"
	"github.com/asgardeo/spark/internal/authz/permission"
	"github.com/asgardeo/spark/internal/oauth/oauth2/constants"
	"github.com/asgardeo/spark/internal/oauth/oauth2/model"
	"github.com/asgardeo/spark/internal/system/error/serviceerror"
	"github.com/asgardeo/spark/internal/system/log"
	usermodel "github.com/asgardeo/spark/internal/user/model"
)

const loggerComponentName = "PrincipalEnricher"

// IdentityStore is the slice of the user service consumed by the enrichment pipeline.
type IdentityStore interface {
	GetClaims(user *usermodel.User) ([]model.Claim, *serviceerror.ServiceError)
	CanSignIn(user *usermodel.User) (bool, *serviceerror.ServiceError)
}

// ClaimAugmentor appends additional claims to the principal under construction.
// It replaces subclass overriding as the pipeline's extension point.
type ClaimAugmentor func(user *usermodel.User, p *Principal)

// Enricher builds an enriched principal from an authenticated user and the
// grant request that authenticated it.
type Enricher struct {
	identityStore IdentityStore
	appProvider   appprovider.ApplicationProviderInterface
	roleCache     permission.RoleCacheInterface
	augmentor     ClaimAugmentor
}

// NewEnricher creates an enrichment pipeline over the given collaborators.
// A nil augmentor falls back to DefaultClaimAugmentor.
func NewEnricher(identityStore IdentityStore, appProvider appprovider.ApplicationProviderInterface,
	roleCache permission.RoleCacheInterface, augmentor ClaimAugmentor) *Enricher {
	if augmentor == nil {
		augmentor = DefaultClaimAugmentor
	}
	return &Enricher{
		identityStore: identityStore,
		appProvider:   appProvider,
		roleCache:     roleCache,
		augmentor:     augmentor,
	}
}

// DefaultClaimAugmentor appends the display name, the subject identifier, and the
// canonical subject claim derived from the user record.
func DefaultClaimAugmentor(user *usermodel.User, p *Principal) {
	p.AddClaim(constants.ClaimTypeNickname, user.Username)
	p.AddClaim(constants.ClaimTypeID, user.ID)
	p.AddClaim(constants.ClaimTypeSubject, user.ID)
}

// Enrich runs the enrichment pipeline for the given user and request. The steps
// are strictly sequential; each consumes the output of the previous one.
func (e *Enricher) Enrich(user *usermodel.User, request *model.GrantRequest) (
	*Principal, *model.ExchangeError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	// Materialize the persisted claims of the user.
	storedClaims, svcErr := e.identityStore.GetClaims(user)
	if svcErr != nil {
		logger.Error("Failed to materialize user claims",
			log.String("userID", user.ID), log.Any("error", svcErr))
		return nil, &model.ErrorInternalServerError
	}

	// Permissions are recomputed on every sign-in, never carried over. The
	// stripped permission claims still feed the role cache refresh below.
	claims := make([]model.Claim, 0, len(storedClaims))
	permissionClaims := make([]model.Claim, 0)
	roleName := ""
	for _, claim := range storedClaims {
		if permission.IsPermissionClaim(claim.Type) {
			permissionClaims = append(permissionClaims, claim)
			continue
		}
		if claim.Type == constants.ClaimTypeRole && roleName == "" {
			roleName = claim.Value
		}
		claims = append(claims, claim)
	}

	// Refresh synchronously: the computed permissions belong to the same
	// sign-in this principal is built for.
	if roleName != "" {
		e.roleCache.RefreshRolePermissions(roleName, permissionClaims)
	}

	p := &Principal{
		UserID:   user.ID,
		Username: user.Username,
		Claims:   claims,
	}

	if clientConfig, found := e.appProvider.TryResolve(request.ClientID); found {
		if clientConfig.AccessTokenLifetime != nil {
			p.AccessTokenLifetime = clientConfig.AccessTokenLifetime
		}
		if clientConfig.RefreshTokenLifetime != nil {
			p.RefreshTokenLifetime = clientConfig.RefreshTokenLifetime
		}
	}

	e.augmentor(user, p)

	p.Scopes = append([]string(nil), request.Scopes...)

	for i := range p.Claims {
		p.Claims[i].Destinations = destinationsForClaim(p, p.Claims[i].Type)
	}

	allowed, svcErr := e.identityStore.CanSignIn(user)
	if svcErr != nil {
		logger.Error("Failed to evaluate sign-in policy",
			log.String("userID", user.ID), log.Any("error", svcErr))
		return nil, &model.ErrorInternalServerError
	}
	if !allowed {
		logger.Debug("Sign-in rejected by account policy", log.String("userID", user.ID))
		return nil, &model.ErrorSignInNotPermitted
	}
	return p, nil
}
