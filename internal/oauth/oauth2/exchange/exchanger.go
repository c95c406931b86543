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

// Package exchange implements the grant dispatcher that turns an inbound grant
// request into an enriched principal ready for token issuance.
package exchange

import (
	"github.com/asgardeo/spark/internal/oauth/oauth2/constants"
	"github.com/asgardeo/spark/internal/oauth/oauth2/model"
	"github.com/asgardeo/spark/internal/oauth/oauth2/principal"
	"github.com/asgardeo/spark/internal/oauth/tokenresolver"
	"github.com/asgardeo/spark/internal/system/error/serviceerror"
	"github.com/asgardeo/spark/internal/system/log"
	userconstants "github.com/asgardeo/spark/internal/user/constants"
	usermodel "github.com/asgardeo/spark/internal/user/model"
	"github.com/asgardeo/spark/internal/user/service"
)

const loggerComponentName = "GrantExchanger"

// ExchangerInterface is the token endpoint's sole entry point into the grant core.
type ExchangerInterface interface {
	Exchange(request *model.GrantRequest) (*principal.Principal, *model.ExchangeError)
}

// Exchanger dispatches grant requests to per-grant-type authentication branches.
// Every successful branch converges on the enrichment pipeline.
type Exchanger struct {
	userService       service.UserServiceInterface
	challengeResolver tokenresolver.ChallengeResolverInterface
	refreshResolver   tokenresolver.TokenResolverInterface
	deviceResolver    tokenresolver.TokenResolverInterface
	enricher          *principal.Enricher
}

// NewExchanger creates a grant dispatcher over the given collaborators.
func NewExchanger(userService service.UserServiceInterface,
	challengeResolver tokenresolver.ChallengeResolverInterface,
	refreshResolver, deviceResolver tokenresolver.TokenResolverInterface,
	enricher *principal.Enricher) ExchangerInterface {
	return &Exchanger{
		userService:       userService,
		challengeResolver: challengeResolver,
		refreshResolver:   refreshResolver,
		deviceResolver:    deviceResolver,
		enricher:          enricher,
	}
}

// Exchange dispatches the request by grant type. An unsupported grant type is a
// configuration defect and surfaces as NotImplemented, never as a denial.
func (e *Exchanger) Exchange(request *model.GrantRequest) (*principal.Principal, *model.ExchangeError) {
	switch constants.GrantType(request.GrantType) {
	case constants.GrantTypeAuthorizationCode:
		return e.exchangeAuthorizationCode(request)
	case constants.GrantTypePassword:
		return e.exchangePassword(request)
	case constants.GrantTypeRefreshToken, constants.GrantTypeDeviceCode:
		return e.exchangeResolvedArtifact(request)
	default:
		log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName)).
			Error("Received a grant type the server does not support",
				log.String("grantType", request.GrantType))
		return nil, &model.ErrorNotImplemented
	}
}

// exchangeAuthorizationCode re-materializes the principal authenticated by the
// upstream challenge and resolves the underlying user. Any challenge failure
// collapses into a generic credentials error.
func (e *Exchanger) exchangeAuthorizationCode(request *model.GrantRequest) (
	*principal.Principal, *model.ExchangeError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	subject, err := e.challengeResolver.ResolveChallenge(request.Code)
	if err != nil || subject == "" {
		logger.Debug("Authorization code challenge did not resolve to a subject", log.Error(err))
		return nil, &model.ErrorInvalidCredentials
	}

	user, svcErr := e.userService.GetUser(subject)
	if svcErr != nil {
		if svcErr.Type == serviceerror.ServerErrorType {
			return nil, &model.ErrorInternalServerError
		}
		return nil, &model.ErrorInvalidCredentials
	}
	return e.enricher.Enrich(user, request)
}

// exchangePassword authenticates resource owner password credentials. Lookup
// tries email first and falls back to username; both are case-insensitive per
// the identity store's normalization.
func (e *Exchanger) exchangePassword(request *model.GrantRequest) (
	*principal.Principal, *model.ExchangeError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	user, exchErr := e.lookupPasswordUser(request.Username)
	if exchErr != nil {
		return nil, exchErr
	}

	if e.userService.SupportsLockout() {
		if svcErr := e.userService.ResetFailedAttempts(user); svcErr != nil {
			return nil, &model.ErrorInternalServerError
		}
	}

	verified, svcErr := e.userService.VerifyPassword(user, request.Password, true)
	if svcErr != nil {
		if svcErr.Type == serviceerror.ServerErrorType {
			return nil, &model.ErrorInternalServerError
		}
		return nil, &model.ErrorInvalidCredentials
	}
	if !verified {
		logger.Debug("Password verification failed", log.String("userID", user.ID))
		return nil, &model.ErrorInvalidCredentials
	}

	allowed, svcErr := e.userService.CanSignIn(user)
	if svcErr != nil {
		return nil, &model.ErrorInternalServerError
	}
	if !allowed {
		return nil, &model.ErrorSignInNotPermitted
	}

	if svcErr := e.userService.Update(user); svcErr != nil {
		return nil, &model.ErrorInternalServerError
	}
	return e.enricher.Enrich(user, request)
}

// exchangeResolvedArtifact handles the refresh token and device code grants,
// which share the resolve-then-recheck shape and differ only in the artifact,
// the resolver, and the error surfaced on resolution failure.
func (e *Exchanger) exchangeResolvedArtifact(request *model.GrantRequest) (
	*principal.Principal, *model.ExchangeError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	var artifact string
	var resolver tokenresolver.TokenResolverInterface
	resolutionError := &model.ErrorTokenInvalid

	switch constants.GrantType(request.GrantType) {
	case constants.GrantTypeRefreshToken:
		artifact = request.RefreshToken
		resolver = e.refreshResolver
		resolutionError = &model.ErrorRefreshTokenInvalid
	case constants.GrantTypeDeviceCode:
		artifact = request.DeviceCode
		resolver = e.deviceResolver
		resolutionError = &model.ErrorDeviceCodeInvalid
	}
	if resolver == nil {
		return nil, resolutionError
	}

	subject, err := resolver.ResolveSubject(artifact)
	if err != nil || subject == "" {
		logger.Debug("Grant artifact did not resolve to a subject",
			log.String("grantType", request.GrantType), log.Error(err))
		return nil, resolutionError
	}

	user, svcErr := e.userService.GetUser(subject)
	if svcErr != nil {
		if svcErr.Type == serviceerror.ServerErrorType {
			return nil, &model.ErrorInternalServerError
		}
		return nil, resolutionError
	}

	allowed, svcErr := e.userService.CanSignIn(user)
	if svcErr != nil {
		return nil, &model.ErrorInternalServerError
	}
	if !allowed {
		return nil, &model.ErrorSignInNotPermitted
	}
	return e.enricher.Enrich(user, request)
}

// lookupPasswordUser finds the user for the password grant, by email first and
// then by username. Both misses collapse into a generic credentials error.
func (e *Exchanger) lookupPasswordUser(username string) (*usermodel.User, *model.ExchangeError) {
	user, svcErr := e.userService.FindByEmail(username)
	if svcErr == nil {
		return user, nil
	}
	if svcErr.Code != userconstants.ErrorUserNotFound.Code {
		return nil, &model.ErrorInternalServerError
	}

	user, svcErr = e.userService.FindByUsername(username)
	if svcErr == nil {
		return user, nil
	}
	if svcErr.Code != userconstants.ErrorUserNotFound.Code {
		return nil, &model.ErrorInternalServerError
	}
	return nil, &model.ErrorInvalidCredentials
}
