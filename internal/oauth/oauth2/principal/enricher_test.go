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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	appprovider "github.com/asgardeo/spark/internal/application/provider"
	"github.com/asgardeo/spark/internal/authz/permission"
	"github.com/asgardeo/spark/internal/oauth/oauth2/constants"
	"github.com/asgardeo/spark/internal/oauth/oauth2/model"
	"github.com/asgardeo/spark/internal/system/config"
	"github.com/asgardeo/spark/internal/system/error/serviceerror"
	usermodel "github.com/asgardeo/spark/internal/user/model"
)

type fakeIdentityStore struct {
	claims       []model.Claim
	claimsErr    *serviceerror.ServiceError
	canSignIn    bool
	canSignInErr *serviceerror.ServiceError
}

func (f *fakeIdentityStore) GetClaims(user *usermodel.User) ([]model.Claim, *serviceerror.ServiceError) {
	if f.claimsErr != nil {
		return nil, f.claimsErr
	}
	return f.claims, nil
}

func (f *fakeIdentityStore) CanSignIn(user *usermodel.User) (bool, *serviceerror.ServiceError) {
	if f.canSignInErr != nil {
		return false, f.canSignInErr
	}
	return f.canSignIn, nil
}

type fakeRoleCache struct {
	refreshedRole   string
	refreshedClaims []model.Claim
	refreshCount    int
}

func (f *fakeRoleCache) RefreshRolePermissions(roleName string, permissionClaims []model.Claim) {
	f.refreshedRole = roleName
	f.refreshedClaims = permissionClaims
	f.refreshCount++
}

func (f *fakeRoleCache) GetRolePermissions(roleName string) ([]permission.PermissionDescriptor, bool) {
	return nil, false
}

type EnricherTestSuite struct {
	suite.Suite
	store     *fakeIdentityStore
	roleCache *fakeRoleCache
	user      *usermodel.User
}

func TestEnricherSuite(t *testing.T) {
	suite.Run(t, new(EnricherTestSuite))
}

func (suite *EnricherTestSuite) SetupTest() {
	suite.store = &fakeIdentityStore{
		claims: []model.Claim{
			{Type: constants.ClaimTypeName, Value: "alice"},
			{Type: constants.ClaimTypeEmail, Value: "alice@x.com"},
			{Type: constants.ClaimTypeRole, Value: "SYS_ADMIN"},
			{Type: "FULL_CONTROL", Value: "1001"},
			{Type: constants.ClaimTypeSecurityStamp, Value: "stamp-1"},
		},
		canSignIn: true,
	}
	suite.roleCache = &fakeRoleCache{}
	suite.user = &usermodel.User{
		ID:       "user-1",
		Username: "alice",
		Email:    "alice@x.com",
		Role:     "SYS_ADMIN",
	}
}

func (suite *EnricherTestSuite) newEnricher(oauthConfig *config.OAuthConfig,
	augmentor ClaimAugmentor) *Enricher {
	if oauthConfig == nil {
		oauthConfig = &config.OAuthConfig{}
	}
	return NewEnricher(suite.store, appprovider.NewApplicationProvider(oauthConfig),
		suite.roleCache, augmentor)
}

func destinationsOf(t *testing.T, p *Principal, claimType string) []string {
	t.Helper()
	claim, found := p.GetClaim(claimType)
	assert.True(t, found, "claim %s not present", claimType)
	return claim.Destinations
}

func (suite *EnricherTestSuite) TestDestinationsWithAllScopes() {
	t := suite.T()

	request := &model.GrantRequest{
		GrantType: string(constants.GrantTypePassword),
		ClientID:  "web_client",
		Scopes:    []string{"openid", "profile", "email", "roles"},
	}
	p, exchErr := suite.newEnricher(nil, nil).Enrich(suite.user, request)
	assert.Nil(t, exchErr)

	both := []string{constants.DestinationAccessToken, constants.DestinationIdentityToken}
	accessOnly := []string{constants.DestinationAccessToken}

	assert.Equal(t, both, destinationsOf(t, p, constants.ClaimTypeName))
	assert.Equal(t, both, destinationsOf(t, p, constants.ClaimTypeEmail))
	assert.Equal(t, both, destinationsOf(t, p, constants.ClaimTypeRole))
	assert.Equal(t, accessOnly, destinationsOf(t, p, constants.ClaimTypeNickname))
	assert.Equal(t, accessOnly, destinationsOf(t, p, constants.ClaimTypeID))
}

func (suite *EnricherTestSuite) TestDestinationsWithoutOptionalScopes() {
	t := suite.T()

	request := &model.GrantRequest{
		GrantType: string(constants.GrantTypePassword),
		ClientID:  "web_client",
		Scopes:    []string{"openid"},
	}
	p, exchErr := suite.newEnricher(nil, nil).Enrich(suite.user, request)
	assert.Nil(t, exchErr)

	accessOnly := []string{constants.DestinationAccessToken}
	assert.Equal(t, accessOnly, destinationsOf(t, p, constants.ClaimTypeName))
	assert.Equal(t, accessOnly, destinationsOf(t, p, constants.ClaimTypeEmail))
	assert.Equal(t, accessOnly, destinationsOf(t, p, constants.ClaimTypeRole))
}

func (suite *EnricherTestSuite) TestSecurityStampNeverReachesAnyToken() {
	t := suite.T()

	request := &model.GrantRequest{
		GrantType: string(constants.GrantTypePassword),
		Scopes:    []string{"openid", "profile", "email", "roles"},
	}
	p, exchErr := suite.newEnricher(nil, nil).Enrich(suite.user, request)
	assert.Nil(t, exchErr)

	assert.Empty(t, destinationsOf(t, p, constants.ClaimTypeSecurityStamp))
}

func (suite *EnricherTestSuite) TestPermissionClaimsStrippedAndCacheRefreshed() {
	t := suite.T()

	request := &model.GrantRequest{GrantType: string(constants.GrantTypePassword)}
	p, exchErr := suite.newEnricher(nil, nil).Enrich(suite.user, request)
	assert.Nil(t, exchErr)

	_, found := p.GetClaim("FULL_CONTROL")
	assert.False(t, found, "permission claims must not survive enrichment")

	assert.Equal(t, 1, suite.roleCache.refreshCount)
	assert.Equal(t, "SYS_ADMIN", suite.roleCache.refreshedRole)
	assert.Equal(t, []model.Claim{{Type: "FULL_CONTROL", Value: "1001"}}, suite.roleCache.refreshedClaims)
}

func (suite *EnricherTestSuite) TestCacheNotRefreshedWithoutRoleClaim() {
	t := suite.T()

	suite.store.claims = []model.Claim{
		{Type: constants.ClaimTypeName, Value: "alice"},
	}
	request := &model.GrantRequest{GrantType: string(constants.GrantTypePassword)}
	_, exchErr := suite.newEnricher(nil, nil).Enrich(suite.user, request)
	assert.Nil(t, exchErr)

	assert.Equal(t, 0, suite.roleCache.refreshCount)
}

func (suite *EnricherTestSuite) TestClientLifetimeOverridesAppliedIndependently() {
	t := suite.T()

	accessLifetime := int64(3600)
	oauthConfig := &config.OAuthConfig{
		Clients: []config.ClientConfig{
			{ClientID: "c1", AccessTokenLifetime: &accessLifetime},
		},
	}
	request := &model.GrantRequest{
		GrantType: string(constants.GrantTypePassword),
		ClientID:  "c1",
	}
	p, exchErr := suite.newEnricher(oauthConfig, nil).Enrich(suite.user, request)
	assert.Nil(t, exchErr)

	assert.NotNil(t, p.AccessTokenLifetime)
	assert.Equal(t, int64(3600), *p.AccessTokenLifetime)
	assert.Nil(t, p.RefreshTokenLifetime)
}

func (suite *EnricherTestSuite) TestUnknownClientLeavesDefaultsUntouched() {
	t := suite.T()

	request := &model.GrantRequest{
		GrantType: string(constants.GrantTypePassword),
		ClientID:  "missing_client",
	}
	p, exchErr := suite.newEnricher(nil, nil).Enrich(suite.user, request)
	assert.Nil(t, exchErr)

	assert.Nil(t, p.AccessTokenLifetime)
	assert.Nil(t, p.RefreshTokenLifetime)
}

func (suite *EnricherTestSuite) TestDefaultAugmentorAddsSubjectClaims() {
	t := suite.T()

	request := &model.GrantRequest{GrantType: string(constants.GrantTypePassword)}
	p, exchErr := suite.newEnricher(nil, nil).Enrich(suite.user, request)
	assert.Nil(t, exchErr)

	nickname, found := p.GetClaim(constants.ClaimTypeNickname)
	assert.True(t, found)
	assert.Equal(t, "alice", nickname.Value)

	id, found := p.GetClaim(constants.ClaimTypeID)
	assert.True(t, found)
	assert.Equal(t, "user-1", id.Value)

	sub, found := p.GetClaim(constants.ClaimTypeSubject)
	assert.True(t, found)
	assert.Equal(t, "user-1", sub.Value)
}

func (suite *EnricherTestSuite) TestCustomAugmentorReplacesDefault() {
	t := suite.T()

	augmentor := func(user *usermodel.User, p *Principal) {
		p.AddClaim("tenant", "acme")
	}
	request := &model.GrantRequest{GrantType: string(constants.GrantTypePassword)}
	p, exchErr := suite.newEnricher(nil, augmentor).Enrich(suite.user, request)
	assert.Nil(t, exchErr)

	tenant, found := p.GetClaim("tenant")
	assert.True(t, found)
	assert.Equal(t, "acme", tenant.Value)
	assert.Equal(t, []string{constants.DestinationAccessToken}, tenant.Destinations)

	_, found = p.GetClaim(constants.ClaimTypeNickname)
	assert.False(t, found)
}

func (suite *EnricherTestSuite) TestScopesAttachedToPrincipal() {
	t := suite.T()

	request := &model.GrantRequest{
		GrantType: string(constants.GrantTypePassword),
		Scopes:    []string{"openid", "profile"},
	}
	p, exchErr := suite.newEnricher(nil, nil).Enrich(suite.user, request)
	assert.Nil(t, exchErr)

	assert.Equal(t, []string{"openid", "profile"}, p.Scopes)
	assert.True(t, p.HasScope("openid"))
	assert.False(t, p.HasScope("email"))
}

func (suite *EnricherTestSuite) TestSignInGateRejectsIneligibleUser() {
	t := suite.T()

	suite.store.canSignIn = false
	request := &model.GrantRequest{GrantType: string(constants.GrantTypePassword)}
	p, exchErr := suite.newEnricher(nil, nil).Enrich(suite.user, request)

	assert.Nil(t, p)
	assert.NotNil(t, exchErr)
	assert.Equal(t, model.KindSignInNotPermitted, exchErr.Kind)
}

func (suite *EnricherTestSuite) TestClaimMaterializationFailure() {
	t := suite.T()

	suite.store.claimsErr = &serviceerror.ServiceError{
		Type: serviceerror.ServerErrorType,
		Code: "USR-5001",
	}
	request := &model.GrantRequest{GrantType: string(constants.GrantTypePassword)}
	p, exchErr := suite.newEnricher(nil, nil).Enrich(suite.user, request)

	assert.Nil(t, p)
	assert.NotNil(t, exchErr)
	assert.Equal(t, model.KindInternalError, exchErr.Kind)
}
