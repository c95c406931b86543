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

package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	oauth2const "github.com/asgardeo/spark/internal/oauth/oauth2/constants"
	"github.com/asgardeo/spark/internal/system/config"
)

type ApplicationProviderTestSuite struct {
	suite.Suite
	provider ApplicationProviderInterface
}

func TestApplicationProviderSuite(t *testing.T) {
	suite.Run(t, new(ApplicationProviderTestSuite))
}

func (suite *ApplicationProviderTestSuite) SetupTest() {
	accessLifetime := int64(3600)
	oauthConfig := &config.OAuthConfig{
		PublicURL: "https://auth.example.com/",
		Clients: []config.ClientConfig{
			{
				ClientID:            "web_client",
				ClientSecret:        "web-secret",
				RedirectURIs:        []string{"/signin-callback", "https://app.example.com/cb"},
				AccessTokenLifetime: &accessLifetime,
			},
			{
				ClientID:               "spa_client",
				RedirectURIs:           []string{"/spa/callback"},
				PostLogoutRedirectURIs: []string{"/spa/logout"},
			},
		},
	}
	suite.provider = NewApplicationProvider(oauthConfig)
}

func (suite *ApplicationProviderTestSuite) TestTryResolveKnownClient() {
	t := suite.T()

	client, found := suite.provider.TryResolve("web_client")
	assert.True(t, found)
	assert.Equal(t, "web_client", client.ClientID)
	assert.Equal(t, oauth2const.ClientTypeConfidential, client.ClientType)
	assert.True(t, client.IsConfidential())
}

func (suite *ApplicationProviderTestSuite) TestTryResolveUnknownClient() {
	client, found := suite.provider.TryResolve("missing_client")
	assert.False(suite.T(), found)
	assert.Nil(suite.T(), client)
}

func (suite *ApplicationProviderTestSuite) TestClientTypeInferredFromSecretAbsence() {
	t := suite.T()

	client, found := suite.provider.TryResolve("spa_client")
	assert.True(t, found)
	assert.Equal(t, oauth2const.ClientTypePublic, client.ClientType)
	assert.False(t, client.IsConfidential())
}

func (suite *ApplicationProviderTestSuite) TestRelativeURIsMaterializedAgainstPublicURL() {
	t := suite.T()

	client, found := suite.provider.TryResolve("web_client")
	assert.True(t, found)
	assert.Equal(t, []string{
		"https://auth.example.com/signin-callback",
		"https://app.example.com/cb",
	}, client.RedirectURIs)

	spa, found := suite.provider.TryResolve("spa_client")
	assert.True(t, found)
	assert.Equal(t, []string{"https://auth.example.com/spa/logout"}, spa.PostLogoutRedirectURIs)
}

func (suite *ApplicationProviderTestSuite) TestLifetimeOverrides() {
	t := suite.T()

	client, found := suite.provider.TryResolve("web_client")
	assert.True(t, found)
	assert.True(t, client.HasLifetimeOverrides())
	assert.Equal(t, int64(3600), *client.AccessTokenLifetime)
	assert.Nil(t, client.RefreshTokenLifetime)

	spa, found := suite.provider.TryResolve("spa_client")
	assert.True(t, found)
	assert.False(t, spa.HasLifetimeOverrides())
}

func (suite *ApplicationProviderTestSuite) TestResolveAllPreservesDeclarationOrder() {
	t := suite.T()

	clients := suite.provider.ResolveAll()
	assert.Len(t, clients, 2)
	assert.Equal(t, "web_client", clients[0].ClientID)
	assert.Equal(t, "spa_client", clients[1].ClientID)
}

func (suite *ApplicationProviderTestSuite) TestDuplicateAndEmptyClientIDsSkipped() {
	t := suite.T()

	oauthConfig := &config.OAuthConfig{
		PublicURL: "https://auth.example.com",
		Clients: []config.ClientConfig{
			{ClientID: "web_client"},
			{ClientID: "web_client", ClientSecret: "dupe"},
			{ClientID: ""},
		},
	}
	p := NewApplicationProvider(oauthConfig)

	clients := p.ResolveAll()
	assert.Len(t, clients, 1)

	client, found := p.TryResolve("web_client")
	assert.True(t, found)
	assert.False(t, client.IsConfidential())
}
