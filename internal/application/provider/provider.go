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

// Package provider resolves OAuth client configurations from the server configuration.
package provider

import (
	"strings"
	"sync"

	"github.com/asgardeo/spark/internal/application/model"
	oauth2const "github.com/asgardeo/spark/internal/oauth/oauth2/constants"
	"github.com/asgardeo/spark/internal/system/config"
	"github.com/asgardeo/spark/internal/system/log"
)

const loggerComponentName = "ApplicationProvider"

// ApplicationProviderInterface defines the client configuration resolution operations.
type ApplicationProviderInterface interface {
	TryResolve(clientID string) (*model.ClientConfiguration, bool)
	MustResolve(clientID string) *model.ClientConfiguration
	ResolveAll() []*model.ClientConfiguration
}

// ApplicationProvider resolves client configurations materialized once at construction.
type ApplicationProvider struct {
	clients map[string]*model.ClientConfiguration
	order   []string
}

var (
	instance ApplicationProviderInterface
	once     sync.Once
)

// GetApplicationProvider returns the singleton instance of the application provider.
func GetApplicationProvider() ApplicationProviderInterface {
	once.Do(func() {
		oauthConfig := config.GetSparkRuntime().Config.OAuth
		instance = NewApplicationProvider(&oauthConfig)
	})
	return instance
}

// NewApplicationProvider creates an application provider over the given OAuth configuration.
// Relative redirect URIs are resolved against the configured public URL, and the client
// type is inferred from secret presence when not set explicitly.
func NewApplicationProvider(oauthConfig *config.OAuthConfig) ApplicationProviderInterface {
	provider := &ApplicationProvider{
		clients: make(map[string]*model.ClientConfiguration, len(oauthConfig.Clients)),
		order:   make([]string, 0, len(oauthConfig.Clients)),
	}

	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))
	for _, clientConfig := range oauthConfig.Clients {
		if clientConfig.ClientID == "" {
			logger.Warn("Skipping client configuration without a client identifier")
			continue
		}
		if _, exists := provider.clients[clientConfig.ClientID]; exists {
			logger.Warn("Skipping duplicate client configuration",
				log.String("clientID", clientConfig.ClientID))
			continue
		}

		resolved := materializeClient(&clientConfig, oauthConfig.PublicURL)
		provider.clients[resolved.ClientID] = resolved
		provider.order = append(provider.order, resolved.ClientID)
	}
	return provider
}

// TryResolve returns the configuration of the given client, if one is registered.
func (p *ApplicationProvider) TryResolve(clientID string) (*model.ClientConfiguration, bool) {
	client, ok := p.clients[clientID]
	return client, ok
}

// MustResolve returns the configuration of the given client and terminates the
// server when the client is not registered. Intended for startup wiring only.
func (p *ApplicationProvider) MustResolve(clientID string) *model.ClientConfiguration {
	client, ok := p.clients[clientID]
	if !ok {
		log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName)).
			Fatal("Required client configuration is not registered", log.String("clientID", clientID))
	}
	return client
}

// ResolveAll returns all registered client configurations in declaration order.
func (p *ApplicationProvider) ResolveAll() []*model.ClientConfiguration {
	clients := make([]*model.ClientConfiguration, 0, len(p.order))
	for _, clientID := range p.order {
		clients = append(clients, p.clients[clientID])
	}
	return clients
}

// materializeClient builds the resolved client configuration from its static definition.
func materializeClient(clientConfig *config.ClientConfig, publicURL string) *model.ClientConfiguration {
	clientType := clientConfig.ClientType
	if clientType == "" {
		if clientConfig.ClientSecret != "" {
			clientType = oauth2const.ClientTypeConfidential
		} else {
			clientType = oauth2const.ClientTypePublic
		}
	}

	return &model.ClientConfiguration{
		ClientID:               clientConfig.ClientID,
		ClientSecret:           clientConfig.ClientSecret,
		ClientType:             clientType,
		RedirectURIs:           materializeURIs(clientConfig.RedirectURIs, publicURL),
		PostLogoutRedirectURIs: materializeURIs(clientConfig.PostLogoutRedirectURIs, publicURL),
		Permissions:            append([]string(nil), clientConfig.Permissions...),
		AccessTokenLifetime:    clientConfig.AccessTokenLifetime,
		RefreshTokenLifetime:   clientConfig.RefreshTokenLifetime,
	}
}

// materializeURIs resolves relative URIs against the public URL of the server.
func materializeURIs(uris []string, publicURL string) []string {
	materialized := make([]string, 0, len(uris))
	base := strings.TrimRight(publicURL, "/")
	for _, uri := range uris {
		if strings.HasPrefix(uri, "/") {
			materialized = append(materialized, base+uri)
			continue
		}
		materialized = append(materialized, uri)
	}
	return materialized
}
