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

// Package managers provides functionality for wiring and registering the server's services.
package managers

import (
	"encoding/json"
	"net/http"

	"github.com/golang-jwt/jwt/v5"

	appprovider "github.com/asgardeo/spark/internal/application/provider"
	"github.com/asgardeo/spark/internal/authz/permission"
	"github.com/asgardeo/spark/internal/oauth/oauth2/exchange"
	"github.com/asgardeo/spark/internal/oauth/oauth2/principal"
	"github.com/asgardeo/spark/internal/oauth/oauth2/token"
	"github.com/asgardeo/spark/internal/oauth/tokenissuer"
	"github.com/asgardeo/spark/internal/oauth/tokenresolver"
	"github.com/asgardeo/spark/internal/system/config"
	"github.com/asgardeo/spark/internal/system/log"
	"github.com/asgardeo/spark/internal/user/service"
)

// ServiceManager wires the grant core and registers its endpoints.
type ServiceManager struct {
	mux *http.ServeMux
}

// NewServiceManager creates a new service manager over the given multiplexer.
func NewServiceManager(mux *http.ServeMux) *ServiceManager {
	return &ServiceManager{
		mux: mux,
	}
}

// RegisterServices builds the grant dispatcher with its collaborators and
// registers the token and health endpoints.
func (sm *ServiceManager) RegisterServices() error {
	signingKey := []byte(config.GetSparkRuntime().Config.OAuth.SigningKey)
	keyFunc := func(t *jwt.Token) (interface{}, error) {
		return signingKey, nil
	}
	resolver := tokenresolver.NewJWTResolver(keyFunc)

	userService := service.GetUserService()
	enricher := principal.NewEnricher(
		userService,
		appprovider.GetApplicationProvider(),
		permission.GetRoleCache(),
		nil,
	)
	exchanger := exchange.NewExchanger(userService, resolver, resolver, resolver, enricher)

	issuer := tokenissuer.NewJWTIssuer()
	tokenHandler := token.NewTokenHandler(exchanger, issuer.Issue)

	sm.mux.HandleFunc("/oauth2/token", tokenHandler.HandleTokenRequest)
	sm.mux.HandleFunc("/health/liveness", handleLiveness)

	log.GetLogger().Info("Registered the token service")
	return nil
}

// handleLiveness reports whether the server process is accepting requests.
func handleLiveness(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "UP"})
}
