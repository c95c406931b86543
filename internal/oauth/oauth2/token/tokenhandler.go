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

// Package token implements the OAuth 2.0 token endpoint.
package token

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/asgardeo/spark/internal/oauth/oauth2/constants"
	"github.com/asgardeo/spark/internal/oauth/oauth2/exchange"
	"github.com/asgardeo/spark/internal/oauth/oauth2/model"
	"github.com/asgardeo/spark/internal/oauth/oauth2/principal"
	"github.com/asgardeo/spark/internal/system/log"
	"github.com/asgardeo/spark/internal/system/utils"
)

const loggerComponentName = "TokenHandler"

// TokenResponse is the success payload of the token endpoint.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	RefreshToken string `json:"refresh_token,omitempty"`
	IDToken      string `json:"id_token,omitempty"`
	Scope        string `json:"scope,omitempty"`
}

// TokenIssuerFunc serializes and signs tokens for an enriched principal. Token
// formats and signing keys belong to the issuing subsystem, so the handler only
// hands over the principal and the originating request.
type TokenIssuerFunc func(p *principal.Principal, request *model.GrantRequest) (*TokenResponse, error)

// TokenHandler handles OAuth 2.0 token requests.
type TokenHandler struct {
	exchanger exchange.ExchangerInterface
	issuer    TokenIssuerFunc
}

// NewTokenHandler creates a token handler over the given dispatcher and issuer.
func NewTokenHandler(exchanger exchange.ExchangerInterface, issuer TokenIssuerFunc) *TokenHandler {
	return &TokenHandler{
		exchanger: exchanger,
		issuer:    issuer,
	}
}

// HandleTokenRequest processes a token request against the grant dispatcher.
// Every dispatch failure maps to the same generic invalid_grant response, with
// the single exception of unsupported grant types, so that the response shape
// never reveals whether a user or account exists.
func (th *TokenHandler) HandleTokenRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	if r.Method != http.MethodPost {
		utils.WriteJSONError(w, constants.ErrorInvalidRequest, "Method not allowed",
			http.StatusMethodNotAllowed, nil)
		return
	}
	if err := r.ParseForm(); err != nil {
		utils.WriteJSONError(w, constants.ErrorInvalidRequest, "Failed to parse the request form",
			http.StatusBadRequest, nil)
		return
	}

	request := grantRequestFromForm(r)
	if request.GrantType == "" {
		utils.WriteJSONError(w, constants.ErrorInvalidRequest, "Missing grant_type parameter",
			http.StatusBadRequest, nil)
		return
	}

	p, exchErr := th.exchanger.Exchange(request)
	if exchErr != nil {
		th.writeExchangeError(w, request, exchErr)
		return
	}

	response, err := th.issuer(p, request)
	if err != nil {
		logger.Error("Token issuance failed", log.String("clientID", request.ClientID), log.Error(err))
		utils.WriteJSONError(w, constants.ErrorServerError,
			"An unexpected error occurred while issuing the token", http.StatusInternalServerError, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error("Failed to write the token response", log.Error(err))
	}
}

// writeExchangeError maps a typed exchange failure to its wire response. The
// error kind is logged for telemetry but never differentiates the client
// visible payload, apart from the unsupported grant type case.
func (th *TokenHandler) writeExchangeError(w http.ResponseWriter, request *model.GrantRequest,
	exchErr *model.ExchangeError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))
	logger.Debug("Token exchange failed",
		log.String("grantType", request.GrantType),
		log.String("clientID", request.ClientID),
		log.String("kind", string(exchErr.Kind)),
		log.String("code", exchErr.Error.Code))

	switch exchErr.Kind {
	case model.KindNotImplemented:
		utils.WriteJSONError(w, constants.ErrorUnsupportedGrantType,
			exchErr.Error.ErrorDescription, http.StatusBadRequest, nil)
	case model.KindInternalError:
		utils.WriteJSONError(w, constants.ErrorServerError,
			"An unexpected error occurred while processing the request",
			http.StatusInternalServerError, nil)
	default:
		utils.WriteJSONError(w, constants.ErrorInvalidGrant,
			"The provided authorization grant is invalid", http.StatusBadRequest, nil)
	}
}

// grantRequestFromForm builds the immutable grant request from the form body.
func grantRequestFromForm(r *http.Request) *model.GrantRequest {
	return &model.GrantRequest{
		GrantType:    r.PostFormValue("grant_type"),
		ClientID:     r.PostFormValue("client_id"),
		Username:     r.PostFormValue("username"),
		Password:     r.PostFormValue("password"),
		Code:         r.PostFormValue("code"),
		RefreshToken: r.PostFormValue("refresh_token"),
		DeviceCode:   r.PostFormValue("device_code"),
		Scopes:       strings.Fields(r.PostFormValue("scope")),
	}
}
