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

// Package tokenissuer serializes enriched principals into signed tokens. It is
// the in-process stand-in for the issuing collaborator of the grant core and
// honors the per-claim destination tags computed by the enrichment pipeline.
package tokenissuer

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/asgardeo/spark/internal/oauth/oauth2/constants"
	"github.com/asgardeo/spark/internal/oauth/oauth2/model"
	"github.com/asgardeo/spark/internal/oauth/oauth2/principal"
	"github.com/asgardeo/spark/internal/oauth/oauth2/token"
	"github.com/asgardeo/spark/internal/system/config"
)

const (
	defaultAccessTokenLifetime  = int64(3600)
	defaultRefreshTokenLifetime = int64(86400)
)

// JWTIssuer signs HS256 tokens with the shared signing key.
type JWTIssuer struct {
	issuer               string
	signingKey           []byte
	accessTokenLifetime  int64
	refreshTokenLifetime int64
}

// NewJWTIssuer creates an issuer from the runtime OAuth configuration.
func NewJWTIssuer() *JWTIssuer {
	oauthConfig := config.GetSparkRuntime().Config.OAuth

	accessLifetime := oauthConfig.AccessToken.ValidityPeriod
	if accessLifetime <= 0 {
		accessLifetime = defaultAccessTokenLifetime
	}
	refreshLifetime := oauthConfig.RefreshToken.ValidityPeriod
	if refreshLifetime <= 0 {
		refreshLifetime = defaultRefreshTokenLifetime
	}

	return &JWTIssuer{
		issuer:               oauthConfig.Issuer,
		signingKey:           []byte(oauthConfig.SigningKey),
		accessTokenLifetime:  accessLifetime,
		refreshTokenLifetime: refreshLifetime,
	}
}

// Issue builds the token response for the given principal. Claims reach a token
// only when their destination set names it, and the principal's client-level
// lifetime overrides take precedence over the server defaults.
func (i *JWTIssuer) Issue(p *principal.Principal, request *model.GrantRequest) (
	*token.TokenResponse, error) {
	now := time.Now()

	accessLifetime := i.accessTokenLifetime
	if p.AccessTokenLifetime != nil {
		accessLifetime = *p.AccessTokenLifetime
	}
	refreshLifetime := i.refreshTokenLifetime
	if p.RefreshTokenLifetime != nil {
		refreshLifetime = *p.RefreshTokenLifetime
	}

	accessToken, err := i.sign(p, now, accessLifetime, constants.DestinationAccessToken)
	if err != nil {
		return nil, err
	}

	response := &token.TokenResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   accessLifetime,
		Scope:       strings.Join(p.Scopes, " "),
	}

	refreshToken, err := i.signOpaque(p, now, refreshLifetime)
	if err != nil {
		return nil, err
	}
	response.RefreshToken = refreshToken

	if p.HasScope(constants.ScopeOpenID) {
		idToken, err := i.sign(p, now, accessLifetime, constants.DestinationIdentityToken)
		if err != nil {
			return nil, err
		}
		response.IDToken = idToken
	}
	return response, nil
}

// sign serializes the claims destined for the given token type.
func (i *JWTIssuer) sign(p *principal.Principal, now time.Time, lifetime int64,
	destination string) (string, error) {
	claims := jwt.MapClaims{
		"iss": i.issuer,
		"sub": p.UserID,
		"iat": now.Unix(),
		"exp": now.Add(time.Duration(lifetime) * time.Second).Unix(),
	}
	for _, claim := range p.Claims {
		if claim.Type == "sub" {
			continue
		}
		for _, dest := range claim.Destinations {
			if dest == destination {
				claims[claim.Type] = claim.Value
				break
			}
		}
	}
	if destination == constants.DestinationAccessToken && len(p.Scopes) > 0 {
		claims["scope"] = strings.Join(p.Scopes, " ")
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.signingKey)
}

// signOpaque serializes a refresh artifact carrying only the subject.
func (i *JWTIssuer) signOpaque(p *principal.Principal, now time.Time, lifetime int64) (string, error) {
	claims := jwt.RegisteredClaims{
		Issuer:    i.issuer,
		Subject:   p.UserID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(lifetime) * time.Second)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.signingKey)
}
