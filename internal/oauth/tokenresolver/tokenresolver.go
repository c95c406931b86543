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

// Package tokenresolver resolves inbound grant artifacts (refresh tokens, device
// codes, authorization code challenges) to the subject that owns them. Token
// issuance and signing belong to a collaborating subsystem; this package only
// reads artifacts handed in by the transport layer.
package tokenresolver

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Resolution failure modes. Callers map these to grant specific exchange errors.
var (
	// ErrTokenInvalid indicates a malformed artifact or a failed signature check.
	ErrTokenInvalid = errors.New("token is invalid or malformed")
	// ErrTokenExpired indicates a well-formed artifact past its expiry.
	ErrTokenExpired = errors.New("token has expired")
	// ErrSubjectMissing indicates a valid artifact that carries no subject.
	ErrSubjectMissing = errors.New("token carries no subject")
)

// TokenResolverInterface resolves an opaque token artifact to its subject identifier.
type TokenResolverInterface interface {
	ResolveSubject(token string) (string, error)
}

// ChallengeResolverInterface resolves an authorization code challenge to the
// subject that completed the authorization leg.
type ChallengeResolverInterface interface {
	ResolveChallenge(code string) (string, error)
}

// JWTResolver resolves JWT-encoded grant artifacts. The verification key is
// supplied by the caller, so the same resolver serves refresh tokens, device
// codes, and authorization code challenges with their respective keys.
type JWTResolver struct {
	keyFunc jwt.Keyfunc
	parser  *jwt.Parser
}

// NewJWTResolver creates a resolver that verifies artifacts with the given key function.
func NewJWTResolver(keyFunc jwt.Keyfunc) *JWTResolver {
	return &JWTResolver{
		keyFunc: keyFunc,
		parser: jwt.NewParser(
			jwt.WithExpirationRequired(),
			jwt.WithValidMethods([]string{"HS256", "RS256", "ES256"}),
		),
	}
}

// ResolveSubject parses and validates the artifact and returns its subject claim.
func (r *JWTResolver) ResolveSubject(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := r.parser.ParseWithClaims(token, claims, r.keyFunc)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}
	if !parsed.Valid {
		return "", ErrTokenInvalid
	}
	if claims.Subject == "" {
		return "", ErrSubjectMissing
	}
	return claims.Subject, nil
}

// ResolveChallenge resolves an authorization code challenge. Codes share the JWT
// artifact shape, so resolution is subject extraction under the challenge key.
func (r *JWTResolver) ResolveChallenge(code string) (string, error) {
	return r.ResolveSubject(code)
}
