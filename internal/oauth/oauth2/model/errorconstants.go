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

package model

import "github.com/asgardeo/spark/internal/system/error/serviceerror"

// ExchangeErrorKind classifies the failure modes of a token grant exchange.
// The kind exists for logging and telemetry only; the transport boundary
// collapses every kind into a uniform response.
type ExchangeErrorKind string

const (
	// KindInvalidCredentials denotes an unknown user or a failed secret/challenge.
	KindInvalidCredentials ExchangeErrorKind = "invalid_credentials"
	// KindSignInNotPermitted denotes valid credentials rejected by account policy.
	KindSignInNotPermitted ExchangeErrorKind = "sign_in_not_permitted"
	// KindRefreshTokenInvalid denotes a stale or unresolvable refresh token.
	KindRefreshTokenInvalid ExchangeErrorKind = "refresh_token_invalid"
	// KindDeviceCodeInvalid denotes a stale or unresolvable device code.
	KindDeviceCodeInvalid ExchangeErrorKind = "device_code_invalid"
	// KindTokenInvalid denotes an unresolvable grant artifact of ambiguous type.
	KindTokenInvalid ExchangeErrorKind = "token_invalid"
	// KindNotImplemented denotes an unsupported grant type reaching the dispatcher.
	// This is a configuration defect and must never be converted to a denial.
	KindNotImplemented ExchangeErrorKind = "not_implemented"
	// KindInternalError denotes a failure of a collaborating subsystem.
	KindInternalError ExchangeErrorKind = "internal_error"
)

// ExchangeError represents a typed failure of a token grant exchange.
type ExchangeError struct {
	Kind  ExchangeErrorKind
	Error serviceerror.ServiceError
}

// Exchange errors surfaced by the grant dispatcher and the enrichment pipeline.
var (
	// ErrorInvalidCredentials is returned when the user is not found or the
	// presented secret or challenge failed. The description is deliberately
	// generic to prevent user enumeration.
	ErrorInvalidCredentials = ExchangeError{
		Kind: KindInvalidCredentials,
		Error: serviceerror.ServiceError{
			Type:             serviceerror.ClientErrorType,
			Code:             "OAUTH-EXCH-1001",
			Error:            "invalid_grant",
			ErrorDescription: "Invalid email or password.",
		},
	}
	// ErrorSignInNotPermitted is returned when the credentials are valid but
	// account policy forbids sign-in.
	ErrorSignInNotPermitted = ExchangeError{
		Kind: KindSignInNotPermitted,
		Error: serviceerror.ServiceError{
			Type:             serviceerror.ClientErrorType,
			Code:             "OAUTH-EXCH-1002",
			Error:            "invalid_grant",
			ErrorDescription: "You are not allowed to sign in.",
		},
	}
	// ErrorRefreshTokenInvalid is returned when a refresh token resolves to no user.
	ErrorRefreshTokenInvalid = ExchangeError{
		Kind: KindRefreshTokenInvalid,
		Error: serviceerror.ServiceError{
			Type:             serviceerror.ClientErrorType,
			Code:             "OAUTH-EXCH-1003",
			Error:            "invalid_grant",
			ErrorDescription: "refresh_token_invalid",
		},
	}
	// ErrorDeviceCodeInvalid is returned when a device code resolves to no user.
	ErrorDeviceCodeInvalid = ExchangeError{
		Kind: KindDeviceCodeInvalid,
		Error: serviceerror.ServiceError{
			Type:             serviceerror.ClientErrorType,
			Code:             "OAUTH-EXCH-1004",
			Error:            "invalid_grant",
			ErrorDescription: "device_code_invalid",
		},
	}
	// ErrorTokenInvalid is returned when a grant artifact of ambiguous type
	// resolves to no user.
	ErrorTokenInvalid = ExchangeError{
		Kind: KindTokenInvalid,
		Error: serviceerror.ServiceError{
			Type:             serviceerror.ClientErrorType,
			Code:             "OAUTH-EXCH-1005",
			Error:            "invalid_grant",
			ErrorDescription: "token_invalid",
		},
	}
	// ErrorInternalServerError is returned when a collaborating subsystem fails
	// while processing an otherwise well-formed exchange.
	ErrorInternalServerError = ExchangeError{
		Kind: KindInternalError,
		Error: serviceerror.ServiceError{
			Type:             serviceerror.ServerErrorType,
			Code:             "OAUTH-EXCH-5002",
			Error:            "server_error",
			ErrorDescription: "An unexpected error occurred while processing the request.",
		},
	}
	// ErrorNotImplemented is returned when the dispatcher receives a grant type
	// the server does not support.
	ErrorNotImplemented = ExchangeError{
		Kind: KindNotImplemented,
		Error: serviceerror.ServiceError{
			Type:             serviceerror.ServerErrorType,
			Code:             "OAUTH-EXCH-5001",
			Error:            "unsupported_grant_type",
			ErrorDescription: "The specified grant type is not implemented.",
		},
	}
)
