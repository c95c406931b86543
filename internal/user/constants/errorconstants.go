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

// Package constants defines the error constants for the user service.
package constants

import "github.com/asgardeo/spark/internal/system/error/serviceerror"

// Client errors for user service operations.
var (
	// ErrorUserNotFound is the error when the requested user cannot be found.
	ErrorUserNotFound = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "USR-1001",
		Error:            "User not found",
		ErrorDescription: "The user could not be found in the system",
	}
	// ErrorMissingCredentials is the error when the user has no stored credentials.
	ErrorMissingCredentials = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "USR-1002",
		Error:            "Missing credentials",
		ErrorDescription: "No credentials are stored for the user",
	}
)

// Server errors for user service operations.
var (
	// ErrorInternalServerError is the error for unexpected store failures.
	ErrorInternalServerError = serviceerror.ServiceError{
		Type:             serviceerror.ServerErrorType,
		Code:             "USR-5001",
		Error:            "Internal server error",
		ErrorDescription: "An unexpected error occurred while processing the request",
	}
)
