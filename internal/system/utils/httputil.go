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

// Package utils provides HTTP helpers shared across request handlers.
package utils

import (
	"encoding/json"
	"net/http"

	"github.com/asgardeo/spark/internal/system/log"
)

// ErrorResponse represents an OAuth 2.0 style JSON error body.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// WriteJSONError writes a JSON error response with the given error code, description and status code.
func WriteJSONError(w http.ResponseWriter, errorCode, errorDescription string, statusCode int,
	headers []map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	for _, header := range headers {
		for key, value := range header {
			w.Header().Set(key, value)
		}
	}
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Error:            errorCode,
		ErrorDescription: errorDescription,
	}); err != nil {
		log.GetLogger().Error("Failed to write error response", log.Error(err))
	}
}
