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

package store

import (
	"strconv"
	"time"

	"github.com/asgardeo/spark/internal/user/model"
)

// buildUserFromResultRow maps a result row to a user model.
func buildUserFromResultRow(row map[string]interface{}) *model.User {
	user := &model.User{
		ID:             getString(row, "user_id"),
		Username:       getString(row, "username"),
		Email:          getString(row, "email"),
		EmailConfirmed: getBool(row, "email_confirmed"),
		Disabled:       getBool(row, "disabled"),
		LockoutEnabled: getBool(row, "lockout_enabled"),
		FailedAttempts: int(getInt64(row, "failed_attempts")),
		Role:           getString(row, "role_name"),
		SecurityStamp:  getString(row, "security_stamp"),
		FirstName:      getString(row, "first_name"),
		LastName:       getString(row, "last_name"),
	}

	if lockoutUntil := getString(row, "lockout_until"); lockoutUntil != "" {
		if parsed, err := time.Parse(time.RFC3339, lockoutUntil); err == nil {
			user.LockoutUntil = &parsed
		}
	}
	return user
}

// getString extracts a string column value, tolerating driver specific representations.
func getString(row map[string]interface{}, column string) string {
	switch value := row[column].(type) {
	case string:
		return value
	case []byte:
		return string(value)
	case time.Time:
		return value.UTC().Format(time.RFC3339)
	default:
		return ""
	}
}

// getBool extracts a boolean column value, tolerating driver specific representations.
func getBool(row map[string]interface{}, column string) bool {
	switch value := row[column].(type) {
	case bool:
		return value
	case int64:
		return value != 0
	case string:
		parsed, err := strconv.ParseBool(value)
		return err == nil && parsed
	default:
		return false
	}
}

// getInt64 extracts an integer column value, tolerating driver specific representations.
func getInt64(row map[string]interface{}, column string) int64 {
	switch value := row[column].(type) {
	case int64:
		return value
	case int:
		return int64(value)
	case string:
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}
