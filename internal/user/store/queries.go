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

import dbmodel "github.com/asgardeo/spark/internal/system/database/model"

const userColumns = `user_id, username, email, email_confirmed, disabled, lockout_enabled, ` +
	`failed_attempts, lockout_until, role_name, security_stamp, first_name, last_name`

var (
	// QueryGetUserByID retrieves a user by their unique identifier.
	QueryGetUserByID = dbmodel.DBQuery{
		ID:          "USQ-USER_MGT-01",
		Query:       `SELECT ` + userColumns + ` FROM "USER" WHERE user_id = $1`,
		SQLiteQuery: `SELECT ` + userColumns + ` FROM "USER" WHERE user_id = ?`,
	}

	// QueryGetUserByEmail retrieves a user by email, case-insensitively.
	QueryGetUserByEmail = dbmodel.DBQuery{
		ID:          "USQ-USER_MGT-02",
		Query:       `SELECT ` + userColumns + ` FROM "USER" WHERE LOWER(email) = LOWER($1)`,
		SQLiteQuery: `SELECT ` + userColumns + ` FROM "USER" WHERE LOWER(email) = LOWER(?)`,
	}

	// QueryGetUserByUsername retrieves a user by username, case-insensitively.
	QueryGetUserByUsername = dbmodel.DBQuery{
		ID:          "USQ-USER_MGT-03",
		Query:       `SELECT ` + userColumns + ` FROM "USER" WHERE LOWER(username) = LOWER($1)`,
		SQLiteQuery: `SELECT ` + userColumns + ` FROM "USER" WHERE LOWER(username) = LOWER(?)`,
	}

	// QueryGetUserCredentials retrieves the stored credentials for a user.
	QueryGetUserCredentials = dbmodel.DBQuery{
		ID:          "USQ-USER_MGT-04",
		Query:       `SELECT credential_type, storage_algo, credential_value, salt FROM USER_CREDENTIAL WHERE user_id = $1`,
		SQLiteQuery: `SELECT credential_type, storage_algo, credential_value, salt FROM USER_CREDENTIAL WHERE user_id = ?`,
	}

	// QueryUpdateUser persists the mutable fields of a user record.
	QueryUpdateUser = dbmodel.DBQuery{
		ID: "USQ-USER_MGT-05",
		Query: `UPDATE "USER" SET username = $2, email = $3, email_confirmed = $4, disabled = $5, ` +
			`lockout_enabled = $6, failed_attempts = $7, lockout_until = $8, role_name = $9, ` +
			`security_stamp = $10, first_name = $11, last_name = $12 WHERE user_id = $1`,
		SQLiteQuery: `UPDATE "USER" SET username = ?2, email = ?3, email_confirmed = ?4, disabled = ?5, ` +
			`lockout_enabled = ?6, failed_attempts = ?7, lockout_until = ?8, role_name = ?9, ` +
			`security_stamp = ?10, first_name = ?11, last_name = ?12 WHERE user_id = ?1`,
	}

	// QueryGetRoleClaims retrieves the claims attached to a role.
	QueryGetRoleClaims = dbmodel.DBQuery{
		ID:          "USQ-USER_MGT-06",
		Query:       `SELECT claim_type, claim_value FROM ROLE_CLAIM WHERE role_name = $1 ORDER BY claim_value`,
		SQLiteQuery: `SELECT claim_type, claim_value FROM ROLE_CLAIM WHERE role_name = ? ORDER BY claim_value`,
	}

	// QueryCreateUser inserts a new user record.
	QueryCreateUser = dbmodel.DBQuery{
		ID: "USQ-USER_MGT-07",
		Query: `INSERT INTO "USER" (` + userColumns + `) ` +
			`VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		SQLiteQuery: `INSERT INTO "USER" (` + userColumns + `) ` +
			`VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	}

	// QueryCreateUserCredentials inserts the credentials for a user.
	QueryCreateUserCredentials = dbmodel.DBQuery{
		ID: "USQ-USER_MGT-08",
		Query: `INSERT INTO USER_CREDENTIAL (user_id, credential_type, storage_algo, credential_value, salt) ` +
			`VALUES ($1, $2, $3, $4, $5)`,
		SQLiteQuery: `INSERT INTO USER_CREDENTIAL (user_id, credential_type, storage_algo, credential_value, salt) ` +
			`VALUES (?, ?, ?, ?, ?)`,
	}
)
