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

package provision

import dbmodel "github.com/asgardeo/spark/internal/system/database/model"

var (
	// QueryGetRole checks whether a role record exists.
	QueryGetRole = dbmodel.DBQuery{
		ID:          "PRQ-PROVISION-01",
		Query:       `SELECT role_id, role_name FROM ROLE WHERE role_name = $1`,
		SQLiteQuery: `SELECT role_id, role_name FROM ROLE WHERE role_name = ?`,
	}

	// QueryCreateRole inserts a role record.
	QueryCreateRole = dbmodel.DBQuery{
		ID:          "PRQ-PROVISION-02",
		Query:       `INSERT INTO ROLE (role_id, role_name) VALUES ($1, $2)`,
		SQLiteQuery: `INSERT INTO ROLE (role_id, role_name) VALUES (?, ?)`,
	}

	// QueryGetRoleClaim checks whether a claim is already attached to a role.
	QueryGetRoleClaim = dbmodel.DBQuery{
		ID:          "PRQ-PROVISION-03",
		Query:       `SELECT claim_type, claim_value FROM ROLE_CLAIM WHERE role_name = $1 AND claim_type = $2`,
		SQLiteQuery: `SELECT claim_type, claim_value FROM ROLE_CLAIM WHERE role_name = ? AND claim_type = ?`,
	}

	// QueryCreateRoleClaim attaches a claim to a role.
	QueryCreateRoleClaim = dbmodel.DBQuery{
		ID:          "PRQ-PROVISION-04",
		Query:       `INSERT INTO ROLE_CLAIM (role_name, claim_type, claim_value) VALUES ($1, $2, $3)`,
		SQLiteQuery: `INSERT INTO ROLE_CLAIM (role_name, claim_type, claim_value) VALUES (?, ?, ?)`,
	}
)
