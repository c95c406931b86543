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

// Package model defines the database query abstractions used by the database client.
package model

import "database/sql"

// DBQuery represents a database query with per-driver variants.
type DBQuery struct {
	// ID is a unique identifier for the query, used for logging and tracing.
	ID string
	// Query is the default SQL query string.
	Query string
	// PostgresQuery is the PostgreSQL-specific variant, if any.
	PostgresQuery string
	// SQLiteQuery is the SQLite-specific variant, if any.
	SQLiteQuery string
}

// GetID returns the unique identifier of the query.
func (q DBQuery) GetID() string {
	return q.ID
}

// GetQuery returns the query string applicable for the given database type.
func (q DBQuery) GetQuery(dbType string) string {
	switch dbType {
	case "postgres":
		if q.PostgresQuery != "" {
			return q.PostgresQuery
		}
	case "sqlite":
		if q.SQLiteQuery != "" {
			return q.SQLiteQuery
		}
	}
	return q.Query
}

// DBInterface defines the subset of database/sql operations used by the client.
type DBInterface interface {
	Query(query string, args ...interface{}) (*sql.Rows, error)
	Exec(query string, args ...interface{}) (sql.Result, error)
	Begin() (*sql.Tx, error)
	Close() error
}

// TxInterface defines the interface for database transactions.
type TxInterface interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Commit() error
	Rollback() error
}
