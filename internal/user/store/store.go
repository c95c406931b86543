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

// Package store provides the persistence layer for user management.
package store

import (
	"time"

	dbmodel "github.com/asgardeo/spark/internal/system/database/model"
	"github.com/asgardeo/spark/internal/system/database/provider"
	"github.com/asgardeo/spark/internal/user/model"
)

// UserStoreInterface defines the interface for user persistence operations.
type UserStoreInterface interface {
	GetUserByID(userID string) (*model.User, error)
	GetUserByEmail(email string) (*model.User, error)
	GetUserByUsername(username string) (*model.User, error)
	GetUserCredentials(userID string) (*model.Credentials, error)
	UpdateUser(user *model.User) error
	GetRoleClaims(roleName string) ([]model.RoleClaim, error)
	CreateUser(user *model.User, credentials *model.Credentials) error
}

// UserStore is the default database backed implementation of UserStoreInterface.
type UserStore struct {
	DBProvider provider.DBProviderInterface
}

// NewUserStore creates a new instance of UserStore.
func NewUserStore() UserStoreInterface {
	return &UserStore{
		DBProvider: provider.GetDBProvider(),
	}
}

// GetUserByID retrieves a user by their unique identifier.
func (s *UserStore) GetUserByID(userID string) (*model.User, error) {
	return s.queryUser(QueryGetUserByID, userID)
}

// GetUserByEmail retrieves a user by email. Lookup is case-insensitive.
func (s *UserStore) GetUserByEmail(email string) (*model.User, error) {
	return s.queryUser(QueryGetUserByEmail, email)
}

// GetUserByUsername retrieves a user by username. Lookup is case-insensitive.
func (s *UserStore) GetUserByUsername(username string) (*model.User, error) {
	return s.queryUser(QueryGetUserByUsername, username)
}

// GetUserCredentials retrieves the stored credentials for the given user.
func (s *UserStore) GetUserCredentials(userID string) (*model.Credentials, error) {
	dbClient, err := s.DBProvider.GetDBClient("identity")
	if err != nil {
		return nil, err
	}

	results, err := dbClient.Query(QueryGetUserCredentials, userID)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return &model.Credentials{}, nil
	}

	row := results[0]
	return &model.Credentials{
		CredentialType: getString(row, "credential_type"),
		StorageAlgo:    getString(row, "storage_algo"),
		Value:          getString(row, "credential_value"),
		Salt:           getString(row, "salt"),
	}, nil
}

// UpdateUser persists the mutable fields of the given user record.
func (s *UserStore) UpdateUser(user *model.User) error {
	dbClient, err := s.DBProvider.GetDBClient("identity")
	if err != nil {
		return err
	}

	var lockoutUntil interface{}
	if user.LockoutUntil != nil {
		lockoutUntil = user.LockoutUntil.UTC().Format(time.RFC3339)
	}

	_, err = dbClient.Execute(QueryUpdateUser, user.ID, user.Username, user.Email, user.EmailConfirmed,
		user.Disabled, user.LockoutEnabled, user.FailedAttempts, lockoutUntil, user.Role,
		user.SecurityStamp, user.FirstName, user.LastName)
	return err
}

// GetRoleClaims retrieves the claims attached to the given role.
func (s *UserStore) GetRoleClaims(roleName string) ([]model.RoleClaim, error) {
	dbClient, err := s.DBProvider.GetDBClient("identity")
	if err != nil {
		return nil, err
	}

	results, err := dbClient.Query(QueryGetRoleClaims, roleName)
	if err != nil {
		return nil, err
	}

	claims := make([]model.RoleClaim, 0, len(results))
	for _, row := range results {
		claims = append(claims, model.RoleClaim{
			ClaimType:  getString(row, "claim_type"),
			ClaimValue: getString(row, "claim_value"),
		})
	}
	return claims, nil
}

// CreateUser inserts a new user record together with its credentials.
func (s *UserStore) CreateUser(user *model.User, credentials *model.Credentials) error {
	dbClient, err := s.DBProvider.GetDBClient("identity")
	if err != nil {
		return err
	}

	tx, err := dbClient.BeginTx()
	if err != nil {
		return err
	}

	var lockoutUntil interface{}
	if user.LockoutUntil != nil {
		lockoutUntil = user.LockoutUntil.UTC().Format(time.RFC3339)
	}

	if _, err := tx.Exec(QueryCreateUser.Query, user.ID, user.Username, user.Email, user.EmailConfirmed,
		user.Disabled, user.LockoutEnabled, user.FailedAttempts, lockoutUntil, user.Role,
		user.SecurityStamp, user.FirstName, user.LastName); err != nil {
		_ = tx.Rollback()
		return err
	}

	if _, err := tx.Exec(QueryCreateUserCredentials.Query, user.ID, credentials.CredentialType,
		credentials.StorageAlgo, credentials.Value, credentials.Salt); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// queryUser runs a single-user query and maps the first row to a user model.
func (s *UserStore) queryUser(query dbmodel.DBQuery, arg interface{}) (*model.User, error) {
	dbClient, err := s.DBProvider.GetDBClient("identity")
	if err != nil {
		return nil, err
	}

	results, err := dbClient.Query(query, arg)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, model.ErrUserNotFound
	}

	return buildUserFromResultRow(results[0]), nil
}
