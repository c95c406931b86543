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

// Package service provides the user service for identity store operations.
package service

import (
	"errors"
	"sync"
	"time"

	oauth2const "github.com/asgardeo/spark/internal/oauth/oauth2/constants"
	oauth2model "github.com/asgardeo/spark/internal/oauth/oauth2/model"
	"github.com/asgardeo/spark/internal/system/config"
	"github.com/asgardeo/spark/internal/system/crypto/hash"
	"github.com/asgardeo/spark/internal/system/error/serviceerror"
	"github.com/asgardeo/spark/internal/system/log"
	"github.com/asgardeo/spark/internal/user/constants"
	"github.com/asgardeo/spark/internal/user/model"
	"github.com/asgardeo/spark/internal/user/store"
)

const loggerComponentName = "UserService"

const (
	defaultMaxFailedAttempts = 5
	defaultLockoutDuration   = 900 // seconds
)

// UserServiceInterface defines the identity store operations consumed by the grant dispatcher
// and the principal enrichment pipeline.
type UserServiceInterface interface {
	GetUser(userID string) (*model.User, *serviceerror.ServiceError)
	FindByEmail(email string) (*model.User, *serviceerror.ServiceError)
	FindByUsername(username string) (*model.User, *serviceerror.ServiceError)
	VerifyPassword(user *model.User, password string, lockoutOnFailure bool) (bool, *serviceerror.ServiceError)
	SupportsLockout() bool
	ResetFailedAttempts(user *model.User) *serviceerror.ServiceError
	CanSignIn(user *model.User) (bool, *serviceerror.ServiceError)
	Update(user *model.User) *serviceerror.ServiceError
	GetClaims(user *model.User) ([]oauth2model.Claim, *serviceerror.ServiceError)
}

// UserService is the default implementation of UserServiceInterface.
type UserService struct {
	userStore store.UserStoreInterface
}

var (
	instance UserServiceInterface
	once     sync.Once
)

// GetUserService returns the singleton instance of the user service.
func GetUserService() UserServiceInterface {
	once.Do(func() {
		instance = NewUserService(nil)
	})
	return instance
}

// NewUserService creates a new instance of the user service.
func NewUserService(userStore store.UserStoreInterface) UserServiceInterface {
	if userStore == nil {
		userStore = store.NewUserStore()
	}
	return &UserService{
		userStore: userStore,
	}
}

// GetUser retrieves a user by their unique identifier.
func (us *UserService) GetUser(userID string) (*model.User, *serviceerror.ServiceError) {
	user, err := us.userStore.GetUserByID(userID)
	return us.handleLookupResult(user, err)
}

// FindByEmail retrieves a user by email. Lookup is case-insensitive per the store's normalization.
func (us *UserService) FindByEmail(email string) (*model.User, *serviceerror.ServiceError) {
	user, err := us.userStore.GetUserByEmail(email)
	return us.handleLookupResult(user, err)
}

// FindByUsername retrieves a user by username. Lookup is case-insensitive per the store's normalization.
func (us *UserService) FindByUsername(username string) (*model.User, *serviceerror.ServiceError) {
	user, err := us.userStore.GetUserByUsername(username)
	return us.handleLookupResult(user, err)
}

// VerifyPassword validates the given password against the user's stored credentials.
// When lockoutOnFailure is set, a failed attempt increments the failed-access counter
// and locks the account out once the configured threshold is reached.
func (us *UserService) VerifyPassword(user *model.User, password string, lockoutOnFailure bool) (
	bool, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	if user.IsLockedOut(time.Now()) {
		logger.Debug("Rejecting password verification for locked out user",
			log.String("userID", user.ID))
		return false, nil
	}

	credentials, err := us.userStore.GetUserCredentials(user.ID)
	if err != nil {
		logger.Error("Failed to retrieve user credentials", log.Error(err))
		return false, &constants.ErrorInternalServerError
	}
	if credentials.Value == "" || credentials.Salt == "" {
		return false, &constants.ErrorMissingCredentials
	}

	valid, hashErr := hash.Verify(password, credentials.Salt, credentials.Value)
	if hashErr != nil {
		logger.Error("Failed to hash the presented credential", log.Error(hashErr))
		return false, &constants.ErrorInternalServerError
	}

	if !valid {
		if lockoutOnFailure && us.SupportsLockout() && user.LockoutEnabled {
			us.recordFailedAttempt(user, logger)
		}
		return false, nil
	}

	if user.FailedAttempts != 0 || user.LockoutUntil != nil {
		user.FailedAttempts = 0
		user.LockoutUntil = nil
		if updateErr := us.userStore.UpdateUser(user); updateErr != nil {
			logger.Error("Failed to reset lockout state after successful verification",
				log.Error(updateErr))
		}
	}
	return true, nil
}

// SupportsLockout reports whether the identity store tracks failed access attempts.
func (us *UserService) SupportsLockout() bool {
	return true
}

// ResetFailedAttempts clears the failed-access counter for the given user.
func (us *UserService) ResetFailedAttempts(user *model.User) *serviceerror.ServiceError {
	if user.FailedAttempts == 0 {
		return nil
	}

	user.FailedAttempts = 0
	if err := us.userStore.UpdateUser(user); err != nil {
		log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName)).
			Error("Failed to reset failed access count", log.Error(err))
		return &constants.ErrorInternalServerError
	}
	return nil
}

// CanSignIn checks whether account policy currently allows the user to sign in.
func (us *UserService) CanSignIn(user *model.User) (bool, *serviceerror.ServiceError) {
	if user.Disabled {
		return false, nil
	}
	if user.IsLockedOut(time.Now()) {
		return false, nil
	}

	userStoreConfig := config.GetSparkRuntime().Config.UserStore
	if userStoreConfig.RequireConfirmedMail && !user.EmailConfirmed {
		return false, nil
	}
	return true, nil
}

// Update persists any pending changes on the given user record.
func (us *UserService) Update(user *model.User) *serviceerror.ServiceError {
	if err := us.userStore.UpdateUser(user); err != nil {
		log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName)).
			Error("Failed to update user record", log.Error(err))
		return &constants.ErrorInternalServerError
	}
	return nil
}

// GetClaims materializes the persisted claims of the given user, including the
// permission claims inherited from the user's role.
func (us *UserService) GetClaims(user *model.User) ([]oauth2model.Claim, *serviceerror.ServiceError) {
	claims := []oauth2model.Claim{
		{Type: oauth2const.ClaimTypeName, Value: user.Username},
	}
	if user.Email != "" {
		claims = append(claims, oauth2model.Claim{Type: oauth2const.ClaimTypeEmail, Value: user.Email})
	}
	if user.Role != "" {
		claims = append(claims, oauth2model.Claim{Type: oauth2const.ClaimTypeRole, Value: user.Role})

		roleClaims, err := us.userStore.GetRoleClaims(user.Role)
		if err != nil {
			log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName)).
				Error("Failed to retrieve role claims", log.Error(err))
			return nil, &constants.ErrorInternalServerError
		}
		for _, roleClaim := range roleClaims {
			claims = append(claims, oauth2model.Claim{Type: roleClaim.ClaimType, Value: roleClaim.ClaimValue})
		}
	}
	if user.SecurityStamp != "" {
		claims = append(claims, oauth2model.Claim{
			Type:  oauth2const.ClaimTypeSecurityStamp,
			Value: user.SecurityStamp,
		})
	}
	return claims, nil
}

// recordFailedAttempt increments the failed-access counter and applies lockout at the threshold.
func (us *UserService) recordFailedAttempt(user *model.User, logger *log.Logger) {
	userStoreConfig := config.GetSparkRuntime().Config.UserStore

	maxFailedAttempts := userStoreConfig.MaxFailedAttempts
	if maxFailedAttempts <= 0 {
		maxFailedAttempts = defaultMaxFailedAttempts
	}
	lockoutDuration := userStoreConfig.LockoutDuration
	if lockoutDuration <= 0 {
		lockoutDuration = defaultLockoutDuration
	}

	user.FailedAttempts++
	if user.FailedAttempts >= maxFailedAttempts {
		lockoutUntil := time.Now().Add(time.Duration(lockoutDuration) * time.Second)
		user.LockoutUntil = &lockoutUntil
		logger.Info("Locking out user after repeated failed attempts",
			log.String("userID", user.ID), log.Int("failedAttempts", user.FailedAttempts))
	}

	if err := us.userStore.UpdateUser(user); err != nil {
		logger.Error("Failed to persist failed access count", log.Error(err))
	}
}

// handleLookupResult maps store lookup results to service results.
func (us *UserService) handleLookupResult(user *model.User, err error) (
	*model.User, *serviceerror.ServiceError) {
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, &constants.ErrorUserNotFound
		}
		log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName)).
			Error("Error occurred while retrieving the user", log.Error(err))
		return nil, &constants.ErrorInternalServerError
	}
	return user, nil
}
