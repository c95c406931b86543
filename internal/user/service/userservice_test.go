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

package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	oauth2const "github.com/asgardeo/spark/internal/oauth/oauth2/constants"
	"github.com/asgardeo/spark/internal/system/config"
	"github.com/asgardeo/spark/internal/system/crypto/hash"
	"github.com/asgardeo/spark/internal/user/constants"
	"github.com/asgardeo/spark/internal/user/model"
)

type fakeUserStore struct {
	users       map[string]*model.User
	credentials map[string]*model.Credentials
	roleClaims  map[string][]model.RoleClaim
	updateCalls int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		users:       map[string]*model.User{},
		credentials: map[string]*model.Credentials{},
		roleClaims:  map[string][]model.RoleClaim{},
	}
}

func (f *fakeUserStore) GetUserByID(userID string) (*model.User, error) {
	if user, ok := f.users[userID]; ok {
		return user, nil
	}
	return nil, model.ErrUserNotFound
}

func (f *fakeUserStore) GetUserByEmail(email string) (*model.User, error) {
	for _, user := range f.users {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (f *fakeUserStore) GetUserByUsername(username string) (*model.User, error) {
	for _, user := range f.users {
		if strings.EqualFold(user.Username, username) {
			return user, nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (f *fakeUserStore) GetUserCredentials(userID string) (*model.Credentials, error) {
	if credentials, ok := f.credentials[userID]; ok {
		return credentials, nil
	}
	return &model.Credentials{}, nil
}

func (f *fakeUserStore) UpdateUser(user *model.User) error {
	f.updateCalls++
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) GetRoleClaims(roleName string) ([]model.RoleClaim, error) {
	return f.roleClaims[roleName], nil
}

func (f *fakeUserStore) CreateUser(user *model.User, credentials *model.Credentials) error {
	f.users[user.ID] = user
	f.credentials[user.ID] = credentials
	return nil
}

type UserServiceTestSuite struct {
	suite.Suite
	store   *fakeUserStore
	service UserServiceInterface
	alice   *model.User
}

func TestUserServiceSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

func (suite *UserServiceTestSuite) SetupTest() {
	config.ResetSparkRuntime()
	err := config.InitializeSparkRuntime("/tmp", &config.Config{
		UserStore: config.UserStore{
			RequireConfirmedMail: true,
			MaxFailedAttempts:    5,
			LockoutDuration:      900,
		},
	})
	assert.NoError(suite.T(), err)

	suite.store = newFakeUserStore()
	suite.service = NewUserService(suite.store)

	salt, err := hash.GenerateSalt()
	assert.NoError(suite.T(), err)
	hashed, err := hash.HashStringWithSalt("secret123", salt)
	assert.NoError(suite.T(), err)

	suite.alice = &model.User{
		ID:             "user-1",
		Username:       "alice",
		Email:          "alice@x.com",
		EmailConfirmed: true,
		LockoutEnabled: true,
		Role:           "SYS_ADMIN",
		SecurityStamp:  "stamp-1",
	}
	suite.store.users["user-1"] = suite.alice
	suite.store.credentials["user-1"] = &model.Credentials{
		CredentialType: "password",
		StorageAlgo:    "sha256_salted",
		Value:          hashed,
		Salt:           salt,
	}
	suite.store.roleClaims["SYS_ADMIN"] = []model.RoleClaim{
		{ClaimType: "FULL_CONTROL", ClaimValue: "1001"},
	}
}

func (suite *UserServiceTestSuite) TearDownTest() {
	config.ResetSparkRuntime()
}

func (suite *UserServiceTestSuite) TestFindByEmailIsCaseInsensitive() {
	t := suite.T()

	user, svcErr := suite.service.FindByEmail("ALICE@X.COM")
	assert.Nil(t, svcErr)
	assert.Equal(t, "user-1", user.ID)
}

func (suite *UserServiceTestSuite) TestFindByUsernameMiss() {
	user, svcErr := suite.service.FindByUsername("nobody")
	assert.Nil(suite.T(), user)
	assert.Equal(suite.T(), constants.ErrorUserNotFound.Code, svcErr.Code)
}

func (suite *UserServiceTestSuite) TestVerifyPasswordSuccess() {
	t := suite.T()

	valid, svcErr := suite.service.VerifyPassword(suite.alice, "secret123", true)
	assert.Nil(t, svcErr)
	assert.True(t, valid)
}

func (suite *UserServiceTestSuite) TestVerifyPasswordFailureIncrementsCounter() {
	t := suite.T()

	valid, svcErr := suite.service.VerifyPassword(suite.alice, "wrong", true)
	assert.Nil(t, svcErr)
	assert.False(t, valid)
	assert.Equal(t, 1, suite.alice.FailedAttempts)
	assert.Nil(t, suite.alice.LockoutUntil)
}

func (suite *UserServiceTestSuite) TestRepeatedFailuresTriggerLockout() {
	t := suite.T()

	for i := 0; i < 5; i++ {
		valid, svcErr := suite.service.VerifyPassword(suite.alice, "wrong", true)
		assert.Nil(t, svcErr)
		assert.False(t, valid)
	}
	assert.NotNil(t, suite.alice.LockoutUntil)
	assert.True(t, suite.alice.LockoutUntil.After(time.Now()))

	// A 6th attempt with the correct password is still rejected.
	valid, svcErr := suite.service.VerifyPassword(suite.alice, "secret123", true)
	assert.Nil(t, svcErr)
	assert.False(t, valid)
}

func (suite *UserServiceTestSuite) TestVerifyPasswordWithoutLockoutOnFailure() {
	t := suite.T()

	valid, svcErr := suite.service.VerifyPassword(suite.alice, "wrong", false)
	assert.Nil(t, svcErr)
	assert.False(t, valid)
	assert.Equal(t, 0, suite.alice.FailedAttempts)
}

func (suite *UserServiceTestSuite) TestVerifyPasswordSuccessClearsFailureState() {
	t := suite.T()

	suite.alice.FailedAttempts = 3
	valid, svcErr := suite.service.VerifyPassword(suite.alice, "secret123", true)
	assert.Nil(t, svcErr)
	assert.True(t, valid)
	assert.Equal(t, 0, suite.alice.FailedAttempts)
}

func (suite *UserServiceTestSuite) TestVerifyPasswordMissingCredentials() {
	t := suite.T()

	delete(suite.store.credentials, "user-1")
	valid, svcErr := suite.service.VerifyPassword(suite.alice, "secret123", true)
	assert.False(t, valid)
	assert.NotNil(t, svcErr)
	assert.Equal(t, constants.ErrorMissingCredentials.Code, svcErr.Code)
}

func (suite *UserServiceTestSuite) TestResetFailedAttempts() {
	t := suite.T()

	suite.alice.FailedAttempts = 4
	svcErr := suite.service.ResetFailedAttempts(suite.alice)
	assert.Nil(t, svcErr)
	assert.Equal(t, 0, suite.alice.FailedAttempts)
	assert.Equal(t, 1, suite.store.updateCalls)

	// Already clean, no extra store round trip.
	svcErr = suite.service.ResetFailedAttempts(suite.alice)
	assert.Nil(t, svcErr)
	assert.Equal(t, 1, suite.store.updateCalls)
}

func (suite *UserServiceTestSuite) TestCanSignIn() {
	t := suite.T()

	allowed, svcErr := suite.service.CanSignIn(suite.alice)
	assert.Nil(t, svcErr)
	assert.True(t, allowed)
}

func (suite *UserServiceTestSuite) TestCanSignInRejectsDisabledUser() {
	t := suite.T()

	suite.alice.Disabled = true
	allowed, svcErr := suite.service.CanSignIn(suite.alice)
	assert.Nil(t, svcErr)
	assert.False(t, allowed)
}

func (suite *UserServiceTestSuite) TestCanSignInRejectsUnconfirmedEmail() {
	t := suite.T()

	suite.alice.EmailConfirmed = false
	allowed, svcErr := suite.service.CanSignIn(suite.alice)
	assert.Nil(t, svcErr)
	assert.False(t, allowed)
}

func (suite *UserServiceTestSuite) TestCanSignInRejectsLockedOutUser() {
	t := suite.T()

	lockoutUntil := time.Now().Add(time.Hour)
	suite.alice.LockoutUntil = &lockoutUntil
	allowed, svcErr := suite.service.CanSignIn(suite.alice)
	assert.Nil(t, svcErr)
	assert.False(t, allowed)
}

func (suite *UserServiceTestSuite) TestGetClaims() {
	t := suite.T()

	claims, svcErr := suite.service.GetClaims(suite.alice)
	assert.Nil(t, svcErr)

	types := make([]string, 0, len(claims))
	for _, claim := range claims {
		types = append(types, claim.Type)
	}
	assert.Equal(t, []string{
		oauth2const.ClaimTypeName,
		oauth2const.ClaimTypeEmail,
		oauth2const.ClaimTypeRole,
		"FULL_CONTROL",
		oauth2const.ClaimTypeSecurityStamp,
	}, types)
}

func (suite *UserServiceTestSuite) TestGetClaimsWithoutRole() {
	t := suite.T()

	suite.alice.Role = ""
	claims, svcErr := suite.service.GetClaims(suite.alice)
	assert.Nil(t, svcErr)

	for _, claim := range claims {
		assert.NotEqual(t, oauth2const.ClaimTypeRole, claim.Type)
		assert.NotEqual(t, "FULL_CONTROL", claim.Type)
	}
}
