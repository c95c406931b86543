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

// Package provision bootstraps the environment seed data at server startup: the
// built-in administrator role with its permission claims, and the default admin
// user. Every step is idempotent so repeated startups leave existing data intact.
package provision

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	appprovider "github.com/asgardeo/spark/internal/application/provider"
	"github.com/asgardeo/spark/internal/authz/permission"
	"github.com/asgardeo/spark/internal/system/config"
	"github.com/asgardeo/spark/internal/system/crypto/hash"
	"github.com/asgardeo/spark/internal/system/database/provider"
	"github.com/asgardeo/spark/internal/system/log"
	usermodel "github.com/asgardeo/spark/internal/user/model"
	userstore "github.com/asgardeo/spark/internal/user/store"
)

const loggerComponentName = "Provisioner"

const (
	credentialTypePassword  = "password"
	storageAlgoSHA256Salted = "sha256_salted"
)

// Provisioner performs the one-time environment bootstrap. It runs outside the
// grant dispatcher and touches the stores directly.
type Provisioner struct {
	dbProvider  provider.DBProviderInterface
	userStore   userstore.UserStoreInterface
	appProvider appprovider.ApplicationProviderInterface
}

// NewProvisioner creates a provisioner over the default stores.
func NewProvisioner() *Provisioner {
	return &Provisioner{
		dbProvider:  provider.GetDBProvider(),
		userStore:   userstore.NewUserStore(),
		appProvider: appprovider.GetApplicationProvider(),
	}
}

// Run executes the bootstrap sequence.
func (p *Provisioner) Run() error {
	if err := p.ensureSysAdminRole(); err != nil {
		return fmt.Errorf("failed to provision the administrator role: %w", err)
	}
	if err := p.ensureDefaultUser(); err != nil {
		return fmt.Errorf("failed to provision the default user: %w", err)
	}
	p.logRegisteredClients()
	return nil
}

// ensureSysAdminRole creates the built-in administrator role and attaches every
// registered administrator permission to it.
func (p *Provisioner) ensureSysAdminRole() error {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	dbClient, err := p.dbProvider.GetDBClient("identity")
	if err != nil {
		return err
	}

	results, err := dbClient.Query(QueryGetRole, permission.SysAdminRoleName)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		if _, err := dbClient.Execute(QueryCreateRole, permission.SysAdminRoleID,
			permission.SysAdminRoleName); err != nil {
			return err
		}
		logger.Info("Created the built-in administrator role",
			log.String("roleName", permission.SysAdminRoleName))
	}

	for _, perm := range permission.ByCategory(permission.CategorySysAdmin) {
		claims, err := dbClient.Query(QueryGetRoleClaim, permission.SysAdminRoleName, perm.Name)
		if err != nil {
			return err
		}
		if len(claims) > 0 {
			continue
		}
		if _, err := dbClient.Execute(QueryCreateRoleClaim, permission.SysAdminRoleName,
			perm.Name, perm.IDString()); err != nil {
			return err
		}
		logger.Info("Attached permission to the administrator role",
			log.String("permission", perm.Name))
	}
	return nil
}

// ensureDefaultUser creates the default admin user from configuration when no
// user with the configured username exists.
func (p *Provisioner) ensureDefaultUser() error {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	defaultUser := config.GetSparkRuntime().Config.UserStore.DefaultUser
	if defaultUser.Username == "" || defaultUser.Password == "" {
		logger.Warn("Default user provisioning skipped, username or password not configured")
		return nil
	}

	if _, err := p.userStore.GetUserByUsername(defaultUser.Username); err == nil {
		return nil
	} else if !errors.Is(err, usermodel.ErrUserNotFound) {
		return err
	}

	salt, err := hash.GenerateSalt()
	if err != nil {
		return err
	}
	hashedPassword, err := hash.HashStringWithSalt(defaultUser.Password, salt)
	if err != nil {
		return err
	}

	user := &usermodel.User{
		ID:             uuid.New().String(),
		Username:       defaultUser.Username,
		Email:          defaultUser.Email,
		EmailConfirmed: true,
		LockoutEnabled: true,
		Role:           permission.SysAdminRoleName,
		SecurityStamp:  uuid.New().String(),
	}
	credentials := &usermodel.Credentials{
		CredentialType: credentialTypePassword,
		StorageAlgo:    storageAlgoSHA256Salted,
		Value:          hashedPassword,
		Salt:           salt,
	}

	if err := p.userStore.CreateUser(user, credentials); err != nil {
		return err
	}
	logger.Info("Created the default admin user", log.String("username", defaultUser.Username))
	return nil
}

// logRegisteredClients records the client configurations materialized at startup.
// Clients live in static configuration, so registration is resolution.
func (p *Provisioner) logRegisteredClients() {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))
	for _, client := range p.appProvider.ResolveAll() {
		logger.Info("Registered OAuth client",
			log.String("clientID", client.ClientID),
			log.String("clientType", client.ClientType),
			log.Int("redirectURIs", len(client.RedirectURIs)))
	}
}
