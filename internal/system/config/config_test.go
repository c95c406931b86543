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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

const testConfigYAML = `
server:
  hostname: "localhost"
  port: 8090
database:
  identity:
    type: "sqlite"
    path: "repository/database/identity.db"
user_store:
  default_user:
    username: "admin"
    email: "admin@example.com"
    password: "admin-password"
  require_confirmed_email: true
  max_failed_attempts: 5
  lockout_duration: 900
oauth:
  public_url: "https://localhost:8090"
  issuer: "https://localhost:8090"
  signing_key: "test-signing-key"
  access_token:
    validity_period: 3600
  refresh_token:
    validity_period: 86400
  clients:
    - client_id: "web_client"
      redirect_uris:
        - "/signin-callback"
      access_token_lifetime: 7200
cache:
  size: 100
  ttl: 300
`

type ConfigTestSuite struct {
	suite.Suite
	configPath string
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (suite *ConfigTestSuite) SetupTest() {
	dir := suite.T().TempDir()
	suite.configPath = filepath.Join(dir, "deployment.yaml")
	err := os.WriteFile(suite.configPath, []byte(testConfigYAML), 0600)
	assert.NoError(suite.T(), err)
}

func (suite *ConfigTestSuite) TestLoadConfig() {
	t := suite.T()

	cfg, err := LoadConfig(suite.configPath)
	assert.NoError(t, err)
	assert.NotNil(t, cfg)

	assert.Equal(t, "localhost", cfg.Server.Hostname)
	assert.Equal(t, 8090, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Identity.Type)
	assert.Equal(t, "admin", cfg.UserStore.DefaultUser.Username)
	assert.True(t, cfg.UserStore.RequireConfirmedMail)
	assert.Equal(t, 5, cfg.UserStore.MaxFailedAttempts)
	assert.Equal(t, int64(3600), cfg.OAuth.AccessToken.ValidityPeriod)
	assert.Equal(t, 100, cfg.Cache.Size)

	assert.Len(t, cfg.OAuth.Clients, 1)
	client := cfg.OAuth.Clients[0]
	assert.Equal(t, "web_client", client.ClientID)
	assert.NotNil(t, client.AccessTokenLifetime)
	assert.Equal(t, int64(7200), *client.AccessTokenLifetime)
	assert.Nil(t, client.RefreshTokenLifetime)
}

func (suite *ConfigTestSuite) TestLoadConfigAppliesEnvOverrides() {
	t := suite.T()

	t.Setenv("SPARK_DEFAULT_USER_PASSWORD", "override-password")
	t.Setenv("SPARK_PUBLIC_URL", "https://auth.example.com")
	t.Setenv("SPARK_TOKEN_SIGNING_KEY", "override-key")

	cfg, err := LoadConfig(suite.configPath)
	assert.NoError(t, err)

	assert.Equal(t, "override-password", cfg.UserStore.DefaultUser.Password)
	assert.Equal(t, "https://auth.example.com", cfg.OAuth.PublicURL)
	assert.Equal(t, "override-key", cfg.OAuth.SigningKey)
}

func (suite *ConfigTestSuite) TestLoadConfigMissingFile() {
	cfg, err := LoadConfig(filepath.Join(suite.T().TempDir(), "missing.yaml"))
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), cfg)
}

func (suite *ConfigTestSuite) TestRuntimeInitializationAndReset() {
	t := suite.T()

	ResetSparkRuntime()
	defer ResetSparkRuntime()

	cfg, err := LoadConfig(suite.configPath)
	assert.NoError(t, err)

	err = InitializeSparkRuntime("/tmp/spark", cfg)
	assert.NoError(t, err)

	runtime := GetSparkRuntime()
	assert.Equal(t, "/tmp/spark", runtime.SparkHome)
	assert.Equal(t, 8090, runtime.Config.Server.Port)
}
