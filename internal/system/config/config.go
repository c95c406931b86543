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

// Package config provides structures and functions for loading and managing server configurations.
package config

import (
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	yaml "gopkg.in/yaml.v3"

	"github.com/asgardeo/spark/internal/system/log"
)

// ServerConfig holds the server configuration details.
type ServerConfig struct {
	Hostname string `yaml:"hostname"`
	Port     int    `yaml:"port"`
}

// DataSource holds the individual database connection details.
type DataSource struct {
	Type     string `yaml:"type"`
	Hostname string `yaml:"hostname"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	Path     string `yaml:"path"`
	Options  string `yaml:"options"`
}

// DatabaseConfig holds the different database configuration details.
type DatabaseConfig struct {
	Identity DataSource `yaml:"identity"`
}

// DefaultUser holds the default admin user configuration details.
type DefaultUser struct {
	Username string `yaml:"username"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

// UserStore holds the user store configuration details.
type UserStore struct {
	DefaultUser          DefaultUser `yaml:"default_user"`
	RequireConfirmedMail bool        `yaml:"require_confirmed_email"`
	MaxFailedAttempts    int         `yaml:"max_failed_attempts"`
	LockoutDuration      int64       `yaml:"lockout_duration"`
}

// TokenConfig holds the default lifetime configuration for a token type.
type TokenConfig struct {
	ValidityPeriod int64 `yaml:"validity_period"`
}

// ClientConfig holds the static configuration for a single OAuth client.
type ClientConfig struct {
	ClientID               string   `yaml:"client_id"`
	ClientSecret           string   `yaml:"client_secret"`
	ClientType             string   `yaml:"client_type"`
	RedirectURIs           []string `yaml:"redirect_uris"`
	PostLogoutRedirectURIs []string `yaml:"post_logout_redirect_uris"`
	Permissions            []string `yaml:"permissions"`
	AccessTokenLifetime    *int64   `yaml:"access_token_lifetime"`
	RefreshTokenLifetime   *int64   `yaml:"refresh_token_lifetime"`
}

// OAuthConfig holds the OAuth configuration details.
type OAuthConfig struct {
	// PublicURL is prepended to relative URIs in client redirect URI sets.
	PublicURL string `yaml:"public_url"`
	Issuer    string `yaml:"issuer"`
	// SigningKey verifies inbound grant artifacts. Token issuance happens in a
	// collaborating subsystem that shares this key.
	SigningKey   string         `yaml:"signing_key"`
	AccessToken  TokenConfig    `yaml:"access_token"`
	RefreshToken TokenConfig    `yaml:"refresh_token"`
	Clients      []ClientConfig `yaml:"clients"`
}

// CacheProperty holds the configuration details for an individual cache.
type CacheProperty struct {
	Name     string `yaml:"name"`
	Disabled bool   `yaml:"disabled"`
	Size     int    `yaml:"size"`
	TTL      int    `yaml:"ttl"`
}

// CacheConfig holds the cache configuration details.
type CacheConfig struct {
	Disabled   bool            `yaml:"disabled"`
	Type       string          `yaml:"type"`
	Size       int             `yaml:"size"`
	TTL        int             `yaml:"ttl"`
	Properties []CacheProperty `yaml:"properties"`
}

// Config holds the complete configuration details of the server.
type Config struct {
	Server    ServerConfig   `yaml:"server"`
	Database  DatabaseConfig `yaml:"database"`
	UserStore UserStore      `yaml:"user_store"`
	OAuth     OAuthConfig    `yaml:"oauth"`
	Cache     CacheConfig    `yaml:"cache"`
}

// envOverrides holds configuration values that may be overridden via environment variables.
type envOverrides struct {
	DBPassword          string `env:"SPARK_DB_PASSWORD"`
	DefaultUserPassword string `env:"SPARK_DEFAULT_USER_PASSWORD"`
	PublicURL           string `env:"SPARK_PUBLIC_URL"`
	SigningKey          string `env:"SPARK_TOKEN_SIGNING_KEY"`
}

// LoadConfig loads the configurations from the specified YAML file and applies
// any environment variable overrides.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	path = filepath.Clean(path)

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if ferr := file.Close(); ferr != nil {
			log.GetLogger().Error("Failed to close config file", log.Error(ferr))
		}
	}()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnvOverrides overlays environment variable values on top of the file configuration.
func applyEnvOverrides(cfg *Config) error {
	var overrides envOverrides
	if err := env.Parse(&overrides); err != nil {
		return err
	}

	if overrides.DBPassword != "" {
		cfg.Database.Identity.Password = overrides.DBPassword
	}
	if overrides.DefaultUserPassword != "" {
		cfg.UserStore.DefaultUser.Password = overrides.DefaultUserPassword
	}
	if overrides.PublicURL != "" {
		cfg.OAuth.PublicURL = overrides.PublicURL
	}
	if overrides.SigningKey != "" {
		cfg.OAuth.SigningKey = overrides.SigningKey
	}
	return nil
}
