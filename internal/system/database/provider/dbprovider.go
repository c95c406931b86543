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

// Package provider provides functionality for managing database connections and clients.
package provider

import (
	"database/sql"
	"fmt"
	"path"
	"sync"

	"github.com/asgardeo/spark/internal/system/config"
	"github.com/asgardeo/spark/internal/system/database/client"
	"github.com/asgardeo/spark/internal/system/log"
)

const (
	dataSourceTypePostgres = "postgres"
	dataSourceTypeSQLite   = "sqlite"
)

// DBProviderInterface defines the interface for getting database clients.
type DBProviderInterface interface {
	GetDBClient(dbName string) (client.DBClientInterface, error)
}

// DBProvider is the implementation of DBProviderInterface.
type DBProvider struct {
	identityClient client.DBClientInterface
	identityMutex  sync.Mutex
}

var (
	instance *DBProvider
	once     sync.Once
)

// GetDBProvider returns the singleton instance of DBProvider.
func GetDBProvider() DBProviderInterface {
	once.Do(func() {
		instance = &DBProvider{}
	})
	return instance
}

// GetDBClient returns a database client based on the provided database name.
// Not required to close the returned client manually since it manages its own connection pool.
func (d *DBProvider) GetDBClient(dbName string) (client.DBClientInterface, error) {
	switch dbName {
	case "identity":
		d.identityMutex.Lock()
		defer d.identityMutex.Unlock()

		if d.identityClient != nil {
			return d.identityClient, nil
		}

		identityDBConfig := config.GetSparkRuntime().Config.Database.Identity
		dbClient, err := newDBClient(identityDBConfig)
		if err != nil {
			return nil, err
		}
		d.identityClient = dbClient
		return d.identityClient, nil
	default:
		return nil, fmt.Errorf("unsupported database name: %s", dbName)
	}
}

// newDBClient opens a database connection for the given data source configuration.
func newDBClient(dataSource config.DataSource) (client.DBClientInterface, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "DBProvider"))

	var driverName, dsn string
	switch dataSource.Type {
	case dataSourceTypePostgres:
		driverName = "postgres"
		dsn = fmt.Sprintf("host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
			dataSource.Hostname, dataSource.Port, dataSource.Name, dataSource.Username,
			dataSource.Password, dataSource.SSLMode)
	case dataSourceTypeSQLite:
		driverName = "sqlite"
		dsn = path.Join(config.GetSparkRuntime().SparkHome, dataSource.Path)
		if dataSource.Options != "" {
			dsn += "?" + dataSource.Options
		}
	default:
		return nil, fmt.Errorf("unsupported database type: %s", dataSource.Type)
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		logger.Error("Failed to open database connection", log.Error(err))
		return nil, err
	}

	return client.NewDBClient(db, dataSource.Type), nil
}
