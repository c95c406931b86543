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

// Package main is the entry point for starting the Spark server.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path"
	"time"

	"github.com/asgardeo/spark/internal/provision"
	"github.com/asgardeo/spark/internal/system/config"
	"github.com/asgardeo/spark/internal/system/log"
	"github.com/asgardeo/spark/internal/system/managers"
)

func main() {
	logger := log.GetLogger()

	sparkHome := getSparkHome(logger)

	cfg := initSparkConfigurations(logger, sparkHome)
	if cfg == nil {
		logger.Fatal("Failed to initialize configurations")
	}

	provisionSeedData(logger)

	mux := initMultiplexer(logger)
	if mux == nil {
		logger.Fatal("Failed to initialize multiplexer")
	}

	startHTTPServer(logger, cfg, mux)
}

// getSparkHome retrieves and returns the Spark home directory.
func getSparkHome(logger *log.Logger) string {
	projectHome := ""
	projectHomeFlag := flag.String("sparkHome", "", "Path to Spark home directory")
	flag.Parse()

	if *projectHomeFlag != "" {
		logger.Info("Using sparkHome from command line argument", log.String("sparkHome", *projectHomeFlag))
		projectHome = *projectHomeFlag
	} else {
		dir, dirErr := os.Getwd()
		if dirErr != nil {
			logger.Fatal("Failed to get current working directory", log.Error(dirErr))
		}
		projectHome = dir
	}

	return projectHome
}

// initSparkConfigurations loads the configurations and initializes the runtime.
func initSparkConfigurations(logger *log.Logger, sparkHome string) *config.Config {
	configFilePath := path.Join(sparkHome, "repository/conf/deployment.yaml")
	cfg, err := config.LoadConfig(configFilePath)
	if err != nil {
		logger.Fatal("Failed to load configurations", log.Error(err))
	}

	if err := config.InitializeSparkRuntime(sparkHome, cfg); err != nil {
		logger.Fatal("Failed to initialize spark runtime", log.Error(err))
	}

	return cfg
}

// provisionSeedData runs the one-time environment bootstrap.
func provisionSeedData(logger *log.Logger) {
	provisioner := provision.NewProvisioner()
	if err := provisioner.Run(); err != nil {
		logger.Fatal("Failed to provision seed data", log.Error(err))
	}
}

// initMultiplexer initializes the HTTP multiplexer and registers the services.
func initMultiplexer(logger *log.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	serviceManager := managers.NewServiceManager(mux)

	if err := serviceManager.RegisterServices(); err != nil {
		logger.Fatal("Failed to register the services", log.Error(err))
	}

	return mux
}

// startHTTPServer starts the HTTP server. TLS termination is expected to happen
// in front of the server.
func startHTTPServer(logger *log.Logger, cfg *config.Config, mux *http.ServeMux) {
	wrappedMux := log.AccessLogHandler(logger, mux)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Hostname, cfg.Server.Port)
	server := &http.Server{
		Addr:              serverAddr,
		Handler:           wrappedMux,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logger.Info("Spark server started...", log.String("address", serverAddr))

	if err := server.ListenAndServe(); err != nil {
		logger.Fatal("Failed to serve HTTP requests", log.Error(err))
	}
}
