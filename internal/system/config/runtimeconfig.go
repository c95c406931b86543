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

import "sync"

// SparkRuntime holds the runtime configuration for the Spark server.
type SparkRuntime struct {
	SparkHome string `yaml:"spark_home"`
	Config    Config `yaml:"config"`
}

var (
	runtimeConfig *SparkRuntime
	once          sync.Once
)

// InitializeSparkRuntime initializes the SparkRuntime configuration.
func InitializeSparkRuntime(sparkHome string, config *Config) error {
	once.Do(func() {
		runtimeConfig = &SparkRuntime{
			SparkHome: sparkHome,
			Config:    *config,
		}
	})

	return nil
}

// GetSparkRuntime returns the SparkRuntime configuration.
func GetSparkRuntime() *SparkRuntime {
	if runtimeConfig == nil {
		panic("SparkRuntime is not initialized")
	}
	return runtimeConfig
}

// ResetSparkRuntime resets the SparkRuntime.
// This should only be used in tests to reset the singleton state.
func ResetSparkRuntime() {
	runtimeConfig = nil
	once = sync.Once{}
}
