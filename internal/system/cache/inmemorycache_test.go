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

package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type InMemoryCacheTestSuite struct {
	suite.Suite
}

func TestInMemoryCacheSuite(t *testing.T) {
	suite.Run(t, new(InMemoryCacheTestSuite))
}

func (suite *InMemoryCacheTestSuite) TestSetAndGet() {
	t := suite.T()
	c := newInMemoryCache[string]("testCache", true, 10, time.Minute)

	err := c.Set(CacheKey{Key: "key1"}, "value1")
	assert.NoError(t, err)

	value, found := c.Get(CacheKey{Key: "key1"})
	assert.True(t, found)
	assert.Equal(t, "value1", value)
}

func (suite *InMemoryCacheTestSuite) TestGetMissingKey() {
	t := suite.T()
	c := newInMemoryCache[string]("testCache", true, 10, time.Minute)

	value, found := c.Get(CacheKey{Key: "missing"})
	assert.False(t, found)
	assert.Empty(t, value)
}

func (suite *InMemoryCacheTestSuite) TestSetOverwritesExistingEntry() {
	t := suite.T()
	c := newInMemoryCache[string]("testCache", true, 10, time.Minute)

	assert.NoError(t, c.Set(CacheKey{Key: "key1"}, "value1"))
	assert.NoError(t, c.Set(CacheKey{Key: "key1"}, "value2"))

	value, found := c.Get(CacheKey{Key: "key1"})
	assert.True(t, found)
	assert.Equal(t, "value2", value)
	assert.Equal(t, 1, c.GetStats().Size)
}

func (suite *InMemoryCacheTestSuite) TestDelete() {
	t := suite.T()
	c := newInMemoryCache[string]("testCache", true, 10, time.Minute)

	assert.NoError(t, c.Set(CacheKey{Key: "key1"}, "value1"))
	assert.NoError(t, c.Delete(CacheKey{Key: "key1"}))

	_, found := c.Get(CacheKey{Key: "key1"})
	assert.False(t, found)
}

func (suite *InMemoryCacheTestSuite) TestClear() {
	t := suite.T()
	c := newInMemoryCache[string]("testCache", true, 10, time.Minute)

	for i := 0; i < 5; i++ {
		assert.NoError(t, c.Set(CacheKey{Key: fmt.Sprintf("key%d", i)}, "value"))
	}
	assert.NoError(t, c.Clear())
	assert.Equal(t, 0, c.GetStats().Size)
}

func (suite *InMemoryCacheTestSuite) TestExpiredEntryIsMissed() {
	t := suite.T()
	c := newInMemoryCache[string]("testCache", true, 10, time.Millisecond)

	assert.NoError(t, c.Set(CacheKey{Key: "key1"}, "value1"))
	time.Sleep(5 * time.Millisecond)

	_, found := c.Get(CacheKey{Key: "key1"})
	assert.False(t, found)
}

func (suite *InMemoryCacheTestSuite) TestLRUEviction() {
	t := suite.T()
	c := newInMemoryCache[string]("testCache", true, 2, time.Minute)

	assert.NoError(t, c.Set(CacheKey{Key: "key1"}, "value1"))
	assert.NoError(t, c.Set(CacheKey{Key: "key2"}, "value2"))

	// Touch key1 so key2 becomes the eviction candidate.
	_, found := c.Get(CacheKey{Key: "key1"})
	assert.True(t, found)

	assert.NoError(t, c.Set(CacheKey{Key: "key3"}, "value3"))

	_, found = c.Get(CacheKey{Key: "key2"})
	assert.False(t, found)
	_, found = c.Get(CacheKey{Key: "key1"})
	assert.True(t, found)
	_, found = c.Get(CacheKey{Key: "key3"})
	assert.True(t, found)
}

func (suite *InMemoryCacheTestSuite) TestDisabledCacheIsNoOp() {
	t := suite.T()
	c := newInMemoryCache[string]("testCache", false, 10, time.Minute)

	assert.NoError(t, c.Set(CacheKey{Key: "key1"}, "value1"))
	_, found := c.Get(CacheKey{Key: "key1"})
	assert.False(t, found)
}

func (suite *InMemoryCacheTestSuite) TestCleanupExpired() {
	t := suite.T()
	c := newInMemoryCache[string]("testCache", true, 10, time.Millisecond)

	assert.NoError(t, c.Set(CacheKey{Key: "key1"}, "value1"))
	time.Sleep(5 * time.Millisecond)
	c.CleanupExpired()

	assert.Equal(t, 0, c.GetStats().Size)
}
