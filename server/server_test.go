/*
   Copyright 2018-2019 Banco Bilbao Vizcaya Argentaria, S.A.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/
package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/bbva/hashtree/crypto/hashing"
	"github.com/bbva/hashtree/merkle"
	"github.com/bbva/hashtree/merkle/cache"
)

func testConfig() *Config {
	conf := DefaultConfig()
	conf.HTTPAddr = "127.0.0.1:0"
	conf.MetricsAddr = "127.0.0.1:0"
	return conf
}

func TestNewServerErrors(t *testing.T) {

	testCases := []struct {
		setup       func(*Config)
		expectedErr error
	}{
		{func(c *Config) {}, nil},
		{func(c *Config) { c.Hasher = "md5" }, hashing.ErrDigestUnavailable},
		{func(c *Config) { c.Strategy = "magic" }, merkle.ErrUnknownStrategy},
		{func(c *Config) { c.Strategy = merkle.Rebuild; c.Cache = "memcached" }, cache.ErrUnknownCache},
		{func(c *Config) { c.Strategy = merkle.Rebuild; c.Cache = cache.Free }, nil},
	}

	for i, c := range testCases {
		conf := testConfig()
		c.setup(conf)
		_, err := NewServer(conf)
		require.Equalf(t, c.expectedErr, errors.Cause(err), "Unexpected error in test case %d", i)
	}
}

func TestServerRoutes(t *testing.T) {
	conf := testConfig()
	conf.APIKey = "secret"
	srv, err := NewServer(conf)
	require.NoError(t, err)

	api := httptest.NewServer(srv.httpServer.Handler)
	defer api.Close()

	req, _ := http.NewRequest("POST", api.URL+"/leaves", strings.NewReader(`{"value":"A"}`))
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req, _ = http.NewRequest("POST", api.URL+"/leaves", strings.NewReader(`{"value":"A"}`))
	req.Header.Set("Api-Key", "secret")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, uint64(1), srv.Builder().LeafCount())

	req, _ = http.NewRequest("GET", api.URL+"/info", nil)
	req.Header.Set("Api-Key", "secret")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	info := make(map[string]interface{})
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&info))
	require.Equal(t, "sha256", info["Hasher"])
	require.Equal(t, float64(1), info["Leaves"])
	require.NotContains(t, info, "APIKey")
	require.Contains(t, info, "Build")
}

func TestStartStop(t *testing.T) {
	srv, err := NewServer(testConfig())
	require.NoError(t, err)
	require.NoError(t, srv.Start())
	require.NoError(t, srv.Stop())
}
