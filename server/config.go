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
	"github.com/bbva/hashtree/crypto/hashing"
	"github.com/bbva/hashtree/merkle"
	"github.com/bbva/hashtree/merkle/cache"
)

type Config struct {
	// Log level
	Log string `flag:"-"`

	// API server bind address/port.
	HTTPAddr string `flag:"http-addr" desc:"Endpoint for REST requests on (host:port)"`

	// Metrics bind address/port.
	MetricsAddr string `flag:"metrics-addr" desc:"Endpoint for prometheus metrics (host:port)"`

	// Disable the metrics server.
	DisableMetrics bool `flag:"disable-metrics" desc:"Do not serve prometheus metrics"`

	// Digest function used to build the tree.
	Hasher string `desc:"Digest function: sha256, sha512_256, blake2b or sha3-256"`

	// Build strategy.
	Strategy string `desc:"Build strategy: incremental or rebuild"`

	// Digest cache of the rebuild strategy.
	Cache string `desc:"Digest cache of the rebuild strategy: none, simple, freecache or fastcache"`

	// Digest cache size in bytes.
	CacheSize int `flag:"cache-size" desc:"Digest cache size in bytes"`

	// Minimum number of leaves to digest in parallel.
	ParallelThreshold int `flag:"parallel-threshold" desc:"Minimum number of leaves to digest in parallel"`

	// Key clients must send in the Api-Key header. Empty disables the check.
	APIKey string `flag:"api-key" desc:"Key required in the Api-Key header, empty to disable" json:"-"`
}

func DefaultConfig() *Config {
	opts := merkle.DefaultOptions()
	return &Config{
		Log:               "info",
		HTTPAddr:          "127.0.0.1:8800",
		MetricsAddr:       "127.0.0.1:8600",
		DisableMetrics:    false,
		Hasher:            hashing.SHA256,
		Strategy:          merkle.Incremental,
		Cache:             cache.None,
		CacheSize:         opts.CacheSize,
		ParallelThreshold: opts.ParallelThreshold,
		APIKey:            "",
	}
}

// BuilderOptions returns the options of the tree builder.
func (c *Config) BuilderOptions() merkle.Options {
	return merkle.Options{
		Hasher:            c.Hasher,
		Strategy:          c.Strategy,
		Cache:             c.Cache,
		CacheSize:         c.CacheSize,
		ParallelThreshold: c.ParallelThreshold,
	}
}
