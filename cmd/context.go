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
package cmd

import (
	"github.com/bbva/hashtree/log"
	"github.com/bbva/hashtree/merkle"
)

// builderConfig holds the flags that configure a tree builder.
type builderConfig struct {
	Hasher            string `desc:"Digest function: sha256, sha512_256, blake2b or sha3-256"`
	Strategy          string `desc:"Build strategy: incremental or rebuild"`
	Cache             string `desc:"Digest cache of the rebuild strategy: none, simple, freecache or fastcache"`
	CacheSize         int    `flag:"cache-size" desc:"Digest cache size in bytes"`
	ParallelThreshold int    `flag:"parallel-threshold" desc:"Minimum number of leaves to digest in parallel"`
}

func defaultBuilderConfig() *builderConfig {
	opts := merkle.DefaultOptions()
	return &builderConfig{
		Hasher:            opts.Hasher,
		Strategy:          opts.Strategy,
		Cache:             opts.Cache,
		CacheSize:         opts.CacheSize,
		ParallelThreshold: opts.ParallelThreshold,
	}
}

func (c *builderConfig) options() merkle.Options {
	return merkle.Options{
		Hasher:            c.Hasher,
		Strategy:          c.Strategy,
		Cache:             c.Cache,
		CacheSize:         c.CacheSize,
		ParallelThreshold: c.ParallelThreshold,
		Logger:            log.Default().Named("merkle"),
	}
}

func markStringRequired(value, name string) {
	if value == "" {
		log.Fatalf("Argument `%s` is required", name)
	}
}
