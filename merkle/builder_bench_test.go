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
package merkle

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bbva/hashtree/log"
	"github.com/bbva/hashtree/merkle/cache"
)

func benchmarkAdd(b *testing.B, opts Options) {
	opts.Logger = log.New(&log.LoggerOptions{Level: log.LevelOff})
	builder, err := NewBuilder(opts)
	require.NoError(b, err)

	value := make([]byte, 8)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		binary.BigEndian.PutUint64(value, uint64(i))
		_, err := builder.Add(value)
		require.NoError(b, err)
	}
}

func BenchmarkAddIncremental(b *testing.B) {
	benchmarkAdd(b, Options{Strategy: Incremental})
}

func BenchmarkAddRebuildFastCache(b *testing.B) {
	benchmarkAdd(b, Options{Strategy: Rebuild, Cache: cache.Fast, CacheSize: 512 * 1024 * 1024})
}

func benchmarkBuildOnce(b *testing.B, opts Options, size int) {
	opts.Logger = log.New(&log.LoggerOptions{Level: log.LevelOff})
	leaves := make([][]byte, size)
	for i := range leaves {
		leaves[i] = make([]byte, 8)
		binary.BigEndian.PutUint64(leaves[i], uint64(i))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		builder, err := NewBuilder(opts)
		require.NoError(b, err)
		for _, l := range leaves {
			builder.Append(l)
		}
		_, err = builder.BuildTree()
		require.NoError(b, err)
	}
}

func BenchmarkBuildOnceSequential(b *testing.B) {
	benchmarkBuildOnce(b, Options{Strategy: Rebuild, ParallelThreshold: 1 << 30}, 1<<16)
}

func BenchmarkBuildOnceParallel(b *testing.B) {
	benchmarkBuildOnce(b, Options{Strategy: Rebuild, ParallelThreshold: 1}, 1<<16)
}
