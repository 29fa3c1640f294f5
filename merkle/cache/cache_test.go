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

package cache

import (
	"encoding/binary"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func key(index, height uint64) []byte {
	b := make([]byte, 16)
	binary.BigEndian.PutUint64(b, index)
	binary.BigEndian.PutUint64(b[8:], height)
	return b
}

func TestCaches(t *testing.T) {

	testCases := []struct {
		key    []byte
		value  []byte
		cached bool
	}{
		{key(0, 0), []byte{0x1}, true},
		{key(1, 0), []byte{0x2}, true},
		{key(0, 1), []byte{0x3}, true},
		{key(2, 0), []byte{0x4}, false},
	}

	caches := map[string]ModifiableCache{
		Simple: NewSimpleCache(0),
		Free:   NewFreeCache(1024 * 1024),
		Fast:   NewFastCache(32 * 1024 * 1024),
	}

	for name, cache := range caches {
		for i, c := range testCases {
			if c.cached {
				cache.Put(c.key, c.value)
			}

			cachedValue, ok := cache.Get(c.key)

			if c.cached {
				require.Truef(t, ok, "The key should exists in %s cache in test case %d", name, i)
				require.Equalf(t, c.value, cachedValue, "The cached value should be equal to stored value in %s cache in test case %d", name, i)
			} else {
				require.Falsef(t, ok, "The key should not exist in %s cache in test case %d", name, i)
			}
		}
		require.Equalf(t, 3, cache.Size(), "Wrong number of entries in %s cache", name)
	}
}

func TestPutOverwrites(t *testing.T) {
	cache := NewSimpleCache(0)
	cache.Put(key(0, 0), []byte{0x1})
	cache.Put(key(0, 0), []byte{0x2})

	value, ok := cache.Get(key(0, 0))
	require.True(t, ok)
	require.Equal(t, []byte{0x2}, value)
	require.Equal(t, 1, cache.Size())
}

func TestNew(t *testing.T) {

	testCases := []struct {
		kind        string
		expectedNil bool
		expectedErr error
	}{
		{None, true, nil},
		{"", true, nil},
		{Simple, false, nil},
		{"FreeCache", false, nil},
		{Fast, false, nil},
		{"redis", true, ErrUnknownCache},
	}

	for i, c := range testCases {
		cache, err := New(c.kind, 32*1024*1024)
		require.Equalf(t, c.expectedErr, errors.Cause(err), "Unexpected error in test case %d", i)
		require.Equalf(t, c.expectedNil, cache == nil, "Unexpected cache in test case %d", i)
	}
}

func TestNewKinds(t *testing.T) {

	testCases := []struct {
		kind     string
		expected ModifiableCache
	}{
		{Simple, &SimpleCache{}},
		{Free, &FreeCache{}},
		{Fast, &FastCache{}},
		{" FASTCACHE ", &FastCache{}},
	}

	for i, c := range testCases {
		cache, err := New(c.kind, 1024*1024)
		require.NoErrorf(t, err, "Unexpected error in test case %d", i)
		require.IsTypef(t, c.expected, cache, "Wrong cache type in test case %d", i)
	}
}
