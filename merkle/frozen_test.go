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
	"math/bits"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bbva/hashtree/crypto/hashing"
	"github.com/bbva/hashtree/log"
)

func TestFrozenStorePrunesDescendants(t *testing.T) {
	store := newFrozenStore()
	node := newLeafNode(pos(0, 0), hashing.Digest{0x0})

	store.Put(pos(0, 0), node)
	store.Put(pos(1, 0), node)
	store.Put(pos(2, 0), node)
	store.Put(pos(0, 1), node)
	require.Equal(t, []position{pos(0, 1), pos(2, 0)}, store.Positions())

	store.Put(pos(3, 0), node)
	store.Put(pos(2, 1), node)
	store.Put(pos(0, 2), node)
	require.Equal(t, []position{pos(0, 2)}, store.Positions())

	_, ok := store.Get(pos(0, 1))
	require.False(t, ok, "Descendants should have been pruned")
	n, ok := store.Get(pos(0, 2))
	require.True(t, ok)
	require.Equal(t, node, n)
}

func TestFrozenStoreHoldsMaximalSubtrees(t *testing.T) {
	s := newIncrementalStrategy(func() (hashing.Hasher, error) { return hashing.NewXorHasher(), nil }, log.Default())
	leaves := make([][]byte, 0)

	for i := 0; i < 130; i++ {
		leaves = append(leaves, []byte{byte(i)})
		_, _, err := s.build(leaves)
		require.NoError(t, err)

		size := uint64(len(leaves))
		require.Equalf(t, bits.OnesCount64(size), s.frozen.Len(), "Wrong number of frozen nodes with size %d", size)
		for _, p := range s.frozen.Positions() {
			require.Truef(t, p.complete(size), "Frozen position %v should be complete with size %d", p, size)
		}
	}
}
