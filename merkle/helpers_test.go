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
	"sync/atomic"

	"github.com/bbva/hashtree/crypto/hashing"
)

func pos(index, height uint64) position {
	return newPosition(index, height)
}

func inner(pos position, left, right operation) *innerHashOp {
	return newInnerHashOp(pos, left, right)
}

func pass(pos position, left operation) *passThroughOp {
	return newPassThroughOp(pos, left)
}

func leaf(pos position, value byte) *leafHashOp {
	return newLeafHashOp(pos, []byte{value})
}

func frozen(pos position) *getFrozenOp {
	return newGetFrozenOp(pos)
}

func freeze(op operation) *freezeOp {
	return newFreezeOp(op)
}

func values(vs ...string) [][]byte {
	leaves := make([][]byte, len(vs))
	for i, v := range vs {
		leaves[i] = []byte(v)
	}
	return leaves
}

func sha256(data ...[]byte) hashing.Digest {
	return hashing.NewSha256Hasher().Do(data...)
}

// countingHasher counts the digests computed by every hasher it creates.
type countingHasher struct {
	hashing.Hasher
	count *uint64
}

func (h countingHasher) Do(data ...[]byte) hashing.Digest {
	atomic.AddUint64(h.count, 1)
	return h.Hasher.Do(data...)
}

func countingFactory(count *uint64) func() (hashing.Hasher, error) {
	return func() (hashing.Hasher, error) {
		return countingHasher{hashing.NewSha256Hasher(), count}, nil
	}
}

// toggleFactory fails with hashing.ErrDigestUnavailable while *fail is set.
func toggleFactory(fail *bool) func() (hashing.Hasher, error) {
	return func() (hashing.Hasher, error) {
		if *fail {
			return nil, hashing.ErrDigestUnavailable
		}
		return hashing.NewSha256Hasher(), nil
	}
}
