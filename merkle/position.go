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
	"fmt"
	"math/bits"
)

// position identifies a node slot by the index of the first leaf it covers
// and its height. A node at (index, height) covers the leaves
// [index, index + 2^height), clipped to the tree size.
type position struct {
	index  uint64
	height uint64
}

func newPosition(index, height uint64) position {
	return position{index, height}
}

// rootPosition returns the position of the root of a tree with the given
// number of leaves.
func rootPosition(size uint64) position {
	return newPosition(0, getDepth(size))
}

// getDepth returns ceil(log2(size)), the number of pairing rounds needed
// to reduce size nodes to one.
func getDepth(size uint64) uint64 {
	if size <= 1 {
		return 0
	}
	return uint64(bits.Len64(size - 1))
}

func (p position) String() string {
	return fmt.Sprintf("(i %d, h %d)", p.index, p.height)
}

func (p position) span() uint64 {
	return 1 << p.height
}

func (p position) isLeaf() bool {
	return p.height == 0
}

func (p position) left() position {
	return newPosition(p.index, p.height-1)
}

func (p position) right() position {
	return newPosition(p.index+pow2(p.height-1), p.height-1)
}

func (p position) lastLeaf() uint64 {
	return p.index + p.span() - 1
}

// complete tells whether every leaf under the position exists in a tree
// of the given size. The digest of a complete position never changes
// as new leaves are appended.
func (p position) complete(size uint64) bool {
	return p.lastLeaf() < size
}

// Bytes returns a fixed size key for the position: 8 bytes of index
// followed by 8 bytes of height, both big endian.
func (p position) Bytes() []byte {
	b := make([]byte, 16)
	binary.BigEndian.PutUint64(b, p.index)
	binary.BigEndian.PutUint64(b[8:], p.height)
	return b
}

// less orders positions by index and, for equal indexes, from the highest
// node to the lowest, so that the descendants of a position follow it.
func (p position) less(o position) bool {
	if p.index != o.index {
		return p.index < o.index
	}
	return p.height > o.height
}

func pow2(exp uint64) uint64 {
	return 1 << exp
}
