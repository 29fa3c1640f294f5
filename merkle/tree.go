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
	"github.com/bbva/hashtree/crypto/hashing"
)

// Tree is a snapshot of the hash tree over a leaf sequence. The zero value
// is the empty tree. Trees are immutable and safe for concurrent reads.
type Tree struct {
	root *Node
	size uint64
}

// Root returns the root node, or nil for the empty tree.
func (t Tree) Root() *Node {
	return t.root
}

// Size returns the number of leaves the tree commits to.
func (t Tree) Size() uint64 {
	return t.size
}

func (t Tree) Empty() bool {
	return t.root == nil
}

// RootHash returns a copy of the root digest, nil for the empty tree.
func (t Tree) RootHash() hashing.Digest {
	if t.Empty() {
		return nil
	}
	return t.root.Hash()
}

// Hex returns the root digest as lowercase hexadecimal, or an empty string
// for the empty tree.
func (t Tree) Hex() string {
	if t.Empty() {
		return ""
	}
	return t.root.Hex()
}

// Equal tells whether both trees have the same size, digests and shape.
func (t Tree) Equal(o Tree) bool {
	return t.size == o.size && t.root.equal(o.root)
}

// Depth returns the number of levels above the leaves.
func (t Tree) Depth() uint64 {
	return getDepth(t.size)
}

// Levels returns the node lists of the pairwise reduction that produced
// the tree, leaves first and the root last. A node promoted without a
// sibling shows up at every level it passes through.
func (t Tree) Levels() [][]*Node {
	if t.Empty() {
		return nil
	}
	depth := t.Depth()
	levels := make([][]*Node, depth+1)
	for h := uint64(0); h <= depth; h++ {
		width := (t.size + pow2(h) - 1) >> h
		levels[h] = make([]*Node, 0, width)
		for j := uint64(0); j < width; j++ {
			levels[h] = append(levels[h], t.nodeAt(newPosition(j<<h, h)))
		}
	}
	return levels
}

// nodeAt navigates from the root to the node occupying a position. The
// target must exist in a tree of this size.
func (t Tree) nodeAt(target position) *Node {
	node, pos := t.root, rootPosition(t.size)
	for pos != target {
		// a position without right half holds its promoted left child
		if pos.right().index >= t.size {
			pos = pos.left()
			continue
		}
		if target.index < pos.right().index {
			node, pos = node.left, pos.left()
		} else {
			node, pos = node.right, pos.right()
		}
	}
	return node
}
