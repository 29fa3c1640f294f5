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
	"bytes"
	"fmt"

	"github.com/bbva/hashtree/crypto/hashing"
)

// Node is a read-only node of a hash tree. Leaves carry the digest of a
// value; inner nodes always have two children and carry the digest of
// the concatenation of their children digests, left first.
type Node struct {
	hash   hashing.Digest
	left   *Node
	right  *Node
	index  uint64
	height uint64
	span   uint64
}

func newLeafNode(pos position, hash hashing.Digest) *Node {
	return &Node{
		hash:   hash,
		index:  pos.index,
		height: 0,
		span:   1,
	}
}

func newInnerNode(pos position, hash hashing.Digest, left, right *Node) *Node {
	return &Node{
		hash:   hash,
		left:   left,
		right:  right,
		index:  pos.index,
		height: pos.height,
		span:   left.span + right.span,
	}
}

// Hash returns a copy of the node digest.
func (n *Node) Hash() hashing.Digest {
	h := make(hashing.Digest, len(n.hash))
	copy(h, n.hash)
	return h
}

// Hex returns the node digest as lowercase hexadecimal.
func (n *Node) Hex() string {
	return n.hash.Hex()
}

func (n *Node) Left() *Node {
	return n.left
}

func (n *Node) Right() *Node {
	return n.right
}

// Children returns the children of the node, left first. Leaves have none.
func (n *Node) Children() []*Node {
	if n.IsLeaf() {
		return nil
	}
	return []*Node{n.left, n.right}
}

func (n *Node) IsLeaf() bool {
	return n.left == nil
}

// Index returns the position of the first leaf under the node.
func (n *Node) Index() uint64 {
	return n.index
}

// Height returns the number of pairing rounds that produced the node.
// A node promoted without a sibling keeps its original height.
func (n *Node) Height() uint64 {
	return n.height
}

// Span returns the number of leaves under the node.
func (n *Node) Span() uint64 {
	return n.span
}

func (n *Node) String() string {
	return fmt.Sprintf("(i %d, h %d, D %x)", n.index, n.height, n.hash)
}

// equal compares two subtrees by digest and shape.
func (n *Node) equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	if n == o {
		return true
	}
	if !bytes.Equal(n.hash, o.hash) || n.index != o.index || n.height != o.height || n.span != o.span {
		return false
	}
	return n.left.equal(o.left) && n.right.equal(o.right)
}

// Visitor is implemented by consumers walking a tree, e.g. renderers.
type Visitor interface {
	VisitLeaf(n *Node, depth int)
	VisitInner(n *Node, depth int)
}

// PreOrder walks the subtree rooted at n, parents before children and
// left children before right children. depth is 0 for n.
func PreOrder(n *Node, v Visitor) {
	var walk func(n *Node, depth int)
	walk = func(n *Node, depth int) {
		if n.IsLeaf() {
			v.VisitLeaf(n, depth)
			return
		}
		v.VisitInner(n, depth)
		walk(n.left, depth+1)
		walk(n.right, depth+1)
	}
	if n != nil {
		walk(n, 0)
	}
}
