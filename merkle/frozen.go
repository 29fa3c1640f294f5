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
	"math"

	"github.com/google/btree"
)

const frozenStoreDegree = 8

type frozenItem struct {
	pos  position
	node *Node
}

func (i frozenItem) Less(than btree.Item) bool {
	return i.pos.less(than.(frozenItem).pos)
}

// frozenStore keeps the roots of complete subtrees. Those never change once
// computed, so they are shared by every tree built afterwards. Freezing a
// node discards its frozen descendants, which leaves one node per set bit
// of the tree size: the maximal complete subtrees.
type frozenStore struct {
	tree *btree.BTree
}

func newFrozenStore() *frozenStore {
	return &frozenStore{tree: btree.New(frozenStoreDegree)}
}

func (s *frozenStore) Get(pos position) (*Node, bool) {
	item := s.tree.Get(frozenItem{pos: pos})
	if item == nil {
		return nil, false
	}
	return item.(frozenItem).node, true
}

func (s *frozenStore) Has(pos position) bool {
	return s.tree.Has(frozenItem{pos: pos})
}

func (s *frozenStore) Put(pos position, node *Node) {
	s.tree.ReplaceOrInsert(frozenItem{pos, node})
	if !pos.isLeaf() {
		s.pruneDescendants(pos)
	}
}

// pruneDescendants removes every frozen node under pos. Given the ordering
// of positions, they are exactly the items between pos (excluded) and the
// first position right of its last leaf.
func (s *frozenStore) pruneDescendants(pos position) {
	descendants := make([]btree.Item, 0)
	from := frozenItem{pos: pos}
	to := frozenItem{pos: newPosition(pos.lastLeaf()+1, math.MaxUint64)}
	s.tree.AscendRange(from, to, func(i btree.Item) bool {
		if i.(frozenItem).pos != pos {
			descendants = append(descendants, i)
		}
		return true
	})
	for _, d := range descendants {
		s.tree.Delete(d)
	}
}

// Positions returns the frozen positions in order.
func (s *frozenStore) Positions() []position {
	positions := make([]position, 0, s.tree.Len())
	s.tree.Ascend(func(i btree.Item) bool {
		positions = append(positions, i.(frozenItem).pos)
		return true
	})
	return positions
}

func (s *frozenStore) Len() int {
	return s.tree.Len()
}
