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

// pruneToBuild returns the operations needed to compute the tree over the
// given leaves, walking down from the root position. Complete subtrees
// already frozen are reused, newly complete ones are computed and frozen,
// and positions without a right half promote their left child.
//
// With every subtree left of the last leaf frozen, the plan only descends
// the rightmost path of the tree.
func pruneToBuild(leaves [][]byte, frozen *frozenStore) operation {

	size := uint64(len(leaves))
	if size == 0 {
		return nil
	}

	var traverse func(pos position) operation
	traverse = func(pos position) operation {

		complete := pos.complete(size)
		if complete && frozen.Has(pos) {
			return newGetFrozenOp(pos)
		}

		var op operation
		switch {
		case pos.isLeaf():
			op = newLeafHashOp(pos, leaves[pos.index])
		case pos.right().index >= size: // odd node, promote
			return newPassThroughOp(pos, traverse(pos.left()))
		default:
			op = newInnerHashOp(pos, traverse(pos.left()), traverse(pos.right()))
		}

		if complete {
			return newFreezeOp(op)
		}
		return op
	}

	return traverse(rootPosition(size))
}
