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
	"fmt"

	"github.com/bbva/hashtree/crypto/hashing"
)

type buildVisitor struct {
	hasher hashing.Hasher
	frozen *frozenStore

	digests uint64
	reused  uint64
}

func newBuildVisitor(hasher hashing.Hasher, frozen *frozenStore) *buildVisitor {
	return &buildVisitor{
		hasher: hasher,
		frozen: frozen,
	}
}

func (v *buildVisitor) VisitLeafHashOp(op leafHashOp) *Node {
	v.digests++
	return newLeafNode(op.pos, v.hasher.Do(op.Value))
}

func (v *buildVisitor) VisitInnerHashOp(op innerHashOp) *Node {
	left := op.Left.Accept(v)
	right := op.Right.Accept(v)
	v.digests++
	return newInnerNode(op.pos, v.hasher.Do(left.hash, right.hash), left, right)
}

func (v *buildVisitor) VisitPassThroughOp(op passThroughOp) *Node {
	return op.Left.Accept(v)
}

func (v *buildVisitor) VisitGetFrozenOp(op getFrozenOp) *Node {
	node, ok := v.frozen.Get(op.Position())
	if !ok {
		panic(fmt.Sprintf("Oops, something went wrong. There should be a frozen node at position %v", op.Position()))
	}
	v.reused++
	return node
}

func (v *buildVisitor) VisitFreezeOp(op freezeOp) *Node {
	node := op.operation.Accept(v)
	v.frozen.Put(op.Position(), node)
	return node
}
