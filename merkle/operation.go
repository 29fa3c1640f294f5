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
)

type operation interface {
	Accept(visitor opVisitor) *Node
	String() string
	Position() position
}

type opVisitor interface {
	VisitLeafHashOp(op leafHashOp) *Node
	VisitInnerHashOp(op innerHashOp) *Node
	VisitPassThroughOp(op passThroughOp) *Node
	VisitGetFrozenOp(op getFrozenOp) *Node
	VisitFreezeOp(op freezeOp) *Node
}

type leafHashOp struct {
	pos   position
	Value []byte
}

type innerHashOp struct {
	pos         position
	Left, Right operation
}

// passThroughOp promotes its only child to the next level untouched.
type passThroughOp struct {
	pos  position
	Left operation
}

type getFrozenOp struct {
	pos position
}

type freezeOp struct {
	operation
}

func newLeafHashOp(pos position, value []byte) *leafHashOp {
	return &leafHashOp{
		pos:   pos,
		Value: value,
	}
}

func (o leafHashOp) Accept(visitor opVisitor) *Node {
	return visitor.VisitLeafHashOp(o)
}

func (o leafHashOp) Position() position {
	return o.pos
}

func (o leafHashOp) String() string {
	return fmt.Sprintf("leafHashOp(%v)[ %x ]", o.pos, o.Value)
}

func newInnerHashOp(pos position, left, right operation) *innerHashOp {
	return &innerHashOp{
		pos:   pos,
		Left:  left,
		Right: right,
	}
}

func (o innerHashOp) Accept(visitor opVisitor) *Node {
	return visitor.VisitInnerHashOp(o)
}

func (o innerHashOp) Position() position {
	return o.pos
}

func (o innerHashOp) String() string {
	return fmt.Sprintf("innerHashOp(%v)[ %v | %v ]", o.pos, o.Left, o.Right)
}

func newPassThroughOp(pos position, left operation) *passThroughOp {
	return &passThroughOp{
		pos:  pos,
		Left: left,
	}
}

func (o passThroughOp) Accept(visitor opVisitor) *Node {
	return visitor.VisitPassThroughOp(o)
}

func (o passThroughOp) Position() position {
	return o.pos
}

func (o passThroughOp) String() string {
	return fmt.Sprintf("passThroughOp(%v)[ %v ]", o.pos, o.Left)
}

func newGetFrozenOp(pos position) *getFrozenOp {
	return &getFrozenOp{
		pos: pos,
	}
}

func (o getFrozenOp) Accept(visitor opVisitor) *Node {
	return visitor.VisitGetFrozenOp(o)
}

func (o getFrozenOp) Position() position {
	return o.pos
}

func (o getFrozenOp) String() string {
	return fmt.Sprintf("getFrozenOp(%v)", o.pos)
}

func newFreezeOp(op operation) *freezeOp {
	return &freezeOp{
		operation: op,
	}
}

func (o freezeOp) Accept(visitor opVisitor) *Node {
	return visitor.VisitFreezeOp(o)
}

func (o freezeOp) Position() position {
	return o.operation.Position()
}

func (o freezeOp) String() string {
	return fmt.Sprintf("freezeOp( %v )", o.operation)
}
