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
	"strings"
)

type printVisitor struct {
	tokens []string
	height uint64
}

func newPrintVisitor(height uint64) *printVisitor {
	return &printVisitor{tokens: make([]string, 0), height: height}
}

func (v *printVisitor) Result() string {
	return fmt.Sprintf("\n%s", strings.Join(v.tokens[:], "\n"))
}

func (v *printVisitor) VisitLeafHashOp(op leafHashOp) *Node {
	v.tokens = append(v.tokens, fmt.Sprintf("%sleafHashOp%v[%x]", v.indent(op.Position().height), op.Position(), op.Value))
	return nil
}

func (v *printVisitor) VisitInnerHashOp(op innerHashOp) *Node {
	v.tokens = append(v.tokens, fmt.Sprintf("%sinnerHashOp%v", v.indent(op.Position().height), op.Position()))
	op.Left.Accept(v)
	op.Right.Accept(v)
	return nil
}

func (v *printVisitor) VisitPassThroughOp(op passThroughOp) *Node {
	v.tokens = append(v.tokens, fmt.Sprintf("%spassThroughOp%v", v.indent(op.Position().height), op.Position()))
	op.Left.Accept(v)
	return nil
}

func (v *printVisitor) VisitGetFrozenOp(op getFrozenOp) *Node {
	v.tokens = append(v.tokens, fmt.Sprintf("%sgetFrozenOp%v", v.indent(op.Position().height), op.Position()))
	return nil
}

func (v *printVisitor) VisitFreezeOp(op freezeOp) *Node {
	v.tokens = append(v.tokens, fmt.Sprintf("%sfreezeOp%v", v.indent(op.Position().height), op.Position()))
	return op.operation.Accept(v)
}

func (v printVisitor) indent(height uint64) string {
	indents := make([]string, 0)
	for i := height; i < v.height; i++ {
		indents = append(indents, "\t")
	}
	return strings.Join(indents, "")
}
