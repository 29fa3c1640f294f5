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
// Package render draws hash trees for humans and encodes them for
// machines.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/m1gwings/treedrawer/tree"
	"github.com/pkg/errors"

	"github.com/bbva/hashtree/merkle"
	"github.com/bbva/hashtree/protocol"
)

// Output formats.
const (
	FormatText    = "text"
	FormatLevels  = "levels"
	FormatIndent  = "indent"
	FormatJSON    = "json"
	FormatMsgpack = "msgpack"
)

// Formats lists the formats Write understands.
var Formats = []string{FormatText, FormatLevels, FormatIndent, FormatJSON, FormatMsgpack}

var ErrUnknownFormat = errors.New("unknown output format")

// ShortHashLen is the number of hex characters shown per node.
const ShortHashLen = 6

const emptyTree = "(empty tree)"

// Short returns the first ShortHashLen characters of the node digest.
func Short(n *merkle.Node) string {
	h := n.Hex()
	if len(h) > ShortHashLen {
		return h[:ShortHashLen]
	}
	return h
}

// Text draws the tree top down.
func Text(t merkle.Tree) string {
	if t.Empty() {
		return emptyTree
	}
	drawing := tree.NewTree(tree.NodeString(Short(t.Root())))
	addChildren(drawing, t.Root())
	return drawing.String()
}

func addChildren(drawing *tree.Tree, n *merkle.Node) {
	for _, c := range n.Children() {
		child := drawing.AddChild(tree.NodeString(Short(c)))
		addChildren(child, c)
	}
}

// Levels lists the nodes of every level of the reduction, one line per
// level from the leaves up to the root.
func Levels(t merkle.Tree) string {
	if t.Empty() {
		return emptyTree
	}
	lines := make([]string, 0)
	for h, level := range t.Levels() {
		hashes := make([]string, len(level))
		for i, n := range level {
			hashes[i] = Short(n)
		}
		lines = append(lines, fmt.Sprintf("%d: %s", h, strings.Join(hashes, " ")))
	}
	return strings.Join(lines, "\n")
}

type indentVisitor struct {
	lines []string
}

func (v *indentVisitor) VisitLeaf(n *merkle.Node, depth int) {
	v.lines = append(v.lines, fmt.Sprintf("%s%s leaf %d", strings.Repeat("  ", depth), Short(n), n.Index()))
}

func (v *indentVisitor) VisitInner(n *merkle.Node, depth int) {
	v.lines = append(v.lines, fmt.Sprintf("%s%s [%d..%d]", strings.Repeat("  ", depth), Short(n), n.Index(), n.Index()+n.Span()-1))
}

// Indent lists the nodes in pre-order, children indented under their
// parent.
func Indent(t merkle.Tree) string {
	if t.Empty() {
		return emptyTree
	}
	v := new(indentVisitor)
	merkle.PreOrder(t.Root(), v)
	return strings.Join(v.lines, "\n")
}

// Write renders the tree in the given format.
func Write(w io.Writer, t merkle.Tree, format string) error {
	var out []byte
	switch format {
	case FormatText:
		out = []byte(Text(t) + "\n")
	case FormatLevels:
		out = []byte(Levels(t) + "\n")
	case FormatIndent:
		out = []byte(Indent(t) + "\n")
	case FormatJSON:
		b, err := json.MarshalIndent(protocol.ToTreeSnapshot(t), "", "  ")
		if err != nil {
			return err
		}
		out = append(b, '\n')
	case FormatMsgpack:
		b, err := protocol.ToTreeSnapshot(t).Encode()
		if err != nil {
			return err
		}
		out = b
	default:
		return errors.Wrapf(ErrUnknownFormat, "format %q", format)
	}
	_, err := w.Write(out)
	return err
}
