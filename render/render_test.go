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
package render

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/bbva/hashtree/crypto/hashing"
	"github.com/bbva/hashtree/merkle"
	"github.com/bbva/hashtree/protocol"
)

func buildTree(t *testing.T, hasher string, values ...string) merkle.Tree {
	b, err := merkle.NewBuilder(merkle.Options{Hasher: hasher})
	require.NoError(t, err)
	for _, v := range values {
		b.Append([]byte(v))
	}
	tree, err := b.BuildTree()
	require.NoError(t, err)
	return tree
}

func TestShort(t *testing.T) {
	tree := buildTree(t, hashing.SHA256, "A")
	require.Equal(t, tree.Hex()[:6], Short(tree.Root()))

	tree = buildTree(t, hashing.IDENTITY, "a")
	require.Equal(t, "61", Short(tree.Root()))
}

func TestLevels(t *testing.T) {

	testCases := []struct {
		values   []string
		expected string
	}{
		{nil, "(empty tree)"},
		{[]string{"a"}, "0: 61"},
		{[]string{"a", "b", "c"}, "0: 61 62 63\n1: 6162 63\n2: 616263"},
	}

	for i, c := range testCases {
		require.Equalf(t, c.expected, Levels(buildTree(t, hashing.IDENTITY, c.values...)), "Wrong levels in test case %d", i)
	}
}

func TestIndent(t *testing.T) {
	tree := buildTree(t, hashing.IDENTITY, "a", "b", "c")
	expected := "616263 [0..2]\n" +
		"  6162 [0..1]\n" +
		"    61 leaf 0\n" +
		"    62 leaf 1\n" +
		"  63 leaf 2"
	require.Equal(t, expected, Indent(tree))
	require.Equal(t, "(empty tree)", Indent(merkle.Tree{}))
}

func TestText(t *testing.T) {
	tree := buildTree(t, hashing.SHA256, "A", "B", "C")
	drawing := Text(tree)

	require.Contains(t, drawing, Short(tree.Root()))
	for _, level := range tree.Levels() {
		for _, n := range level {
			require.Contains(t, drawing, Short(n))
		}
	}
	require.Equal(t, "(empty tree)", Text(merkle.Tree{}))
}

func TestWrite(t *testing.T) {
	tree := buildTree(t, hashing.IDENTITY, "a", "b")

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, tree, FormatLevels))
	require.Equal(t, "0: 61 62\n1: 6162\n", buf.String())

	buf.Reset()
	require.NoError(t, Write(&buf, tree, FormatMsgpack))
	decoded := new(protocol.TreeSnapshot)
	require.NoError(t, decoded.Decode(buf.Bytes()))
	require.Equal(t, protocol.ToTreeSnapshot(tree), decoded)

	buf.Reset()
	require.NoError(t, Write(&buf, tree, FormatJSON))
	require.Contains(t, buf.String(), `"root": {`)

	err := Write(&buf, tree, "svg")
	require.Equal(t, ErrUnknownFormat, errors.Cause(err))
}
