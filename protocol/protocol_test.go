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
package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bbva/hashtree/crypto/hashing"
	"github.com/bbva/hashtree/merkle"
)

func buildTree(t *testing.T, values ...string) merkle.Tree {
	b, err := merkle.NewBuilder(merkle.Options{Hasher: hashing.IDENTITY})
	require.NoError(t, err)
	for _, v := range values {
		b.Append([]byte(v))
	}
	tree, err := b.BuildTree()
	require.NoError(t, err)
	return tree
}

func TestToSnapshot(t *testing.T) {

	testCases := []struct {
		values   []string
		expected *Snapshot
	}{
		{nil, &Snapshot{Size: 0, Root: ""}},
		{[]string{"a"}, &Snapshot{Size: 1, Root: "61"}},
		{[]string{"a", "b", "c"}, &Snapshot{Size: 3, Root: "616263"}},
	}

	for i, c := range testCases {
		require.Equalf(t, c.expected, ToSnapshot(buildTree(t, c.values...)), "Wrong snapshot in test case %d", i)
	}
}

func TestToTreeSnapshot(t *testing.T) {
	snapshot := ToTreeSnapshot(buildTree(t, "a", "b", "c"))

	expected := &TreeSnapshot{
		Size: 3,
		Root: &TreeNode{
			Hash: "616263", Index: 0, Height: 2, Span: 3,
			Children: []*TreeNode{
				{
					Hash: "6162", Index: 0, Height: 1, Span: 2,
					Children: []*TreeNode{
						{Hash: "61", Index: 0, Height: 0, Span: 1},
						{Hash: "62", Index: 1, Height: 0, Span: 1},
					},
				},
				{Hash: "63", Index: 2, Height: 0, Span: 1},
			},
		},
		Levels: [][]string{
			{"61", "62", "63"},
			{"6162", "63"},
			{"616263"},
		},
	}
	require.Equal(t, expected, snapshot)

	require.Equal(t, &TreeSnapshot{Size: 0}, ToTreeSnapshot(merkle.Tree{}))
}

func TestSnapshotJSON(t *testing.T) {
	out, err := json.Marshal(ToSnapshot(buildTree(t, "a", "b")))
	require.NoError(t, err)
	require.Equal(t, `{"size":2,"root":"6162"}`, string(out))

	out, err = json.Marshal(ToTreeSnapshot(merkle.Tree{}))
	require.NoError(t, err)
	require.Equal(t, `{"size":0}`, string(out))
}

func TestTreeSnapshotMsgpack(t *testing.T) {
	snapshot := ToTreeSnapshot(buildTree(t, "a", "b", "c", "d", "e"))

	msg, err := snapshot.Encode()
	require.NoError(t, err)

	decoded := new(TreeSnapshot)
	require.NoError(t, decoded.Decode(msg))
	require.Equal(t, snapshot, decoded)
}

func TestSnapshotMsgpack(t *testing.T) {
	snapshot := ToSnapshot(buildTree(t, "a"))

	msg, err := snapshot.Encode()
	require.NoError(t, err)

	decoded := new(Snapshot)
	require.NoError(t, decoded.Decode(msg))
	require.Equal(t, snapshot, decoded)
}
