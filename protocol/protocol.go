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
// Package protocol defines the information types exchanged with clients
// of a hash tree server, and their encodings.
package protocol

import (
	"bytes"

	"github.com/hashicorp/go-msgpack/codec"

	"github.com/bbva/hashtree/log"
	"github.com/bbva/hashtree/merkle"
)

// Leaf is the public struct that the leaves handler uses to parse the
// post params.
type Leaf struct {
	Value string `json:"value"`
}

// Snapshot summarizes a tree: the number of leaves and the root digest,
// empty for the empty tree.
type Snapshot struct {
	Size uint64 `json:"size"`
	Root string `json:"root"`
}

// TreeNode is a read-only copy of a tree node and its subtree.
type TreeNode struct {
	Hash     string      `json:"hash"`
	Index    uint64      `json:"index"`
	Height   uint64      `json:"height"`
	Span     uint64      `json:"span"`
	Children []*TreeNode `json:"children,omitempty"`
}

// TreeSnapshot is the whole tree: its nested nodes and the digests of
// every level of the reduction, leaves first.
type TreeSnapshot struct {
	Size   uint64     `json:"size"`
	Root   *TreeNode  `json:"root,omitempty"`
	Levels [][]string `json:"levels,omitempty"`
}

// ToSnapshot translates a tree to the public struct protocol.Snapshot.
func ToSnapshot(t merkle.Tree) *Snapshot {
	return &Snapshot{
		Size: t.Size(),
		Root: t.Hex(),
	}
}

// ToTreeSnapshot translates a tree to the public struct
// protocol.TreeSnapshot.
func ToTreeSnapshot(t merkle.Tree) *TreeSnapshot {
	s := &TreeSnapshot{Size: t.Size()}
	if t.Empty() {
		return s
	}
	s.Root = toTreeNode(t.Root())
	for _, level := range t.Levels() {
		hashes := make([]string, len(level))
		for i, n := range level {
			hashes[i] = n.Hex()
		}
		s.Levels = append(s.Levels, hashes)
	}
	return s
}

func toTreeNode(n *merkle.Node) *TreeNode {
	node := &TreeNode{
		Hash:   n.Hex(),
		Index:  n.Index(),
		Height: n.Height(),
		Span:   n.Span(),
	}
	for _, c := range n.Children() {
		node.Children = append(node.Children, toTreeNode(c))
	}
	return node
}

func (b *Snapshot) Encode() ([]byte, error) {
	var buf bytes.Buffer
	encoder := codec.NewEncoder(&buf, &codec.MsgpackHandle{})
	if err := encoder.Encode(b); err != nil {
		log.Errorf("Failed to encode snapshot: %v", err)
		return nil, err
	}
	return buf.Bytes(), nil
}

func (b *Snapshot) Decode(msg []byte) error {
	reader := bytes.NewReader(msg)
	decoder := codec.NewDecoder(reader, &codec.MsgpackHandle{})
	if err := decoder.Decode(b); err != nil {
		log.Errorf("Failed to decode snapshot: %v", err)
		return err
	}
	return nil
}

func (b *TreeSnapshot) Encode() ([]byte, error) {
	var buf bytes.Buffer
	encoder := codec.NewEncoder(&buf, &codec.MsgpackHandle{})
	if err := encoder.Encode(b); err != nil {
		log.Errorf("Failed to encode tree snapshot: %v", err)
		return nil, err
	}
	return buf.Bytes(), nil
}

func (b *TreeSnapshot) Decode(msg []byte) error {
	reader := bytes.NewReader(msg)
	decoder := codec.NewDecoder(reader, &codec.MsgpackHandle{})
	if err := decoder.Decode(b); err != nil {
		log.Errorf("Failed to decode tree snapshot: %v", err)
		return err
	}
	return nil
}
