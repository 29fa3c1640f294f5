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
// Package merkle builds binary hash trees over an append-only sequence of
// values.
//
// Leaves are the digests of the values in insertion order. Every level is
// built by hashing pairs of adjacent nodes of the level below, left to
// right. A node left without a sibling at the end of a level is promoted
// unchanged to the next one. The reduction stops when a single node, the
// root, remains.
//
//                  abcde
//                /       //            abcd         e
//           /    //         ab      cd
//        /  \    /  //       a    b  c    d
//
// With five leaves, e is promoted twice before being paired with abcd.
// The resulting shape is a left-complete tree: the node at (index, height)
// covers the leaves [index, index + 2^height), and the subtrees whose
// range is complete never change once appended, which is what the
// incremental strategy relies on.
package merkle

import (
	"runtime"
	"sync"
	"time"

	"github.com/imdario/mergo"
	"github.com/pkg/errors"

	"github.com/bbva/hashtree/crypto/hashing"
	"github.com/bbva/hashtree/log"
	"github.com/bbva/hashtree/merkle/cache"
)

// Build strategies.
const (
	Rebuild     = "rebuild"
	Incremental = "incremental"
)

var (
	ErrUnknownStrategy = errors.New("unknown build strategy")
	ErrLeafOutOfRange  = errors.New("leaf index out of range")
)

// Options configures a Builder. Zero fields take the value of
// DefaultOptions.
type Options struct {
	// Name of the digest function, see hashing.New.
	Hasher string
	// HasherFactory overrides Hasher when set.
	HasherFactory func() (hashing.Hasher, error)
	// Rebuild or Incremental.
	Strategy string
	// Digest cache used by the rebuild strategy, see cache.New.
	Cache string
	// Cache size in bytes.
	CacheSize int
	// Minimum number of leaves to digest in parallel.
	ParallelThreshold int
	// Number of goroutines digesting leaves in parallel.
	Workers int
	Logger  log.Logger
}

func DefaultOptions() Options {
	return Options{
		Hasher:            hashing.SHA256,
		Strategy:          Incremental,
		Cache:             cache.None,
		CacheSize:         32 * 1024 * 1024,
		ParallelThreshold: 1024,
		Workers:           runtime.NumCPU(),
	}
}

// Builder keeps an append-only sequence of leaf values and the last tree
// built over it. A single lock serializes every operation, so a Builder
// may be shared, but appends from different goroutines interleave in
// lock acquisition order.
type Builder struct {
	mu sync.Mutex

	leaves   [][]byte
	current  Tree
	strategy strategy
	log      log.Logger
}

// NewBuilder returns an empty builder. It fails if the digest function,
// the strategy or the cache cannot be set up.
func NewBuilder(opts Options) (*Builder, error) {
	if err := mergo.Merge(&opts, DefaultOptions()); err != nil {
		return nil, errors.Wrap(err, "merging default options")
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.Default().Named("merkle")
	}

	hasherF := opts.HasherFactory
	if hasherF == nil {
		f, err := hashing.Factory(opts.Hasher)
		if err != nil {
			return nil, err
		}
		// fail early on functions known but not linked
		if _, err := f(); err != nil {
			return nil, err
		}
		hasherF = f
	}

	var s strategy
	switch opts.Strategy {
	case Rebuild:
		c, err := cache.New(opts.Cache, opts.CacheSize)
		if err != nil {
			return nil, err
		}
		s = newRebuildStrategy(hasherF, c, opts.ParallelThreshold, opts.Workers, logger)
	case Incremental:
		if opts.Cache != cache.None {
			logger.Warnf("Cache %s ignored by the %s strategy", opts.Cache, Incremental)
		}
		s = newIncrementalStrategy(hasherF, logger)
	default:
		return nil, errors.Wrapf(ErrUnknownStrategy, "strategy %q", opts.Strategy)
	}

	logger.Debugf("New builder with hasher %s and strategy %s", opts.Hasher, s.Name())

	return &Builder{
		leaves:   make([][]byte, 0),
		strategy: s,
		log:      logger,
	}, nil
}

// Append adds a copy of value at the end of the leaf sequence. The tree
// returned by Root is stale until the next BuildTree.
func (b *Builder) Append(value []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.append(value)
}

func (b *Builder) append(value []byte) {
	leaf := make([]byte, len(value))
	copy(leaf, value)
	b.leaves = append(b.leaves, leaf)
	AppendTotal.Inc()
}

// BuildTree returns the tree over the current leaf sequence, the empty
// tree when there are no leaves. A current tree is returned as is.
//
// On failure neither the leaves nor the last built tree change, and the
// call may be retried. The cause of the error is
// hashing.ErrDigestUnavailable.
func (b *Builder) BuildTree() (Tree, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.build()
}

func (b *Builder) build() (Tree, error) {
	size := uint64(len(b.leaves))
	if b.current.size == size {
		return b.current, nil
	}

	start := time.Now()
	root, stats, err := b.strategy.build(b.leaves)
	if err != nil {
		BuildErrorsTotal.Inc()
		return b.current, errors.Wrapf(err, "building tree of %d leaves", size)
	}

	BuildTotal.WithLabelValues(b.strategy.Name()).Inc()
	BuildDurationSeconds.Observe(time.Since(start).Seconds())
	DigestsTotal.Add(float64(stats.digests))
	ReusedTotal.Add(float64(stats.reused))

	b.log.Debugf("Built tree of %d leaves with strategy %s: %d digests, %d reused", size, b.strategy.Name(), stats.digests, stats.reused)

	b.current = Tree{root: root, size: size}
	return b.current, nil
}

// Add appends value and builds the tree including it.
func (b *Builder) Add(value []byte) (Tree, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.append(value)
	return b.build()
}

// Root returns the last tree successfully built, which may be stale.
func (b *Builder) Root() Tree {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

// LeafCount returns the number of leaves appended so far.
func (b *Builder) LeafCount() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return uint64(len(b.leaves))
}

// Stale tells whether leaves were appended after the last build.
func (b *Builder) Stale() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current.size != uint64(len(b.leaves))
}

// Leaf returns a copy of the value at the given position.
func (b *Builder) Leaf(index uint64) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if index >= uint64(len(b.leaves)) {
		return nil, errors.Wrapf(ErrLeafOutOfRange, "leaf %d of %d", index, len(b.leaves))
	}
	value := make([]byte, len(b.leaves[index]))
	copy(value, b.leaves[index])
	return value, nil
}

// Strategy returns the name of the build strategy in use.
func (b *Builder) Strategy() string {
	return b.strategy.Name()
}
