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
	"golang.org/x/sync/errgroup"

	"github.com/bbva/hashtree/crypto/hashing"
	"github.com/bbva/hashtree/log"
	"github.com/bbva/hashtree/merkle/cache"
)

// buildStats summarizes the work done by a single build.
type buildStats struct {
	digests uint64 // digests computed
	reused  uint64 // nodes or digests taken from a frozen store or cache
}

type strategy interface {
	Name() string
	build(leaves [][]byte) (*Node, buildStats, error)
}

// rebuildStrategy reduces the whole leaf sequence level by level on every
// build. When a digest cache is configured, pairs whose leaf range is
// complete take their digest from it instead of hashing again.
type rebuildStrategy struct {
	hasherF   func() (hashing.Hasher, error)
	cache     cache.ModifiableCache
	threshold int
	workers   int
	log       log.Logger
}

func newRebuildStrategy(hasherF func() (hashing.Hasher, error), c cache.ModifiableCache, threshold, workers int, logger log.Logger) *rebuildStrategy {
	return &rebuildStrategy{
		hasherF:   hasherF,
		cache:     c,
		threshold: threshold,
		workers:   workers,
		log:       logger,
	}
}

func (s *rebuildStrategy) Name() string {
	return Rebuild
}

func (s *rebuildStrategy) build(leaves [][]byte) (*Node, buildStats, error) {
	var stats buildStats

	size := uint64(len(leaves))
	if size == 0 {
		return nil, stats, nil
	}

	hasher, err := s.hasherF()
	if err != nil {
		return nil, stats, err
	}

	level, err := s.hashLeaves(hasher, leaves, &stats)
	if err != nil {
		return nil, stats, err
	}

	for height := uint64(0); len(level) > 1; height++ {
		next := make([]*Node, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			if i+1 == len(level) { // odd node, promote
				next = append(next, level[i])
				continue
			}
			left, right := level[i], level[i+1]
			pos := newPosition(left.index, height+1)
			next = append(next, newInnerNode(pos, s.digest(hasher, pos, size, &stats, left.hash, right.hash), left, right))
		}
		level = next
	}

	return level[0], stats, nil
}

// digest returns the digest of a position, from the cache when the
// position is complete and cached.
func (s *rebuildStrategy) digest(hasher hashing.Hasher, pos position, size uint64, stats *buildStats, data ...[]byte) hashing.Digest {
	cacheable := s.cache != nil && pos.complete(size)
	if cacheable {
		if d, ok := s.cache.Get(pos.Bytes()); ok {
			stats.reused++
			return d
		}
	}
	d := hasher.Do(data...)
	stats.digests++
	if cacheable {
		s.cache.Put(pos.Bytes(), d)
	}
	return d
}

// hashLeaves computes level 0. Leaves missing from the cache are digested
// by a group of workers when they are at least as many as the threshold,
// each one with its own hasher. All of them finish before returning.
func (s *rebuildStrategy) hashLeaves(hasher hashing.Hasher, leaves [][]byte, stats *buildStats) ([]*Node, error) {
	size := uint64(len(leaves))
	nodes := make([]*Node, size)
	pending := make([]uint64, 0)

	for i := uint64(0); i < size; i++ {
		pos := newPosition(i, 0)
		if s.cache != nil {
			if d, ok := s.cache.Get(pos.Bytes()); ok {
				nodes[i] = newLeafNode(pos, d)
				stats.reused++
				continue
			}
		}
		pending = append(pending, i)
	}

	workers := s.workers
	if len(pending) < s.threshold || workers < 2 {
		workers = 1
	}
	if workers > len(pending) {
		workers = len(pending)
	}

	if workers <= 1 {
		for _, i := range pending {
			nodes[i] = newLeafNode(newPosition(i, 0), hasher.Do(leaves[i]))
		}
	} else {
		s.log.Debugf("Digesting %d leaves with %d workers", len(pending), workers)
		var g errgroup.Group
		chunk := (len(pending) + workers - 1) / workers
		for start := 0; start < len(pending); start += chunk {
			end := start + chunk
			if end > len(pending) {
				end = len(pending)
			}
			indexes := pending[start:end]
			g.Go(func() error {
				h, err := s.hasherF()
				if err != nil {
					return err
				}
				for _, i := range indexes {
					nodes[i] = newLeafNode(newPosition(i, 0), h.Do(leaves[i]))
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	stats.digests += uint64(len(pending))
	if s.cache != nil {
		for _, i := range pending {
			s.cache.Put(newPosition(i, 0).Bytes(), nodes[i].hash)
		}
	}

	return nodes, nil
}

// incrementalStrategy plans each build from the root position, reusing the
// frozen complete subtrees of previous builds.
type incrementalStrategy struct {
	hasherF func() (hashing.Hasher, error)
	frozen  *frozenStore
	log     log.Logger
}

func newIncrementalStrategy(hasherF func() (hashing.Hasher, error), logger log.Logger) *incrementalStrategy {
	return &incrementalStrategy{
		hasherF: hasherF,
		frozen:  newFrozenStore(),
		log:     logger,
	}
}

func (s *incrementalStrategy) Name() string {
	return Incremental
}

func (s *incrementalStrategy) build(leaves [][]byte) (*Node, buildStats, error) {
	var stats buildStats

	if len(leaves) == 0 {
		return nil, stats, nil
	}

	hasher, err := s.hasherF()
	if err != nil {
		return nil, stats, err
	}

	plan := pruneToBuild(leaves, s.frozen)

	if s.log.GetLevel() >= log.LevelTrace {
		printer := newPrintVisitor(getDepth(uint64(len(leaves))))
		plan.Accept(printer)
		s.log.Tracef("Build plan: %s", printer.Result())
	}

	visitor := newBuildVisitor(hasher, s.frozen)
	root := plan.Accept(visitor)

	stats.digests = visitor.digests
	stats.reused = visitor.reused
	return root, stats, nil
}
