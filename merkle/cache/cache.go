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

// Package cache implements in-memory digest caches keyed by node position.
// Caches may evict entries; callers must be ready to recompute a missing
// digest.
package cache

import (
	"strings"

	"github.com/pkg/errors"
)

// Kinds of caches that can be built with New.
const (
	None   = "none"
	Simple = "simple"
	Free   = "freecache"
	Fast   = "fastcache"
)

var ErrUnknownCache = errors.New("unknown cache kind")

type Cache interface {
	Get(key []byte) ([]byte, bool)
}

type ModifiableCache interface {
	Put(key []byte, value []byte)
	Cache
	Size() int
}

// New returns a cache of the given kind. size is the maximum number of
// bytes of bounded caches, simple caches grow without limit. The None kind
// returns a nil cache.
func New(kind string, size int) (ModifiableCache, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case None, "":
		return nil, nil
	case Simple:
		return NewSimpleCache(0), nil
	case Free:
		return NewFreeCache(size), nil
	case Fast:
		return NewFastCache(int64(size)), nil
	default:
		return nil, errors.Wrapf(ErrUnknownCache, "kind %q", kind)
	}
}
