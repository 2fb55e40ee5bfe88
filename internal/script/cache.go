// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package script

import (
	"fmt"
	"os"
	"time"

	"github.com/patrickmn/go-cache"
)

const (
	// DefaultCacheExpiration keeps parsed scripts for 30 minutes.
	DefaultCacheExpiration = 30 * time.Minute
	cacheCleanupInterval   = 5 * time.Minute
)

// Cache holds parsed scripts keyed by path. An entry is only reused while the
// file's size and modification time are unchanged.
type Cache struct {
	c          *cache.Cache
	expiration time.Duration
}

type cachedScript struct {
	modTime time.Time
	size    int64
	ops     []Op
}

func NewCache(expiration time.Duration) *Cache {
	if expiration <= 0 {
		expiration = DefaultCacheExpiration
	}
	return &Cache{
		c:          cache.New(expiration, cacheCleanupInterval),
		expiration: expiration,
	}
}

// Load returns the parsed script at path, parsing it only when no fresh copy
// is cached. The returned slice must not be modified.
func (sc *Cache) Load(path string) ([]Op, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if val, ok := sc.c.Get(path); ok {
		entry := val.(cachedScript)
		if entry.modTime.Equal(info.ModTime()) && entry.size == info.Size() {
			return entry.ops, nil
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ops, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	sc.c.Set(path, cachedScript{modTime: info.ModTime(), size: info.Size(), ops: ops}, sc.expiration)
	return ops, nil
}

// Len returns the number of cached scripts, expired ones included until the
// next cleanup.
func (sc *Cache) Len() int {
	return sc.c.ItemCount()
}
