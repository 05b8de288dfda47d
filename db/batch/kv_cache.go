// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package batch

type (
	// KVStoreCache is a local cache of batched <k, v> for fast query
	KVStoreCache interface {
		// Read retrieves a record
		Read(*kvCacheKey) ([]byte, error)
		// Write puts a record into cache
		Write(*kvCacheKey, []byte)
		// Evict marks a record as deleted
		Evict(*kvCacheKey)
		// Clear clears the cache
		Clear()
	}

	// kvCacheKey is the key of the 2D map cache
	kvCacheKey struct {
		key1 string
		key2 string
	}

	node struct {
		value   []byte
		deleted bool
	}

	// kvCache implements KVStoreCache
	kvCache struct {
		cache map[string]map[string]*node
	}
)

// NewKVCache returns a KVCache
func NewKVCache() KVStoreCache {
	return &kvCache{
		cache: make(map[string]map[string]*node),
	}
}

// Read retrieves a record. A record evicted from this cache layer surfaces as
// ErrAlreadyDeleted so layered lookups stop instead of falling through.
func (c *kvCache) Read(key *kvCacheKey) ([]byte, error) {
	if ns, ok := c.cache[key.key1]; ok {
		if n, ok := ns[key.key2]; ok {
			if n.deleted {
				return nil, ErrAlreadyDeleted
			}
			return n.value, nil
		}
	}
	return nil, ErrNotExist
}

// Write puts a record into cache
func (c *kvCache) Write(key *kvCacheKey, v []byte) {
	if _, ok := c.cache[key.key1]; !ok {
		c.cache[key.key1] = make(map[string]*node)
	}
	c.cache[key.key1][key.key2] = &node{
		value:   v,
		deleted: false,
	}
}

// Evict marks a record as deleted
func (c *kvCache) Evict(key *kvCacheKey) {
	if _, ok := c.cache[key.key1]; !ok {
		c.cache[key.key1] = make(map[string]*node)
	}
	c.cache[key.key1][key.key2] = &node{
		value:   nil,
		deleted: true,
	}
}

// Clear clears the cache
func (c *kvCache) Clear() {
	c.cache = make(map[string]map[string]*node)
}
