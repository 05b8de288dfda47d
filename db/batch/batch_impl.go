// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package batch

import (
	"sync"

	"github.com/pkg/errors"
)

type (
	// baseKVStoreBatch is the plain write queue
	baseKVStoreBatch struct {
		mutex      sync.RWMutex
		writeQueue []*WriteInfo
	}

	// cachedBatch adds a layered read cache on top of the write queue. Every
	// snapshot pushes a fresh cache layer and records the queue length, so a
	// revert is a truncation of both.
	cachedBatch struct {
		lock sync.RWMutex
		*baseKVStoreBatch
		tag        int   // snapshots taken so far
		batchShots []int // queue length at the time of each snapshot
		caches     []KVStoreCache
	}
)

// NewBatch returns a KVStoreBatch
func NewBatch() KVStoreBatch {
	return &baseKVStoreBatch{}
}

// Lock takes the batch for exclusive use. Size, Entry and SerializeQueue do
// not lock internally; a store draining the queue holds this lock across the
// whole read-out.
func (b *baseKVStoreBatch) Lock() { b.mutex.Lock() }

func (b *baseKVStoreBatch) Unlock() { b.mutex.Unlock() }

func (b *baseKVStoreBatch) ClearAndUnlock() {
	defer b.mutex.Unlock()
	b.writeQueue = nil
}

// Put queues a Put
func (b *baseKVStoreBatch) Put(namespace string, key, value []byte, errorFormat string, errorArgs ...interface{}) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.batch(Put, namespace, key, value, errorFormat, errorArgs...)
}

// Delete queues a Delete
func (b *baseKVStoreBatch) Delete(namespace string, key []byte, errorFormat string, errorArgs ...interface{}) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.batch(Delete, namespace, key, nil, errorFormat, errorArgs...)
}

// Size returns the size of the write queue, caller holds the lock
func (b *baseKVStoreBatch) Size() int {
	return len(b.writeQueue)
}

// Entry returns the i-th queued write, caller holds the lock
func (b *baseKVStoreBatch) Entry(index int) (*WriteInfo, error) {
	if index < 0 || index >= len(b.writeQueue) {
		return nil, errors.Wrapf(ErrOutOfBound, "index = %d, size = %d", index, len(b.writeQueue))
	}
	return b.writeQueue[index], nil
}

// SerializeQueue serializes the write queue in order, caller holds the lock
func (b *baseKVStoreBatch) SerializeQueue() []byte {
	serialized := make([]byte, 0, 1024)
	for _, wi := range b.writeQueue {
		serialized = append(serialized, wi.Serialize()...)
	}
	return serialized
}

// Clear empties the write queue
func (b *baseKVStoreBatch) Clear() {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.writeQueue = nil
}

// batch appends to the write queue, caller holds the lock
func (b *baseKVStoreBatch) batch(op WriteType, namespace string, key, value []byte, errorFormat string, errorArgs ...interface{}) {
	b.writeQueue = append(b.writeQueue, NewWriteInfo(op, namespace, key, value, errorFormat, errorArgs...))
}

func (b *baseKVStoreBatch) truncate(size int) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.writeQueue = b.writeQueue[:size]
}

// NewCachedBatch returns a CachedBatch
func NewCachedBatch() CachedBatch {
	return &cachedBatch{
		baseKVStoreBatch: &baseKVStoreBatch{},
		caches:           []KVStoreCache{NewKVCache()},
	}
}

func (cb *cachedBatch) currentCache() KVStoreCache {
	return cb.caches[len(cb.caches)-1]
}

// Put queues a Put and records it into the top cache layer
func (cb *cachedBatch) Put(namespace string, key, value []byte, errorFormat string, errorArgs ...interface{}) {
	cb.lock.Lock()
	defer cb.lock.Unlock()
	cb.currentCache().Write(&kvCacheKey{namespace, string(key)}, value)
	cb.baseKVStoreBatch.Put(namespace, key, value, errorFormat, errorArgs...)
}

// Delete queues a Delete and marks the key deleted in the top cache layer
func (cb *cachedBatch) Delete(namespace string, key []byte, errorFormat string, errorArgs ...interface{}) {
	cb.lock.Lock()
	defer cb.lock.Unlock()
	cb.currentCache().Evict(&kvCacheKey{namespace, string(key)})
	cb.baseKVStoreBatch.Delete(namespace, key, errorFormat, errorArgs...)
}

// Get looks the key up across the cache layers, latest layer first
func (cb *cachedBatch) Get(namespace string, key []byte) ([]byte, error) {
	cb.lock.RLock()
	defer cb.lock.RUnlock()
	cacheKey := kvCacheKey{namespace, string(key)}
	var (
		v   []byte
		err error
	)
	for i := len(cb.caches) - 1; i >= 0; i-- {
		if v, err = cb.caches[i].Read(&cacheKey); errors.Cause(err) != ErrNotExist {
			break
		}
	}
	return v, err
}

// Snapshot takes a snapshot of the pending writes
func (cb *cachedBatch) Snapshot() int {
	cb.lock.Lock()
	defer cb.lock.Unlock()
	defer func() { cb.tag++ }()
	cb.batchShots = append(cb.batchShots, cb.baseKVStoreBatch.Size())
	cb.caches = append(cb.caches, NewKVCache())
	return cb.tag
}

// Revert drops every write made after the given snapshot
func (cb *cachedBatch) Revert(snapshot int) error {
	cb.lock.Lock()
	defer cb.lock.Unlock()
	if snapshot < 0 || snapshot >= cb.tag {
		return errors.Wrapf(ErrOutOfBound, "invalid snapshot number = %d, current number = %d", snapshot, cb.tag)
	}
	cb.tag = snapshot
	cb.baseKVStoreBatch.truncate(cb.batchShots[snapshot])
	cb.batchShots = cb.batchShots[:snapshot]
	cb.caches = cb.caches[:snapshot+1]
	return nil
}

// Clear empties the write queue and resets the cache layers
func (cb *cachedBatch) Clear() {
	cb.lock.Lock()
	defer cb.lock.Unlock()
	cb.baseKVStoreBatch.Clear()
	cb.tag = 0
	cb.batchShots = nil
	cb.caches = []KVStoreCache{NewKVCache()}
}
