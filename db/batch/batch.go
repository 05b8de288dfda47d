// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

// Package batch queues writes against a key-value store so that a whole
// transaction commits in one shot or not at all. CachedBatch adds
// read-your-writes lookups and snapshot/revert on top of the queue.
package batch

import "github.com/pkg/errors"

var (
	// ErrNotExist indicates the key does not exist in the cache
	ErrNotExist = errors.New("key does not exist in cache")
	// ErrAlreadyDeleted indicates the key has been deleted ahead of the lookup
	ErrAlreadyDeleted = errors.New("key has been deleted")
	// ErrAlreadyExist indicates the key already exists in the cache
	ErrAlreadyExist = errors.New("key already exists in cache")
	// ErrOutOfBound indicates an out-of-range access of the write queue
	ErrOutOfBound = errors.New("out of bound")
)

type (
	// KVStoreBatch defines an ordered queue of Put/Delete operations. A store
	// executes the whole queue inside one write transaction.
	KVStoreBatch interface {
		// Lock locks the batch
		Lock()
		// Unlock unlocks the batch
		Unlock()
		// ClearAndUnlock clears the batch and unlocks it
		ClearAndUnlock()
		// Put queues a Put
		Put(string, []byte, []byte, string, ...interface{})
		// Delete queues a Delete
		Delete(string, []byte, string, ...interface{})
		// Size returns the size of the queue
		Size() int
		// Entry returns the i-th queued write
		Entry(int) (*WriteInfo, error)
		// SerializeQueue serializes the whole queue, for digesting
		SerializeQueue() []byte
		// Clear empties the queue
		Clear()
	}

	// CachedBatch adds a local cache with snapshot/revert to a KVStoreBatch
	CachedBatch interface {
		KVStoreBatch
		// Get retrieves a record in the pending writes
		Get(string, []byte) ([]byte, error)
		// Snapshot takes a snapshot of the pending writes
		Snapshot() int
		// Revert drops every write made after the given snapshot
		Revert(int) error
	}
)
