// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

// Package db provides the namespaced key-value stores the ledger persists
// into: an in-memory store for tests and light usage, and a bolt-backed store
// for durable deployments. A store executes a whole write batch inside one
// transaction, which is what makes ledger operations all-or-nothing.
package db

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/tradepost-labs/tradepost-core/db/batch"
	"github.com/tradepost-labs/tradepost-core/pkg/lifecycle"
)

var (
	// ErrBucketNotExist indicates the namespace does not exist
	ErrBucketNotExist = errors.New("bucket does not exist")
	// ErrNotExist indicates the key does not exist
	ErrNotExist = errors.New("key does not exist")
	// ErrIO indicates an I/O failure of the underlying store
	ErrIO = errors.New("database I/O operation error")
)

// KVStore is a namespaced key-value store
type KVStore interface {
	lifecycle.StartStopper

	// Put inserts a <key, value> record into the namespace
	Put(string, []byte, []byte) error
	// Get retrieves a record from the namespace
	Get(string, []byte) ([]byte, error)
	// Delete deletes a record from the namespace
	Delete(string, []byte) error
	// WriteBatch commits a whole batch atomically
	WriteBatch(batch.KVStoreBatch) error
}

const _keyDelimiter = "."

// memKVStore is the in-memory implementation of KVStore
type memKVStore struct {
	data   sync.Map
	bucket sync.Map
}

// NewMemKVStore instantiates an in-memory KVStore
func NewMemKVStore() KVStore {
	return &memKVStore{}
}

func (m *memKVStore) Start(_ context.Context) error { return nil }

func (m *memKVStore) Stop(_ context.Context) error { return nil }

func (m *memKVStore) Put(namespace string, key, value []byte) error {
	m.bucket.Store(namespace, struct{}{})
	m.data.Store(namespace+_keyDelimiter+string(key), value)
	return nil
}

func (m *memKVStore) Get(namespace string, key []byte) ([]byte, error) {
	if _, ok := m.bucket.Load(namespace); !ok {
		return nil, errors.Wrapf(ErrBucketNotExist, "namespace = %s", namespace)
	}
	value, ok := m.data.Load(namespace + _keyDelimiter + string(key))
	if !ok {
		return nil, errors.Wrapf(ErrNotExist, "key = %x", key)
	}
	return value.([]byte), nil
}

func (m *memKVStore) Delete(namespace string, key []byte) error {
	m.data.Delete(namespace + _keyDelimiter + string(key))
	return nil
}

func (m *memKVStore) WriteBatch(kvsb batch.KVStoreBatch) error {
	kvsb.Lock()
	defer kvsb.ClearAndUnlock()
	for i := 0; i < kvsb.Size(); i++ {
		wi, err := kvsb.Entry(i)
		if err != nil {
			return err
		}
		switch wi.WriteType() {
		case batch.Put:
			if err := m.Put(wi.Namespace(), wi.Key(), wi.Value()); err != nil {
				return errors.Wrapf(err, wi.ErrorFormat(), wi.ErrorArgs()...)
			}
		case batch.Delete:
			if err := m.Delete(wi.Namespace(), wi.Key()); err != nil {
				return errors.Wrapf(err, wi.ErrorFormat(), wi.ErrorArgs()...)
			}
		}
	}
	return nil
}
