// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package db

import (
	"context"

	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"

	"github.com/tradepost-labs/tradepost-core/db/batch"
	"github.com/tradepost-labs/tradepost-core/pkg/lifecycle"
	"github.com/tradepost-labs/tradepost-core/pkg/log"
)

const _fileMode = 0600

// boltDB is the bolt implementation of KVStore
type boltDB struct {
	db     *bolt.DB
	path   string
	config Config
	ready  lifecycle.Readiness
}

// NewBoltDB instantiates a bolt-backed KVStore
func NewBoltDB(cfg Config) KVStore {
	return &boltDB{
		path:   cfg.DbPath,
		config: cfg,
	}
}

// Start opens the database file
func (b *boltDB) Start(_ context.Context) error {
	db, err := bolt.Open(b.path, _fileMode, nil)
	if err != nil {
		return errors.Wrap(ErrIO, err.Error())
	}
	b.db = db
	return b.ready.TurnOn()
}

// Stop closes the database file
func (b *boltDB) Stop(_ context.Context) error {
	if err := b.ready.TurnOff(); err != nil {
		return err
	}
	if err := b.db.Close(); err != nil {
		return errors.Wrap(ErrIO, err.Error())
	}
	return nil
}

// Put inserts a <key, value> record into the namespace
func (b *boltDB) Put(namespace string, key, value []byte) (err error) {
	if !b.ready.IsReady() {
		return ErrIO
	}
	for c := uint8(0); c < b.config.NumRetries; c++ {
		if err = b.db.Update(func(tx *bolt.Tx) error {
			bucket, err := tx.CreateBucketIfNotExists([]byte(namespace))
			if err != nil {
				return err
			}
			return bucket.Put(key, value)
		}); err == nil {
			break
		}
	}
	if err != nil {
		err = errors.Wrap(ErrIO, err.Error())
	}
	return err
}

// Get retrieves a record from the namespace
func (b *boltDB) Get(namespace string, key []byte) ([]byte, error) {
	if !b.ready.IsReady() {
		return nil, ErrIO
	}
	var value []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(namespace))
		if bucket == nil {
			return errors.Wrapf(ErrBucketNotExist, "bucket = %x", []byte(namespace))
		}
		v := bucket.Get(key)
		if v == nil {
			return errors.Wrapf(ErrNotExist, "key = %x", key)
		}
		value = make([]byte, len(v))
		copy(value, v)
		return nil
	})
	if err == nil {
		return value, nil
	}
	if errors.Cause(err) == ErrBucketNotExist || errors.Cause(err) == ErrNotExist {
		return nil, err
	}
	return nil, errors.Wrap(ErrIO, err.Error())
}

// Delete deletes a record from the namespace
func (b *boltDB) Delete(namespace string, key []byte) (err error) {
	if !b.ready.IsReady() {
		return ErrIO
	}
	for c := uint8(0); c < b.config.NumRetries; c++ {
		if err = b.db.Update(func(tx *bolt.Tx) error {
			bucket := tx.Bucket([]byte(namespace))
			if bucket == nil {
				return nil
			}
			return bucket.Delete(key)
		}); err == nil {
			break
		}
	}
	if err != nil {
		err = errors.Wrap(ErrIO, err.Error())
	}
	return err
}

// WriteBatch commits a whole batch atomically in one bolt transaction
func (b *boltDB) WriteBatch(kvsb batch.KVStoreBatch) (err error) {
	if !b.ready.IsReady() {
		return ErrIO
	}
	kvsb.Lock()
	defer kvsb.ClearAndUnlock()

	for c := uint8(0); c < b.config.NumRetries; c++ {
		if err = b.db.Update(func(tx *bolt.Tx) error {
			for i := 0; i < kvsb.Size(); i++ {
				wi, err := kvsb.Entry(i)
				if err != nil {
					return err
				}
				switch wi.WriteType() {
				case batch.Put:
					bucket, err := tx.CreateBucketIfNotExists([]byte(wi.Namespace()))
					if err != nil {
						return errors.Wrapf(err, wi.ErrorFormat(), wi.ErrorArgs()...)
					}
					if err := bucket.Put(wi.Key(), wi.Value()); err != nil {
						return errors.Wrapf(err, wi.ErrorFormat(), wi.ErrorArgs()...)
					}
				case batch.Delete:
					bucket := tx.Bucket([]byte(wi.Namespace()))
					if bucket == nil {
						continue
					}
					if err := bucket.Delete(wi.Key()); err != nil {
						return errors.Wrapf(err, wi.ErrorFormat(), wi.ErrorArgs()...)
					}
				}
			}
			return nil
		}); err == nil {
			break
		}
	}
	if err != nil {
		log.L().Error("Failed to write batch.", zap.Error(err))
		err = errors.Wrap(ErrIO, err.Error())
	}
	return err
}
