// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package factory

import (
	"context"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tradepost-labs/tradepost-core/action"
	"github.com/tradepost-labs/tradepost-core/action/protocol"
	accountutil "github.com/tradepost-labs/tradepost-core/action/protocol/account"
	"github.com/tradepost-labs/tradepost-core/db"
	"github.com/tradepost-labs/tradepost-core/db/batch"
	"github.com/tradepost-labs/tradepost-core/pkg/util/byteutil"
	"github.com/tradepost-labs/tradepost-core/state"
)

var (
	stateDBMtc = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tradepost_state_db",
			Help: "Tradepost state db statistics",
		},
		[]string{"type"},
	)
	dbBatchSizeMtc = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "tradepost_db_batch_size",
			Help: "Tradepost DB batch size",
		},
		[]string{},
	)
)

func init() {
	prometheus.MustRegister(stateDBMtc)
	prometheus.MustRegister(dbBatchSizeMtc)
}

// workingSet tracks the pending changes one operation makes in a local cache
type workingSet struct {
	height    uint64
	finalized bool
	dao       db.KVStore
	cb        batch.CachedBatch
	registry  *protocol.Registry
}

func newWorkingSet(height uint64, kv db.KVStore, registry *protocol.Registry) *workingSet {
	return &workingSet{
		height:   height,
		dao:      kv,
		cb:       batch.NewCachedBatch(),
		registry: registry,
	}
}

// Height returns the height the working set is building
func (ws *workingSet) Height() (uint64, error) {
	return ws.height, nil
}

// RunAction dispatches the action to the registered protocols. Exactly one
// protocol owns any given action type; the rest pass with a nil receipt.
func (ws *workingSet) RunAction(ctx context.Context, act action.Action) (*action.Receipt, error) {
	if ws.finalized {
		return nil, errors.Errorf("cannot run action on a finalized working set")
	}
	blkCtx := protocol.MustGetBlockCtx(ctx)
	if blkCtx.BlockHeight != ws.height {
		return nil, errors.Errorf("invalid block height %d, %d expected", blkCtx.BlockHeight, ws.height)
	}
	if ws.registry == nil {
		return nil, errors.New("protocol registry is not set")
	}
	actionCtx := protocol.MustGetActionCtx(ctx)
	for _, p := range ws.registry.All() {
		receipt, err := p.Handle(ctx, act, ws)
		if err != nil {
			return nil, errors.Wrapf(
				err,
				"error when action %x (nonce: %d) from %s mutates states",
				actionCtx.ActionHash,
				act.Nonce(),
				actionCtx.Caller.String(),
			)
		}
		if receipt != nil {
			if err := ws.advanceNonce(actionCtx, act); err != nil {
				return nil, err
			}
			return receipt, nil
		}
	}
	return nil, errors.Wrapf(action.ErrAction, "no handler for action type %T", act)
}

// advanceNonce records the executed nonce on the caller account
func (ws *workingSet) advanceNonce(actionCtx protocol.ActionCtx, act action.Action) error {
	caller, err := accountutil.LoadOrCreateAccount(ws, actionCtx.Caller)
	if err != nil {
		return errors.Wrapf(err, "failed to load the account of caller %s", actionCtx.Caller.String())
	}
	accountutil.SetNonce(act, caller)
	return accountutil.StoreAccount(ws, actionCtx.Caller, caller)
}

// Finalize seals the working set and stamps the height it commits as
func (ws *workingSet) Finalize() error {
	if ws.finalized {
		return errors.New("cannot finalize a working set twice")
	}
	ws.cb.Put(
		state.AccountKVNamespace,
		[]byte(state.CurrentHeightKey),
		byteutil.Uint64ToBytes(ws.height),
		"failed to store the current height",
	)
	ws.finalized = true
	return nil
}

// Commit persists all pending changes into the DB in one batch
func (ws *workingSet) Commit() error {
	if !ws.finalized {
		return errors.New("cannot commit a working set which has not been finalized")
	}
	dbBatchSizeMtc.WithLabelValues().Set(float64(ws.cb.Size()))
	if err := ws.dao.WriteBatch(ws.cb); err != nil {
		return errors.Wrap(err, "failed to commit all changes to underlying DB in a batch")
	}
	return nil
}

// Snapshot takes a snapshot of the pending changes
func (ws *workingSet) Snapshot() int { return ws.cb.Snapshot() }

// Revert drops every change made after the given snapshot
func (ws *workingSet) Revert(snapshot int) error { return ws.cb.Revert(snapshot) }

// State reads a state from the pending changes, falling back to the DB
func (ws *workingSet) State(s interface{}, opts ...protocol.StateOption) error {
	stateDBMtc.WithLabelValues("get").Inc()
	cfg, err := protocol.CreateStateConfig(opts...)
	if err != nil {
		return err
	}
	data, err := ws.cb.Get(cfg.Namespace, cfg.Key)
	if errors.Cause(err) == batch.ErrNotExist {
		if data, err = ws.dao.Get(cfg.Namespace, cfg.Key); errors.Cause(err) == db.ErrNotExist || errors.Cause(err) == db.ErrBucketNotExist {
			return errors.Wrapf(state.ErrStateNotExist, "state of %x doesn't exist", cfg.Key)
		}
	}
	if errors.Cause(err) == batch.ErrAlreadyDeleted {
		return errors.Wrapf(state.ErrStateNotExist, "state of %x doesn't exist", cfg.Key)
	}
	if err != nil {
		return errors.Wrapf(err, "failed to get state of %x", cfg.Key)
	}
	return state.Deserialize(s, data)
}

// PutState puts a state into the pending changes
func (ws *workingSet) PutState(s interface{}, opts ...protocol.StateOption) error {
	stateDBMtc.WithLabelValues("put").Inc()
	cfg, err := protocol.CreateStateConfig(opts...)
	if err != nil {
		return err
	}
	data, err := state.Serialize(s)
	if err != nil {
		return errors.Wrapf(err, "failed to convert state %v to bytes", s)
	}
	ws.cb.Put(cfg.Namespace, cfg.Key, data, "error when putting k = %x", cfg.Key)
	return nil
}

// DelState deletes a state from the pending changes
func (ws *workingSet) DelState(opts ...protocol.StateOption) error {
	stateDBMtc.WithLabelValues("delete").Inc()
	cfg, err := protocol.CreateStateConfig(opts...)
	if err != nil {
		return err
	}
	ws.cb.Delete(cfg.Namespace, cfg.Key, "error when deleting k = %x", cfg.Key)
	return nil
}
