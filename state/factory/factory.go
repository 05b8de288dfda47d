// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

// Package factory tracks changes to ledger state and batch-commits them to
// the underlying DB. A working set buffers every write an operation makes so
// that the whole operation lands atomically or not at all.
package factory

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/tradepost-labs/tradepost-core/action"
	"github.com/tradepost-labs/tradepost-core/action/protocol"
	"github.com/tradepost-labs/tradepost-core/address"
	"github.com/tradepost-labs/tradepost-core/config"
	"github.com/tradepost-labs/tradepost-core/db"
	"github.com/tradepost-labs/tradepost-core/pkg/lifecycle"
	"github.com/tradepost-labs/tradepost-core/pkg/log"
	"github.com/tradepost-labs/tradepost-core/pkg/prometheustimer"
	"github.com/tradepost-labs/tradepost-core/pkg/util/byteutil"
	"github.com/tradepost-labs/tradepost-core/state"
)

type (
	// Factory defines an interface for managing states
	Factory interface {
		lifecycle.StartStopper
		protocol.StateReader
		// NewWorkingSet creates a working set on top of the committed states
		NewWorkingSet() (WorkingSet, error)
		// Commit persists a working set as the next height
		Commit(WorkingSet) error
	}

	// WorkingSet defines an interface for a batch of state changes that
	// commit together or not at all
	WorkingSet interface {
		protocol.StateManager
		// RunAction dispatches one action to the registered protocols and
		// tracks the pending changes
		RunAction(context.Context, action.Action) (*action.Receipt, error)
		// Finalize seals the working set against further actions
		Finalize() error
		// Commit flushes the pending changes to the underlying DB
		Commit() error
	}

	// stateDB implements Factory, tracks changes to ledger state and batch-commits to DB
	stateDB struct {
		mutex              sync.RWMutex
		currentChainHeight uint64
		cfg                config.Config
		registry           *protocol.Registry
		dao                db.KVStore // the underlying DB for state storage
		timerFactory       *prometheustimer.TimerFactory
	}
)

// StateDBOption sets stateDB construction parameter
type StateDBOption func(*stateDB, config.Config) error

// PrecreatedStateDBOption uses a pre-created DB for the state db
func PrecreatedStateDBOption(kv db.KVStore) StateDBOption {
	return func(sdb *stateDB, cfg config.Config) error {
		if kv == nil {
			return errors.New("Invalid empty state db")
		}
		sdb.dao = kv
		return nil
	}
}

// DefaultStateDBOption creates a DB from config for the state db
func DefaultStateDBOption() StateDBOption {
	return func(sdb *stateDB, cfg config.Config) error {
		if len(cfg.DB.DbPath) == 0 {
			return errors.New("Invalid empty state db path")
		}
		sdb.dao = db.NewBoltDB(cfg.DB)
		return nil
	}
}

// InMemStateDBOption creates an in-memory DB for the state db
func InMemStateDBOption() StateDBOption {
	return func(sdb *stateDB, cfg config.Config) error {
		sdb.dao = db.NewMemKVStore()
		return nil
	}
}

// RegistryStateDBOption sets the protocol registry consulted when running actions
func RegistryStateDBOption(reg *protocol.Registry) StateDBOption {
	return func(sdb *stateDB, cfg config.Config) error {
		sdb.registry = reg
		return nil
	}
}

// NewStateDB creates a new state db
func NewStateDB(cfg config.Config, opts ...StateDBOption) (Factory, error) {
	sdb := stateDB{
		currentChainHeight: 0,
		cfg:                cfg,
	}
	for _, opt := range opts {
		if err := opt(&sdb, cfg); err != nil {
			log.S().Errorf("Failed to execute state db creation option %p: %v", opt, err)
			return nil, err
		}
	}
	if sdb.dao == nil {
		return nil, errors.New("failed to create state db: no DB option given")
	}
	timerFactory, err := prometheustimer.New(
		"tradepost_statefactory_perf",
		"Performance of state factory module",
		[]string{"topic", "chainID"},
		[]string{"default", strconv.FormatUint(uint64(cfg.Ledger.ChainID), 10)},
	)
	if err != nil {
		log.L().Error("Failed to generate prometheus timer factory.", zap.Error(err))
	}
	sdb.timerFactory = timerFactory
	return &sdb, nil
}

func (sdb *stateDB) Start(ctx context.Context) error {
	sdb.mutex.Lock()
	defer sdb.mutex.Unlock()
	if err := sdb.dao.Start(ctx); err != nil {
		return err
	}
	h, err := sdb.dao.Get(state.AccountKVNamespace, []byte(state.CurrentHeightKey))
	switch errors.Cause(err) {
	case nil:
		sdb.currentChainHeight = byteutil.BytesToUint64(h)
		return nil
	case db.ErrNotExist, db.ErrBucketNotExist:
		return sdb.createGenesisStates()
	default:
		return errors.Wrap(err, "failed to get the height of the underlying DB")
	}
}

func (sdb *stateDB) Stop(ctx context.Context) error {
	sdb.mutex.Lock()
	defer sdb.mutex.Unlock()
	return sdb.dao.Stop(ctx)
}

// Height returns the height of the committed states
func (sdb *stateDB) Height() (uint64, error) {
	sdb.mutex.RLock()
	defer sdb.mutex.RUnlock()
	return sdb.currentChainHeight, nil
}

// State reads a committed state
func (sdb *stateDB) State(s interface{}, opts ...protocol.StateOption) error {
	sdb.mutex.RLock()
	defer sdb.mutex.RUnlock()
	cfg, err := protocol.CreateStateConfig(opts...)
	if err != nil {
		return err
	}
	stateDBMtc.WithLabelValues("get").Inc()
	data, err := sdb.dao.Get(cfg.Namespace, cfg.Key)
	switch errors.Cause(err) {
	case nil:
		return state.Deserialize(s, data)
	case db.ErrNotExist, db.ErrBucketNotExist:
		return errors.Wrapf(state.ErrStateNotExist, "state of %x doesn't exist", cfg.Key)
	}
	return errors.Wrapf(err, "error when getting the state of %x", cfg.Key)
}

// NewWorkingSet creates a working set building on top of the committed states
func (sdb *stateDB) NewWorkingSet() (WorkingSet, error) {
	sdb.mutex.RLock()
	defer sdb.mutex.RUnlock()
	return newWorkingSet(sdb.currentChainHeight+1, sdb.dao, sdb.registry), nil
}

// Commit persists all changes of the working set into the DB
func (sdb *stateDB) Commit(ws WorkingSet) error {
	if ws == nil {
		return errors.New("working set doesn't exist")
	}
	sdb.mutex.Lock()
	defer sdb.mutex.Unlock()
	timer := sdb.timerFactory.NewTimer("Commit")
	defer timer.End()
	height, err := ws.Height()
	if err != nil {
		return err
	}
	if height != sdb.currentChainHeight+1 {
		// another working set with the same version already committed
		return errors.Errorf(
			"working set height %d doesn't build on current height %d",
			height,
			sdb.currentChainHeight,
		)
	}
	if err := ws.Finalize(); err != nil {
		return errors.Wrap(err, "failed to finalize working set")
	}
	if err := ws.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit working set")
	}
	sdb.currentChainHeight = height
	return nil
}

// createGenesisStates seeds the balances the genesis declares and commits
// them as height zero
func (sdb *stateDB) createGenesisStates() error {
	ws := newWorkingSet(0, sdb.dao, sdb.registry)
	addrs := make([]string, 0, len(sdb.cfg.Genesis.InitBalances))
	for addr := range sdb.cfg.Genesis.InitBalances {
		addrs = append(addrs, addr)
	}
	sort.Strings(addrs)
	for _, encoded := range addrs {
		addr, err := address.FromString(encoded)
		if err != nil {
			return errors.Wrapf(err, "failed to parse genesis address %s", encoded)
		}
		account := state.EmptyAccount()
		account.Balance = sdb.cfg.Genesis.InitBalances[encoded]
		if err := ws.PutState(&account, protocol.AddrKeyOption(addr)); err != nil {
			return errors.Wrapf(err, "failed to seed genesis balance of %s", encoded)
		}
	}
	if err := ws.Finalize(); err != nil {
		return errors.Wrap(err, "failed to finalize genesis states")
	}
	if err := ws.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit genesis states")
	}
	sdb.currentChainHeight = 0
	log.L().Info("Seeded genesis states.", zap.Int("accounts", len(addrs)))
	return nil
}
