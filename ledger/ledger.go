// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

// Package ledger is the embedded runtime: it serializes operations, samples
// the clock once per operation, dispatches through the protocol registry and
// commits the working set atomically. A failed operation leaves no trace.
package ledger

import (
	"context"
	"strconv"
	"sync"

	"github.com/facebookgo/clock"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/tradepost-labs/tradepost-core/action"
	"github.com/tradepost-labs/tradepost-core/action/protocol"
	accountutil "github.com/tradepost-labs/tradepost-core/action/protocol/account"
	"github.com/tradepost-labs/tradepost-core/action/protocol/arena"
	"github.com/tradepost-labs/tradepost-core/action/protocol/funding"
	"github.com/tradepost-labs/tradepost-core/action/protocol/market"
	"github.com/tradepost-labs/tradepost-core/action/protocol/staking"
	"github.com/tradepost-labs/tradepost-core/address"
	"github.com/tradepost-labs/tradepost-core/config"
	"github.com/tradepost-labs/tradepost-core/pkg/lifecycle"
	"github.com/tradepost-labs/tradepost-core/pkg/log"
	"github.com/tradepost-labs/tradepost-core/pkg/prometheustimer"
	"github.com/tradepost-labs/tradepost-core/state"
	"github.com/tradepost-labs/tradepost-core/state/factory"
)

// Ledger executes one operation at a time against the state factory
type Ledger struct {
	mutex        sync.Mutex
	lifecycle    lifecycle.Lifecycle
	cfg          config.Config
	registry     *protocol.Registry
	sf           factory.Factory
	clk          clock.Clock
	timerFactory *prometheustimer.TimerFactory
}

// Option sets a ledger construction parameter
type Option func(*Ledger) error

// ClockOption overrides the real clock, used by tests to drive accrual
func ClockOption(clk clock.Clock) Option {
	return func(l *Ledger) error {
		l.clk = clk
		return nil
	}
}

// NewBuiltinRegistry returns a registry with the four built-in protocols
func NewBuiltinRegistry() (*protocol.Registry, error) {
	registry := protocol.NewRegistry()
	if err := registry.Register(protocol.MarketProtocolID, market.NewProtocol()); err != nil {
		return nil, err
	}
	if err := registry.Register(protocol.ArenaProtocolID, arena.NewProtocol()); err != nil {
		return nil, err
	}
	if err := registry.Register(protocol.FundingProtocolID, funding.NewProtocol()); err != nil {
		return nil, err
	}
	if err := registry.Register(protocol.StakingProtocolID, staking.NewProtocol()); err != nil {
		return nil, err
	}
	return registry, nil
}

// NewLedger creates a ledger over the given factory and protocol registry
func NewLedger(cfg config.Config, sf factory.Factory, registry *protocol.Registry, opts ...Option) (*Ledger, error) {
	if sf == nil {
		return nil, errors.New("state factory is required")
	}
	if registry == nil {
		return nil, errors.New("protocol registry is required")
	}
	l := &Ledger{
		cfg:      cfg,
		registry: registry,
		sf:       sf,
		clk:      clock.New(),
	}
	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}
	timerFactory, err := prometheustimer.New(
		"tradepost_ledger_perf",
		"Performance of ledger operations",
		[]string{"topic", "chainID"},
		[]string{"default", strconv.FormatUint(uint64(cfg.Ledger.ChainID), 10)},
	)
	if err != nil {
		log.L().Error("Failed to generate prometheus timer factory.", zap.Error(err))
	}
	l.timerFactory = timerFactory
	l.lifecycle.Add(l.sf)
	return l, nil
}

// Start starts the ledger and its owned resources
func (l *Ledger) Start(ctx context.Context) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return l.lifecycle.OnStart(ctx)
}

// Stop stops the ledger and its owned resources
func (l *Ledger) Stop(ctx context.Context) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return l.lifecycle.OnStop(ctx)
}

// Height returns the committed operation height
func (l *Ledger) Height() (uint64, error) {
	return l.sf.Height()
}

// ReadState reads a committed state
func (l *Ledger) ReadState(s interface{}, opts ...protocol.StateOption) error {
	return l.sf.State(s, opts...)
}

// AccountOf returns the committed account of an address; missing reads empty
func (l *Ledger) AccountOf(addr address.Address) (*state.Account, error) {
	return accountutil.LoadAccount(l.sf, addr)
}

// PerformOperation validates and executes one action on behalf of the caller,
// commits it as the next height and returns its receipt. The clock is read
// exactly once; every time-based computation inside the operation sees that
// single reading. On any error the operation has no observable effect.
func (l *Ledger) PerformOperation(ctx context.Context, caller address.Address, act action.Action) (*action.Receipt, error) {
	if caller == nil {
		return nil, errors.Wrap(address.ErrInvalidAddr, "nil caller")
	}
	for _, p := range l.registry.All() {
		if err := p.Validate(ctx, act); err != nil {
			return nil, errors.Wrap(err, "action validation failed")
		}
	}

	l.mutex.Lock()
	defer l.mutex.Unlock()
	timer := l.timerFactory.NewTimer("PerformOperation")
	defer timer.End()

	height, err := l.sf.Height()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read the committed height")
	}
	callerAcct, err := accountutil.LoadAccount(l.sf, caller)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load the account of caller %s", caller)
	}
	act.SetNonce(callerAcct.Nonce + 1)

	runCtx := protocol.WithGenesisCtx(ctx, l.cfg.Genesis)
	runCtx = protocol.WithBlockCtx(runCtx, protocol.BlockCtx{
		BlockHeight:    height + 1,
		BlockTimeStamp: l.clk.Now(),
	})
	runCtx = protocol.WithActionCtx(runCtx, protocol.ActionCtx{
		Caller:     caller,
		ActionHash: action.Hash(act),
		Nonce:      act.Nonce(),
	})

	ws, err := l.sf.NewWorkingSet()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create a working set")
	}
	receipt, err := ws.RunAction(runCtx, act)
	if err != nil {
		// the working set is discarded; nothing committed
		return nil, err
	}
	if err := l.sf.Commit(ws); err != nil {
		return nil, errors.Wrap(err, "failed to commit the operation")
	}
	log.L().Debug("Operation committed.",
		zap.Uint64("height", receipt.BlockHeight),
		zap.String("caller", caller.String()),
		zap.String("entity", receipt.EntityAddress))
	return receipt, nil
}
