// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package staking

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/tradepost-labs/tradepost-core/action"
	"github.com/tradepost-labs/tradepost-core/action/protocol"
	accountutil "github.com/tradepost-labs/tradepost-core/action/protocol/account"
	"github.com/tradepost-labs/tradepost-core/action/protocol/token"
	"github.com/tradepost-labs/tradepost-core/address"
	"github.com/tradepost-labs/tradepost-core/pkg/hash"
	"github.com/tradepost-labs/tradepost-core/pkg/log"
	"github.com/tradepost-labs/tradepost-core/state"
)

// Pool is the staking pool at the fixed pool address. The emission rate is
// fixed at initialization; the pool's own holding of the reward unit is the
// reward reserve claims pay from.
type Pool struct {
	Admin         hash.Hash160
	RewardUnit    hash.Hash160
	RatePerSecond uint64
	TotalStaked   uint64
}

func loadPool(sr protocol.StateReader) (*Pool, error) {
	var pool Pool
	if err := sr.State(&pool, protocol.NamespaceOption(state.StakingKVNamespace), protocol.AddrKeyOption(protocol.StakePoolAddress())); err != nil {
		if errors.Cause(err) == state.ErrStateNotExist {
			return nil, errors.Wrap(protocol.ErrInvalidState, "stake pool is not initialized")
		}
		return nil, errors.Wrap(err, "failed to load stake pool")
	}
	return &pool, nil
}

func storePool(sm protocol.StateManager, pool *Pool) error {
	return sm.PutState(pool, protocol.NamespaceOption(state.StakingKVNamespace), protocol.AddrKeyOption(protocol.StakePoolAddress()))
}

// initPool creates the staking pool and its reward unit. The caller becomes
// the pool admin and the reward unit's issue authority.
func (p *Protocol) initPool(ctx context.Context, act *action.InitStakePool, sm protocol.StateManager) (*action.Receipt, error) {
	actCtx := protocol.MustGetActionCtx(ctx)
	addr := protocol.StakePoolAddress()
	if _, err := loadPool(sm); err == nil {
		return nil, errors.Wrap(protocol.ErrInvalidState, "stake pool is already initialized")
	} else if errors.Cause(err) != protocol.ErrInvalidState {
		return nil, err
	}
	rewardUnit := protocol.RewardUnitAddress(addr)
	if err := token.CreateUnit(sm, rewardUnit, actCtx.Caller, 0); err != nil {
		return nil, errors.Wrap(err, "failed to create the reward unit")
	}
	pool := Pool{
		Admin:         hash.BytesToHash160(actCtx.Caller.Bytes()),
		RewardUnit:    hash.BytesToHash160(rewardUnit.Bytes()),
		RatePerSecond: act.RatePerSecond(),
	}
	data, err := state.Serialize(&pool)
	if err != nil {
		return nil, err
	}
	establishLog, err := accountutil.Establish(ctx, sm, actCtx.Caller, addr, uint64(len(data)), protocol.CallerAuthority(ctx))
	if err != nil {
		return nil, errors.Wrap(err, "failed to establish the pool account")
	}
	if err := storePool(sm, &pool); err != nil {
		return nil, errors.Wrap(err, "failed to store stake pool")
	}
	log.L().Info("Stake pool initialized.",
		zap.String("admin", actCtx.Caller.String()),
		zap.Uint64("ratePerSecond", act.RatePerSecond()))
	return protocol.NewReceipt(ctx, addr, establishLog), nil
}

// fundRewardPool issues reward units into the pool's own holding, the reserve
// claims pay out of. The pool must exist, and only the admin can fund: the
// admin is the reward unit's issue authority, so the token service enforces
// the gate.
func (p *Protocol) fundRewardPool(ctx context.Context, act *action.FundRewardPool, sm protocol.StateManager) (*action.Receipt, error) {
	pool, err := loadPool(sm)
	if err != nil {
		return nil, err
	}
	poolAddr := protocol.StakePoolAddress()
	rewardUnit, err := address.FromBytes(pool.RewardUnit[:])
	if err != nil {
		return nil, errors.Wrap(err, "corrupt reward unit of the stake pool")
	}
	issueLog, err := token.Issue(sm, rewardUnit, poolAddr, act.Qty(), protocol.CallerAuthority(ctx))
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue into the reward reserve")
	}
	log.L().Info("Reward pool funded.",
		zap.Uint64("qty", act.Qty()),
		zap.Uint64("ratePerSecond", pool.RatePerSecond))
	return protocol.NewReceipt(ctx, poolAddr, issueLog), nil
}
