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
	"github.com/tradepost-labs/tradepost-core/action/protocol/market"
	"github.com/tradepost-labs/tradepost-core/action/protocol/metadata"
	"github.com/tradepost-labs/tradepost-core/action/protocol/token"
	"github.com/tradepost-labs/tradepost-core/address"
	"github.com/tradepost-labs/tradepost-core/pkg/hash"
	"github.com/tradepost-labs/tradepost-core/pkg/log"
	"github.com/tradepost-labs/tradepost-core/pkg/util/mathutil"
	"github.com/tradepost-labs/tradepost-core/state"
)

// StakeRecord tracks one staked item. Owner and Item are the derivation
// seeds; the record's own address custodies the staked unit, so returning the
// item needs the record's self-authority, not the pool's. MultiplierBps is a
// snapshot: later item-type changes leave running stakes untouched.
type StakeRecord struct {
	Owner         hash.Hash160
	Item          hash.Hash160
	ItemType      hash.Hash160
	Pool          hash.Hash160
	StakeTime     int64
	LastClaim     int64
	MultiplierBps uint64
}

func loadStakeRecord(sr protocol.StateReader, addr address.Address) (*StakeRecord, error) {
	var rec StakeRecord
	if err := sr.State(&rec, protocol.NamespaceOption(state.StakingKVNamespace), protocol.AddrKeyOption(addr)); err != nil {
		if errors.Cause(err) == state.ErrStateNotExist {
			return nil, errors.Wrapf(protocol.ErrInvalidState, "stake record %s does not exist", addr)
		}
		return nil, errors.Wrapf(err, "failed to load stake record %s", addr)
	}
	return &rec, nil
}

func storeStakeRecord(sm protocol.StateManager, addr address.Address, rec *StakeRecord) error {
	return sm.PutState(rec, protocol.NamespaceOption(state.StakingKVNamespace), protocol.AddrKeyOption(addr))
}

// stakeItem locks one unit of a verified collection member into the stake
// record's custody and starts accrual
func (p *Protocol) stakeItem(ctx context.Context, act *action.StakeItem, sm protocol.StateManager) (*action.Receipt, error) {
	actCtx := protocol.MustGetActionCtx(ctx)
	blkCtx := protocol.MustGetBlockCtx(ctx)
	pool, err := loadPool(sm)
	if err != nil {
		return nil, err
	}
	held, err := token.Balance(sm, act.Item(), actCtx.Caller)
	if err != nil {
		return nil, err
	}
	if held < 1 {
		return nil, errors.Wrapf(protocol.ErrUnauthorized, "%s does not hold item %s", actCtx.Caller, act.Item())
	}
	member, err := metadata.BelongsTo(sm, act.Item(), act.Collection())
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, errors.Wrapf(protocol.ErrInvalidInput, "item %s is not a verified member of collection %s", act.Item(), act.Collection())
	}
	it, err := market.LoadItemType(sm, act.ItemType())
	if err != nil {
		return nil, err
	}
	if it.Collection != hash.BytesToHash160(act.Collection().Bytes()) {
		return nil, errors.Wrapf(protocol.ErrInvalidInput, "item type %s does not belong to collection %s", act.ItemType(), act.Collection())
	}
	recordAddr := protocol.StakeRecordAddress(actCtx.Caller, act.Item())
	if _, err := loadStakeRecord(sm, recordAddr); err == nil {
		return nil, errors.Wrapf(protocol.ErrInvalidState, "item %s is already staked", act.Item())
	} else if errors.Cause(err) != protocol.ErrInvalidState {
		return nil, err
	}
	now := blkCtx.BlockTimeStamp.Unix()
	rec := StakeRecord{
		Owner:         hash.BytesToHash160(actCtx.Caller.Bytes()),
		Item:          hash.BytesToHash160(act.Item().Bytes()),
		ItemType:      hash.BytesToHash160(act.ItemType().Bytes()),
		Pool:          hash.BytesToHash160(protocol.StakePoolAddress().Bytes()),
		StakeTime:     now,
		LastClaim:     now,
		MultiplierBps: it.MultiplierBps,
	}
	data, err := state.Serialize(&rec)
	if err != nil {
		return nil, err
	}
	callerAuth := protocol.CallerAuthority(ctx)
	establishLog, err := accountutil.Establish(ctx, sm, actCtx.Caller, recordAddr, uint64(len(data)), callerAuth)
	if err != nil {
		return nil, errors.Wrap(err, "failed to establish the stake record account")
	}
	custodyLog, err := token.Transfer(sm, act.Item(), actCtx.Caller, recordAddr, 1, callerAuth)
	if err != nil {
		return nil, errors.Wrap(err, "failed to move the item into custody")
	}
	if err := storeStakeRecord(sm, recordAddr, &rec); err != nil {
		return nil, errors.Wrapf(err, "failed to store stake record %s", recordAddr)
	}
	pool.TotalStaked = mathutil.AddSaturate(pool.TotalStaked, 1)
	if err := storePool(sm, pool); err != nil {
		return nil, errors.Wrap(err, "failed to store stake pool")
	}
	log.L().Info("Item staked.",
		zap.String("item", act.Item().String()),
		zap.String("owner", actCtx.Caller.String()),
		zap.Uint64("multiplierBps", it.MultiplierBps))
	return protocol.NewReceipt(ctx, recordAddr, establishLog, custodyLog), nil
}

// payReward settles the reward accrued since the record's last claim. A zero
// reward pays nothing and returns a nil log.
func payReward(sm protocol.StateManager, pool *Pool, rec *StakeRecord, now int64, staker address.Address) (*action.TransactionLog, uint64, error) {
	reward := accruedReward(now, rec.LastClaim, pool.RatePerSecond, rec.MultiplierBps)
	if reward == 0 {
		return nil, 0, nil
	}
	poolAddr := protocol.StakePoolAddress()
	rewardUnit := protocol.RewardUnitAddress(poolAddr)
	tLog, err := token.Transfer(sm, rewardUnit, poolAddr, staker, reward, protocol.EntityAuthority(poolAddr))
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to pay the accrued reward")
	}
	tLog.Type = action.RewardPayoutLog
	return tLog, reward, nil
}

// claimRewards pays the accrued reward and advances the last-claim time. A
// zero reward is a silent no-op, not an error.
func (p *Protocol) claimRewards(ctx context.Context, act *action.ClaimRewards, sm protocol.StateManager) (*action.Receipt, error) {
	actCtx := protocol.MustGetActionCtx(ctx)
	blkCtx := protocol.MustGetBlockCtx(ctx)
	pool, err := loadPool(sm)
	if err != nil {
		return nil, err
	}
	recordAddr := protocol.StakeRecordAddress(actCtx.Caller, act.Item())
	rec, err := loadStakeRecord(sm, recordAddr)
	if err != nil {
		return nil, err
	}
	if rec.Owner != hash.BytesToHash160(actCtx.Caller.Bytes()) {
		return nil, errors.Wrapf(protocol.ErrUnauthorized, "caller %s does not own stake record %s", actCtx.Caller, recordAddr)
	}
	now := blkCtx.BlockTimeStamp.Unix()
	payoutLog, reward, err := payReward(sm, pool, rec, now, actCtx.Caller)
	if err != nil {
		return nil, err
	}
	if reward > 0 {
		rec.LastClaim = now
		if err := storeStakeRecord(sm, recordAddr, rec); err != nil {
			return nil, errors.Wrapf(err, "failed to store stake record %s", recordAddr)
		}
		log.L().Info("Rewards claimed.",
			zap.String("owner", actCtx.Caller.String()),
			zap.Uint64("reward", reward))
	}
	return protocol.NewReceipt(ctx, recordAddr, payoutLog), nil
}

// unstakeItem pays the final reward, returns the custodied item to its owner
// under the record's self-authority and destroys the record
func (p *Protocol) unstakeItem(ctx context.Context, act *action.UnstakeItem, sm protocol.StateManager) (*action.Receipt, error) {
	actCtx := protocol.MustGetActionCtx(ctx)
	blkCtx := protocol.MustGetBlockCtx(ctx)
	pool, err := loadPool(sm)
	if err != nil {
		return nil, err
	}
	recordAddr := protocol.StakeRecordAddress(actCtx.Caller, act.Item())
	rec, err := loadStakeRecord(sm, recordAddr)
	if err != nil {
		return nil, err
	}
	if rec.Owner != hash.BytesToHash160(actCtx.Caller.Bytes()) {
		return nil, errors.Wrapf(protocol.ErrUnauthorized, "caller %s does not own stake record %s", actCtx.Caller, recordAddr)
	}
	now := blkCtx.BlockTimeStamp.Unix()
	payoutLog, reward, err := payReward(sm, pool, rec, now, actCtx.Caller)
	if err != nil {
		return nil, err
	}
	selfAuth := protocol.EntityAuthority(recordAddr)
	returnLog, err := token.Transfer(sm, act.Item(), recordAddr, actCtx.Caller, 1, selfAuth)
	if err != nil {
		return nil, errors.Wrap(err, "failed to return the custodied item")
	}
	closeLog, err := accountutil.Close(sm, recordAddr, actCtx.Caller, selfAuth)
	if err != nil {
		return nil, errors.Wrap(err, "failed to close the stake record account")
	}
	if err := sm.DelState(protocol.NamespaceOption(state.StakingKVNamespace), protocol.AddrKeyOption(recordAddr)); err != nil {
		return nil, errors.Wrapf(err, "failed to delete stake record %s", recordAddr)
	}
	pool.TotalStaked = mathutil.SubSaturate(pool.TotalStaked, 1)
	if err := storePool(sm, pool); err != nil {
		return nil, errors.Wrap(err, "failed to store stake pool")
	}
	log.L().Info("Item unstaked.",
		zap.String("item", act.Item().String()),
		zap.String("owner", actCtx.Caller.String()),
		zap.Uint64("finalReward", reward))
	return protocol.NewReceipt(ctx, recordAddr, payoutLog, returnLog, closeLog), nil
}
