// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

// Package staking implements the time-accrual reward ledger: items from a
// verified collection lock into per-record custody and accrue reward units
// linearly with time, scaled by the multiplier snapshotted at stake time.
// All reward math saturates instead of wrapping.
package staking

import (
	"context"

	"github.com/tradepost-labs/tradepost-core/action"
	"github.com/tradepost-labs/tradepost-core/action/protocol"
	"github.com/tradepost-labs/tradepost-core/pkg/util/mathutil"
)

// Protocol is the staking protocol
type Protocol struct{}

// NewProtocol instantiates the staking protocol
func NewProtocol() *Protocol {
	return &Protocol{}
}

// Handle handles the staking actions
func (p *Protocol) Handle(ctx context.Context, act action.Action, sm protocol.StateManager) (*action.Receipt, error) {
	switch act := act.(type) {
	case *action.InitStakePool:
		return p.initPool(ctx, act, sm)
	case *action.FundRewardPool:
		return p.fundRewardPool(ctx, act, sm)
	case *action.StakeItem:
		return p.stakeItem(ctx, act, sm)
	case *action.ClaimRewards:
		return p.claimRewards(ctx, act, sm)
	case *action.UnstakeItem:
		return p.unstakeItem(ctx, act, sm)
	}
	return nil, nil
}

// Validate validates the staking actions without touching state
func (p *Protocol) Validate(_ context.Context, act action.Action) error {
	switch act := act.(type) {
	case *action.InitStakePool:
		return act.SanityCheck()
	case *action.FundRewardPool:
		return act.SanityCheck()
	case *action.StakeItem:
		return act.SanityCheck()
	case *action.ClaimRewards:
		return act.SanityCheck()
	case *action.UnstakeItem:
		return act.SanityCheck()
	}
	return nil
}

// accruedReward computes floor(elapsed * rate * multiplier / 10000) with
// every step saturating. Elapsed clamps at zero if the clock reads before the
// last claim.
func accruedReward(now, lastClaim int64, ratePerSecond, multiplierBps uint64) uint64 {
	if now <= lastClaim {
		return 0
	}
	elapsed := uint64(now - lastClaim)
	base := mathutil.MulSaturate(elapsed, ratePerSecond)
	return mathutil.DivSaturate(mathutil.MulSaturate(base, multiplierBps), action.MaxBasisPoints)
}
