// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

// Package e2etest drives every operation through one ledger over one store,
// the way an operator would, and checks the money and the units add up at
// each step.
package e2etest

import (
	"context"
	"testing"
	"time"

	"github.com/facebookgo/clock"
	"github.com/stretchr/testify/require"

	"github.com/tradepost-labs/tradepost-core/action"
	"github.com/tradepost-labs/tradepost-core/action/protocol"
	"github.com/tradepost-labs/tradepost-core/action/protocol/funding"
	"github.com/tradepost-labs/tradepost-core/action/protocol/token"
	"github.com/tradepost-labs/tradepost-core/address"
	"github.com/tradepost-labs/tradepost-core/config"
	"github.com/tradepost-labs/tradepost-core/ledger"
	"github.com/tradepost-labs/tradepost-core/pkg/unit"
	"github.com/tradepost-labs/tradepost-core/state"
	"github.com/tradepost-labs/tradepost-core/state/factory"
	"github.com/tradepost-labs/tradepost-core/test/identityset"
)

func TestMarketplaceFlow(t *testing.T) {
	require := require.New(t)
	var (
		admin  = identityset.Address(0)
		alice  = identityset.Address(1)
		bob    = identityset.Address(2)
		backer = identityset.Address(3)
	)
	cfg := config.Default
	cfg.Genesis.InitBalances = map[string]uint64{
		admin.String():  unit.MarkToGrain(1000),
		alice.String():  unit.MarkToGrain(1000),
		bob.String():    unit.MarkToGrain(1000),
		backer.String(): unit.MarkToGrain(1000),
	}
	mock := clock.NewMock()
	registry, err := ledger.NewBuiltinRegistry()
	require.NoError(err)
	sf, err := factory.NewStateDB(cfg, factory.InMemStateDBOption(), factory.RegistryStateDBOption(registry))
	require.NoError(err)
	l, err := ledger.NewLedger(cfg, sf, registry, ledger.ClockOption(mock))
	require.NoError(err)
	ctx := context.Background()
	require.NoError(l.Start(ctx))
	defer func() {
		require.NoError(l.Stop(ctx))
	}()

	perform := func(caller address.Address, act action.Action) *action.Receipt {
		receipt, err := l.PerformOperation(ctx, caller, act)
		require.NoError(err)
		require.Equal(action.SuccessStatus, receipt.Status)
		return receipt
	}
	holding := func(u, holder address.Address) uint64 {
		ws, err := sf.NewWorkingSet()
		require.NoError(err)
		qty, err := token.Balance(ws, u, holder)
		require.NoError(err)
		return qty
	}

	// market: root, collection, type, two mints
	perform(admin, action.NewInitMarketplace(250))
	perform(admin, action.NewCreateCollection("relics", "RLC", "tp://relics", 500))
	collection := protocol.CollectionAddress("relics")
	perform(admin, action.NewCreateItemType(collection, "amulet", "tp://amulet", unit.MarkToGrain(1), 10, 20000))
	itemType := protocol.ItemTypeAddress(collection, "amulet")

	adminBefore, err := l.AccountOf(admin)
	require.NoError(err)
	perform(alice, action.NewMintItem(itemType))
	perform(bob, action.NewMintItem(itemType))
	aliceItem := protocol.ItemAddress(itemType, 1)
	bobItem := protocol.ItemAddress(itemType, 2)
	require.Equal(uint64(1), holding(aliceItem, alice))
	require.Equal(uint64(1), holding(bobItem, bob))
	adminAfter, err := l.AccountOf(admin)
	require.NoError(err)
	require.Equal(adminBefore.Balance+2*unit.MarkToGrain(1), adminAfter.Balance)

	// arena: alice opens, bob joins, alice settles and takes the pot
	stakeAmount := unit.MarkToGrain(2)
	receipt := perform(alice, action.NewCreateRoom(1, stakeAmount, aliceItem, collection))
	roomAddr := protocol.RoomAddress(alice, 1)
	require.Equal(roomAddr.String(), receipt.EntityAddress)
	perform(bob, action.NewJoinRoom(roomAddr, bobItem, collection))
	roomAcct, err := l.AccountOf(roomAddr)
	require.NoError(err)
	require.Equal(2*stakeAmount, roomAcct.SpendableBalance())
	aliceBefore, err := l.AccountOf(alice)
	require.NoError(err)
	perform(alice, action.NewResolveRoom(roomAddr))
	aliceAfter, err := l.AccountOf(alice)
	require.NoError(err)
	require.Equal(aliceBefore.Balance+roomAcct.Balance, aliceAfter.Balance)

	// funding: contribute, miss nothing, settle at the deadline, restart
	perform(admin, action.NewInitCampaign())
	perform(backer, action.NewContribute(unit.MarkToGrain(3)))
	perform(alice, action.NewContribute(unit.MarkToGrain(2)))
	mock.Add(cfg.Genesis.CampaignWindow)
	adminBefore, err = l.AccountOf(admin)
	require.NoError(err)
	perform(admin, action.NewEndCampaign())
	adminAfter, err = l.AccountOf(admin)
	require.NoError(err)
	require.Equal(adminBefore.Balance+unit.MarkToGrain(5), adminAfter.Balance)
	perform(admin, action.NewRestartCampaign())
	var c funding.Campaign
	require.NoError(l.ReadState(&c,
		protocol.NamespaceOption(state.FundingKVNamespace),
		protocol.AddrKeyOption(protocol.CampaignAddress())))
	require.True(c.Active)
	require.Zero(c.Raised)

	// staking: pool, fund, stake, accrue, claim, unstake
	perform(admin, action.NewInitStakePool(100))
	perform(admin, action.NewFundRewardPool(10_000_000))
	perform(alice, action.NewStakeItem(aliceItem, itemType, collection))
	require.Zero(holding(aliceItem, alice))

	mock.Add(10 * time.Second)
	receipt = perform(alice, action.NewClaimRewards(aliceItem))
	require.Len(receipt.Logs, 1)
	require.Equal(action.RewardPayoutLog, receipt.Logs[0].Type)
	// 10 s at rate 100 with the 2.0x type multiplier
	require.Equal(uint64(2000), receipt.Logs[0].Amount)

	mock.Add(5 * time.Second)
	perform(alice, action.NewUnstakeItem(aliceItem))
	require.Equal(uint64(1), holding(aliceItem, alice))
	rewardUnit := protocol.RewardUnitAddress(protocol.StakePoolAddress())
	require.Equal(uint64(3000), holding(rewardUnit, alice))

	// eighteen operations committed on top of genesis
	height, err := l.Height()
	require.NoError(err)
	require.Equal(uint64(18), height)
}
