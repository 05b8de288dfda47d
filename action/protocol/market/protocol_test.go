// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package market_test

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/tradepost-labs/tradepost-core/action"
	"github.com/tradepost-labs/tradepost-core/action/protocol"
	accountutil "github.com/tradepost-labs/tradepost-core/action/protocol/account"
	"github.com/tradepost-labs/tradepost-core/action/protocol/market"
	"github.com/tradepost-labs/tradepost-core/action/protocol/metadata"
	"github.com/tradepost-labs/tradepost-core/action/protocol/token"
	"github.com/tradepost-labs/tradepost-core/address"
	"github.com/tradepost-labs/tradepost-core/config"
	"github.com/tradepost-labs/tradepost-core/pkg/unit"
	"github.com/tradepost-labs/tradepost-core/state"
	"github.com/tradepost-labs/tradepost-core/state/factory"
	"github.com/tradepost-labs/tradepost-core/test/identityset"
)

func newTestWorkingSet(t *testing.T) factory.WorkingSet {
	sdb, err := factory.NewStateDB(config.Default, factory.InMemStateDBOption())
	require.NoError(t, err)
	require.NoError(t, sdb.Start(context.Background()))
	t.Cleanup(func() {
		require.NoError(t, sdb.Stop(context.Background()))
	})
	ws, err := sdb.NewWorkingSet()
	require.NoError(t, err)
	return ws
}

func runCtx(caller address.Address, act action.Action) context.Context {
	ctx := protocol.WithGenesisCtx(context.Background(), config.Default.Genesis)
	ctx = protocol.WithBlockCtx(ctx, protocol.BlockCtx{
		BlockHeight:    1,
		BlockTimeStamp: time.Unix(1700000000, 0),
	})
	return protocol.WithActionCtx(ctx, protocol.ActionCtx{
		Caller:     caller,
		ActionHash: action.Hash(act),
		Nonce:      1,
	})
}

func TestInitMarketplace(t *testing.T) {
	require := require.New(t)
	ws := newTestWorkingSet(t)
	p := market.NewProtocol()
	admin := identityset.Address(0)
	seed(t, ws, admin, unit.MarkToGrain(10))

	act := action.NewInitMarketplace(250)
	receipt, err := p.Handle(runCtx(admin, act), act, ws)
	require.NoError(err)
	require.Equal(action.SuccessStatus, receipt.Status)
	require.Equal(protocol.MarketplaceAddress().String(), receipt.EntityAddress)

	var mp market.Marketplace
	require.NoError(ws.State(&mp, protocol.NamespaceOption(state.MarketKVNamespace), protocol.AddrKeyOption(protocol.MarketplaceAddress())))
	require.Equal(uint16(250), mp.FeeBps)
	require.Equal(uint64(0), mp.Collections)

	// a second initialization fails
	_, err = p.Handle(runCtx(admin, act), act, ws)
	require.Equal(protocol.ErrInvalidState, errors.Cause(err))
}

func TestCreateCollection(t *testing.T) {
	require := require.New(t)
	ws := newTestWorkingSet(t)
	p := market.NewProtocol()
	admin := identityset.Address(0)
	seed(t, ws, admin, unit.MarkToGrain(10))

	// the marketplace root must exist first
	cc := action.NewCreateCollection("heroes", "HERO", "ipfs://heroes", 500)
	_, err := p.Handle(runCtx(admin, cc), cc, ws)
	require.Equal(protocol.ErrInvalidState, errors.Cause(err))

	im := action.NewInitMarketplace(0)
	_, err = p.Handle(runCtx(admin, im), im, ws)
	require.NoError(err)

	receipt, err := p.Handle(runCtx(admin, cc), cc, ws)
	require.NoError(err)
	collAddr := protocol.CollectionAddress("heroes")
	require.Equal(collAddr.String(), receipt.EntityAddress)

	coll, err := market.LoadCollection(ws, collAddr)
	require.NoError(err)
	require.True(coll.Active)
	require.Equal("HERO", coll.Symbol)

	// the supply-1 representative unit sits with the creator
	held, err := token.Balance(ws, collAddr, admin)
	require.NoError(err)
	require.Equal(uint64(1), held)

	// the descriptor is written and finalized
	rec, err := metadata.Read(ws, collAddr)
	require.NoError(err)
	require.True(rec.Finalized)

	var mp market.Marketplace
	require.NoError(ws.State(&mp, protocol.NamespaceOption(state.MarketKVNamespace), protocol.AddrKeyOption(protocol.MarketplaceAddress())))
	require.Equal(uint64(1), mp.Collections)

	// names are unique ledger-wide
	_, err = p.Handle(runCtx(admin, cc), cc, ws)
	require.Equal(protocol.ErrInvalidState, errors.Cause(err))
}

func TestCreateItemType(t *testing.T) {
	require := require.New(t)
	ws := newTestWorkingSet(t)
	p := market.NewProtocol()
	admin := identityset.Address(0)
	stranger := identityset.Address(1)
	seed(t, ws, admin, unit.MarkToGrain(10))
	seed(t, ws, stranger, unit.MarkToGrain(10))

	im := action.NewInitMarketplace(0)
	_, err := p.Handle(runCtx(admin, im), im, ws)
	require.NoError(err)
	cc := action.NewCreateCollection("heroes", "HERO", "ipfs://heroes", 500)
	_, err = p.Handle(runCtx(admin, cc), cc, ws)
	require.NoError(err)
	collAddr := protocol.CollectionAddress("heroes")

	// only the collection admin may create types
	cit := action.NewCreateItemType(collAddr, "knight", "ipfs://knight", 100, 3, 20000)
	_, err = p.Handle(runCtx(stranger, cit), cit, ws)
	require.Equal(protocol.ErrUnauthorized, errors.Cause(err))

	receipt, err := p.Handle(runCtx(admin, cit), cit, ws)
	require.NoError(err)
	typeAddr := protocol.ItemTypeAddress(collAddr, "knight")
	require.Equal(typeAddr.String(), receipt.EntityAddress)

	it, err := market.LoadItemType(ws, typeAddr)
	require.NoError(err)
	require.Equal(uint64(0), it.CurrentSupply)
	require.Equal(uint64(20000), it.MultiplierBps)

	// duplicate type names collide on the derived address
	_, err = p.Handle(runCtx(admin, cit), cit, ws)
	require.Equal(protocol.ErrInvalidState, errors.Cause(err))

	// a nonexistent collection is a state violation
	bogus := action.NewCreateItemType(identityset.Address(9), "x", "", 1, 1, 1)
	_, err = p.Handle(runCtx(admin, bogus), bogus, ws)
	require.Equal(protocol.ErrInvalidState, errors.Cause(err))
}

func TestMintItem(t *testing.T) {
	require := require.New(t)
	ws := newTestWorkingSet(t)
	p := market.NewProtocol()
	admin := identityset.Address(0)
	buyer := identityset.Address(1)
	seed(t, ws, admin, unit.MarkToGrain(10))
	seed(t, ws, buyer, unit.MarkToGrain(10))

	im := action.NewInitMarketplace(0)
	_, err := p.Handle(runCtx(admin, im), im, ws)
	require.NoError(err)
	cc := action.NewCreateCollection("heroes", "HERO", "ipfs://heroes", 500)
	_, err = p.Handle(runCtx(admin, cc), cc, ws)
	require.NoError(err)
	collAddr := protocol.CollectionAddress("heroes")
	const price, maxSupply = uint64(100), uint64(3)
	cit := action.NewCreateItemType(collAddr, "knight", "ipfs://knight", price, maxSupply, 20000)
	_, err = p.Handle(runCtx(admin, cit), cit, ws)
	require.NoError(err)
	typeAddr := protocol.ItemTypeAddress(collAddr, "knight")

	adminBefore, err := accountutil.LoadAccount(ws, admin)
	require.NoError(err)

	// minting max_supply times succeeds, each item verified and owned by the buyer
	mi := action.NewMintItem(typeAddr)
	for i := uint64(1); i <= maxSupply; i++ {
		receipt, err := p.Handle(runCtx(buyer, mi), mi, ws)
		require.NoError(err)
		itemAddr := protocol.ItemAddress(typeAddr, i)
		require.Equal(itemAddr.String(), receipt.EntityAddress)

		held, err := token.Balance(ws, itemAddr, buyer)
		require.NoError(err)
		require.Equal(uint64(1), held)
		member, err := metadata.BelongsTo(ws, itemAddr, collAddr)
		require.NoError(err)
		require.True(member)

		it, err := market.LoadItemType(ws, typeAddr)
		require.NoError(err)
		require.Equal(i, it.CurrentSupply)
	}

	// each mint paid the price straight to the collection admin
	adminAfter, err := accountutil.LoadAccount(ws, admin)
	require.NoError(err)
	require.Equal(adminBefore.Balance+price*maxSupply, adminAfter.Balance)

	// the (max_supply+1)-th mint fails and leaves supply unchanged
	_, err = p.Handle(runCtx(buyer, mi), mi, ws)
	require.Equal(protocol.ErrCapacityExceeded, errors.Cause(err))
	it, err := market.LoadItemType(ws, typeAddr)
	require.NoError(err)
	require.Equal(maxSupply, it.CurrentSupply)
}

func seed(t *testing.T, sm protocol.StateManager, addr address.Address, amount uint64) {
	acct, err := accountutil.LoadOrCreateAccount(sm, addr)
	require.NoError(t, err)
	require.NoError(t, acct.AddBalance(amount))
	require.NoError(t, accountutil.StoreAccount(sm, addr, acct))
}
