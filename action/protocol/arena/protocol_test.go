// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package arena_test

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/tradepost-labs/tradepost-core/action"
	"github.com/tradepost-labs/tradepost-core/action/protocol"
	accountutil "github.com/tradepost-labs/tradepost-core/action/protocol/account"
	"github.com/tradepost-labs/tradepost-core/action/protocol/arena"
	"github.com/tradepost-labs/tradepost-core/action/protocol/metadata"
	"github.com/tradepost-labs/tradepost-core/action/protocol/token"
	"github.com/tradepost-labs/tradepost-core/address"
	"github.com/tradepost-labs/tradepost-core/config"
	"github.com/tradepost-labs/tradepost-core/pkg/hash"
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

func seed(t *testing.T, sm protocol.StateManager, addr address.Address, amount uint64) {
	acct, err := accountutil.LoadOrCreateAccount(sm, addr)
	require.NoError(t, err)
	require.NoError(t, acct.AddBalance(amount))
	require.NoError(t, accountutil.StoreAccount(sm, addr, acct))
}

// mintQualifying hands the holder a verified member of the collection,
// bypassing the market protocol to keep the tests focused on the escrow rules
func mintQualifying(t *testing.T, sm protocol.StateManager, coll, item, holder address.Address) {
	require.NoError(t, token.CreateUnit(sm, item, coll, 0))
	_, err := token.Issue(sm, item, holder, 1, protocol.EntityAuthority(coll))
	require.NoError(t, err)
	require.NoError(t, metadata.Write(sm, item, metadata.Record{
		Name:       "qualifier",
		Collection: hash.BytesToHash160(coll.Bytes()),
	}, protocol.EntityAuthority(coll)))
	require.NoError(t, metadata.Verify(sm, item, coll, protocol.EntityAuthority(coll)))
}

func TestCreateRoom(t *testing.T) {
	require := require.New(t)
	ws := newTestWorkingSet(t)
	p := arena.NewProtocol()
	creator := identityset.Address(1)
	coll := identityset.Address(20)
	item := identityset.Address(21)
	seed(t, ws, creator, unit.MarkToGrain(1))
	mintQualifying(t, ws, coll, item, creator)

	// holding no unit of the nominated item bars entry
	other := action.NewCreateRoom(1, 5, identityset.Address(22), coll)
	_, err := p.Handle(runCtx(creator, other), other, ws)
	require.Equal(protocol.ErrUnauthorized, errors.Cause(err))

	cr := action.NewCreateRoom(1, 5, item, coll)
	receipt, err := p.Handle(runCtx(creator, cr), cr, ws)
	require.NoError(err)
	roomAddr := protocol.RoomAddress(creator, 1)
	require.Equal(roomAddr.String(), receipt.EntityAddress)

	// custodial balance holds exactly the stake above the storage reserve
	roomAcct, err := accountutil.LoadAccount(ws, roomAddr)
	require.NoError(err)
	require.Equal(uint64(5), roomAcct.SpendableBalance())
	require.Equal(roomAcct.Reserve+5, roomAcct.Balance)

	// a room id can be used once per creator
	_, err = p.Handle(runCtx(creator, cr), cr, ws)
	require.Equal(protocol.ErrInvalidState, errors.Cause(err))
}

func TestJoinRoom(t *testing.T) {
	require := require.New(t)
	ws := newTestWorkingSet(t)
	p := arena.NewProtocol()
	creator := identityset.Address(1)
	challenger := identityset.Address(2)
	coll := identityset.Address(20)
	creatorItem := identityset.Address(21)
	challengerItem := identityset.Address(22)
	seed(t, ws, creator, unit.MarkToGrain(1))
	seed(t, ws, challenger, unit.MarkToGrain(1))
	mintQualifying(t, ws, coll, creatorItem, creator)
	mintQualifying(t, ws, coll, challengerItem, challenger)

	cr := action.NewCreateRoom(7, 5, creatorItem, coll)
	_, err := p.Handle(runCtx(creator, cr), cr, ws)
	require.NoError(err)
	roomAddr := protocol.RoomAddress(creator, 7)

	// the creator cannot challenge its own room
	selfJoin := action.NewJoinRoom(roomAddr, creatorItem, coll)
	_, err = p.Handle(runCtx(creator, selfJoin), selfJoin, ws)
	require.Equal(protocol.ErrUnauthorized, errors.Cause(err))

	// joining a nonexistent room is a state violation
	bogus := action.NewJoinRoom(identityset.Address(23), challengerItem, coll)
	_, err = p.Handle(runCtx(challenger, bogus), bogus, ws)
	require.Equal(protocol.ErrInvalidState, errors.Cause(err))

	jr := action.NewJoinRoom(roomAddr, challengerItem, coll)
	_, err = p.Handle(runCtx(challenger, jr), jr, ws)
	require.NoError(err)

	// both stakes escrowed now
	roomAcct, err := accountutil.LoadAccount(ws, roomAddr)
	require.NoError(err)
	require.Equal(uint64(10), roomAcct.SpendableBalance())

	var room arena.Room
	require.NoError(ws.State(&room, protocol.NamespaceOption(state.ArenaKVNamespace), protocol.AddrKeyOption(roomAddr)))
	require.Equal(arena.RoomOngoing, room.Status)
	require.True(room.HasChallenger)

	// an ongoing room rejects further challengers
	third := identityset.Address(3)
	thirdItem := identityset.Address(24)
	seed(t, ws, third, unit.MarkToGrain(1))
	mintQualifying(t, ws, coll, thirdItem, third)
	late := action.NewJoinRoom(roomAddr, thirdItem, coll)
	_, err = p.Handle(runCtx(third, late), late, ws)
	require.Equal(protocol.ErrInvalidState, errors.Cause(err))
}

func TestResolveRoom(t *testing.T) {
	require := require.New(t)
	ws := newTestWorkingSet(t)
	p := arena.NewProtocol()
	creator := identityset.Address(1)
	challenger := identityset.Address(2)
	coll := identityset.Address(20)
	creatorItem := identityset.Address(21)
	challengerItem := identityset.Address(22)
	seed(t, ws, creator, unit.MarkToGrain(1))
	seed(t, ws, challenger, unit.MarkToGrain(1))
	mintQualifying(t, ws, coll, creatorItem, creator)
	mintQualifying(t, ws, coll, challengerItem, challenger)

	cr := action.NewCreateRoom(7, 5, creatorItem, coll)
	_, err := p.Handle(runCtx(creator, cr), cr, ws)
	require.NoError(err)
	roomAddr := protocol.RoomAddress(creator, 7)

	// a waiting room cannot resolve
	rr := action.NewResolveRoom(roomAddr)
	_, err = p.Handle(runCtx(creator, rr), rr, ws)
	require.Equal(protocol.ErrInvalidState, errors.Cause(err))

	jr := action.NewJoinRoom(roomAddr, challengerItem, coll)
	_, err = p.Handle(runCtx(challenger, jr), jr, ws)
	require.NoError(err)

	// only the creator settles
	_, err = p.Handle(runCtx(challenger, rr), rr, ws)
	require.Equal(protocol.ErrUnauthorized, errors.Cause(err))

	roomAcct, err := accountutil.LoadAccount(ws, roomAddr)
	require.NoError(err)
	pot := roomAcct.Balance // 2x stake plus the storage reserve
	creatorBefore, err := accountutil.LoadAccount(ws, creator)
	require.NoError(err)

	receipt, err := p.Handle(runCtx(creator, rr), rr, ws)
	require.NoError(err)
	require.Equal(action.SuccessStatus, receipt.Status)

	// the whole pot, reserve included, lands with the creator
	creatorAfter, err := accountutil.LoadAccount(ws, creator)
	require.NoError(err)
	require.Equal(creatorBefore.Balance+pot, creatorAfter.Balance)

	// the room is gone: record deleted, account released
	var room arena.Room
	err = ws.State(&room, protocol.NamespaceOption(state.ArenaKVNamespace), protocol.AddrKeyOption(roomAddr))
	require.Equal(state.ErrStateNotExist, errors.Cause(err))
	recorded, err := accountutil.Recorded(ws, roomAddr)
	require.NoError(err)
	require.False(recorded)

	// settling twice is impossible
	_, err = p.Handle(runCtx(creator, rr), rr, ws)
	require.Equal(protocol.ErrInvalidState, errors.Cause(err))
}
