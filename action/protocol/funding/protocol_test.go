// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package funding_test

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/tradepost-labs/tradepost-core/action"
	"github.com/tradepost-labs/tradepost-core/action/protocol"
	accountutil "github.com/tradepost-labs/tradepost-core/action/protocol/account"
	"github.com/tradepost-labs/tradepost-core/action/protocol/funding"
	"github.com/tradepost-labs/tradepost-core/address"
	"github.com/tradepost-labs/tradepost-core/config"
	"github.com/tradepost-labs/tradepost-core/pkg/unit"
	"github.com/tradepost-labs/tradepost-core/state"
	"github.com/tradepost-labs/tradepost-core/state/factory"
	"github.com/tradepost-labs/tradepost-core/test/identityset"
)

var _epoch = time.Unix(1700000000, 0)

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

func runCtxAt(caller address.Address, act action.Action, ts time.Time) context.Context {
	ctx := protocol.WithGenesisCtx(context.Background(), config.Default.Genesis)
	ctx = protocol.WithBlockCtx(ctx, protocol.BlockCtx{
		BlockHeight:    1,
		BlockTimeStamp: ts,
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

func loadCampaign(t *testing.T, sr protocol.StateReader) *funding.Campaign {
	var c funding.Campaign
	require.NoError(t, sr.State(&c,
		protocol.NamespaceOption(state.FundingKVNamespace),
		protocol.AddrKeyOption(protocol.CampaignAddress())))
	return &c
}

func TestInitCampaign(t *testing.T) {
	require := require.New(t)
	ws := newTestWorkingSet(t)
	p := funding.NewProtocol()
	admin := identityset.Address(1)
	seed(t, ws, admin, unit.MarkToGrain(1))

	ic := action.NewInitCampaign()
	receipt, err := p.Handle(runCtxAt(admin, ic, _epoch), ic, ws)
	require.NoError(err)
	require.Equal(protocol.CampaignAddress().String(), receipt.EntityAddress)

	c := loadCampaign(t, ws)
	require.True(c.Active)
	require.Equal(_epoch.Unix(), c.StartTime)
	require.Equal(_epoch.Add(config.Default.Genesis.CampaignWindow).Unix(), c.EndTime)
	require.Equal(config.Default.Genesis.CampaignTarget, c.Target)
	require.Zero(c.Raised)

	// a second init hits the existing record
	_, err = p.Handle(runCtxAt(admin, ic, _epoch), ic, ws)
	require.Equal(protocol.ErrInvalidState, errors.Cause(err))
}

func TestContribute(t *testing.T) {
	require := require.New(t)
	ws := newTestWorkingSet(t)
	p := funding.NewProtocol()
	admin := identityset.Address(1)
	alice := identityset.Address(2)
	bob := identityset.Address(3)
	seed(t, ws, admin, unit.MarkToGrain(1))
	seed(t, ws, alice, unit.MarkToGrain(1))
	seed(t, ws, bob, unit.MarkToGrain(1))

	// contributing before init is a state violation
	early := action.NewContribute(100)
	_, err := p.Handle(runCtxAt(alice, early, _epoch), early, ws)
	require.Equal(protocol.ErrInvalidState, errors.Cause(err))

	ic := action.NewInitCampaign()
	_, err = p.Handle(runCtxAt(admin, ic, _epoch), ic, ws)
	require.NoError(err)

	zero := action.NewContribute(0)
	_, err = p.Handle(runCtxAt(alice, zero, _epoch), zero, ws)
	require.Equal(protocol.ErrInvalidInput, errors.Cause(err))

	// two contributions from alice accumulate on one record
	for _, amount := range []uint64{300, 200} {
		ct := action.NewContribute(amount)
		_, err = p.Handle(runCtxAt(alice, ct, _epoch.Add(time.Hour)), ct, ws)
		require.NoError(err)
	}
	ct := action.NewContribute(400)
	_, err = p.Handle(runCtxAt(bob, ct, _epoch.Add(2*time.Hour)), ct, ws)
	require.NoError(err)

	campaignAddr := protocol.CampaignAddress()
	var rec funding.Contribution
	require.NoError(ws.State(&rec,
		protocol.NamespaceOption(state.FundingKVNamespace),
		protocol.AddrKeyOption(protocol.ContributionAddress(campaignAddr, alice))))
	require.Equal(uint64(500), rec.Amount)

	// raised equals the sum of the records and the escrowed balance
	c := loadCampaign(t, ws)
	require.Equal(uint64(900), c.Raised)
	acct, err := accountutil.LoadAccount(ws, campaignAddr)
	require.NoError(err)
	require.Equal(uint64(900), acct.SpendableBalance())

	// the window closes one second after the deadline
	late := action.NewContribute(1)
	deadline := time.Unix(c.EndTime, 0)
	_, err = p.Handle(runCtxAt(bob, late, deadline), late, ws)
	require.NoError(err)
	_, err = p.Handle(runCtxAt(bob, late, deadline.Add(time.Second)), late, ws)
	require.Equal(protocol.ErrOutsideWindow, errors.Cause(err))
}

func TestEndCampaign(t *testing.T) {
	require := require.New(t)
	ws := newTestWorkingSet(t)
	p := funding.NewProtocol()
	admin := identityset.Address(1)
	backer := identityset.Address(2)
	seed(t, ws, admin, unit.MarkToGrain(1))
	seed(t, ws, backer, unit.MarkToGrain(1000))

	ic := action.NewInitCampaign()
	_, err := p.Handle(runCtxAt(admin, ic, _epoch), ic, ws)
	require.NoError(err)

	ec := action.NewEndCampaign()

	// open window, target unmet: not endable
	_, err = p.Handle(runCtxAt(admin, ec, _epoch.Add(time.Hour)), ec, ws)
	require.Equal(protocol.ErrOutsideWindow, errors.Cause(err))

	ct := action.NewContribute(config.Default.Genesis.CampaignTarget)
	_, err = p.Handle(runCtxAt(backer, ct, _epoch.Add(time.Hour)), ct, ws)
	require.NoError(err)

	// only the admin settles
	_, err = p.Handle(runCtxAt(backer, ec, _epoch.Add(2*time.Hour)), ec, ws)
	require.Equal(protocol.ErrUnauthorized, errors.Cause(err))

	adminBefore, err := accountutil.LoadAccount(ws, admin)
	require.NoError(err)

	// target met ends the campaign inside the window
	_, err = p.Handle(runCtxAt(admin, ec, _epoch.Add(2*time.Hour)), ec, ws)
	require.NoError(err)

	adminAfter, err := accountutil.LoadAccount(ws, admin)
	require.NoError(err)
	require.Equal(adminBefore.Balance+config.Default.Genesis.CampaignTarget, adminAfter.Balance)

	// the account keeps only its storage reserve, ready for a restart
	campaignAcct, err := accountutil.LoadAccount(ws, protocol.CampaignAddress())
	require.NoError(err)
	require.Zero(campaignAcct.SpendableBalance())
	c := loadCampaign(t, ws)
	require.False(c.Active)
	require.Equal(config.Default.Genesis.CampaignTarget, c.Raised)

	// settling twice fails on the inactive state
	_, err = p.Handle(runCtxAt(admin, ec, _epoch.Add(3*time.Hour)), ec, ws)
	require.Equal(protocol.ErrInvalidState, errors.Cause(err))
}

func TestEndCampaignAfterDeadline(t *testing.T) {
	require := require.New(t)
	ws := newTestWorkingSet(t)
	p := funding.NewProtocol()
	admin := identityset.Address(1)
	backer := identityset.Address(2)
	seed(t, ws, admin, unit.MarkToGrain(1))
	seed(t, ws, backer, unit.MarkToGrain(1))

	ic := action.NewInitCampaign()
	_, err := p.Handle(runCtxAt(admin, ic, _epoch), ic, ws)
	require.NoError(err)
	ct := action.NewContribute(100)
	_, err = p.Handle(runCtxAt(backer, ct, _epoch.Add(time.Hour)), ct, ws)
	require.NoError(err)

	// once the deadline passes the raised amount no longer matters
	after := _epoch.Add(config.Default.Genesis.CampaignWindow)
	ec := action.NewEndCampaign()
	_, err = p.Handle(runCtxAt(admin, ec, after), ec, ws)
	require.NoError(err)
	require.False(loadCampaign(t, ws).Active)
}

func TestRestartCampaign(t *testing.T) {
	require := require.New(t)
	ws := newTestWorkingSet(t)
	p := funding.NewProtocol()
	admin := identityset.Address(1)
	backer := identityset.Address(2)
	seed(t, ws, admin, unit.MarkToGrain(1))
	seed(t, ws, backer, unit.MarkToGrain(1))

	ic := action.NewInitCampaign()
	_, err := p.Handle(runCtxAt(admin, ic, _epoch), ic, ws)
	require.NoError(err)

	rc := action.NewRestartCampaign()

	ct := action.NewContribute(100)
	_, err = p.Handle(runCtxAt(backer, ct, _epoch.Add(time.Hour)), ct, ws)
	require.NoError(err)

	// only the admin re-arms
	_, err = p.Handle(runCtxAt(backer, rc, _epoch.Add(2*time.Hour)), rc, ws)
	require.Equal(protocol.ErrUnauthorized, errors.Cause(err))

	// a live campaign re-arms too: the window and tally reset, the escrowed
	// funds stay put
	restartAt := _epoch.Add(2 * time.Hour)
	_, err = p.Handle(runCtxAt(admin, rc, restartAt), rc, ws)
	require.NoError(err)

	c := loadCampaign(t, ws)
	require.True(c.Active)
	require.Zero(c.Raised)
	require.Equal(restartAt.Unix(), c.StartTime)
	require.Equal(restartAt.Add(config.Default.Genesis.CampaignWindow).Unix(), c.EndTime)
	campaignAcct, err := accountutil.LoadAccount(ws, protocol.CampaignAddress())
	require.NoError(err)
	require.Equal(uint64(100), campaignAcct.SpendableBalance())

	// a settled campaign re-arms the same way
	ec := action.NewEndCampaign()
	after := restartAt.Add(config.Default.Genesis.CampaignWindow)
	_, err = p.Handle(runCtxAt(admin, ec, after), ec, ws)
	require.NoError(err)
	restartAt = after.Add(time.Hour)
	_, err = p.Handle(runCtxAt(admin, rc, restartAt), rc, ws)
	require.NoError(err)
	c = loadCampaign(t, ws)
	require.True(c.Active)
	require.Zero(c.Raised)

	// the old contribution record survives and keeps accumulating
	ct2 := action.NewContribute(50)
	_, err = p.Handle(runCtxAt(backer, ct2, restartAt.Add(time.Minute)), ct2, ws)
	require.NoError(err)
	var rec funding.Contribution
	require.NoError(ws.State(&rec,
		protocol.NamespaceOption(state.FundingKVNamespace),
		protocol.AddrKeyOption(protocol.ContributionAddress(protocol.CampaignAddress(), backer))))
	require.Equal(uint64(150), rec.Amount)
}
