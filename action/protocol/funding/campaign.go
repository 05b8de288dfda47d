// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package funding

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/tradepost-labs/tradepost-core/action"
	"github.com/tradepost-labs/tradepost-core/action/protocol"
	accountutil "github.com/tradepost-labs/tradepost-core/action/protocol/account"
	"github.com/tradepost-labs/tradepost-core/address"
	"github.com/tradepost-labs/tradepost-core/pkg/hash"
	"github.com/tradepost-labs/tradepost-core/pkg/log"
	"github.com/tradepost-labs/tradepost-core/pkg/unit"
	"github.com/tradepost-labs/tradepost-core/pkg/util/mathutil"
	"github.com/tradepost-labs/tradepost-core/state"
)

// Campaign is the fundraising state at the fixed campaign address. Timestamps
// are unix seconds from the single per-transaction clock reading. Raised only
// grows while the campaign is active.
type Campaign struct {
	Admin     hash.Hash160
	StartTime int64
	EndTime   int64
	Raised    uint64
	Target    uint64
	Active    bool
}

// Contribution is one contributor's cumulative paid-in amount. Records are
// never deleted, a later campaign restart accumulates on top of them.
type Contribution struct {
	Campaign    hash.Hash160
	Contributor hash.Hash160
	Amount      uint64
}

func loadCampaign(sr protocol.StateReader) (*Campaign, error) {
	var c Campaign
	if err := sr.State(&c, protocol.NamespaceOption(state.FundingKVNamespace), protocol.AddrKeyOption(protocol.CampaignAddress())); err != nil {
		if errors.Cause(err) == state.ErrStateNotExist {
			return nil, errors.Wrap(protocol.ErrInvalidState, "campaign is not initialized")
		}
		return nil, errors.Wrap(err, "failed to load campaign")
	}
	return &c, nil
}

func storeCampaign(sm protocol.StateManager, c *Campaign) error {
	return sm.PutState(c, protocol.NamespaceOption(state.FundingKVNamespace), protocol.AddrKeyOption(protocol.CampaignAddress()))
}

// initCampaign creates the campaign with the caller as admin; window and
// target come from the genesis parameters
func (p *Protocol) initCampaign(ctx context.Context, _ *action.InitCampaign, sm protocol.StateManager) (*action.Receipt, error) {
	actCtx := protocol.MustGetActionCtx(ctx)
	blkCtx := protocol.MustGetBlockCtx(ctx)
	g := protocol.MustGetGenesisCtx(ctx)
	addr := protocol.CampaignAddress()
	if _, err := loadCampaign(sm); err == nil {
		return nil, errors.Wrap(protocol.ErrInvalidState, "campaign is already initialized")
	} else if errors.Cause(err) != protocol.ErrInvalidState {
		return nil, err
	}
	now := blkCtx.BlockTimeStamp.Unix()
	c := Campaign{
		Admin:     hash.BytesToHash160(actCtx.Caller.Bytes()),
		StartTime: now,
		EndTime:   now + int64(g.CampaignWindow.Seconds()),
		Target:    g.CampaignTarget,
		Active:    true,
	}
	data, err := state.Serialize(&c)
	if err != nil {
		return nil, err
	}
	establishLog, err := accountutil.Establish(ctx, sm, actCtx.Caller, addr, uint64(len(data)), protocol.CallerAuthority(ctx))
	if err != nil {
		return nil, errors.Wrap(err, "failed to establish the campaign account")
	}
	if err := storeCampaign(sm, &c); err != nil {
		return nil, errors.Wrap(err, "failed to store campaign")
	}
	log.L().Info("Campaign initialized.",
		zap.String("admin", actCtx.Caller.String()),
		zap.Int64("endTime", c.EndTime),
		zap.String("target", unit.Format(c.Target)))
	return protocol.NewReceipt(ctx, addr, establishLog), nil
}

// restartCampaign re-arms the campaign with a fresh window, preserving admin
// and target and zeroing the raised tally. Admin only; a live campaign may be
// re-armed, which forfeits its window and tally but keeps the escrowed funds.
func (p *Protocol) restartCampaign(ctx context.Context, _ *action.RestartCampaign, sm protocol.StateManager) (*action.Receipt, error) {
	actCtx := protocol.MustGetActionCtx(ctx)
	blkCtx := protocol.MustGetBlockCtx(ctx)
	g := protocol.MustGetGenesisCtx(ctx)
	c, err := loadCampaign(sm)
	if err != nil {
		return nil, err
	}
	if c.Admin != hash.BytesToHash160(actCtx.Caller.Bytes()) {
		return nil, errors.Wrapf(protocol.ErrUnauthorized, "caller %s is not the campaign admin", actCtx.Caller)
	}
	now := blkCtx.BlockTimeStamp.Unix()
	c.StartTime = now
	c.EndTime = now + int64(g.CampaignWindow.Seconds())
	c.Raised = 0
	c.Active = true
	if err := storeCampaign(sm, c); err != nil {
		return nil, errors.Wrap(err, "failed to store campaign")
	}
	log.L().Info("Campaign restarted.", zap.Int64("endTime", c.EndTime))
	return protocol.NewReceipt(ctx, protocol.CampaignAddress()), nil
}

// contribute escrows the amount on the campaign's custodial balance and
// accumulates the contributor's record; the deposit, the record upsert and
// the raised tally move as one atomic step
func (p *Protocol) contribute(ctx context.Context, act *action.Contribute, sm protocol.StateManager) (*action.Receipt, error) {
	actCtx := protocol.MustGetActionCtx(ctx)
	blkCtx := protocol.MustGetBlockCtx(ctx)
	if act.Amount() == 0 {
		return nil, errors.Wrap(protocol.ErrInvalidInput, "zero contribution")
	}
	c, err := loadCampaign(sm)
	if err != nil {
		return nil, err
	}
	if !c.Active {
		return nil, errors.Wrap(protocol.ErrInvalidState, "campaign is not active")
	}
	if blkCtx.BlockTimeStamp.Unix() > c.EndTime {
		return nil, errors.Wrapf(protocol.ErrOutsideWindow, "campaign ended at %d", c.EndTime)
	}
	campaignAddr := protocol.CampaignAddress()
	depositLog, err := accountutil.Transfer(sm, actCtx.Caller, campaignAddr, act.Amount(), protocol.CallerAuthority(ctx))
	if err != nil {
		return nil, errors.Wrap(err, "failed to escrow the contribution")
	}

	recordAddr := protocol.ContributionAddress(campaignAddr, actCtx.Caller)
	var record Contribution
	switch err := sm.State(&record, protocol.NamespaceOption(state.FundingKVNamespace), protocol.AddrKeyOption(recordAddr)); errors.Cause(err) {
	case nil:
	case state.ErrStateNotExist:
		record = Contribution{
			Campaign:    hash.BytesToHash160(campaignAddr.Bytes()),
			Contributor: hash.BytesToHash160(actCtx.Caller.Bytes()),
		}
	default:
		return nil, errors.Wrapf(err, "failed to load contribution record of %s", actCtx.Caller)
	}
	record.Amount = mathutil.AddSaturate(record.Amount, act.Amount())
	if err := sm.PutState(&record, protocol.NamespaceOption(state.FundingKVNamespace), protocol.AddrKeyOption(recordAddr)); err != nil {
		return nil, errors.Wrapf(err, "failed to store contribution record of %s", actCtx.Caller)
	}

	c.Raised = mathutil.AddSaturate(c.Raised, act.Amount())
	if err := storeCampaign(sm, c); err != nil {
		return nil, errors.Wrap(err, "failed to store campaign")
	}
	log.L().Info("Contribution received.",
		zap.String("contributor", actCtx.Caller.String()),
		zap.String("amount", unit.Format(act.Amount())),
		zap.String("raised", unit.Format(c.Raised)))
	return protocol.NewReceipt(ctx, recordAddr, depositLog), nil
}

// endCampaign settles an endable campaign: everything above the storage
// reserve moves to the admin and the campaign deactivates. Ending while the
// window is open and the target unmet is a hard error; a second settlement
// fails on the inactive state.
func (p *Protocol) endCampaign(ctx context.Context, _ *action.EndCampaign, sm protocol.StateManager) (*action.Receipt, error) {
	actCtx := protocol.MustGetActionCtx(ctx)
	blkCtx := protocol.MustGetBlockCtx(ctx)
	c, err := loadCampaign(sm)
	if err != nil {
		return nil, err
	}
	if !c.Active {
		return nil, errors.Wrap(protocol.ErrInvalidState, "campaign is not active")
	}
	if c.Admin != hash.BytesToHash160(actCtx.Caller.Bytes()) {
		return nil, errors.Wrapf(protocol.ErrUnauthorized, "caller %s is not the campaign admin", actCtx.Caller)
	}
	reachedTime := blkCtx.BlockTimeStamp.Unix() >= c.EndTime
	reachedTarget := c.Raised >= c.Target
	if !reachedTime && !reachedTarget {
		return nil, errors.Wrapf(protocol.ErrOutsideWindow, "campaign runs until %d and raised %d of %d", c.EndTime, c.Raised, c.Target)
	}
	campaignAddr := protocol.CampaignAddress()
	admin, err := address.FromBytes(c.Admin[:])
	if err != nil {
		return nil, errors.Wrap(err, "corrupt campaign admin")
	}
	campaignAcct, err := accountutil.LoadAccount(sm, campaignAddr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load the campaign account")
	}
	var payoutLog *action.TransactionLog
	if transferable := campaignAcct.SpendableBalance(); transferable > 0 {
		if payoutLog, err = accountutil.Transfer(sm, campaignAddr, admin, transferable, protocol.EntityAuthority(campaignAddr)); err != nil {
			return nil, errors.Wrap(err, "failed to pay out the raised funds")
		}
	}
	c.Active = false
	if err := storeCampaign(sm, c); err != nil {
		return nil, errors.Wrap(err, "failed to store campaign")
	}
	log.L().Info("Campaign ended.",
		zap.Bool("reachedTime", reachedTime),
		zap.Bool("reachedTarget", reachedTarget),
		zap.String("raised", unit.Format(c.Raised)))
	return protocol.NewReceipt(ctx, campaignAddr, payoutLog), nil
}
