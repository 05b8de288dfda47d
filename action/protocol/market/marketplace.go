// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package market

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/tradepost-labs/tradepost-core/action"
	"github.com/tradepost-labs/tradepost-core/action/protocol"
	accountutil "github.com/tradepost-labs/tradepost-core/action/protocol/account"
	"github.com/tradepost-labs/tradepost-core/pkg/hash"
	"github.com/tradepost-labs/tradepost-core/pkg/log"
	"github.com/tradepost-labs/tradepost-core/state"
)

// Marketplace is the registry root, keyed at the fixed marketplace address.
// FeeBps is recorded for fee schedules but not yet charged anywhere.
type Marketplace struct {
	Admin       hash.Hash160
	FeeBps      uint16
	Collections uint64
}

func loadMarketplace(sr protocol.StateReader) (*Marketplace, error) {
	var mp Marketplace
	if err := sr.State(&mp, protocol.NamespaceOption(state.MarketKVNamespace), protocol.AddrKeyOption(protocol.MarketplaceAddress())); err != nil {
		if errors.Cause(err) == state.ErrStateNotExist {
			return nil, errors.Wrap(protocol.ErrInvalidState, "marketplace is not initialized")
		}
		return nil, errors.Wrap(err, "failed to load marketplace root")
	}
	return &mp, nil
}

func storeMarketplace(sm protocol.StateManager, mp *Marketplace) error {
	return sm.PutState(mp, protocol.NamespaceOption(state.MarketKVNamespace), protocol.AddrKeyOption(protocol.MarketplaceAddress()))
}

// initMarketplace creates the registry root with the caller as admin. The
// admin is fixed for the life of the ledger.
func (p *Protocol) initMarketplace(ctx context.Context, act *action.InitMarketplace, sm protocol.StateManager) (*action.Receipt, error) {
	actCtx := protocol.MustGetActionCtx(ctx)
	addr := protocol.MarketplaceAddress()
	if _, err := loadMarketplace(sm); err == nil {
		return nil, errors.Wrap(protocol.ErrInvalidState, "marketplace is already initialized")
	} else if errors.Cause(err) != protocol.ErrInvalidState {
		return nil, err
	}
	mp := Marketplace{
		Admin:  hash.BytesToHash160(actCtx.Caller.Bytes()),
		FeeBps: act.FeeBps(),
	}
	data, err := state.Serialize(&mp)
	if err != nil {
		return nil, err
	}
	establishLog, err := accountutil.Establish(ctx, sm, actCtx.Caller, addr, uint64(len(data)), protocol.CallerAuthority(ctx))
	if err != nil {
		return nil, errors.Wrap(err, "failed to establish the marketplace account")
	}
	if err := storeMarketplace(sm, &mp); err != nil {
		return nil, errors.Wrap(err, "failed to store marketplace root")
	}
	log.L().Info("Marketplace initialized.",
		zap.String("admin", actCtx.Caller.String()),
		zap.Uint16("feeBps", act.FeeBps()))
	return protocol.NewReceipt(ctx, addr, establishLog), nil
}
