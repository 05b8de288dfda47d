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
	"github.com/tradepost-labs/tradepost-core/action/protocol/metadata"
	"github.com/tradepost-labs/tradepost-core/action/protocol/token"
	"github.com/tradepost-labs/tradepost-core/address"
	"github.com/tradepost-labs/tradepost-core/pkg/hash"
	"github.com/tradepost-labs/tradepost-core/pkg/log"
	"github.com/tradepost-labs/tradepost-core/pkg/util/mathutil"
	"github.com/tradepost-labs/tradepost-core/state"
)

// Collection is a named collection of item types. The creator is its admin;
// the collection's own address doubles as its representative token unit.
// Active is an extension point, nothing deactivates a collection yet.
type Collection struct {
	Admin      hash.Hash160
	Name       string
	Symbol     string
	URI        string
	RoyaltyBps uint16
	Unit       hash.Hash160
	Active     bool
}

// LoadCollection reads a collection record by its address
func LoadCollection(sr protocol.StateReader, addr address.Address) (*Collection, error) {
	var coll Collection
	if err := sr.State(&coll, protocol.NamespaceOption(state.MarketKVNamespace), protocol.AddrKeyOption(addr)); err != nil {
		if errors.Cause(err) == state.ErrStateNotExist {
			return nil, errors.Wrapf(protocol.ErrInvalidState, "collection %s does not exist", addr)
		}
		return nil, errors.Wrapf(err, "failed to load collection %s", addr)
	}
	return &coll, nil
}

func storeCollection(sm protocol.StateManager, addr address.Address, coll *Collection) error {
	return sm.PutState(coll, protocol.NamespaceOption(state.MarketKVNamespace), protocol.AddrKeyOption(addr))
}

// createCollection creates a named collection, issues its supply-1
// representative unit to the caller and writes its finalized descriptor. The
// name is unique ledger-wide: a second creation collides on the derived
// address.
func (p *Protocol) createCollection(ctx context.Context, act *action.CreateCollection, sm protocol.StateManager) (*action.Receipt, error) {
	actCtx := protocol.MustGetActionCtx(ctx)
	mp, err := loadMarketplace(sm)
	if err != nil {
		return nil, err
	}
	addr := protocol.CollectionAddress(act.Name())
	if _, err := LoadCollection(sm, addr); err == nil {
		return nil, errors.Wrapf(protocol.ErrInvalidState, "collection name %q is taken", act.Name())
	} else if errors.Cause(err) != protocol.ErrInvalidState {
		return nil, err
	}
	coll := Collection{
		Admin:      hash.BytesToHash160(actCtx.Caller.Bytes()),
		Name:       act.Name(),
		Symbol:     act.Symbol(),
		URI:        act.URI(),
		RoyaltyBps: act.RoyaltyBps(),
		Unit:       hash.BytesToHash160(addr.Bytes()),
		Active:     true,
	}
	data, err := state.Serialize(&coll)
	if err != nil {
		return nil, err
	}
	establishLog, err := accountutil.Establish(ctx, sm, actCtx.Caller, addr, uint64(len(data)), protocol.CallerAuthority(ctx))
	if err != nil {
		return nil, errors.Wrap(err, "failed to establish the collection account")
	}
	selfAuth := protocol.EntityAuthority(addr)

	// the representative unit: supply 1, issued to the creator
	if err := token.CreateUnit(sm, addr, addr, 0); err != nil {
		return nil, errors.Wrap(err, "failed to create the collection unit")
	}
	issueLog, err := token.Issue(sm, addr, actCtx.Caller, 1, selfAuth)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue the collection unit")
	}
	if err := metadata.Write(sm, addr, metadata.Record{
		Name:       act.Name(),
		Symbol:     act.Symbol(),
		URI:        act.URI(),
		RoyaltyBps: act.RoyaltyBps(),
	}, selfAuth); err != nil {
		return nil, errors.Wrap(err, "failed to write the collection descriptor")
	}
	if err := metadata.Finalize(sm, addr, selfAuth); err != nil {
		return nil, errors.Wrap(err, "failed to finalize the collection descriptor")
	}
	if err := storeCollection(sm, addr, &coll); err != nil {
		return nil, errors.Wrapf(err, "failed to store collection %q", act.Name())
	}
	mp.Collections = mathutil.AddSaturate(mp.Collections, 1)
	if err := storeMarketplace(sm, mp); err != nil {
		return nil, errors.Wrap(err, "failed to store marketplace root")
	}
	log.L().Info("Collection created.",
		zap.String("name", act.Name()),
		zap.String("address", addr.String()),
		zap.String("admin", actCtx.Caller.String()))
	return protocol.NewReceipt(ctx, addr, establishLog, issueLog), nil
}
