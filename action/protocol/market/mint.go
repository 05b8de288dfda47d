// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package market

import (
	"context"
	"fmt"

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
)

// mintItem mints the next sequential item of a type to the caller: payment to
// the collection admin, unit issuance, descriptor write, membership
// verification and the supply bump land atomically or not at all.
func (p *Protocol) mintItem(ctx context.Context, act *action.MintItem, sm protocol.StateManager) (*action.Receipt, error) {
	actCtx := protocol.MustGetActionCtx(ctx)
	it, err := LoadItemType(sm, act.ItemType())
	if err != nil {
		return nil, err
	}
	collAddr, err := address.FromBytes(it.Collection[:])
	if err != nil {
		return nil, errors.Wrapf(err, "corrupt collection reference of item type %s", act.ItemType())
	}
	coll, err := LoadCollection(sm, collAddr)
	if err != nil {
		return nil, err
	}
	if !coll.Active {
		return nil, errors.Wrapf(protocol.ErrInvalidState, "collection %q is inactive", coll.Name)
	}
	if it.CurrentSupply >= it.MaxSupply {
		return nil, errors.Wrapf(protocol.ErrCapacityExceeded, "item type %q sold out at %d", it.Name, it.MaxSupply)
	}
	index := it.CurrentSupply + 1

	// payment goes straight to the collection admin, never escrowed
	admin, err := address.FromBytes(coll.Admin[:])
	if err != nil {
		return nil, errors.Wrapf(err, "corrupt admin of collection %q", coll.Name)
	}
	payLog, err := accountutil.Transfer(sm, actCtx.Caller, admin, it.Price, protocol.CallerAuthority(ctx))
	if err != nil {
		return nil, errors.Wrap(err, "failed to pay the unit price")
	}

	itemAddr := protocol.ItemAddress(act.ItemType(), index)
	selfAuth := protocol.EntityAuthority(collAddr)
	if err := token.CreateUnit(sm, itemAddr, collAddr, 0); err != nil {
		return nil, errors.Wrapf(err, "failed to create the unit of item #%d", index)
	}
	issueLog, err := token.Issue(sm, itemAddr, actCtx.Caller, 1, selfAuth)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to issue item #%d", index)
	}
	if err := metadata.Write(sm, itemAddr, metadata.Record{
		Name:       fmt.Sprintf("%s #%d", it.Name, index),
		Symbol:     coll.Symbol,
		URI:        it.URI,
		RoyaltyBps: coll.RoyaltyBps,
		Collection: hash.BytesToHash160(collAddr.Bytes()),
	}, selfAuth); err != nil {
		return nil, errors.Wrapf(err, "failed to write the descriptor of item #%d", index)
	}
	if err := metadata.Verify(sm, itemAddr, collAddr, selfAuth); err != nil {
		return nil, errors.Wrapf(err, "failed to verify membership of item #%d", index)
	}

	it.CurrentSupply = index
	if err := storeItemType(sm, act.ItemType(), it); err != nil {
		return nil, errors.Wrapf(err, "failed to store item type %q", it.Name)
	}
	log.L().Info("Item minted.",
		zap.String("type", it.Name),
		zap.Uint64("index", index),
		zap.String("item", itemAddr.String()),
		zap.String("buyer", actCtx.Caller.String()))
	return protocol.NewReceipt(ctx, itemAddr, payLog, issueLog), nil
}
