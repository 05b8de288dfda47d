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
	"github.com/tradepost-labs/tradepost-core/address"
	"github.com/tradepost-labs/tradepost-core/pkg/hash"
	"github.com/tradepost-labs/tradepost-core/pkg/log"
	"github.com/tradepost-labs/tradepost-core/state"
)

// ItemType is a priced, supply-capped template items are minted from.
// CurrentSupply only ever increases; MultiplierBps feeds the staking ledger.
type ItemType struct {
	Collection    hash.Hash160
	Name          string
	URI           string
	Price         uint64
	MaxSupply     uint64
	CurrentSupply uint64
	MultiplierBps uint64
}

// LoadItemType reads an item type record by its address
func LoadItemType(sr protocol.StateReader, addr address.Address) (*ItemType, error) {
	var it ItemType
	if err := sr.State(&it, protocol.NamespaceOption(state.MarketKVNamespace), protocol.AddrKeyOption(addr)); err != nil {
		if errors.Cause(err) == state.ErrStateNotExist {
			return nil, errors.Wrapf(protocol.ErrInvalidState, "item type %s does not exist", addr)
		}
		return nil, errors.Wrapf(err, "failed to load item type %s", addr)
	}
	return &it, nil
}

func storeItemType(sm protocol.StateManager, addr address.Address, it *ItemType) error {
	return sm.PutState(it, protocol.NamespaceOption(state.MarketKVNamespace), protocol.AddrKeyOption(addr))
}

// createItemType creates a mintable item type inside a collection. Only the
// collection admin may create types, and only while the collection is active.
func (p *Protocol) createItemType(ctx context.Context, act *action.CreateItemType, sm protocol.StateManager) (*action.Receipt, error) {
	actCtx := protocol.MustGetActionCtx(ctx)
	coll, err := LoadCollection(sm, act.Collection())
	if err != nil {
		return nil, err
	}
	if !coll.Active {
		return nil, errors.Wrapf(protocol.ErrInvalidState, "collection %q is inactive", coll.Name)
	}
	if coll.Admin != hash.BytesToHash160(actCtx.Caller.Bytes()) {
		return nil, errors.Wrapf(protocol.ErrUnauthorized, "caller %s is not the admin of collection %q", actCtx.Caller, coll.Name)
	}
	if act.MultiplierBps() == 0 {
		return nil, errors.Wrap(protocol.ErrInvalidInput, "zero stake multiplier")
	}
	addr := protocol.ItemTypeAddress(act.Collection(), act.Name())
	if _, err := LoadItemType(sm, addr); err == nil {
		return nil, errors.Wrapf(protocol.ErrInvalidState, "item type %q already exists in collection %q", act.Name(), coll.Name)
	} else if errors.Cause(err) != protocol.ErrInvalidState {
		return nil, err
	}
	it := ItemType{
		Collection:    hash.BytesToHash160(act.Collection().Bytes()),
		Name:          act.Name(),
		URI:           act.URI(),
		Price:         act.Price(),
		MaxSupply:     act.MaxSupply(),
		MultiplierBps: act.MultiplierBps(),
	}
	data, err := state.Serialize(&it)
	if err != nil {
		return nil, err
	}
	establishLog, err := accountutil.Establish(ctx, sm, actCtx.Caller, addr, uint64(len(data)), protocol.CallerAuthority(ctx))
	if err != nil {
		return nil, errors.Wrap(err, "failed to establish the item type account")
	}
	if err := storeItemType(sm, addr, &it); err != nil {
		return nil, errors.Wrapf(err, "failed to store item type %q", act.Name())
	}
	log.L().Info("Item type created.",
		zap.String("name", act.Name()),
		zap.String("collection", coll.Name),
		zap.Uint64("price", act.Price()),
		zap.Uint64("maxSupply", act.MaxSupply()))
	return protocol.NewReceipt(ctx, addr, establishLog), nil
}
