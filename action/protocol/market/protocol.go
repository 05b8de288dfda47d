// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

// Package market implements the collection and item registry: the marketplace
// root, named collections, priced item types with supply caps, and sequential
// item minting backed by the token and metadata services.
package market

import (
	"context"

	"github.com/tradepost-labs/tradepost-core/action"
	"github.com/tradepost-labs/tradepost-core/action/protocol"
)

// Protocol is the registry protocol
type Protocol struct{}

// NewProtocol instantiates the registry protocol
func NewProtocol() *Protocol {
	return &Protocol{}
}

// Handle handles the registry actions
func (p *Protocol) Handle(ctx context.Context, act action.Action, sm protocol.StateManager) (*action.Receipt, error) {
	switch act := act.(type) {
	case *action.InitMarketplace:
		return p.initMarketplace(ctx, act, sm)
	case *action.CreateCollection:
		return p.createCollection(ctx, act, sm)
	case *action.CreateItemType:
		return p.createItemType(ctx, act, sm)
	case *action.MintItem:
		return p.mintItem(ctx, act, sm)
	}
	return nil, nil
}

// Validate validates the registry actions without touching state
func (p *Protocol) Validate(_ context.Context, act action.Action) error {
	switch act := act.(type) {
	case *action.InitMarketplace:
		return act.SanityCheck()
	case *action.CreateCollection:
		return act.SanityCheck()
	case *action.CreateItemType:
		return act.SanityCheck()
	case *action.MintItem:
		return act.SanityCheck()
	}
	return nil
}
