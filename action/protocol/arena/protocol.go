// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

// Package arena implements two-party escrow matchmaking: a creator opens a
// room with a stake, a challenger matches it, and resolution pays the pot out
// and reclaims the room's storage. Entry to a room is gated on holding a
// verified member of the nominated collection.
package arena

import (
	"context"

	"github.com/pkg/errors"

	"github.com/tradepost-labs/tradepost-core/action"
	"github.com/tradepost-labs/tradepost-core/action/protocol"
	"github.com/tradepost-labs/tradepost-core/action/protocol/metadata"
	"github.com/tradepost-labs/tradepost-core/action/protocol/token"
	"github.com/tradepost-labs/tradepost-core/address"
)

// Protocol is the escrow matchmaking protocol
type Protocol struct{}

// NewProtocol instantiates the escrow matchmaking protocol
func NewProtocol() *Protocol {
	return &Protocol{}
}

// Handle handles the matchmaking actions
func (p *Protocol) Handle(ctx context.Context, act action.Action, sm protocol.StateManager) (*action.Receipt, error) {
	switch act := act.(type) {
	case *action.CreateRoom:
		return p.createRoom(ctx, act, sm)
	case *action.JoinRoom:
		return p.joinRoom(ctx, act, sm)
	case *action.ResolveRoom:
		return p.resolveRoom(ctx, act, sm)
	}
	return nil, nil
}

// Validate validates the matchmaking actions without touching state
func (p *Protocol) Validate(_ context.Context, act action.Action) error {
	switch act := act.(type) {
	case *action.CreateRoom:
		return act.SanityCheck()
	case *action.JoinRoom:
		return act.SanityCheck()
	case *action.ResolveRoom:
		return act.SanityCheck()
	}
	return nil
}

// requireQualifyingItem checks the entry condition shared by create and join:
// the entrant holds at least one unit of the nominated item, and the item is
// a verified member of the expected collection.
func requireQualifyingItem(sr protocol.StateReader, entrant, item, collection address.Address) error {
	held, err := token.Balance(sr, item, entrant)
	if err != nil {
		return err
	}
	if held < 1 {
		return errors.Wrapf(protocol.ErrUnauthorized, "%s does not hold item %s", entrant, item)
	}
	member, err := metadata.BelongsTo(sr, item, collection)
	if err != nil {
		return err
	}
	if !member {
		return errors.Wrapf(protocol.ErrInvalidInput, "item %s is not a verified member of collection %s", item, collection)
	}
	return nil
}
