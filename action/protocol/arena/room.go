// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package arena

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

// Room life-cycle states
const (
	// RoomWaiting means the room has a creator stake and waits for a challenger
	RoomWaiting = uint8(iota)
	// RoomOngoing means both stakes are escrowed
	RoomOngoing
	// RoomClosed is terminal; a closed room is deleted, so the value never persists
	RoomClosed
)

// Room is a two-party escrow. Creator and RoomID are the derivation seeds, so
// the record can always re-derive its own address and mint its self-authority
// for the payout. HasChallenger distinguishes an unset Challenger from a zero
// one.
type Room struct {
	Creator       hash.Hash160
	Challenger    hash.Hash160
	HasChallenger bool
	RoomID        uint64
	Stake         uint64
	Status        uint8
}

func loadRoom(sr protocol.StateReader, addr address.Address) (*Room, error) {
	var room Room
	if err := sr.State(&room, protocol.NamespaceOption(state.ArenaKVNamespace), protocol.AddrKeyOption(addr)); err != nil {
		if errors.Cause(err) == state.ErrStateNotExist {
			return nil, errors.Wrapf(protocol.ErrInvalidState, "room %s does not exist", addr)
		}
		return nil, errors.Wrapf(err, "failed to load room %s", addr)
	}
	return &room, nil
}

func storeRoom(sm protocol.StateManager, addr address.Address, room *Room) error {
	return sm.PutState(room, protocol.NamespaceOption(state.ArenaKVNamespace), protocol.AddrKeyOption(addr))
}

// createRoom opens a room and escrows the creator's stake on the room's own
// custodial balance
func (p *Protocol) createRoom(ctx context.Context, act *action.CreateRoom, sm protocol.StateManager) (*action.Receipt, error) {
	actCtx := protocol.MustGetActionCtx(ctx)
	if act.Stake() == 0 {
		return nil, errors.Wrap(protocol.ErrInvalidInput, "zero stake")
	}
	if err := requireQualifyingItem(sm, actCtx.Caller, act.Item(), act.Collection()); err != nil {
		return nil, err
	}
	addr := protocol.RoomAddress(actCtx.Caller, act.RoomID())
	if _, err := loadRoom(sm, addr); err == nil {
		return nil, errors.Wrapf(protocol.ErrInvalidState, "room %d of %s already exists", act.RoomID(), actCtx.Caller)
	} else if errors.Cause(err) != protocol.ErrInvalidState {
		return nil, err
	}
	room := Room{
		Creator: hash.BytesToHash160(actCtx.Caller.Bytes()),
		RoomID:  act.RoomID(),
		Stake:   act.Stake(),
		Status:  RoomWaiting,
	}
	data, err := state.Serialize(&room)
	if err != nil {
		return nil, err
	}
	callerAuth := protocol.CallerAuthority(ctx)
	establishLog, err := accountutil.Establish(ctx, sm, actCtx.Caller, addr, uint64(len(data)), callerAuth)
	if err != nil {
		return nil, errors.Wrap(err, "failed to establish the room account")
	}
	depositLog, err := accountutil.Transfer(sm, actCtx.Caller, addr, act.Stake(), callerAuth)
	if err != nil {
		return nil, errors.Wrap(err, "failed to escrow the creator stake")
	}
	if err := storeRoom(sm, addr, &room); err != nil {
		return nil, errors.Wrapf(err, "failed to store room %s", addr)
	}
	log.L().Info("Room created.",
		zap.Uint64("roomID", act.RoomID()),
		zap.String("address", addr.String()),
		zap.Uint64("stake", act.Stake()))
	return protocol.NewReceipt(ctx, addr, establishLog, depositLog), nil
}

// joinRoom enters a waiting room as the challenger, matching the recorded
// stake exactly
func (p *Protocol) joinRoom(ctx context.Context, act *action.JoinRoom, sm protocol.StateManager) (*action.Receipt, error) {
	actCtx := protocol.MustGetActionCtx(ctx)
	room, err := loadRoom(sm, act.Room())
	if err != nil {
		return nil, err
	}
	if room.Status != RoomWaiting {
		return nil, errors.Wrapf(protocol.ErrInvalidState, "room %s is not waiting", act.Room())
	}
	if room.HasChallenger {
		return nil, errors.Wrapf(protocol.ErrInvalidState, "room %s already has a challenger", act.Room())
	}
	if room.Creator == hash.BytesToHash160(actCtx.Caller.Bytes()) {
		return nil, errors.Wrap(protocol.ErrUnauthorized, "creator cannot join its own room")
	}
	if err := requireQualifyingItem(sm, actCtx.Caller, act.Item(), act.Collection()); err != nil {
		return nil, err
	}
	depositLog, err := accountutil.Transfer(sm, actCtx.Caller, act.Room(), room.Stake, protocol.CallerAuthority(ctx))
	if err != nil {
		return nil, errors.Wrap(err, "failed to escrow the challenger stake")
	}
	room.Challenger = hash.BytesToHash160(actCtx.Caller.Bytes())
	room.HasChallenger = true
	room.Status = RoomOngoing
	if err := storeRoom(sm, act.Room(), room); err != nil {
		return nil, errors.Wrapf(err, "failed to store room %s", act.Room())
	}
	log.L().Info("Room joined.",
		zap.String("room", act.Room().String()),
		zap.String("challenger", actCtx.Caller.String()),
		zap.Uint64("stake", room.Stake))
	return protocol.NewReceipt(ctx, act.Room(), depositLog), nil
}

// resolveRoom settles an ongoing room. The creator is always declared the
// winner; there is no operation resolving in the challenger's favor or
// splitting the pot. This is a known gap of the matchmaking design, kept
// as-is rather than papered over with an invented judging policy.
func (p *Protocol) resolveRoom(ctx context.Context, act *action.ResolveRoom, sm protocol.StateManager) (*action.Receipt, error) {
	actCtx := protocol.MustGetActionCtx(ctx)
	room, err := loadRoom(sm, act.Room())
	if err != nil {
		return nil, err
	}
	if room.Status != RoomOngoing {
		return nil, errors.Wrapf(protocol.ErrInvalidState, "room %s is not ongoing", act.Room())
	}
	creator, err := address.FromBytes(room.Creator[:])
	if err != nil {
		return nil, errors.Wrapf(err, "corrupt creator of room %s", act.Room())
	}
	if !address.Equal(actCtx.Caller, creator) {
		return nil, errors.Wrapf(protocol.ErrUnauthorized, "caller %s is not the creator of room %s", actCtx.Caller, act.Room())
	}
	// the record's own seeds re-derive the address that authorizes the payout
	derived := protocol.RoomAddress(creator, room.RoomID)
	if !address.Equal(derived, act.Room()) {
		return nil, errors.Wrapf(protocol.ErrInvalidState, "room %s does not re-derive to its own address", act.Room())
	}
	selfAuth := protocol.EntityAuthority(derived)

	roomAcct, err := accountutil.LoadAccount(sm, derived)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load the account of room %s", derived)
	}
	var payoutLog *action.TransactionLog
	if transferable := roomAcct.SpendableBalance(); transferable > 0 {
		if payoutLog, err = accountutil.Transfer(sm, derived, creator, transferable, selfAuth); err != nil {
			return nil, errors.Wrap(err, "failed to pay out the pot")
		}
	}
	closeLog, err := accountutil.Close(sm, derived, creator, selfAuth)
	if err != nil {
		return nil, errors.Wrap(err, "failed to close the room account")
	}
	if err := sm.DelState(protocol.NamespaceOption(state.ArenaKVNamespace), protocol.AddrKeyOption(derived)); err != nil {
		return nil, errors.Wrapf(err, "failed to delete room %s", derived)
	}
	log.L().Info("Room resolved.",
		zap.String("room", derived.String()),
		zap.String("winner", creator.String()))
	return protocol.NewReceipt(ctx, derived, payoutLog, closeLog), nil
}
