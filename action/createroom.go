// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package action

import (
	"github.com/near/borsh-go"
	"github.com/pkg/errors"

	"github.com/tradepost-labs/tradepost-core/address"
	"github.com/tradepost-labs/tradepost-core/pkg/hash"
	"github.com/tradepost-labs/tradepost-core/pkg/util/byteutil"
	"github.com/tradepost-labs/tradepost-core/pkg/version"
)

const _createRoomTag = "createRoom"

// CreateRoom opens an escrow room and deposits the creator's stake. The
// nominated item proves the creator holds a verified member of the collection.
type CreateRoom struct {
	AbstractAction

	roomID     uint64
	stake      uint64
	item       address.Address
	collection address.Address
}

type createRoomPayload struct {
	RoomID     uint64
	Stake      uint64
	Item       hash.Hash160
	Collection hash.Hash160
}

// NewCreateRoom returns a CreateRoom instance
func NewCreateRoom(roomID, stake uint64, item, collection address.Address) *CreateRoom {
	return &CreateRoom{
		AbstractAction: AbstractAction{
			version: version.ProtocolVersion,
		},
		roomID:     roomID,
		stake:      stake,
		item:       item,
		collection: collection,
	}
}

// RoomID returns the creator-chosen room identifier
func (cr *CreateRoom) RoomID() uint64 { return cr.roomID }

// Stake returns the stake amount in grain
func (cr *CreateRoom) Stake() uint64 { return cr.stake }

// Item returns the nominated item address
func (cr *CreateRoom) Item() address.Address { return cr.item }

// Collection returns the collection the item must belong to
func (cr *CreateRoom) Collection() address.Address { return cr.collection }

// ByteStream returns a raw byte stream of this action
func (cr *CreateRoom) ByteStream() []byte {
	stream := cr.BasicByteStream(_createRoomTag)
	return append(stream, byteutil.Must(borsh.Serialize(createRoomPayload{
		RoomID:     cr.roomID,
		Stake:      cr.stake,
		Item:       hash.BytesToHash160(cr.item.Bytes()),
		Collection: hash.BytesToHash160(cr.collection.Bytes()),
	}))...)
}

// SanityCheck validates the variables in the action
func (cr *CreateRoom) SanityCheck() error {
	if cr.stake == 0 {
		return errors.Wrap(ErrInvalidAmount, "zero stake")
	}
	if cr.item == nil {
		return errors.Wrap(ErrAddress, "empty item")
	}
	if cr.collection == nil {
		return errors.Wrap(ErrAddress, "empty collection")
	}
	return nil
}
