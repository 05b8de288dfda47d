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

const _joinRoomTag = "joinRoom"

// JoinRoom enters a waiting room as the challenger and matches its stake
type JoinRoom struct {
	AbstractAction

	room       address.Address
	item       address.Address
	collection address.Address
}

type joinRoomPayload struct {
	Room       hash.Hash160
	Item       hash.Hash160
	Collection hash.Hash160
}

// NewJoinRoom returns a JoinRoom instance
func NewJoinRoom(room, item, collection address.Address) *JoinRoom {
	return &JoinRoom{
		AbstractAction: AbstractAction{
			version: version.ProtocolVersion,
		},
		room:       room,
		item:       item,
		collection: collection,
	}
}

// Room returns the room address
func (jr *JoinRoom) Room() address.Address { return jr.room }

// Item returns the nominated item address
func (jr *JoinRoom) Item() address.Address { return jr.item }

// Collection returns the collection the item must belong to
func (jr *JoinRoom) Collection() address.Address { return jr.collection }

// ByteStream returns a raw byte stream of this action
func (jr *JoinRoom) ByteStream() []byte {
	stream := jr.BasicByteStream(_joinRoomTag)
	return append(stream, byteutil.Must(borsh.Serialize(joinRoomPayload{
		Room:       hash.BytesToHash160(jr.room.Bytes()),
		Item:       hash.BytesToHash160(jr.item.Bytes()),
		Collection: hash.BytesToHash160(jr.collection.Bytes()),
	}))...)
}

// SanityCheck validates the variables in the action
func (jr *JoinRoom) SanityCheck() error {
	if jr.room == nil {
		return errors.Wrap(ErrAddress, "empty room")
	}
	if jr.item == nil {
		return errors.Wrap(ErrAddress, "empty item")
	}
	if jr.collection == nil {
		return errors.Wrap(ErrAddress, "empty collection")
	}
	return nil
}
