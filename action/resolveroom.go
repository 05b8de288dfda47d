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

const _resolveRoomTag = "resolveRoom"

// ResolveRoom settles an ongoing room, pays the pot to the creator and
// reclaims the room's storage
type ResolveRoom struct {
	AbstractAction

	room address.Address
}

type resolveRoomPayload struct {
	Room hash.Hash160
}

// NewResolveRoom returns a ResolveRoom instance
func NewResolveRoom(room address.Address) *ResolveRoom {
	return &ResolveRoom{
		AbstractAction: AbstractAction{
			version: version.ProtocolVersion,
		},
		room: room,
	}
}

// Room returns the room address
func (rr *ResolveRoom) Room() address.Address { return rr.room }

// ByteStream returns a raw byte stream of this action
func (rr *ResolveRoom) ByteStream() []byte {
	stream := rr.BasicByteStream(_resolveRoomTag)
	return append(stream, byteutil.Must(borsh.Serialize(resolveRoomPayload{
		Room: hash.BytesToHash160(rr.room.Bytes()),
	}))...)
}

// SanityCheck validates the variables in the action
func (rr *ResolveRoom) SanityCheck() error {
	if rr.room == nil {
		return errors.Wrap(ErrAddress, "empty room")
	}
	return nil
}
