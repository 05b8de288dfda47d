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

const _stakeItemTag = "stakeItem"

// StakeItem locks one unit of an item into the pool and starts reward accrual
type StakeItem struct {
	AbstractAction

	item       address.Address
	itemType   address.Address
	collection address.Address
}

type stakeItemPayload struct {
	Item       hash.Hash160
	ItemType   hash.Hash160
	Collection hash.Hash160
}

// NewStakeItem returns a StakeItem instance
func NewStakeItem(item, itemType, collection address.Address) *StakeItem {
	return &StakeItem{
		AbstractAction: AbstractAction{
			version: version.ProtocolVersion,
		},
		item:       item,
		itemType:   itemType,
		collection: collection,
	}
}

// Item returns the item address
func (si *StakeItem) Item() address.Address { return si.item }

// ItemType returns the item type address the multiplier is snapshotted from
func (si *StakeItem) ItemType() address.Address { return si.itemType }

// Collection returns the collection the item must belong to
func (si *StakeItem) Collection() address.Address { return si.collection }

// ByteStream returns a raw byte stream of this action
func (si *StakeItem) ByteStream() []byte {
	stream := si.BasicByteStream(_stakeItemTag)
	return append(stream, byteutil.Must(borsh.Serialize(stakeItemPayload{
		Item:       hash.BytesToHash160(si.item.Bytes()),
		ItemType:   hash.BytesToHash160(si.itemType.Bytes()),
		Collection: hash.BytesToHash160(si.collection.Bytes()),
	}))...)
}

// SanityCheck validates the variables in the action
func (si *StakeItem) SanityCheck() error {
	if si.item == nil {
		return errors.Wrap(ErrAddress, "empty item")
	}
	if si.itemType == nil {
		return errors.Wrap(ErrAddress, "empty item type")
	}
	if si.collection == nil {
		return errors.Wrap(ErrAddress, "empty collection")
	}
	return nil
}
