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

const _mintItemTag = "mintItem"

// MintItem mints the next sequential item of an item type to the caller
type MintItem struct {
	AbstractAction

	itemType address.Address
}

type mintItemPayload struct {
	ItemType hash.Hash160
}

// NewMintItem returns a MintItem instance
func NewMintItem(itemType address.Address) *MintItem {
	return &MintItem{
		AbstractAction: AbstractAction{
			version: version.ProtocolVersion,
		},
		itemType: itemType,
	}
}

// ItemType returns the item type address
func (mi *MintItem) ItemType() address.Address { return mi.itemType }

// ByteStream returns a raw byte stream of this action
func (mi *MintItem) ByteStream() []byte {
	stream := mi.BasicByteStream(_mintItemTag)
	return append(stream, byteutil.Must(borsh.Serialize(mintItemPayload{
		ItemType: hash.BytesToHash160(mi.itemType.Bytes()),
	}))...)
}

// SanityCheck validates the variables in the action
func (mi *MintItem) SanityCheck() error {
	if mi.itemType == nil {
		return errors.Wrap(ErrAddress, "empty item type")
	}
	return nil
}
