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

const _createItemTypeTag = "createItemType"

// CreateItemType creates a mintable item type inside a collection
type CreateItemType struct {
	AbstractAction

	collection    address.Address
	name          string
	uri           string
	price         uint64
	maxSupply     uint64
	multiplierBps uint64
}

type createItemTypePayload struct {
	Collection    hash.Hash160
	Name          string
	URI           string
	Price         uint64
	MaxSupply     uint64
	MultiplierBps uint64
}

// NewCreateItemType returns a CreateItemType instance
func NewCreateItemType(
	collection address.Address,
	name, uri string,
	price, maxSupply, multiplierBps uint64,
) *CreateItemType {
	return &CreateItemType{
		AbstractAction: AbstractAction{
			version: version.ProtocolVersion,
		},
		collection:    collection,
		name:          name,
		uri:           uri,
		price:         price,
		maxSupply:     maxSupply,
		multiplierBps: multiplierBps,
	}
}

// Collection returns the parent collection address
func (cit *CreateItemType) Collection() address.Address { return cit.collection }

// Name returns the item type name
func (cit *CreateItemType) Name() string { return cit.name }

// URI returns the item type descriptor URI
func (cit *CreateItemType) URI() string { return cit.uri }

// Price returns the unit price in grain
func (cit *CreateItemType) Price() uint64 { return cit.price }

// MaxSupply returns the mintable supply cap
func (cit *CreateItemType) MaxSupply() uint64 { return cit.maxSupply }

// MultiplierBps returns the staking reward multiplier in basis points
func (cit *CreateItemType) MultiplierBps() uint64 { return cit.multiplierBps }

// ByteStream returns a raw byte stream of this action
func (cit *CreateItemType) ByteStream() []byte {
	stream := cit.BasicByteStream(_createItemTypeTag)
	return append(stream, byteutil.Must(borsh.Serialize(createItemTypePayload{
		Collection:    hash.BytesToHash160(cit.collection.Bytes()),
		Name:          cit.name,
		URI:           cit.uri,
		Price:         cit.price,
		MaxSupply:     cit.maxSupply,
		MultiplierBps: cit.multiplierBps,
	}))...)
}

// SanityCheck validates the variables in the action
func (cit *CreateItemType) SanityCheck() error {
	if cit.collection == nil {
		return errors.Wrap(ErrAddress, "empty collection")
	}
	if cit.name == "" {
		return errors.Wrap(ErrEmptyField, "item type name")
	}
	if cit.maxSupply == 0 {
		return errors.Wrap(ErrInvalidAmount, "zero max supply")
	}
	if cit.multiplierBps == 0 {
		return errors.Wrap(ErrInvalidAmount, "zero multiplier")
	}
	return nil
}
