// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package action

import (
	"github.com/near/borsh-go"
	"github.com/pkg/errors"

	"github.com/tradepost-labs/tradepost-core/pkg/util/byteutil"
	"github.com/tradepost-labs/tradepost-core/pkg/version"
)

const _createCollectionTag = "createCollection"

// CreateCollection creates a named collection under the marketplace root
type CreateCollection struct {
	AbstractAction

	name       string
	symbol     string
	uri        string
	royaltyBps uint16
}

type createCollectionPayload struct {
	Name       string
	Symbol     string
	URI        string
	RoyaltyBps uint16
}

// NewCreateCollection returns a CreateCollection instance
func NewCreateCollection(name, symbol, uri string, royaltyBps uint16) *CreateCollection {
	return &CreateCollection{
		AbstractAction: AbstractAction{
			version: version.ProtocolVersion,
		},
		name:       name,
		symbol:     symbol,
		uri:        uri,
		royaltyBps: royaltyBps,
	}
}

// Name returns the collection name
func (cc *CreateCollection) Name() string { return cc.name }

// Symbol returns the collection symbol
func (cc *CreateCollection) Symbol() string { return cc.symbol }

// URI returns the collection descriptor URI
func (cc *CreateCollection) URI() string { return cc.uri }

// RoyaltyBps returns the royalty rate in basis points
func (cc *CreateCollection) RoyaltyBps() uint16 { return cc.royaltyBps }

// ByteStream returns a raw byte stream of this action
func (cc *CreateCollection) ByteStream() []byte {
	stream := cc.BasicByteStream(_createCollectionTag)
	return append(stream, byteutil.Must(borsh.Serialize(createCollectionPayload{
		Name:       cc.name,
		Symbol:     cc.symbol,
		URI:        cc.uri,
		RoyaltyBps: cc.royaltyBps,
	}))...)
}

// SanityCheck validates the variables in the action
func (cc *CreateCollection) SanityCheck() error {
	if cc.name == "" {
		return errors.Wrap(ErrEmptyField, "collection name")
	}
	if cc.symbol == "" {
		return errors.Wrap(ErrEmptyField, "collection symbol")
	}
	if uint64(cc.royaltyBps) > MaxBasisPoints {
		return errors.Wrapf(ErrBasisPoints, "royalty %d bps", cc.royaltyBps)
	}
	return nil
}
