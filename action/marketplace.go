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

const _initMarketplaceTag = "initMarketplace"

// InitMarketplace creates the marketplace root with the caller as admin
type InitMarketplace struct {
	AbstractAction

	feeBps uint16
}

type initMarketplacePayload struct {
	FeeBps uint16
}

// NewInitMarketplace returns an InitMarketplace instance
func NewInitMarketplace(feeBps uint16) *InitMarketplace {
	return &InitMarketplace{
		AbstractAction: AbstractAction{
			version: version.ProtocolVersion,
		},
		feeBps: feeBps,
	}
}

// FeeBps returns the marketplace fee rate in basis points
func (im *InitMarketplace) FeeBps() uint16 { return im.feeBps }

// ByteStream returns a raw byte stream of this action
func (im *InitMarketplace) ByteStream() []byte {
	stream := im.BasicByteStream(_initMarketplaceTag)
	return append(stream, byteutil.Must(borsh.Serialize(initMarketplacePayload{
		FeeBps: im.feeBps,
	}))...)
}

// SanityCheck validates the variables in the action
func (im *InitMarketplace) SanityCheck() error {
	if uint64(im.feeBps) > MaxBasisPoints {
		return errors.Wrapf(ErrBasisPoints, "fee %d bps", im.feeBps)
	}
	return nil
}
