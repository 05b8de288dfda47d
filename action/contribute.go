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

const _contributeTag = "contribute"

// Contribute pays an amount into the campaign's custodial balance
type Contribute struct {
	AbstractAction

	amount uint64
}

type contributePayload struct {
	Amount uint64
}

// NewContribute returns a Contribute instance
func NewContribute(amount uint64) *Contribute {
	return &Contribute{
		AbstractAction: AbstractAction{
			version: version.ProtocolVersion,
		},
		amount: amount,
	}
}

// Amount returns the contribution amount in grain
func (c *Contribute) Amount() uint64 { return c.amount }

// ByteStream returns a raw byte stream of this action
func (c *Contribute) ByteStream() []byte {
	stream := c.BasicByteStream(_contributeTag)
	return append(stream, byteutil.Must(borsh.Serialize(contributePayload{
		Amount: c.amount,
	}))...)
}

// SanityCheck validates the variables in the action
func (c *Contribute) SanityCheck() error {
	if c.amount == 0 {
		return errors.Wrap(ErrInvalidAmount, "zero contribution")
	}
	return nil
}
