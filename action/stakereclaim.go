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

const (
	_claimRewardsTag = "claimRewards"
	_unstakeItemTag  = "unstakeItem"
)

// reclaimStake is the shared base of the two stake-record operations, which
// both name the staked item only
type reclaimStake struct {
	AbstractAction

	item address.Address
}

type reclaimStakePayload struct {
	Item hash.Hash160
}

// Item returns the staked item address
func (rs *reclaimStake) Item() address.Address { return rs.item }

// SanityCheck validates the variables in the action
func (rs *reclaimStake) SanityCheck() error {
	if rs.item == nil {
		return errors.Wrap(ErrAddress, "empty item")
	}
	return nil
}

func (rs *reclaimStake) byteStream(tag string) []byte {
	stream := rs.BasicByteStream(tag)
	return append(stream, byteutil.Must(borsh.Serialize(reclaimStakePayload{
		Item: hash.BytesToHash160(rs.item.Bytes()),
	}))...)
}

// ClaimRewards pays the accrued reward of a stake record and advances its
// last-claim time
type ClaimRewards struct {
	reclaimStake
}

// NewClaimRewards returns a ClaimRewards instance
func NewClaimRewards(item address.Address) *ClaimRewards {
	return &ClaimRewards{
		reclaimStake{
			AbstractAction: AbstractAction{
				version: version.ProtocolVersion,
			},
			item: item,
		},
	}
}

// ByteStream returns a raw byte stream of this action
func (cr *ClaimRewards) ByteStream() []byte {
	return cr.byteStream(_claimRewardsTag)
}

// UnstakeItem pays the final reward, returns the item to its owner and
// destroys the stake record
type UnstakeItem struct {
	reclaimStake
}

// NewUnstakeItem returns an UnstakeItem instance
func NewUnstakeItem(item address.Address) *UnstakeItem {
	return &UnstakeItem{
		reclaimStake{
			AbstractAction: AbstractAction{
				version: version.ProtocolVersion,
			},
			item: item,
		},
	}
}

// ByteStream returns a raw byte stream of this action
func (ui *UnstakeItem) ByteStream() []byte {
	return ui.byteStream(_unstakeItemTag)
}
