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

const (
	_initStakePoolTag  = "initStakePool"
	_fundRewardPoolTag = "fundRewardPool"
)

// InitStakePool creates the staking pool and its reward unit, with the
// caller as admin
type InitStakePool struct {
	AbstractAction

	ratePerSecond uint64
}

type initStakePoolPayload struct {
	RatePerSecond uint64
}

// NewInitStakePool returns an InitStakePool instance
func NewInitStakePool(ratePerSecond uint64) *InitStakePool {
	return &InitStakePool{
		AbstractAction: AbstractAction{
			version: version.ProtocolVersion,
		},
		ratePerSecond: ratePerSecond,
	}
}

// RatePerSecond returns the base reward emission rate
func (ip *InitStakePool) RatePerSecond() uint64 { return ip.ratePerSecond }

// ByteStream returns a raw byte stream of this action
func (ip *InitStakePool) ByteStream() []byte {
	stream := ip.BasicByteStream(_initStakePoolTag)
	return append(stream, byteutil.Must(borsh.Serialize(initStakePoolPayload{
		RatePerSecond: ip.ratePerSecond,
	}))...)
}

// SanityCheck validates the variables in the action
func (ip *InitStakePool) SanityCheck() error { return nil }

// FundRewardPool issues reward units into the pool's own reserve holding
type FundRewardPool struct {
	AbstractAction

	qty uint64
}

type fundRewardPoolPayload struct {
	Qty uint64
}

// NewFundRewardPool returns a FundRewardPool instance
func NewFundRewardPool(qty uint64) *FundRewardPool {
	return &FundRewardPool{
		AbstractAction: AbstractAction{
			version: version.ProtocolVersion,
		},
		qty: qty,
	}
}

// Qty returns the quantity of reward units to issue
func (fp *FundRewardPool) Qty() uint64 { return fp.qty }

// ByteStream returns a raw byte stream of this action
func (fp *FundRewardPool) ByteStream() []byte {
	stream := fp.BasicByteStream(_fundRewardPoolTag)
	return append(stream, byteutil.Must(borsh.Serialize(fundRewardPoolPayload{
		Qty: fp.qty,
	}))...)
}

// SanityCheck validates the variables in the action
func (fp *FundRewardPool) SanityCheck() error {
	if fp.qty == 0 {
		return errors.Wrap(ErrInvalidAmount, "zero funding quantity")
	}
	return nil
}
