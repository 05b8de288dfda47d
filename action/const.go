// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package action

import "github.com/pkg/errors"

// MaxBasisPoints is the denominator of every basis-point field: 10000 bps = 1.0x
const MaxBasisPoints = uint64(10000)

var (
	// ErrAction indicates error for an action
	ErrAction = errors.New("invalid action")
	// ErrAddress indicates error of address
	ErrAddress = errors.New("invalid address")
	// ErrInvalidAmount indicates the error of amount
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrEmptyField indicates a required text field is empty
	ErrEmptyField = errors.New("empty required field")
	// ErrBasisPoints indicates a rate field above the 10000 bps denominator
	ErrBasisPoints = errors.New("basis points out of range")
	// ErrNonce indicates the error of nonce
	ErrNonce = errors.New("invalid nonce")
)
