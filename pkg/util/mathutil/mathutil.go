// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

// Package mathutil provides saturating uint64 arithmetic. Money and reward
// paths use these exclusively: results clamp at the numeric bounds instead of
// wrapping. The clamp is silent, callers that need to reject overflow must
// check for it themselves.
package mathutil

import (
	"math"
	"math/bits"
)

// AddSaturate returns a+b, clamped to MaxUint64 on overflow
func AddSaturate(a, b uint64) uint64 {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return math.MaxUint64
	}
	return sum
}

// SubSaturate returns a-b, clamped to 0 on underflow
func SubSaturate(a, b uint64) uint64 {
	diff, borrow := bits.Sub64(a, b, 0)
	if borrow != 0 {
		return 0
	}
	return diff
}

// MulSaturate returns a*b, clamped to MaxUint64 on overflow
func MulSaturate(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return math.MaxUint64
	}
	return lo
}

// DivSaturate returns a/b. Division by zero yields 0, keeping the function
// total; money paths never feed a zero denominator.
func DivSaturate(a, b uint64) uint64 {
	if b == 0 {
		return 0
	}
	return a / b
}
