// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

// Package unit defines the native currency units. All persisted amounts are
// denominated in Grain, the indivisible base unit.
package unit

import (
	"fmt"

	"github.com/tradepost-labs/tradepost-core/pkg/util/mathutil"
)

const (
	// Grain is the smallest non-fungible balance unit
	Grain uint64 = 1
	// KGrain is 1000 Grain
	KGrain = 1000 * Grain
	// MGrain is 10^6 Grain
	MGrain = 1000 * KGrain
	// Mark is the canonical display unit, 10^9 Grain
	Mark = 1000 * MGrain
)

// MarkToGrain converts an amount of Mark into Grain, clamping on overflow
func MarkToGrain(mark uint64) uint64 {
	return mathutil.MulSaturate(mark, Mark)
}

// GrainToMark returns the whole-Mark part of an amount of Grain
func GrainToMark(grain uint64) uint64 {
	return grain / Mark
}

// Format renders an amount of Grain as a decimal Mark string for logs and CLI output
func Format(grain uint64) string {
	return fmt.Sprintf("%d.%09d", grain/Mark, grain%Mark)
}
