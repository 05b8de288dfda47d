// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package unit

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConversions(t *testing.T) {
	require := require.New(t)

	require.Equal(uint64(1_000_000_000), MarkToGrain(1))
	require.Equal(uint64(845_000_000_000), MarkToGrain(845))
	require.Equal(uint64(math.MaxUint64), MarkToGrain(math.MaxUint64))
	require.Equal(uint64(845), GrainToMark(MarkToGrain(845)))
	require.Equal(uint64(0), GrainToMark(Mark-1))
}

func TestFormat(t *testing.T) {
	require := require.New(t)

	require.Equal("0.000000000", Format(0))
	require.Equal("0.000000001", Format(1))
	require.Equal("1.000000000", Format(Mark))
	require.Equal("845.500000000", Format(845*Mark+Mark/2))
}
