// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package protocol

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tradepost-labs/tradepost-core/pkg/hash"
	"github.com/tradepost-labs/tradepost-core/test/identityset"
)

func TestContextCarriers(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	_, ok := GetBlockCtx(ctx)
	require.False(ok)
	_, ok = GetActionCtx(ctx)
	require.False(ok)
	require.Panics(func() { MustGetBlockCtx(ctx) })
	require.Panics(func() { MustGetActionCtx(ctx) })

	now := time.Unix(1700000000, 0)
	ctx = WithBlockCtx(ctx, BlockCtx{BlockHeight: 12, BlockTimeStamp: now})
	ctx = WithActionCtx(ctx, ActionCtx{
		Caller:     identityset.Address(0),
		ActionHash: hash.Hash256b([]byte("op")),
		Nonce:      3,
	})

	blkCtx := MustGetBlockCtx(ctx)
	require.Equal(uint64(12), blkCtx.BlockHeight)
	require.Equal(now, blkCtx.BlockTimeStamp)

	actionCtx := MustGetActionCtx(ctx)
	require.Equal(identityset.Address(0).String(), actionCtx.Caller.String())
	require.Equal(uint64(3), actionCtx.Nonce)
}

func TestAuthority(t *testing.T) {
	require := require.New(t)

	caller := identityset.Address(1)
	other := identityset.Address(2)
	ctx := WithActionCtx(context.Background(), ActionCtx{Caller: caller})

	auth := CallerAuthority(ctx)
	require.True(auth.Covers(caller))
	require.False(auth.Covers(other))
	require.Equal(caller.String(), auth.Address().String())

	room := RoomAddress(caller, 7)
	roomAuth := EntityAuthority(room)
	require.True(roomAuth.Covers(room))
	require.False(roomAuth.Covers(caller))

	// a zero authority covers nothing
	var none Authority
	require.False(none.Covers(caller))
}
