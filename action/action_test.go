// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package action

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/tradepost-labs/tradepost-core/address"
	"github.com/tradepost-labs/tradepost-core/test/identityset"
)

func TestSanityCheck(t *testing.T) {
	require := require.New(t)
	item := identityset.Address(10)
	itemType := identityset.Address(11)
	collection := identityset.Address(12)
	room := identityset.Address(13)

	for _, test := range []struct {
		name string
		act  Action
		err  error
	}{
		{"init marketplace", NewInitMarketplace(250), nil},
		{"fee above denominator", NewInitMarketplace(10001), ErrBasisPoints},
		{"create collection", NewCreateCollection("heroes", "HERO", "ipfs://col", 500), nil},
		{"collection without name", NewCreateCollection("", "HERO", "", 0), ErrEmptyField},
		{"collection without symbol", NewCreateCollection("heroes", "", "", 0), ErrEmptyField},
		{"royalty above denominator", NewCreateCollection("heroes", "HERO", "", 10001), ErrBasisPoints},
		{"create item type", NewCreateItemType(collection, "sword", "ipfs://sword", 100, 10, 20000), nil},
		{"item type without collection", NewCreateItemType(nil, "sword", "", 100, 10, 20000), ErrAddress},
		{"item type without name", NewCreateItemType(collection, "", "", 100, 10, 20000), ErrEmptyField},
		{"zero max supply", NewCreateItemType(collection, "sword", "", 100, 0, 20000), ErrInvalidAmount},
		{"zero multiplier", NewCreateItemType(collection, "sword", "", 100, 10, 0), ErrInvalidAmount},
		{"mint item", NewMintItem(itemType), nil},
		{"mint without item type", NewMintItem(nil), ErrAddress},
		{"create room", NewCreateRoom(1, 5, item, collection), nil},
		{"zero stake", NewCreateRoom(1, 0, item, collection), ErrInvalidAmount},
		{"room without item", NewCreateRoom(1, 5, nil, collection), ErrAddress},
		{"join room", NewJoinRoom(room, item, collection), nil},
		{"join without room", NewJoinRoom(nil, item, collection), ErrAddress},
		{"resolve room", NewResolveRoom(room), nil},
		{"init campaign", NewInitCampaign(), nil},
		{"restart campaign", NewRestartCampaign(), nil},
		{"contribute", NewContribute(100), nil},
		{"zero contribution", NewContribute(0), ErrInvalidAmount},
		{"end campaign", NewEndCampaign(), nil},
		{"init stake pool", NewInitStakePool(100), nil},
		{"fund reward pool", NewFundRewardPool(5000), nil},
		{"zero funding", NewFundRewardPool(0), ErrInvalidAmount},
		{"stake item", NewStakeItem(item, itemType, collection), nil},
		{"stake without item type", NewStakeItem(item, nil, collection), ErrAddress},
		{"claim rewards", NewClaimRewards(item), nil},
		{"claim without item", NewClaimRewards(nil), ErrAddress},
		{"unstake item", NewUnstakeItem(item), nil},
	} {
		err := test.act.SanityCheck()
		if test.err == nil {
			require.NoError(err, test.name)
		} else {
			require.Equal(test.err, errors.Cause(err), test.name)
		}
	}
}

func TestByteStream(t *testing.T) {
	require := require.New(t)
	item := identityset.Address(10)

	// distinct types with identical scalar payloads hash apart
	claim := NewClaimRewards(item)
	unstake := NewUnstakeItem(item)
	require.NotEqual(claim.ByteStream(), unstake.ByteStream())
	require.NotEqual(Hash(claim), Hash(unstake))

	// the nonce is part of the stream
	c1 := NewContribute(100)
	c2 := NewContribute(100)
	require.Equal(Hash(c1), Hash(c2))
	c2.SetNonce(7)
	require.NotEqual(Hash(c1), Hash(c2))
	require.Equal(uint64(7), c2.Nonce())

	// repeated serialization is deterministic
	cc := NewCreateCollection("heroes", "HERO", "ipfs://col", 500)
	require.Equal(cc.ByteStream(), cc.ByteStream())
}

func TestActionFields(t *testing.T) {
	require := require.New(t)
	collection := identityset.Address(12)

	cit := NewCreateItemType(collection, "sword", "ipfs://sword", 100, 10, 20000)
	require.True(address.Equal(collection, cit.Collection()))
	require.Equal("sword", cit.Name())
	require.Equal("ipfs://sword", cit.URI())
	require.Equal(uint64(100), cit.Price())
	require.Equal(uint64(10), cit.MaxSupply())
	require.Equal(uint64(20000), cit.MultiplierBps())

	cr := NewCreateRoom(42, 5, identityset.Address(1), collection)
	require.Equal(uint64(42), cr.RoomID())
	require.Equal(uint64(5), cr.Stake())
}
