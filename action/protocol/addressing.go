// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package protocol

import (
	"github.com/tradepost-labs/tradepost-core/address"
	"github.com/tradepost-labs/tradepost-core/pkg/hash"
	"github.com/tradepost-labs/tradepost-core/pkg/log"
	"github.com/tradepost-labs/tradepost-core/pkg/util/byteutil"
)

// Derivation tags. The tag plus its seed tuple fixes the uniqueness scope of
// each entity kind: colliding on an occupied address is how "already exists"
// is detected.
const (
	_marketplaceTag  = "market"
	_collectionTag   = "collection"
	_itemTypeTag     = "itemtype"
	_itemTag         = "item"
	_roomTag         = "room"
	_campaignTag     = "campaign"
	_contributionTag = "contrib"
	_stakePoolTag    = "stakepool"
	_rewardUnitTag   = "reward"
	_stakeRecordTag  = "stake"
)

// DeriveAddress derives the deterministic address of an entity from its tag
// and seed tuple
func DeriveAddress(tag string, seeds ...[]byte) address.Address {
	data := []byte(tag)
	for _, seed := range seeds {
		data = append(data, seed...)
	}
	h := hash.Hash160b(data)
	addr, err := address.FromBytes(h[:])
	if err != nil {
		log.S().Panicf("failed to build address from %d-byte hash: %v", len(h), err)
	}
	return addr
}

// MarketplaceAddress returns the address of the marketplace root
func MarketplaceAddress() address.Address {
	return DeriveAddress(_marketplaceTag)
}

// CollectionAddress returns the address of the named collection
func CollectionAddress(name string) address.Address {
	return DeriveAddress(_collectionTag, []byte(name))
}

// ItemTypeAddress returns the address of the named item type in a collection
func ItemTypeAddress(collection address.Address, name string) address.Address {
	return DeriveAddress(_itemTypeTag, collection.Bytes(), []byte(name))
}

// ItemAddress returns the address of the index-th item of an item type.
// Indexes are sequential from 1 and big-endian encoded.
func ItemAddress(itemType address.Address, index uint64) address.Address {
	return DeriveAddress(_itemTag, itemType.Bytes(), byteutil.Uint64ToBytesBigEndian(index))
}

// RoomAddress returns the address of a creator's room
func RoomAddress(creator address.Address, roomID uint64) address.Address {
	return DeriveAddress(_roomTag, creator.Bytes(), byteutil.Uint64ToBytes(roomID))
}

// CampaignAddress returns the address of the fundraising campaign
func CampaignAddress() address.Address {
	return DeriveAddress(_campaignTag)
}

// ContributionAddress returns the address of a contributor's record in a campaign
func ContributionAddress(campaign, contributor address.Address) address.Address {
	return DeriveAddress(_contributionTag, campaign.Bytes(), contributor.Bytes())
}

// StakePoolAddress returns the address of the staking pool
func StakePoolAddress() address.Address {
	return DeriveAddress(_stakePoolTag)
}

// RewardUnitAddress returns the address of a pool's reward unit
func RewardUnitAddress(pool address.Address) address.Address {
	return DeriveAddress(_rewardUnitTag, pool.Bytes())
}

// StakeRecordAddress returns the address of an owner's stake record for an item
func StakeRecordAddress(owner, item address.Address) address.Address {
	return DeriveAddress(_stakeRecordTag, owner.Bytes(), item.Bytes())
}
