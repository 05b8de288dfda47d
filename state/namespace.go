// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package state

// Store namespaces. Each record lives in the namespace of the subsystem that
// owns it, keyed by the 20-byte payload of its derived address.
const (
	// AccountKVNamespace holds native currency accounts
	AccountKVNamespace = "Account"
	// MarketKVNamespace holds marketplace, collection and item-type records
	MarketKVNamespace = "Market"
	// ArenaKVNamespace holds escrow room records
	ArenaKVNamespace = "Arena"
	// FundingKVNamespace holds campaign and contribution records
	FundingKVNamespace = "Funding"
	// StakingKVNamespace holds pool and stake records
	StakingKVNamespace = "Staking"
	// TokenKVNamespace holds token units and holdings
	TokenKVNamespace = "Token"
	// MetadataKVNamespace holds descriptor records
	MetadataKVNamespace = "Metadata"
)

// CurrentHeightKey is the key of the committed height inside AccountKVNamespace
const CurrentHeightKey = "currentHeight"
