// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

// Package identityset provides a set of deterministic test identities. There
// is no key material behind them: the ledger authenticates callers at the
// process boundary, so tests only need stable, distinct addresses.
package identityset

import (
	"github.com/tradepost-labs/tradepost-core/address"
	"github.com/tradepost-labs/tradepost-core/pkg/hash"
	"github.com/tradepost-labs/tradepost-core/pkg/log"
	"github.com/tradepost-labs/tradepost-core/pkg/util/byteutil"
)

// Size is the number of identities in the set
const Size = 30

var _seed = []byte("tradepost.identityset")

// Address returns the i-th test address
func Address(i int) address.Address {
	if i < 0 || i >= Size {
		log.S().Panicf("identity index %d out of range", i)
	}
	h := hash.Hash160b(append(_seed, byteutil.Uint32ToBytes(uint32(i))...))
	addr, err := address.FromBytes(h[:])
	if err != nil {
		log.S().Panicf("failed to build test address %d: %v", i, err)
	}
	return addr
}
