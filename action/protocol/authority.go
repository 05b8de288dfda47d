// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package protocol

import (
	"context"

	"github.com/tradepost-labs/tradepost-core/address"
)

// Authority is an opaque capability bound to exactly one address. A fund or
// unit movement out of an address requires an authority covering it. There
// are only two mints: the transaction caller's own authority, and the
// self-authority of an entity a component has just re-derived from the
// entity's seed tuple.
type Authority struct {
	addr address.Address
}

// CallerAuthority returns the authority of the transaction caller
func CallerAuthority(ctx context.Context) Authority {
	return Authority{addr: MustGetActionCtx(ctx).Caller}
}

// EntityAuthority returns the self-authority of a derived entity. The caller
// must have re-derived addr from the entity's own seed tuple; minting an
// entity authority from an unverified address defeats the custody model.
func EntityAuthority(addr address.Address) Authority {
	return Authority{addr: addr}
}

// Covers reports whether the authority is bound to the given address. It is
// a pure predicate: no state is read and nothing is mutated.
func (a Authority) Covers(addr address.Address) bool {
	return address.Equal(a.addr, addr)
}

// Address returns the address the authority is bound to
func (a Authority) Address() address.Address {
	return a.addr
}
