// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

// Package token is the unit ledger behind non-native balances: supply-1 item
// units and fungible reward units. A unit is an issuance root bound to one
// issue authority; holdings are keyed by (unit, holder). Issuance and
// transfers are checked, never clamped, so unit supply stays conserved.
package token

import (
	"math"

	"github.com/pkg/errors"

	"github.com/tradepost-labs/tradepost-core/action"
	"github.com/tradepost-labs/tradepost-core/action/protocol"
	"github.com/tradepost-labs/tradepost-core/address"
	"github.com/tradepost-labs/tradepost-core/pkg/hash"
	"github.com/tradepost-labs/tradepost-core/state"
)

// Unit is the issuance root of a token, keyed by the unit's address
type Unit struct {
	// Authority is the only address allowed to issue new units
	Authority hash.Hash160
	Decimals  uint8
	Supply    uint64
}

// holding is the balance of one holder in one unit
type holding struct {
	Qty uint64
}

func holdingKey(unit, holder address.Address) []byte {
	h := hash.Hash160b(append(unit.Bytes(), holder.Bytes()...))
	return h[:]
}

// CreateUnit creates a new unit with the given issue authority. The unit
// address must be unoccupied.
func CreateUnit(sm protocol.StateManager, unit, authority address.Address, decimals uint8) error {
	var existing Unit
	err := sm.State(&existing, protocol.NamespaceOption(state.TokenKVNamespace), protocol.AddrKeyOption(unit))
	if err == nil {
		return errors.Wrapf(protocol.ErrInvalidState, "unit %s already exists", unit)
	}
	if errors.Cause(err) != state.ErrStateNotExist {
		return errors.Wrapf(err, "failed to probe unit %s", unit)
	}
	u := Unit{
		Authority: hash.BytesToHash160(authority.Bytes()),
		Decimals:  decimals,
	}
	return sm.PutState(&u, protocol.NamespaceOption(state.TokenKVNamespace), protocol.AddrKeyOption(unit))
}

// LoadUnit reads the issuance root of a unit
func LoadUnit(sr protocol.StateReader, unit address.Address) (*Unit, error) {
	var u Unit
	if err := sr.State(&u, protocol.NamespaceOption(state.TokenKVNamespace), protocol.AddrKeyOption(unit)); err != nil {
		if errors.Cause(err) == state.ErrStateNotExist {
			return nil, errors.Wrapf(protocol.ErrInvalidState, "unit %s does not exist", unit)
		}
		return nil, errors.Wrapf(err, "failed to load unit %s", unit)
	}
	return &u, nil
}

// Balance returns how many units the holder owns; a missing holding reads 0
func Balance(sr protocol.StateReader, unit, holder address.Address) (uint64, error) {
	var h holding
	err := sr.State(&h, protocol.NamespaceOption(state.TokenKVNamespace), protocol.KeyOption(holdingKey(unit, holder)))
	if err == nil {
		return h.Qty, nil
	}
	if errors.Cause(err) == state.ErrStateNotExist {
		return 0, nil
	}
	return 0, errors.Wrapf(err, "failed to load holding of %s in unit %s", holder, unit)
}

func storeHolding(sm protocol.StateManager, unit, holder address.Address, qty uint64) error {
	h := holding{Qty: qty}
	return sm.PutState(&h, protocol.NamespaceOption(state.TokenKVNamespace), protocol.KeyOption(holdingKey(unit, holder)))
}

// Issue mints qty fresh units to the recipient. The authority must cover the
// unit's issue authority.
func Issue(sm protocol.StateManager, unit, to address.Address, qty uint64, auth protocol.Authority) (*action.TransactionLog, error) {
	u, err := LoadUnit(sm, unit)
	if err != nil {
		return nil, err
	}
	issuer, err := address.FromBytes(u.Authority[:])
	if err != nil {
		return nil, errors.Wrapf(err, "corrupt issue authority of unit %s", unit)
	}
	if !auth.Covers(issuer) {
		return nil, errors.Wrapf(protocol.ErrUnauthorized, "authority of %s does not cover issuer %s of unit %s", auth.Address(), issuer, unit)
	}
	if qty > math.MaxUint64-u.Supply {
		return nil, errors.Wrapf(state.ErrBalanceOverflow, "supply %d + issue %d", u.Supply, qty)
	}
	u.Supply += qty
	if err := sm.PutState(u, protocol.NamespaceOption(state.TokenKVNamespace), protocol.AddrKeyOption(unit)); err != nil {
		return nil, errors.Wrapf(err, "failed to store unit %s", unit)
	}
	held, err := Balance(sm, unit, to)
	if err != nil {
		return nil, err
	}
	if err := storeHolding(sm, unit, to, held+qty); err != nil {
		return nil, errors.Wrapf(err, "failed to store holding of %s", to)
	}
	return &action.TransactionLog{
		Type:      action.UnitIssueLog,
		Sender:    issuer.String(),
		Recipient: to.String(),
		Amount:    qty,
		Unit:      unit.String(),
	}, nil
}

// Transfer moves qty units between holders. The authority must cover the
// sending holder.
func Transfer(sm protocol.StateManager, unit, from, to address.Address, qty uint64, auth protocol.Authority) (*action.TransactionLog, error) {
	if !auth.Covers(from) {
		return nil, errors.Wrapf(protocol.ErrUnauthorized, "authority of %s does not cover holder %s", auth.Address(), from)
	}
	if _, err := LoadUnit(sm, unit); err != nil {
		return nil, err
	}
	held, err := Balance(sm, unit, from)
	if err != nil {
		return nil, err
	}
	if qty > held {
		return nil, errors.Wrapf(state.ErrNotEnoughBalance, "holding %d, qty %d of unit %s", held, qty, unit)
	}
	if !address.Equal(from, to) {
		if err := storeHolding(sm, unit, from, held-qty); err != nil {
			return nil, errors.Wrapf(err, "failed to store holding of %s", from)
		}
		toHeld, err := Balance(sm, unit, to)
		if err != nil {
			return nil, err
		}
		if qty > math.MaxUint64-toHeld {
			return nil, errors.Wrapf(state.ErrBalanceOverflow, "holding %d + qty %d", toHeld, qty)
		}
		if err := storeHolding(sm, unit, to, toHeld+qty); err != nil {
			return nil, errors.Wrapf(err, "failed to store holding of %s", to)
		}
	}
	return &action.TransactionLog{
		Type:      action.UnitTransferLog,
		Sender:    from.String(),
		Recipient: to.String(),
		Amount:    qty,
		Unit:      unit.String(),
	}, nil
}
