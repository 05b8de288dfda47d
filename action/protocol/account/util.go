// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

// Package account is the native currency service. It owns the Account
// namespace: personal balances, entity custodial balances, and the storage
// reserves backing entity records. Every fund movement is gated by an
// authority covering the sender.
package account

import (
	"github.com/pkg/errors"

	"github.com/tradepost-labs/tradepost-core/action/protocol"
	"github.com/tradepost-labs/tradepost-core/address"
	"github.com/tradepost-labs/tradepost-core/state"
)

type noncer interface {
	Nonce() uint64
}

// SetNonce sets the nonce for the account if it advances
func SetNonce(i noncer, acct *state.Account) {
	if i.Nonce() > acct.Nonce {
		acct.Nonce = i.Nonce()
	}
}

// LoadOrCreateAccount either loads an account state or creates an empty one
func LoadOrCreateAccount(sm protocol.StateManager, addr address.Address) (*state.Account, error) {
	var account state.Account
	err := sm.State(&account, protocol.AddrKeyOption(addr))
	if err == nil {
		return &account, nil
	}
	if errors.Cause(err) == state.ErrStateNotExist {
		account = state.EmptyAccount()
		if err := sm.PutState(&account, protocol.AddrKeyOption(addr)); err != nil {
			return nil, errors.Wrapf(err, "failed to put state for account %x", addr.Bytes())
		}
		return &account, nil
	}
	return nil, err
}

// LoadAccount loads an account state; a missing account reads as empty
func LoadAccount(sr protocol.StateReader, addr address.Address) (*state.Account, error) {
	var account state.Account
	if err := sr.State(&account, protocol.AddrKeyOption(addr)); err != nil {
		if errors.Cause(err) == state.ErrStateNotExist {
			account = state.EmptyAccount()
			return &account, nil
		}
		return nil, err
	}
	return &account, nil
}

// StoreAccount puts the updated account state
func StoreAccount(sm protocol.StateManager, addr address.Address, account *state.Account) error {
	return sm.PutState(account, protocol.AddrKeyOption(addr))
}

// Recorded tests if an account has been actually stored
func Recorded(sr protocol.StateReader, addr address.Address) (bool, error) {
	var account state.Account
	err := sr.State(&account, protocol.AddrKeyOption(addr))
	if err == nil {
		return true, nil
	}
	if errors.Cause(err) == state.ErrStateNotExist {
		return false, nil
	}
	return false, err
}
