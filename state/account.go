// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package state

import (
	"math/bits"

	"github.com/near/borsh-go"
	"github.com/pkg/errors"
)

// Account is the canonical balance record of an address. Balance and Reserve
// are denominated in grain, the smallest native unit. Reserve is the portion
// held back to back the account's stored records and cannot be spent.
type Account struct {
	Nonce   uint64
	Balance uint64
	Reserve uint64
}

// EmptyAccount returns a zero-value account
func EmptyAccount() Account {
	return Account{}
}

// Serialize serializes the account into bytes
func (a *Account) Serialize() ([]byte, error) {
	data, err := borsh.Serialize(*a)
	if err != nil {
		return nil, errors.Wrapf(ErrStateSerialization, "error when serializing account: %v", err)
	}
	return data, nil
}

// Deserialize deserializes bytes into the account
func (a *Account) Deserialize(data []byte) error {
	if err := borsh.Deserialize(a, data); err != nil {
		return errors.Wrapf(ErrStateDeserialization, "error when deserializing account: %v", err)
	}
	return nil
}

// AddBalance adds the amount to the account's balance. Unlike derived-value
// math, balance moves never clamp: an addition that would wrap errors out so
// that total supply stays conserved.
func (a *Account) AddBalance(amount uint64) error {
	sum, carry := bits.Add64(a.Balance, amount, 0)
	if carry != 0 {
		return errors.Wrapf(ErrBalanceOverflow, "balance %d + amount %d", a.Balance, amount)
	}
	a.Balance = sum
	return nil
}

// SubBalance subtracts the amount from the account's balance
func (a *Account) SubBalance(amount uint64) error {
	if amount > a.Balance {
		return errors.Wrapf(ErrNotEnoughBalance, "balance %d, amount %d", a.Balance, amount)
	}
	a.Balance -= amount
	return nil
}

// SpendableBalance returns the balance net of the reserve. A reserve larger
// than the balance (possible only through genesis misconfiguration) reads as
// zero spendable rather than wrapping.
func (a *Account) SpendableBalance() uint64 {
	if a.Reserve > a.Balance {
		return 0
	}
	return a.Balance - a.Reserve
}

// AddReserve marks the amount as held back for storage backing
func (a *Account) AddReserve(amount uint64) error {
	sum, carry := bits.Add64(a.Reserve, amount, 0)
	if carry != 0 {
		return errors.Wrapf(ErrBalanceOverflow, "reserve %d + amount %d", a.Reserve, amount)
	}
	a.Reserve = sum
	return nil
}

// SubReserve releases the amount of held-back reserve
func (a *Account) SubReserve(amount uint64) error {
	if amount > a.Reserve {
		return errors.Wrapf(ErrInvalidAmount, "reserve %d, amount %d", a.Reserve, amount)
	}
	a.Reserve -= amount
	return nil
}

// Clone returns a deep copy of the account
func (a *Account) Clone() *Account {
	c := *a
	return &c
}
