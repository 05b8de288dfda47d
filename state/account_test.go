// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package state

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestAccountBalance(t *testing.T) {
	require := require.New(t)

	acct := EmptyAccount()
	require.Zero(acct.Balance)
	require.Zero(acct.Nonce)

	require.NoError(acct.AddBalance(100))
	require.Equal(uint64(100), acct.Balance)

	require.NoError(acct.SubBalance(40))
	require.Equal(uint64(60), acct.Balance)

	err := acct.SubBalance(61)
	require.Equal(ErrNotEnoughBalance, errors.Cause(err))
	require.Equal(uint64(60), acct.Balance)

	err = acct.AddBalance(math.MaxUint64)
	require.Equal(ErrBalanceOverflow, errors.Cause(err))
	require.Equal(uint64(60), acct.Balance)
}

func TestAccountReserve(t *testing.T) {
	require := require.New(t)

	acct := Account{Balance: 1000}
	require.Equal(uint64(1000), acct.SpendableBalance())

	require.NoError(acct.AddReserve(300))
	require.Equal(uint64(700), acct.SpendableBalance())
	require.Equal(uint64(1000), acct.Balance)

	require.NoError(acct.SubReserve(300))
	require.Equal(uint64(1000), acct.SpendableBalance())

	err := acct.SubReserve(1)
	require.Equal(ErrInvalidAmount, errors.Cause(err))

	// reserve above balance reads as zero spendable
	require.NoError(acct.AddReserve(2000))
	require.Zero(acct.SpendableBalance())
}

func TestAccountSerialize(t *testing.T) {
	require := require.New(t)

	acct := Account{Nonce: 7, Balance: 12345, Reserve: 890}
	data, err := acct.Serialize()
	require.NoError(err)
	// three u64 fields in fixed little-endian layout
	require.Len(data, 24)

	var restored Account
	require.NoError(restored.Deserialize(data))
	require.Equal(acct, restored)

	require.Error(restored.Deserialize(data[:5]))
}

func TestAccountClone(t *testing.T) {
	require := require.New(t)

	acct := Account{Nonce: 1, Balance: 50, Reserve: 10}
	c := acct.Clone()
	require.NoError(c.AddBalance(25))
	require.Equal(uint64(50), acct.Balance)
	require.Equal(uint64(75), c.Balance)
}

func TestStateSerializeRoundTrip(t *testing.T) {
	require := require.New(t)

	type record struct {
		Name  string
		Count uint32
	}
	r := record{Name: "widget", Count: 3}
	data, err := Serialize(&r)
	require.NoError(err)

	var restored record
	require.NoError(Deserialize(&restored, data))
	require.Equal(r, restored)

	// Serializer implementations take precedence over default encoding
	acct := Account{Nonce: 2, Balance: 9}
	viaState, err := Serialize(&acct)
	require.NoError(err)
	direct, err := acct.Serialize()
	require.NoError(err)
	require.Equal(direct, viaState)
}
