// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package address

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tradepost-labs/tradepost-core/pkg/hash"
)

func TestAddressRoundTrip(t *testing.T) {
	require := require.New(t)

	payload := hash.Hash160b([]byte("an arbitrary seed"))
	addr, err := FromBytes(payload[:])
	require.NoError(err)
	require.Equal(payload[:], addr.Bytes())

	encoded := addr.String()
	require.True(strings.HasPrefix(encoded, Prefix()))

	decoded, err := FromString(encoded)
	require.NoError(err)
	require.Equal(addr.Bytes(), decoded.Bytes())
	require.True(Equal(addr, decoded))
}

func TestFromBytesRejectsWrongLength(t *testing.T) {
	require := require.New(t)

	_, err := FromBytes(make([]byte, 19))
	require.Error(err)
	_, err = FromBytes(make([]byte, 21))
	require.Error(err)
	_, err = FromBytes(nil)
	require.Error(err)
}

func TestFromStringRejectsForeignPrefix(t *testing.T) {
	require := require.New(t)

	payload := hash.Hash160b([]byte("prefix test"))
	addr, err := FromBytes(payload[:])
	require.NoError(err)

	// re-encode under a foreign prefix and make sure decoding refuses it
	encoded := addr.String()
	foreign := "xx" + encoded[len(Prefix()):]
	_, err = FromString(foreign)
	require.Error(err)

	_, err = FromString("not-bech32-at-all")
	require.Error(err)
}

func TestEqual(t *testing.T) {
	require := require.New(t)

	p1 := hash.Hash160b([]byte("one"))
	p2 := hash.Hash160b([]byte("two"))
	a1, err := FromBytes(p1[:])
	require.NoError(err)
	a1Again, err := FromBytes(p1[:])
	require.NoError(err)
	a2, err := FromBytes(p2[:])
	require.NoError(err)

	require.True(Equal(a1, a1Again))
	require.False(Equal(a1, a2))
	require.True(Equal(nil, nil))
	require.False(Equal(a1, nil))
	require.False(Equal(nil, a2))
}
