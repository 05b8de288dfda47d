// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package address

import (
	"os"
	"strings"

	"github.com/pkg/errors"
)

// init reads the TRADEPOST_NETWORK environment variable. If it equals
// "testnet" with case ignored, the whole runtime renders testnet addresses.
func init() {
	isTestNet = strings.EqualFold(os.Getenv("TRADEPOST_NETWORK"), "testnet")
}

const (
	// MainnetPrefix is the human-readable prefix of mainnet addresses
	MainnetPrefix = "tp"
	// TestnetPrefix is the human-readable prefix of testnet addresses
	TestnetPrefix = "tt"
)

// ErrInvalidAddr indicates an invalid address
var ErrInvalidAddr = errors.New("invalid address")

var isTestNet bool

// Address is the interface of a ledger address: 20 bytes of payload rendered
// as a bech32 string
type Address interface {
	// String encodes the address into a bech32 string
	String() string
	// Bytes returns the 20-byte payload
	Bytes() []byte
}

// FromString decodes an encoded address string into an address
func FromString(encodedAddr string) (Address, error) {
	return _v1.FromString(encodedAddr)
}

// FromBytes converts a 20-byte payload into an address
func FromBytes(bytes []byte) (Address, error) {
	return _v1.FromBytes(bytes)
}

// Equal returns whether two addresses carry the same payload. Nil equals only nil.
func Equal(a, b Address) bool {
	if a == nil || b == nil {
		return a == b
	}
	return strings.Compare(string(a.Bytes()), string(b.Bytes())) == 0
}

// IsTestNet returns whether the current runtime renders testnet addresses
func IsTestNet() bool {
	return isTestNet
}

func prefix() string {
	if isTestNet {
		return TestnetPrefix
	}
	return MainnetPrefix
}

// Prefix returns the address prefix in force
func Prefix() string {
	return prefix()
}
