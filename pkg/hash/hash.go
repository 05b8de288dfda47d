// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package hash

import (
	"encoding/hex"

	"github.com/minio/blake2b-simd"
)

const (
	// Hash256Size defines the size of a 256-bit hash
	Hash256Size = 32
	// Hash160Size defines the size of a 160-bit hash
	Hash160Size = 20
)

var (
	// ZeroHash256 is 32 bytes of all zero
	ZeroHash256 = Hash256{}
	// ZeroHash160 is 20 bytes of all zero
	ZeroHash160 = Hash160{}
)

type (
	// Hash256 is a 256-bit hash
	Hash256 [Hash256Size]byte
	// Hash160 is a 160-bit hash, used for state keys and address payloads
	Hash160 [Hash160Size]byte
)

// Hash256b returns the 256-bit blake2b hash of the input
func Hash256b(input []byte) Hash256 {
	return Hash256(blake2b.Sum256(input))
}

// Hash160b returns the 160-bit blake2b hash of the input
func Hash160b(input []byte) Hash160 {
	digest := blake2b.Sum256(input)
	var h Hash160
	copy(h[:], digest[:Hash160Size])
	return h
}

// BytesToHash256 copies the byte slice into a Hash256, left-padding short inputs
func BytesToHash256(b []byte) Hash256 {
	var h Hash256
	if len(b) > Hash256Size {
		b = b[len(b)-Hash256Size:]
	}
	copy(h[Hash256Size-len(b):], b)
	return h
}

// BytesToHash160 copies the byte slice into a Hash160, left-padding short inputs
func BytesToHash160(b []byte) Hash160 {
	var h Hash160
	if len(b) > Hash160Size {
		b = b[len(b)-Hash160Size:]
	}
	copy(h[Hash160Size-len(b):], b)
	return h
}

func (h Hash256) String() string { return hex.EncodeToString(h[:]) }

func (h Hash160) String() string { return hex.EncodeToString(h[:]) }
