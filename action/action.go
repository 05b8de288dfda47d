// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

// Package action defines the sixteen operation payloads the ledger executes,
// their sanity checks, and the receipts they produce. Actions carry no
// signature material: callers are authenticated by the embedding process and
// authorization is enforced inside the protocols.
package action

import (
	"github.com/tradepost-labs/tradepost-core/pkg/hash"
	"github.com/tradepost-labs/tradepost-core/pkg/util/byteutil"
)

// Action is an operation executed in protocols. Every action defines a
// canonical byte stream, which is what the ledger hashes to identify it.
type Action interface {
	SanityCheck() error
	ByteStream() []byte
	Nonce() uint64
	SetNonce(uint64)
}

// AbstractAction is an abstract implementation of Action interface
type AbstractAction struct {
	version uint32
	nonce   uint64
}

// Version returns the version
func (act *AbstractAction) Version() uint32 { return act.version }

// Nonce returns the nonce
func (act *AbstractAction) Nonce() uint64 { return act.nonce }

// SetNonce sets the nonce. The ledger assigns it from the caller's account
// right before execution.
func (act *AbstractAction) SetNonce(n uint64) { act.nonce = n }

// BasicByteStream returns the header bytes shared by every action: the type
// tag followed by version and nonce.
func (act *AbstractAction) BasicByteStream(tag string) []byte {
	stream := []byte(tag)
	stream = append(stream, byteutil.Uint32ToBytes(act.version)...)
	stream = append(stream, byteutil.Uint64ToBytes(act.nonce)...)
	return stream
}

// Hash returns the identifying hash of the action
func Hash(act Action) hash.Hash256 {
	return hash.Hash256b(act.ByteStream())
}
