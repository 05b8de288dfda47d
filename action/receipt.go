// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package action

import (
	"github.com/near/borsh-go"

	"github.com/tradepost-labs/tradepost-core/pkg/hash"
	"github.com/tradepost-labs/tradepost-core/pkg/log"
	"github.com/tradepost-labs/tradepost-core/pkg/util/byteutil"
)

// SuccessStatus is the status of a committed operation. There is no failure
// status: a failed operation never commits, so it never produces a receipt.
const SuccessStatus = uint64(1)

// Transaction log types, one per kind of fund or unit movement
const (
	// TransferLog records a native currency movement between accounts
	TransferLog = "native_transfer"
	// ReserveEstablishLog records the storage reserve funding a new entity account
	ReserveEstablishLog = "reserve_establish"
	// AccountCloseLog records an entity account paying out its whole balance and closing
	AccountCloseLog = "account_close"
	// UnitIssueLog records freshly issued units of a token
	UnitIssueLog = "unit_issue"
	// UnitTransferLog records a token unit moving between holders
	UnitTransferLog = "unit_transfer"
	// RewardPayoutLog records staking reward units paid to a staker
	RewardPayoutLog = "reward_payout"
)

// Receipt represents the result of one committed operation
type Receipt struct {
	Status        uint64
	BlockHeight   uint64
	ActionHash    hash.Hash256
	EntityAddress string
	Logs          []*TransactionLog
}

// TransactionLog records one fund or unit movement inside an operation.
// Unit is empty for native currency movements.
type TransactionLog struct {
	Type      string
	Sender    string
	Recipient string
	Amount    uint64
	Unit      string
}

// AddLog appends a transaction log to the receipt
func (receipt *Receipt) AddLog(l *TransactionLog) *Receipt {
	receipt.Logs = append(receipt.Logs, l)
	return receipt
}

// Serialize returns the canonical bytes of the receipt
func (receipt *Receipt) Serialize() []byte {
	stream := byteutil.Uint64ToBytes(receipt.Status)
	stream = append(stream, byteutil.Uint64ToBytes(receipt.BlockHeight)...)
	stream = append(stream, receipt.ActionHash[:]...)
	stream = append(stream, []byte(receipt.EntityAddress)...)
	for _, l := range receipt.Logs {
		stream = append(stream, byteutil.Must(borsh.Serialize(*l))...)
	}
	return stream
}

// Hash returns the hash of the receipt
func (receipt *Receipt) Hash() hash.Hash256 {
	data := receipt.Serialize()
	if len(data) == 0 {
		log.L().Panic("Error when serializing a receipt")
	}
	return hash.Hash256b(data)
}
