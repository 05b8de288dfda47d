// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package protocol

import (
	"context"

	"github.com/tradepost-labs/tradepost-core/action"
	"github.com/tradepost-labs/tradepost-core/address"
)

// NewReceipt builds the success receipt of a handled action. Nil logs are
// skipped so handlers can pass optional movements straight through.
func NewReceipt(ctx context.Context, entity address.Address, logs ...*action.TransactionLog) *action.Receipt {
	receipt := &action.Receipt{
		Status:        action.SuccessStatus,
		BlockHeight:   MustGetBlockCtx(ctx).BlockHeight,
		ActionHash:    MustGetActionCtx(ctx).ActionHash,
		EntityAddress: entity.String(),
	}
	for _, l := range logs {
		if l != nil {
			receipt.AddLog(l)
		}
	}
	return receipt
}
