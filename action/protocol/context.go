// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package protocol

import (
	"context"
	"time"

	"github.com/tradepost-labs/tradepost-core/address"
	"github.com/tradepost-labs/tradepost-core/config"
	"github.com/tradepost-labs/tradepost-core/pkg/hash"
	"github.com/tradepost-labs/tradepost-core/pkg/log"
)

type blockCtxKey struct{}

type actionCtxKey struct{}

type genesisCtxKey struct{}

type (
	// BlockCtx provides the block-level context of one transaction. The
	// timestamp is sampled once when the transaction starts; every time-based
	// computation inside it uses this single reading.
	BlockCtx struct {
		BlockHeight    uint64
		BlockTimeStamp time.Time
	}

	// ActionCtx provides action-level auxiliary information
	ActionCtx struct {
		Caller     address.Address
		ActionHash hash.Hash256
		Nonce      uint64
	}
)

// WithBlockCtx adds BlockCtx into context
func WithBlockCtx(ctx context.Context, blkCtx BlockCtx) context.Context {
	return context.WithValue(ctx, blockCtxKey{}, blkCtx)
}

// GetBlockCtx gets BlockCtx
func GetBlockCtx(ctx context.Context) (BlockCtx, bool) {
	blkCtx, ok := ctx.Value(blockCtxKey{}).(BlockCtx)
	return blkCtx, ok
}

// MustGetBlockCtx must get BlockCtx, or panics
func MustGetBlockCtx(ctx context.Context) BlockCtx {
	blkCtx, ok := ctx.Value(blockCtxKey{}).(BlockCtx)
	if !ok {
		log.S().Panic("Miss block context")
	}
	return blkCtx
}

// WithActionCtx adds ActionCtx into context
func WithActionCtx(ctx context.Context, actionCtx ActionCtx) context.Context {
	return context.WithValue(ctx, actionCtxKey{}, actionCtx)
}

// GetActionCtx gets ActionCtx
func GetActionCtx(ctx context.Context) (ActionCtx, bool) {
	actionCtx, ok := ctx.Value(actionCtxKey{}).(ActionCtx)
	return actionCtx, ok
}

// MustGetActionCtx must get ActionCtx, or panics
func MustGetActionCtx(ctx context.Context) ActionCtx {
	actionCtx, ok := ctx.Value(actionCtxKey{}).(ActionCtx)
	if !ok {
		log.S().Panic("Miss action context")
	}
	return actionCtx
}

// WithGenesisCtx adds the genesis parameters into context
func WithGenesisCtx(ctx context.Context, g config.Genesis) context.Context {
	return context.WithValue(ctx, genesisCtxKey{}, g)
}

// GetGenesisCtx gets the genesis parameters
func GetGenesisCtx(ctx context.Context) (config.Genesis, bool) {
	g, ok := ctx.Value(genesisCtxKey{}).(config.Genesis)
	return g, ok
}

// MustGetGenesisCtx must get the genesis parameters, or panics
func MustGetGenesisCtx(ctx context.Context) config.Genesis {
	g, ok := ctx.Value(genesisCtxKey{}).(config.Genesis)
	if !ok {
		log.S().Panic("Miss genesis context")
	}
	return g
}
