// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

// Package protocol defines the contracts every ledger component implements:
// validation and handling of actions, namespaced state access, derived
// addressing, and the authority model gating every fund movement.
package protocol

import (
	"context"

	"github.com/tradepost-labs/tradepost-core/action"
)

// Protocol defines the protocol interface a ledger component implements
type Protocol interface {
	ActionValidator
	ActionHandler
}

// ActionValidator is the interface of validating an action without state
type ActionValidator interface {
	Validate(context.Context, action.Action) error
}

// ActionHandler is the interface for action handlers. For each incoming
// action the registered handlers are called one by one; a handler returns
// (nil, nil) for actions that are not its own.
type ActionHandler interface {
	Handle(context.Context, action.Action, StateManager) (*action.Receipt, error)
}
