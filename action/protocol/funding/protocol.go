// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

// Package funding implements the time-and-target-boxed fundraising campaign.
// Contributions pool on the campaign's custodial balance until the admin
// settles it; there is no refund path if the target is missed, contribution
// records simply stay on the ledger.
package funding

import (
	"context"

	"github.com/tradepost-labs/tradepost-core/action"
	"github.com/tradepost-labs/tradepost-core/action/protocol"
)

// Protocol is the fundraising protocol
type Protocol struct{}

// NewProtocol instantiates the fundraising protocol
func NewProtocol() *Protocol {
	return &Protocol{}
}

// Handle handles the fundraising actions
func (p *Protocol) Handle(ctx context.Context, act action.Action, sm protocol.StateManager) (*action.Receipt, error) {
	switch act := act.(type) {
	case *action.InitCampaign:
		return p.initCampaign(ctx, act, sm)
	case *action.RestartCampaign:
		return p.restartCampaign(ctx, act, sm)
	case *action.Contribute:
		return p.contribute(ctx, act, sm)
	case *action.EndCampaign:
		return p.endCampaign(ctx, act, sm)
	}
	return nil, nil
}

// Validate validates the fundraising actions without touching state
func (p *Protocol) Validate(_ context.Context, act action.Action) error {
	switch act := act.(type) {
	case *action.InitCampaign:
		return act.SanityCheck()
	case *action.RestartCampaign:
		return act.SanityCheck()
	case *action.Contribute:
		return act.SanityCheck()
	case *action.EndCampaign:
		return act.SanityCheck()
	}
	return nil
}
