// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package action

import (
	"github.com/tradepost-labs/tradepost-core/pkg/version"
)

const (
	_initCampaignTag    = "initCampaign"
	_restartCampaignTag = "restartCampaign"
	_endCampaignTag     = "endCampaign"
)

// InitCampaign creates the fundraising campaign with the caller as admin.
// Window and target come from genesis parameters.
type InitCampaign struct {
	AbstractAction
}

// NewInitCampaign returns an InitCampaign instance
func NewInitCampaign() *InitCampaign {
	return &InitCampaign{
		AbstractAction: AbstractAction{
			version: version.ProtocolVersion,
		},
	}
}

// ByteStream returns a raw byte stream of this action
func (ic *InitCampaign) ByteStream() []byte {
	return ic.BasicByteStream(_initCampaignTag)
}

// SanityCheck validates the variables in the action
func (ic *InitCampaign) SanityCheck() error { return nil }

// RestartCampaign re-arms a settled campaign with a fresh window, keeping
// admin and target
type RestartCampaign struct {
	AbstractAction
}

// NewRestartCampaign returns a RestartCampaign instance
func NewRestartCampaign() *RestartCampaign {
	return &RestartCampaign{
		AbstractAction: AbstractAction{
			version: version.ProtocolVersion,
		},
	}
}

// ByteStream returns a raw byte stream of this action
func (rc *RestartCampaign) ByteStream() []byte {
	return rc.BasicByteStream(_restartCampaignTag)
}

// SanityCheck validates the variables in the action
func (rc *RestartCampaign) SanityCheck() error { return nil }

// EndCampaign settles an endable campaign and pays the raised funds to the admin
type EndCampaign struct {
	AbstractAction
}

// NewEndCampaign returns an EndCampaign instance
func NewEndCampaign() *EndCampaign {
	return &EndCampaign{
		AbstractAction: AbstractAction{
			version: version.ProtocolVersion,
		},
	}
}

// ByteStream returns a raw byte stream of this action
func (ec *EndCampaign) ByteStream() []byte {
	return ec.BasicByteStream(_endCampaignTag)
}

// SanityCheck validates the variables in the action
func (ec *EndCampaign) SanityCheck() error { return nil }
