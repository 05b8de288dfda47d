// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tradepost-labs/tradepost-core/action"
)

var campaignCmd = &cobra.Command{
	Use:   "campaign",
	Short: "Manage the fundraising campaign",
}

func init() {
	campaignCmd.AddCommand(campaignInitCmd)
	campaignCmd.AddCommand(campaignRestartCmd)
	campaignCmd.AddCommand(campaignContributeCmd)
	campaignCmd.AddCommand(campaignEndCmd)
}

var campaignInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the campaign with the caller as admin",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return perform(action.NewInitCampaign())
	},
}

var campaignRestartCmd = &cobra.Command{
	Use:   "restart",
	Short: "Re-arm a settled campaign with a fresh window",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return perform(action.NewRestartCampaign())
	},
}

var campaignContributeCmd = &cobra.Command{
	Use:   "contribute AMOUNT",
	Short: "Contribute grain to the running campaign",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := parseUint64(args[0], "amount")
		if err != nil {
			return err
		}
		return perform(action.NewContribute(amount))
	},
}

var campaignEndCmd = &cobra.Command{
	Use:   "end",
	Short: "Settle an endable campaign, paying the raised funds to the admin",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return perform(action.NewEndCampaign())
	},
}
