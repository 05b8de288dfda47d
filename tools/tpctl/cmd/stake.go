// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tradepost-labs/tradepost-core/action"
	"github.com/tradepost-labs/tradepost-core/address"
)

var stakeCmd = &cobra.Command{
	Use:   "stake",
	Short: "Manage the staking pool and staked items",
}

func init() {
	stakeCmd.AddCommand(stakePoolInitCmd)
	stakeCmd.AddCommand(stakeFundCmd)
	stakeCmd.AddCommand(stakeStakeCmd)
	stakeCmd.AddCommand(stakeClaimCmd)
	stakeCmd.AddCommand(stakeUnstakeCmd)
}

var stakePoolInitCmd = &cobra.Command{
	Use:   "pool-init RATE_PER_SECOND",
	Short: "Initialize the staking pool and its reward unit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rate, err := parseUint64(args[0], "rate")
		if err != nil {
			return err
		}
		return perform(action.NewInitStakePool(rate))
	},
}

var stakeFundCmd = &cobra.Command{
	Use:   "fund QTY",
	Short: "Issue reward units into the pool reserve (pool admin only)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		qty, err := parseUint64(args[0], "quantity")
		if err != nil {
			return err
		}
		return perform(action.NewFundRewardPool(qty))
	},
}

var stakeStakeCmd = &cobra.Command{
	Use:   "stake ITEM_ADDRESS ITEM_TYPE_ADDRESS COLLECTION_ADDRESS",
	Short: "Lock an item into custody and start accrual",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		item, err := address.FromString(args[0])
		if err != nil {
			return err
		}
		itemType, err := address.FromString(args[1])
		if err != nil {
			return err
		}
		collection, err := address.FromString(args[2])
		if err != nil {
			return err
		}
		return perform(action.NewStakeItem(item, itemType, collection))
	},
}

var stakeClaimCmd = &cobra.Command{
	Use:   "claim ITEM_ADDRESS",
	Short: "Claim the reward accrued by a staked item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		item, err := address.FromString(args[0])
		if err != nil {
			return err
		}
		return perform(action.NewClaimRewards(item))
	},
}

var stakeUnstakeCmd = &cobra.Command{
	Use:   "unstake ITEM_ADDRESS",
	Short: "Settle the final reward and return the item to its owner",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		item, err := address.FromString(args[0])
		if err != nil {
			return err
		}
		return perform(action.NewUnstakeItem(item))
	},
}
