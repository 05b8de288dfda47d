// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tradepost-labs/tradepost-core/action"
	"github.com/tradepost-labs/tradepost-core/action/protocol"
)

var marketCmd = &cobra.Command{
	Use:   "market",
	Short: "Manage the marketplace, collections and item types",
}

func init() {
	marketCmd.AddCommand(marketInitCmd)
	marketCmd.AddCommand(marketCreateCollectionCmd)
	marketCmd.AddCommand(marketCreateTypeCmd)
	marketCmd.AddCommand(marketMintCmd)
}

var marketInitCmd = &cobra.Command{
	Use:   "init FEE_BPS",
	Short: "Initialize the marketplace with the caller as admin",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		feeBps, err := parseBps(args[0], "fee")
		if err != nil {
			return err
		}
		return perform(action.NewInitMarketplace(feeBps))
	},
}

var marketCreateCollectionCmd = &cobra.Command{
	Use:   "create-collection NAME SYMBOL URI ROYALTY_BPS",
	Short: "Create a collection with the caller as its admin",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		royaltyBps, err := parseBps(args[3], "royalty")
		if err != nil {
			return err
		}
		return perform(action.NewCreateCollection(args[0], args[1], args[2], royaltyBps))
	},
}

var marketCreateTypeCmd = &cobra.Command{
	Use:   "create-type COLLECTION_NAME TYPE_NAME URI PRICE MAX_SUPPLY MULTIPLIER_BPS",
	Short: "Create an item type under a collection",
	Args:  cobra.ExactArgs(6),
	RunE: func(cmd *cobra.Command, args []string) error {
		price, err := parseUint64(args[3], "price")
		if err != nil {
			return err
		}
		maxSupply, err := parseUint64(args[4], "max supply")
		if err != nil {
			return err
		}
		multiplierBps, err := parseUint64(args[5], "multiplier")
		if err != nil {
			return err
		}
		collection := protocol.CollectionAddress(args[0])
		return perform(action.NewCreateItemType(collection, args[1], args[2], price, maxSupply, multiplierBps))
	},
}

var marketMintCmd = &cobra.Command{
	Use:   "mint COLLECTION_NAME TYPE_NAME",
	Short: "Mint the next item of a type, paying its price to the collection admin",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		itemType := protocol.ItemTypeAddress(protocol.CollectionAddress(args[0]), args[1])
		return perform(action.NewMintItem(itemType))
	},
}
