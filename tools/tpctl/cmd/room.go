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

var roomCmd = &cobra.Command{
	Use:   "room",
	Short: "Manage escrow rooms",
}

func init() {
	roomCmd.AddCommand(roomCreateCmd)
	roomCmd.AddCommand(roomJoinCmd)
	roomCmd.AddCommand(roomResolveCmd)
}

var roomCreateCmd = &cobra.Command{
	Use:   "create ROOM_ID STAKE ITEM_ADDRESS COLLECTION_ADDRESS",
	Short: "Open a room and escrow the caller's stake",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		roomID, err := parseUint64(args[0], "room id")
		if err != nil {
			return err
		}
		stake, err := parseUint64(args[1], "stake")
		if err != nil {
			return err
		}
		item, err := address.FromString(args[2])
		if err != nil {
			return err
		}
		collection, err := address.FromString(args[3])
		if err != nil {
			return err
		}
		return perform(action.NewCreateRoom(roomID, stake, item, collection))
	},
}

var roomJoinCmd = &cobra.Command{
	Use:   "join ROOM_ADDRESS ITEM_ADDRESS COLLECTION_ADDRESS",
	Short: "Join a waiting room as the challenger, matching its stake",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		room, err := address.FromString(args[0])
		if err != nil {
			return err
		}
		item, err := address.FromString(args[1])
		if err != nil {
			return err
		}
		collection, err := address.FromString(args[2])
		if err != nil {
			return err
		}
		return perform(action.NewJoinRoom(room, item, collection))
	},
}

var roomResolveCmd = &cobra.Command{
	Use:   "resolve ROOM_ADDRESS",
	Short: "Settle an ongoing room, paying the pot to its creator",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		room, err := address.FromString(args[0])
		if err != nil {
			return err
		}
		return perform(action.NewResolveRoom(room))
	},
}
