// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tradepost-labs/tradepost-core/action/protocol"
	"github.com/tradepost-labs/tradepost-core/action/protocol/arena"
	"github.com/tradepost-labs/tradepost-core/action/protocol/funding"
	"github.com/tradepost-labs/tradepost-core/action/protocol/staking"
	"github.com/tradepost-labs/tradepost-core/address"
	"github.com/tradepost-labs/tradepost-core/pkg/unit"
	"github.com/tradepost-labs/tradepost-core/state"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Read committed ledger state",
}

func init() {
	queryCmd.AddCommand(queryAccountCmd)
	queryCmd.AddCommand(queryRoomCmd)
	queryCmd.AddCommand(queryCampaignCmd)
	queryCmd.AddCommand(queryStakeCmd)
}

var queryAccountCmd = &cobra.Command{
	Use:   "account ADDRESS",
	Short: "Print an account's nonce, balance and reserve",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, err := address.FromString(args[0])
		if err != nil {
			return err
		}
		l, stop, err := openLedger()
		if err != nil {
			return err
		}
		defer stop()
		acct, err := l.AccountOf(addr)
		if err != nil {
			return err
		}
		fmt.Printf("nonce: %d\nbalance: %s\nreserve: %s\nspendable: %s\n",
			acct.Nonce, unit.Format(acct.Balance), unit.Format(acct.Reserve), unit.Format(acct.SpendableBalance()))
		return nil
	},
}

var queryRoomCmd = &cobra.Command{
	Use:   "room ROOM_ADDRESS",
	Short: "Print a room's participants, stake and status",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, err := address.FromString(args[0])
		if err != nil {
			return err
		}
		l, stop, err := openLedger()
		if err != nil {
			return err
		}
		defer stop()
		var room arena.Room
		if err := l.ReadState(&room,
			protocol.NamespaceOption(state.ArenaKVNamespace),
			protocol.AddrKeyOption(addr)); err != nil {
			return err
		}
		creator, err := address.FromBytes(room.Creator[:])
		if err != nil {
			return err
		}
		fmt.Printf("creator: %s\nroomID: %d\nstake: %d\nstatus: %d\n",
			creator, room.RoomID, room.Stake, room.Status)
		if room.HasChallenger {
			challenger, err := address.FromBytes(room.Challenger[:])
			if err != nil {
				return err
			}
			fmt.Printf("challenger: %s\n", challenger)
		}
		return nil
	},
}

var queryCampaignCmd = &cobra.Command{
	Use:   "campaign",
	Short: "Print the campaign's window, tally and status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		l, stop, err := openLedger()
		if err != nil {
			return err
		}
		defer stop()
		var c funding.Campaign
		if err := l.ReadState(&c,
			protocol.NamespaceOption(state.FundingKVNamespace),
			protocol.AddrKeyOption(protocol.CampaignAddress())); err != nil {
			return err
		}
		admin, err := address.FromBytes(c.Admin[:])
		if err != nil {
			return err
		}
		fmt.Printf("admin: %s\nstart: %d\nend: %d\nraised: %s\ntarget: %s\nactive: %t\n",
			admin, c.StartTime, c.EndTime, unit.Format(c.Raised), unit.Format(c.Target), c.Active)
		return nil
	},
}

var queryStakeCmd = &cobra.Command{
	Use:   "stake OWNER_ADDRESS ITEM_ADDRESS",
	Short: "Print the stake record of an owner's item",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		owner, err := address.FromString(args[0])
		if err != nil {
			return err
		}
		item, err := address.FromString(args[1])
		if err != nil {
			return err
		}
		l, stop, err := openLedger()
		if err != nil {
			return err
		}
		defer stop()
		var rec staking.StakeRecord
		if err := l.ReadState(&rec,
			protocol.NamespaceOption(state.StakingKVNamespace),
			protocol.AddrKeyOption(protocol.StakeRecordAddress(owner, item))); err != nil {
			return err
		}
		fmt.Printf("stakeTime: %d\nlastClaim: %d\nmultiplierBps: %d\n",
			rec.StakeTime, rec.LastClaim, rec.MultiplierBps)
		return nil
	},
}
