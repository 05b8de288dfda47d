// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var genesisCmd = &cobra.Command{
	Use:   "genesis",
	Short: "Bootstrap a ledger database",
}

func init() {
	genesisCmd.AddCommand(genesisInitCmd)
}

var genesisInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the database and commit the genesis balances as height zero",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		l, stop, err := openLedger()
		if err != nil {
			return err
		}
		defer stop()
		height, err := l.Height()
		if err != nil {
			return err
		}
		fmt.Printf("height: %d\n", height)
		return nil
	},
}
