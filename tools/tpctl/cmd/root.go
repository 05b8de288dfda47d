// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

// Package cmd implements the tpctl command tree. The operation groups mirror
// the four protocols; query reads committed state without performing anything.
package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/tradepost-labs/tradepost-core/action"
	"github.com/tradepost-labs/tradepost-core/address"
	"github.com/tradepost-labs/tradepost-core/config"
	"github.com/tradepost-labs/tradepost-core/ledger"
	"github.com/tradepost-labs/tradepost-core/state/factory"
)

var (
	_configPath string
	_dbPath     string
	_as         string
)

var rootCmd = &cobra.Command{
	Use:           "tpctl",
	Short:         "Operate a tradepost ledger",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&_configPath, "config", "", "path of the YAML config file")
	rootCmd.PersistentFlags().StringVar(&_dbPath, "db", "", "path of the database file, overrides the config")
	rootCmd.PersistentFlags().StringVar(&_as, "as", "", "caller address performing the operation")
	rootCmd.AddCommand(marketCmd)
	rootCmd.AddCommand(roomCmd)
	rootCmd.AddCommand(campaignCmd)
	rootCmd.AddCommand(stakeCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(genesisCmd)
}

// Execute runs the command tree
func Execute() error {
	return rootCmd.Execute()
}

// openLedger opens the bolt-backed ledger named by the config and flags. The
// caller owns the returned stop function.
func openLedger() (*ledger.Ledger, func(), error) {
	cfg, err := config.New([]string{_configPath})
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to load config")
	}
	if _dbPath != "" {
		cfg.DB.DbPath = _dbPath
	}
	registry, err := ledger.NewBuiltinRegistry()
	if err != nil {
		return nil, nil, err
	}
	sf, err := factory.NewStateDB(cfg, factory.DefaultStateDBOption(), factory.RegistryStateDBOption(registry))
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to create the state factory")
	}
	l, err := ledger.NewLedger(cfg, sf, registry)
	if err != nil {
		return nil, nil, err
	}
	ctx := context.Background()
	if err := l.Start(ctx); err != nil {
		return nil, nil, errors.Wrap(err, "failed to start the ledger")
	}
	stop := func() {
		if err := l.Stop(ctx); err != nil {
			fmt.Println("failed to stop the ledger:", err)
		}
	}
	return l, stop, nil
}

func callerAddress() (address.Address, error) {
	if _as == "" {
		return nil, errors.New("--as is required for operations")
	}
	return address.FromString(_as)
}

// perform opens the ledger, runs one operation as the --as caller and prints
// its receipt
func perform(act action.Action) error {
	caller, err := callerAddress()
	if err != nil {
		return err
	}
	l, stop, err := openLedger()
	if err != nil {
		return err
	}
	defer stop()
	receipt, err := l.PerformOperation(context.Background(), caller, act)
	if err != nil {
		return err
	}
	printReceipt(receipt)
	return nil
}

func printReceipt(receipt *action.Receipt) {
	fmt.Printf("status: %d\nheight: %d\naction: %x\nentity: %s\n",
		receipt.Status, receipt.BlockHeight, receipt.ActionHash, receipt.EntityAddress)
	for _, l := range receipt.Logs {
		fmt.Printf("%s: %s -> %s amount=%d", l.Type, l.Sender, l.Recipient, l.Amount)
		if l.Unit != "" {
			fmt.Printf(" unit=%s", l.Unit)
		}
		fmt.Println()
	}
}

func parseUint64(s, field string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid %s %q", field, s)
	}
	return v, nil
}

func parseBps(s, field string) (uint16, error) {
	v, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid %s %q", field, s)
	}
	return uint16(v), nil
}
