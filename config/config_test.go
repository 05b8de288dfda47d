// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/tradepost-labs/tradepost-core/test/identityset"
)

func TestNewDefaultConfig(t *testing.T) {
	require := require.New(t)

	cfg, err := New(nil)
	require.NoError(err)
	require.Equal(uint32(1), cfg.Ledger.ChainID)
	require.Equal(24*time.Hour, cfg.Genesis.CampaignWindow)
	require.Equal(uint64(845_000_000_000), cfg.Genesis.CampaignTarget)
	require.NotZero(cfg.Genesis.ReserveBase)
	require.NotZero(cfg.DB.NumRetries)
}

func TestNewConfigFromFile(t *testing.T) {
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
ledger:
  chainID: 7
db:
  dbPath: /tmp/override.db
genesis:
  campaignTarget: 1000
  initBalances:
    ` + identityset.Address(0).String() + `: 500
`
	require.NoError(os.WriteFile(path, []byte(content), 0600))

	cfg, err := New([]string{path})
	require.NoError(err)
	require.Equal(uint32(7), cfg.Ledger.ChainID)
	require.Equal("/tmp/override.db", cfg.DB.DbPath)
	require.Equal(uint64(1000), cfg.Genesis.CampaignTarget)
	require.Equal(uint64(500), cfg.Genesis.InitBalances[identityset.Address(0).String()])
	// defaults survive partial override
	require.Equal(24*time.Hour, cfg.Genesis.CampaignWindow)
}

func TestValidateGenesis(t *testing.T) {
	require := require.New(t)

	cfg := Default
	require.NoError(ValidateGenesis(cfg))

	cfg.Genesis.CampaignWindow = 0
	require.Equal(ErrInvalidCfg, errors.Cause(ValidateGenesis(cfg)))

	cfg = Default
	cfg.Genesis.CampaignTarget = 0
	require.Equal(ErrInvalidCfg, errors.Cause(ValidateGenesis(cfg)))

	cfg = Default
	cfg.Genesis = DefaultGenesis
	cfg.Genesis.InitBalances = map[string]uint64{"not-an-address": 1}
	require.Equal(ErrInvalidCfg, errors.Cause(ValidateGenesis(cfg)))

	cfg.Genesis.InitBalances = map[string]uint64{identityset.Address(1).String(): 42}
	require.NoError(ValidateGenesis(cfg))

	require.Equal(ErrInvalidCfg, errors.Cause(ValidateLedger(Config{})))
}
