// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package config

import (
	"os"
	"time"

	"github.com/pkg/errors"
	uconfig "go.uber.org/config"

	"github.com/tradepost-labs/tradepost-core/address"
	"github.com/tradepost-labs/tradepost-core/db"
	"github.com/tradepost-labs/tradepost-core/pkg/log"
	"github.com/tradepost-labs/tradepost-core/pkg/unit"
)

// IMPORTANT: to define a config, add a field or a new config type to the existing config types. In addition, provide
// the default value in Default var.

type (
	// Ledger is the runtime config
	Ledger struct {
		ChainID uint32 `yaml:"chainID"`
	}

	// Genesis holds the parameters fixed at ledger creation. Amounts are in
	// grain, the smallest native unit.
	Genesis struct {
		// InitBalances maps an address to its balance at height zero
		InitBalances map[string]uint64 `yaml:"initBalances"`
		// CampaignWindow is the fundraising window length
		CampaignWindow time.Duration `yaml:"campaignWindow"`
		// CampaignTarget is the fundraising target
		CampaignTarget uint64 `yaml:"campaignTarget"`
		// ReserveBase is the flat part of an entity's storage reserve
		ReserveBase uint64 `yaml:"reserveBase"`
		// ReservePerByte is the per-byte part of an entity's storage reserve
		ReservePerByte uint64 `yaml:"reservePerByte"`
	}

	// Config is the root config struct, each package defines its own nested config
	Config struct {
		Ledger  Ledger                      `yaml:"ledger"`
		DB      db.Config                   `yaml:"db"`
		Log     log.GlobalConfig            `yaml:"log"`
		SubLogs map[string]log.GlobalConfig `yaml:"subLogs"`
		Genesis Genesis                     `yaml:"genesis"`
	}

	// Validate is the interface of validating the config
	Validate func(Config) error
)

var (
	// Default is the default config
	Default = Config{
		Ledger:  Ledger{ChainID: 1},
		DB:      db.DefaultConfig,
		SubLogs: make(map[string]log.GlobalConfig),
		Genesis: DefaultGenesis,
	}

	// DefaultGenesis is the default genesis parameter set
	DefaultGenesis = Genesis{
		InitBalances:   make(map[string]uint64),
		CampaignWindow: 24 * time.Hour,
		CampaignTarget: unit.MarkToGrain(845),
		ReserveBase:    100 * unit.KGrain,
		ReservePerByte: unit.KGrain,
	}

	// Validates is the collection of default validations
	Validates = []Validate{ValidateLedger, ValidateGenesis}

	// ErrInvalidCfg indicates the invalid config value
	ErrInvalidCfg = errors.New("invalid config value")
)

// New creates a config instance. It first loads the default configs. If a
// config path is not empty, the file content overrides the defaults. By
// default it applies all validation functions.
func New(configPaths []string, validates ...Validate) (Config, error) {
	opts := make([]uconfig.YAMLOption, 0)
	opts = append(opts, uconfig.Static(Default))
	opts = append(opts, uconfig.Expand(os.LookupEnv))
	for _, path := range configPaths {
		if path != "" {
			opts = append(opts, uconfig.File(path))
		}
	}
	yaml, err := uconfig.NewYAML(opts...)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to init config")
	}

	var cfg Config
	if err := yaml.Get(uconfig.Root).Populate(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "failed to unmarshal YAML config to struct")
	}

	if len(validates) == 0 {
		validates = Validates
	}
	for _, validate := range validates {
		if err := validate(cfg); err != nil {
			return Config{}, errors.Wrap(err, "failed to validate config")
		}
	}
	return cfg, nil
}

// ValidateLedger validates the ledger config
func ValidateLedger(cfg Config) error {
	if cfg.Ledger.ChainID == 0 {
		return errors.Wrap(ErrInvalidCfg, "chain ID cannot be zero")
	}
	return nil
}

// ValidateGenesis validates the genesis parameters
func ValidateGenesis(cfg Config) error {
	g := cfg.Genesis
	if g.CampaignWindow <= 0 {
		return errors.Wrap(ErrInvalidCfg, "campaign window must be positive")
	}
	if g.CampaignTarget == 0 {
		return errors.Wrap(ErrInvalidCfg, "campaign target cannot be zero")
	}
	for encoded := range g.InitBalances {
		if _, err := address.FromString(encoded); err != nil {
			return errors.Wrapf(ErrInvalidCfg, "invalid init balance address %s", encoded)
		}
	}
	return nil
}

// DoNotValidate validates nothing
func DoNotValidate(Config) error { return nil }
