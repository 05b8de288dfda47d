// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package protocol

import (
	"github.com/pkg/errors"

	"github.com/tradepost-labs/tradepost-core/address"
	"github.com/tradepost-labs/tradepost-core/state"
)

type (
	// StateConfig is the config for accessing the state store
	StateConfig struct {
		Namespace string
		Key       []byte
	}

	// StateOption sets a parameter for state access
	StateOption func(*StateConfig) error

	// StateReader defines an interface to read ledger state
	StateReader interface {
		Height() (uint64, error)
		State(interface{}, ...StateOption) error
	}

	// StateManager defines the mutable state interface handlers run against
	StateManager interface {
		StateReader
		Snapshot() int
		Revert(int) error
		PutState(interface{}, ...StateOption) error
		DelState(...StateOption) error
	}
)

// NamespaceOption creates an option for the given namespace
func NamespaceOption(ns string) StateOption {
	return func(sc *StateConfig) error {
		sc.Namespace = ns
		return nil
	}
}

// KeyOption sets the key for the call
func KeyOption(key []byte) StateOption {
	return func(sc *StateConfig) error {
		sc.Key = make([]byte, len(key))
		copy(sc.Key, key)
		return nil
	}
}

// AddrKeyOption sets the key to the address payload
func AddrKeyOption(addr address.Address) StateOption {
	return func(sc *StateConfig) error {
		if addr == nil {
			return errors.Wrap(address.ErrInvalidAddr, "nil address as state key")
		}
		sc.Key = make([]byte, len(addr.Bytes()))
		copy(sc.Key, addr.Bytes())
		return nil
	}
}

// CreateStateConfig creates a config for accessing the state store. The
// account namespace is the default when no namespace option is given.
func CreateStateConfig(opts ...StateOption) (*StateConfig, error) {
	cfg := StateConfig{Namespace: state.AccountKVNamespace}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, errors.Wrap(err, "failed to execute state option")
		}
	}
	return &cfg, nil
}
