// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

// Package lifecycle manages the start/stop ordering of long-lived components.
package lifecycle

import "context"

type (
	// Starter is a component that needs starting before serving
	Starter interface {
		Start(context.Context) error
	}

	// Stopper is a component that needs stopping to release its resources
	Stopper interface {
		Stop(context.Context) error
	}

	// StartStopper is both a Starter and a Stopper
	StartStopper interface {
		Starter
		Stopper
	}

	// Lifecycle holds a pool of components and starts/stops them as a group.
	// Components start in registration order and stop in reverse order.
	Lifecycle struct {
		models []interface{}
	}
)

// Add adds a component into the pool
func (lc *Lifecycle) Add(m interface{}) { lc.models = append(lc.models, m) }

// AddModels adds multiple components into the pool
func (lc *Lifecycle) AddModels(m ...interface{}) { lc.models = append(lc.models, m...) }

// OnStart runs Start on every Starter in the pool, aborting on the first error
func (lc *Lifecycle) OnStart(ctx context.Context) error {
	for _, m := range lc.models {
		if starter, ok := m.(Starter); ok {
			if err := starter.Start(ctx); err != nil {
				return err
			}
		}
	}
	return nil
}

// OnStop runs Stop on every Stopper in the pool in reverse registration order
func (lc *Lifecycle) OnStop(ctx context.Context) error {
	for i := len(lc.models) - 1; i >= 0; i-- {
		if stopper, ok := lc.models[i].(Stopper); ok {
			if err := stopper.Stop(ctx); err != nil {
				return err
			}
		}
	}
	return nil
}
