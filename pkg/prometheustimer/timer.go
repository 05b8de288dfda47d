// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package prometheustimer

import (
	"github.com/facebookgo/clock"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/tradepost-labs/tradepost-core/pkg/log"
)

type (
	// TimerFactory defines a timer factory to generate timers
	TimerFactory struct {
		labelNames    []string
		defaultLabels []string
		vect          *prometheus.GaugeVec
		clk           clock.Clock
	}

	// Timer defines a timer to measure performance
	Timer struct {
		factory   *TimerFactory
		labels    []string
		startTime int64
	}
)

// New returns a new TimerFactory
func New(name, tip string, labelNames, defaultLabels []string) (*TimerFactory, error) {
	if len(labelNames) != len(defaultLabels) {
		return nil, errors.New("label names do not match default labels")
	}
	vect := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: name,
			Help: tip,
		},
		labelNames,
	)
	if err := prometheus.Register(vect); err != nil {
		return nil, errors.Wrap(err, "failed to register prometheus gauge vector")
	}

	return &TimerFactory{
		labelNames:    labelNames,
		defaultLabels: defaultLabels,
		vect:          vect,
		clk:           clock.New(),
	}, nil
}

// NewTimer returns a timer with start time as now
func (factory *TimerFactory) NewTimer(labels ...string) *Timer {
	if factory == nil {
		return nil
	}
	if len(labels) > len(factory.labelNames) {
		log.L().Error(
			"Two many timer labels",
			zap.Int("numLabels", len(labels)),
			zap.Int("numLabelNames", len(factory.labelNames)),
		)
		return nil
	}
	return &Timer{
		factory:   factory,
		labels:    labels,
		startTime: factory.now(),
	}
}

// End ends the timer
func (timer *Timer) End() {
	if timer == nil || timer.factory == nil {
		return
	}
	f := timer.factory
	f.log(float64(f.now()-timer.startTime), timer.labels...)
}

func (factory *TimerFactory) log(value float64, labels ...string) {
	factory.vect.WithLabelValues(
		append(labels, factory.defaultLabels[len(labels):]...)...,
	).Set(value)
}

func (factory *TimerFactory) now() int64 {
	return factory.clk.Now().UnixNano()
}
