// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package lifecycle

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type orderedModel struct {
	name     string
	failOn   string
	journal  *[]string
	stopJrnl *[]string
}

func (m *orderedModel) Start(context.Context) error {
	if m.failOn == "start" {
		return errors.New("start failed")
	}
	*m.journal = append(*m.journal, m.name)
	return nil
}

func (m *orderedModel) Stop(context.Context) error {
	if m.failOn == "stop" {
		return errors.New("stop failed")
	}
	*m.stopJrnl = append(*m.stopJrnl, m.name)
	return nil
}

func TestLifecycleOrdering(t *testing.T) {
	require := require.New(t)

	var starts, stops []string
	lc := Lifecycle{}
	lc.AddModels(
		&orderedModel{name: "a", journal: &starts, stopJrnl: &stops},
		&orderedModel{name: "b", journal: &starts, stopJrnl: &stops},
	)
	lc.Add(&orderedModel{name: "c", journal: &starts, stopJrnl: &stops})

	ctx := context.Background()
	require.NoError(lc.OnStart(ctx))
	require.Equal([]string{"a", "b", "c"}, starts)
	require.NoError(lc.OnStop(ctx))
	require.Equal([]string{"c", "b", "a"}, stops)
}

func TestLifecycleStartFailure(t *testing.T) {
	require := require.New(t)

	var starts, stops []string
	lc := Lifecycle{}
	lc.Add(&orderedModel{name: "ok", journal: &starts, stopJrnl: &stops})
	lc.Add(&orderedModel{name: "bad", failOn: "start", journal: &starts, stopJrnl: &stops})
	lc.Add(&orderedModel{name: "never", journal: &starts, stopJrnl: &stops})

	require.Error(lc.OnStart(context.Background()))
	require.Equal([]string{"ok"}, starts)
}

func TestReadiness(t *testing.T) {
	require := require.New(t)

	var r Readiness
	require.False(r.IsReady())
	require.NoError(r.TurnOn())
	require.True(r.IsReady())
	require.Equal(ErrWrongState, r.TurnOn())
	require.NoError(r.TurnOff())
	require.False(r.IsReady())
	require.Equal(ErrWrongState, r.TurnOff())
}
