// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package protocol

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tradepost-labs/tradepost-core/action"
)

type mockProtocol struct {
	id string
}

func (p *mockProtocol) Validate(context.Context, action.Action) error { return nil }

func (p *mockProtocol) Handle(context.Context, action.Action, StateManager) (*action.Receipt, error) {
	return nil, nil
}

func TestRegistry(t *testing.T) {
	require := require.New(t)

	reg := NewRegistry()
	p1 := &mockProtocol{id: "one"}
	p2 := &mockProtocol{id: "two"}

	require.NoError(reg.Register("one", p1))
	require.Error(reg.Register("one", p2))

	found, ok := reg.Find("one")
	require.True(ok)
	require.Equal(p1, found)

	_, ok = reg.Find("missing")
	require.False(ok)

	require.NoError(reg.ForceRegister("one", p2))
	found, ok = reg.Find("one")
	require.True(ok)
	require.Equal(p2, found)

	require.NoError(reg.Register("two", p1))
	require.Len(reg.All(), 2)
}
