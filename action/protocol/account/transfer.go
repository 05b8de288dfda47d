// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package account

import (
	"context"

	"github.com/pkg/errors"

	"github.com/tradepost-labs/tradepost-core/action"
	"github.com/tradepost-labs/tradepost-core/action/protocol"
	"github.com/tradepost-labs/tradepost-core/address"
	"github.com/tradepost-labs/tradepost-core/config"
	"github.com/tradepost-labs/tradepost-core/pkg/util/mathutil"
	"github.com/tradepost-labs/tradepost-core/state"
)

// Transfer moves amount grain from one account to another. The authority
// must cover the sender; the sender can spend only down to its reserve.
func Transfer(sm protocol.StateManager, from, to address.Address, amount uint64, auth protocol.Authority) (*action.TransactionLog, error) {
	if !auth.Covers(from) {
		return nil, errors.Wrapf(protocol.ErrUnauthorized, "authority of %s does not cover sender %s", auth.Address(), from)
	}
	sender, err := LoadOrCreateAccount(sm, from)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load sender %s", from)
	}
	if amount > sender.SpendableBalance() {
		return nil, errors.Wrapf(state.ErrNotEnoughBalance, "spendable %d, amount %d", sender.SpendableBalance(), amount)
	}
	if !address.Equal(from, to) {
		if err := sender.SubBalance(amount); err != nil {
			return nil, err
		}
		if err := StoreAccount(sm, from, sender); err != nil {
			return nil, errors.Wrapf(err, "failed to store sender %s", from)
		}
		recipient, err := LoadOrCreateAccount(sm, to)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to load recipient %s", to)
		}
		if err := recipient.AddBalance(amount); err != nil {
			return nil, err
		}
		if err := StoreAccount(sm, to, recipient); err != nil {
			return nil, errors.Wrapf(err, "failed to store recipient %s", to)
		}
	}
	return &action.TransactionLog{
		Type:      action.TransferLog,
		Sender:    from.String(),
		Recipient: to.String(),
		Amount:    amount,
	}, nil
}

// Reserve computes the storage reserve backing a record of the given size
func Reserve(g config.Genesis, size uint64) uint64 {
	return mathutil.AddSaturate(g.ReserveBase, mathutil.MulSaturate(size, g.ReservePerByte))
}

// Establish creates an entity account and funds its storage reserve from the
// payer. The reserve stays on the entity's balance, frozen until the account
// closes.
func Establish(ctx context.Context, sm protocol.StateManager, payer, entity address.Address, size uint64, auth protocol.Authority) (*action.TransactionLog, error) {
	if !auth.Covers(payer) {
		return nil, errors.Wrapf(protocol.ErrUnauthorized, "authority of %s does not cover payer %s", auth.Address(), payer)
	}
	recorded, err := Recorded(sm, entity)
	if err != nil {
		return nil, err
	}
	if recorded {
		return nil, errors.Wrapf(protocol.ErrInvalidState, "entity %s already established", entity)
	}
	reserve := Reserve(protocol.MustGetGenesisCtx(ctx), size)

	payerAcct, err := LoadOrCreateAccount(sm, payer)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load payer %s", payer)
	}
	if reserve > payerAcct.SpendableBalance() {
		return nil, errors.Wrapf(state.ErrNotEnoughBalance, "spendable %d, reserve %d", payerAcct.SpendableBalance(), reserve)
	}
	if err := payerAcct.SubBalance(reserve); err != nil {
		return nil, err
	}
	if err := StoreAccount(sm, payer, payerAcct); err != nil {
		return nil, errors.Wrapf(err, "failed to store payer %s", payer)
	}

	entityAcct, err := LoadOrCreateAccount(sm, entity)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load entity %s", entity)
	}
	if err := entityAcct.AddBalance(reserve); err != nil {
		return nil, err
	}
	if err := entityAcct.AddReserve(reserve); err != nil {
		return nil, err
	}
	if err := StoreAccount(sm, entity, entityAcct); err != nil {
		return nil, errors.Wrapf(err, "failed to store entity %s", entity)
	}
	return &action.TransactionLog{
		Type:      action.ReserveEstablishLog,
		Sender:    payer.String(),
		Recipient: entity.String(),
		Amount:    reserve,
	}, nil
}

// Close pays the entity's entire remaining balance, reserve included, to the
// beneficiary and deletes the account record. The entity ceases to exist.
func Close(sm protocol.StateManager, entity, beneficiary address.Address, auth protocol.Authority) (*action.TransactionLog, error) {
	if !auth.Covers(entity) {
		return nil, errors.Wrapf(protocol.ErrUnauthorized, "authority of %s does not cover entity %s", auth.Address(), entity)
	}
	recorded, err := Recorded(sm, entity)
	if err != nil {
		return nil, err
	}
	if !recorded {
		return nil, errors.Wrapf(protocol.ErrInvalidState, "entity %s has no account", entity)
	}
	entityAcct, err := LoadAccount(sm, entity)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load entity %s", entity)
	}
	remaining := entityAcct.Balance

	beneficiaryAcct, err := LoadOrCreateAccount(sm, beneficiary)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load beneficiary %s", beneficiary)
	}
	if err := beneficiaryAcct.AddBalance(remaining); err != nil {
		return nil, err
	}
	if err := StoreAccount(sm, beneficiary, beneficiaryAcct); err != nil {
		return nil, errors.Wrapf(err, "failed to store beneficiary %s", beneficiary)
	}
	if err := sm.DelState(protocol.AddrKeyOption(entity)); err != nil {
		return nil, errors.Wrapf(err, "failed to delete entity %s", entity)
	}
	return &action.TransactionLog{
		Type:      action.AccountCloseLog,
		Sender:    entity.String(),
		Recipient: beneficiary.String(),
		Amount:    remaining,
	}, nil
}
