// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

// Package metadata records the descriptor of every issued unit and tracks
// verified collection membership. A unit's descriptor names the collection it
// claims; only the collection entity itself can verify the claim, which is
// what the escrow and staking components trust when they gate on membership.
package metadata

import (
	"github.com/pkg/errors"

	"github.com/tradepost-labs/tradepost-core/action/protocol"
	"github.com/tradepost-labs/tradepost-core/address"
	"github.com/tradepost-labs/tradepost-core/pkg/hash"
	"github.com/tradepost-labs/tradepost-core/state"
)

// Record is the descriptor of one unit, keyed by the unit's address.
// Collection is zero for a collection's own descriptor.
type Record struct {
	Name               string
	Symbol             string
	URI                string
	RoyaltyBps         uint16
	Collection         hash.Hash160
	CollectionVerified bool
	Finalized          bool
}

// writer returns the address whose authority may mutate the record: the named
// collection when the record claims one, the unit itself otherwise.
func (r *Record) writer(unit address.Address) (address.Address, error) {
	if r.Collection == hash.ZeroHash160 {
		return unit, nil
	}
	return address.FromBytes(r.Collection[:])
}

// Read returns the descriptor of a unit
func Read(sr protocol.StateReader, unit address.Address) (*Record, error) {
	var rec Record
	if err := sr.State(&rec, protocol.NamespaceOption(state.MetadataKVNamespace), protocol.AddrKeyOption(unit)); err != nil {
		if errors.Cause(err) == state.ErrStateNotExist {
			return nil, errors.Wrapf(protocol.ErrInvalidState, "no descriptor for unit %s", unit)
		}
		return nil, errors.Wrapf(err, "failed to read descriptor of unit %s", unit)
	}
	return &rec, nil
}

// Write records the descriptor of a unit. The authority must cover the
// record's writer; a finalized descriptor rejects rewrites.
func Write(sm protocol.StateManager, unit address.Address, rec Record, auth protocol.Authority) error {
	w, err := rec.writer(unit)
	if err != nil {
		return errors.Wrapf(err, "corrupt collection reference in descriptor of %s", unit)
	}
	if !auth.Covers(w) {
		return errors.Wrapf(protocol.ErrUnauthorized, "authority of %s does not cover descriptor writer %s", auth.Address(), w)
	}
	existing, err := Read(sm, unit)
	switch errors.Cause(err) {
	case nil:
		if existing.Finalized {
			return errors.Wrapf(protocol.ErrInvalidState, "descriptor of %s is finalized", unit)
		}
	case protocol.ErrInvalidState:
		// first write
	default:
		return err
	}
	return sm.PutState(&rec, protocol.NamespaceOption(state.MetadataKVNamespace), protocol.AddrKeyOption(unit))
}

// Verify marks the unit as a verified member of the collection its descriptor
// names. Only the collection entity's own authority can verify.
func Verify(sm protocol.StateManager, unit, collection address.Address, auth protocol.Authority) error {
	if !auth.Covers(collection) {
		return errors.Wrapf(protocol.ErrUnauthorized, "authority of %s does not cover collection %s", auth.Address(), collection)
	}
	rec, err := Read(sm, unit)
	if err != nil {
		return err
	}
	if rec.Collection != hash.BytesToHash160(collection.Bytes()) {
		return errors.Wrapf(protocol.ErrInvalidInput, "descriptor of %s does not reference collection %s", unit, collection)
	}
	rec.CollectionVerified = true
	return sm.PutState(rec, protocol.NamespaceOption(state.MetadataKVNamespace), protocol.AddrKeyOption(unit))
}

// Finalize marks a descriptor immutable. Requires the same authority as Write.
func Finalize(sm protocol.StateManager, unit address.Address, auth protocol.Authority) error {
	rec, err := Read(sm, unit)
	if err != nil {
		return err
	}
	w, err := rec.writer(unit)
	if err != nil {
		return errors.Wrapf(err, "corrupt collection reference in descriptor of %s", unit)
	}
	if !auth.Covers(w) {
		return errors.Wrapf(protocol.ErrUnauthorized, "authority of %s does not cover descriptor writer %s", auth.Address(), w)
	}
	if rec.Finalized {
		return errors.Wrapf(protocol.ErrInvalidState, "descriptor of %s is already finalized", unit)
	}
	rec.Finalized = true
	return sm.PutState(rec, protocol.NamespaceOption(state.MetadataKVNamespace), protocol.AddrKeyOption(unit))
}

// BelongsTo reports whether the unit is a verified member of the collection.
// A missing descriptor is simply not a member.
func BelongsTo(sr protocol.StateReader, unit, collection address.Address) (bool, error) {
	rec, err := Read(sr, unit)
	if err != nil {
		if errors.Cause(err) == protocol.ErrInvalidState {
			return false, nil
		}
		return false, err
	}
	return rec.CollectionVerified && rec.Collection == hash.BytesToHash160(collection.Bytes()), nil
}
