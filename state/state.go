// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

// Package state defines the persisted objects the ledger tracks and the
// serialization contract they all share. Every record stored under a ledger
// namespace round-trips through the borsh wire layout.
package state

import (
	"reflect"

	"github.com/near/borsh-go"
	"github.com/pkg/errors"
)

var (
	// ErrStateSerialization indicates the state object failed to serialize
	ErrStateSerialization = errors.New("failed to serialize state")
	// ErrStateDeserialization indicates the bytes failed to deserialize into the state object
	ErrStateDeserialization = errors.New("failed to deserialize state")
	// ErrStateNotExist indicates the state does not exist under the queried key
	ErrStateNotExist = errors.New("state does not exist")
	// ErrNotEnoughBalance indicates the balance is too low for the deduction
	ErrNotEnoughBalance = errors.New("not enough balance")
	// ErrBalanceOverflow indicates the addition would exceed the representable balance
	ErrBalanceOverflow = errors.New("balance overflow")
	// ErrInvalidAmount indicates the amount is not acceptable for the operation
	ErrInvalidAmount = errors.New("invalid amount")
)

type (
	// Serializer serializes a state object into bytes
	Serializer interface {
		Serialize() ([]byte, error)
	}

	// Deserializer deserializes bytes into a state object
	Deserializer interface {
		Deserialize(data []byte) error
	}
)

// Serialize serializes the state object into bytes. Objects implementing
// Serializer keep control of their own layout, anything else goes through
// the default borsh encoding.
func Serialize(d interface{}) ([]byte, error) {
	if s, ok := d.(Serializer); ok {
		return s.Serialize()
	}
	// borsh encodes a pointer as an option (1-byte tag + value), while
	// Deserialize below decodes straight into the pointed-to value; unwrap
	// pointers here so the two sides agree on the wire layout.
	v := reflect.ValueOf(d)
	for v.Kind() == reflect.Ptr && !v.IsNil() {
		v = v.Elem()
	}
	data, err := borsh.Serialize(v.Interface())
	if err != nil {
		return nil, errors.Wrapf(ErrStateSerialization, "error when serializing %T state: %v", d, err)
	}
	return data, nil
}

// Deserialize deserializes bytes into the state object
func Deserialize(x interface{}, data []byte) error {
	if d, ok := x.(Deserializer); ok {
		return d.Deserialize(data)
	}
	if err := borsh.Deserialize(x, data); err != nil {
		return errors.Wrapf(ErrStateDeserialization, "error when deserializing %T state: %v", x, err)
	}
	return nil
}
