// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package batch

const (
	// Put indicates a Put write operation
	Put WriteType = iota
	// Delete indicates a Delete write operation
	Delete
)

type (
	// WriteType is the type of a queued write
	WriteType uint8

	// WriteInfo stores a single Put/Delete operation
	WriteInfo struct {
		writeType   WriteType
		namespace   string
		key         []byte
		value       []byte
		errorFormat string
		errorArgs   []interface{}
	}
)

// NewWriteInfo creates a new write info
func NewWriteInfo(
	writeType WriteType,
	namespace string,
	key, value []byte,
	errorFormat string,
	errorArgs ...interface{},
) *WriteInfo {
	return &WriteInfo{
		writeType:   writeType,
		namespace:   namespace,
		key:         key,
		value:       value,
		errorFormat: errorFormat,
		errorArgs:   errorArgs,
	}
}

// Namespace returns the namespace of the write
func (wi *WriteInfo) Namespace() string { return wi.namespace }

// WriteType returns the type of the write
func (wi *WriteInfo) WriteType() WriteType { return wi.writeType }

// Key returns a copy of the key
func (wi *WriteInfo) Key() []byte {
	key := make([]byte, len(wi.key))
	copy(key, wi.key)
	return key
}

// Value returns a copy of the value
func (wi *WriteInfo) Value() []byte {
	value := make([]byte, len(wi.value))
	copy(value, wi.value)
	return value
}

// ErrorFormat returns the error format
func (wi *WriteInfo) ErrorFormat() string { return wi.errorFormat }

// ErrorArgs returns the error args
func (wi *WriteInfo) ErrorArgs() []interface{} { return wi.errorArgs }

// Serialize serializes the write info
func (wi *WriteInfo) Serialize() []byte {
	bytes := []byte{byte(wi.writeType)}
	bytes = append(bytes, []byte(wi.namespace)...)
	bytes = append(bytes, wi.key...)
	bytes = append(bytes, wi.value...)
	return bytes
}
