// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package byteutil

import "encoding/binary"

// Uint32ToBytes converts a uint32 to 4 little-endian bytes
func Uint32ToBytes(value uint32) []byte {
	bytes := make([]byte, 4)
	binary.LittleEndian.PutUint32(bytes, value)
	return bytes
}

// Uint64ToBytes converts a uint64 to 8 little-endian bytes
func Uint64ToBytes(value uint64) []byte {
	bytes := make([]byte, 8)
	binary.LittleEndian.PutUint64(bytes, value)
	return bytes
}

// BytesToUint64 converts 8 little-endian bytes to a uint64
func BytesToUint64(value []byte) uint64 {
	return binary.LittleEndian.Uint64(value)
}

// Uint64ToBytesBigEndian converts a uint64 to 8 big-endian bytes, which sort
// in numeric order and back sequential record keys
func Uint64ToBytesBigEndian(value uint64) []byte {
	bytes := make([]byte, 8)
	binary.BigEndian.PutUint64(bytes, value)
	return bytes
}

// BytesToUint64BigEndian converts 8 big-endian bytes to a uint64
func BytesToUint64BigEndian(value []byte) uint64 {
	return binary.BigEndian.Uint64(value)
}

// Must wraps a call returning ([]byte, error) and panics if the error is not nil
func Must(d []byte, err error) []byte {
	if err != nil {
		panic(err)
	}
	return d
}
