// Copyright (c) 2023 Tradepost
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

// Package bech32 implements the checksummed base32 encoding of BIP-173,
// used as the human-readable address format.
package bech32

import (
	"strings"

	"github.com/pkg/errors"
)

const _charset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"

var _gen = []int{0x3b6a57b2, 0x26508e6d, 0x1ea119fa, 0x3d4233dd, 0x2a1462b3}

// toBytes converts each character in the string 'chars' to the value of the
// index of the corresponding character in _charset
func toBytes(chars string) ([]byte, error) {
	decoded := make([]byte, 0, len(chars))
	for i := 0; i < len(chars); i++ {
		index := strings.IndexByte(_charset, chars[i])
		if index < 0 {
			return nil, errors.Errorf("invalid character not part of charset: %v", chars[i])
		}
		decoded = append(decoded, byte(index))
	}
	return decoded, nil
}

// toChars converts the byte slice 'data' to a string where each byte in 'data'
// encodes the index of a character in _charset
func toChars(data []byte) (string, error) {
	result := make([]byte, 0, len(data))
	for _, b := range data {
		if int(b) >= len(_charset) {
			return "", errors.Errorf("invalid data byte: %v", b)
		}
		result = append(result, _charset[b])
	}
	return string(result), nil
}

func polymod(values []byte) int {
	chk := 1
	for _, v := range values {
		b := chk >> 25
		chk = (chk&0x1ffffff)<<5 ^ int(v)
		for i := 0; i < 5; i++ {
			if (b>>uint(i))&1 == 1 {
				chk ^= _gen[i]
			}
		}
	}
	return chk
}

func hrpExpand(hrp string) []byte {
	v := make([]byte, 0, len(hrp)*2+1)
	for i := 0; i < len(hrp); i++ {
		v = append(v, hrp[i]>>5)
	}
	v = append(v, 0)
	for i := 0; i < len(hrp); i++ {
		v = append(v, hrp[i]&31)
	}
	return v
}

func verifyChecksum(hrp string, data []byte) bool {
	return polymod(append(hrpExpand(hrp), data...)) == 1
}

func checksum(hrp string, data []byte) []byte {
	values := append(hrpExpand(hrp), data...)
	values = append(values, []byte{0, 0, 0, 0, 0, 0}...)
	mod := polymod(values) ^ 1
	res := make([]byte, 0, 6)
	for i := 0; i < 6; i++ {
		res = append(res, byte((mod>>uint(5*(5-i)))&31))
	}
	return res
}

// Decode decodes a bech32 encoded string, returning the human-readable part
// and the data part excluding the checksum
func Decode(bech string) (string, []byte, error) {
	// the maximum allowed length for a bech32 string is 90
	if len(bech) > 90 {
		return "", nil, errors.Errorf("invalid bech32 string length %d", len(bech))
	}
	// only ASCII characters between 33 and 126 are allowed
	for i := 0; i < len(bech); i++ {
		if bech[i] < 33 || bech[i] > 126 {
			return "", nil, errors.Errorf("invalid character in string: '%c'", bech[i])
		}
	}
	// the characters must be either all lowercase or all uppercase
	lower := strings.ToLower(bech)
	upper := strings.ToUpper(bech)
	if bech != lower && bech != upper {
		return "", nil, errors.New("string not all lowercase or all uppercase")
	}
	bech = lower

	// the string is invalid if the last '1' is non-existent, is the first
	// character of the string (no human-readable part), or is one of the last
	// 6 characters of the string (the checksum cannot contain '1')
	one := strings.LastIndexByte(bech, '1')
	if one < 1 || one+7 > len(bech) {
		return "", nil, errors.Errorf("invalid index of 1: %d", one)
	}
	hrp := bech[:one]
	data := bech[one+1:]

	decoded, err := toBytes(data)
	if err != nil {
		return "", nil, errors.Wrap(err, "failed converting data to bytes")
	}
	if !verifyChecksum(hrp, decoded) {
		return "", nil, errors.New("checksum verification failed")
	}
	// exclude the last 6 bytes, which is the checksum
	return hrp, decoded[:len(decoded)-6], nil
}

// Encode encodes the 5-bit groups in data into a bech32 string with the
// human-readable part hrp
func Encode(hrp string, data []byte) (string, error) {
	combined := append(data, checksum(hrp, data)...)
	dataChars, err := toChars(combined)
	if err != nil {
		return "", errors.Wrap(err, "unable to convert data bytes to chars")
	}
	return hrp + "1" + dataChars, nil
}

// ConvertBits converts a byte slice where each byte encodes fromBits bits to a
// byte slice where each byte encodes toBits bits
func ConvertBits(data []byte, fromBits, toBits uint8, pad bool) ([]byte, error) {
	if fromBits < 1 || fromBits > 8 || toBits < 1 || toBits > 8 {
		return nil, errors.New("only bit groups between 1 and 8 allowed")
	}

	var regrouped []byte
	nextByte := byte(0)
	filledBits := uint8(0)
	for _, b := range data {
		// discard the unused bits
		b <<= 8 - fromBits

		remFromBits := fromBits
		for remFromBits > 0 {
			remToBits := toBits - filledBits
			toExtract := remFromBits
			if remToBits < toExtract {
				toExtract = remToBits
			}
			// add the next bits to nextByte, shifting the already added bits to the left
			nextByte = (nextByte << toExtract) | (b >> (8 - toExtract))
			b <<= toExtract
			remFromBits -= toExtract
			filledBits += toExtract

			if filledBits == toBits {
				regrouped = append(regrouped, nextByte)
				nextByte = 0
				filledBits = 0
			}
		}
	}
	if pad && filledBits > 0 {
		nextByte <<= toBits - filledBits
		regrouped = append(regrouped, nextByte)
		nextByte = 0
		filledBits = 0
	}
	// any incomplete group must be <= 4 bits, and all zeroes
	if filledBits > 0 && (filledBits > 4 || nextByte != 0) {
		return nil, errors.New("invalid incomplete group")
	}
	return regrouped, nil
}
