// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package compactsize

import (
	"encoding/binary"

	"github.com/bitmark-inc/ledgerd/fault"
)

// prefix markers for the wider length encodings
const (
	maximumSingleByte = 0xfc
	marker16          = 0xfd
	marker32          = 0xfe
	marker64          = 0xff
)

// MaximumPrefixBytes - largest possible length prefix
const MaximumPrefixBytes = 9

// Prefix - encode a length as a compact size prefix
//
// Structure of the result
//   length <= 252:        length
//   length <= 0xffff:     0xfd ++ uint16(LE)
//   length <= 0xffffffff: 0xfe ++ uint32(LE)
//   otherwise:            0xff ++ uint64(LE)
func Prefix(length uint64) []byte {
	switch {
	case length <= maximumSingleByte:
		return []byte{byte(length)}
	case length <= 0xffff:
		buffer := make([]byte, 3)
		buffer[0] = marker16
		binary.LittleEndian.PutUint16(buffer[1:], uint16(length))
		return buffer
	case length <= 0xffffffff:
		buffer := make([]byte, 5)
		buffer[0] = marker32
		binary.LittleEndian.PutUint32(buffer[1:], uint32(length))
		return buffer
	default:
		buffer := make([]byte, 9)
		buffer[0] = marker64
		binary.LittleEndian.PutUint64(buffer[1:], length)
		return buffer
	}
}

// Encode - frame a single field
//
// an empty field encodes as a single zero byte, which is also the
// sentinel for an absent optional field
func Encode(data []byte) []byte {
	prefix := Prefix(uint64(len(data)))
	result := make([]byte, 0, len(prefix)+len(data))
	result = append(result, prefix...)
	return append(result, data...)
}

// Append - frame a field onto the end of a buffer
func Append(buffer []byte, data []byte) []byte {
	buffer = append(buffer, Prefix(uint64(len(data)))...)
	return append(buffer, data...)
}

// ReadPrefix - decode a length prefix from the start of a buffer
//
// returns the length and the number of prefix bytes consumed
func ReadPrefix(buffer []byte) (uint64, int, error) {
	if 0 == len(buffer) {
		return 0, 0, fault.ErrTruncatedLength
	}

	width := 0
	switch buffer[0] {
	case marker16:
		width = 2
	case marker32:
		width = 4
	case marker64:
		width = 8
	default:
		return uint64(buffer[0]), 1, nil
	}

	if len(buffer) < 1+width {
		return 0, 0, fault.ErrTruncatedLength
	}

	switch width {
	case 2:
		return uint64(binary.LittleEndian.Uint16(buffer[1:])), 3, nil
	case 4:
		return uint64(binary.LittleEndian.Uint32(buffer[1:])), 5, nil
	default:
		return binary.LittleEndian.Uint64(buffer[1:]), 9, nil
	}
}

// Decode - split a buffer into its framed fields
//
// the whole buffer must be consumed; a prefix claiming more bytes
// than remain is a framing error
func Decode(buffer []byte) ([][]byte, error) {
	fields := make([][]byte, 0, 8)
	for offset := 0; offset < len(buffer); {
		length, n, err := ReadPrefix(buffer[offset:])
		if nil != err {
			return nil, err
		}
		offset += n

		remaining := uint64(len(buffer) - offset)
		if length > remaining {
			return nil, fault.ErrTruncatedRecord
		}

		end := offset + int(length)
		fields = append(fields, buffer[offset:end])
		offset = end
	}
	return fields, nil
}

// DecodeCount - split a buffer that must contain exactly count fields
func DecodeCount(buffer []byte, count int) ([][]byte, error) {
	fields, err := Decode(buffer)
	if nil != err {
		return nil, err
	}
	if count != len(fields) {
		return nil, fault.ErrFieldCount
	}
	return fields, nil
}
