// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package bigint - minimal big endian integer encoding
//
// Integers are stored as their big endian magnitude with no leading
// zero bytes.  Zero encodes as an empty byte string, which is the
// same as an absent optional field once framed, so a decoded zero
// may also mean "no value".
package bigint

import (
	"math"
	"math/big"
	"time"

	"github.com/bitmark-inc/ledgerd/fault"
)

// Encode - convert a non-negative integer to its minimal bytes
func Encode(n *big.Int) ([]byte, error) {
	if nil == n || 0 == n.Sign() {
		return []byte{}, nil
	}
	if n.Sign() < 0 {
		return nil, fault.ErrNegativeInteger
	}
	return n.Bytes(), nil
}

// Decode - convert bytes back to an integer; empty is zero
func Decode(b []byte) *big.Int {
	return new(big.Int).SetBytes(b)
}

// EncodeUint64 - minimal bytes for a 64 bit value
func EncodeUint64(value uint64) []byte {
	b, _ := Encode(new(big.Int).SetUint64(value))
	return b
}

// DecodeUint64 - decode a value that must fit in 64 bits
func DecodeUint64(b []byte) (uint64, error) {
	n := Decode(b)
	if !n.IsUint64() {
		return 0, fault.ErrValueTooLarge
	}
	return n.Uint64(), nil
}

// EncodeTime - UNIX seconds of a UTC instant
func EncodeTime(t time.Time) ([]byte, error) {
	seconds := t.Unix()
	if seconds < 0 {
		return nil, fault.ErrTimestampOutOfRange
	}
	return EncodeUint64(uint64(seconds)), nil
}

// DecodeTime - convert UNIX seconds to a UTC instant
func DecodeTime(b []byte) (time.Time, error) {
	seconds, err := DecodeUint64(b)
	if nil != err || seconds > math.MaxInt64 {
		return time.Time{}, fault.ErrTimestampOutOfRange
	}
	return time.Unix(int64(seconds), 0).UTC(), nil
}
