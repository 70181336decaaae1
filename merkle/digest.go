// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

import (
	"encoding/base64"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/ledgerd/fault"
)

// DigestLength - number of bytes in the digest
const DigestLength = 32

// Digest - type for a digest
//
// represented as URL-safe base64 without padding for print and JSON
// to convert to bytes just use d[:]
type Digest [DigestLength]byte

// NewDigest - create a digest from a byte slice
func NewDigest(record []byte) Digest {
	return sha3.Sum256(record)
}

// String - convert a binary digest to its identifier text (for %s)
func (digest Digest) String() string {
	return base64.RawURLEncoding.EncodeToString(digest[:])
}

// GoString - for use by the fmt package (for %#v)
func (digest Digest) GoString() string {
	return "<SHA3-256:" + digest.String() + ">"
}

// MarshalText - convert digest to identifier text
func (digest Digest) MarshalText() ([]byte, error) {
	size := base64.RawURLEncoding.EncodedLen(DigestLength)
	buffer := make([]byte, size)
	base64.RawURLEncoding.Encode(buffer, digest[:])
	return buffer, nil
}

// UnmarshalText - convert identifier text into a digest
func (digest *Digest) UnmarshalText(s []byte) error {
	buffer := make([]byte, base64.RawURLEncoding.DecodedLen(len(s)))
	byteCount, err := base64.RawURLEncoding.Decode(buffer, s)
	if nil != err {
		return fault.ErrInvalidDigest
	}
	return DigestFromBytes(digest, buffer[:byteCount])
}

// DigestFromBytes - convert and validate a binary byte slice to a digest
func DigestFromBytes(digest *Digest, buffer []byte) error {
	if DigestLength != len(buffer) {
		return fault.ErrInvalidDigest
	}
	copy(digest[:], buffer)
	return nil
}

// DigestFromString - parse identifier text
func DigestFromString(s string) (Digest, error) {
	var digest Digest
	err := digest.UnmarshalText([]byte(s))
	return digest, err
}
