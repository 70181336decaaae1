// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package content

// Empty - a payload with no fields
type Empty struct{}

// Schema - the empty schema
func (Empty) Schema() Schema { return SchemaEmpty }

// Pack - always a single zero byte
func (Empty) Pack() ([]byte, error) {
	return []byte{0}, nil
}

// any payload bytes are accepted
func unpackEmpty(_ []byte) (Payload, error) {
	return &Empty{}, nil
}
