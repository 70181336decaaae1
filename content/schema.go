// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package content

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/bitmark-inc/ledgerd/bigint"
	"github.com/bitmark-inc/ledgerd/compactsize"
	"github.com/bitmark-inc/ledgerd/fault"
)

// Schema - payload type identifier
type Schema uint16

// known schemas - values are part of the wire format
const (
	SchemaEmpty   Schema = 1
	SchemaTitle   Schema = 2
	SchemaLicense Schema = 3
	SchemaPayable Schema = 4
	SchemaReceipt Schema = 5
)

// Payload - a typed transaction payload
type Payload interface {
	Schema() Schema
	Pack() ([]byte, error)
}

type unpacker func([]byte) (Payload, error)

var unpackers = map[Schema]unpacker{
	SchemaEmpty:   unpackEmpty,
	SchemaTitle:   unpackTitle,
	SchemaLicense: unpackLicense,
	SchemaPayable: unpackPayable,
	SchemaReceipt: unpackReceipt,
}

// String - name of the schema
func (s Schema) String() string {
	switch s {
	case SchemaEmpty:
		return "empty"
	case SchemaTitle:
		return "title"
	case SchemaLicense:
		return "license"
	case SchemaPayable:
		return "payable"
	case SchemaReceipt:
		return "receipt"
	default:
		return "schema(" + strconv.Itoa(int(s)) + ")"
	}
}

// IsValid - true for a registered schema
func (s Schema) IsValid() bool {
	_, ok := unpackers[s]
	return ok
}

// Pack - produce the contents field for a payload
func Pack(p Payload) ([]byte, error) {
	if nil == p {
		return nil, fault.ErrUnknownSchema
	}
	schema := p.Schema()
	if !schema.IsValid() {
		return nil, fault.ErrUnknownSchema
	}
	payload, err := p.Pack()
	if nil != err {
		return nil, err
	}
	buffer := compactsize.Encode(bigint.EncodeUint64(uint64(schema)))
	return compactsize.Append(buffer, payload), nil
}

// Unpack - decode a contents field into its typed payload
func Unpack(contents []byte) (Payload, error) {
	schema, payload, err := Split(contents)
	if nil != err {
		return nil, err
	}
	return unpackers[schema](payload)
}

// Split - separate the schema from the raw payload bytes
func Split(contents []byte) (Schema, []byte, error) {
	fields, err := compactsize.DecodeCount(contents, 2)
	if nil != err {
		return 0, nil, err
	}
	n, err := bigint.DecodeUint64(fields[0])
	if nil != err || n > 0xffff {
		return 0, nil, fault.ErrUnknownSchema
	}
	schema := Schema(n)
	if !schema.IsValid() {
		return 0, nil, errors.Wrapf(fault.ErrUnknownSchema, "schema: %d", n)
	}
	return schema, fields[1], nil
}
