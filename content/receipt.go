// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package content

import (
	"github.com/bitmark-inc/ledgerd/compactsize"
)

// Receipt - settlement of one or more payables
//
// fields in wire order: amount, description, reference
type Receipt struct {
	Amount      string `json:"amount"`
	Description string `json:"description,omitempty"`
	Reference   string `json:"reference,omitempty"`
}

// Schema - the receipt schema
func (r *Receipt) Schema() Schema { return SchemaReceipt }

// Pack - encode the receipt fields
func (r *Receipt) Pack() ([]byte, error) {
	p := packer{}
	p.text(r.Amount)
	p.text(r.Description)
	p.text(r.Reference)
	return p.result()
}

func unpackReceipt(b []byte) (Payload, error) {
	fields, err := compactsize.DecodeCount(b, 3)
	if nil != err {
		return nil, err
	}
	s, err := texts(fields)
	if nil != err {
		return nil, err
	}
	return &Receipt{
		Amount:      s[0],
		Description: s[1],
		Reference:   s[2],
	}, nil
}
