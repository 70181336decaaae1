// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package content

import (
	"time"

	"github.com/bitmark-inc/ledgerd/compactsize"
)

// Payable - an amount owed against a license
//
// fields in wire order: amount, type, description, expiry, reference
type Payable struct {
	Amount      string    `json:"amount"`
	Type        string    `json:"type"`
	Description string    `json:"description,omitempty"`
	Expiry      time.Time `json:"expiry,omitempty"`
	Reference   string    `json:"reference,omitempty"`
}

// Schema - the payable schema
func (p *Payable) Schema() Schema { return SchemaPayable }

// Pack - encode the payable fields
func (p *Payable) Pack() ([]byte, error) {
	k := packer{}
	k.text(p.Amount)
	k.text(p.Type)
	k.text(p.Description)
	k.time(p.Expiry)
	k.text(p.Reference)
	return k.result()
}

func unpackPayable(b []byte) (Payload, error) {
	fields, err := compactsize.DecodeCount(b, 5)
	if nil != err {
		return nil, err
	}
	s, err := texts([][]byte{fields[0], fields[1], fields[2], fields[4]})
	if nil != err {
		return nil, err
	}
	expiry, err := timeField(fields[3])
	if nil != err {
		return nil, err
	}
	return &Payable{
		Amount:      s[0],
		Type:        s[1],
		Description: s[2],
		Expiry:      expiry,
		Reference:   s[3],
	}, nil
}
