// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package content

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"

	"github.com/bitmark-inc/ledgerd/compactsize"
	"github.com/bitmark-inc/ledgerd/fault"
)

// License - grants uses of a titled asset
//
// fields in wire order: uses, terms, description, expiry
// a zero Expiry means the license does not expire
type License struct {
	Uses        []Use     `json:"uses"`
	Terms       string    `json:"terms"`
	Description string    `json:"description,omitempty"`
	Expiry      time.Time `json:"expiry,omitempty"`
}

// Schema - the license schema
func (l *License) Schema() Schema { return SchemaLicense }

// Pack - encode the license fields
func (l *License) Pack() ([]byte, error) {
	uses := l.Uses
	if nil == uses {
		uses = []Use{}
	}
	usesJSON, err := json.Marshal(uses)
	if nil != err {
		return nil, err
	}

	p := packer{}
	p.raw(usesJSON)
	p.text(l.Terms)
	p.text(l.Description)
	p.time(l.Expiry)
	return p.result()
}

func unpackLicense(b []byte) (Payload, error) {
	fields, err := compactsize.DecodeCount(b, 4)
	if nil != err {
		return nil, err
	}
	s, err := texts(fields[1:3])
	if nil != err {
		return nil, err
	}
	expiry, err := timeField(fields[3])
	if nil != err {
		return nil, err
	}

	l := &License{
		Terms:       s[0],
		Description: s[1],
		Expiry:      expiry,
	}
	err = json.Unmarshal(fields[0], &l.Uses)
	if nil != err {
		return nil, errors.Wrapf(fault.ErrInvalidPayload, "uses: %s", err)
	}
	return l, nil
}
