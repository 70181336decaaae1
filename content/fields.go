// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package content

import (
	"time"
	"unicode/utf8"

	"github.com/bitmark-inc/ledgerd/bigint"
	"github.com/bitmark-inc/ledgerd/compactsize"
	"github.com/bitmark-inc/ledgerd/fault"
)

// packer - accumulate compact framed fields, first error wins
type packer struct {
	buffer []byte
	err    error
}

func (p *packer) text(s string) {
	p.buffer = compactsize.Append(p.buffer, []byte(s))
}

func (p *packer) raw(b []byte) {
	p.buffer = compactsize.Append(p.buffer, b)
}

// zero time is written as the empty field
func (p *packer) time(t time.Time) {
	if t.IsZero() {
		p.raw(nil)
		return
	}
	b, err := bigint.EncodeTime(t)
	if nil != err && nil == p.err {
		p.err = err
	}
	p.raw(b)
}

func (p *packer) result() ([]byte, error) {
	if nil != p.err {
		return nil, p.err
	}
	return p.buffer, nil
}

func text(b []byte) (string, error) {
	if !utf8.Valid(b) {
		return "", fault.ErrInvalidUTF8
	}
	return string(b), nil
}

// the empty field is the zero time
func timeField(b []byte) (time.Time, error) {
	if 0 == len(b) {
		return time.Time{}, nil
	}
	return bigint.DecodeTime(b)
}

func texts(fields [][]byte) ([]string, error) {
	s := make([]string, len(fields))
	for i, f := range fields {
		t, err := text(f)
		if nil != err {
			return nil, err
		}
		s[i] = t
	}
	return s, nil
}
