// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package content

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/bitmark-inc/ledgerd/compactsize"
	"github.com/bitmark-inc/ledgerd/fault"
)

// Title - registers a data asset
//
// fields in wire order: ptr, origin, description, tags
type Title struct {
	Ptr         string `json:"ptr"`
	Origin      string `json:"origin"`
	Description string `json:"description,omitempty"`
	Tags        []Tag  `json:"tags"`
}

// Schema - the title schema
func (t *Title) Schema() Schema { return SchemaTitle }

// Pack - encode the title fields
func (t *Title) Pack() ([]byte, error) {
	tags := t.Tags
	if nil == tags {
		tags = []Tag{}
	}
	tagsJSON, err := json.Marshal(tags)
	if nil != err {
		return nil, err
	}

	p := packer{}
	p.text(t.Ptr)
	p.text(t.Origin)
	p.text(t.Description)
	p.raw(tagsJSON)
	return p.result()
}

func unpackTitle(b []byte) (Payload, error) {
	fields, err := compactsize.DecodeCount(b, 4)
	if nil != err {
		return nil, err
	}
	s, err := texts(fields[:3])
	if nil != err {
		return nil, err
	}

	t := &Title{
		Ptr:         s[0],
		Origin:      s[1],
		Description: s[2],
	}
	err = json.Unmarshal(fields[3], &t.Tags)
	if nil != err {
		return nil, errors.Wrapf(fault.ErrInvalidPayload, "tags: %s", err)
	}
	return t, nil
}
