// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package owner - the provider/address namespace of a chain
//
// every stored object path is derived from an owner, the layout is a
// stable contract with existing stored data
package owner

import (
	"strings"

	"github.com/bitmark-inc/ledgerd/fault"
)

const (
	root      = "providers"
	separator = ":"
)

// Owner - namespace of a chain
//
// an empty field means absent
type Owner struct {
	Provider string `json:"provider,omitempty"`
	Address  string `json:"address,omitempty"`
}

// New - create an owner
func New(provider string, address string) Owner {
	return Owner{
		Provider: provider,
		Address:  address,
	}
}

// Parse - convert "provider:address" or "provider" to an owner
func Parse(s string) (Owner, error) {
	if "" == s {
		return Owner{}, nil
	}
	parts := strings.SplitN(s, separator, 2)
	if "" == parts[0] {
		return Owner{}, fault.ErrInvalidOwner
	}
	o := Owner{
		Provider: parts[0],
	}
	if 2 == len(parts) {
		if "" == parts[1] || strings.Contains(parts[1], separator) {
			return Owner{}, fault.ErrInvalidOwner
		}
		o.Address = parts[1]
	}
	if strings.Contains(o.Provider, "/") || strings.Contains(o.Address, "/") {
		return Owner{}, fault.ErrInvalidOwner
	}
	return o, nil
}

// String - the inverse of Parse
func (o Owner) String() string {
	if "" == o.Address {
		return o.Provider
	}
	return o.Provider + separator + o.Address
}

// HasProvider - true if the provider is set
func (o Owner) HasProvider() bool {
	return "" != o.Provider
}

// BlockPath - location of a block within the namespace
func (o Owner) BlockPath(id string) string {
	switch {
	case "" == o.Provider:
		return root + "/" + id + ".block"
	case "" == o.Address:
		return root + "/" + o.Provider + "/" + id + ".block"
	default:
		return root + "/" + o.Provider + "/" + o.Address + "/blocks/" + id + ".block"
	}
}

// MetadataPath - location of the chain metadata
func (o Owner) MetadataPath() string {
	return o.prefix() + "metadata.json"
}

// SignerPath - location of the provider's signing key
//
// signers are per provider, the address is ignored
func (o Owner) SignerPath() string {
	if "" == o.Provider {
		return root + "/sign.json"
	}
	return root + "/" + o.Provider + "/sign.json"
}

func (o Owner) prefix() string {
	switch {
	case "" == o.Provider:
		return root + "/"
	case "" == o.Address:
		return root + "/" + o.Provider + "/"
	default:
		return root + "/" + o.Provider + "/" + o.Address + "/"
	}
}
