// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package queue

import (
	"strings"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/owner"
)

// GroupType - operation selected by a group
type GroupType int

// group types
const (
	GroupInitialize GroupType = iota
	GroupTransaction
)

const (
	initPrefix = "init"
	txnPrefix  = "txn"
)

// Group - message group
type Group struct {
	Type GroupType
	ID   string
}

// InitializeGroup - group for namespace initialisation of a provider
func InitializeGroup(o owner.Owner) (Group, error) {
	if !o.HasProvider() {
		return Group{}, fault.ErrMissingProvider
	}
	return Group{
		Type: GroupInitialize,
		ID:   o.Provider,
	}, nil
}

// TransactionGroup - group for transactions of a namespace
func TransactionGroup(o owner.Owner) (Group, error) {
	if !o.HasProvider() {
		return Group{}, fault.ErrMissingProvider
	}
	return Group{
		Type: GroupTransaction,
		ID:   o.String(),
	}, nil
}

// ParseGroup - decode a group name
func ParseGroup(s string) (Group, error) {
	parts := strings.SplitN(s, ":", 2)
	id := ""
	if 2 == len(parts) {
		id = parts[1]
	}

	switch parts[0] {
	case initPrefix:
		return Group{Type: GroupInitialize, ID: id}, nil
	case txnPrefix:
		return Group{Type: GroupTransaction, ID: id}, nil
	default:
		return Group{}, fault.ErrInvalidGroup
	}
}

// Owner - namespace addressed by the group
func (g Group) Owner() (owner.Owner, error) {
	o, err := owner.Parse(g.ID)
	if nil != err {
		return owner.Owner{}, err
	}
	if !o.HasProvider() {
		return owner.Owner{}, fault.ErrMissingProvider
	}
	if GroupInitialize == g.Type && "" != o.Address {
		return owner.Owner{}, fault.ErrInvalidGroup
	}
	return o, nil
}

// String - the group name
func (g Group) String() string {
	switch g.Type {
	case GroupInitialize:
		return initPrefix + ":" + g.ID
	case GroupTransaction:
		return txnPrefix + ":" + g.ID
	default:
		return "*unknown*"
	}
}
