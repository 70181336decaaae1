// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package metadata - the per namespace chain record
//
// The record is JSON at the owner's metadata path and tracks the
// chain head, every committed block id and the registered signers.
// Updates are whole record writes made conditional on the stored
// record being unchanged since it was read, so two writers holding
// the same head cannot both commit; the loser gets
// fault.ErrChainHeadMoved and must read again.
package metadata

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"

	"github.com/bitmark-inc/ledgerd/block"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/owner"
	"github.com/bitmark-inc/ledgerd/signer"
	"github.com/bitmark-inc/ledgerd/storage"
)

// Version - current record format
const Version = 1

// Identity - locator of a registered signing key
type Identity struct {
	URI     string    `json:"uri"`
	Created time.Time `json:"created"`
}

// Metadata - the chain record of one namespace
type Metadata struct {
	Version   int         `json:"version"`
	Owner     owner.Owner `json:"owner"`
	LastBlock string      `json:"lastBlock"`
	Blocks    []string    `json:"blocks"`
	Signers   []Identity  `json:"signers"`
	Modified  time.Time   `json:"modified"`
	Created   time.Time   `json:"created"`

	// stored bytes this record was read from or last written as
	stored []byte
}

// IdentityOf - the registration entry for a signer
func IdentityOf(s *signer.Signer) Identity {
	return Identity{
		URI:     s.URI(),
		Created: s.Created(),
	}
}

// Initialize - create the record for a new namespace
//
// the chain starts at parent, or Genesis when parent is empty
func Initialize(ctx context.Context, store storage.Store, o owner.Owner, genesis Identity, parent string) (*Metadata, error) {
	lastBlock := parent
	if "" == lastBlock {
		lastBlock = block.Genesis
	}
	now := time.Now().UTC()
	m := &Metadata{
		Version:   Version,
		Owner:     o,
		LastBlock: lastBlock,
		Blocks:    []string{},
		Signers:   []Identity{genesis},
		Modified:  now,
		Created:   now,
	}

	buffer, err := json.Marshal(m)
	if nil != err {
		return nil, err
	}

	err = storage.CompareAndWrite(ctx, store, o.MetadataPath(), nil, buffer)
	if fault.IsErrRace(err) {
		return nil, fault.ErrAlreadyInitialised
	} else if nil != err {
		return nil, err
	}
	m.stored = buffer
	return m, nil
}

// Read - fetch and decode a namespace record
//
// a missing version is the current version and missing timestamps
// are now
func Read(ctx context.Context, store storage.Store, o owner.Owner) (*Metadata, error) {
	buffer, err := store.Read(ctx, o.MetadataPath())
	if fault.IsErrNotFound(err) {
		return nil, errors.Wrapf(fault.ErrNotInitialised, "owner: %q", o.String())
	} else if nil != err {
		return nil, err
	}

	m := &Metadata{}
	err = json.Unmarshal(buffer, m)
	if nil != err {
		return nil, errors.Wrapf(fault.ErrInvalidMetadata, "owner: %q  error: %s", o.String(), err)
	}

	now := time.Now().UTC()
	if 0 == m.Version {
		m.Version = Version
	}
	if m.Modified.IsZero() {
		m.Modified = now
	}
	if m.Created.IsZero() {
		m.Created = now
	}
	if nil == m.Blocks {
		m.Blocks = []string{}
	}
	if nil == m.Signers {
		m.Signers = []Identity{}
	}
	if "" == m.LastBlock {
		if 0 == len(m.Blocks) {
			m.LastBlock = block.Genesis
		} else {
			m.LastBlock = m.Blocks[len(m.Blocks)-1]
		}
	}
	m.stored = buffer
	return m, nil
}

// AppendBlock - commit a block as the new chain head
//
// fails with fault.ErrChainHeadMoved if the stored record changed
// since this copy was read; the copy is unchanged on any error
func (m *Metadata) AppendBlock(ctx context.Context, store storage.Store, blockID string) error {
	if "" == blockID {
		return fault.ErrInvalidDigest
	}

	next := m.clone()
	next.Blocks = append(next.Blocks, blockID)
	next.LastBlock = blockID
	next.Modified = time.Now().UTC()

	return m.update(ctx, store, next)
}

// AddSigner - register another signing key
//
// a key already registered at the same uri is left as it is
func (m *Metadata) AddSigner(ctx context.Context, store storage.Store, identity Identity) error {
	for _, s := range m.Signers {
		if identity.URI == s.URI {
			return nil
		}
	}

	next := m.clone()
	next.Signers = append(next.Signers, identity)
	next.Modified = time.Now().UTC()

	return m.update(ctx, store, next)
}

// Verifiers - restore every registered signer
func (m *Metadata) Verifiers(ctx context.Context, store storage.Store) ([]*signer.Signer, error) {
	if 0 == len(m.Signers) {
		return nil, fault.ErrNoSigners
	}
	signers := make([]*signer.Signer, 0, len(m.Signers))
	for _, identity := range m.Signers {
		s, err := signer.GetFromPath(ctx, store, identity.URI)
		if nil != err {
			return nil, err
		}
		signers = append(signers, s)
	}
	return signers, nil
}

// Head - current chain head, Genesis for an empty chain
func (m *Metadata) Head() string {
	return m.LastBlock
}

// IsEmpty - true if no block has been committed
func (m *Metadata) IsEmpty() bool {
	return 0 == len(m.Blocks)
}

func (m *Metadata) clone() *Metadata {
	c := *m
	c.Blocks = append(make([]string, 0, len(m.Blocks)+1), m.Blocks...)
	c.Signers = append(make([]Identity, 0, len(m.Signers)+1), m.Signers...)
	c.stored = nil
	return &c
}

// conditional whole record write, m takes the new values on success
func (m *Metadata) update(ctx context.Context, store storage.Store, next *Metadata) error {
	buffer, err := json.Marshal(next)
	if nil != err {
		return err
	}

	err = storage.CompareAndWrite(ctx, store, m.Owner.MetadataPath(), m.stored, buffer)
	if nil != err {
		return err
	}

	*m = *next
	m.stored = buffer
	return nil
}
