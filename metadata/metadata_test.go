// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package metadata_test

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgerd/block"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/fixtures"
	"github.com/bitmark-inc/ledgerd/metadata"
	"github.com/bitmark-inc/ledgerd/owner"
	"github.com/bitmark-inc/ledgerd/signer"
	"github.com/bitmark-inc/ledgerd/storage"
)

var testOwner = owner.New("1234", "abcd")

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

func setup(t *testing.T) (*storage.LevelDB, metadata.Identity) {
	db, err := storage.OpenMemory()
	if nil != err {
		t.Fatalf("open error: %s", err)
	}
	s, err := signer.Create(context.Background(), db, testOwner, signer.EncodeKey(fixtures.PrivateKey(0)))
	if nil != err {
		t.Fatalf("create signer error: %s", err)
	}
	return db, metadata.IdentityOf(s)
}

func TestInitialize(t *testing.T) {
	db, identity := setup(t)
	defer db.Close()
	ctx := context.Background()

	m, err := metadata.Initialize(ctx, db, testOwner, identity, "")
	if nil != err {
		t.Fatalf("initialize error: %s", err)
	}
	assert.Equal(t, metadata.Version, m.Version, "version")
	assert.Equal(t, block.Genesis, m.LastBlock, "genesis head")
	assert.Equal(t, []string{}, m.Blocks, "no blocks")
	assert.Equal(t, []metadata.Identity{identity}, m.Signers, "signers")
	assert.True(t, m.IsEmpty(), "empty")
	assert.Equal(t, "providers/1234/sign.json", identity.URI, "signer uri")

	stored, err := db.Read(ctx, testOwner.MetadataPath())
	assert.Nil(t, err, "raw read error")
	for _, name := range []string{`"version":1`, `"lastBlock":"AA"`, `"blocks":[]`, `"signers":[{"uri":`, `"modified":`, `"created":`, `"owner":{"provider":"1234","address":"abcd"}`} {
		assert.True(t, strings.Contains(string(stored), name), "stored JSON missing: %s", name)
	}

	_, err = metadata.Initialize(ctx, db, testOwner, identity, "")
	assert.Equal(t, fault.ErrAlreadyInitialised, err, "second initialize")
}

func TestInitializeWithParent(t *testing.T) {
	db, identity := setup(t)
	defer db.Close()

	m, err := metadata.Initialize(context.Background(), db, owner.New("1234", ""), identity, "parentBlock")
	assert.Nil(t, err, "initialize error")
	assert.Equal(t, "parentBlock", m.Head(), "head is parent")
}

func TestAppendBlock(t *testing.T) {
	db, identity := setup(t)
	defer db.Close()
	ctx := context.Background()

	m, err := metadata.Initialize(ctx, db, testOwner, identity, "")
	if nil != err {
		t.Fatalf("initialize error: %s", err)
	}
	created := m.Created

	err = m.AppendBlock(ctx, db, "B1")
	assert.Nil(t, err, "append B1 error")
	err = m.AppendBlock(ctx, db, "B2")
	assert.Nil(t, err, "append B2 error")

	assert.Equal(t, []string{"B1", "B2"}, m.Blocks, "blocks")
	assert.Equal(t, "B2", m.LastBlock, "head")

	read, err := metadata.Read(ctx, db, testOwner)
	if nil != err {
		t.Fatalf("read error: %s", err)
	}
	assert.Equal(t, []string{"B1", "B2"}, read.Blocks, "stored blocks")
	assert.Equal(t, "B2", read.LastBlock, "stored head")
	assert.True(t, created.Equal(read.Created), "created unchanged")
	assert.False(t, read.Modified.Before(created), "modified")

	err = read.AppendBlock(ctx, db, "")
	assert.Equal(t, fault.ErrInvalidDigest, err, "empty block id")
}

func TestAppendRace(t *testing.T) {
	db, identity := setup(t)
	defer db.Close()
	ctx := context.Background()

	_, err := metadata.Initialize(ctx, db, testOwner, identity, "")
	if nil != err {
		t.Fatalf("initialize error: %s", err)
	}

	first, err := metadata.Read(ctx, db, testOwner)
	assert.Nil(t, err, "read error")
	second, err := metadata.Read(ctx, db, testOwner)
	assert.Nil(t, err, "read error")

	err = first.AppendBlock(ctx, db, "B1")
	assert.Nil(t, err, "first append")

	err = second.AppendBlock(ctx, db, "X1")
	assert.Equal(t, fault.ErrChainHeadMoved, err, "stale append")
	assert.True(t, fault.IsErrRace(err), "race class")
	assert.Equal(t, block.Genesis, second.LastBlock, "stale copy unchanged")
	assert.Equal(t, []string{}, second.Blocks, "stale blocks unchanged")

	fresh, err := metadata.Read(ctx, db, testOwner)
	assert.Nil(t, err, "read error")
	err = fresh.AppendBlock(ctx, db, "X1")
	assert.Nil(t, err, "retry append")
	assert.Equal(t, []string{"B1", "X1"}, fresh.Blocks, "no fork")
}

func TestReadDefaults(t *testing.T) {
	db, err := storage.OpenMemory()
	if nil != err {
		t.Fatalf("open error: %s", err)
	}
	defer db.Close()
	ctx := context.Background()

	o := owner.New("p", "")
	err = db.Write(ctx, o.MetadataPath(), []byte(`{"owner":{"provider":"p","address":null},"blocks":["B1"],"signers":[]}`))
	assert.Nil(t, err, "write error")

	before := time.Now().Add(-time.Second)
	m, err := metadata.Read(ctx, db, o)
	if nil != err {
		t.Fatalf("read error: %s", err)
	}
	assert.Equal(t, metadata.Version, m.Version, "default version")
	assert.Equal(t, o, m.Owner, "owner")
	assert.Equal(t, "B1", m.LastBlock, "head from blocks")
	assert.True(t, m.Created.After(before), "default created")
	assert.True(t, m.Modified.After(before), "default modified")

	// a defaulted record can still be updated
	err = m.AppendBlock(ctx, db, "B2")
	assert.Nil(t, err, "append error")
}

func TestReadErrors(t *testing.T) {
	db, err := storage.OpenMemory()
	if nil != err {
		t.Fatalf("open error: %s", err)
	}
	defer db.Close()
	ctx := context.Background()

	_, err = metadata.Read(ctx, db, testOwner)
	assert.True(t, fault.IsErrNotFound(err), "missing record: %v", err)

	err = db.Write(ctx, testOwner.MetadataPath(), []byte("{"))
	assert.Nil(t, err, "write error")
	_, err = metadata.Read(ctx, db, testOwner)
	assert.True(t, fault.IsErrInvalid(err), "corrupt record: %v", err)
}

func TestSigners(t *testing.T) {
	db, identity := setup(t)
	defer db.Close()
	ctx := context.Background()

	m, err := metadata.Initialize(ctx, db, testOwner, identity, "")
	if nil != err {
		t.Fatalf("initialize error: %s", err)
	}

	verifiers, err := m.Verifiers(ctx, db)
	assert.Nil(t, err, "verifiers error")
	assert.Equal(t, 1, len(verifiers), "one verifier")

	err = m.AddSigner(ctx, db, identity)
	assert.Nil(t, err, "duplicate add")
	assert.Equal(t, 1, len(m.Signers), "duplicate ignored")

	other := owner.New("5678", "")
	s, err := signer.Create(ctx, db, other, signer.EncodeKey(fixtures.PrivateKey(1)))
	assert.Nil(t, err, "create signer error")
	err = m.AddSigner(ctx, db, metadata.IdentityOf(s))
	assert.Nil(t, err, "add signer error")

	read, err := metadata.Read(ctx, db, testOwner)
	assert.Nil(t, err, "read error")
	verifiers, err = read.Verifiers(ctx, db)
	assert.Nil(t, err, "verifiers error")
	assert.Equal(t, 2, len(verifiers), "two verifiers")
	assert.Equal(t, s.PublicKey(), verifiers[1].PublicKey(), "added key")

	empty := &metadata.Metadata{}
	_, err = empty.Verifiers(ctx, db)
	assert.Equal(t, fault.ErrNoSigners, err, "no signers")
}
