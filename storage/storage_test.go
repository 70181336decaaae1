// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/fixtures"
	"github.com/bitmark-inc/ledgerd/storage"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

func setupMemory(t *testing.T) *storage.LevelDB {
	db, err := storage.OpenMemory()
	if nil != err {
		t.Fatalf("open memory database error: %s", err)
	}
	return db
}

func TestReadMissing(t *testing.T) {
	db := setupMemory(t)
	defer db.Close()

	_, err := db.Read(context.Background(), "providers/nothing.block")
	assert.True(t, fault.IsErrNotFound(err), "missing path: %v", err)
}

func TestWriteThenRead(t *testing.T) {
	db := setupMemory(t)
	defer db.Close()

	ctx := context.Background()
	path := "providers/p/a/metadata.json"
	expected := []byte(`{"version":1}`)

	err := db.Write(ctx, path, expected)
	assert.Nil(t, err, "write error")

	actual, err := db.Read(ctx, path)
	assert.Nil(t, err, "read error")
	assert.Equal(t, expected, actual, "read back")

	replaced := []byte(`{"version":2}`)
	err = db.Write(ctx, path, replaced)
	assert.Nil(t, err, "overwrite error")

	actual, err = db.Read(ctx, path)
	assert.Nil(t, err, "read error")
	assert.Equal(t, replaced, actual, "overwritten")
}

func TestClosed(t *testing.T) {
	db := setupMemory(t)
	db.Close()

	ctx := context.Background()
	_, err := db.Read(ctx, "x")
	assert.Equal(t, fault.ErrStorageClosed, err, "read after close")
	err = db.Write(ctx, "x", []byte{1})
	assert.Equal(t, fault.ErrStorageClosed, err, "write after close")
	assert.True(t, fault.IsErrStorage(err), "storage class")
}

func TestCancelledContext(t *testing.T) {
	db := setupMemory(t)
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := db.Write(ctx, "x", []byte{1})
	assert.Equal(t, context.Canceled, err, "cancelled write")

	_, err = db.Read(context.Background(), "x")
	assert.True(t, fault.IsErrNotFound(err), "cancelled write must not store")
}

func TestSwap(t *testing.T) {
	db := setupMemory(t)
	defer db.Close()

	ctx := context.Background()
	path := "providers/p/metadata.json"

	err := db.Swap(ctx, path, []byte("old"), []byte("new"))
	assert.Equal(t, fault.ErrChainHeadMoved, err, "swap on missing path with expected value")

	err = db.Swap(ctx, path, nil, []byte("first"))
	assert.Nil(t, err, "create with nil expected")

	err = db.Swap(ctx, path, nil, []byte("again"))
	assert.Equal(t, fault.ErrChainHeadMoved, err, "create when present")

	err = db.Swap(ctx, path, []byte("stale"), []byte("second"))
	assert.True(t, fault.IsErrRace(err), "stale expected value")

	err = db.Swap(ctx, path, []byte("first"), []byte("second"))
	assert.Nil(t, err, "swap with current value")

	actual, err := db.Read(ctx, path)
	assert.Nil(t, err, "read error")
	assert.Equal(t, []byte("second"), actual, "swapped value")
}

func TestOpenFile(t *testing.T) {
	dir := "testing/leveldb"

	db, err := storage.Open(dir, false)
	if nil != err {
		t.Fatalf("open error: %s", err)
	}
	err = db.Write(context.Background(), "k", []byte("v"))
	assert.Nil(t, err, "write error")
	db.Close()

	db, err = storage.Open(dir, true)
	if nil != err {
		t.Fatalf("reopen read only error: %s", err)
	}
	defer db.Close()

	actual, err := db.Read(context.Background(), "k")
	assert.Nil(t, err, "read error")
	assert.Equal(t, []byte("v"), actual, "persisted value")
}

func TestOpenReadOnlyMissing(t *testing.T) {
	_, err := storage.Open("testing/does-not-exist", true)
	assert.NotNil(t, err, "read only open of missing database")
}
