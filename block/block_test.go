// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package block_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgerd/bigint"
	"github.com/bitmark-inc/ledgerd/block"
	"github.com/bitmark-inc/ledgerd/compactsize"
	"github.com/bitmark-inc/ledgerd/content"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/fixtures"
	"github.com/bitmark-inc/ledgerd/merkle"
	"github.com/bitmark-inc/ledgerd/owner"
	"github.com/bitmark-inc/ledgerd/signer"
	"github.com/bitmark-inc/ledgerd/storage"
	"github.com/bitmark-inc/ledgerd/storage/mocks"
	"github.com/bitmark-inc/ledgerd/transaction"
)

var (
	testOwner = owner.New("provider", "q80r2g")
	timestamp = time.Date(2021, 6, 7, 8, 9, 10, 0, time.UTC)
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

func makeTransactions(t *testing.T, n int) []*transaction.Transaction {
	s, err := signer.FromKey(fixtures.PrivateKey(0), "test", timestamp)
	if nil != err {
		t.Fatalf("restore key error: %s", err)
	}

	txs := make([]*transaction.Transaction, n)
	for i := 0; i < n; i += 1 {
		title := &content.Title{
			Ptr:    "ptr-" + string(rune('a'+i)),
			Origin: "origin",
			Tags:   []content.Tag{content.TagUsageData},
		}
		tx, err := transaction.Create(testOwner, timestamp.Add(time.Duration(i)*time.Second), "", title, "", s)
		if nil != err {
			t.Fatalf("%d: create transaction error: %s", i, err)
		}
		txs[i] = tx
	}
	return txs
}

func ids(txs []*transaction.Transaction) []merkle.Digest {
	d := make([]merkle.Digest, len(txs))
	for i, tx := range txs {
		d[i] = tx.ID()
	}
	return d
}

func TestWriteRead(t *testing.T) {
	db, err := storage.OpenMemory()
	if nil != err {
		t.Fatalf("open error: %s", err)
	}
	defer db.Close()

	ctx := context.Background()
	txs := makeTransactions(t, 3)

	written, err := block.Write(ctx, db, testOwner, block.Genesis, txs)
	if nil != err {
		t.Fatalf("write error: %s", err)
	}
	assert.Equal(t, merkle.NewDigest(written.Packed()), written.ID(), "id is hash of packed")
	assert.Equal(t, block.Genesis, written.PreviousID(), "previous id")

	// stored at the content addressed path
	stored, err := db.Read(ctx, testOwner.BlockPath(written.ID().String()))
	assert.Nil(t, err, "raw read error")
	assert.Equal(t, written.Packed(), stored, "stored bytes")

	read, err := block.Read(ctx, db, testOwner, written.ID().String())
	if nil != err {
		t.Fatalf("read error: %s", err)
	}
	assert.Equal(t, written.ID(), read.ID(), "id")
	assert.Equal(t, written.PreviousID(), read.PreviousID(), "previous id")
	assert.Equal(t, written.TransactionRoot(), read.TransactionRoot(), "root")
	assert.Equal(t, written.Timestamp(), read.Timestamp(), "timestamp")
	assert.Equal(t, uint64(block.Version), read.Version(), "version")
	assert.Equal(t, ids(txs), ids(read.Transactions()), "transactions in order")

	// chain a second block
	second, err := block.Write(ctx, db, testOwner, written.ID().String(), makeTransactions(t, 1))
	if nil != err {
		t.Fatalf("second write error: %s", err)
	}
	assert.Equal(t, written.ID().String(), second.PreviousID(), "linked")
}

func TestRoot(t *testing.T) {
	txs := makeTransactions(t, 3)
	b, err := block.New(block.Version, timestamp, block.Genesis, txs)
	if nil != err {
		t.Fatalf("new error: %s", err)
	}

	leaves := [][]byte{}
	for _, d := range ids(txs) {
		leaves = append(leaves, append([]byte{}, d[:]...))
	}
	expected, err := merkle.Root(leaves)
	assert.Nil(t, err, "root error")
	assert.Equal(t, expected, b.TransactionRoot(), "root over ids")

	one, err := block.New(block.Version, timestamp, block.Genesis, txs[:1])
	assert.Nil(t, err, "new error")
	id := txs[0].ID()
	assert.Equal(t, id[:], one.TransactionRoot(), "single transaction root is its id")

	reversed := []*transaction.Transaction{txs[2], txs[1], txs[0]}
	r, err := block.New(block.Version, timestamp, block.Genesis, reversed)
	assert.Nil(t, err, "new error")
	assert.NotEqual(t, b.TransactionRoot(), r.TransactionRoot(), "order changes root")
	assert.NotEqual(t, b.ID(), r.ID(), "order changes id")
}

func TestEmptyBlock(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	m := mocks.NewMockStore(ctl)
	m.EXPECT().Write(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := block.Write(context.Background(), m, testOwner, block.Genesis, nil)
	assert.Equal(t, fault.ErrEmptyBlock, err, "empty write")

	_, err = block.New(block.Version, timestamp, block.Genesis, []*transaction.Transaction{})
	assert.Equal(t, fault.ErrEmptyBlock, err, "empty new")
}

func TestInvalidPreviousID(t *testing.T) {
	_, err := block.New(block.Version, timestamp, "**", makeTransactions(t, 1))
	assert.Equal(t, fault.ErrInvalidDigest, err, "previous id")
}

// rebuild a packed block with one field replaced
func replaceField(t *testing.T, packed []byte, n int, value []byte) []byte {
	fields, err := compactsize.Decode(packed)
	if nil != err {
		t.Fatalf("decode error: %s", err)
	}
	buffer := []byte{}
	for i, f := range fields {
		if n == i {
			f = value
		}
		buffer = compactsize.Append(buffer, f)
	}
	return buffer
}

func TestCorruptRoot(t *testing.T) {
	txs := makeTransactions(t, 3)
	b, err := block.New(block.Version, timestamp, block.Genesis, txs)
	if nil != err {
		t.Fatalf("new error: %s", err)
	}

	root := b.TransactionRoot()
	root[0] ^= 0xff
	corrupt := replaceField(t, b.Packed(), 3, root)

	_, err = block.Unpack(corrupt)
	assert.Equal(t, fault.ErrMerkleRootMismatch, err, "flipped root")
	assert.True(t, fault.IsErrIntegrity(err), "integrity class")

	// stored under the original id the content hash no longer matches
	db, err := storage.OpenMemory()
	if nil != err {
		t.Fatalf("open error: %s", err)
	}
	defer db.Close()

	ctx := context.Background()
	err = db.Write(ctx, testOwner.BlockPath(b.ID().String()), corrupt)
	assert.Nil(t, err, "write error")
	_, err = block.Read(ctx, db, testOwner, b.ID().String())
	assert.True(t, fault.IsErrIntegrity(err), "read corrupt block: %v", err)

	// stored under its own id the root check catches it
	corruptID := merkle.NewDigest(corrupt).String()
	err = db.Write(ctx, testOwner.BlockPath(corruptID), corrupt)
	assert.Nil(t, err, "write error")
	_, err = block.Read(ctx, db, testOwner, corruptID)
	assert.True(t, fault.IsErrIntegrity(err), "read self consistent corrupt block: %v", err)
}

func TestUnpackErrors(t *testing.T) {
	txs := makeTransactions(t, 2)
	b, err := block.New(block.Version, timestamp, block.Genesis, txs)
	if nil != err {
		t.Fatalf("new error: %s", err)
	}

	_, err = block.Unpack(replaceField(t, b.Packed(), 4, bigint.EncodeUint64(3)))
	assert.Equal(t, fault.ErrTransactionCount, err, "count too high")

	_, err = block.Unpack(replaceField(t, b.Packed(), 4, bigint.EncodeUint64(1)))
	assert.Equal(t, fault.ErrTransactionCount, err, "count too low")

	_, err = block.Unpack(b.Packed()[:len(b.Packed())-1])
	assert.True(t, fault.IsErrFraming(err), "truncated: %v", err)

	_, err = block.Unpack(compactsize.Encode([]byte{1}))
	assert.Equal(t, fault.ErrFieldCount, err, "too few fields")

	_, err = block.Unpack(replaceField(t, b.Packed(), 5, []byte{1, 2, 3}))
	assert.True(t, fault.IsErrFraming(err), "bad transaction: %v", err)
}

func TestReadErrors(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	m := mocks.NewMockStore(ctl)
	missing := merkle.NewDigest([]byte("missing"))
	m.EXPECT().Read(gomock.Any(), testOwner.BlockPath(missing.String())).Return(nil, fault.ErrNotFound)

	_, err := block.Read(context.Background(), m, testOwner, missing.String())
	assert.True(t, fault.IsErrNotFound(err), "missing block")

	_, err = block.Read(context.Background(), m, testOwner, "short")
	assert.Equal(t, fault.ErrInvalidDigest, err, "bad id")
}

func TestJSON(t *testing.T) {
	b, err := block.New(block.Version, timestamp, block.Genesis, makeTransactions(t, 1))
	if nil != err {
		t.Fatalf("new error: %s", err)
	}

	buffer, err := json.Marshal(b)
	assert.Nil(t, err, "marshal error")

	var display struct {
		ID              string            `json:"id"`
		PreviousID      string            `json:"previousId"`
		TransactionRoot string            `json:"transactionRoot"`
		Transactions    []json.RawMessage `json:"transactions"`
	}
	err = json.Unmarshal(buffer, &display)
	assert.Nil(t, err, "unmarshal error")
	assert.Equal(t, b.ID().String(), display.ID, "id")
	assert.Equal(t, block.Genesis, display.PreviousID, "previous id")
	assert.Equal(t, base64.StdEncoding.EncodeToString(b.TransactionRoot()), display.TransactionRoot, "root")
	assert.Equal(t, 1, len(display.Transactions), "transactions")
}
