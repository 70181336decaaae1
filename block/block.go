// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package block

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/bitmark-inc/ledgerd/bigint"
	"github.com/bitmark-inc/ledgerd/compactsize"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/merkle"
	"github.com/bitmark-inc/ledgerd/transaction"
)

// Version - current block format
const Version = 1

// Genesis - previous id of the first block in a chain
const Genesis = "AA"

// fields before the transactions
const headerFields = 5

// Block - a decoded, immutable block
type Block struct {
	id           merkle.Digest
	version      uint64
	timestamp    time.Time
	previousID   []byte
	root         []byte
	transactions []*transaction.Transaction
	packed       []byte
}

// New - build a block in memory
//
// previousID is URL-safe base64, transaction order is fixed by the caller
func New(version uint64, timestamp time.Time, previousID string, transactions []*transaction.Transaction) (*Block, error) {
	if 0 == len(transactions) {
		return nil, fault.ErrEmptyBlock
	}
	previous, err := decodeID(previousID)
	if nil != err {
		return nil, err
	}
	b := &Block{
		version:      version,
		timestamp:    time.Unix(timestamp.Unix(), 0).UTC(),
		previousID:   previous,
		root:         transactionRoot(transactions),
		transactions: append([]*transaction.Transaction{}, transactions...),
	}
	packed, err := b.pack()
	if nil != err {
		return nil, err
	}
	b.packed = packed
	b.id = merkle.NewDigest(packed)
	return b, nil
}

// Unpack - decode a packed block and verify its transaction root
func Unpack(packed []byte) (*Block, error) {
	fields, err := compactsize.Decode(packed)
	if nil != err {
		return nil, err
	}
	if len(fields) < headerFields {
		return nil, fault.ErrFieldCount
	}

	version, err := bigint.DecodeUint64(fields[0])
	if nil != err {
		return nil, err
	}
	timestamp, err := bigint.DecodeTime(fields[1])
	if nil != err {
		return nil, err
	}
	count, err := bigint.DecodeUint64(fields[4])
	if nil != err {
		return nil, err
	}
	if uint64(len(fields)-headerFields) != count {
		return nil, fault.ErrTransactionCount
	}
	if 0 == count {
		return nil, fault.ErrEmptyBlock
	}

	transactions := make([]*transaction.Transaction, 0, count)
	for _, f := range fields[headerFields:] {
		tx, err := transaction.Unpack(f)
		if nil != err {
			return nil, err
		}
		transactions = append(transactions, tx)
	}

	root := transactionRoot(transactions)
	if !bytes.Equal(root, fields[3]) {
		return nil, fault.ErrMerkleRootMismatch
	}

	b := &Block{
		version:      version,
		timestamp:    timestamp,
		previousID:   append([]byte{}, fields[2]...),
		root:         root,
		transactions: transactions,
	}
	repacked, err := b.pack()
	if nil != err {
		return nil, err
	}
	if !bytes.Equal(repacked, packed) {
		return nil, fault.ErrNonCanonicalEncoding
	}
	b.packed = repacked
	b.id = merkle.NewDigest(repacked)
	return b, nil
}

func (b *Block) pack() ([]byte, error) {
	timestamp, err := bigint.EncodeTime(b.timestamp)
	if nil != err {
		return nil, err
	}
	buffer := compactsize.Encode(bigint.EncodeUint64(b.version))
	buffer = compactsize.Append(buffer, timestamp)
	buffer = compactsize.Append(buffer, b.previousID)
	buffer = compactsize.Append(buffer, b.root)
	buffer = compactsize.Append(buffer, bigint.EncodeUint64(uint64(len(b.transactions))))
	for _, tx := range b.transactions {
		buffer = compactsize.Append(buffer, tx.Packed())
	}
	return buffer, nil
}

// callers have already rejected an empty block
func transactionRoot(transactions []*transaction.Transaction) []byte {
	ids := make([]merkle.Digest, len(transactions))
	for i, tx := range transactions {
		ids[i] = tx.ID()
	}
	root, err := merkle.DigestRoot(ids)
	fault.PanicIfError("block: transaction root", err)
	return root
}

func decodeID(id string) ([]byte, error) {
	b, err := base64.RawURLEncoding.DecodeString(id)
	if nil != err {
		return nil, fault.ErrInvalidDigest
	}
	return b, nil
}

// ID - content hash of the packed block
func (b *Block) ID() merkle.Digest {
	return b.id
}

// Version - block format version
func (b *Block) Version() uint64 {
	return b.version
}

// Timestamp - when the block was built, whole seconds UTC
func (b *Block) Timestamp() time.Time {
	return b.timestamp
}

// PreviousID - URL-safe base64 id of the prior block
func (b *Block) PreviousID() string {
	return base64.RawURLEncoding.EncodeToString(b.previousID)
}

// TransactionRoot - raw merkle root
func (b *Block) TransactionRoot() []byte {
	return append([]byte{}, b.root...)
}

// Transactions - the transactions in block order
func (b *Block) Transactions() []*transaction.Transaction {
	return append([]*transaction.Transaction{}, b.transactions...)
}

// Packed - the canonical bytes
func (b *Block) Packed() []byte {
	return b.packed
}

type blockJSON struct {
	ID              merkle.Digest              `json:"id"`
	Version         uint64                     `json:"version"`
	Timestamp       time.Time                  `json:"timestamp"`
	PreviousID      string                     `json:"previousId"`
	TransactionRoot string                     `json:"transactionRoot"`
	Transactions    []*transaction.Transaction `json:"transactions"`
}

// MarshalJSON - convert a block to JSON for display
func (b *Block) MarshalJSON() ([]byte, error) {
	return json.Marshal(blockJSON{
		ID:              b.id,
		Version:         b.version,
		Timestamp:       b.timestamp,
		PreviousID:      b.PreviousID(),
		TransactionRoot: base64.StdEncoding.EncodeToString(b.root),
		Transactions:    b.transactions,
	})
}
