// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package queue

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/pkg/errors"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/transaction"
)

// InitializeBody - request to register a provider's signing key
//
// key is base64 DER key material, a missing timestamp means now
type InitializeBody struct {
	Timestamp time.Time `json:"timestamp"`
	Key       string    `json:"key"`
}

// UnmarshalJSON - decode, filling in a missing timestamp
func (b *InitializeBody) UnmarshalJSON(data []byte) error {
	type plain InitializeBody
	var p plain
	err := json.Unmarshal(data, &p)
	if nil != err {
		return err
	}
	if p.Timestamp.IsZero() {
		p.Timestamp = time.Now().UTC()
	}
	*b = InitializeBody(p)
	return nil
}

// TransactionBody - packed transactions for one block, standard base64
type TransactionBody struct {
	Transactions []string `json:"transactions"`
}

// NewTransactionBody - body for a list of transactions
func NewTransactionBody(transactions []*transaction.Transaction) *TransactionBody {
	b := &TransactionBody{
		Transactions: make([]string, 0, len(transactions)),
	}
	for _, tx := range transactions {
		b.Add(tx.Packed())
	}
	return b
}

// Add - append a packed transaction
func (b *TransactionBody) Add(packed []byte) {
	b.Transactions = append(b.Transactions, base64.StdEncoding.EncodeToString(packed))
}

// Decode - unpack every transaction in the body
func (b *TransactionBody) Decode() ([]*transaction.Transaction, error) {
	transactions := make([]*transaction.Transaction, 0, len(b.Transactions))
	for i, s := range b.Transactions {
		packed, err := base64.StdEncoding.DecodeString(s)
		if nil != err {
			return nil, errors.Wrapf(fault.ErrInvalidBase64, "transaction[%d]", i)
		}
		tx, err := transaction.Unpack(packed)
		if nil != err {
			return nil, errors.Wrapf(err, "transaction[%d]", i)
		}
		transactions = append(transactions, tx)
	}
	return transactions, nil
}
