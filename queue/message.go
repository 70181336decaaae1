// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package queue

import (
	"context"
	"encoding/json"
	"time"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/owner"
	"github.com/bitmark-inc/ledgerd/transaction"
)

// Message - one queued request
type Message struct {
	Group string
	Body  []byte
}

// Publisher - accepts messages for asynchronous processing
type Publisher interface {
	Publish(ctx context.Context, m Message) error
}

// SubmitTransactions - queue transactions for the owner's next block
func SubmitTransactions(ctx context.Context, publisher Publisher, o owner.Owner, transactions []*transaction.Transaction) error {
	if 0 == len(transactions) {
		return fault.ErrEmptyBlock
	}
	group, err := TransactionGroup(o)
	if nil != err {
		return err
	}
	body, err := json.Marshal(NewTransactionBody(transactions))
	if nil != err {
		return err
	}
	return publisher.Publish(ctx, Message{
		Group: group.String(),
		Body:  body,
	})
}

// SubmitInitialize - queue registration of a provider's signing key
func SubmitInitialize(ctx context.Context, publisher Publisher, o owner.Owner, key string) error {
	group, err := InitializeGroup(o)
	if nil != err {
		return err
	}
	body, err := json.Marshal(InitializeBody{
		Timestamp: time.Now().UTC(),
		Key:       key,
	})
	if nil != err {
		return err
	}
	return publisher.Publish(ctx, Message{
		Group: group.String(),
		Body:  body,
	})
}
