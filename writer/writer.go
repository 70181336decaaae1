// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package writer

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/bitmark-inc/ledgerd/block"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/metadata"
	"github.com/bitmark-inc/ledgerd/owner"
	"github.com/bitmark-inc/ledgerd/queue"
	"github.com/bitmark-inc/ledgerd/signer"
	"github.com/bitmark-inc/ledgerd/storage"
	"github.com/bitmark-inc/ledgerd/transaction"
	"github.com/bitmark-inc/logger"
)

// DefaultRetries - attempts after a lost metadata race
const DefaultRetries = 5

// Writer - applies queued messages to a store
type Writer struct {
	store   storage.Store
	queue   <-chan queue.Message
	retries int
	stats   Stats
	log     *logger.L
}

// New - create a writer reading from a message channel
func New(store storage.Store, messages <-chan queue.Message, retries int) *Writer {
	if retries < 0 {
		retries = DefaultRetries
	}
	return &Writer{
		store:   store,
		queue:   messages,
		retries: retries,
		log:     logger.New("writer"),
	}
}

// Run - process messages until shutdown
//
// failed messages are logged and dropped
func (w *Writer) Run(args interface{}, shutdown <-chan struct{}) {

	log := w.log

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-shutdown
		cancel()
	}()

	log.Info("starting…")
loop:
	for {
		select {
		case <-shutdown:
			break loop
		case m, ok := <-w.queue:
			if !ok {
				break loop
			}
			increment(&w.stats.Messages, 1)
			err := w.Process(ctx, m)
			if nil != err {
				increment(&w.stats.Failures, 1)
				log.Errorf("group: %q  error: %s", m.Group, err)
			}
		}
	}
	log.Infof("stopped: %+v", w.Stats())
}

// Process - apply one message
func (w *Writer) Process(ctx context.Context, m queue.Message) error {
	group, err := queue.ParseGroup(m.Group)
	if nil != err {
		return err
	}
	o, err := group.Owner()
	if nil != err {
		return err
	}

	switch group.Type {
	case queue.GroupInitialize:
		var body queue.InitializeBody
		err := json.Unmarshal(m.Body, &body)
		if nil != err {
			return errors.Wrapf(fault.ErrInvalidPayload, "initialize body: %s", err)
		}
		_, err = w.Initialize(ctx, o, body.Key)
		return err

	case queue.GroupTransaction:
		var body queue.TransactionBody
		err := json.Unmarshal(m.Body, &body)
		if nil != err {
			return errors.Wrapf(fault.ErrInvalidPayload, "transaction body: %s", err)
		}
		transactions, err := body.Decode()
		if nil != err {
			return err
		}
		_, err = w.Append(ctx, o, transactions)
		return err

	default:
		return fault.ErrInvalidGroup
	}
}

// Initialize - register a provider key and create the provider chain
//
// an already initialised provider is returned unchanged and its key
// is not replaced
func (w *Writer) Initialize(ctx context.Context, o owner.Owner, key string) (*metadata.Metadata, error) {
	m, err := metadata.Read(ctx, w.store, o)
	if nil == err {
		w.log.Warnf("initialize: %q  already initialised", o)
		return m, nil
	} else if !fault.IsErrNotFound(err) {
		return nil, err
	}

	s, err := signer.Create(ctx, w.store, o, key)
	if nil != err {
		return nil, err
	}

	m, err = metadata.Initialize(ctx, w.store, o, metadata.IdentityOf(s), "")
	if fault.ErrAlreadyInitialised == err {
		return metadata.Read(ctx, w.store, o)
	} else if nil != err {
		return nil, err
	}
	w.log.Infof("initialized: %q  signer: %q", o, s.URI())
	return m, nil
}

// Append - verify transactions and commit them as the next block
func (w *Writer) Append(ctx context.Context, o owner.Owner, transactions []*transaction.Transaction) (*block.Block, error) {
	if 0 == len(transactions) {
		return nil, fault.ErrEmptyBlock
	}

	for attempt := 0; ; attempt += 1 {
		m, err := w.chain(ctx, o)
		if nil != err {
			return nil, err
		}

		err = w.verify(ctx, m, transactions)
		if nil != err {
			return nil, err
		}

		b, err := block.Write(ctx, w.store, o, m.Head(), transactions)
		if nil != err {
			return nil, err
		}

		err = m.AppendBlock(ctx, w.store, b.ID().String())
		if nil == err {
			increment(&w.stats.Blocks, 1)
			increment(&w.stats.Transactions, len(transactions))
			w.log.Infof("append: %q  block: %s  transactions: %d", o, b.ID(), len(transactions))
			return b, nil
		}
		if !fault.IsErrRace(err) {
			return nil, err
		}
		increment(&w.stats.Races, 1)
		if attempt >= w.retries {
			return nil, errors.Wrapf(fault.ErrRetriesExhausted, "owner: %q  attempts: %d", o.String(), attempt+1)
		}
		w.log.Debugf("append: %q  head moved, retry: %d", o, attempt+1)
	}
}

// the namespace record, creating an address chain on first use
func (w *Writer) chain(ctx context.Context, o owner.Owner) (*metadata.Metadata, error) {
	m, err := metadata.Read(ctx, w.store, o)
	if nil == err || "" == o.Address || !fault.IsErrNotFound(err) {
		return m, err
	}

	provider, err := metadata.Read(ctx, w.store, owner.New(o.Provider, ""))
	if nil != err {
		return nil, err
	}
	if 0 == len(provider.Signers) {
		return nil, fault.ErrNoSigners
	}

	m, err = metadata.Initialize(ctx, w.store, o, provider.Signers[0], "")
	if fault.ErrAlreadyInitialised == err {
		return metadata.Read(ctx, w.store, o)
	} else if nil != err {
		return nil, err
	}
	for _, identity := range provider.Signers[1:] {
		err := m.AddSigner(ctx, w.store, identity)
		if nil != err {
			return nil, err
		}
	}
	w.log.Infof("initialized: %q  from provider", o)
	return m, nil
}

// every transaction must carry an app signature from a registered signer
func (w *Writer) verify(ctx context.Context, m *metadata.Metadata, transactions []*transaction.Transaction) error {
	verifiers, err := m.Verifiers(ctx, w.store)
	if nil != err {
		return err
	}

check:
	for i, tx := range transactions {
		for _, v := range verifiers {
			if tx.VerifyAppSignature(v.PublicKey()) {
				continue check
			}
		}
		return errors.Wrapf(fault.ErrUnverifiedTransaction, "transaction[%d]: %s", i, tx.ID())
	}
	return nil
}
