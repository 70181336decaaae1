// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package block

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/merkle"
	"github.com/bitmark-inc/ledgerd/owner"
	"github.com/bitmark-inc/ledgerd/storage"
	"github.com/bitmark-inc/ledgerd/transaction"
)

// Write - build a block at the current time and persist it
//
// previousID must be the chain head the caller read from metadata
func Write(ctx context.Context, store storage.Store, o owner.Owner, previousID string, transactions []*transaction.Transaction) (*Block, error) {
	b, err := New(Version, time.Now(), previousID, transactions)
	if nil != err {
		return nil, err
	}

	err = store.Write(ctx, o.BlockPath(b.id.String()), b.packed)
	if nil != err {
		return nil, err
	}
	return b, nil
}

// Read - fetch a block by id and verify it
func Read(ctx context.Context, store storage.Store, o owner.Owner, id string) (*Block, error) {
	digest, err := merkle.DigestFromString(id)
	if nil != err {
		return nil, err
	}

	packed, err := store.Read(ctx, o.BlockPath(digest.String()))
	if nil != err {
		return nil, err
	}

	if merkle.NewDigest(packed) != digest {
		return nil, errors.Wrapf(fault.ErrBlockIdMismatch, "block: %s", id)
	}

	b, err := Unpack(packed)
	if nil != err {
		return nil, errors.Wrapf(err, "block: %s", id)
	}
	return b, nil
}
