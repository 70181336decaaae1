// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"bytes"
	"context"

	"github.com/bitmark-inc/ledgerd/fault"
)

//go:generate mockgen -destination=mocks/store.go -package=mocks github.com/bitmark-inc/ledgerd/storage Store

// Store - path addressed object storage
//
// Read returns fault.ErrNotFound (possibly wrapped) for a missing path
type Store interface {
	Read(ctx context.Context, path string) ([]byte, error)
	Write(ctx context.Context, path string, data []byte) error
}

// Swapper - optional conditional write
//
// Swap writes data only if the current value at path equals expected;
// a nil expected means the path must not exist.  A mismatch returns
// fault.ErrChainHeadMoved
type Swapper interface {
	Swap(ctx context.Context, path string, expected []byte, data []byte) error
}

// CompareAndWrite - conditional write through any store
//
// uses the store's Swap when available, otherwise a plain read,
// compare then write
func CompareAndWrite(ctx context.Context, store Store, path string, expected []byte, data []byte) error {
	if s, ok := store.(Swapper); ok {
		return s.Swap(ctx, path, expected, data)
	}

	current, err := store.Read(ctx, path)
	if fault.IsErrNotFound(err) {
		current = nil
	} else if nil != err {
		return err
	}
	if !sameValue(current, expected) {
		return fault.ErrChainHeadMoved
	}
	return store.Write(ctx, path, data)
}

// nil means absent, so nil and empty differ
func sameValue(current []byte, expected []byte) bool {
	if (nil == current) != (nil == expected) {
		return false
	}
	return bytes.Equal(current, expected)
}
