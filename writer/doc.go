// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package writer - the single writer of each namespace
//
// Queued messages are applied to storage in arrival order:
//
//   init:{provider}                 register the provider's signing key
//                                   and create the provider chain
//   txn:{provider}[:{address}]      verify the transactions and commit
//                                   them as the next block
//
// An address namespace is created on its first transaction, starting
// at the genesis sentinel and carrying the provider's signers.
//
// A block commit that loses the metadata race is retried against a
// fresh copy of the metadata; the orphaned block object is harmless
// since block paths are content addressed.
package writer
