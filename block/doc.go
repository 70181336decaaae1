// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package block - ordered batches of transactions chained by id
//
// A packed block is compact framed fields in this order:
//
//   version            minimal big-endian integer
//   timestamp          UNIX seconds
//   previous id        raw bytes of the previous block id (Genesis for the first)
//   transaction root   merkle root over the transaction ids
//   transaction count  minimal big-endian integer
//   transactions       one field per packed transaction, in order
//
// The block id is the SHA3-256 of the packed bytes and the block is
// stored at a path derived from that id, so blocks are written once
// and never modified.  Reading a block checks both the id and the
// transaction root against the content.
package block
