// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package transaction - signed ledger records
//
// A packed transaction is seven compact framed fields, in this order:
//
//   version         minimal big-endian integer
//   address         raw bytes of the URL-safe base64 owner address
//   timestamp       UNIX seconds, minimal big-endian integer
//   asset ref       UTF-8, "txn://{parent id}" or empty
//   contents        schema tagged payload, see package content
//   user signature  opaque bytes supplied by the submitter
//   app signature   signature over the first six framed fields
//
// The transaction id is the SHA3-256 of the complete packed bytes.
// Transactions are immutable once created.
package transaction
