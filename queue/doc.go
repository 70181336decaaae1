// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package queue - asynchronous submission to the ledger writer
//
// A message is a group name and a JSON body.  The group selects both
// the operation and the namespace:
//
//   init:{provider}              InitializeBody, register a signing key
//   txn:{provider}[:{address}]   TransactionBody, transactions for a block
//
// Messages sharing a group are consumed in order by a single writer.
// Delivery is at least once, consumers must tolerate duplicates.
package queue
