// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package signer - application signing keys
//
// Keys are RSA, 2048 to 8192 bits, signatures are PKCS#1 v1.5 over
// SHA-256.  A provider's key is persisted as JSON at the owner's
// signer path:
//
//   {"key": "<base64 PKCS#1 DER>", "created": "<RFC3339>"}
//
// A Signer is always passed explicitly to the operations that need
// it, there is no process wide key.
package signer
