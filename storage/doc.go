// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - the object store collaborator
//
// The ledger persists three kinds of object, each by path:
//
//   providers/{provider}/{address}/blocks/{id}.block  - packed block bytes
//   providers/{provider}/{address}/metadata.json      - chain metadata JSON
//   providers/{provider}/sign.json                    - signer key material
//
// Block paths are content addressed: the same block content always
// resolves to the same path, so block writes are idempotent and block
// objects never change once written.  This allows block reads to be
// cached without invalidation.
//
// The store is an opaque key->bytes map; no retries are performed
// here, callers decide retry policy from the fault class.
package storage
