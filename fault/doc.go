// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error instances
//
// Provides a single instance of errors to allow easy comparison
// without having to resort to partial string matches.
//
// Each error belongs to a class (framing, schema, signature,
// integrity, storage, race, ...) so callers can decide on retry
// policy without knowing the individual error:
//
//   FramingError   - malformed compact encoding, never retried
//   SchemaError    - unknown content schema tag
//   SignatureError - bad key material or signing failure
//   IntegrityError - recomputed hash does not match stored value
//   StorageError   - collaborator read/write failure
//   RaceError      - chain head moved, re-read and retry
package fault
