// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package content - typed transaction payloads
//
// The contents field of a transaction is two compact framed fields:
//
//   [schema id as minimal big-endian integer] [payload bytes]
//
// Each schema owns its payload layout.  A new schema is added by
// registering another Payload type, existing layouts never change.
//
// Optional text fields are written as the empty field, so an empty
// description and an absent description decode identically.
package content
