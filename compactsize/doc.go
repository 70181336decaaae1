// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package compactsize - length prefixed field framing
//
// Every persisted record is a concatenation of fields, each preceded
// by its length.  The record type defines the number and order of the
// fields; the bytes carry only the lengths.
package compactsize
