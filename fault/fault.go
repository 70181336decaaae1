// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"github.com/pkg/errors"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type FramingError GenericError
type IntegrityError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RaceError GenericError
type SchemaError GenericError
type SignatureError GenericError
type StorageError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised    = ExistsError("already initialised")
	ErrBlockIdMismatch       = IntegrityError("block id does not match content")
	ErrChainHeadMoved        = RaceError("chain head moved since metadata was read")
	ErrEmptyBlock            = InvalidError("block must contain at least one transaction")
	ErrEmptyMerkleTree       = InvalidError("merkle tree requires at least one leaf")
	ErrFieldCount            = FramingError("wrong field count for record")
	ErrInvalidAddress        = InvalidError("invalid address encoding")
	ErrInvalidBase64         = InvalidError("invalid base64 encoding")
	ErrInvalidConfiguration  = InvalidError("configuration must return a table")
	ErrInvalidDigest         = InvalidError("invalid digest")
	ErrInvalidGroup          = InvalidError("invalid message group")
	ErrInvalidKeyMaterial    = SignatureError("invalid key material")
	ErrInvalidLoggerChannel  = ProcessError("invalid logger channel")
	ErrInvalidMetadata       = InvalidError("invalid metadata record")
	ErrInvalidOwner          = InvalidError("invalid owner")
	ErrInvalidPayload        = SchemaError("invalid payload encoding")
	ErrInvalidStructPointer  = InvalidError("invalid struct pointer")
	ErrInvalidUTF8           = InvalidError("invalid UTF-8 string")
	ErrKeySize               = SignatureError("key size out of range")
	ErrMerkleRootMismatch    = IntegrityError("transaction root does not match transactions")
	ErrMissingProvider       = InvalidError("owner has no provider")
	ErrNegativeInteger       = InvalidError("negative integer cannot be encoded")
	ErrNonCanonicalEncoding  = FramingError("record is not canonically encoded")
	ErrNoSigners             = NotFoundError("no signers registered")
	ErrNotFound              = NotFoundError("not found")
	ErrNotInitialised        = NotFoundError("not initialised")
	ErrQueueClosed           = ProcessError("queue is closed")
	ErrRetriesExhausted      = ProcessError("retries exhausted")
	ErrSigningFailed         = SignatureError("signing failed")
	ErrStorageClosed         = StorageError("storage is closed")
	ErrStorageReadFailed     = StorageError("storage read failed")
	ErrStorageWriteFailed    = StorageError("storage write failed")
	ErrTimestampOutOfRange   = InvalidError("timestamp out of range")
	ErrTransactionCount      = FramingError("transaction count does not match fields")
	ErrTruncatedLength       = FramingError("length prefix is truncated")
	ErrTruncatedRecord       = FramingError("length prefix exceeds remaining bytes")
	ErrUnknownSchema         = SchemaError("unknown content schema")
	ErrUnverifiedTransaction = SignatureError("transaction app signature does not verify")
	ErrValueTooLarge         = FramingError("integer value exceeds 64 bits")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string    { return string(e) }
func (e FramingError) Error() string   { return string(e) }
func (e IntegrityError) Error() string { return string(e) }
func (e InvalidError) Error() string   { return string(e) }
func (e NotFoundError) Error() string  { return string(e) }
func (e ProcessError) Error() string   { return string(e) }
func (e RaceError) Error() string      { return string(e) }
func (e SchemaError) Error() string    { return string(e) }
func (e SignatureError) Error() string { return string(e) }
func (e StorageError) Error() string   { return string(e) }

// determine the class of an error
//
// wrapped errors are unwrapped to their cause first
func IsErrExists(e error) bool    { _, ok := errors.Cause(e).(ExistsError); return ok }
func IsErrFraming(e error) bool   { _, ok := errors.Cause(e).(FramingError); return ok }
func IsErrIntegrity(e error) bool { _, ok := errors.Cause(e).(IntegrityError); return ok }
func IsErrInvalid(e error) bool   { _, ok := errors.Cause(e).(InvalidError); return ok }
func IsErrNotFound(e error) bool  { _, ok := errors.Cause(e).(NotFoundError); return ok }
func IsErrProcess(e error) bool   { _, ok := errors.Cause(e).(ProcessError); return ok }
func IsErrRace(e error) bool      { _, ok := errors.Cause(e).(RaceError); return ok }
func IsErrSchema(e error) bool    { _, ok := errors.Cause(e).(SchemaError); return ok }
func IsErrSignature(e error) bool { _, ok := errors.Cause(e).(SignatureError); return ok }
func IsErrStorage(e error) bool   { _, ok := errors.Cause(e).(StorageError); return ok }
