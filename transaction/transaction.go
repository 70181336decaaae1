// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"bytes"
	"crypto/rsa"
	"encoding/base64"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bitmark-inc/ledgerd/bigint"
	"github.com/bitmark-inc/ledgerd/compactsize"
	"github.com/bitmark-inc/ledgerd/content"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/merkle"
	"github.com/bitmark-inc/ledgerd/owner"
	"github.com/bitmark-inc/ledgerd/signer"
)

// Version - current record format
const Version = 2

// number of framed fields in a packed record
const fieldCount = 7

// prefix of an asset reference to a parent transaction
const assetRefPrefix = "txn://"

// Signer - produces the application signature
type Signer interface {
	Sign(message []byte) ([]byte, error)
}

// Packed - a transaction as stored in a block
type Packed []byte

// Transaction - a decoded, immutable record
type Transaction struct {
	version       uint64
	address       []byte
	timestamp     time.Time
	assetRef      string
	contents      []byte
	userSignature []byte
	appSignature  []byte

	// length of the signed prefix of packed
	signed int
	packed Packed
	id     merkle.Digest
}

// New - build and sign a transaction
//
// address is URL-safe base64, contents must already be schema tagged
func New(address string, timestamp time.Time, assetRef string, contents []byte, userSignature []byte, s Signer) (*Transaction, error) {
	if nil == s {
		return nil, fault.ErrSigningFailed
	}
	rawAddress, err := decodeAddress(address)
	if nil != err {
		return nil, err
	}

	t := &Transaction{
		version:       Version,
		address:       rawAddress,
		timestamp:     time.Unix(timestamp.Unix(), 0).UTC(),
		assetRef:      assetRef,
		contents:      copyBytes(contents),
		userSignature: copyBytes(userSignature),
	}

	message, err := t.packUnsigned()
	if nil != err {
		return nil, err
	}

	appSignature, err := s.Sign(message)
	if nil != err {
		return nil, err
	}

	t.appSignature = appSignature
	t.signed = len(message)
	t.packed = compactsize.Append(message, appSignature)
	t.id = merkle.NewDigest(t.packed)
	return t, nil
}

// Create - build a transaction carrying a typed payload in an owner's namespace
//
// parent is the id of a prior transaction or empty, the user signature is
// standard base64
func Create(o owner.Owner, timestamp time.Time, parent string, payload content.Payload, userSignature string, s Signer) (*Transaction, error) {
	contents, err := content.Pack(payload)
	if nil != err {
		return nil, err
	}
	signature, err := decodeStd(userSignature)
	if nil != err {
		return nil, err
	}
	assetRef := ""
	if "" != parent {
		assetRef = assetRefPrefix + parent
	}
	return New(o.Address, timestamp, assetRef, contents, signature, s)
}

// Unpack - decode a packed transaction
func Unpack(buffer []byte) (*Transaction, error) {
	return Packed(buffer).Unpack()
}

// Unpack - decode and check the framing is canonical
func (record Packed) Unpack() (*Transaction, error) {
	fields, err := compactsize.DecodeCount(record, fieldCount)
	if nil != err {
		return nil, err
	}

	version, err := bigint.DecodeUint64(fields[0])
	if nil != err {
		return nil, err
	}
	timestamp, err := bigint.DecodeTime(fields[2])
	if nil != err {
		return nil, err
	}
	if !utf8.Valid(fields[3]) {
		return nil, fault.ErrInvalidUTF8
	}

	t := &Transaction{
		version:       version,
		address:       copyBytes(fields[1]),
		timestamp:     timestamp,
		assetRef:      string(fields[3]),
		contents:      copyBytes(fields[4]),
		userSignature: copyBytes(fields[5]),
		appSignature:  copyBytes(fields[6]),
	}

	message, err := t.packUnsigned()
	if nil != err {
		return nil, err
	}
	packed := compactsize.Append(message, t.appSignature)
	if !bytes.Equal(packed, record) {
		return nil, fault.ErrNonCanonicalEncoding
	}

	t.signed = len(message)
	t.packed = packed
	t.id = merkle.NewDigest(packed)
	return t, nil
}

// MakeLink - the id of a packed record without decoding it
func (record Packed) MakeLink() merkle.Digest {
	return merkle.NewDigest(record)
}

// the six fields covered by the app signature
func (t *Transaction) packUnsigned() ([]byte, error) {
	timestamp, err := bigint.EncodeTime(t.timestamp)
	if nil != err {
		return nil, err
	}
	message := compactsize.Encode(bigint.EncodeUint64(t.version))
	message = compactsize.Append(message, t.address)
	message = compactsize.Append(message, timestamp)
	message = compactsize.Append(message, []byte(t.assetRef))
	message = compactsize.Append(message, t.contents)
	message = compactsize.Append(message, t.userSignature)
	return message, nil
}

// ID - content hash of the packed record
func (t *Transaction) ID() merkle.Digest {
	return t.id
}

// Packed - the canonical bytes
func (t *Transaction) Packed() Packed {
	return t.packed
}

// Version - record format version
func (t *Transaction) Version() uint64 {
	return t.version
}

// Address - URL-safe base64 form of the owner address
func (t *Transaction) Address() string {
	return base64.RawURLEncoding.EncodeToString(t.address)
}

// AddressBytes - raw owner address
func (t *Transaction) AddressBytes() []byte {
	return copyBytes(t.address)
}

// Timestamp - creation time, whole seconds UTC
func (t *Transaction) Timestamp() time.Time {
	return t.timestamp
}

// AssetRef - reference to a parent transaction or empty
func (t *Transaction) AssetRef() string {
	return t.assetRef
}

// Parent - id of the referenced parent transaction or empty
func (t *Transaction) Parent() string {
	if strings.HasPrefix(t.assetRef, assetRefPrefix) {
		return t.assetRef[len(assetRefPrefix):]
	}
	return ""
}

// Contents - raw schema tagged contents
func (t *Transaction) Contents() []byte {
	return copyBytes(t.contents)
}

// Content - decoded typed payload
func (t *Transaction) Content() (content.Payload, error) {
	return content.Unpack(t.contents)
}

// UserSignature - opaque signature supplied by the submitter
func (t *Transaction) UserSignature() []byte {
	return copyBytes(t.userSignature)
}

// AppSignature - counter-signature over the first six fields
func (t *Transaction) AppSignature() []byte {
	return copyBytes(t.appSignature)
}

// VerifyAppSignature - check the app signature against a public key
func (t *Transaction) VerifyAppSignature(publicKey *rsa.PublicKey) bool {
	return signer.Verify(publicKey, t.packed[:t.signed], t.appSignature)
}

func decodeAddress(address string) ([]byte, error) {
	b, err := base64.RawURLEncoding.DecodeString(address)
	if nil != err {
		b, err = base64.URLEncoding.DecodeString(address)
	}
	if nil != err {
		return nil, fault.ErrInvalidAddress
	}
	return b, nil
}

func decodeStd(s string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if nil != err {
		b, err = base64.RawStdEncoding.DecodeString(s)
	}
	if nil != err {
		return nil, fault.ErrInvalidBase64
	}
	return b, nil
}

func copyBytes(b []byte) []byte {
	if nil == b {
		return []byte{}
	}
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
