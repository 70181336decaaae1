// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package signer

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"time"

	"github.com/pkg/errors"

	"github.com/bitmark-inc/ledgerd/fault"
)

// key size limits in bits
const (
	MinimumBits = 2048
	MaximumBits = 8192
)

// Signer - an RSA key pair that signs and verifies application signatures
type Signer struct {
	key     *rsa.PrivateKey
	created time.Time
	uri     string
}

// New - generate a fresh key pair
func New(bits int, uri string) (*Signer, error) {
	if bits < MinimumBits || bits > MaximumBits {
		return nil, fault.ErrKeySize
	}
	key, err := rsa.GenerateKey(rand.Reader, bits)
	if nil != err {
		return nil, errors.Wrap(fault.ErrSigningFailed, err.Error())
	}
	return &Signer{
		key:     key,
		created: time.Now().UTC(),
		uri:     uri,
	}, nil
}

// FromKey - restore a signer from DER encoded private key material
//
// accepts PKCS#1 or PKCS#8 encodings
func FromKey(der []byte, uri string, created time.Time) (*Signer, error) {
	key, err := parsePrivateKey(der)
	if nil != err {
		return nil, err
	}
	bits := key.N.BitLen()
	if bits < MinimumBits || bits > MaximumBits {
		return nil, fault.ErrKeySize
	}
	return &Signer{
		key:     key,
		created: created.UTC(),
		uri:     uri,
	}, nil
}

func parsePrivateKey(der []byte) (*rsa.PrivateKey, error) {
	if 0 == len(der) {
		return nil, fault.ErrInvalidKeyMaterial
	}
	if key, err := x509.ParsePKCS1PrivateKey(der); nil == err {
		return key, nil
	}
	k, err := x509.ParsePKCS8PrivateKey(der)
	if nil != err {
		return nil, fault.ErrInvalidKeyMaterial
	}
	key, ok := k.(*rsa.PrivateKey)
	if !ok {
		return nil, fault.ErrInvalidKeyMaterial
	}
	return key, nil
}

// Sign - PKCS#1 v1.5 signature over the SHA-256 of message
func (s *Signer) Sign(message []byte) ([]byte, error) {
	digest := sha256.Sum256(message)
	signature, err := rsa.SignPKCS1v15(rand.Reader, s.key, crypto.SHA256, digest[:])
	if nil != err {
		return nil, errors.Wrap(fault.ErrSigningFailed, err.Error())
	}
	return signature, nil
}

// Verify - check a signature against this signer's public key
func (s *Signer) Verify(message []byte, signature []byte) bool {
	return Verify(&s.key.PublicKey, message, signature)
}

// Verify - check a signature against any public key
//
// malformed input is simply a failed verification
func Verify(publicKey *rsa.PublicKey, message []byte, signature []byte) bool {
	if nil == publicKey || nil == publicKey.N || 0 == len(signature) {
		return false
	}
	digest := sha256.Sum256(message)
	return nil == rsa.VerifyPKCS1v15(publicKey, crypto.SHA256, digest[:], signature)
}

// PublicKey - the verification half of the key pair
func (s *Signer) PublicKey() *rsa.PublicKey {
	return &s.key.PublicKey
}

// MarshalKey - PKCS#1 DER encoding of the private key
func (s *Signer) MarshalKey() []byte {
	return x509.MarshalPKCS1PrivateKey(s.key)
}

// Created - when the key was registered
func (s *Signer) Created() time.Time {
	return s.created
}

// URI - the storage path the key was loaded from
func (s *Signer) URI() string {
	return s.uri
}
