// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package signer

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/pkg/errors"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/owner"
	"github.com/bitmark-inc/ledgerd/storage"
)

// stored form of a key
type keyFile struct {
	Key     string    `json:"key"`
	Created time.Time `json:"created"`
}

// Create - persist base64 encoded key material for an owner's provider
//
// the key is validated before anything is written
func Create(ctx context.Context, store storage.Store, o owner.Owner, key string) (*Signer, error) {
	der, err := decodeKey(key)
	if nil != err {
		return nil, err
	}

	path := o.SignerPath()
	s, err := FromKey(der, path, time.Now())
	if nil != err {
		return nil, err
	}

	buffer, err := json.Marshal(keyFile{
		Key:     base64.StdEncoding.EncodeToString(der),
		Created: s.created,
	})
	if nil != err {
		return nil, err
	}

	err = store.Write(ctx, path, buffer)
	if nil != err {
		return nil, err
	}
	return s, nil
}

// Get - load the signer of an owner's provider
func Get(ctx context.Context, store storage.Store, o owner.Owner) (*Signer, error) {
	return GetFromPath(ctx, store, o.SignerPath())
}

// GetFromPath - load a signer from its storage path
func GetFromPath(ctx context.Context, store storage.Store, path string) (*Signer, error) {
	buffer, err := store.Read(ctx, path)
	if nil != err {
		return nil, err
	}

	var k keyFile
	err = json.Unmarshal(buffer, &k)
	if nil != err {
		return nil, errors.Wrapf(fault.ErrInvalidKeyMaterial, "path: %q  error: %s", path, err)
	}

	der, err := decodeKey(k.Key)
	if nil != err {
		return nil, errors.Wrapf(err, "path: %q", path)
	}
	created := k.Created
	if created.IsZero() {
		created = time.Now()
	}
	return FromKey(der, path, created)
}

// accept padded or unpadded standard base64
func decodeKey(key string) ([]byte, error) {
	der, err := base64.StdEncoding.DecodeString(key)
	if nil != err {
		der, err = base64.RawStdEncoding.DecodeString(key)
	}
	if nil != err {
		return nil, fault.ErrInvalidKeyMaterial
	}
	return der, nil
}

// EncodeKey - base64 text form of DER key material, as accepted by Create
func EncodeKey(der []byte) string {
	return base64.StdEncoding.EncodeToString(der)
}
