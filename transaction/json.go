// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/bitmark-inc/ledgerd/merkle"
)

// display form, binary fields are standard base64
type transactionJSON struct {
	ID            merkle.Digest `json:"id"`
	Version       uint64        `json:"version"`
	Address       string        `json:"address"`
	Timestamp     time.Time     `json:"timestamp"`
	AssetRef      string        `json:"assetRef"`
	Contents      string        `json:"contents"`
	UserSignature string        `json:"userSignature"`
	AppSignature  string        `json:"appSignature"`
}

// MarshalJSON - convert a transaction to JSON for display
func (t *Transaction) MarshalJSON() ([]byte, error) {
	return json.Marshal(transactionJSON{
		ID:            t.id,
		Version:       t.version,
		Address:       t.Address(),
		Timestamp:     t.timestamp,
		AssetRef:      t.assetRef,
		Contents:      base64.StdEncoding.EncodeToString(t.contents),
		UserSignature: base64.StdEncoding.EncodeToString(t.userSignature),
		AppSignature:  base64.StdEncoding.EncodeToString(t.appSignature),
	})
}
