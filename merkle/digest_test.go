// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle_test

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/merkle"
)

func TestDigest(t *testing.T) {
	s := []byte("hello world")
	d := merkle.NewDigest(s)

	// printf '%s' 'hello world' | sha3sum -a 256
	expected, err := hex.DecodeString("644bcc7e564373040999aac89e7622f3ca71fba1d972fd94a31c3bfbf24e3938")
	if nil != err {
		t.Fatalf("hex decode error: %s", err)
	}

	if hex.EncodeToString(d[:]) != hex.EncodeToString(expected) {
		t.Errorf("digest = %x expected %x", d, expected)
	}

	text := base64.RawURLEncoding.EncodeToString(expected)
	assert.Equal(t, text, d.String(), "string form")
	assert.Equal(t, "<SHA3-256:"+text+">", d.GoString(), "go string form")

	parsed, err := merkle.DigestFromString(text)
	assert.Nil(t, err, "parse error")
	assert.Equal(t, d, parsed, "parsed digest")
}

func TestDigestJSON(t *testing.T) {
	type holder struct {
		Id merkle.Digest `json:"id"`
	}

	h := holder{Id: merkle.NewDigest([]byte("record"))}
	buffer, err := json.Marshal(h)
	assert.Nil(t, err, "marshal error")
	assert.Equal(t, `{"id":"`+h.Id.String()+`"}`, string(buffer), "json")

	var decoded holder
	err = json.Unmarshal(buffer, &decoded)
	assert.Nil(t, err, "unmarshal error")
	assert.Equal(t, h, decoded, "round trip")
}

func TestInvalidDigest(t *testing.T) {
	_, err := merkle.DigestFromString("AA")
	assert.Equal(t, fault.ErrInvalidDigest, err, "short digest")

	_, err = merkle.DigestFromString("not base64!")
	assert.Equal(t, fault.ErrInvalidDigest, err, "bad text")

	var d merkle.Digest
	err = merkle.DigestFromBytes(&d, make([]byte, 31))
	assert.Equal(t, fault.ErrInvalidDigest, err, "short bytes")
}
