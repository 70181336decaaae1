// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fixtures - shared helpers for package tests
package fixtures

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"fmt"
	"os"
	"sync"

	"github.com/bitmark-inc/logger"
)

const (
	dir         = "testing"
	LogCategory = "testing"

	// smallest size a signer accepts
	KeyBits = 2048
)

var (
	keyOnce sync.Once
	keyDER  [][]byte
)

// SetupTestLogger - start a quiet file logger in ./testing
func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(dir, 0700)

	logging := logger.Configuration{
		Directory: dir,
		File:      fmt.Sprintf("%s.log", LogCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

// TeardownTestLogger - stop logging and remove the log directory
func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	err := os.RemoveAll(dir)
	if nil != err {
		fmt.Println("remove dir with error: ", err)
	}
}

// PrivateKey - one of a small set of PKCS#1 DER test keys
//
// generation is slow so the keys are created once per test binary
func PrivateKey(n int) []byte {
	keyOnce.Do(func() {
		for i := 0; i < 3; i += 1 {
			key, err := rsa.GenerateKey(rand.Reader, KeyBits)
			if nil != err {
				panic(fmt.Sprintf("generate test key error: %s", err))
			}
			keyDER = append(keyDER, x509.MarshalPKCS1PrivateKey(key))
		}
	})
	return keyDER[n%len(keyDER)]
}
