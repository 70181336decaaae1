// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgerd/configuration"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/writer"
)

func writeConfiguration(t *testing.T, text string) (string, func()) {
	dir, err := ioutil.TempDir("", "ledgerd-configuration")
	if nil != err {
		t.Fatalf("temp dir error: %s", err)
	}
	fileName := filepath.Join(dir, "ledgerd.conf")
	err = ioutil.WriteFile(fileName, []byte(text), 0600)
	if nil != err {
		os.RemoveAll(dir)
		t.Fatalf("write error: %s", err)
	}
	return fileName, func() { os.RemoveAll(dir) }
}

func TestDefaults(t *testing.T) {
	fileName, cleanup := writeConfiguration(t, `
local M = {}
M.data_directory = "."
return M
`)
	defer cleanup()

	options, err := configuration.GetConfiguration(fileName)
	if nil != err {
		t.Fatalf("configuration error: %s", err)
	}

	dir := filepath.Dir(fileName)
	assert.Equal(t, filepath.Join(dir, "data"), options.Database.Directory, "database directory")
	assert.Equal(t, filepath.Join(dir, "data", "ledger.leveldb"), options.Database.Name, "database name")
	assert.Equal(t, filepath.Join(dir, "log"), options.Logging.Directory, "log directory")
	assert.Equal(t, "ledgerd.log", options.Logging.File, "log file")
	assert.Equal(t, "tcp://127.0.0.1:2150", options.Queue.Address, "queue address")
	assert.Equal(t, writer.DefaultRetries, options.Writer.Retries, "retries")
	assert.Equal(t, "", options.PidFile, "no pid file")

	info, err := os.Stat(options.Database.Directory)
	assert.Nil(t, err, "database directory created")
	assert.True(t, info.IsDir(), "database directory is a directory")
}

func TestOverrides(t *testing.T) {
	fileName, cleanup := writeConfiguration(t, `
local M = {}
M.data_directory = "."
M.pidfile = "ledgerd.pid"
M.database = {
    directory = "db",
    name = "test.leveldb",
}
M.queue = {
    address = "ipc://ledgerd.ipc",
    size = 5,
    rate_limit = 7,
    burst = 3,
}
M.writer = {
    retries = 0,
}
M.logging = {
    directory = "logs",
    file = "test.log",
    size = 1000,
    count = 2,
    levels = {
        DEFAULT = "debug",
    },
}
return M
`)
	defer cleanup()

	options, err := configuration.GetConfiguration(fileName)
	if nil != err {
		t.Fatalf("configuration error: %s", err)
	}

	dir := filepath.Dir(fileName)
	assert.Equal(t, filepath.Join(dir, "ledgerd.pid"), options.PidFile, "pid file")
	assert.Equal(t, filepath.Join(dir, "db", "test.leveldb"), options.Database.Name, "database name")
	assert.Equal(t, "ipc://ledgerd.ipc", options.Queue.Address, "queue address")
	assert.Equal(t, 5, options.Queue.Size, "queue size")
	assert.Equal(t, 7, options.Queue.RateLimit, "rate limit")
	assert.Equal(t, 3, options.Queue.Burst, "burst")
	assert.Equal(t, 0, options.Writer.Retries, "retries")
	assert.Equal(t, 1000, options.Logging.Size, "log size")
	assert.Equal(t, 2, options.Logging.Count, "log count")
	assert.Equal(t, "debug", options.Logging.Levels["DEFAULT"], "default level")
}

func TestInvalid(t *testing.T) {
	items := []string{
		`return {}`,
		`return { data_directory = "." , writer = { retries = -1 } }`,
		`return { data_directory = "." , queue = { rate_limit = 0 } }`,
		`return { data_directory = "." , database = { name = "a/b.leveldb" } }`,
		`return { data_directory = "/no/such/directory" }`,
		`return "not a table"`,
		`this is not lua`,
	}

	for i, text := range items {
		fileName, cleanup := writeConfiguration(t, text)
		_, err := configuration.GetConfiguration(fileName)
		if nil == err {
			t.Errorf("%d: unexpected success", i)
		}
		cleanup()
	}
}

func TestParseConfigurationFile(t *testing.T) {
	fileName, cleanup := writeConfiguration(t, `
return {
    name = arg[0],
    count = 2 + 3,
}
`)
	defer cleanup()

	type simple struct {
		Name  string `gluamapper:"name"`
		Count int    `gluamapper:"count"`
	}

	var s simple
	err := configuration.ParseConfigurationFile(fileName, &s)
	assert.Nil(t, err, "parse error")
	assert.Equal(t, fileName, s.Name, "arg[0] is the file name")
	assert.Equal(t, 5, s.Count, "evaluated")

	err = configuration.ParseConfigurationFile(fileName, s)
	assert.Equal(t, fault.ErrInvalidStructPointer, err, "not a pointer")
}
