// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_storage "github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/logger"
)

// LevelDB - a Store backed by a LevelDB database
//
// paths are used directly as keys
type LevelDB struct {
	sync.RWMutex
	db  *leveldb.DB
	log *logger.L

	// serialises conditional writes
	swap sync.Mutex
}

// Open - open up the database
//
// readOnly databases must already exist
func Open(name string, readOnly bool) (*LevelDB, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(name, opt)
	if nil != err {
		return nil, errors.Wrapf(err, "open database: %q", name)
	}

	l := &LevelDB{
		db:  db,
		log: logger.New("storage"),
	}
	l.log.Infof("opened: %q  read only: %v", name, readOnly)
	return l, nil
}

// OpenMemory - a volatile database for testing and tools
func OpenMemory() (*LevelDB, error) {
	db, err := leveldb.Open(ldb_storage.NewMemStorage(), nil)
	if nil != err {
		return nil, err
	}
	return &LevelDB{
		db:  db,
		log: logger.New("storage"),
	}, nil
}

// Close - close the database
func (l *LevelDB) Close() {
	l.Lock()
	defer l.Unlock()
	if nil != l.db {
		l.db.Close()
		l.db = nil
	}
}

// Read - fetch the object at path
func (l *LevelDB) Read(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); nil != err {
		return nil, err
	}

	l.RLock()
	defer l.RUnlock()

	if nil == l.db {
		return nil, fault.ErrStorageClosed
	}

	value, err := l.db.Get([]byte(path), nil)
	if leveldb.ErrNotFound == err {
		return nil, errors.Wrapf(fault.ErrNotFound, "path: %q", path)
	} else if nil != err {
		l.log.Errorf("read: %q  error: %s", path, err)
		return nil, errors.Wrapf(fault.ErrStorageReadFailed, "path: %q  error: %s", path, err)
	}
	return value, nil
}

// Write - store the object at path, replacing any previous value
func (l *LevelDB) Write(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); nil != err {
		return err
	}

	l.RLock()
	defer l.RUnlock()

	if nil == l.db {
		return fault.ErrStorageClosed
	}

	err := l.db.Put([]byte(path), data, nil)
	if nil != err {
		l.log.Errorf("write: %q  error: %s", path, err)
		return errors.Wrapf(fault.ErrStorageWriteFailed, "path: %q  error: %s", path, err)
	}
	l.log.Debugf("write: %q  bytes: %d", path, len(data))
	return nil
}

// Swap - write data only if the stored value still equals expected
func (l *LevelDB) Swap(ctx context.Context, path string, expected []byte, data []byte) error {
	l.swap.Lock()
	defer l.swap.Unlock()

	current, err := l.Read(ctx, path)
	if fault.IsErrNotFound(err) {
		current = nil
	} else if nil != err {
		return err
	}

	if !sameValue(current, expected) {
		return fault.ErrChainHeadMoved
	}
	return l.Write(ctx, path, data)
}
