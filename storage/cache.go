// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"context"
	"strings"
	"time"

	cache "github.com/patrickmn/go-cache"
)

const (
	blockSuffix       = ".block"
	defaultExpiration = 10 * time.Minute
	cleanupInterval   = 2 * time.Minute
)

// Cache - read-through layer in front of another Store
//
// only block objects are cached, they are content addressed and
// never change once written
type Cache struct {
	store Store
	cache *cache.Cache
}

// NewCache - wrap a store with a block cache
func NewCache(store Store) *Cache {
	return &Cache{
		store: store,
		cache: cache.New(defaultExpiration, cleanupInterval),
	}
}

// Read - fetch from cache, falling back to the underlying store
func (c *Cache) Read(ctx context.Context, path string) ([]byte, error) {
	if obj, found := c.cache.Get(path); found {
		return copyBytes(obj.([]byte)), nil
	}

	data, err := c.store.Read(ctx, path)
	if nil != err {
		return nil, err
	}

	if isBlock(path) {
		c.cache.Set(path, copyBytes(data), cache.DefaultExpiration)
	}
	return data, nil
}

// Write - write through to the underlying store
func (c *Cache) Write(ctx context.Context, path string, data []byte) error {
	err := c.store.Write(ctx, path, data)
	if nil != err {
		return err
	}
	if isBlock(path) {
		c.cache.Set(path, copyBytes(data), cache.DefaultExpiration)
	}
	return nil
}

// Swap - delegate to the underlying store if it supports swap
//
// otherwise fall back to read-compare-write, which is only safe with
// a single writer per namespace
func (c *Cache) Swap(ctx context.Context, path string, expected []byte, data []byte) error {
	if s, ok := c.store.(Swapper); ok {
		return s.Swap(ctx, path, expected, data)
	}
	return CompareAndWrite(ctx, c.store, path, expected, data)
}

// Clear - drop all cached objects
func (c *Cache) Clear() {
	c.cache.Flush()
}

// Count - number of cached objects
func (c *Cache) Count() int {
	return c.cache.ItemCount()
}

func isBlock(path string) bool {
	return strings.HasSuffix(path, blockSuffix)
}

func copyBytes(b []byte) []byte {
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
