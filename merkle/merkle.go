// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

import (
	"github.com/bitmark-inc/ledgerd/fault"
)

// Root - compute the merkle root from an ordered set of leaves
//
// each level pairs adjacent nodes left to right and replaces each
// pair with SHA3-256(left ++ right), an odd last node is paired with
// itself.  A single leaf is its own root.
func Root(leaves [][]byte) ([]byte, error) {

	length := len(leaves)
	if 0 == length {
		return nil, fault.ErrEmptyMerkleTree
	}

	if 1 == length {
		root := make([]byte, len(leaves[0]))
		copy(root, leaves[0])
		return root, nil
	}

	level := leaves
	for len(level) > 1 {
		next := make([][]byte, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			j := i + 1
			if j >= len(level) {
				j = i // compensate for odd number
			}
			b := make([]byte, 0, len(level[i])+len(level[j]))
			b = append(b, level[i]...)
			b = append(b, level[j]...)
			d := NewDigest(b)
			next = append(next, d[:])
		}
		level = next
	}
	return level[0], nil
}

// DigestRoot - merkle root of a set of digests
func DigestRoot(ids []Digest) ([]byte, error) {
	leaves := make([][]byte, len(ids))
	for i := range ids {
		leaves[i] = ids[i][:]
	}
	return Root(leaves)
}
