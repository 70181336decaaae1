// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package writer

import (
	"sync/atomic"
)

// Stats - totals since the writer was created
type Stats struct {
	Messages     uint64 `json:"messages"`
	Failures     uint64 `json:"failures"`
	Blocks       uint64 `json:"blocks"`
	Transactions uint64 `json:"transactions"`
	Races        uint64 `json:"races"`
}

// Stats - snapshot of the totals
func (w *Writer) Stats() Stats {
	return Stats{
		Messages:     atomic.LoadUint64(&w.stats.Messages),
		Failures:     atomic.LoadUint64(&w.stats.Failures),
		Blocks:       atomic.LoadUint64(&w.stats.Blocks),
		Transactions: atomic.LoadUint64(&w.stats.Transactions),
		Races:        atomic.LoadUint64(&w.stats.Races),
	}
}

func increment(n *uint64, delta int) {
	atomic.AddUint64(n, uint64(delta))
}
