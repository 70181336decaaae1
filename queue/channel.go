// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package queue

import (
	"context"
)

// DefaultChannelSize - buffer size of an in process queue
const DefaultChannelSize = 1000

// Channel - an in process queue
type Channel struct {
	queue chan Message
}

// NewChannel - create a buffered in process queue
func NewChannel(size int) *Channel {
	if size <= 0 {
		size = DefaultChannelSize
	}
	return &Channel{
		queue: make(chan Message, size),
	}
}

// Publish - queue a message, blocking while the queue is full
func (c *Channel) Publish(ctx context.Context, m Message) error {
	select {
	case c.queue <- m:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Chan - channel to read from
func (c *Channel) Chan() <-chan Message {
	return c.queue
}
