// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package queue

import (
	"context"
	"sync"
	"time"

	zmq "github.com/pebbe/zmq4"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/logger"
)

const (
	pollTimeout  = 100 * time.Millisecond
	messageParts = 2
)

// Pusher - publishes messages on a ZeroMQ PUSH socket
type Pusher struct {
	sync.Mutex
	socket  *zmq.Socket
	limiter *rate.Limiter
	log     *logger.L
}

// NewPusher - connect a PUSH socket to a puller
//
// limiter may be nil for no rate limiting
func NewPusher(address string, limiter *rate.Limiter, timeout time.Duration) (*Pusher, error) {
	socket, err := zmq.NewSocket(zmq.PUSH)
	if nil != err {
		return nil, err
	}

	err = socket.SetLinger(0)
	if nil != err {
		goto failure
	}
	if 0 != timeout {
		err = socket.SetSndtimeo(timeout)
		if nil != err {
			goto failure
		}
	}
	err = socket.Connect(address)
	if nil != err {
		goto failure
	}

	return &Pusher{
		socket:  socket,
		limiter: limiter,
		log:     logger.New("pusher"),
	}, nil

failure:
	socket.Close()
	return nil, err
}

// Publish - send a message as [group, body]
func (p *Pusher) Publish(ctx context.Context, m Message) error {
	if nil != p.limiter {
		err := p.limiter.Wait(ctx)
		if nil != err {
			return err
		}
	} else if err := ctx.Err(); nil != err {
		return err
	}

	p.Lock()
	defer p.Unlock()

	if nil == p.socket {
		return fault.ErrQueueClosed
	}
	_, err := p.socket.SendMessage(m.Group, m.Body)
	if nil != err {
		p.log.Errorf("send group: %q  error: %s", m.Group, err)
		return err
	}
	p.log.Debugf("sent group: %q  bytes: %d", m.Group, len(m.Body))
	return nil
}

// Close - close the socket
func (p *Pusher) Close() error {
	p.Lock()
	defer p.Unlock()
	if nil == p.socket {
		return nil
	}
	err := p.socket.Close()
	p.socket = nil
	return err
}

// Puller - receives messages on a ZeroMQ PULL socket
//
// runs as a background process, forwarding to Chan
type Puller struct {
	socket *zmq.Socket
	poller *zmq.Poller
	queue  chan Message
	log    *logger.L
}

// NewPuller - bind a PULL socket
func NewPuller(address string, size int) (*Puller, error) {
	socket, err := zmq.NewSocket(zmq.PULL)
	if nil != err {
		return nil, err
	}

	err = socket.SetLinger(0)
	if nil != err {
		socket.Close()
		return nil, err
	}
	err = socket.Bind(address)
	if nil != err {
		socket.Close()
		return nil, err
	}

	if size <= 0 {
		size = DefaultChannelSize
	}
	poller := zmq.NewPoller()
	poller.Add(socket, zmq.POLLIN)

	return &Puller{
		socket: socket,
		poller: poller,
		queue:  make(chan Message, size),
		log:    logger.New("puller"),
	}, nil
}

// Chan - channel to read received messages from
func (p *Puller) Chan() <-chan Message {
	return p.queue
}

// Run - receive until shutdown, then close the socket
func (p *Puller) Run(args interface{}, shutdown <-chan struct{}) {
	p.log.Info("starting…")

loop:
	for {
		select {
		case <-shutdown:
			break loop
		default:
		}

		polled, err := p.poller.Poll(pollTimeout)
		if nil != err {
			p.log.Errorf("poll error: %s", err)
			continue loop
		}
		if 0 == len(polled) {
			continue loop
		}

		parts, err := p.socket.RecvMessageBytes(0)
		if nil != err {
			p.log.Errorf("receive error: %s", err)
			continue loop
		}
		if messageParts != len(parts) {
			p.log.Warnf("discard message with %d parts", len(parts))
			continue loop
		}

		m := Message{
			Group: string(parts[0]),
			Body:  parts[1],
		}
		select {
		case p.queue <- m:
		case <-shutdown:
			break loop
		}
	}

	p.socket.Close()
	p.log.Info("stopped")
}
