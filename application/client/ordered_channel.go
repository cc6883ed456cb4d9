/*
 * © 2024 Snyk Limited
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package client

import (
	"sync"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/channel"
)

// orderedChannel takes the server's notifications off the connection and applies them one by one in the
// order they were received. Responses and callbacks are passed on to the jrpc2 client unchanged.
type orderedChannel struct {
	channel.Channel
	apply func(req *jrpc2.Request)

	mutex   sync.Mutex
	pending []*jrpc2.Request
	closed  bool
	ready   chan struct{}
	drained chan struct{}
}

// Ordered wraps the channel the server messages are read from, so that notifications are handled in
// wire order. jrpc2 delivers each received message on its own goroutine, which reorders them.
func (cl *Client) Ordered(ch channel.Channel) channel.Channel {
	return newOrderedChannel(ch, cl.handleNotification)
}

func newOrderedChannel(ch channel.Channel, apply func(req *jrpc2.Request)) *orderedChannel {
	o := &orderedChannel{
		Channel: ch,
		apply:   apply,
		ready:   make(chan struct{}, 1),
		drained: make(chan struct{}),
	}
	go o.run()
	return o
}

func (o *orderedChannel) Recv() ([]byte, error) {
	for {
		msg, err := o.Channel.Recv()
		if err != nil {
			o.stop()
			return nil, err
		}
		req, ok := notificationOf(msg)
		if !ok {
			return msg, nil
		}
		o.enqueue(req)
	}
}

func (o *orderedChannel) Close() error {
	o.stop()
	return o.Channel.Close()
}

// notificationOf reports whether msg is a single, valid notification. Batches and invalid messages are
// left to jrpc2.
func notificationOf(msg []byte) (*jrpc2.Request, bool) {
	parsed, err := jrpc2.ParseRequests(msg)
	if err != nil || len(parsed) != 1 {
		return nil, false
	}
	p := parsed[0]
	if p.Error != nil || p.Method == "" || p.ID != "" {
		return nil, false
	}
	return p.ToRequest(), true
}

func (o *orderedChannel) enqueue(req *jrpc2.Request) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	if o.closed {
		return
	}
	o.pending = append(o.pending, req)
	o.signal()
}

func (o *orderedChannel) stop() {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.closed = true
	o.signal()
}

// signal must be called with the mutex held.
func (o *orderedChannel) signal() {
	select {
	case o.ready <- struct{}{}:
	default:
	}
}

func (o *orderedChannel) next() (batch []*jrpc2.Request, closed bool) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	batch, o.pending = o.pending, nil
	return batch, o.closed
}

// run applies the queued notifications until the channel is stopped and the queue is empty.
func (o *orderedChannel) run() {
	defer close(o.drained)
	for {
		batch, closed := o.next()
		for _, req := range batch {
			o.apply(req)
		}
		if len(batch) > 0 {
			continue
		}
		if closed {
			return
		}
		<-o.ready
	}
}
