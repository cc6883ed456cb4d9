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

package notification

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Notifier is a project scoped event bus. Send delivers a message to every listener, synchronously and
// in registration order. Senders get no acknowledgement; a panicking listener is logged and skipped.
type Notifier struct {
	logger    *zerolog.Logger
	mutex     sync.RWMutex
	listeners map[string]func(params any)
	order     []string
}

func NewNotifier(logger *zerolog.Logger) *Notifier {
	return &Notifier{
		logger:    logger,
		listeners: map[string]func(params any){},
	}
}

// CreateListener registers callback and returns a function that removes it again.
func (n *Notifier) CreateListener(callback func(params any)) (dispose func()) {
	id := uuid.NewString()
	n.mutex.Lock()
	n.listeners[id] = callback
	n.order = append(n.order, id)
	n.mutex.Unlock()

	return func() {
		n.mutex.Lock()
		defer n.mutex.Unlock()
		delete(n.listeners, id)
		for i, listenerId := range n.order {
			if listenerId == id {
				n.order = append(n.order[:i], n.order[i+1:]...)
				break
			}
		}
	}
}

func (n *Notifier) Send(msg any) {
	n.mutex.RLock()
	callbacks := make([]func(params any), 0, len(n.order))
	for _, id := range n.order {
		callbacks = append(callbacks, n.listeners[id])
	}
	n.mutex.RUnlock()

	for _, callback := range callbacks {
		n.deliver(callback, msg)
	}
}

func (n *Notifier) deliver(callback func(params any), msg any) {
	defer func() {
		if r := recover(); r != nil {
			n.logger.Error().Str("method", "Notifier.Send").Str("event", fmt.Sprintf("%T", msg)).
				Interface("panic", r).Msg("listener panicked")
		}
	}()
	callback(msg)
}
