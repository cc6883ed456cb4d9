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

package testutil

import (
	"sync"

	"github.com/creachadair/jrpc2"
)

// JsonRPCRecorder records the requests a fake language server receives from the client under test.
type JsonRPCRecorder struct {
	callbacks     []*jrpc2.Request
	notifications []*jrpc2.Request
	mutex         sync.Mutex
}

func (r *JsonRPCRecorder) Record(request *jrpc2.Request) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if request.IsNotification() {
		r.notifications = append(r.notifications, request)
	} else {
		r.callbacks = append(r.callbacks, request)
	}
}

func (r *JsonRPCRecorder) Notifications() []*jrpc2.Request {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return append([]*jrpc2.Request(nil), r.notifications...)
}

func (r *JsonRPCRecorder) Callbacks() []*jrpc2.Request {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return append([]*jrpc2.Request(nil), r.callbacks...)
}

func (r *JsonRPCRecorder) FindNotificationsByMethod(method string) []*jrpc2.Request {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return findByMethod(r.notifications, method)
}

func (r *JsonRPCRecorder) FindCallbacksByMethod(method string) []*jrpc2.Request {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return findByMethod(r.callbacks, method)
}

func (r *JsonRPCRecorder) ClearCallbacks() {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.callbacks = nil
}

func (r *JsonRPCRecorder) ClearNotifications() {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.notifications = nil
}

func findByMethod(requests []*jrpc2.Request, method string) []*jrpc2.Request {
	var found []*jrpc2.Request
	for _, request := range requests {
		if request.Method() == method {
			found = append(found, request)
		}
	}
	return found
}
