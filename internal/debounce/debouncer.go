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

package debounce

import (
	"sync"
	"time"
)

// Debouncer runs callback once no Debounce call happened for timeout.
type Debouncer struct {
	mutex    sync.Mutex
	timeout  time.Duration
	timer    *time.Timer
	callback func()
	stopped  bool
}

func NewDebouncer(timeout time.Duration, callback func()) *Debouncer {
	return &Debouncer{
		timeout:  timeout,
		callback: callback,
	}
}

func (d *Debouncer) Debounce() {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	if d.stopped {
		return
	}
	if d.timer == nil {
		d.timer = time.AfterFunc(d.timeout, d.callback)
		return
	}
	d.timer.Stop()
	d.timer.Reset(d.timeout)
}

// Stop drops a pending callback. Later Debounce calls are ignored.
func (d *Debouncer) Stop() {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
}
