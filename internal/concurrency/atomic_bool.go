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

package concurrency

import "sync/atomic"

// AtomicBool is a bool that can be shared between goroutines. The zero value is false.
type AtomicBool struct {
	v atomic.Bool
}

func (b *AtomicBool) Get() bool {
	return b.v.Load()
}

func (b *AtomicBool) Set(value bool) {
	b.v.Store(value)
}

// CompareAndSwap sets the value to new if it currently is old and reports whether it did.
func (b *AtomicBool) CompareAndSwap(old, new bool) bool {
	return b.v.CompareAndSwap(old, new)
}
