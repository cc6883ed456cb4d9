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

package progress

import (
	"context"
	"sync"

	"github.com/snyk/snyk-ide-core/internal/lsp"
)

// Indicator renders a Handle to the user. Implementations are called from the goroutine that changed the
// handle and must neither block nor call back into the Registry.
type Indicator interface {
	Update(h *Handle)
	Finish(h *Handle)
}

// IndicatorFactory creates the user visible indicator of a handle. Creation may block briefly.
type IndicatorFactory interface {
	NewIndicator(h *Handle) (Indicator, error)
}

// Handle is one observable long-running operation.
type Handle struct {
	token  lsp.ProgressToken
	remote bool
	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once

	onUserCancel func(h *Handle)

	mutex         sync.Mutex
	title         string
	message       string
	fraction      float64
	indeterminate bool
	cancelled     bool
	indicator     Indicator
}

func newHandle(parent context.Context, token lsp.ProgressToken, title, message string, percentage int) *Handle {
	ctx, cancel := context.WithCancel(parent)
	h := &Handle{
		token:         token,
		ctx:           ctx,
		cancel:        cancel,
		title:         title,
		message:       message,
		indeterminate: true,
	}
	h.applyPercentage(percentage)
	return h
}

func (h *Handle) Token() lsp.ProgressToken {
	return h.token
}

func (h *Handle) Title() string {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return h.title
}

func (h *Handle) Message() string {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return h.message
}

// Fraction returns the completion between 0.0 and 1.0. It is meaningless while the handle is indeterminate.
func (h *Handle) Fraction() float64 {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return h.fraction
}

func (h *Handle) IsIndeterminate() bool {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return h.indeterminate
}

// IsCancelled reports whether the user asked to stop the operation.
func (h *Handle) IsCancelled() bool {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return h.cancelled
}

// Context is cancelled once the handle leaves the registry, for whatever reason.
func (h *Handle) Context() context.Context {
	return h.ctx
}

func (h *Handle) Done() <-chan struct{} {
	return h.ctx.Done()
}

// IsActive reports whether the handle is still registered and running.
func (h *Handle) IsActive() bool {
	return h.ctx.Err() == nil
}

// Cancel is called when the user stops the operation. The handle is evicted from its registry.
func (h *Handle) Cancel() {
	h.mutex.Lock()
	h.cancelled = true
	h.mutex.Unlock()
	if h.onUserCancel != nil {
		h.onUserCancel(h)
	}
	h.stop()
}

func (h *Handle) setIndicator(indicator Indicator) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.indicator = indicator
}

func (h *Handle) currentIndicator() Indicator {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return h.indicator
}

func (h *Handle) report(message string, percentage int) {
	h.mutex.Lock()
	if message != "" {
		h.message = message
	}
	h.applyPercentage(percentage)
	h.mutex.Unlock()

	if indicator := h.currentIndicator(); indicator != nil {
		indicator.Update(h)
	}
}

func (h *Handle) end(message string) {
	h.mutex.Lock()
	if message != "" {
		h.message = message
	}
	if !h.indeterminate {
		h.fraction = 1
	}
	h.mutex.Unlock()
}

// applyPercentage must be called with the mutex held. Once determinate, the fraction only grows.
func (h *Handle) applyPercentage(percentage int) {
	if percentage <= 0 {
		return
	}
	if percentage > 100 {
		percentage = 100
	}
	fraction := float64(percentage) / 100
	if h.indeterminate || fraction > h.fraction {
		h.fraction = fraction
	}
	h.indeterminate = false
}

// stop signals the cancellation primitive and finishes the indicator, once.
func (h *Handle) stop() {
	h.once.Do(func() {
		h.cancel()
		if indicator := h.currentIndicator(); indicator != nil {
			indicator.Finish(h)
		}
	})
}
