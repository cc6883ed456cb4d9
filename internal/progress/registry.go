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
	"hash/fnv"
	"sync"
	"time"

	"github.com/erni27/imcache"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/snyk/snyk-ide-core/internal/lsp"
)

const (
	DefaultTimeout = 10 * time.Second
	lockStripes    = 64
)

// CancelSender tells the language server that the user cancelled one of its operations.
type CancelSender interface {
	CancelProgress(token lsp.ProgressToken)
}

type pendingReport struct {
	message    string
	percentage int
}

// Registry tracks in-flight progress operations by token. Events for a token are applied in the order
// begin, reports, end, also when reports or the end arrive before the begin has been processed.
type Registry struct {
	logger     *zerolog.Logger
	indicators IndicatorFactory
	timeout    time.Duration

	cancelSenderMutex sync.RWMutex
	cancelSender      CancelSender

	handles        *imcache.Cache[lsp.ProgressToken, *Handle]
	pendingReports *imcache.Cache[lsp.ProgressToken, []pendingReport]
	pendingEnds    *imcache.Cache[lsp.ProgressToken, string]
	locks          [lockStripes]sync.Mutex
}

type Option func(r *Registry)

// WithTimeout sets how long an idle handle or a buffered event is kept.
func WithTimeout(timeout time.Duration) Option {
	return func(r *Registry) {
		r.timeout = timeout
	}
}

func WithCancelSender(sender CancelSender) Option {
	return func(r *Registry) {
		r.cancelSender = sender
	}
}

func NewRegistry(logger *zerolog.Logger, indicators IndicatorFactory, opts ...Option) *Registry {
	l := logger.With().Str("component", "progress.Registry").Logger()
	r := &Registry{
		logger:     &l,
		indicators: indicators,
		timeout:    DefaultTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}

	cleanerInterval := r.timeout / 4
	r.handles = imcache.New[lsp.ProgressToken, *Handle](
		imcache.WithEvictionCallbackOption[lsp.ProgressToken, *Handle](r.onEviction),
		imcache.WithCleanerOption[lsp.ProgressToken, *Handle](cleanerInterval),
	)
	r.pendingReports = imcache.New[lsp.ProgressToken, []pendingReport](
		imcache.WithDefaultExpirationOption[lsp.ProgressToken, []pendingReport](r.timeout),
		imcache.WithCleanerOption[lsp.ProgressToken, []pendingReport](cleanerInterval),
	)
	r.pendingEnds = imcache.New[lsp.ProgressToken, string](
		imcache.WithDefaultExpirationOption[lsp.ProgressToken, string](r.timeout),
		imcache.WithCleanerOption[lsp.ProgressToken, string](cleanerInterval),
	)
	return r
}

func (r *Registry) SetCancelSender(sender CancelSender) {
	r.cancelSenderMutex.Lock()
	defer r.cancelSenderMutex.Unlock()
	r.cancelSender = sender
}

// OnBegin creates the handle for token. The indicator is created on a separate goroutine; the returned
// channel is closed once the handle is visible and all buffered events for the token have been applied.
func (r *Registry) OnBegin(token lsp.ProgressToken, title, message string, percentage int) <-chan struct{} {
	h := newHandle(context.Background(), token, title, message, percentage)
	h.remote = true
	h.onUserCancel = r.userCancelled
	ready := make(chan struct{})
	go func() {
		defer close(ready)
		r.register(h, imcache.WithSlidingExpiration(r.timeout))
	}()
	return ready
}

// Start creates and registers a handle for work done by the client itself. Such handles do not expire;
// they are cancelled with parent and must be ended with Finish.
func (r *Registry) Start(parent context.Context, title string) *Handle {
	h := newHandle(parent, lsp.ProgressToken(uuid.NewString()), title, "", 0)
	h.onUserCancel = r.userCancelled
	r.register(h, imcache.WithNoExpiration())
	return h
}

// Finish ends a handle created with Start.
func (r *Registry) Finish(h *Handle, message string) {
	r.OnEnd(h.Token(), message)
}

func (r *Registry) register(h *Handle, expiration imcache.Expiration) {
	logger := r.logger.With().Str("method", "register").Str("token", string(h.token)).Logger()
	if r.indicators != nil {
		indicator, err := r.indicators.NewIndicator(h)
		if err != nil {
			logger.Err(err).Msg("could not create progress indicator")
			h.stop()
			return
		}
		h.setIndicator(indicator)
	}

	lock := r.lockFor(h.token)
	lock.Lock()
	defer lock.Unlock()

	r.handles.Set(h.token, h, expiration)

	reports, _ := r.pendingReports.Get(h.token)
	r.pendingReports.Remove(h.token)
	for _, report := range reports {
		h.report(report.message, report.percentage)
	}

	if message, ok := r.pendingEnds.Get(h.token); ok {
		r.pendingEnds.Remove(h.token)
		h.end(message)
		r.handles.Remove(h.token)
	}
	logger.Debug().Int("replayedReports", len(reports)).Msg("progress registered")
}

// OnReport updates the handle of token or, if the begin has not been processed yet, buffers the report.
func (r *Registry) OnReport(token lsp.ProgressToken, message string, percentage int) {
	lock := r.lockFor(token)
	lock.Lock()
	defer lock.Unlock()

	if h, ok := r.handles.Get(token); ok {
		h.report(message, percentage)
		return
	}

	reports, _ := r.pendingReports.Get(token)
	reports = append(reports, pendingReport{message: message, percentage: percentage})
	r.pendingReports.Set(token, reports, imcache.WithDefaultExpiration())
}

// OnEnd sets the final message of the handle of token and evicts it. Without a handle the end is kept
// until a begin arrives, replacing any end buffered before.
func (r *Registry) OnEnd(token lsp.ProgressToken, message string) {
	lock := r.lockFor(token)
	lock.Lock()
	defer lock.Unlock()

	if h, ok := r.handles.Get(token); ok {
		h.end(message)
		r.handles.Remove(token)
		return
	}
	r.pendingEnds.Set(token, message, imcache.WithDefaultExpiration())
}

// Get returns the handle of token. A missing handle means the operation finished or never existed.
func (r *Registry) Get(token lsp.ProgressToken) (*Handle, bool) {
	return r.handles.Get(token)
}

func (r *Registry) Len() int {
	return r.handles.Len()
}

// CancelAll cancels every registered handle.
func (r *Registry) CancelAll() {
	for _, h := range r.handles.GetAll() {
		h.Cancel()
	}
}

func (r *Registry) Close() {
	r.handles.RemoveAll()
	r.handles.Close()
	r.pendingReports.Close()
	r.pendingEnds.Close()
}

func (r *Registry) userCancelled(h *Handle) {
	lock := r.lockFor(h.token)
	lock.Lock()
	if current, ok := r.handles.Get(h.token); ok && current == h {
		r.handles.Remove(h.token)
	}
	lock.Unlock()

	if !h.remote {
		return
	}
	r.cancelSenderMutex.RLock()
	sender := r.cancelSender
	r.cancelSenderMutex.RUnlock()
	if sender != nil {
		sender.CancelProgress(h.token)
	}
}

func (r *Registry) onEviction(token lsp.ProgressToken, h *Handle, reason imcache.EvictionReason) {
	r.logger.Debug().Str("method", "onEviction").Str("token", string(token)).Interface("reason", reason).Msg("progress evicted")
	h.stop()
}

func (r *Registry) lockFor(token lsp.ProgressToken) *sync.Mutex {
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(token))
	return &r.locks[hash.Sum32()%lockStripes]
}
