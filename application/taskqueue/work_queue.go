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

package taskqueue

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/snyk/snyk-ide-core/domain/observability/error_reporting"
)

// Task is a unit of work of a WorkQueue. ctx is cancelled when the task is cancelled or the queue disposed.
type Task func(ctx context.Context)

type queuedTask struct {
	id    string
	title string
	run   Task
}

type runningTask struct {
	queuedTask
	cancel context.CancelCauseFunc
}

// WorkQueue executes its tasks one at a time in submission order on its own goroutine. Independent
// queues run concurrently.
type WorkQueue struct {
	name          string
	logger        zerolog.Logger
	errorReporter error_reporting.ErrorReporter
	mutex         sync.Mutex
	wakeUp        *sync.Cond
	pending       []queuedTask
	current       *runningTask
	disposed      bool
	ctx           context.Context
	cancel        context.CancelFunc
	done          chan struct{}
}

func NewWorkQueue(name string, logger *zerolog.Logger, errorReporter error_reporting.ErrorReporter) *WorkQueue {
	ctx, cancel := context.WithCancel(context.Background())
	q := &WorkQueue{
		name:          name,
		logger:        logger.With().Str("queue", name).Logger(),
		errorReporter: errorReporter,
		ctx:           ctx,
		cancel:        cancel,
		done:          make(chan struct{}),
	}
	q.wakeUp = sync.NewCond(&q.mutex)
	go q.loop()
	return q
}

func (q *WorkQueue) Name() string {
	return q.name
}

// Run enqueues task and returns its id. A disposed queue rejects the task.
func (q *WorkQueue) Run(title string, task Task) (string, bool) {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	if q.disposed {
		q.logger.Debug().Str("method", "Run").Str("title", title).Msg("queue disposed, rejecting task")
		return "", false
	}
	id := uuid.NewString()
	q.pending = append(q.pending, queuedTask{id: id, title: title, run: task})
	q.wakeUp.Signal()
	return id, true
}

// CancelCurrent cancels the executing task and reports whether there was one.
func (q *WorkQueue) CancelCurrent() bool {
	return q.CancelCurrentWithCause(nil)
}

// CancelCurrentWithCause is CancelCurrent, with context.Cause of the task's context reporting cause.
// A nil cause reports context.Canceled.
func (q *WorkQueue) CancelCurrentWithCause(cause error) bool {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	if q.current == nil {
		return false
	}
	q.logger.Debug().Str("method", "CancelCurrent").Str("title", q.current.title).Msg("cancelling task")
	q.current.cancel(cause)
	return true
}

func (q *WorkQueue) IsRunning() bool {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	return q.current != nil
}

// Len is the number of tasks waiting, not counting the executing one.
func (q *WorkQueue) Len() int {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	return len(q.pending)
}

// Dispose drops waiting tasks, cancels the executing one and stops the worker. It does not wait for the
// executing task to return; use Done for that.
func (q *WorkQueue) Dispose() {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	if q.disposed {
		return
	}
	q.disposed = true
	q.pending = nil
	q.cancel()
	q.wakeUp.Broadcast()
}

// Done is closed when the worker has stopped after Dispose.
func (q *WorkQueue) Done() <-chan struct{} {
	return q.done
}

func (q *WorkQueue) loop() {
	defer close(q.done)
	for {
		q.mutex.Lock()
		for len(q.pending) == 0 && !q.disposed {
			q.wakeUp.Wait()
		}
		if q.disposed {
			q.mutex.Unlock()
			return
		}
		task := q.pending[0]
		q.pending = q.pending[1:]
		ctx, cancel := context.WithCancelCause(q.ctx)
		q.current = &runningTask{queuedTask: task, cancel: cancel}
		q.mutex.Unlock()

		q.execute(ctx, task)
		cancel(nil)

		q.mutex.Lock()
		q.current = nil
		q.mutex.Unlock()
	}
}

func (q *WorkQueue) execute(ctx context.Context, task queuedTask) {
	logger := q.logger.With().Str("method", "execute").Str("task", task.title).Str("id", task.id).Logger()
	defer func() {
		if r := recover(); r != nil {
			err := errors.Errorf("task %q of queue %s panicked: %v", task.title, q.name, r)
			logger.Error().Err(err).Msg("recovered from panic")
			q.errorReporter.CaptureError(err)
		}
	}()
	logger.Debug().Msg("task started")
	task.run(ctx)
	logger.Debug().Msg("task finished")
}
