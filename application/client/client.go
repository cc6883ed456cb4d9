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
	"context"
	"sync"
	"time"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/handler"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/snyk/snyk-ide-core/application/config"
	"github.com/snyk/snyk-ide-core/domain/ide/diagnostics"
	"github.com/snyk/snyk-ide-core/domain/ide/workspace"
	"github.com/snyk/snyk-ide-core/domain/observability/error_reporting"
	"github.com/snyk/snyk-ide-core/domain/scanstates"
	"github.com/snyk/snyk-ide-core/internal/concurrency"
	"github.com/snyk/snyk-ide-core/internal/lsp"
	"github.com/snyk/snyk-ide-core/internal/progress"
	"github.com/snyk/snyk-ide-core/internal/types"
)

const DefaultMessageRequestTimeout = 10 * time.Second

// Dependencies are the components the client dispatches server messages to.
type Dependencies struct {
	Workspace        *workspace.Workspace
	Tracker          *scanstates.Tracker
	Registry         *progress.Registry
	Bridge           *diagnostics.Bridge
	Scanner          WorkspaceScanner
	EditApplier      EditApplier
	MessageRequester MessageRequester
	ErrorReporter    error_reporting.ErrorReporter
}

type Option func(cl *Client)

func WithMessageRequestTimeout(timeout time.Duration) Option {
	return func(cl *Client) {
		cl.messageRequestTimeout = timeout
	}
}

// Client handles the requests and notifications the language server sends to the IDE.
type Client struct {
	c                *config.Config
	logger           *zerolog.Logger
	workspace        *workspace.Workspace
	tracker          *scanstates.Tracker
	registry         *progress.Registry
	bridge           *diagnostics.Bridge
	scanner          WorkspaceScanner
	editApplier      EditApplier
	messageRequester MessageRequester
	errorReporter    error_reporting.ErrorReporter

	pusherMutex sync.RWMutex
	pusher      ConfigurationPusher

	notifications handler.Map
	callbacks     handler.Map
	// alwaysHandled are the methods that are dispatched also after disposal.
	alwaysHandled map[string]bool

	messageRequestSlot    chan struct{}
	messageRequestTimeout time.Duration

	disposed concurrency.AtomicBool
}

func New(c *config.Config, deps Dependencies, opts ...Option) *Client {
	l := c.Logger().With().Str("component", "client.Client").Logger()
	cl := &Client{
		c:                     c,
		logger:                &l,
		workspace:             deps.Workspace,
		tracker:               deps.Tracker,
		registry:              deps.Registry,
		bridge:                deps.Bridge,
		scanner:               deps.Scanner,
		editApplier:           deps.EditApplier,
		messageRequester:      deps.MessageRequester,
		errorReporter:         deps.ErrorReporter,
		messageRequestSlot:    make(chan struct{}, 1),
		messageRequestTimeout: DefaultMessageRequestTimeout,
	}
	for _, opt := range opts {
		opt(cl)
	}
	cl.initHandlers()
	return cl
}

func (cl *Client) initHandlers() {
	cl.notifications = handler.Map{
		lsp.MethodSnykScan:           snykScanHandler(cl),
		lsp.MethodPublishDiagnostics: publishDiagnosticsHandler(cl),
		lsp.MethodProgress:           progressHandler(cl),
		lsp.MethodHasAuthenticated:   hasAuthenticatedHandler(cl),
		lsp.MethodAddTrustedFolders:  addTrustedFoldersHandler(cl),
		lsp.MethodFolderConfigs:      folderConfigsHandler(cl),
		lsp.MethodIsAvailableCli:     isAvailableCliHandler(cl),
		lsp.MethodShowMessage:        showMessageHandler(cl),
		lsp.MethodLogMessage:         logMessageHandler(cl),
		lsp.MethodLogTrace:           logTraceHandler(cl),
		lsp.MethodTelemetryEvent:     noOpHandler(),
	}
	cl.callbacks = handler.Map{
		lsp.MethodWorkDoneProgressCreate: workDoneProgressCreateHandler(),
		lsp.MethodApplyEdit:              applyEditHandler(cl),
		lsp.MethodShowMessageRequest:     showMessageRequestHandler(cl),
		lsp.MethodCodeLensRefresh:        refreshHandler(cl),
		lsp.MethodInlineValueRefresh:     refreshHandler(cl),
	}
	cl.alwaysHandled = map[string]bool{
		lsp.MethodLogMessage:             true,
		lsp.MethodLogTrace:               true,
		lsp.MethodWorkDoneProgressCreate: true,
		lsp.MethodApplyEdit:              true,
	}
}

// ClientOptions binds the client to a jrpc2 connection.
func (cl *Client) ClientOptions() *jrpc2.ClientOptions {
	return &jrpc2.ClientOptions{
		OnNotify:   cl.handleNotification,
		OnCallback: cl.handleCallback,
		OnStop: func(_ *jrpc2.Client, err error) {
			cl.logger.Info().Err(err).Msg("connection to language server stopped")
		},
	}
}

// SetConfigurationPusher sets where configuration changes are sent. The pusher usually owns the connection
// the client is bound to, so it is set after construction.
func (cl *Client) SetConfigurationPusher(pusher ConfigurationPusher) {
	cl.pusherMutex.Lock()
	defer cl.pusherMutex.Unlock()
	cl.pusher = pusher
}

func (cl *Client) configurationPusher() ConfigurationPusher {
	cl.pusherMutex.RLock()
	defer cl.pusherMutex.RUnlock()
	return cl.pusher
}

func (cl *Client) handleNotification(req *jrpc2.Request) {
	_, _ = cl.dispatch(context.Background(), cl.notifications, req)
}

func (cl *Client) handleCallback(ctx context.Context, req *jrpc2.Request) (any, error) {
	return cl.dispatch(ctx, cl.callbacks, req)
}

func (cl *Client) dispatch(ctx context.Context, handlers handler.Map, req *jrpc2.Request) (result any, err error) {
	method := req.Method()
	logger := cl.logger.With().Str("method", method).Logger()
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("panic in handler for %s: %v", method, r)
			logger.Error().Err(err).Msg("recovered from panic")
			if cl.errorReporter != nil {
				cl.errorReporter.CaptureError(err)
			}
		}
	}()

	if cl.IsDisposed() && !cl.alwaysHandled[method] {
		logger.Debug().Msg("client disposed, dropping message")
		return nil, nil
	}

	h, ok := handlers[method]
	if !ok {
		logger.Debug().Msg("no handler registered")
		return nil, errors.Errorf("method %q not supported", method)
	}

	result, err = h(ctx, req)
	if err != nil {
		logger.Warn().Err(err).Msg("handling message failed")
	}
	return result, err
}

func (cl *Client) openProjectsContaining(path types.FilePath) []*workspace.Project {
	var open []*workspace.Project
	for _, p := range cl.workspace.ProjectsContaining(path) {
		if !p.IsDisposed() {
			open = append(open, p)
		}
	}
	return open
}

func (cl *Client) sendToProjects(projects []*workspace.Project, event any) {
	for _, p := range projects {
		p.Notifier().Send(event)
	}
}

// Dispose turns all handlers into no-ops, except logging and the requests the protocol requires an answer for.
func (cl *Client) Dispose() {
	if !cl.disposed.CompareAndSwap(false, true) {
		return
	}
	cl.logger.Debug().Msg("disposed")
}

func (cl *Client) IsDisposed() bool {
	return cl.disposed.Get()
}
