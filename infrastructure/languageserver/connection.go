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

package languageserver

import (
	"context"
	"os"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/creachadair/jrpc2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	sglsp "github.com/sourcegraph/go-lsp"
	"golang.org/x/sync/errgroup"

	"github.com/snyk/snyk-ide-core/application/config"
	"github.com/snyk/snyk-ide-core/domain/ide/workspace"
	"github.com/snyk/snyk-ide-core/internal/concurrency"
	"github.com/snyk/snyk-ide-core/internal/lsp"
	"github.com/snyk/snyk-ide-core/internal/types"
	"github.com/snyk/snyk-ide-core/internal/uri"
)

const (
	connectRetryInterval = 100 * time.Millisecond
	// 300 retries of 100ms wait up to 30 seconds for the server to come up
	connectMaxRetries = 300
)

var ErrNotInitialized = errors.New("language server not initialized")

// Connection sends requests and notifications from the IDE to the language server.
type Connection struct {
	c      *config.Config
	logger *zerolog.Logger
	rpc    *jrpc2.Client

	initialized concurrency.AtomicBool
	shutdown    concurrency.AtomicBool

	retryInterval time.Duration
	maxRetries    uint64
}

func NewConnection(c *config.Config, rpc *jrpc2.Client) *Connection {
	l := c.Logger().With().Str("component", "languageserver.Connection").Logger()
	return &Connection{
		c:             c,
		logger:        &l,
		rpc:           rpc,
		retryInterval: connectRetryInterval,
		maxRetries:    connectMaxRetries,
	}
}

func (s *Connection) IsInitialized() bool {
	return s.initialized.Get()
}

// Initialize runs the initialize handshake with the folders of all open projects.
func (s *Connection) Initialize(ctx context.Context, projects []*workspace.Project) (lsp.InitializeResult, error) {
	logger := s.logger.With().Str("method", "Initialize").Logger()
	var folders []lsp.WorkspaceFolder
	for _, p := range projects {
		folders = append(folders, workspaceFolders(p)...)
	}

	params := lsp.InitializeParams{
		ProcessID:             os.Getpid(),
		ClientInfo:            sglsp.ClientInfo{Name: config.IntegrationName, Version: config.Version},
		InitializationOptions: s.c.LspSettings(),
		Capabilities:          clientCapabilities(),
		WorkspaceFolders:      folders,
	}
	if len(folders) > 0 {
		params.RootURI = folders[0].Uri
	}

	var result lsp.InitializeResult
	if err := s.rpc.CallResult(ctx, lsp.MethodInitialize, params, &result); err != nil {
		return result, errors.Wrap(err, "initialize failed")
	}
	if err := s.rpc.Notify(ctx, lsp.MethodInitialized, lsp.InitializedParams{}); err != nil {
		return result, errors.Wrap(err, "initialized notification failed")
	}
	s.initialized.Set(true)
	logger.Info().Str("server", result.ServerInfo.Name).Str("version", result.ServerInfo.Version).Msg("language server initialized")
	return result, nil
}

func clientCapabilities() lsp.ClientCapabilities {
	capabilities := lsp.ClientCapabilities{}
	capabilities.Workspace.ApplyEdit = true
	capabilities.Workspace.WorkspaceFolders = true
	capabilities.Workspace.Configuration = true
	capabilities.Workspace.CodeLens.RefreshSupport = true
	capabilities.Workspace.InlineValue.RefreshSupport = true
	capabilities.Window.WorkDoneProgress = true
	return capabilities
}

func workspaceFolders(p *workspace.Project) []lsp.WorkspaceFolder {
	roots := p.ContentRoots()
	folders := make([]lsp.WorkspaceFolder, 0, len(roots))
	for _, root := range roots {
		folders = append(folders, lsp.WorkspaceFolder{Uri: uri.PathToUri(root), Name: p.Name()})
	}
	return folders
}

// SendScanCommand asks the server to scan every content root of project with Snyk Open Source and Snyk Code.
func (s *Connection) SendScanCommand(ctx context.Context, project *workspace.Project) error {
	if !s.IsInitialized() {
		return ErrNotInitialized
	}
	g, ctx := errgroup.WithContext(ctx)
	for _, root := range project.ContentRoots() {
		root := root
		g.Go(func() error {
			return s.executeCommand(ctx, lsp.CommandWorkspaceFolderScan, root)
		})
	}
	return g.Wait()
}

func (s *Connection) executeCommand(ctx context.Context, command string, folder types.FilePath) error {
	s.logger.Debug().Str("method", "executeCommand").Str("command", command).Str("folderPath", string(folder)).Msg("sending")
	params := lsp.ExecuteCommandParams{Command: command, Arguments: []any{string(folder)}}
	if _, err := s.rpc.Call(ctx, lsp.MethodExecuteCommand, params); err != nil {
		return errors.Wrapf(err, "command %s failed for %s", command, folder)
	}
	return nil
}

// UpdateConfiguration pushes the current settings to the server.
func (s *Connection) UpdateConfiguration(ctx context.Context) error {
	if !s.IsInitialized() {
		return ErrNotInitialized
	}
	params := lsp.DidChangeConfigurationParams{Settings: s.c.LspSettings()}
	return errors.Wrap(s.rpc.Notify(ctx, lsp.MethodDidChangeConfiguration, params), "configuration push failed")
}

// AddProject announces the folders of project to the server, waiting for the server to be initialized.
func (s *Connection) AddProject(ctx context.Context, project *workspace.Project) error {
	if err := s.awaitInitialized(ctx); err != nil {
		return err
	}
	return s.changeWorkspaceFolders(ctx, lsp.WorkspaceFoldersChangeEvent{Added: workspaceFolders(project)})
}

func (s *Connection) RemoveProject(ctx context.Context, project *workspace.Project) error {
	if !s.IsInitialized() {
		return ErrNotInitialized
	}
	return s.changeWorkspaceFolders(ctx, lsp.WorkspaceFoldersChangeEvent{Removed: workspaceFolders(project)})
}

func (s *Connection) changeWorkspaceFolders(ctx context.Context, event lsp.WorkspaceFoldersChangeEvent) error {
	params := lsp.DidChangeWorkspaceFoldersParams{Event: event}
	return errors.Wrap(s.rpc.Notify(ctx, lsp.MethodDidChangeWorkspaceFolders, params), "workspace folder change failed")
}

func (s *Connection) awaitInitialized(ctx context.Context) error {
	operation := func() error {
		if s.shutdown.Get() {
			return backoff.Permanent(errors.New("connection shut down"))
		}
		if !s.IsInitialized() {
			return ErrNotInitialized
		}
		return nil
	}
	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewConstantBackOff(s.retryInterval), s.maxRetries), ctx)
	return backoff.Retry(operation, b)
}

// CancelProgress tells the server that the user cancelled the operation reporting progress under token.
func (s *Connection) CancelProgress(token lsp.ProgressToken) {
	if !s.IsInitialized() {
		return
	}
	params := lsp.WorkdoneProgressCancelParams{Token: token}
	if err := s.rpc.Notify(context.Background(), lsp.MethodWorkDoneProgressCancel, params); err != nil {
		s.logger.Warn().Err(err).Str("method", "CancelProgress").Str("token", string(token)).Msg("could not cancel progress")
	}
}

// Shutdown ends the session: shutdown request, exit notification and closing the connection.
func (s *Connection) Shutdown(ctx context.Context) error {
	if !s.shutdown.CompareAndSwap(false, true) {
		return nil
	}
	logger := s.logger.With().Str("method", "Shutdown").Logger()
	if s.IsInitialized() {
		if _, err := s.rpc.Call(ctx, lsp.MethodShutdown, nil); err != nil {
			logger.Debug().Err(err).Msg("shutdown request failed")
		}
		if err := s.rpc.Notify(ctx, lsp.MethodExit, nil); err != nil {
			logger.Debug().Err(err).Msg("exit notification failed")
		}
	}
	s.initialized.Set(false)
	return s.rpc.Close()
}
