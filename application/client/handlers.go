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
	"encoding/json"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/handler"
	"github.com/rs/zerolog"
	sglsp "github.com/sourcegraph/go-lsp"

	"github.com/snyk/snyk-ide-core/internal/lsp"
	"github.com/snyk/snyk-ide-core/internal/notification"
	"github.com/snyk/snyk-ide-core/internal/product"
	"github.com/snyk/snyk-ide-core/internal/types"
	"github.com/snyk/snyk-ide-core/internal/uri"
)

const defaultScanErrorMessage = "scan failed"

func snykScanHandler(cl *Client) jrpc2.Handler {
	return handler.New(func(_ context.Context, params lsp.SnykScanParams) (any, error) {
		logger := cl.logger.With().Str("method", "snykScanHandler").
			Str("product", params.Product).
			Str("folderPath", params.FolderPath).
			Str("status", params.Status).Logger()

		p := product.ToProduct(params.Product)
		if !p.IsKnown() {
			logger.Debug().Msg("ignoring scan notification for unknown product")
			return nil, nil
		}

		folder := types.FilePath(params.FolderPath)
		target := types.NewScanTarget(folder, p)
		projects := cl.openProjectsContaining(folder)

		switch product.ToScanStatus(params.Status) {
		case product.ScanStatusInProgress:
			if !cl.tracker.TryMarkInProgress(target) {
				logger.Trace().Msg("scan already in progress")
				return nil, nil
			}
			cl.sendToProjects(projects, notification.ScanStartedEvent{Product: p, FolderPath: folder})
		case product.ScanStatusSuccess:
			cl.tracker.MarkFinished(target)
			cl.sendToProjects(projects, notification.ScanFinishedEvent{Product: p, FolderPath: folder})
		case product.ScanStatusError:
			cl.tracker.MarkFinished(target)
			message := params.ErrorMessage
			if message == "" {
				message = defaultScanErrorMessage
			}
			logger.Info().Str("error", message).Msg("scan failed")
			cl.sendToProjects(projects, notification.ScanErrorEvent{
				Product: p,
				Error:   types.SnykError{Message: message, Path: string(folder)},
			})
		default:
			logger.Debug().Msg("ignoring unknown scan status")
		}
		return nil, nil
	})
}

func publishDiagnosticsHandler(cl *Client) jrpc2.Handler {
	return handler.New(func(_ context.Context, params lsp.PublishDiagnosticsParams) (any, error) {
		cl.bridge.Publish(params)
		return nil, nil
	})
}

func progressHandler(cl *Client) jrpc2.Handler {
	return handler.New(func(_ context.Context, params lsp.ProgressParams) (any, error) {
		logger := cl.logger.With().Str("method", "progressHandler").Str("token", string(params.Token)).Logger()

		var kind lsp.WorkDoneProgressKind
		if err := json.Unmarshal(params.Value, &kind); err != nil {
			return nil, err
		}

		switch kind.Kind {
		case lsp.WorkDoneProgressBeginKind:
			var begin lsp.WorkDoneProgressBegin
			if err := json.Unmarshal(params.Value, &begin); err != nil {
				return nil, err
			}
			// the indicator is created asynchronously, later events for the token are buffered until it exists
			cl.registry.OnBegin(params.Token, begin.Title, begin.Message, begin.Percentage)
		case lsp.WorkDoneProgressReportKind:
			var report lsp.WorkDoneProgressReport
			if err := json.Unmarshal(params.Value, &report); err != nil {
				return nil, err
			}
			cl.registry.OnReport(params.Token, report.Message, report.Percentage)
		case lsp.WorkDoneProgressEndKind:
			var end lsp.WorkDoneProgressEnd
			if err := json.Unmarshal(params.Value, &end); err != nil {
				return nil, err
			}
			cl.registry.OnEnd(params.Token, end.Message)
		default:
			logger.Debug().Str("kind", kind.Kind).Msg("ignoring unknown progress kind")
		}
		return nil, nil
	})
}

func hasAuthenticatedHandler(cl *Client) jrpc2.Handler {
	return handler.New(func(_ context.Context, params lsp.AuthenticationParams) (any, error) {
		logger := cl.logger.With().Str("method", "hasAuthenticatedHandler").Logger()
		if params.ApiUrl != "" && params.ApiUrl != cl.c.Endpoint() {
			cl.c.SetEndpoint(params.ApiUrl)
		}
		if params.Token == cl.c.Token() {
			logger.Debug().Msg("token unchanged")
			return nil, nil
		}
		cl.c.SetToken(params.Token)
		logger.Info().Bool("authenticated", params.Token != "").Msg("token updated")

		// the connection the notification arrived on is used for the configuration push, so it must not
		// be used from the dispatch goroutine
		go cl.afterAuthentication(params.Token != "")
		return nil, nil
	})
}

func (cl *Client) afterAuthentication(authenticated bool) {
	if pusher := cl.configurationPusher(); pusher != nil {
		if err := pusher.UpdateConfiguration(context.Background()); err != nil {
			cl.logger.Warn().Err(err).Str("method", "afterAuthentication").Msg("could not push configuration")
		}
	}
	if !authenticated || !cl.c.IsScanOnSave() || cl.IsDisposed() {
		return
	}
	for _, p := range cl.workspace.Projects() {
		if p.IsDisposed() {
			continue
		}
		cl.scanner.Scan(p, false)
	}
}

func addTrustedFoldersHandler(cl *Client) jrpc2.Handler {
	return handler.New(func(_ context.Context, params lsp.SnykTrustedFoldersParams) (any, error) {
		for _, folder := range params.TrustedFolders {
			cl.c.AddTrustedFolder(types.FilePath(folder))
		}
		return nil, nil
	})
}

func folderConfigsHandler(cl *Client) jrpc2.Handler {
	return handler.New(func(_ context.Context, params lsp.FolderConfigsParam) (any, error) {
		folderConfigs := make([]types.FolderConfig, 0, len(params.FolderConfigs))
		for _, fc := range params.FolderConfigs {
			folderConfigs = append(folderConfigs, types.FolderConfig{
				FolderPath:           types.FilePath(fc.FolderPath),
				BaseBranch:           fc.BaseBranch,
				LocalBranches:        fc.LocalBranches,
				AdditionalParameters: fc.AdditionalParameters,
				ReferenceFolderPath:  types.FilePath(fc.ReferenceFolderPath),
				PreferredOrg:         fc.PreferredOrg,
			})
		}
		cl.c.SetFolderConfigs(folderConfigs)
		return nil, nil
	})
}

func isAvailableCliHandler(cl *Client) jrpc2.Handler {
	return handler.New(func(_ context.Context, params lsp.SnykIsAvailableCli) (any, error) {
		if params.CliPath == "" {
			return nil, nil
		}
		cl.c.SetCliPath(params.CliPath)
		return nil, nil
	})
}

func showMessageHandler(cl *Client) jrpc2.Handler {
	return handler.New(func(_ context.Context, params lsp.ShowMessageParams) (any, error) {
		project := cl.workspace.ActiveProject()
		if project == nil {
			cl.logger.Info().Str("method", "showMessageHandler").Msg(params.Message)
			return nil, nil
		}
		project.Notifier().Send(notification.ShowMessageEvent{Type: params.Type, Message: params.Message})
		return nil, nil
	})
}

func logMessageHandler(cl *Client) jrpc2.Handler {
	return handler.New(func(_ context.Context, params lsp.LogMessageParams) (any, error) {
		cl.logger.WithLevel(logLevel(params.Type)).Str("source", "language-server").Msg(params.Message)
		return nil, nil
	})
}

func logTraceHandler(cl *Client) jrpc2.Handler {
	return handler.New(func(_ context.Context, params lsp.LogTraceParams) (any, error) {
		cl.logger.Trace().Str("source", "language-server").Str("verbose", params.Verbose).Msg(params.Message)
		return nil, nil
	})
}

func logLevel(messageType lsp.MessageType) zerolog.Level {
	switch messageType {
	case lsp.Error:
		return zerolog.ErrorLevel
	case lsp.Warning:
		return zerolog.WarnLevel
	case lsp.Info:
		return zerolog.InfoLevel
	default:
		return zerolog.DebugLevel
	}
}

func noOpHandler() jrpc2.Handler {
	return handler.New(func(_ context.Context, _ any) (any, error) {
		return nil, nil
	})
}

func workDoneProgressCreateHandler() jrpc2.Handler {
	return handler.New(func(_ context.Context, _ lsp.WorkDoneProgressCreateParams) (any, error) {
		return nil, nil
	})
}

func refreshHandler(cl *Client) jrpc2.Handler {
	return handler.New(func(_ context.Context, _ any) (any, error) {
		for _, p := range cl.workspace.Projects() {
			if !p.IsDisposed() {
				p.Notifier().Send(notification.RefreshEvent{})
			}
		}
		return nil, nil
	})
}

func applyEditHandler(cl *Client) jrpc2.Handler {
	return handler.New(func(_ context.Context, params lsp.ApplyWorkspaceEditParams) (lsp.ApplyWorkspaceEditResult, error) {
		logger := cl.logger.With().Str("method", "applyEditHandler").Str("label", params.Label).Logger()
		if cl.IsDisposed() {
			return lsp.ApplyWorkspaceEditResult{Applied: false, FailureReason: "client disposed"}, nil
		}
		if params.Edit == nil || len(params.Edit.Changes) == 0 {
			return lsp.ApplyWorkspaceEditResult{Applied: true}, nil
		}

		paths := make([]types.FilePath, 0, len(params.Edit.Changes))
		for documentURI := range params.Edit.Changes {
			path, err := uri.PathFromUri(sglsp.DocumentURI(documentURI))
			if err != nil {
				logger.Warn().Err(err).Str("uri", documentURI).Msg("skipping non-file uri")
				continue
			}
			paths = append(paths, path)
		}

		project := cl.workspace.GuessProject(paths)
		if project == nil || project.IsDisposed() {
			return lsp.ApplyWorkspaceEditResult{Applied: false, FailureReason: "no open project for edit"}, nil
		}

		if err := cl.editApplier.ApplyEdit(params.Edit); err != nil {
			logger.Warn().Err(err).Msg("could not apply edit")
			return lsp.ApplyWorkspaceEditResult{Applied: false, FailureReason: err.Error()}, nil
		}
		project.Notifier().Send(notification.RefreshEvent{})
		return lsp.ApplyWorkspaceEditResult{Applied: true}, nil
	})
}
