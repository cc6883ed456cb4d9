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

//go:generate mockgen -source=collaborators.go -destination mock_client/collaborators_mock.go -package mock_client

import (
	"context"

	sglsp "github.com/sourcegraph/go-lsp"

	"github.com/snyk/snyk-ide-core/domain/ide/workspace"
	"github.com/snyk/snyk-ide-core/internal/lsp"
)

// WorkspaceScanner starts a scan of a project. Scans run asynchronously.
type WorkspaceScanner interface {
	Scan(project *workspace.Project, isStartup bool)
}

// EditApplier writes all changes of a workspace edit or none of them.
type EditApplier interface {
	ApplyEdit(edit *sglsp.WorkspaceEdit) error
}

// ConfigurationPusher sends the current settings to the language server.
type ConfigurationPusher interface {
	UpdateConfiguration(ctx context.Context) error
}

// MessageRequester presents a choice to the user. respond may be called at most once with the title of
// the chosen action; the returned function removes the presentation again.
type MessageRequester interface {
	ShowMessageRequest(project *workspace.Project, params lsp.ShowMessageRequestParams, respond func(title string)) (dismiss func())
}
