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

package diagnostics

import (
	"bytes"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/snyk/snyk-ide-core/domain/ide/workspace"
	"github.com/snyk/snyk-ide-core/internal/lsp"
	"github.com/snyk/snyk-ide-core/internal/notification"
	"github.com/snyk/snyk-ide-core/internal/product"
	"github.com/snyk/snyk-ide-core/internal/types"
	"github.com/snyk/snyk-ide-core/internal/uri"
)

// DefaultTrackedProducts are the products whose issues arrive as diagnostics.
var DefaultTrackedProducts = []product.Product{
	product.ProductOpenSource,
	product.ProductCode,
	product.ProductInfrastructureAsCode,
}

// Bridge turns diagnostics batches into per product issue lists and sends them to every project that
// contains the file.
type Bridge struct {
	logger          *zerolog.Logger
	workspace       *workspace.Workspace
	trackedProducts []product.Product
}

func NewBridge(logger *zerolog.Logger, w *workspace.Workspace, trackedProducts ...product.Product) *Bridge {
	if len(trackedProducts) == 0 {
		trackedProducts = DefaultTrackedProducts
	}
	l := logger.With().Str("component", "diagnostics.Bridge").Logger()
	return &Bridge{logger: &l, workspace: w, trackedProducts: trackedProducts}
}

func (b *Bridge) Publish(params lsp.PublishDiagnosticsParams) {
	logger := b.logger.With().Str("method", "Publish").Str("uri", string(params.URI)).Logger()
	path, err := uri.PathFromUri(params.URI)
	if err != nil {
		logger.Warn().Err(err).Msg("ignoring diagnostics")
		return
	}

	projects := b.openProjectsContaining(path)
	if len(projects) == 0 {
		logger.Debug().Msg("no open project contains file")
		return
	}

	if len(params.Diagnostics) == 0 {
		for _, p := range projects {
			for _, tracked := range b.trackedProducts {
				p.Notifier().Send(notification.DiagnosticsEvent{Product: tracked, File: path, Issues: []lsp.ScanIssue{}})
			}
		}
		return
	}

	source := product.FromSource(params.Diagnostics[0].Source)
	if !source.IsKnown() {
		logger.Debug().Str("source", params.Diagnostics[0].Source).Msg("ignoring diagnostics of unknown product")
		return
	}

	issues := b.decodeIssues(&logger, params.Diagnostics)
	for _, p := range projects {
		p.Notifier().Send(notification.DiagnosticsEvent{Product: source, File: path, Issues: issues})
	}
}

func (b *Bridge) decodeIssues(logger *zerolog.Logger, diagnostics []lsp.Diagnostic) []lsp.ScanIssue {
	issues := make([]lsp.ScanIssue, 0, len(diagnostics))
	for i, d := range diagnostics {
		data := bytes.TrimSpace(d.Data)
		if len(data) == 0 || bytes.Equal(data, []byte("null")) {
			logger.Debug().Int("index", i).Msg("skipping diagnostic without issue data")
			continue
		}
		var issue lsp.ScanIssue
		if err := json.Unmarshal(data, &issue); err != nil {
			logger.Warn().Err(err).Int("index", i).Msg("skipping diagnostic with malformed issue data")
			continue
		}
		issues = append(issues, issue)
	}
	return issues
}

func (b *Bridge) openProjectsContaining(path types.FilePath) []*workspace.Project {
	var open []*workspace.Project
	for _, p := range b.workspace.ProjectsContaining(path) {
		if !p.IsDisposed() {
			open = append(open, p)
		}
	}
	return open
}
