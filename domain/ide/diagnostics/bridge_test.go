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
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snyk/snyk-ide-core/domain/ide/workspace"
	"github.com/snyk/snyk-ide-core/domain/scanstates"
	"github.com/snyk/snyk-ide-core/internal/lsp"
	"github.com/snyk/snyk-ide-core/internal/product"
	"github.com/snyk/snyk-ide-core/internal/types"
	"github.com/snyk/snyk-ide-core/internal/uri"
)

type bridgeFixture struct {
	logger    *zerolog.Logger
	workspace *workspace.Workspace
	bridge    *Bridge
	root      types.FilePath
}

func setupBridge(t *testing.T) *bridgeFixture {
	t.Helper()
	logger := zerolog.New(zerolog.NewTestWriter(t))
	w := workspace.New(scanstates.NewTracker())
	return &bridgeFixture{
		logger:    &logger,
		workspace: w,
		bridge:    NewBridge(&logger, w),
		root:      types.FilePath(t.TempDir()),
	}
}

func (f *bridgeFixture) addProject(name string, roots ...types.FilePath) *Cache {
	p := workspace.NewProject(f.logger, name, roots...)
	f.workspace.AddProject(p)
	return NewCache(p)
}

func issueDiagnostic(t *testing.T, source string, id string) lsp.Diagnostic {
	t.Helper()
	data, err := json.Marshal(lsp.ScanIssue{Id: id, Title: "issue " + id, Severity: "high"})
	require.NoError(t, err)
	return lsp.Diagnostic{Source: source, Message: id, Data: data}
}

func Test_Publish_fileInTwoWorkspaces_isDeliveredToBoth(t *testing.T) {
	f := setupBridge(t)
	repo := f.root
	shared := types.FilePath(filepath.Join(string(repo), "shared"))
	file := types.FilePath(filepath.Join(string(shared), "a.py"))
	outer := f.addProject("repo", repo)
	inner := f.addProject("shared", shared)

	f.bridge.Publish(lsp.PublishDiagnosticsParams{
		URI:         uri.PathToUri(file),
		Diagnostics: []lsp.Diagnostic{issueDiagnostic(t, string(product.ProductCode), "1")},
	})

	assert.Len(t, outer.Issues(file, product.ProductCode), 1)
	assert.Len(t, inner.Issues(file, product.ProductCode), 1)
}

func Test_Publish_replacesInsteadOfMerging(t *testing.T) {
	f := setupBridge(t)
	file := types.FilePath(filepath.Join(string(f.root), "package.json"))
	cache := f.addProject("p", f.root)

	f.bridge.Publish(lsp.PublishDiagnosticsParams{URI: uri.PathToUri(file), Diagnostics: []lsp.Diagnostic{
		issueDiagnostic(t, "Snyk Open Source", "a1"),
		issueDiagnostic(t, "Snyk Open Source", "a2"),
	}})
	f.bridge.Publish(lsp.PublishDiagnosticsParams{URI: uri.PathToUri(file), Diagnostics: []lsp.Diagnostic{
		issueDiagnostic(t, "Snyk Open Source", "b1"),
	}})

	issues := cache.Issues(file, product.ProductOpenSource)
	require.Len(t, issues, 1)
	assert.Equal(t, "b1", issues[0].Id)
}

func Test_Publish_emptyBatchClearsAllTrackedProducts(t *testing.T) {
	f := setupBridge(t)
	file := types.FilePath(filepath.Join(string(f.root), "main.tf"))
	cache := f.addProject("p", f.root)
	cache.Update(file, product.ProductCode, []lsp.ScanIssue{{Id: "c"}})
	cache.Update(file, product.ProductOpenSource, []lsp.ScanIssue{{Id: "o"}})
	cache.Update(file, product.ProductInfrastructureAsCode, []lsp.ScanIssue{{Id: "i"}})

	f.bridge.Publish(lsp.PublishDiagnosticsParams{URI: uri.PathToUri(file)})

	assert.Empty(t, cache.Issues(file, product.ProductCode))
	assert.Empty(t, cache.Issues(file, product.ProductOpenSource))
	assert.Empty(t, cache.Issues(file, product.ProductInfrastructureAsCode))
}

func Test_Publish_malformedPayloadIsSkipped(t *testing.T) {
	f := setupBridge(t)
	file := types.FilePath(filepath.Join(string(f.root), "app.js"))
	cache := f.addProject("p", f.root)

	f.bridge.Publish(lsp.PublishDiagnosticsParams{URI: uri.PathToUri(file), Diagnostics: []lsp.Diagnostic{
		issueDiagnostic(t, "Snyk Code", "good1"),
		{Source: "Snyk Code", Data: json.RawMessage(`{"id": 42`)},
		{Source: "Snyk Code"},
		issueDiagnostic(t, "Snyk Code", "good2"),
	}})

	issues := cache.Issues(file, product.ProductCode)
	require.Len(t, issues, 2)
	assert.Equal(t, "good1", issues[0].Id)
	assert.Equal(t, "good2", issues[1].Id)
}

func Test_Publish_unknownSourceIsIgnored(t *testing.T) {
	f := setupBridge(t)
	file := types.FilePath(filepath.Join(string(f.root), "app.js"))
	cache := f.addProject("p", f.root)

	f.bridge.Publish(lsp.PublishDiagnosticsParams{URI: uri.PathToUri(file), Diagnostics: []lsp.Diagnostic{
		issueDiagnostic(t, "eslint", "x"),
	}})

	for _, p := range product.All {
		assert.Empty(t, cache.IssuesByFile(p))
	}
}

func Test_Publish_fileOutsideProjectsIsIgnored(t *testing.T) {
	f := setupBridge(t)
	cache := f.addProject("p", f.root)
	outside := types.FilePath(filepath.Join(t.TempDir(), "other.py"))

	f.bridge.Publish(lsp.PublishDiagnosticsParams{URI: uri.PathToUri(outside), Diagnostics: []lsp.Diagnostic{
		issueDiagnostic(t, "Snyk Code", "x"),
	}})

	assert.Equal(t, 0, cache.IssueCount(product.ProductCode))
}

func Test_Cache_clearedWhenProjectIsRemoved(t *testing.T) {
	f := setupBridge(t)
	file := types.FilePath(filepath.Join(string(f.root), "a.go"))
	cache := f.addProject("p", f.root)
	cache.Update(file, product.ProductCode, []lsp.ScanIssue{{Id: "1"}})

	f.workspace.RemoveProject("p")

	assert.Equal(t, 0, cache.IssueCount(product.ProductCode))
}
