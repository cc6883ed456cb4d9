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
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/snyk/snyk-ide-core/domain/ide/workspace"
	"github.com/snyk/snyk-ide-core/internal/lsp"
	"github.com/snyk/snyk-ide-core/internal/notification"
	"github.com/snyk/snyk-ide-core/internal/product"
	"github.com/snyk/snyk-ide-core/internal/types"
)

type cacheKey struct {
	file    types.FilePath
	product product.Product
}

// Cache is the latest issue list per file and product of one project. Each update replaces the list.
type Cache struct {
	issues  *xsync.MapOf[cacheKey, []lsp.ScanIssue]
	dispose func()
}

// NewCache creates a cache that follows the diagnostics events of p until p is closed.
func NewCache(p *workspace.Project) *Cache {
	c := &Cache{issues: xsync.NewMapOf[cacheKey, []lsp.ScanIssue]()}
	c.dispose = p.Notifier().CreateListener(c.onEvent)
	return c
}

func (c *Cache) onEvent(params any) {
	switch event := params.(type) {
	case notification.DiagnosticsEvent:
		c.Update(event.File, event.Product, event.Issues)
	case notification.ProjectClosedEvent:
		c.Clear()
		c.dispose()
	}
}

// Update replaces the issues of file for p. An empty list removes the entry.
func (c *Cache) Update(file types.FilePath, p product.Product, issues []lsp.ScanIssue) {
	key := cacheKey{file: types.PathKey(file), product: p}
	if len(issues) == 0 {
		c.issues.Delete(key)
		return
	}
	c.issues.Store(key, append([]lsp.ScanIssue(nil), issues...))
}

func (c *Cache) Issues(file types.FilePath, p product.Product) []lsp.ScanIssue {
	issues, _ := c.issues.Load(cacheKey{file: types.PathKey(file), product: p})
	return issues
}

// IssuesByFile returns all cached issues of p.
func (c *Cache) IssuesByFile(p product.Product) map[types.FilePath][]lsp.ScanIssue {
	result := map[types.FilePath][]lsp.ScanIssue{}
	c.issues.Range(func(key cacheKey, issues []lsp.ScanIssue) bool {
		if key.product == p {
			result[key.file] = issues
		}
		return true
	})
	return result
}

func (c *Cache) IssueCount(p product.Product) int {
	count := 0
	for _, issues := range c.IssuesByFile(p) {
		count += len(issues)
	}
	return count
}

func (c *Cache) Clear() {
	c.issues.Clear()
}
