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

package headless

import (
	"context"

	"github.com/snyk/snyk-ide-core/application/config"
	"github.com/snyk/snyk-ide-core/domain/ide/workspace"
)

// TrustGate allows scanning projects whose content roots are all trusted. There is nobody to ask, so
// untrusted projects are skipped.
type TrustGate struct {
	c *config.Config
}

func NewTrustGate(c *config.Config) *TrustGate {
	return &TrustGate{c: c}
}

func (g *TrustGate) ConfirmScanning(_ context.Context, project *workspace.Project) bool {
	for _, root := range project.ContentRoots() {
		if !g.c.IsTrusted(root) {
			g.c.Logger().Warn().
				Str("method", "ConfirmScanning").
				Str("project", project.Name()).
				Str("folderPath", string(root)).
				Msg("folder is not trusted, skipping scan")
			return false
		}
	}
	return true
}

// DocumentSaver has no editor buffers to save.
type DocumentSaver struct{}

func (DocumentSaver) SaveAllDocuments(context.Context) {}
