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

package notification

import (
	"github.com/snyk/snyk-ide-core/internal/lsp"
	"github.com/snyk/snyk-ide-core/internal/product"
	"github.com/snyk/snyk-ide-core/internal/types"
)

type ScanStartedEvent struct {
	Product    product.Product
	FolderPath types.FilePath
}

// ScanFinishedEvent is sent when a product finished scanning a folder. Result is set for products the
// client scans itself with the CLI.
type ScanFinishedEvent struct {
	Product    product.Product
	FolderPath types.FilePath
	Result     any
}

type ScanErrorEvent struct {
	Product product.Product
	Error   types.SnykError
}

type ScanStoppedEvent struct {
	WasOssRunning       bool
	WasCodeRunning      bool
	WasIacRunning       bool
	WasContainerRunning bool
}

// DiagnosticsEvent carries the complete, current issue list of one file for one product.
type DiagnosticsEvent struct {
	Product product.Product
	File    types.FilePath
	Issues  []lsp.ScanIssue
}

// RefreshEvent asks views to redraw, for example after edits were applied.
type RefreshEvent struct{}

type ShowMessageEvent struct {
	Type    lsp.MessageType
	Message string
}

// ProjectClosedEvent is the last event a project sends.
type ProjectClosedEvent struct{}
