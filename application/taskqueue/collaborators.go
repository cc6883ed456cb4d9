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

	"github.com/snyk/snyk-ide-core/domain/ide/workspace"
	"github.com/snyk/snyk-ide-core/infrastructure/cli"
	"github.com/snyk/snyk-ide-core/infrastructure/container"
	"github.com/snyk/snyk-ide-core/infrastructure/iac"
	"github.com/snyk/snyk-ide-core/internal/types"
)

//go:generate mockgen -source=collaborators.go -destination mock_taskqueue/collaborators_mock.go -package mock_taskqueue

// TrustGate asks for consent to scan the project. A false result aborts the scan without side effects.
type TrustGate interface {
	ConfirmScanning(ctx context.Context, project *workspace.Project) bool
}

// DocumentSaver flushes unsaved editor buffers to disk.
type DocumentSaver interface {
	SaveAllDocuments(ctx context.Context)
}

// CliDownloader installs or updates the CLI in the background. IsDownloading stays true until the
// download started by DownloadLatestRelease has finished.
type CliDownloader interface {
	DownloadLatestRelease(ctx context.Context)
	StopDownload()
	IsDownloading() bool
}

// ScanTrigger asks the language server to scan the content roots of a project.
type ScanTrigger interface {
	SendScanCommand(ctx context.Context, project *workspace.Project) error
}

type IacScanner interface {
	Scan(ctx context.Context, basePath types.FilePath) cli.Result[iac.IacIssuesResult]
}

type ContainerScanner interface {
	Scan(ctx context.Context, roots ...types.FilePath) cli.Result[container.ContainerIssuesForImage]
}
