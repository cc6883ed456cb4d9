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

// Package taskqueue schedules the scans of a project on three serialized queues: a general queue for
// preparing scans and triggering the language server, and one queue each for IaC and container scans
// run with the CLI.
package taskqueue

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/snyk/snyk-ide-core/application/config"
	"github.com/snyk/snyk-ide-core/domain/ide/workspace"
	"github.com/snyk/snyk-ide-core/domain/observability/error_reporting"
	"github.com/snyk/snyk-ide-core/domain/scanstates"
	"github.com/snyk/snyk-ide-core/infrastructure/cli"
	"github.com/snyk/snyk-ide-core/infrastructure/container"
	"github.com/snyk/snyk-ide-core/infrastructure/iac"
	"github.com/snyk/snyk-ide-core/internal/lsp"
	"github.com/snyk/snyk-ide-core/internal/notification"
	"github.com/snyk/snyk-ide-core/internal/product"
	"github.com/snyk/snyk-ide-core/internal/progress"
	"github.com/snyk/snyk-ide-core/internal/types"
)

const (
	DefaultDownloadPollInterval = time.Second

	initializingTitle     = "Snyk: initializing..."
	iacScanTitle          = "Snyk Infrastructure as Code is scanning"
	containerScanTitle    = "Snyk Container is scanning..."
	unknownIacError       = "unknown IaC error"
	unknownContainerError = "unknown container error"
)

// errScanStopped cancels the CLI scans stopped by StopScan, which publishes the ScanStoppedEvent itself.
var errScanStopped = errors.New("scan stopped")

// Collaborators are the frontend and transport parts a Service depends on.
type Collaborators struct {
	TrustGate        TrustGate
	DocumentSaver    DocumentSaver
	Downloader       CliDownloader
	ScanTrigger      ScanTrigger
	IacScanner       IacScanner
	ContainerScanner ContainerScanner
}

// Service runs the scans of one project.
type Service struct {
	c                    *config.Config
	logger               zerolog.Logger
	project              *workspace.Project
	tracker              *scanstates.Tracker
	registry             *progress.Registry
	collaborators        Collaborators
	results              *ResultCache
	general              *WorkQueue
	iacQueue             *WorkQueue
	containerQueue       *WorkQueue
	downloadPollInterval time.Duration
}

type Option func(s *Service)

func WithDownloadPollInterval(interval time.Duration) Option {
	return func(s *Service) { s.downloadPollInterval = interval }
}

func NewService(
	c *config.Config,
	project *workspace.Project,
	tracker *scanstates.Tracker,
	registry *progress.Registry,
	errorReporter error_reporting.ErrorReporter,
	collaborators Collaborators,
	opts ...Option,
) *Service {
	logger := c.Logger().With().Str("project", project.Name()).Logger()
	s := &Service{
		c:                    c,
		logger:               logger,
		project:              project,
		tracker:              tracker,
		registry:             registry,
		collaborators:        collaborators,
		results:              NewResultCache(DefaultResultExpiry),
		general:              NewWorkQueue("Snyk", &logger, errorReporter),
		iacQueue:             NewWorkQueue("Snyk: Iac", &logger, errorReporter),
		containerQueue:       NewWorkQueue("Snyk: Container", &logger, errorReporter),
		downloadPollInterval: DefaultDownloadPollInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Project() *workspace.Project {
	return s.project
}

func (s *Service) Results() *ResultCache {
	return s.results
}

// Scan prepares and triggers a scan of all enabled products. At startup the language server scans on its
// own, so only the CLI products are scheduled.
func (s *Service) Scan(isStartup bool) {
	s.general.Run(initializingTitle, func(ctx context.Context) {
		logger := s.logger.With().Str("method", "Scan").Bool("isStartup", isStartup).Logger()
		if !s.collaborators.TrustGate.ConfirmScanning(ctx, s.project) {
			logger.Info().Msg("scanning not confirmed, aborting")
			return
		}

		s.collaborators.DocumentSaver.SaveAllDocuments(ctx)
		if ctx.Err() != nil {
			return
		}
		if !s.waitUntilCliDownloadedIfNeeded(ctx) {
			return
		}

		if !isStartup {
			if err := s.collaborators.ScanTrigger.SendScanCommand(ctx, s.project); err != nil {
				logger.Err(err).Msg("couldn't trigger language server scan")
			}
		}

		if s.c.IsSnykIacEnabled() && !s.c.IsIacViaLanguageServer() {
			s.scheduleIacScan()
		}
		if s.c.IsSnykContainerEnabled() {
			s.scheduleContainerScan()
		}
	})
}

// waitUntilCliDownloadedIfNeeded starts a download if needed and polls until it has finished. It returns
// false if scanning is not possible or the task was cancelled.
func (s *Service) waitUntilCliDownloadedIfNeeded(ctx context.Context) bool {
	if !s.downloadLatestRelease(ctx) {
		return false
	}
	ticker := time.NewTicker(s.downloadPollInterval)
	defer ticker.Stop()
	for s.collaborators.Downloader.IsDownloading() {
		select {
		case <-ctx.Done():
			return false
		case <-ticker.C:
		}
	}
	return ctx.Err() == nil
}

func (s *Service) downloadLatestRelease(ctx context.Context) bool {
	if s.project.IsDisposed() {
		return false
	}
	if !s.c.ManageBinariesAutomatically() {
		s.collaborators.Downloader.StopDownload()
		if !s.c.CliInstalled() {
			msg := fmt.Sprintf("The plugin cannot scan without Snyk CLI, but automatic download is disabled. "+
				"Please put a Snyk CLI executable in %s and retry.", s.c.CliPath())
			s.logger.Warn().Str("method", "downloadLatestRelease").Msg(msg)
			s.project.Notifier().Send(notification.ShowMessageEvent{Type: lsp.Error, Message: msg})
			return false
		}
		return true
	}
	s.collaborators.Downloader.DownloadLatestRelease(ctx)
	return true
}

func (s *Service) scheduleIacScan() {
	s.iacQueue.Run(iacScanTitle, func(ctx context.Context) {
		runCliScan(ctx, s, cliScan[iac.IacIssuesResult]{
			product:      product.ProductInfrastructureAsCode,
			title:        iacScanTitle,
			unknownError: unknownIacError,
			stopped:      notification.ScanStoppedEvent{WasIacRunning: true},
			count:        iac.IssueCount,
			scan: func(ctx context.Context) cli.Result[iac.IacIssuesResult] {
				return s.collaborators.IacScanner.Scan(ctx, s.project.BasePath())
			},
		})
	})
}

func (s *Service) scheduleContainerScan() {
	s.containerQueue.Run(containerScanTitle, func(ctx context.Context) {
		runCliScan(ctx, s, cliScan[container.ContainerIssuesForImage]{
			product:      product.ProductContainer,
			title:        containerScanTitle,
			unknownError: unknownContainerError,
			stopped:      notification.ScanStoppedEvent{WasContainerRunning: true},
			count:        container.IssueCount,
			scan: func(ctx context.Context) cli.Result[container.ContainerIssuesForImage] {
				return s.collaborators.ContainerScanner.Scan(ctx, s.project.ContentRoots()...)
			},
		})
	})
}

type cliScan[T any] struct {
	product      product.Product
	title        string
	unknownError string
	stopped      notification.ScanStoppedEvent
	count        func(cli.Result[T]) int
	scan         func(ctx context.Context) cli.Result[T]
}

// runCliScan executes a CLI product scan inside its queue and publishes the outcome. Failures become
// ScanErrorEvents, they never escape the task.
func runCliScan[T any](ctx context.Context, s *Service, job cliScan[T]) {
	logger := s.logger.With().Str("method", "runCliScan").Str("product", job.product.String()).Logger()
	if !s.c.CliInstalled() {
		logger.Debug().Msg("CLI not installed, skipping")
		return
	}
	if !s.results.RescanNeeded(job.product) {
		logger.Debug().Msg("cached result is current, skipping")
		return
	}
	if ctx.Err() != nil {
		return
	}

	s.results.Remove(job.product)
	basePath := s.project.BasePath()
	h := s.registry.Start(ctx, job.title)
	s.project.Notifier().Send(notification.ScanStartedEvent{Product: job.product, FolderPath: basePath})

	result := job.scan(h.Context())
	if s.project.IsDisposed() {
		s.registry.Finish(h, "project closed")
		return
	}

	switch {
	case result.Cancelled:
		logger.Debug().Msg("scan cancelled")
		s.registry.Finish(h, "cancelled")
		if !errors.Is(context.Cause(ctx), errScanStopped) {
			s.project.Notifier().Send(job.stopped)
		}
	case result.IsSuccessful():
		count := job.count(result)
		s.results.Set(job.product, result, count)
		s.registry.Finish(h, fmt.Sprintf("found %d issues", count))
		s.project.Notifier().Send(notification.ScanFinishedEvent{Product: job.product, FolderPath: basePath, Result: result})
	default:
		snykError := *result.Error
		if snykError.Message == "" {
			snykError = types.SnykError{Message: job.unknownError, Path: string(basePath)}
		}
		logger.Info().Str("error", snykError.Message).Msg("scan failed")
		s.registry.Finish(h, snykError.Message)
		s.project.Notifier().Send(notification.ScanErrorEvent{Product: job.product, Error: snykError})
	}
}

// StopScan cancels the running scans of the project and publishes which products were running. OSS and
// Code run in the language server; their state comes from the scan state tracker.
func (s *Service) StopScan() notification.ScanStoppedEvent {
	folders := s.project.ContentRoots()
	event := notification.ScanStoppedEvent{
		WasOssRunning:  s.tracker.AnyInProgress(folders, product.ProductOpenSource),
		WasCodeRunning: s.tracker.AnyInProgress(folders, product.ProductCode),
	}
	s.general.CancelCurrent()
	event.WasIacRunning = s.iacQueue.CancelCurrentWithCause(errScanStopped)
	event.WasContainerRunning = s.containerQueue.CancelCurrentWithCause(errScanStopped)
	s.logger.Debug().Str("method", "StopScan").Interface("stopped", event).Send()
	s.project.Notifier().Send(event)
	return event
}

// InvalidateResults makes the next scan rerun the CLI products.
func (s *Service) InvalidateResults() {
	s.results.MarkRescanNeeded()
}

// Dispose cancels all queues. Tasks submitted afterwards are dropped.
func (s *Service) Dispose() {
	s.general.Dispose()
	s.iacQueue.Dispose()
	s.containerQueue.Dispose()
	s.results.Close()
}
