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
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snyk/snyk-ide-core/application/config"
	"github.com/snyk/snyk-ide-core/application/taskqueue/mock_taskqueue"
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
	"github.com/snyk/snyk-ide-core/internal/testutil"
	"github.com/snyk/snyk-ide-core/internal/types"
)

type recordingIndicators struct {
	mutex   sync.Mutex
	handles map[string]*progress.Handle
}

func (r *recordingIndicators) NewIndicator(h *progress.Handle) (progress.Indicator, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.handles[h.Title()] = h
	return noopIndicator{}, nil
}

func (r *recordingIndicators) handle(title string) *progress.Handle {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.handles[title]
}

type noopIndicator struct{}

func (noopIndicator) Update(*progress.Handle) {}
func (noopIndicator) Finish(*progress.Handle) {}

type eventRecorder struct {
	mutex  sync.Mutex
	events []any
}

func (e *eventRecorder) record(event any) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.events = append(e.events, event)
}

func (e *eventRecorder) all() []any {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return append([]any(nil), e.events...)
}

func (e *eventRecorder) contains(event any) bool {
	for _, recorded := range e.all() {
		if assert.ObjectsAreEqual(event, recorded) {
			return true
		}
	}
	return false
}

type testSetup struct {
	c          *config.Config
	service    *Service
	project    *workspace.Project
	tracker    *scanstates.Tracker
	indicators *recordingIndicators
	events     *eventRecorder
	trust      *mock_taskqueue.MockTrustGate
	saver      *mock_taskqueue.MockDocumentSaver
	downloader *mock_taskqueue.MockCliDownloader
	trigger    *mock_taskqueue.MockScanTrigger
	iac        *mock_taskqueue.MockIacScanner
	container  *mock_taskqueue.MockContainerScanner
}

func setupService(t *testing.T) *testSetup {
	t.Helper()
	c := testutil.UnitTest(t)
	folder := testutil.TempFolder(t)
	cliPath := testutil.CreateFileOrFail(t, types.FilePath(filepath.Join(string(folder), "bin", "snyk")), "#!/bin/sh\n")
	c.SetCliPath(string(cliPath))

	ctrl := gomock.NewController(t)
	nop := zerolog.Nop()
	indicators := &recordingIndicators{handles: map[string]*progress.Handle{}}
	registry := progress.NewRegistry(&nop, indicators)
	t.Cleanup(registry.Close)

	s := &testSetup{
		c:          c,
		tracker:    scanstates.NewTracker(),
		project:    workspace.NewProject(c.Logger(), "project", folder),
		indicators: indicators,
		events:     &eventRecorder{},
		trust:      mock_taskqueue.NewMockTrustGate(ctrl),
		saver:      mock_taskqueue.NewMockDocumentSaver(ctrl),
		downloader: mock_taskqueue.NewMockCliDownloader(ctrl),
		trigger:    mock_taskqueue.NewMockScanTrigger(ctrl),
		iac:        mock_taskqueue.NewMockIacScanner(ctrl),
		container:  mock_taskqueue.NewMockContainerScanner(ctrl),
	}
	s.project.Notifier().CreateListener(s.events.record)
	s.service = NewService(c, s.project, s.tracker, registry, error_reporting.NewTestErrorReporter(), Collaborators{
		TrustGate:        s.trust,
		DocumentSaver:    s.saver,
		Downloader:       s.downloader,
		ScanTrigger:      s.trigger,
		IacScanner:       s.iac,
		ContainerScanner: s.container,
	}, WithDownloadPollInterval(5*time.Millisecond))
	t.Cleanup(func() {
		s.service.Dispose()
		testutil.RequireSignal[struct{}](t, s.service.general.Done(), time.Second)
		testutil.RequireSignal[struct{}](t, s.service.iacQueue.Done(), time.Second)
		testutil.RequireSignal[struct{}](t, s.service.containerQueue.Done(), time.Second)
	})
	return s
}

// expectPreparation expects a trusted scan with an installed CLI and no running download.
func (s *testSetup) expectPreparation() {
	s.trust.EXPECT().ConfirmScanning(gomock.Any(), s.project).Return(true)
	s.saver.EXPECT().SaveAllDocuments(gomock.Any())
	s.downloader.EXPECT().StopDownload()
	s.downloader.EXPECT().IsDownloading().Return(false).AnyTimes()
}

func (s *testSetup) idle() bool {
	return !s.service.general.IsRunning() && s.service.general.Len() == 0 &&
		!s.service.iacQueue.IsRunning() && s.service.iacQueue.Len() == 0 &&
		!s.service.containerQueue.IsRunning() && s.service.containerQueue.Len() == 0
}

func Test_Scan_untrustedProjectHasNoSideEffects(t *testing.T) {
	s := setupService(t)
	confirmed := make(chan struct{})
	s.trust.EXPECT().ConfirmScanning(gomock.Any(), s.project).DoAndReturn(func(context.Context, *workspace.Project) bool {
		close(confirmed)
		return false
	})

	s.service.Scan(false)

	testutil.RequireSignal[struct{}](t, confirmed, time.Second)
	assert.Eventually(t, s.idle, time.Second, time.Millisecond)
	assert.Empty(t, s.events.all())
}

func Test_Scan_triggersLanguageServerAndIac(t *testing.T) {
	s := setupService(t)
	s.c.SetManageBinariesAutomatically(false)
	s.expectPreparation()
	s.trigger.EXPECT().SendScanCommand(gomock.Any(), s.project).Return(nil)
	iacResult := cli.Result[iac.IacIssuesResult]{Results: []iac.IacIssuesResult{{IacIssues: []iac.IacIssue{{Id: "SNYK-CC-1"}}}}}
	s.iac.EXPECT().Scan(gomock.Any(), s.project.BasePath()).Return(iacResult)

	s.service.Scan(false)

	finished := notification.ScanFinishedEvent{Product: product.ProductInfrastructureAsCode, FolderPath: s.project.BasePath(), Result: iacResult}
	assert.Eventually(t, func() bool { return s.events.contains(finished) }, time.Second, time.Millisecond)
	assert.True(t, s.events.contains(notification.ScanStartedEvent{Product: product.ProductInfrastructureAsCode, FolderPath: s.project.BasePath()}))
	cached, ok := s.service.Results().Get(product.ProductInfrastructureAsCode)
	require.True(t, ok)
	assert.Equal(t, 1, cached.IssueCount)
}

func Test_Scan_atStartupDoesNotTriggerLanguageServer(t *testing.T) {
	s := setupService(t)
	s.c.SetManageBinariesAutomatically(false)
	s.c.SetSnykIacEnabled(false)
	s.expectPreparation()

	s.service.Scan(true)

	assert.Eventually(t, s.idle, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.Eventually(t, s.idle, time.Second, time.Millisecond)
}

func Test_Scan_iacViaLanguageServerIsNotScannedByClient(t *testing.T) {
	s := setupService(t)
	s.c.SetManageBinariesAutomatically(false)
	s.c.SetIacViaLanguageServer(true)
	s.expectPreparation()
	triggered := make(chan struct{})
	s.trigger.EXPECT().SendScanCommand(gomock.Any(), s.project).DoAndReturn(func(context.Context, *workspace.Project) error {
		close(triggered)
		return nil
	})

	s.service.Scan(false)

	testutil.RequireSignal[struct{}](t, triggered, time.Second)
	assert.Eventually(t, s.idle, time.Second, time.Millisecond)
}

func Test_Scan_missingCliWithoutAutomaticDownloadNotifies(t *testing.T) {
	s := setupService(t)
	s.c.SetManageBinariesAutomatically(false)
	s.c.SetCliPath(filepath.Join(t.TempDir(), "missing"))
	s.trust.EXPECT().ConfirmScanning(gomock.Any(), s.project).Return(true)
	s.saver.EXPECT().SaveAllDocuments(gomock.Any())
	s.downloader.EXPECT().StopDownload()

	s.service.Scan(false)

	assert.Eventually(t, func() bool {
		for _, event := range s.events.all() {
			if message, ok := event.(notification.ShowMessageEvent); ok && message.Type == lsp.Error {
				return true
			}
		}
		return false
	}, time.Second, time.Millisecond)
	assert.Eventually(t, s.idle, time.Second, time.Millisecond)
}

func Test_Scan_waitsForDownload(t *testing.T) {
	s := setupService(t)
	s.c.SetManageBinariesAutomatically(true)
	s.c.SetSnykIacEnabled(false)
	s.trust.EXPECT().ConfirmScanning(gomock.Any(), s.project).Return(true)
	s.saver.EXPECT().SaveAllDocuments(gomock.Any())
	downloadStarted := s.downloader.EXPECT().DownloadLatestRelease(gomock.Any())
	polling := s.downloader.EXPECT().IsDownloading().Return(true).Times(3).After(downloadStarted)
	s.downloader.EXPECT().IsDownloading().Return(false).After(polling)
	triggered := make(chan struct{})
	s.trigger.EXPECT().SendScanCommand(gomock.Any(), s.project).DoAndReturn(func(context.Context, *workspace.Project) error {
		close(triggered)
		return nil
	})

	s.service.Scan(false)

	select {
	case <-triggered:
	case <-time.After(time.Second):
		t.Fatal("scan was not triggered after the download finished")
	}
}

func Test_IacScan_errorWithoutMessageIsSurfaced(t *testing.T) {
	s := setupService(t)
	s.c.SetManageBinariesAutomatically(false)
	s.expectPreparation()
	s.trigger.EXPECT().SendScanCommand(gomock.Any(), s.project).Return(nil)
	s.iac.EXPECT().Scan(gomock.Any(), s.project.BasePath()).Return(cli.Result[iac.IacIssuesResult]{Error: &types.SnykError{}})

	s.service.Scan(false)

	expected := notification.ScanErrorEvent{
		Product: product.ProductInfrastructureAsCode,
		Error:   types.SnykError{Message: unknownIacError, Path: string(s.project.BasePath())},
	}
	assert.Eventually(t, func() bool { return s.events.contains(expected) }, time.Second, time.Millisecond)
}

func Test_IacScan_skippedWhenCachedResultIsCurrent(t *testing.T) {
	s := setupService(t)
	s.c.SetManageBinariesAutomatically(false)
	s.service.Results().Set(product.ProductInfrastructureAsCode, cli.Result[iac.IacIssuesResult]{}, 0)
	s.expectPreparation()
	s.trigger.EXPECT().SendScanCommand(gomock.Any(), s.project).Return(nil)

	s.service.Scan(false)

	assert.Eventually(t, s.idle, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.Eventually(t, s.idle, time.Second, time.Millisecond)
	assert.Empty(t, s.events.all())

	s.service.InvalidateResults()
	assert.True(t, s.service.Results().RescanNeeded(product.ProductInfrastructureAsCode))
}

func Test_StopScan_cancellingIacLeavesContainerRunning(t *testing.T) {
	s := setupService(t)
	s.c.SetManageBinariesAutomatically(false)
	s.c.SetSnykContainerEnabled(true)
	s.expectPreparation()
	s.trigger.EXPECT().SendScanCommand(gomock.Any(), s.project).Return(nil)
	s.iac.EXPECT().Scan(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, _ types.FilePath) cli.Result[iac.IacIssuesResult] {
		<-ctx.Done()
		return cli.Result[iac.IacIssuesResult]{Cancelled: true}
	})
	s.container.EXPECT().Scan(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, _ ...types.FilePath) cli.Result[container.ContainerIssuesForImage] {
		<-ctx.Done()
		return cli.Result[container.ContainerIssuesForImage]{Cancelled: true}
	})

	s.service.Scan(false)
	assert.Eventually(t, func() bool {
		return s.indicators.handle(iacScanTitle) != nil && s.indicators.handle(containerScanTitle) != nil
	}, time.Second, time.Millisecond)

	assert.True(t, s.service.iacQueue.CancelCurrent())

	assert.Eventually(t, func() bool {
		return s.events.contains(notification.ScanStoppedEvent{WasIacRunning: true})
	}, time.Second, time.Millisecond)
	assert.False(t, s.indicators.handle(iacScanTitle).IsActive())
	assert.True(t, s.indicators.handle(containerScanTitle).IsActive())
	assert.True(t, s.service.containerQueue.IsRunning())
}

func Test_StopScan_reportsRunningProducts(t *testing.T) {
	s := setupService(t)
	s.tracker.TryMarkInProgress(types.NewScanTarget(s.project.BasePath(), product.ProductCode))

	event := s.service.StopScan()

	expected := notification.ScanStoppedEvent{WasCodeRunning: true}
	assert.Equal(t, expected, event)
	assert.True(t, s.events.contains(expected))
}

func (e *eventRecorder) stoppedEvents() []notification.ScanStoppedEvent {
	var stopped []notification.ScanStoppedEvent
	for _, event := range e.all() {
		if event, ok := event.(notification.ScanStoppedEvent); ok {
			stopped = append(stopped, event)
		}
	}
	return stopped
}

func Test_StopScan_runningIac_publishesOneScanStoppedEvent(t *testing.T) {
	s := setupService(t)
	s.c.SetManageBinariesAutomatically(false)
	s.expectPreparation()
	s.trigger.EXPECT().SendScanCommand(gomock.Any(), s.project).Return(nil)
	iacReturned := make(chan struct{})
	s.iac.EXPECT().Scan(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, _ types.FilePath) cli.Result[iac.IacIssuesResult] {
		defer close(iacReturned)
		<-ctx.Done()
		return cli.Result[iac.IacIssuesResult]{Cancelled: true}
	})

	s.service.Scan(false)
	assert.Eventually(t, func() bool { return s.indicators.handle(iacScanTitle) != nil }, time.Second, time.Millisecond)

	event := s.service.StopScan()

	testutil.RequireSignal[struct{}](t, iacReturned, time.Second)
	assert.Eventually(t, func() bool { return !s.service.iacQueue.IsRunning() }, time.Second, time.Millisecond)
	assert.Equal(t, notification.ScanStoppedEvent{WasIacRunning: true}, event)
	assert.Equal(t, []notification.ScanStoppedEvent{event}, s.events.stoppedEvents())
}
