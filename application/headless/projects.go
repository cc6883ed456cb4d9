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
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/snyk/snyk-ide-core/domain/ide/diagnostics"
	"github.com/snyk/snyk-ide-core/domain/ide/workspace"
	"github.com/snyk/snyk-ide-core/internal/debounce"
	"github.com/snyk/snyk-ide-core/internal/notification"
	"github.com/snyk/snyk-ide-core/internal/product"
	"github.com/snyk/snyk-ide-core/internal/types"
)

//go:generate mockgen -source=projects.go -destination mock_headless/projects_mock.go -package mock_headless

// DefaultSummaryDelay is how long diagnostics have to be quiet before a project's issue summary is logged.
const DefaultSummaryDelay = 2 * time.Second

// FolderTransport tells the language server about opened and closed projects.
type FolderTransport interface {
	AddProject(ctx context.Context, project *workspace.Project) error
	RemoveProject(ctx context.Context, project *workspace.Project) error
}

// ScanController starts and stops the scans of a project.
type ScanController interface {
	Scan(project *workspace.Project, isStartup bool)
	Remove(name string)
}

// Projects opens and closes the projects of a headless session.
type Projects struct {
	logger    *zerolog.Logger
	workspace *workspace.Workspace
	transport FolderTransport
	scans     ScanController
	events    *EventLogger

	summaryDelay time.Duration

	mutex  sync.Mutex
	caches map[string]*diagnostics.Cache
	detach map[string]func()
}

type ProjectsOption func(p *Projects)

func WithSummaryDelay(delay time.Duration) ProjectsOption {
	return func(p *Projects) { p.summaryDelay = delay }
}

func NewProjects(
	logger *zerolog.Logger,
	w *workspace.Workspace,
	transport FolderTransport,
	scans ScanController,
	events *EventLogger,
	opts ...ProjectsOption,
) *Projects {
	l := logger.With().Str("component", "headless.Projects").Logger()
	p := &Projects{
		logger:       &l,
		workspace:    w,
		transport:    transport,
		scans:        scans,
		events:       events,
		summaryDelay: DefaultSummaryDelay,
		caches:       map[string]*diagnostics.Cache{},
		detach:       map[string]func(){},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Open adds a project with the given roots to the workspace. Projects opened before the language server is
// initialized are announced by the initialize request, so the transport is only told when announce is true.
func (p *Projects) Open(ctx context.Context, name string, announce bool, roots ...types.FilePath) (*workspace.Project, error) {
	if _, exists := p.workspace.Project(name); exists {
		return nil, errors.Errorf("project %s is already open", name)
	}
	project := workspace.NewProject(p.logger, name, roots...)
	p.workspace.AddProject(project)

	summary := debounce.NewDebouncer(p.summaryDelay, func() { p.logSummary(project) })
	stopSummary := project.Notifier().CreateListener(func(event any) {
		if _, ok := event.(notification.DiagnosticsEvent); ok {
			summary.Debounce()
		}
	})
	detachEvents := p.events.Attach(project)

	p.mutex.Lock()
	p.caches[name] = diagnostics.NewCache(project)
	p.detach[name] = func() {
		stopSummary()
		summary.Stop()
		detachEvents()
	}
	p.mutex.Unlock()

	if announce {
		if err := p.transport.AddProject(ctx, project); err != nil {
			p.logger.Warn().Err(err).Str("project", name).Msg("couldn't announce project to language server")
		}
	}
	return project, nil
}

// Scan starts a scan of the named project.
func (p *Projects) Scan(name string, isStartup bool) error {
	project, ok := p.workspace.Project(name)
	if !ok {
		return errors.Errorf("project %s is not open", name)
	}
	p.scans.Scan(project, isStartup)
	return nil
}

// Close stops the scans of the named project and removes it from the workspace.
func (p *Projects) Close(ctx context.Context, name string) {
	p.scans.Remove(name)
	project := p.workspace.RemoveProject(name)
	if project == nil {
		return
	}

	p.mutex.Lock()
	detach := p.detach[name]
	delete(p.detach, name)
	delete(p.caches, name)
	p.mutex.Unlock()
	if detach != nil {
		detach()
	}

	if err := p.transport.RemoveProject(ctx, project); err != nil {
		p.logger.Debug().Err(err).Str("project", name).Msg("couldn't remove project from language server")
	}
}

// CloseAll closes every open project.
func (p *Projects) CloseAll(ctx context.Context) {
	for _, project := range p.workspace.Projects() {
		p.Close(ctx, project.Name())
	}
}

// IssueCounts returns the number of cached issues per product of the named project.
func (p *Projects) IssueCounts(name string) map[product.Product]int {
	p.mutex.Lock()
	cache, ok := p.caches[name]
	p.mutex.Unlock()
	counts := map[product.Product]int{}
	if !ok {
		return counts
	}
	for _, prod := range product.All {
		if count := cache.IssueCount(prod); count > 0 {
			counts[prod] = count
		}
	}
	return counts
}

// LogSummary logs the issue counts of every open project.
func (p *Projects) LogSummary() {
	for _, project := range p.workspace.Projects() {
		p.logSummary(project)
	}
}

func (p *Projects) logSummary(project *workspace.Project) {
	event := p.logger.Info().Str("project", project.Name())
	for prod, count := range p.IssueCounts(project.Name()) {
		event = event.Int(prod.ToProductCodename(), count)
	}
	event.Msg("issues")
}
