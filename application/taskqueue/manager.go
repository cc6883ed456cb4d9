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
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/snyk/snyk-ide-core/application/config"
	"github.com/snyk/snyk-ide-core/domain/ide/workspace"
	"github.com/snyk/snyk-ide-core/domain/observability/error_reporting"
	"github.com/snyk/snyk-ide-core/domain/scanstates"
	"github.com/snyk/snyk-ide-core/internal/notification"
	"github.com/snyk/snyk-ide-core/internal/progress"
)

// Manager owns the Service of every open project.
type Manager struct {
	c             *config.Config
	tracker       *scanstates.Tracker
	registry      *progress.Registry
	errorReporter error_reporting.ErrorReporter
	collaborators Collaborators
	opts          []Option
	services      *xsync.MapOf[string, *Service]
}

func NewManager(
	c *config.Config,
	tracker *scanstates.Tracker,
	registry *progress.Registry,
	errorReporter error_reporting.ErrorReporter,
	collaborators Collaborators,
	opts ...Option,
) *Manager {
	return &Manager{
		c:             c,
		tracker:       tracker,
		registry:      registry,
		errorReporter: errorReporter,
		collaborators: collaborators,
		opts:          opts,
		services:      xsync.NewMapOf[string, *Service](),
	}
}

// ServiceFor returns the Service of project, creating it on first use.
func (m *Manager) ServiceFor(project *workspace.Project) *Service {
	service, _ := m.services.LoadOrCompute(project.Name(), func() *Service {
		return NewService(m.c, project, m.tracker, m.registry, m.errorReporter, m.collaborators, m.opts...)
	})
	return service
}

func (m *Manager) Scan(project *workspace.Project, isStartup bool) {
	m.ServiceFor(project).Scan(isStartup)
}

func (m *Manager) StopScan(project *workspace.Project) notification.ScanStoppedEvent {
	return m.ServiceFor(project).StopScan()
}

// InvalidateResults marks the CLI results of all projects as outdated.
func (m *Manager) InvalidateResults() {
	m.services.Range(func(_ string, service *Service) bool {
		service.InvalidateResults()
		return true
	})
}

// Remove disposes the Service of the project with the given name.
func (m *Manager) Remove(name string) {
	if service, ok := m.services.LoadAndDelete(name); ok {
		service.Dispose()
	}
}

func (m *Manager) Dispose() {
	m.services.Range(func(name string, service *Service) bool {
		m.services.Delete(name)
		service.Dispose()
		return true
	})
}
