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

package workspace

import (
	"github.com/rs/zerolog"
	"golang.org/x/exp/slices"

	"github.com/snyk/snyk-ide-core/internal/concurrency"
	"github.com/snyk/snyk-ide-core/internal/notification"
	"github.com/snyk/snyk-ide-core/internal/types"
)

// Project is an open IDE project. It has one or more content roots, each of which is a workspace folder
// of the language server, and an event bus for its views.
type Project struct {
	name     string
	roots    []types.FilePath
	notifier *notification.Notifier
	disposed concurrency.AtomicBool
}

func NewProject(logger *zerolog.Logger, name string, roots ...types.FilePath) *Project {
	l := logger.With().Str("project", name).Logger()
	cleaned := make([]types.FilePath, 0, len(roots))
	for _, root := range roots {
		key := types.PathKey(root)
		if key != "" && !slices.Contains(cleaned, key) {
			cleaned = append(cleaned, key)
		}
	}
	return &Project{
		name:     name,
		roots:    cleaned,
		notifier: notification.NewNotifier(&l),
	}
}

func (p *Project) Name() string {
	return p.name
}

func (p *Project) ContentRoots() []types.FilePath {
	return slices.Clone(p.roots)
}

// BasePath is the first content root, used where a single path must represent the project.
func (p *Project) BasePath() types.FilePath {
	if len(p.roots) == 0 {
		return ""
	}
	return p.roots[0]
}

func (p *Project) Notifier() *notification.Notifier {
	return p.notifier
}

func (p *Project) Contains(path types.FilePath) bool {
	for _, root := range p.roots {
		if root.Contains(path) {
			return true
		}
	}
	return false
}

func (p *Project) IsDisposed() bool {
	return p.disposed.Get()
}

func (p *Project) dispose() {
	if p.disposed.CompareAndSwap(false, true) {
		p.notifier.Send(notification.ProjectClosedEvent{})
	}
}
