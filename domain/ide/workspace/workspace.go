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
	"sync"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/snyk/snyk-ide-core/domain/scanstates"
	"github.com/snyk/snyk-ide-core/internal/types"
)

// Workspace holds the open projects. Several projects share one language server, and a file may belong
// to more than one of them.
type Workspace struct {
	mutex    sync.RWMutex
	projects map[string]*Project
	active   string
	tracker  *scanstates.Tracker
}

func New(tracker *scanstates.Tracker) *Workspace {
	return &Workspace{
		projects: map[string]*Project{},
		tracker:  tracker,
	}
}

func (w *Workspace) AddProject(p *Project) {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	w.projects[p.Name()] = p
	if w.active == "" {
		w.active = p.Name()
	}
}

// RemoveProject closes the project and forgets the scan states of its content roots that no remaining
// project contains.
func (w *Workspace) RemoveProject(name string) *Project {
	w.mutex.Lock()
	p, ok := w.projects[name]
	if !ok {
		w.mutex.Unlock()
		return nil
	}
	delete(w.projects, name)
	if w.active == name {
		w.active = ""
	}
	w.mutex.Unlock()

	for _, root := range p.ContentRoots() {
		// still scanned for a remaining project
		if len(w.ProjectsContaining(root)) > 0 {
			continue
		}
		w.tracker.ResetFolder(root)
	}
	p.dispose()
	return p
}

func (w *Workspace) Project(name string) (*Project, bool) {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	p, ok := w.projects[name]
	return p, ok
}

// Projects returns the open projects sorted by name.
func (w *Workspace) Projects() []*Project {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	names := maps.Keys(w.projects)
	slices.Sort(names)
	projects := make([]*Project, 0, len(names))
	for _, name := range names {
		projects = append(projects, w.projects[name])
	}
	return projects
}

// ProjectsContaining returns every open project with a content root containing path.
func (w *Workspace) ProjectsContaining(path types.FilePath) []*Project {
	var found []*Project
	for _, p := range w.Projects() {
		if p.Contains(path) {
			found = append(found, p)
		}
	}
	return found
}

// GuessProject returns the first project containing one of paths, or the active project.
func (w *Workspace) GuessProject(paths []types.FilePath) *Project {
	for _, path := range paths {
		if projects := w.ProjectsContaining(path); len(projects) > 0 {
			return projects[0]
		}
	}
	return w.ActiveProject()
}

func (w *Workspace) SetActiveProject(name string) {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if _, ok := w.projects[name]; ok {
		w.active = name
	}
}

// ActiveProject returns the project the user works in, or nil if no project is open.
func (w *Workspace) ActiveProject() *Project {
	w.mutex.RLock()
	active, ok := w.projects[w.active]
	w.mutex.RUnlock()
	if ok {
		return active
	}
	projects := w.Projects()
	if len(projects) == 0 {
		return nil
	}
	return projects[0]
}

// ContentRoots returns the content roots of all open projects.
func (w *Workspace) ContentRoots() []types.FilePath {
	var roots []types.FilePath
	for _, p := range w.Projects() {
		for _, root := range p.ContentRoots() {
			if !slices.Contains(roots, root) {
				roots = append(roots, root)
			}
		}
	}
	return roots
}
