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

package scanstates

import (
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/snyk/snyk-ide-core/internal/product"
	"github.com/snyk/snyk-ide-core/internal/types"
)

type scanState int

const (
	NotRunning scanState = iota
	InProgress
)

// Tracker knows which (folder, product) pairs are being scanned right now. It keeps no history; the last
// write wins. All operations are atomic per target.
type Tracker struct {
	states *xsync.MapOf[types.ScanTarget, scanState]
}

func NewTracker() *Tracker {
	return &Tracker{states: xsync.NewMapOf[types.ScanTarget, scanState]()}
}

// TryMarkInProgress sets target to InProgress and returns true, unless it already is InProgress, in which
// case nothing changes and false is returned.
func (t *Tracker) TryMarkInProgress(target types.ScanTarget) bool {
	marked := false
	t.states.Compute(target, func(old scanState, loaded bool) (scanState, bool) {
		if loaded && old == InProgress {
			return old, false
		}
		marked = true
		return InProgress, false
	})
	return marked
}

func (t *Tracker) MarkFinished(target types.ScanTarget) {
	t.states.Store(target, NotRunning)
}

func (t *Tracker) IsInProgress(target types.ScanTarget) bool {
	state, ok := t.states.Load(target)
	return ok && state == InProgress
}

// AnyInProgress reports whether any of the folders is being scanned by p.
func (t *Tracker) AnyInProgress(folders []types.FilePath, p product.Product) bool {
	for _, folder := range folders {
		if t.IsInProgress(types.NewScanTarget(folder, p)) {
			return true
		}
	}
	return false
}

// ResetFolder forgets every target of folder, for example when its workspace is closed.
func (t *Tracker) ResetFolder(folder types.FilePath) {
	key := types.PathKey(folder)
	t.states.Range(func(target types.ScanTarget, _ scanState) bool {
		if target.Folder == key {
			t.states.Delete(target)
		}
		return true
	})
}

// InProgressTargets returns a snapshot of all running targets.
func (t *Tracker) InProgressTargets() []types.ScanTarget {
	var targets []types.ScanTarget
	t.states.Range(func(target types.ScanTarget, state scanState) bool {
		if state == InProgress {
			targets = append(targets, target)
		}
		return true
	})
	return targets
}
