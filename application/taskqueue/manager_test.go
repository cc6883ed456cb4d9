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
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/snyk/snyk-ide-core/domain/ide/workspace"
	"github.com/snyk/snyk-ide-core/domain/observability/error_reporting"
	"github.com/snyk/snyk-ide-core/domain/scanstates"
	"github.com/snyk/snyk-ide-core/internal/product"
	"github.com/snyk/snyk-ide-core/internal/progress"
	"github.com/snyk/snyk-ide-core/internal/testutil"
)

func Test_Manager_ServiceFor(t *testing.T) {
	c := testutil.UnitTest(t)
	nop := zerolog.Nop()
	registry := progress.NewRegistry(&nop, nil)
	t.Cleanup(registry.Close)
	manager := NewManager(c, scanstates.NewTracker(), registry, error_reporting.NewTestErrorReporter(), Collaborators{})
	t.Cleanup(manager.Dispose)
	project := workspace.NewProject(c.Logger(), "a", testutil.TempFolder(t))

	first := manager.ServiceFor(project)
	second := manager.ServiceFor(project)
	assert.Same(t, first, second)

	first.Results().Set(product.ProductContainer, nil, 0)
	manager.InvalidateResults()
	assert.True(t, first.Results().RescanNeeded(product.ProductContainer))

	manager.Remove("a")
	testutil.RequireSignal[struct{}](t, first.general.Done(), time.Second)
	_, ok := first.general.Run("after removal", func(ctx context.Context) {})
	assert.False(t, ok)
	assert.NotSame(t, first, manager.ServiceFor(project))
}
