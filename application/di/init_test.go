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

package di

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snyk/snyk-ide-core/infrastructure/languageserver"
	"github.com/snyk/snyk-ide-core/internal/testutil"
	"github.com/snyk/snyk-ide-core/internal/types"
)

func Test_TestInit_wiresComponents(t *testing.T) {
	testutil.UnitTest(t)
	TestInit(t)

	assert.NotNil(t, ErrorReporter())
	assert.NotNil(t, Tracker())
	assert.NotNil(t, Registry())
	assert.NotNil(t, ScanManager())
	assert.NotNil(t, Client().ClientOptions())
}

func Test_Projects_openedBeforeLaunch_areInWorkspace(t *testing.T) {
	testutil.UnitTest(t)
	TestInit(t)

	project, err := Projects().Open(context.Background(), "p", false, types.FilePath(t.TempDir()))

	require.NoError(t, err)
	assert.Same(t, project, Workspace().ActiveProject())
	assert.ErrorIs(t, Session().UpdateConfiguration(context.Background()), languageserver.ErrNotInitialized)
}
