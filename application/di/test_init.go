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
	"strings"
	"testing"

	"github.com/golang/mock/gomock"

	"github.com/snyk/snyk-ide-core/application/config"
	er "github.com/snyk/snyk-ide-core/domain/observability/error_reporting"
	"github.com/snyk/snyk-ide-core/infrastructure/cli/mock_cli"
	"github.com/snyk/snyk-ide-core/infrastructure/container"
	"github.com/snyk/snyk-ide-core/infrastructure/filesystem"
	"github.com/snyk/snyk-ide-core/infrastructure/iac"
	"github.com/snyk/snyk-ide-core/infrastructure/languageserver"
)

// TestInit wires the components for tests: errors are recorded, the CLI is a mock and questions are never answered.
func TestInit(t *testing.T) *mock_cli.MockExecutor {
	t.Helper()
	initMutex.Lock()
	defer initMutex.Unlock()
	c := config.CurrentConfig()
	errorReporter = er.NewTestErrorReporter()
	executor := mock_cli.NewMockExecutor(gomock.NewController(t))
	snykCli = executor
	iacScanner = iac.New(c, snykCli)
	containerScanner = container.New(c, snykCli)
	fileSystem = filesystem.New(c.Logger())
	session = languageserver.NewSession()
	initDomain(c)
	initApplication(c, &strings.Builder{}, strings.NewReader(""))
	t.Cleanup(func() {
		scanManager.Dispose()
		registry.Close()
	})
	return executor
}
