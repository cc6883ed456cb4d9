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

package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/rs/zerolog"

	"github.com/snyk/snyk-ide-core/application/config"
)

const integTestEnvVar = "INTEG_TESTS"

// UnitTest installs a fresh current configuration that persists into a temp directory and logs to t.
func UnitTest(t *testing.T) *config.Config {
	t.Helper()
	c := config.New()
	logger := zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.DebugLevel)
	c.SetLogger(&logger)
	c.SetStorageFile(filepath.Join(t.TempDir(), "settings.yaml"))
	c.SetManageBinariesAutomatically(false)
	c.SetErrorReportingEnabled(false)
	c.SetToken("00000000-0000-0000-0000-000000000001")
	c.SetTrustedFolderFeatureEnabled(false)
	config.SetCurrentConfig(c)
	t.Cleanup(func() { config.SetCurrentConfig(nil) })
	return c
}

// IntegTest runs only with INTEG_TESTS set and a real CLI available.
func IntegTest(t *testing.T) *config.Config {
	t.Helper()
	if os.Getenv(integTestEnvVar) == "" {
		t.Logf("%s is not set", integTestEnvVar)
		t.SkipNow()
	}
	c := UnitTest(t)
	c.SetToken(GetEnvironmentToken())
	return c
}

func NotOnWindows(t *testing.T, reason string) {
	t.Helper()
	if //goland:noinspection GoBoolExpressions
	runtime.GOOS == "windows" {
		t.Skipf("Not on windows, because %s", reason)
	}
}

func OnlyOnWindows(t *testing.T, reason string) {
	t.Helper()
	if //goland:noinspection GoBoolExpressions
	runtime.GOOS != "windows" {
		t.Skipf("Only on windows, because %s", reason)
	}
}
