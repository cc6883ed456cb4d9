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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snyk/snyk-ide-core/internal/types"
)

func Test_New_defaults(t *testing.T) {
	t.Setenv(SnykTokenKey, "")
	t.Setenv(cliPathKey, "")
	c := New()

	assert.True(t, c.IsSnykOssEnabled())
	assert.True(t, c.IsSnykCodeEnabled())
	assert.True(t, c.IsSnykIacEnabled())
	assert.False(t, c.IsSnykContainerEnabled())
	assert.True(t, c.IsScanOnSave())
	assert.Equal(t, DefaultEndpoint, c.Endpoint())
	assert.Equal(t, "", c.Token())
	assert.NotNil(t, c.Logger())
}

func Test_New_readsEnvironment(t *testing.T) {
	t.Setenv(SnykTokenKey, "env-token")
	t.Setenv(cliPathKey, "/opt/snyk")
	t.Setenv(reportErrorsKey, "true")

	c := New()

	assert.Equal(t, "env-token", c.Token())
	assert.Equal(t, "/opt/snyk", c.CliPath())
	assert.True(t, c.IsErrorReportingEnabled())
}

func Test_Load_setsVariablesFromEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("SNYK_IDE_CORE_TEST_VAR=from-file\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("SNYK_IDE_CORE_TEST_VAR") })
	c := New()
	c.SetConfigFile(envFile)

	c.Load()

	assert.Equal(t, "from-file", os.Getenv("SNYK_IDE_CORE_TEST_VAR"))
	assert.True(t, c.IsLoaded())
}

func Test_Persist_settingsSurviveReload(t *testing.T) {
	t.Setenv(SnykTokenKey, "")
	storage := filepath.Join(t.TempDir(), "settings.yaml")
	c := New()
	c.SetStorageFile(storage)
	c.SetSnykContainerEnabled(true)
	c.SetToken("persisted-token")
	c.AddTrustedFolder("/repo/")
	c.SetFolderConfigs([]types.FolderConfig{{FolderPath: "/repo", BaseBranch: "main"}})

	reloaded := New()
	reloaded.SetStorageFile(storage)
	reloaded.Load()

	assert.Equal(t, "persisted-token", reloaded.Token())
	assert.True(t, reloaded.IsSnykContainerEnabled())
	assert.Equal(t, []types.FilePath{"/repo"}, reloaded.TrustedFolders())
	folderConfig, ok := reloaded.FolderConfig("/repo")
	require.True(t, ok)
	assert.Equal(t, "main", folderConfig.BaseBranch)
}

func Test_Load_brokenStorageKeepsDefaults(t *testing.T) {
	storage := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(storage, []byte("token: [unclosed"), 0o600))
	c := New()
	c.SetStorageFile(storage)

	c.Load()

	assert.True(t, c.IsSnykCodeEnabled())
}

func Test_IsTrusted(t *testing.T) {
	c := New()
	c.AddTrustedFolder("/repo")

	assert.True(t, c.IsTrusted("/repo/sub/file.go"))
	assert.False(t, c.IsTrusted("/other"))

	c.SetTrustedFolderFeatureEnabled(false)
	assert.True(t, c.IsTrusted("/other"))
}

func Test_LspSettings(t *testing.T) {
	c := New()
	c.SetToken("token")
	c.SetSnykIacEnabled(true)
	c.SetIacViaLanguageServer(false)
	c.AddTrustedFolder("/repo")

	settings := c.LspSettings()

	assert.Equal(t, "token", settings.Token)
	assert.Equal(t, "false", settings.ActivateSnykIac)
	assert.Equal(t, "true", settings.ActivateSnykCode)
	assert.Equal(t, []string{"/repo"}, settings.TrustedFolders)
	assert.Equal(t, IntegrationName, settings.IntegrationName)
}

func Test_ConfigureLogging_invalidLevelFallsBackToInfo(t *testing.T) {
	c := New()

	c.ConfigureLogging("chatty")

	assert.Equal(t, "info", c.LogLevel())
}
