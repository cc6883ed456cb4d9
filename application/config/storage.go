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
	"runtime"

	"github.com/adrg/xdg"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/snyk/snyk-ide-core/internal/types"
)

// storedSettings is the yaml document of the settings file.
type storedSettings struct {
	Token                       string               `yaml:"token,omitempty"`
	CliPath                     string               `yaml:"cliPath,omitempty"`
	Organization                string               `yaml:"organization,omitempty"`
	Endpoint                    string               `yaml:"endpoint,omitempty"`
	Insecure                    bool                 `yaml:"insecure"`
	ScanOnSave                  bool                 `yaml:"scanOnSave"`
	ActivateSnykOpenSource      bool                 `yaml:"activateSnykOpenSource"`
	ActivateSnykCode            bool                 `yaml:"activateSnykCode"`
	ActivateSnykIac             bool                 `yaml:"activateSnykIac"`
	ActivateSnykContainer       bool                 `yaml:"activateSnykContainer"`
	IacViaLanguageServer        bool                 `yaml:"iacViaLanguageServer"`
	ManageBinariesAutomatically bool                 `yaml:"manageBinariesAutomatically"`
	TrustedFolders              []types.FilePath     `yaml:"trustedFolders,omitempty"`
	FolderConfigs               []types.FolderConfig `yaml:"folderConfigs,omitempty"`
}

// DefaultStorageFile returns the settings file below the XDG config home, creating its directory.
func DefaultStorageFile() (string, error) {
	return xdg.ConfigFile(settingsFile)
}

// SetStorageFile enables persistence to path. Existing settings in path are not read; use Load for that.
func (c *Config) SetStorageFile(path string) {
	c.m.Lock()
	defer c.m.Unlock()
	c.storageFile = path
}

func (c *Config) StorageFile() string {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.storageFile
}

func (c *Config) loadStorage() error {
	path := c.StorageFile()
	if path == "" {
		return nil
	}
	content, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "couldn't read settings file")
	}
	var stored storedSettings
	if err = yaml.Unmarshal(content, &stored); err != nil {
		return errors.Wrapf(err, "couldn't parse settings file %s", path)
	}

	c.m.Lock()
	if stored.Token != "" && c.token == "" {
		c.token = stored.Token
	}
	if stored.CliPath != "" && c.cliPath == "" {
		c.cliPath = stored.CliPath
	}
	c.organization = stored.Organization
	if stored.Endpoint != "" {
		c.endpoint = stored.Endpoint
	}
	c.trustedFolders = nil
	for _, folder := range stored.TrustedFolders {
		c.trustedFolders = append(c.trustedFolders, types.PathKey(folder))
	}
	for _, folderConfig := range stored.FolderConfigs {
		c.folderConfigs[types.PathKey(folderConfig.FolderPath)] = folderConfig
	}
	c.m.Unlock()

	c.insecure.Set(stored.Insecure)
	c.scanOnSave.Set(stored.ScanOnSave)
	c.isSnykOssEnabled.Set(stored.ActivateSnykOpenSource)
	c.isSnykCodeEnabled.Set(stored.ActivateSnykCode)
	c.isSnykIacEnabled.Set(stored.ActivateSnykIac)
	c.isSnykContainerEnabled.Set(stored.ActivateSnykContainer)
	c.iacViaLanguageServer.Set(stored.IacViaLanguageServer)
	c.manageBinariesAutomatically.Set(stored.ManageBinariesAutomatically)
	return nil
}

// Persist writes all settings to the storage file, if one is set.
func (c *Config) Persist() error {
	path := c.StorageFile()
	if path == "" {
		return nil
	}
	c.m.RLock()
	stored := storedSettings{
		Token:                       c.token,
		CliPath:                     c.cliPath,
		Organization:                c.organization,
		Endpoint:                    c.endpoint,
		Insecure:                    c.insecure.Get(),
		ScanOnSave:                  c.scanOnSave.Get(),
		ActivateSnykOpenSource:      c.isSnykOssEnabled.Get(),
		ActivateSnykCode:            c.isSnykCodeEnabled.Get(),
		ActivateSnykIac:             c.isSnykIacEnabled.Get(),
		ActivateSnykContainer:       c.isSnykContainerEnabled.Get(),
		IacViaLanguageServer:        c.iacViaLanguageServer.Get(),
		ManageBinariesAutomatically: c.manageBinariesAutomatically.Get(),
		TrustedFolders:              append([]types.FilePath(nil), c.trustedFolders...),
	}
	for _, folderConfig := range c.folderConfigs {
		stored.FolderConfigs = append(stored.FolderConfigs, folderConfig)
	}
	c.m.RUnlock()

	content, err := yaml.Marshal(stored)
	if err != nil {
		return errors.Wrap(err, "couldn't serialize settings")
	}
	if err = os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return errors.Wrap(err, "couldn't create settings directory")
	}
	tmp := path + ".tmp"
	if err = os.WriteFile(tmp, content, 0o600); err != nil {
		return errors.Wrap(err, "couldn't write settings")
	}
	return errors.Wrap(os.Rename(tmp, path), "couldn't replace settings file")
}

func (c *Config) persist() {
	if err := c.Persist(); err != nil {
		c.Logger().Err(err).Str("method", "persist").Msg("settings were not saved")
	}
}

func cliExecutableName() string {
	if runtime.GOOS == "windows" {
		return "snyk-win.exe"
	}
	return "snyk"
}
