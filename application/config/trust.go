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
	"golang.org/x/exp/slices"

	"github.com/snyk/snyk-ide-core/internal/types"
)

// IsTrusted reports whether path lies in a trusted folder. Without the trust feature everything is trusted.
func (c *Config) IsTrusted(path types.FilePath) bool {
	if !c.IsTrustedFolderFeatureEnabled() {
		return true
	}
	c.m.RLock()
	defer c.m.RUnlock()
	for _, trusted := range c.trustedFolders {
		if trusted.Contains(path) {
			return true
		}
	}
	return false
}

// AddTrustedFolder adds path to the trusted folders and persists them.
func (c *Config) AddTrustedFolder(path types.FilePath) {
	key := types.PathKey(path)
	if key == "" {
		return
	}
	c.m.Lock()
	if slices.Contains(c.trustedFolders, key) {
		c.m.Unlock()
		return
	}
	c.trustedFolders = append(c.trustedFolders, key)
	c.m.Unlock()
	c.persist()
}

func (c *Config) TrustedFolders() []types.FilePath {
	c.m.RLock()
	defer c.m.RUnlock()
	return slices.Clone(c.trustedFolders)
}

// SetFolderConfigs replaces the configuration of every folder in folderConfigs and persists them.
func (c *Config) SetFolderConfigs(folderConfigs []types.FolderConfig) {
	c.m.Lock()
	for _, folderConfig := range folderConfigs {
		c.folderConfigs[types.PathKey(folderConfig.FolderPath)] = folderConfig
	}
	c.m.Unlock()
	c.persist()
}

func (c *Config) FolderConfig(path types.FilePath) (types.FolderConfig, bool) {
	c.m.RLock()
	defer c.m.RUnlock()
	folderConfig, ok := c.folderConfigs[types.PathKey(path)]
	return folderConfig, ok
}
