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

package types

// FolderConfig holds per-folder settings pushed by the language server.
type FolderConfig struct {
	FolderPath           FilePath `json:"folderPath" yaml:"folderPath"`
	BaseBranch           string   `json:"baseBranch" yaml:"baseBranch"`
	LocalBranches        []string `json:"localBranches,omitempty" yaml:"localBranches,omitempty"`
	AdditionalParameters []string `json:"additionalParameters,omitempty" yaml:"additionalParameters,omitempty"`
	ReferenceFolderPath  FilePath `json:"referenceFolderPath,omitempty" yaml:"referenceFolderPath,omitempty"`
	PreferredOrg         string   `json:"preferredOrg,omitempty" yaml:"preferredOrg,omitempty"`
}
