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

package container

type ContainerIssuesForImage struct {
	Ok              bool                     `json:"ok"`
	Path            string                   `json:"path"`
	ProjectName     string                   `json:"projectName"`
	PackageManager  string                   `json:"packageManager"`
	UniqueCount     int                      `json:"uniqueCount"`
	Vulnerabilities []ContainerVulnerability `json:"vulnerabilities"`
	Docker          Docker                   `json:"docker"`
	// WorkloadFiles are the manifests referencing the image. Not part of the CLI output.
	WorkloadFiles []string `json:"-"`
}

// ImageName is the scanned image as passed to the CLI.
func (c ContainerIssuesForImage) ImageName() string {
	return c.Path
}

type Docker struct {
	BaseImage string `json:"baseImage"`
}

type ContainerVulnerability struct {
	Id                    string   `json:"id"`
	Title                 string   `json:"title"`
	Severity              string   `json:"severity"`
	PackageName           string   `json:"packageName"`
	Version               string   `json:"version"`
	From                  []string `json:"from"`
	NearestFixedInVersion string   `json:"nearestFixedInVersion"`
}
