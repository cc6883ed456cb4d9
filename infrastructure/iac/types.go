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

package iac

type IacIssuesResult struct {
	TargetFile        string     `json:"targetFile"`
	DisplayTargetFile string     `json:"displayTargetFile"`
	PackageManager    string     `json:"packageManager"`
	Path              string     `json:"path"`
	IacIssues         []IacIssue `json:"infrastructureAsCodeIssues"`
}

type IacDescription struct {
	Issue   string `json:"issue"`
	Impact  string `json:"impact"`
	Resolve string `json:"resolve"`
}

type IacIssue struct {
	Id             string         `json:"id"`
	PublicID       string         `json:"publicId"`
	Title          string         `json:"title"`
	Severity       string         `json:"severity"`
	LineNumber     int            `json:"lineNumber"`
	Documentation  string         `json:"documentation"`
	Path           []string       `json:"path"`
	IacDescription IacDescription `json:"iacDescription"`
}
