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
	"runtime"
	"strconv"

	"github.com/snyk/snyk-ide-core/internal/lsp"
)

// LspSettings returns the settings sent to the language server on initialize and on every change.
func (c *Config) LspSettings() lsp.Settings {
	trusted := c.TrustedFolders()
	trustedFolders := make([]string, 0, len(trusted))
	for _, folder := range trusted {
		trustedFolders = append(trustedFolders, string(folder))
	}
	return lsp.Settings{
		ActivateSnykOpenSource:      strconv.FormatBool(c.IsSnykOssEnabled()),
		ActivateSnykCode:            strconv.FormatBool(c.IsSnykCodeEnabled()),
		ActivateSnykIac:             strconv.FormatBool(c.IsSnykIacEnabled() && c.IsIacViaLanguageServer()),
		Insecure:                    strconv.FormatBool(c.IsInsecure()),
		Endpoint:                    c.Endpoint(),
		SendErrorReports:            strconv.FormatBool(c.IsErrorReportingEnabled()),
		Organization:                c.Organization(),
		EnableTelemetry:             "false",
		ManageBinariesAutomatically: strconv.FormatBool(c.ManageBinariesAutomatically()),
		CliPath:                     c.CliPath(),
		Token:                       c.Token(),
		IntegrationName:             IntegrationName,
		IntegrationVersion:          Version,
		AutomaticAuthentication:     "false",
		DeviceId:                    c.DeviceID(),
		EnableTrustedFoldersFeature: strconv.FormatBool(c.IsTrustedFolderFeatureEnabled()),
		TrustedFolders:              trustedFolders,
		ScanningMode:                scanningMode(c.IsScanOnSave()),
		OsPlatform:                  runtime.GOOS,
		OsArch:                      runtime.GOARCH,
	}
}

func scanningMode(auto bool) string {
	if auto {
		return "auto"
	}
	return "manual"
}
