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

package cli

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/snyk/snyk-ide-core/application/config"
)

const (
	ApiEnvVar                   = "SNYK_API"
	TokenEnvVar                 = config.SnykTokenKey
	DisableAnalyticsEnvVar      = "SNYK_CFG_DISABLE_ANALYTICS"
	IntegrationNameEnvVarKey    = "SNYK_INTEGRATION_NAME"
	IntegrationVersionEnvVarKey = "SNYK_INTEGRATION_VERSION"
)

// AppendCliEnvironmentVariables returns currentEnv with the variables of a CLI run appended. Existing
// values for the same keys are removed first. No token is added when appendToken is false.
func AppendCliEnvironmentVariables(c *config.Config, currentEnv []string, appendToken bool) []string {
	logger := c.Logger().With().Str("method", "AppendCliEnvironmentVariables").Logger()
	valuesToRemove := map[string]bool{
		ApiEnvVar:                   true,
		TokenEnvVar:                 true,
		DisableAnalyticsEnvVar:      true,
		IntegrationNameEnvVarKey:    true,
		IntegrationVersionEnvVarKey: true,
	}

	var updatedEnv []string
	for _, s := range currentEnv {
		key, _, _ := strings.Cut(s, "=")
		if valuesToRemove[key] {
			continue
		}
		updatedEnv = append(updatedEnv, s)
	}

	if appendToken && c.NonEmptyToken() {
		updatedEnv = append(updatedEnv, TokenEnvVar+"="+c.Token())
	}
	if endpoint := c.Endpoint(); endpoint != "" {
		logger.Debug().Msgf("adding endpoint: %s", endpoint)
		updatedEnv = append(updatedEnv, ApiEnvVar+"="+endpoint)
	}
	updatedEnv = append(updatedEnv, DisableAnalyticsEnvVar+"=1")
	updatedEnv = append(updatedEnv, IntegrationNameEnvVarKey+"="+config.IntegrationName)
	updatedEnv = append(updatedEnv, IntegrationVersionEnvVarKey+"="+config.Version)

	if c.Logger().GetLevel() == zerolog.TraceLevel {
		updatedEnv = append(updatedEnv, "SNYK_LOG_LEVEL=trace")
	}
	return updatedEnv
}
