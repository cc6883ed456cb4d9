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

package sentry

import (
	"strings"
	"sync"

	"github.com/getsentry/sentry-go"

	"github.com/snyk/snyk-ide-core/application/config"
)

const sentryDsn = "https://f760a2feb30c40198cef550edf6221de@o30291.ingest.sentry.io/6242547"

const redacted = "***"

var initOnce sync.Once

func initializeSentry(c *config.Config) {
	initOnce.Do(func() {
		logger := c.Logger().With().Str("method", "initializeSentry").Logger()
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              sentryDsn,
			Environment:      sentryEnvironment(),
			Release:          config.Version,
			Debug:            config.IsDevelopment(),
			BeforeSend:       beforeSend(c),
			AttachStacktrace: true,
		})
		if err != nil {
			logger.Error().Err(err).Msg("couldn't initialize sentry")
			return
		}
		sentry.ConfigureScope(func(scope *sentry.Scope) {
			scope.SetTag("integration", config.IntegrationName)
			if device := c.DeviceID(); device != "" {
				scope.SetUser(sentry.User{ID: device})
			}
		})
		logger.Info().Msg("Error reporting initialized")
	})
}

// beforeSend drops events while error reporting is disabled and removes the token from the rest.
func beforeSend(c *config.Config) func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
	return func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
		if !c.IsErrorReportingEnabled() {
			return nil
		}
		token := c.Token()
		if token == "" {
			return event
		}
		event.Message = strings.ReplaceAll(event.Message, token, redacted)
		for i := range event.Exception {
			event.Exception[i].Value = strings.ReplaceAll(event.Exception[i].Value, token, redacted)
		}
		return event
	}
}

func sentryEnvironment() string {
	if config.IsDevelopment() {
		return "development"
	}
	return "production"
}
