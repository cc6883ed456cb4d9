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

package headless

import (
	"github.com/rs/zerolog"

	"github.com/snyk/snyk-ide-core/domain/ide/workspace"
	"github.com/snyk/snyk-ide-core/internal/lsp"
	"github.com/snyk/snyk-ide-core/internal/notification"
)

// EventLogger writes the events of projects to the log.
type EventLogger struct {
	logger *zerolog.Logger
}

func NewEventLogger(logger *zerolog.Logger) *EventLogger {
	return &EventLogger{logger: logger}
}

// Attach logs every event of project until the returned function is called.
func (e *EventLogger) Attach(project *workspace.Project) (detach func()) {
	logger := e.logger.With().Str("project", project.Name()).Logger()
	return project.Notifier().CreateListener(func(event any) {
		logEvent(&logger, event)
	})
}

func logEvent(logger *zerolog.Logger, event any) {
	switch e := event.(type) {
	case notification.ScanStartedEvent:
		logger.Info().Str("product", e.Product.String()).Str("folderPath", string(e.FolderPath)).Msg("scan started")
	case notification.ScanFinishedEvent:
		logger.Info().Str("product", e.Product.String()).Str("folderPath", string(e.FolderPath)).Msg("scan finished")
	case notification.ScanErrorEvent:
		logger.Warn().Str("product", e.Product.String()).Str("path", e.Error.Path).Msg(e.Error.Message)
	case notification.ScanStoppedEvent:
		logger.Info().
			Bool("oss", e.WasOssRunning).
			Bool("code", e.WasCodeRunning).
			Bool("iac", e.WasIacRunning).
			Bool("container", e.WasContainerRunning).
			Msg("scans stopped")
	case notification.DiagnosticsEvent:
		logger.Debug().Str("product", e.Product.String()).Str("file", string(e.File)).Int("issues", len(e.Issues)).Msg("diagnostics")
	case notification.ShowMessageEvent:
		logger.WithLevel(messageLevel(e.Type)).Msg(e.Message)
	case notification.ProjectClosedEvent:
		logger.Debug().Msg("project closed")
	case notification.RefreshEvent:
	default:
		logger.Trace().Interface("event", event).Msg("unhandled event")
	}
}

func messageLevel(messageType lsp.MessageType) zerolog.Level {
	switch messageType {
	case lsp.Error:
		return zerolog.ErrorLevel
	case lsp.Warning:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}
