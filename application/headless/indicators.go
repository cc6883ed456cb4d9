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

// Package headless implements the frontend collaborators of the scan core for running without an IDE:
// progress and events go to the log, questions go to the console.
package headless

import (
	"github.com/rs/zerolog"

	"github.com/snyk/snyk-ide-core/internal/progress"
)

// LoggingIndicators renders progress handles as log lines.
type LoggingIndicators struct {
	logger *zerolog.Logger
}

func NewLoggingIndicators(logger *zerolog.Logger) *LoggingIndicators {
	l := logger.With().Str("component", "progress").Logger()
	return &LoggingIndicators{logger: &l}
}

func (l *LoggingIndicators) NewIndicator(h *progress.Handle) (progress.Indicator, error) {
	l.logger.Info().Str("token", string(h.Token())).Str("title", h.Title()).Msg(h.Message())
	return &loggingIndicator{logger: l.logger, lastPercentage: -10}, nil
}

type loggingIndicator struct {
	logger         *zerolog.Logger
	lastPercentage int
}

// Update logs at most one line per ten percent of progress.
func (i *loggingIndicator) Update(h *progress.Handle) {
	event := i.logger.Debug()
	if !h.IsIndeterminate() {
		percentage := int(h.Fraction() * 100)
		if percentage/10 == i.lastPercentage/10 {
			return
		}
		i.lastPercentage = percentage
		event = event.Int("percentage", percentage)
	}
	event.Str("token", string(h.Token())).Str("title", h.Title()).Msg(h.Message())
}

func (i *loggingIndicator) Finish(h *progress.Handle) {
	i.logger.Info().
		Str("token", string(h.Token())).
		Str("title", h.Title()).
		Bool("cancelled", h.IsCancelled()).
		Msg(h.Message())
}
