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
	"context"

	"github.com/snyk/snyk-ide-core/application/config"
	"github.com/snyk/snyk-ide-core/internal/types"
)

// Scanner runs one CLI product command and parses its json output.
type Scanner[T any] struct {
	c          *config.Config
	executor   Executor
	successKey string
}

func NewScanner[T any](c *config.Config, executor Executor, successKey string) *Scanner[T] {
	return &Scanner[T]{c: c, executor: executor, successKey: successKey}
}

// Scan runs `snyk <args> --json` in workingDir. Errors without a path are attributed to workingDir.
func (s *Scanner[T]) Scan(ctx context.Context, workingDir types.FilePath, args ...string) Result[T] {
	logger := s.c.Logger().With().Str("method", "Scanner.Scan").Str("workingDir", string(workingDir)).Logger()
	if ctx.Err() != nil {
		return Result[T]{Cancelled: true}
	}

	cmd := append([]string{s.c.CliPath()}, args...)
	cmd = append(cmd, "--json")
	cmd = s.executor.ExpandParametersFromConfig(cmd)

	output, err := s.executor.Execute(ctx, cmd, workingDir)
	var result Result[T]
	if err != nil && len(output) == 0 {
		logger.Err(err).Msg("CLI run produced no output")
		result = Result[T]{Error: &types.SnykError{Message: err.Error()}}
	} else {
		result = ParseOutput[T](string(output), s.successKey)
	}
	if result.Error != nil && result.Error.Path == "" {
		result.Error.Path = string(workingDir)
	}
	logger.Debug().Bool("cancelled", result.Cancelled).Int("results", len(result.Results)).Msg("CLI scan done")
	return result
}
