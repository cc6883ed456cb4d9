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
	"os"
	"os/exec"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/snyk/snyk-ide-core/application/config"
	"github.com/snyk/snyk-ide-core/domain/observability/error_reporting"
	"github.com/snyk/snyk-ide-core/internal/types"
)

// ProcessCancelledByUser is returned as output of a CLI run whose context was cancelled.
const ProcessCancelledByUser = "PROCESS_CANCELLED_BY_USER"

//go:generate mockgen -source=cli.go -destination mock_cli/executor_mock.go -package mock_cli

type Executor interface {
	Execute(ctx context.Context, cmd []string, workingDir types.FilePath) (resp []byte, err error)
	ExpandParametersFromConfig(base []string) []string
}

type SnykCli struct {
	errorReporter error_reporting.ErrorReporter
	semaphore     chan int
	cliTimeout    time.Duration
	c             *config.Config
}

func NewExecutor(c *config.Config, errorReporter error_reporting.ErrorReporter) *SnykCli {
	concurrencyLimit := 2

	return &SnykCli{
		errorReporter: errorReporter,
		semaphore:     make(chan int, concurrencyLimit),
		cliTimeout:    90 * time.Minute,
		c:             c,
	}
}

// Execute runs the CLI. An exit code of 1 means issues were found and is not an error. A cancelled context
// yields ProcessCancelledByUser as output.
func (s *SnykCli) Execute(ctx context.Context, cmd []string, workingDir types.FilePath) (resp []byte, err error) {
	logger := s.c.Logger().With().Str("method", "SnykCli.Execute").Logger()
	if len(cmd) == 0 {
		return nil, errors.New("no command given")
	}
	logger.Debug().Interface("cmd", cmd).Str("workingDir", string(workingDir)).Msg("calling Snyk CLI")

	// set deadline to handle CLI hanging when obtaining semaphore
	ctx, cancel := context.WithTimeout(ctx, s.cliTimeout)
	defer cancel()

	select {
	case s.semaphore <- 1:
		defer func() { <-s.semaphore }()
	case <-ctx.Done():
		return cancelledOrTimeout(ctx)
	}

	output, err := s.doExecute(ctx, cmd, workingDir)
	logger.Trace().Str("response", string(output)).Send()
	if ctx.Err() != nil {
		return cancelledOrTimeout(ctx)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		return output, nil
	}
	if err != nil {
		logger.Err(err).Msg("CLI run failed")
		if len(output) == 0 {
			s.errorReporter.CaptureError(err)
		}
		return output, errors.Wrap(err, "snyk cli run failed")
	}
	return output, nil
}

func cancelledOrTimeout(ctx context.Context) ([]byte, error) {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return nil, errors.Wrap(ctx.Err(), "snyk cli timed out")
	}
	return []byte(ProcessCancelledByUser), nil
}

func (s *SnykCli) doExecute(ctx context.Context, cmd []string, workingDir types.FilePath) ([]byte, error) {
	command := s.getCommand(ctx, cmd, workingDir)
	command.Stderr = s.c.Logger()
	return command.Output()
}

func (s *SnykCli) getCommand(ctx context.Context, cmd []string, workingDir types.FilePath) *exec.Cmd {
	logger := s.c.Logger().With().Str("method", "getCommand").Logger()
	if s.c.Logger().GetLevel() < zerolog.InfoLevel {
		cmd = append(cmd, "-d")
	}
	command := exec.CommandContext(ctx, cmd[0], cmd[1:]...)
	command.Dir = string(workingDir)
	command.Env = AppendCliEnvironmentVariables(s.c, os.Environ(), true)
	logger.Trace().Interface("command.Args", command.Args).Send()
	logger.Trace().Str("command.Dir", command.Dir).Send()
	return command
}

// ExpandParametersFromConfig adds the configured organization and the insecure flag to the base command.
func (s *SnykCli) ExpandParametersFromConfig(base []string) []string {
	expandedParams := append([]string{}, base...)
	if s.c.IsInsecure() {
		expandedParams = append(expandedParams, "--insecure")
	}
	if org := s.c.Organization(); org != "" {
		expandedParams = append(expandedParams, "--org="+org)
	}
	return expandedParams
}
