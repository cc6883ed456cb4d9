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

// Package iac runs Snyk Infrastructure as Code scans through the CLI.
package iac

import (
	"context"

	"github.com/snyk/snyk-ide-core/application/config"
	"github.com/snyk/snyk-ide-core/infrastructure/cli"
	"github.com/snyk/snyk-ide-core/internal/types"
)

const successKey = `"infrastructureAsCodeIssues":`

type Scanner struct {
	scanner *cli.Scanner[IacIssuesResult]
}

func New(c *config.Config, executor cli.Executor) *Scanner {
	return &Scanner{scanner: cli.NewScanner[IacIssuesResult](c, executor, successKey)}
}

// Scan runs `snyk iac test` in the project base path.
func (sc *Scanner) Scan(ctx context.Context, basePath types.FilePath) cli.Result[IacIssuesResult] {
	return sc.scanner.Scan(ctx, basePath, "iac", "test")
}

// IssueCount is the number of issues across all scanned files.
func IssueCount(result cli.Result[IacIssuesResult]) int {
	count := 0
	for _, r := range result.Results {
		count += len(r.IacIssues)
	}
	return count
}
