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

// Package container runs Snyk Container scans for images referenced by Kubernetes workloads.
package container

import (
	"context"

	"github.com/snyk/snyk-ide-core/application/config"
	"github.com/snyk/snyk-ide-core/infrastructure/cli"
	"github.com/snyk/snyk-ide-core/internal/types"
)

const successKey = `"vulnerabilities":`

type Scanner struct {
	c       *config.Config
	scanner *cli.Scanner[ContainerIssuesForImage]
}

func New(c *config.Config, executor cli.Executor) *Scanner {
	return &Scanner{c: c, scanner: cli.NewScanner[ContainerIssuesForImage](c, executor, successKey)}
}

// Scan tests every image found in the manifests below roots. Without images the result is empty and
// successful and the CLI is not run.
func (sc *Scanner) Scan(ctx context.Context, roots ...types.FilePath) cli.Result[ContainerIssuesForImage] {
	logger := sc.c.Logger().With().Str("method", "container.Scan").Logger()
	if len(roots) == 0 {
		return cli.Result[ContainerIssuesForImage]{}
	}
	images := DiscoverImages(logger, roots...)
	if len(images) == 0 {
		logger.Debug().Msg("no container images found")
		return cli.Result[ContainerIssuesForImage]{}
	}

	args := []string{"container", "test"}
	filesByImage := map[string][]string{}
	for _, image := range images {
		args = append(args, image.Image)
		for _, file := range image.Files {
			filesByImage[image.Image] = append(filesByImage[image.Image], string(file))
		}
	}
	result := sc.scanner.Scan(ctx, roots[0], args...)
	for i := range result.Results {
		result.Results[i].WorkloadFiles = filesByImage[result.Results[i].ImageName()]
	}
	return result
}

// IssueCount is the number of vulnerabilities across all images.
func IssueCount(result cli.Result[ContainerIssuesForImage]) int {
	count := 0
	for _, r := range result.Results {
		count += len(r.Vulnerabilities)
	}
	return count
}
