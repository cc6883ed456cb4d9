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
	"context"
	"os"
	"os/exec"

	"github.com/snyk/snyk-ide-core/application/config"
	"github.com/snyk/snyk-ide-core/internal/concurrency"
)

const cliExecutable = "snyk"

// CliDiscovery stands in for the CLI download: it looks for an installed CLI in the default location and
// on the PATH. Discovery runs in the background like a download would.
type CliDiscovery struct {
	c           *config.Config
	lookPath    func(file string) (string, error)
	discovering concurrency.AtomicBool
}

func NewCliDiscovery(c *config.Config) *CliDiscovery {
	return &CliDiscovery{c: c, lookPath: exec.LookPath}
}

func (d *CliDiscovery) DownloadLatestRelease(ctx context.Context) {
	if !d.discovering.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer d.discovering.Set(false)
		d.discover(ctx)
	}()
}

func (d *CliDiscovery) discover(ctx context.Context) {
	logger := d.c.Logger().With().Str("method", "CliDiscovery.discover").Logger()
	if d.c.CliInstalled() || ctx.Err() != nil {
		return
	}
	candidates := []string{config.DefaultCliPath()}
	if path, err := d.lookPath(cliExecutable); err == nil {
		candidates = append(candidates, path)
	}
	for _, candidate := range candidates {
		if stat, err := os.Stat(candidate); err == nil && !stat.IsDir() {
			d.c.SetCliPath(candidate)
			logger.Info().Str("cliPath", candidate).Msg("found snyk cli")
			return
		}
	}
	logger.Warn().Msg("snyk cli not found, install it or pass --cli-path")
}

func (d *CliDiscovery) StopDownload() {}

func (d *CliDiscovery) IsDownloading() bool {
	return d.discovering.Get()
}
