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

package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/snyk/snyk-ide-core/application/config"
	"github.com/snyk/snyk-ide-core/application/di"
	"github.com/snyk/snyk-ide-core/application/entrypoint"
	"github.com/snyk/snyk-ide-core/infrastructure/languageserver"
	"github.com/snyk/snyk-ide-core/internal/types"
)

const (
	shutdownTimeout     = 5 * time.Second
	cliDiscoveryTimeout = 30 * time.Second
)

type options struct {
	logLevel        string
	logLevelChanged bool
	logFile         string
	configFile      string
	cliPath         string
	folders         []string
	reportErrors    bool
	parentPid       int
	printVersion    bool
}

func main() {
	output, opts, err := parseFlags(os.Args)
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err, output)
		os.Exit(1)
	}
	if opts.printVersion {
		_, _ = fmt.Fprintln(os.Stdout, config.Version)
		return
	}
	os.Exit(run(opts))
}

func parseFlags(args []string) (string, *options, error) {
	flags := pflag.NewFlagSet(args[0], pflag.ContinueOnError)
	var buf bytes.Buffer
	flags.SetOutput(&buf)

	opts := &options{}
	flags.StringVarP(&opts.logLevel, "logLevel", "l", "info", "sets the log-level to <trace|debug|info|warn|error|fatal>")
	flags.StringVarP(&opts.logFile, "logFile", "f", "", "sets the log file, logs to stderr only if empty")
	flags.StringVarP(&opts.configFile, "configFile", "c", "", "provide the full path of a config file to use. Format VARIABLENAME=VARIABLEVALUE")
	flags.StringVar(&opts.cliPath, "cliPath", "", "path of the snyk CLI, overrides the persisted setting")
	flags.StringArrayVar(&opts.folders, "folder", nil, "folder to open as project, can be repeated. Defaults to the working directory")
	flags.BoolVar(&opts.reportErrors, "reportErrors", false, "enables error reporting")
	flags.IntVar(&opts.parentPid, "parentPid", 0, "exit when the process with this pid ends")
	flags.BoolVarP(&opts.printVersion, "version", "v", false, "prints the version")

	if err := flags.Parse(args[1:]); err != nil {
		return buf.String(), nil, err
	}
	opts.logLevelChanged = flags.Changed("logLevel")
	return buf.String(), opts, nil
}

func configure(opts *options) *config.Config {
	c := config.New()
	c.SetConfigFile(opts.configFile)
	c.SetLogPath(opts.logFile)
	if storageFile, err := config.DefaultStorageFile(); err == nil {
		c.SetStorageFile(storageFile)
	} else {
		_, _ = fmt.Fprintln(os.Stderr, "settings won't be persisted:", err)
	}
	c.Load()

	level := c.LogLevel()
	if opts.logLevelChanged {
		level = opts.logLevel
	}
	c.ConfigureLogging(level)
	if opts.cliPath != "" {
		c.SetCliPath(opts.cliPath)
	}
	if opts.reportErrors {
		c.SetErrorReportingEnabled(true)
	}
	config.SetCurrentConfig(c)
	return c
}

func run(opts *options) (exitCode int) {
	c := configure(opts)
	logger := c.Logger().With().Str("method", "main.run").Logger()
	logger.Info().Str("version", config.Version).Msg(config.IntegrationName + " starting")
	entrypoint.ApplyDefaultCPUCap(c.Logger())

	di.Init()
	defer entrypoint.OnPanicRecover(di.ErrorReporter())
	defer di.ErrorReporter().FlushErrorReporting()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	projects := di.Projects()
	for _, folder := range foldersOrWorkingDir(opts.folders) {
		if _, err := projects.Open(ctx, filepath.Base(folder), false, types.FilePath(folder)); err != nil {
			logger.Error().Err(err).Str("folder", folder).Msg("couldn't open folder")
		}
	}

	if err := ensureCli(ctx, c); err != nil {
		logger.Error().Err(err).Msg("can't start language server")
		return 1
	}

	process, err := languageserver.Launch(ctx, c, di.Client())
	if err != nil {
		logger.Error().Err(err).Msg("can't start language server")
		di.ErrorReporter().CaptureError(err)
		return 1
	}
	session := di.Session()
	session.Attach(process.Connection)

	result, err := process.Initialize(ctx, di.Workspace().Projects())
	if err != nil {
		logger.Error().Err(err).Msg("language server initialization failed")
		shutdown(c.Logger(), process)
		return 1
	}
	logger.Info().Str("server", result.ServerInfo.Name).Str("serverVersion", result.ServerInfo.Version).Msg("language server initialized")

	for _, project := range di.Workspace().Projects() {
		di.ScanManager().Scan(project, true)
	}

	select {
	case <-ctx.Done():
		logger.Info().Msg("received signal, shutting down")
	case <-parentExited(ctx, opts.parentPid):
		logger.Info().Int("parentPid", opts.parentPid).Msg("parent process ended, shutting down")
	case <-process.Exited():
		logger.Error().Err(process.Err()).Msg("language server exited unexpectedly")
		exitCode = 1
	}

	projects.LogSummary()
	projects.CloseAll(context.Background())
	shutdown(c.Logger(), process)
	return exitCode
}

func foldersOrWorkingDir(folders []string) []string {
	if len(folders) == 0 {
		wd, err := os.Getwd()
		if err != nil {
			return nil
		}
		folders = []string{wd}
	}
	result := make([]string, 0, len(folders))
	for _, folder := range folders {
		if abs, err := filepath.Abs(folder); err == nil {
			folder = abs
		}
		result = append(result, folder)
	}
	return result
}

// ensureCli looks for a CLI if none is configured and waits for the lookup to end.
func ensureCli(ctx context.Context, c *config.Config) error {
	if c.CliInstalled() {
		return nil
	}
	discovery := di.CliDiscovery()
	discovery.DownloadLatestRelease(ctx)

	ctx, cancel := context.WithTimeout(ctx, cliDiscoveryTimeout)
	defer cancel()
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for discovery.IsDownloading() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	if !c.CliInstalled() {
		return errors.Errorf("snyk CLI not found, configure it with --cliPath")
	}
	return nil
}

func parentExited(ctx context.Context, pid int) <-chan struct{} {
	if pid <= 0 {
		return nil
	}
	return languageserver.MonitorProcess(ctx, pid, languageserver.DefaultMonitorInterval)
}

func shutdown(logger *zerolog.Logger, process *languageserver.Process) {
	di.Client().Dispose()
	di.ScanManager().Dispose()
	di.Registry().Close()
	di.Session().Detach()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := process.Shutdown(ctx); err != nil {
		logger.Debug().Err(err).Msg("language server shutdown failed")
	}
}
