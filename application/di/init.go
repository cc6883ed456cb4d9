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

package di

import (
	"io"
	"os"
	"sync"

	"github.com/snyk/snyk-ide-core/application/client"
	"github.com/snyk/snyk-ide-core/application/config"
	"github.com/snyk/snyk-ide-core/application/headless"
	"github.com/snyk/snyk-ide-core/application/taskqueue"
	"github.com/snyk/snyk-ide-core/domain/ide/diagnostics"
	"github.com/snyk/snyk-ide-core/domain/ide/workspace"
	er "github.com/snyk/snyk-ide-core/domain/observability/error_reporting"
	"github.com/snyk/snyk-ide-core/domain/scanstates"
	"github.com/snyk/snyk-ide-core/infrastructure/cli"
	"github.com/snyk/snyk-ide-core/infrastructure/container"
	"github.com/snyk/snyk-ide-core/infrastructure/filesystem"
	"github.com/snyk/snyk-ide-core/infrastructure/iac"
	"github.com/snyk/snyk-ide-core/infrastructure/languageserver"
	"github.com/snyk/snyk-ide-core/infrastructure/sentry"
	"github.com/snyk/snyk-ide-core/internal/progress"
)

var errorReporter er.ErrorReporter
var snykCli cli.Executor
var iacScanner *iac.Scanner
var containerScanner *container.Scanner
var fileSystem *filesystem.Filesystem
var session *languageserver.Session
var tracker *scanstates.Tracker
var ws *workspace.Workspace
var registry *progress.Registry
var bridge *diagnostics.Bridge
var cliDiscovery *headless.CliDiscovery
var presenter *headless.ConsolePresenter
var eventLogger *headless.EventLogger
var scanManager *taskqueue.Manager
var lsClient *client.Client
var projects *headless.Projects
var initMutex = &sync.Mutex{}

// Init wires the components for the current configuration, asking questions on stdout and reading the
// answers from stdin.
func Init() {
	initMutex.Lock()
	defer initMutex.Unlock()
	c := config.CurrentConfig()
	errorReporter = sentry.NewSentryErrorReporter(c)
	initInfrastructure(c)
	initDomain(c)
	initApplication(c, os.Stdout, os.Stdin)
}

func initInfrastructure(c *config.Config) {
	snykCli = cli.NewExecutor(c, errorReporter)
	iacScanner = iac.New(c, snykCli)
	containerScanner = container.New(c, snykCli)
	fileSystem = filesystem.New(c.Logger())
	session = languageserver.NewSession()
}

func initDomain(c *config.Config) {
	tracker = scanstates.NewTracker()
	ws = workspace.New(tracker)
	bridge = diagnostics.NewBridge(c.Logger(), ws)
}

func initApplication(c *config.Config, out io.Writer, in io.Reader) {
	// don't use getters or it'll deadlock
	registry = progress.NewRegistry(c.Logger(), headless.NewLoggingIndicators(c.Logger()), progress.WithCancelSender(session))
	cliDiscovery = headless.NewCliDiscovery(c)
	presenter = headless.NewConsolePresenter(c.Logger(), out, in)
	eventLogger = headless.NewEventLogger(c.Logger())
	scanManager = taskqueue.NewManager(c, tracker, registry, errorReporter, taskqueue.Collaborators{
		TrustGate:        headless.NewTrustGate(c),
		DocumentSaver:    headless.DocumentSaver{},
		Downloader:       cliDiscovery,
		ScanTrigger:      session,
		IacScanner:       iacScanner,
		ContainerScanner: containerScanner,
	})
	lsClient = client.New(c, client.Dependencies{
		Workspace:        ws,
		Tracker:          tracker,
		Registry:         registry,
		Bridge:           bridge,
		Scanner:          scanManager,
		EditApplier:      fileSystem,
		MessageRequester: presenter,
		ErrorReporter:    errorReporter,
	})
	lsClient.SetConfigurationPusher(session)
	projects = headless.NewProjects(c.Logger(), ws, session, scanManager, eventLogger)
}

func ErrorReporter() er.ErrorReporter {
	initMutex.Lock()
	defer initMutex.Unlock()
	return errorReporter
}

func Session() *languageserver.Session {
	initMutex.Lock()
	defer initMutex.Unlock()
	return session
}

func Workspace() *workspace.Workspace {
	initMutex.Lock()
	defer initMutex.Unlock()
	return ws
}

func Tracker() *scanstates.Tracker {
	initMutex.Lock()
	defer initMutex.Unlock()
	return tracker
}

func Registry() *progress.Registry {
	initMutex.Lock()
	defer initMutex.Unlock()
	return registry
}

func ScanManager() *taskqueue.Manager {
	initMutex.Lock()
	defer initMutex.Unlock()
	return scanManager
}

func Client() *client.Client {
	initMutex.Lock()
	defer initMutex.Unlock()
	return lsClient
}

func Projects() *headless.Projects {
	initMutex.Lock()
	defer initMutex.Unlock()
	return projects
}

func CliDiscovery() *headless.CliDiscovery {
	initMutex.Lock()
	defer initMutex.Unlock()
	return cliDiscovery
}
