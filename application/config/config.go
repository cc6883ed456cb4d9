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

package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/denisbrodbeck/machineid"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/subosito/gotenv"

	"github.com/snyk/snyk-ide-core/internal/concurrency"
	"github.com/snyk/snyk-ide-core/internal/types"
)

const (
	cliPathKey      = "SNYK_CLI_PATH"
	SnykTokenKey    = "SNYK_TOKEN"
	logLevelKey     = "SNYK_LOG_LEVEL"
	reportErrorsKey = "SNYK_REPORT_ERRORS"
	DefaultEndpoint = "https://api.snyk.io"
	settingsFile    = "snyk/ide-core.yaml"
	IntegrationName = "snyk-ide-core"
)

var (
	Version       = "SNAPSHOT"
	Development   = "false"
	currentConfig *Config
	initMutex     = &sync.Mutex{}
)

// Config holds the runtime configuration and the persisted user settings of the client.
type Config struct {
	m                           sync.RWMutex
	logger                      *zerolog.Logger
	logLevel                    string
	logPath                     string
	logFile                     *os.File
	configFile                  string
	storageFile                 string
	cliPath                     string
	token                       string
	organization                string
	endpoint                    string
	deviceId                    string
	trustedFolders              []types.FilePath
	folderConfigs               map[types.FilePath]types.FolderConfig
	configLoaded                concurrency.AtomicBool
	insecure                    concurrency.AtomicBool
	isErrorReportingEnabled     concurrency.AtomicBool
	isSnykCodeEnabled           concurrency.AtomicBool
	isSnykOssEnabled            concurrency.AtomicBool
	isSnykIacEnabled            concurrency.AtomicBool
	isSnykContainerEnabled      concurrency.AtomicBool
	iacViaLanguageServer        concurrency.AtomicBool
	scanOnSave                  concurrency.AtomicBool
	manageBinariesAutomatically concurrency.AtomicBool
	trustedFolderFeatureEnabled concurrency.AtomicBool
}

func CurrentConfig() *Config {
	initMutex.Lock()
	defer initMutex.Unlock()
	if currentConfig == nil {
		currentConfig = New()
	}
	return currentConfig
}

func SetCurrentConfig(config *Config) {
	initMutex.Lock()
	defer initMutex.Unlock()
	currentConfig = config
}

func IsDevelopment() bool {
	parseBool, _ := strconv.ParseBool(Development)
	return parseBool
}

// New creates a configuration with defaults and the values of the environment. Nothing is persisted until
// SetStorageFile is called.
func New() *Config {
	c := &Config{}
	logger := zerolog.New(c.getConsoleWriter(os.Stderr)).With().Timestamp().Logger().Level(zerolog.InfoLevel)
	c.logger = &logger
	c.logLevel = zerolog.InfoLevel.String()
	c.endpoint = DefaultEndpoint
	c.folderConfigs = map[types.FilePath]types.FolderConfig{}
	c.isSnykOssEnabled.Set(true)
	c.isSnykCodeEnabled.Set(true)
	c.isSnykIacEnabled.Set(true)
	c.isSnykContainerEnabled.Set(false)
	c.scanOnSave.Set(true)
	c.manageBinariesAutomatically.Set(true)
	c.trustedFolderFeatureEnabled.Set(true)
	c.fromEnv()
	return c
}

func (c *Config) fromEnv() {
	if cliPath := os.Getenv(cliPathKey); cliPath != "" {
		c.cliPath = cliPath
	}
	if token := os.Getenv(SnykTokenKey); token != "" {
		c.token = token
	}
	if level := os.Getenv(logLevelKey); level != "" {
		c.logLevel = level
	}
	if reportErrors, err := strconv.ParseBool(os.Getenv(reportErrorsKey)); err == nil {
		c.isErrorReportingEnabled.Set(reportErrors)
	}
}

// Load reads the .env style config files into the environment and the persisted settings.
func (c *Config) Load() {
	for _, fileName := range c.configFiles() {
		c.loadFile(fileName)
	}
	c.m.Lock()
	c.fromEnv()
	c.m.Unlock()
	if err := c.loadStorage(); err != nil {
		c.Logger().Warn().Err(err).Str("method", "Load").Msg("couldn't load persisted settings")
	}
	c.configLoaded.Set(true)
}

func (c *Config) configFiles() []string {
	var files []string
	if c.configFile != "" {
		files = append(files, c.configFile)
	}
	home, err := os.UserHomeDir()
	if err == nil {
		files = append(files, filepath.Join(home, ".snyk.env"))
	}
	return append(files, ".snyk.env")
}

func (c *Config) loadFile(fileName string) {
	file, err := os.Open(fileName)
	if err != nil {
		c.Logger().Debug().Str("method", "loadFile").Msg("Couldn't load " + fileName)
		return
	}
	defer func(file *os.File) { _ = file.Close() }(file)
	env := gotenv.Parse(file)
	for k, v := range env {
		if _, exists := os.LookupEnv(k); exists {
			continue
		}
		if err := os.Setenv(k, v); err != nil {
			c.Logger().Warn().Str("method", "loadFile").Msg("Couldn't set environment variable " + k)
		}
	}
	c.Logger().Debug().Str("fileName", fileName).Msg("loaded.")
}

func (c *Config) IsLoaded() bool { return c.configLoaded.Get() }

func (c *Config) Logger() *zerolog.Logger {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.logger
}

func (c *Config) SetLogger(logger *zerolog.Logger) {
	c.m.Lock()
	defer c.m.Unlock()
	c.logger = logger
}

func (c *Config) LogLevel() string {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.logLevel
}

func (c *Config) SetLogLevel(level string) {
	c.m.Lock()
	defer c.m.Unlock()
	c.logLevel = level
}

func (c *Config) LogPath() string {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.logPath
}

func (c *Config) SetLogPath(logPath string) {
	c.m.Lock()
	defer c.m.Unlock()
	c.logPath = logPath
}

func (c *Config) SetConfigFile(configFile string) {
	c.m.Lock()
	defer c.m.Unlock()
	c.configFile = configFile
}

// DefaultLogPath is the log file used when logging to a file without an explicit path.
func DefaultLogPath() (string, error) {
	return xdg.StateFile("snyk/ide-core.log")
}

func (c *Config) ConfigureLogging(level string) {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		_, _ = fmt.Fprintln(os.Stderr, "Can't set log level from flag. Setting to default (=info)")
		logLevel = zerolog.InfoLevel
	}
	c.SetLogLevel(logLevel.String())

	var writer io.Writer = os.Stderr
	if logPath := c.LogPath(); logPath != "" {
		file, err := os.OpenFile(logPath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
		if err != nil {
			_, _ = fmt.Fprintln(os.Stderr, "couldn't open logfile")
		} else {
			c.m.Lock()
			c.logFile = file
			c.m.Unlock()
			writer = zerolog.MultiLevelWriter(os.Stderr, file)
		}
	}

	logger := zerolog.New(c.getConsoleWriter(writer)).With().Timestamp().Str("separator", "-").Str("method", "").Logger().Level(logLevel)
	c.SetLogger(&logger)
}

func (c *Config) getConsoleWriter(writer io.Writer) zerolog.ConsoleWriter {
	return zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = writer
		w.NoColor = true
		w.TimeFormat = time.RFC3339Nano
		w.PartsOrder = []string{
			zerolog.TimestampFieldName,
			zerolog.LevelFieldName,
			"method",
			"separator",
			zerolog.CallerFieldName,
			zerolog.MessageFieldName,
		}
		w.FieldsExclude = []string{"method", "separator"}
	})
}

// DisableLoggingToFile closes the open log file.
func (c *Config) DisableLoggingToFile() {
	c.m.Lock()
	defer c.m.Unlock()
	c.logPath = ""
	if c.logFile != nil {
		_ = c.logFile.Close()
		c.logFile = nil
	}
}

func (c *Config) Token() string {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.token
}

// SetToken stores and persists the token.
func (c *Config) SetToken(token string) {
	c.m.Lock()
	c.token = token
	c.m.Unlock()
	c.persist()
}

func (c *Config) NonEmptyToken() bool { return c.Token() != "" }

func (c *Config) CliPath() string {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.cliPath
}

func (c *Config) SetCliPath(cliPath string) {
	c.m.Lock()
	c.cliPath = cliPath
	c.m.Unlock()
	c.persist()
}

// CliInstalled reports whether the configured CLI path points to a file.
func (c *Config) CliInstalled() bool {
	path := c.CliPath()
	if path == "" {
		return false
	}
	stat, err := os.Stat(path)
	return err == nil && !stat.IsDir()
}

// DefaultCliPath is where the CLI is expected when no path is configured.
func DefaultCliPath() string {
	return filepath.Join(xdg.DataHome, "snyk-ls", cliExecutableName())
}

func (c *Config) Organization() string {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.organization
}

func (c *Config) SetOrganization(organization string) {
	c.m.Lock()
	c.organization = organization
	c.m.Unlock()
	c.persist()
}

func (c *Config) Endpoint() string {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.endpoint
}

func (c *Config) SetEndpoint(endpoint string) {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	c.m.Lock()
	c.endpoint = endpoint
	c.m.Unlock()
	c.persist()
}

// DeviceID identifies this machine without exposing the raw machine id.
func (c *Config) DeviceID() string {
	c.m.Lock()
	defer c.m.Unlock()
	if c.deviceId != "" {
		return c.deviceId
	}
	id, err := machineid.ProtectedID(IntegrationName)
	if err != nil {
		c.logger.Debug().Err(err).Str("method", "DeviceID").Msg("couldn't determine machine id, using random id")
		id = uuid.NewString()
	}
	c.deviceId = id
	return id
}

func (c *Config) IsInsecure() bool                       { return c.insecure.Get() }
func (c *Config) SetInsecure(insecure bool)              { c.insecure.Set(insecure) }
func (c *Config) IsErrorReportingEnabled() bool          { return c.isErrorReportingEnabled.Get() }
func (c *Config) SetErrorReportingEnabled(enabled bool)  { c.isErrorReportingEnabled.Set(enabled) }
func (c *Config) IsSnykOssEnabled() bool                 { return c.isSnykOssEnabled.Get() }
func (c *Config) SetSnykOssEnabled(enabled bool)         { c.isSnykOssEnabled.Set(enabled) }
func (c *Config) IsSnykCodeEnabled() bool                { return c.isSnykCodeEnabled.Get() }
func (c *Config) SetSnykCodeEnabled(enabled bool)        { c.isSnykCodeEnabled.Set(enabled) }
func (c *Config) IsSnykIacEnabled() bool                 { return c.isSnykIacEnabled.Get() }
func (c *Config) SetSnykIacEnabled(enabled bool)         { c.isSnykIacEnabled.Set(enabled) }
func (c *Config) IsSnykContainerEnabled() bool           { return c.isSnykContainerEnabled.Get() }
func (c *Config) SetSnykContainerEnabled(enabled bool)   { c.isSnykContainerEnabled.Set(enabled) }
func (c *Config) IsIacViaLanguageServer() bool           { return c.iacViaLanguageServer.Get() }
func (c *Config) SetIacViaLanguageServer(enabled bool)   { c.iacViaLanguageServer.Set(enabled) }
func (c *Config) IsScanOnSave() bool                     { return c.scanOnSave.Get() }
func (c *Config) SetScanOnSave(enabled bool)             { c.scanOnSave.Set(enabled) }
func (c *Config) ManageBinariesAutomatically() bool      { return c.manageBinariesAutomatically.Get() }
func (c *Config) SetManageBinariesAutomatically(on bool) { c.manageBinariesAutomatically.Set(on) }
func (c *Config) IsTrustedFolderFeatureEnabled() bool    { return c.trustedFolderFeatureEnabled.Get() }
func (c *Config) SetTrustedFolderFeatureEnabled(on bool) { c.trustedFolderFeatureEnabled.Set(on) }
