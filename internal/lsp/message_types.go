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

package lsp

import (
	"encoding/json"

	sglsp "github.com/sourcegraph/go-lsp"
)

type PublishDiagnosticsParams struct {
	URI         sglsp.DocumentURI `json:"uri"`
	Diagnostics []Diagnostic      `json:"diagnostics"`
}

type DiagnosticSeverity int

const (
	DiagnosticsSeverityError       DiagnosticSeverity = 1
	DiagnosticsSeverityWarning     DiagnosticSeverity = 2
	DiagnosticsSeverityInformation DiagnosticSeverity = 3
	DiagnosticsSeverityHint        DiagnosticSeverity = 4
)

type Diagnostic struct {
	Range    sglsp.Range        `json:"range"`
	Severity DiagnosticSeverity `json:"severity,omitempty"`
	// Code can be string or int
	Code    any    `json:"code,omitempty"`
	Source  string `json:"source,omitempty"`
	Message string `json:"message"`
	/**
	* A data entry field that is preserved between a
	* `textDocument/publishDiagnostics` notification and
	* `textDocument/codeAction` request. Snyk sends the ScanIssue here.
	 */
	Data json.RawMessage `json:"data,omitempty"`
}

type InitializeResult struct {
	ServerInfo ServerInfo `json:"serverInfo,omitempty"`
}

type ServerInfo struct {
	Name    string `json:"name,omitempty"`
	Version string `json:"version,omitempty"`
}

type InitializeParams struct {
	ProcessID             int                `json:"processId,omitempty"`
	RootURI               sglsp.DocumentURI  `json:"rootUri,omitempty"`
	ClientInfo            sglsp.ClientInfo   `json:"clientInfo,omitempty"`
	InitializationOptions Settings           `json:"initializationOptions,omitempty"`
	Capabilities          ClientCapabilities `json:"capabilities"`
	WorkspaceFolders      []WorkspaceFolder  `json:"workspaceFolders,omitempty"`
}

type InitializedParams struct{}

type ClientCapabilities struct {
	Workspace WorkspaceClientCapabilities `json:"workspace,omitempty"`
	Window    WindowClientCapabilities    `json:"window,omitempty"`
}

type WorkspaceClientCapabilities struct {
	ApplyEdit        bool `json:"applyEdit,omitempty"`
	WorkspaceFolders bool `json:"workspaceFolders,omitempty"`
	Configuration    bool `json:"configuration,omitempty"`
	CodeLens         struct {
		RefreshSupport bool `json:"refreshSupport,omitempty"`
	} `json:"codeLens,omitempty"`
	InlineValue struct {
		RefreshSupport bool `json:"refreshSupport,omitempty"`
	} `json:"inlineValue,omitempty"`
}

type WindowClientCapabilities struct {
	WorkDoneProgress bool `json:"workDoneProgress,omitempty"`
}

type WorkspaceFolder struct {
	// The associated Uri for this workspace folder.
	Uri sglsp.DocumentURI `json:"uri,omitempty"`

	// The Name of the workspace folder. Used to refer to this
	// workspace folder in the user interface.
	Name string `json:"name,omitempty"`
}

type DidChangeWorkspaceFoldersParams struct {
	// The actual workspace folder change Event.
	Event WorkspaceFoldersChangeEvent `json:"Event,omitempty"`
}

// WorkspaceFoldersChangeEvent The workspace folder change event.
type WorkspaceFoldersChangeEvent struct {
	Added   []WorkspaceFolder `json:"Added,omitempty"`
	Removed []WorkspaceFolder `json:"Removed,omitempty"`
}

// Settings is sent as InitializationParams.InitializationOptions and with workspace/didChangeConfiguration.
// Booleans are strings on the wire.
type Settings struct {
	ActivateSnykOpenSource      string   `json:"activateSnykOpenSource,omitempty"`
	ActivateSnykCode            string   `json:"activateSnykCode,omitempty"`
	ActivateSnykIac             string   `json:"activateSnykIac,omitempty"`
	Insecure                    string   `json:"insecure,omitempty"`
	Endpoint                    string   `json:"endpoint,omitempty"`
	AdditionalParams            string   `json:"additionalParams,omitempty"`
	SendErrorReports            string   `json:"sendErrorReports,omitempty"`
	Organization                string   `json:"organization,omitempty"`
	EnableTelemetry             string   `json:"enableTelemetry,omitempty"`
	ManageBinariesAutomatically string   `json:"manageBinariesAutomatically,omitempty"`
	CliPath                     string   `json:"cliPath,omitempty"`
	Token                       string   `json:"token,omitempty"`
	IntegrationName             string   `json:"integrationName,omitempty"`
	IntegrationVersion          string   `json:"integrationVersion,omitempty"`
	AutomaticAuthentication     string   `json:"automaticAuthentication,omitempty"`
	DeviceId                    string   `json:"deviceId,omitempty"`
	EnableTrustedFoldersFeature string   `json:"enableTrustedFoldersFeature,omitempty"`
	TrustedFolders              []string `json:"trustedFolders,omitempty"`
	ScanningMode                string   `json:"scanningMode,omitempty"`
	OsPlatform                  string   `json:"osPlatform,omitempty"`
	OsArch                      string   `json:"osArch,omitempty"`
}

type DidChangeConfigurationParams struct {
	// The actual changed settings
	Settings Settings `json:"settings"`
}

type ExecuteCommandParams struct {
	Command   string `json:"command"`
	Arguments []any  `json:"arguments,omitempty"`
}

type AuthenticationParams struct {
	Token  string `json:"token"`
	ApiUrl string `json:"apiUrl,omitempty"`
}

type SnykIsAvailableCli struct {
	CliPath string `json:"cliPath"`
}

type ProgressToken string

type ProgressParams struct {
	Token ProgressToken `json:"token"`
	// Value is one of WorkDoneProgressBegin, WorkDoneProgressReport or WorkDoneProgressEnd, told apart by
	// its kind.
	Value json.RawMessage `json:"value,omitempty"`
}

const (
	WorkDoneProgressBeginKind  = "begin"
	WorkDoneProgressReportKind = "report"
	WorkDoneProgressEndKind    = "end"
)

type WorkDoneProgressKind struct {
	Kind string `json:"kind"`
}

type WorkDoneProgressBegin struct {
	WorkDoneProgressKind
	Title       string `json:"title"`
	Cancellable bool   `json:"cancellable,omitempty"`
	Message     string `json:"message,omitempty"`
	/**
	 * Optional progress percentage to display (value 100 is considered 100%).
	 * If not provided infinite progress is assumed.
	 *
	 * The value should be steadily rising. Clients are free to ignore values
	 * that are not following this rule. The value range is [0, 100].
	 */
	Percentage int `json:"percentage,omitempty"`
}

type WorkDoneProgressReport struct {
	WorkDoneProgressKind
	Cancellable bool   `json:"cancellable,omitempty"`
	Message     string `json:"message,omitempty"`
	Percentage  int    `json:"percentage,omitempty"`
}

type WorkDoneProgressEnd struct {
	WorkDoneProgressKind
	Message string `json:"message,omitempty"`
}

type WorkDoneProgressCreateParams struct {
	Token ProgressToken `json:"token"`
}

type WorkdoneProgressCancelParams struct {
	Token ProgressToken `json:"token"`
}

type MessageActionItem struct {
	Title string `json:"title"`
}

type ShowMessageParams struct {
	Type    MessageType `json:"type"`
	Message string      `json:"message"`
}

type ShowMessageRequestParams struct {
	Type    MessageType         `json:"type"`
	Message string              `json:"message"`
	Actions []MessageActionItem `json:"actions"`
}

type ApplyWorkspaceEditParams struct {
	// Label is presented in the user interface, for example on the undo stack.
	Label string               `json:"label,omitempty"`
	Edit  *sglsp.WorkspaceEdit `json:"edit"`
}

type ApplyWorkspaceEditResult struct {
	Applied       bool   `json:"applied"`
	FailureReason string `json:"failureReason,omitempty"`
}

type MessageType int

const Error MessageType = 1
const Warning MessageType = 2
const Info MessageType = 3
const Log MessageType = 4

type LogMessageParams struct {
	Type    MessageType `json:"type"`
	Message string      `json:"message"`
}

type LogTraceParams struct {
	Message string `json:"message"`
	Verbose string `json:"verbose"`
}

type SnykTrustedFoldersParams struct {
	TrustedFolders []string `json:"trustedFolders"`
}

// SnykScanParams is the type for the $/snyk.scan message
type SnykScanParams struct {
	// Status can be either inProgress, success or error
	Status string `json:"status"`
	// Product under scan as codename (code, oss, iac)
	Product string `json:"product"`
	// FolderPath is the root-folder of the current scan
	FolderPath   string      `json:"folderPath"`
	Issues       []ScanIssue `json:"issues,omitempty"`
	ErrorMessage string      `json:"errorMessage,omitempty"`
}

type ScanIssue struct {
	// Unique key identifying an issue in the whole result set. Not the same as the Snyk issue ID.
	Id                  string `json:"id"`
	Title               string `json:"title"`
	Severity            string `json:"severity"`
	FilePath            string `json:"filePath"`
	IsIgnored           bool   `json:"isIgnored,omitempty"`
	IsNew               bool   `json:"isNew,omitempty"`
	FilterableIssueType string `json:"filterableIssueType,omitempty"`
	// AdditionalData holds the product specific part, kept raw so views can decode it lazily.
	AdditionalData json.RawMessage `json:"additionalData,omitempty"`
}

type FolderConfigsParam struct {
	FolderConfigs []FolderConfig `json:"folderConfigs"`
}

type FolderConfig struct {
	FolderPath           string   `json:"folderPath"`
	BaseBranch           string   `json:"baseBranch"`
	LocalBranches        []string `json:"localBranches,omitempty"`
	AdditionalParameters []string `json:"additionalParameters,omitempty"`
	ReferenceFolderPath  string   `json:"referenceFolderPath,omitempty"`
	PreferredOrg         string   `json:"preferredOrg,omitempty"`
}
