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

// Methods the language server sends to the client.
const (
	MethodSnykScan               = "$/snyk.scan"
	MethodHasAuthenticated       = "$/snyk.hasAuthenticated"
	MethodIsAvailableCli         = "$/snyk.isAvailableCli"
	MethodAddTrustedFolders      = "$/snyk.addTrustedFolders"
	MethodFolderConfigs          = "$/snyk.folderConfigs"
	MethodPublishDiagnostics     = "textDocument/publishDiagnostics"
	MethodProgress               = "$/progress"
	MethodLogTrace               = "$/logTrace"
	MethodLogMessage             = "window/logMessage"
	MethodShowMessage            = "window/showMessage"
	MethodShowMessageRequest     = "window/showMessageRequest"
	MethodWorkDoneProgressCreate = "window/workDoneProgress/create"
	MethodApplyEdit              = "workspace/applyEdit"
	MethodCodeLensRefresh        = "workspace/codeLens/refresh"
	MethodInlineValueRefresh     = "workspace/inlineValue/refresh"
	MethodTelemetryEvent         = "telemetry/event"
)

// Methods the client sends to the language server.
const (
	MethodInitialize                = "initialize"
	MethodInitialized               = "initialized"
	MethodShutdown                  = "shutdown"
	MethodExit                      = "exit"
	MethodExecuteCommand            = "workspace/executeCommand"
	MethodDidChangeConfiguration    = "workspace/didChangeConfiguration"
	MethodDidChangeWorkspaceFolders = "workspace/didChangeWorkspaceFolders"
	MethodWorkDoneProgressCancel    = "window/workDoneProgress/cancel"
)

// Commands executed through workspace/executeCommand.
const (
	CommandWorkspaceScan       = "snyk.workspace.scan"
	CommandWorkspaceFolderScan = "snyk.workspaceFolder.scan"
)
