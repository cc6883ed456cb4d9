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

package languageserver

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/handler"
	"github.com/creachadair/jrpc2/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snyk/snyk-ide-core/application/config"
	"github.com/snyk/snyk-ide-core/domain/ide/workspace"
	"github.com/snyk/snyk-ide-core/internal/lsp"
	"github.com/snyk/snyk-ide-core/internal/testutil"
	"github.com/snyk/snyk-ide-core/internal/types"
)

func recording(recorder *testutil.JsonRPCRecorder, result any) handler.Func {
	return handler.New(func(_ context.Context, req *jrpc2.Request) (any, error) {
		recorder.Record(req)
		return result, nil
	})
}

func setupConnection(t *testing.T) (*config.Config, *Connection, *testutil.JsonRPCRecorder) {
	t.Helper()
	c := testutil.UnitTest(t)
	recorder := &testutil.JsonRPCRecorder{}
	handlers := handler.Map{
		lsp.MethodInitialize: recording(recorder, lsp.InitializeResult{
			ServerInfo: lsp.ServerInfo{Name: "snyk-ls", Version: "v1"},
		}),
		lsp.MethodInitialized:               recording(recorder, nil),
		lsp.MethodExecuteCommand:            recording(recorder, nil),
		lsp.MethodDidChangeConfiguration:    recording(recorder, nil),
		lsp.MethodDidChangeWorkspaceFolders: recording(recorder, nil),
		lsp.MethodWorkDoneProgressCancel:    recording(recorder, nil),
		lsp.MethodShutdown:                  recording(recorder, nil),
		lsp.MethodExit:                      recording(recorder, nil),
	}
	loc := server.NewLocal(handlers, &server.LocalOptions{})
	t.Cleanup(func() { _ = loc.Close() })

	connection := NewConnection(c, loc.Client)
	connection.retryInterval = 5 * time.Millisecond
	return c, connection, recorder
}

func project(t *testing.T, name string, roots ...types.FilePath) *workspace.Project {
	t.Helper()
	return workspace.NewProject(config.CurrentConfig().Logger(), name, roots...)
}

func Test_Initialize_sendsSettingsAndFolders(t *testing.T) {
	c, connection, recorder := setupConnection(t)
	root := types.FilePath(t.TempDir())

	result, err := connection.Initialize(context.Background(), []*workspace.Project{project(t, "p", root)})

	require.NoError(t, err)
	assert.Equal(t, "snyk-ls", result.ServerInfo.Name)
	assert.True(t, connection.IsInitialized())

	initialize := recorder.FindCallbacksByMethod(lsp.MethodInitialize)
	require.Len(t, initialize, 1)
	var params lsp.InitializeParams
	require.NoError(t, initialize[0].UnmarshalParams(&params))
	assert.Equal(t, os.Getpid(), params.ProcessID)
	assert.Equal(t, c.Token(), params.InitializationOptions.Token)
	require.Len(t, params.WorkspaceFolders, 1)
	assert.Equal(t, "p", params.WorkspaceFolders[0].Name)
	assert.True(t, params.Capabilities.Window.WorkDoneProgress)

	assert.Eventually(t, func() bool {
		return len(recorder.FindNotificationsByMethod(lsp.MethodInitialized)) == 1
	}, time.Second, 10*time.Millisecond)
}

func Test_SendScanCommand_beforeInitialize_fails(t *testing.T) {
	_, connection, recorder := setupConnection(t)

	err := connection.SendScanCommand(context.Background(), project(t, "p", types.FilePath(t.TempDir())))

	assert.ErrorIs(t, err, ErrNotInitialized)
	assert.Empty(t, recorder.Callbacks())
}

func Test_SendScanCommand_executesFolderScanForEveryRoot(t *testing.T) {
	_, connection, recorder := setupConnection(t)
	first := types.FilePath(t.TempDir())
	second := types.FilePath(t.TempDir())
	_, err := connection.Initialize(context.Background(), nil)
	require.NoError(t, err)

	err = connection.SendScanCommand(context.Background(), project(t, "p", first, second))

	require.NoError(t, err)
	commands := recorder.FindCallbacksByMethod(lsp.MethodExecuteCommand)
	require.Len(t, commands, 2)
	var folders []string
	for _, command := range commands {
		var params lsp.ExecuteCommandParams
		require.NoError(t, command.UnmarshalParams(&params))
		assert.Equal(t, lsp.CommandWorkspaceFolderScan, params.Command)
		require.Len(t, params.Arguments, 1)
		folders = append(folders, params.Arguments[0].(string))
	}
	assert.ElementsMatch(t, []string{string(types.PathKey(first)), string(types.PathKey(second))}, folders)
}

func Test_UpdateConfiguration_sendsCurrentSettings(t *testing.T) {
	c, connection, recorder := setupConnection(t)
	_, err := connection.Initialize(context.Background(), nil)
	require.NoError(t, err)
	c.SetOrganization("my-org")

	require.NoError(t, connection.UpdateConfiguration(context.Background()))

	assert.Eventually(t, func() bool {
		notifications := recorder.FindNotificationsByMethod(lsp.MethodDidChangeConfiguration)
		if len(notifications) != 1 {
			return false
		}
		var params lsp.DidChangeConfigurationParams
		return notifications[0].UnmarshalParams(&params) == nil && params.Settings.Organization == "my-org"
	}, time.Second, 10*time.Millisecond)
}

func Test_AddProject_waitsForInitialization(t *testing.T) {
	_, connection, recorder := setupConnection(t)
	root := types.FilePath(t.TempDir())
	added := make(chan error, 1)

	go func() { added <- connection.AddProject(context.Background(), project(t, "p", root)) }()
	time.Sleep(20 * time.Millisecond)
	_, err := connection.Initialize(context.Background(), nil)
	require.NoError(t, err)

	select {
	case err = <-added:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("project was not added")
	}
	assert.Eventually(t, func() bool {
		notifications := recorder.FindNotificationsByMethod(lsp.MethodDidChangeWorkspaceFolders)
		if len(notifications) != 1 {
			return false
		}
		var params lsp.DidChangeWorkspaceFoldersParams
		return notifications[0].UnmarshalParams(&params) == nil && len(params.Event.Added) == 1
	}, time.Second, 10*time.Millisecond)
}

func Test_AddProject_givesUpWhenServerNeverInitializes(t *testing.T) {
	_, connection, recorder := setupConnection(t)
	connection.maxRetries = 3

	err := connection.AddProject(context.Background(), project(t, "p", types.FilePath(t.TempDir())))

	assert.ErrorIs(t, err, ErrNotInitialized)
	assert.Empty(t, recorder.Notifications())
}

func Test_CancelProgress_sendsToken(t *testing.T) {
	_, connection, recorder := setupConnection(t)
	_, err := connection.Initialize(context.Background(), nil)
	require.NoError(t, err)

	connection.CancelProgress("token-1")

	assert.Eventually(t, func() bool {
		notifications := recorder.FindNotificationsByMethod(lsp.MethodWorkDoneProgressCancel)
		if len(notifications) != 1 {
			return false
		}
		var params lsp.WorkdoneProgressCancelParams
		return notifications[0].UnmarshalParams(&params) == nil && params.Token == "token-1"
	}, time.Second, 10*time.Millisecond)
}

func Test_Shutdown_sendsShutdownOnce(t *testing.T) {
	_, connection, recorder := setupConnection(t)
	_, err := connection.Initialize(context.Background(), nil)
	require.NoError(t, err)

	_ = connection.Shutdown(context.Background())
	_ = connection.Shutdown(context.Background())

	assert.Len(t, recorder.FindCallbacksByMethod(lsp.MethodShutdown), 1)
	assert.False(t, connection.IsInitialized())
}

func Test_Launch_withoutCli_fails(t *testing.T) {
	c := testutil.UnitTest(t)
	c.SetCliPath(filepath.Join(t.TempDir(), "missing-snyk"))

	_, err := Launch(context.Background(), c, &notificationRecorder{})

	assert.Error(t, err)
}

func Test_command_startsLanguageServerWithLogLevel(t *testing.T) {
	c := testutil.UnitTest(t)
	cliPath := filepath.Join(t.TempDir(), "snyk")
	c.SetCliPath(cliPath)
	c.SetLogLevel("debug")

	assert.Equal(t, []string{cliPath, "language-server", "-l", "debug"}, command(c))
}
