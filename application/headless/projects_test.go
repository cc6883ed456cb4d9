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
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snyk/snyk-ide-core/application/headless/mock_headless"
	"github.com/snyk/snyk-ide-core/domain/ide/workspace"
	"github.com/snyk/snyk-ide-core/domain/scanstates"
	"github.com/snyk/snyk-ide-core/internal/lsp"
	"github.com/snyk/snyk-ide-core/internal/notification"
	"github.com/snyk/snyk-ide-core/internal/product"
	"github.com/snyk/snyk-ide-core/internal/types"
)

func setupProjects(t *testing.T) (*Projects, *workspace.Workspace, *mock_headless.MockFolderTransport, *mock_headless.MockScanController) {
	t.Helper()
	ctrl := gomock.NewController(t)
	transport := mock_headless.NewMockFolderTransport(ctrl)
	scans := mock_headless.NewMockScanController(ctrl)
	logger := zerolog.Nop()
	w := workspace.New(scanstates.NewTracker())
	return NewProjects(&logger, w, transport, scans, NewEventLogger(&logger)), w, transport, scans
}

func Test_Projects_Open_addsProjectAndAnnounces(t *testing.T) {
	projects, w, transport, _ := setupProjects(t)
	root := types.FilePath(t.TempDir())
	transport.EXPECT().AddProject(gomock.Any(), gomock.Any()).Return(nil)

	project, err := projects.Open(context.Background(), "p", true, root)

	require.NoError(t, err)
	opened, ok := w.Project("p")
	require.True(t, ok)
	assert.Same(t, project, opened)
}

func Test_Projects_Open_withoutAnnounce_doesNotTouchTransport(t *testing.T) {
	projects, _, _, _ := setupProjects(t)

	_, err := projects.Open(context.Background(), "p", false, types.FilePath(t.TempDir()))

	require.NoError(t, err)
}

func Test_Projects_Open_transportErrorStillOpensProject(t *testing.T) {
	projects, w, transport, _ := setupProjects(t)
	transport.EXPECT().AddProject(gomock.Any(), gomock.Any()).Return(errors.New("not initialized"))

	_, err := projects.Open(context.Background(), "p", true, types.FilePath(t.TempDir()))

	require.NoError(t, err)
	_, ok := w.Project("p")
	assert.True(t, ok)
}

func Test_Projects_Open_twice_fails(t *testing.T) {
	projects, _, _, _ := setupProjects(t)
	root := types.FilePath(t.TempDir())
	_, err := projects.Open(context.Background(), "p", false, root)
	require.NoError(t, err)

	_, err = projects.Open(context.Background(), "p", false, root)

	assert.Error(t, err)
}

func Test_Projects_Scan_delegatesToController(t *testing.T) {
	projects, _, _, scans := setupProjects(t)
	project, err := projects.Open(context.Background(), "p", false, types.FilePath(t.TempDir()))
	require.NoError(t, err)
	scans.EXPECT().Scan(project, true)

	require.NoError(t, projects.Scan("p", true))
	assert.Error(t, projects.Scan("unknown", false))
}

func Test_Projects_IssueCounts_followsDiagnostics(t *testing.T) {
	projects, _, _, _ := setupProjects(t)
	root := types.FilePath(t.TempDir())
	project, err := projects.Open(context.Background(), "p", false, root)
	require.NoError(t, err)

	project.Notifier().Send(notification.DiagnosticsEvent{
		Product: product.ProductCode,
		File:    root,
		Issues:  []lsp.ScanIssue{{Id: "1"}, {Id: "2"}},
	})

	assert.Equal(t, map[product.Product]int{product.ProductCode: 2}, projects.IssueCounts("p"))
	assert.Empty(t, projects.IssueCounts("unknown"))
}

func Test_Projects_Close_stopsScansAndRemovesProject(t *testing.T) {
	projects, w, transport, scans := setupProjects(t)
	project, err := projects.Open(context.Background(), "p", false, types.FilePath(t.TempDir()))
	require.NoError(t, err)
	scans.EXPECT().Remove("p")
	transport.EXPECT().RemoveProject(gomock.Any(), project).Return(nil)

	projects.Close(context.Background(), "p")

	_, ok := w.Project("p")
	assert.False(t, ok)
	assert.True(t, project.IsDisposed())
	assert.Empty(t, projects.IssueCounts("p"))
}

func Test_Projects_CloseAll_closesEveryProject(t *testing.T) {
	projects, w, transport, scans := setupProjects(t)
	for _, name := range []string{"a", "b"} {
		_, err := projects.Open(context.Background(), name, false, types.FilePath(t.TempDir()))
		require.NoError(t, err)
	}
	scans.EXPECT().Remove(gomock.Any()).Times(2)
	transport.EXPECT().RemoveProject(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	projects.CloseAll(context.Background())

	assert.Empty(t, w.Projects())
}

func Test_Projects_logsSummaryOnceDiagnosticsSettle(t *testing.T) {
	ctrl := gomock.NewController(t)
	out := &syncBuffer{}
	logger := zerolog.New(out)
	nop := zerolog.Nop()
	w := workspace.New(scanstates.NewTracker())
	projects := NewProjects(&logger, w, mock_headless.NewMockFolderTransport(ctrl), mock_headless.NewMockScanController(ctrl),
		NewEventLogger(&nop), WithSummaryDelay(20*time.Millisecond))
	root := types.FilePath(t.TempDir())
	project, err := projects.Open(context.Background(), "p", false, root)
	require.NoError(t, err)

	project.Notifier().Send(notification.DiagnosticsEvent{
		Product: product.ProductCode,
		File:    root,
		Issues:  []lsp.ScanIssue{{Id: "1"}},
	})

	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), `"code":1`)
	}, time.Second, 10*time.Millisecond)
}
