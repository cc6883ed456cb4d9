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

package container

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snyk/snyk-ide-core/internal/testutil"
	"github.com/snyk/snyk-ide-core/internal/types"
)

const deployment = `apiVersion: apps/v1
kind: Deployment
metadata:
  name: web
spec:
  template:
    spec:
      initContainers:
        - name: init
          image: busybox:1.36
      containers:
        - name: web
          image: nginx:1.25
---
apiVersion: v1
kind: Pod
metadata:
  name: cache
spec:
  containers:
    - name: cache
      image: redis:7
`

func Test_DiscoverImages_multiDocumentManifest(t *testing.T) {
	root := testutil.TempFolder(t)
	file := testutil.CreateFileOrFail(t, types.FilePath(filepath.Join(string(root), "k8s", "web.yaml")), deployment)

	images := DiscoverImages(zerolog.New(zerolog.NewTestWriter(t)), root)

	require.Len(t, images, 3)
	assert.Equal(t, "busybox:1.36", images[0].Image)
	assert.Equal(t, "nginx:1.25", images[1].Image)
	assert.Equal(t, "redis:7", images[2].Image)
	assert.Equal(t, []types.FilePath{file}, images[1].Files)
}

func Test_DiscoverImages_ignoresNonKubernetesYaml(t *testing.T) {
	root := testutil.TempFolder(t)
	testutil.CreateFileOrFail(t, types.FilePath(filepath.Join(string(root), "docker-compose.yml")), "services:\n  web:\n    image: nginx:1.25\n")
	testutil.CreateFileOrFail(t, types.FilePath(filepath.Join(string(root), "broken.yaml")), "kind: [\n")

	images := DiscoverImages(zerolog.New(zerolog.NewTestWriter(t)), root)

	assert.Empty(t, images)
}

func Test_DiscoverImages_skipsGitignoredPaths(t *testing.T) {
	root := testutil.TempFolder(t)
	testutil.CreateFileOrFail(t, types.FilePath(filepath.Join(string(root), ".gitignore")), "build\n")
	testutil.CreateFileOrFail(t, types.FilePath(filepath.Join(string(root), "build", "web.yaml")), deployment)
	testutil.CreateFileOrFail(t, types.FilePath(filepath.Join(string(root), "node_modules", "x", "web.yaml")), deployment)

	images := DiscoverImages(zerolog.New(zerolog.NewTestWriter(t)), root)

	assert.Empty(t, images)
}

func Test_DiscoverImages_sameImageInTwoRoots(t *testing.T) {
	first := testutil.TempFolder(t)
	second := testutil.TempFolder(t)
	pod := "apiVersion: v1\nkind: Pod\nspec:\n  containers:\n    - image: redis:7\n"
	testutil.CreateFileOrFail(t, types.FilePath(filepath.Join(string(first), "pod.yaml")), pod)
	testutil.CreateFileOrFail(t, types.FilePath(filepath.Join(string(second), "pod.yml")), pod)

	images := DiscoverImages(zerolog.New(zerolog.NewTestWriter(t)), first, second)

	require.Len(t, images, 1)
	assert.Len(t, images[0].Files, 2)
}
