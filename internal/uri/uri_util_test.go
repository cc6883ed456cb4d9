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

package uri

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snyk/snyk-ide-core/internal/types"
)

func TestPathFromUri(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix paths")
	}
	path, err := PathFromUri("file:///repo/shared/a.py")

	require.NoError(t, err)
	assert.Equal(t, types.FilePath(filepath.FromSlash("/repo/shared/a.py")), path)
}

func TestPathFromUri_roundTrip(t *testing.T) {
	dir := types.FilePath(t.TempDir())

	path, err := PathFromUri(PathToUri(dir))

	require.NoError(t, err)
	assert.Equal(t, dir, path)
}

func TestPathFromUri_rejectsNonFileUris(t *testing.T) {
	_, err := PathFromUri("https://snyk.io/a.py")

	assert.Error(t, err)
}
