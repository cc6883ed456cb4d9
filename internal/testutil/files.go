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

package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/snyk/snyk-ide-core/internal/types"
)

// CreateFileOrFail creates a file with content, including missing parent directories.
func CreateFileOrFail(t *testing.T, filePath types.FilePath, content string) types.FilePath {
	t.Helper()
	path := string(filePath)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return filePath
}

// TempFolder returns a cleaned temp directory owned by t.
func TempFolder(t *testing.T) types.FilePath {
	t.Helper()
	return types.FilePath(filepath.Clean(t.TempDir()))
}
