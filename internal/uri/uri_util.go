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
	"strings"

	"github.com/pkg/errors"
	sglsp "github.com/sourcegraph/go-lsp"
	lsp "go.lsp.dev/uri"

	"github.com/snyk/snyk-ide-core/internal/types"
)

const fileScheme = "file"

// PathFromUri converts a file document URI to a file system path.
func PathFromUri(documentURI sglsp.DocumentURI) (types.FilePath, error) {
	parsed, err := lsp.Parse(string(documentURI))
	if err != nil {
		return "", errors.Wrapf(err, "could not parse uri %s", documentURI)
	}
	if !strings.HasPrefix(string(parsed), fileScheme+":") {
		return "", errors.Errorf("not a file uri: %s", documentURI)
	}
	return types.FilePath(filepath.Clean(parsed.Filename())), nil
}

func PathToUri(path types.FilePath) sglsp.DocumentURI {
	return sglsp.DocumentURI(lsp.File(string(path)))
}
