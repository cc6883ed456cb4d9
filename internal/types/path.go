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

package types

import (
	"path/filepath"
	"strings"
)

// FilePath represents a file system path
type FilePath string

// PathKey returns a cleaned, separator-normalized form of p that can be used as a map key.
func PathKey(p FilePath) FilePath {
	if p == "" {
		return ""
	}
	return FilePath(filepath.ToSlash(filepath.Clean(string(p))))
}

// Contains reports whether path equals folder or lies below it.
func (folder FilePath) Contains(path FilePath) bool {
	f := string(PathKey(folder))
	p := string(PathKey(path))
	if f == "" || p == "" {
		return false
	}
	if f == p {
		return true
	}
	if !strings.HasSuffix(f, "/") {
		f += "/"
	}
	return strings.HasPrefix(p, f)
}
