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
	"fmt"

	"github.com/snyk/snyk-ide-core/internal/product"
)

// ScanTarget identifies one unit of scan work: a workspace folder scanned by a product.
type ScanTarget struct {
	Folder  FilePath
	Product product.Product
}

func NewScanTarget(folder FilePath, p product.Product) ScanTarget {
	return ScanTarget{Folder: PathKey(folder), Product: p}
}

func (t ScanTarget) String() string {
	return fmt.Sprintf("%s[%s]", t.Folder, t.Product.ToProductCodename())
}

// SnykError is the error shape presented to users: a message and the path it relates to.
type SnykError struct {
	Message string `json:"message"`
	Path    string `json:"path"`
	Code    int    `json:"code,omitempty"`
}

func (e SnykError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Path)
}
