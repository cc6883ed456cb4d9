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

package product

type ScanStatus string

const (
	ScanStatusInProgress ScanStatus = "inProgress"
	ScanStatusSuccess    ScanStatus = "success"
	ScanStatusError      ScanStatus = "error"
	ScanStatusUnknown    ScanStatus = ""
)

func ToScanStatus(status string) ScanStatus {
	switch ScanStatus(status) {
	case ScanStatusInProgress, ScanStatusSuccess, ScanStatusError:
		return ScanStatus(status)
	default:
		return ScanStatusUnknown
	}
}

// IsTerminal reports whether the status ends a scan.
func (s ScanStatus) IsTerminal() bool {
	return s == ScanStatusSuccess || s == ScanStatusError
}
