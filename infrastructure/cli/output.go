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

package cli

import (
	"encoding/json"
	"strings"

	"github.com/snyk/snyk-ide-core/internal/types"
)

const NoOutputMessage = "CLI fail to produce any output"

// CliError is the json error document printed by the CLI.
type CliError struct {
	Ok    bool   `json:"ok"`
	Error string `json:"error"`
	Path  string `json:"path"`
}

// Result is the parsed output of one CLI run. It is either cancelled, failed (Error set) or successful.
type Result[T any] struct {
	Results   []T
	Error     *types.SnykError
	Cancelled bool
}

func (r Result[T]) IsSuccessful() bool {
	return r.Error == nil && !r.Cancelled
}

// ParseOutput converts raw CLI output into a Result. successKey is the json key (quoted, followed by a
// colon) that identifies a single successful result object.
func ParseOutput[T any](output string, successKey string) Result[T] {
	trimmed := strings.TrimSpace(output)
	switch {
	case trimmed == "":
		return Result[T]{Error: &types.SnykError{Message: NoOutputMessage}}
	case trimmed == ProcessCancelledByUser:
		return Result[T]{Cancelled: true}
	case strings.HasPrefix(trimmed, "["):
		var results []T
		if err := json.Unmarshal([]byte(trimmed), &results); err != nil {
			return Result[T]{Error: &types.SnykError{Message: err.Error()}}
		}
		return Result[T]{Results: results}
	case strings.HasPrefix(trimmed, "{"):
		if strings.Contains(trimmed, successKey) && !strings.Contains(trimmed, `"error":`) {
			var result T
			if err := json.Unmarshal([]byte(trimmed), &result); err != nil {
				return Result[T]{Error: &types.SnykError{Message: err.Error()}}
			}
			return Result[T]{Results: []T{result}}
		}
		var cliError CliError
		if err := json.Unmarshal([]byte(trimmed), &cliError); err != nil {
			return Result[T]{Error: &types.SnykError{Message: err.Error()}}
		}
		return Result[T]{Error: &types.SnykError{Message: cliError.Error, Path: cliError.Path}}
	default:
		return Result[T]{Error: &types.SnykError{Message: trimmed}}
	}
}
