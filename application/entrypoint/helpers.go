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

package entrypoint

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/snyk/snyk-ide-core/domain/observability/error_reporting"
)

// OnPanicRecover reports a panic of the calling goroutine and flushes the reporter. Use it deferred.
func OnPanicRecover(errorReporter error_reporting.ErrorReporter) {
	if err := recover(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "🚨 Panicking 🚨")
		_, _ = fmt.Fprintln(os.Stderr, err)
		debug.PrintStack()
		if errorReporter == nil {
			return
		}
		errorReporter.CaptureError(fmt.Errorf("%v", err))
		errorReporter.FlushErrorReporting()
	}
}
