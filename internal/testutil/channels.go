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
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// RequireEventuallyReceive fails t unless a value arrives on ch within waitFor. A closed channel fails too.
func RequireEventuallyReceive[T any](t *testing.T, ch <-chan T, waitFor, tick time.Duration, msgAndArgs ...any) T {
	t.Helper()

	var received T
	closed := false
	require.Eventually(t, func() bool {
		select {
		case value, ok := <-ch:
			closed = !ok
			received = value
			return true
		default:
			return false
		}
	}, waitFor, tick, msgAndArgs...)

	if closed {
		t.Fatal("channel was closed before receiving a value")
	}
	return received
}

// RequireSignal fails t unless ch is closed or a value arrives on it within waitFor.
func RequireSignal[T any](t *testing.T, ch <-chan T, waitFor time.Duration, msgAndArgs ...any) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(waitFor):
		require.FailNow(t, "no signal received", msgAndArgs...)
	}
}
