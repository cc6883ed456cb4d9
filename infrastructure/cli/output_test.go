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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testResult struct {
	DisplayTargetFile string     `json:"displayTargetFile"`
	Vulnerabilities   []struct{} `json:"vulnerabilities"`
}

const vulnerabilitiesKey = `"vulnerabilities":`

func Test_ParseOutput_emptyOutputIsError(t *testing.T) {
	result := ParseOutput[testResult]("  \n", vulnerabilitiesKey)

	require.NotNil(t, result.Error)
	assert.Equal(t, NoOutputMessage, result.Error.Message)
	assert.False(t, result.IsSuccessful())
}

func Test_ParseOutput_array(t *testing.T) {
	result := ParseOutput[testResult](`[{"displayTargetFile":"a","vulnerabilities":[]},{"displayTargetFile":"b","vulnerabilities":[{}]}]`, vulnerabilitiesKey)

	assert.Nil(t, result.Error)
	require.Len(t, result.Results, 2)
	assert.Equal(t, "b", result.Results[1].DisplayTargetFile)
	assert.Len(t, result.Results[1].Vulnerabilities, 1)
}

func Test_ParseOutput_singleResultIsWrapped(t *testing.T) {
	result := ParseOutput[testResult](`{"displayTargetFile":"a","vulnerabilities":[{}]}`, vulnerabilitiesKey)

	assert.True(t, result.IsSuccessful())
	require.Len(t, result.Results, 1)
	assert.Equal(t, "a", result.Results[0].DisplayTargetFile)
}

func Test_ParseOutput_errorObject(t *testing.T) {
	result := ParseOutput[testResult](`{"error":"x"}`, vulnerabilitiesKey)

	require.NotNil(t, result.Error)
	assert.Equal(t, "x", result.Error.Message)
	assert.Empty(t, result.Results)
}

func Test_ParseOutput_errorObjectWinsOverSuccessKey(t *testing.T) {
	result := ParseOutput[testResult](`{"ok":false,"vulnerabilities":[],"error":"broken","path":"/repo"}`, vulnerabilitiesKey)

	require.NotNil(t, result.Error)
	assert.Equal(t, "broken", result.Error.Message)
	assert.Equal(t, "/repo", result.Error.Path)
}

func Test_ParseOutput_malformedJsonIsError(t *testing.T) {
	result := ParseOutput[testResult](`[{"displayTargetFile":`, vulnerabilitiesKey)

	require.NotNil(t, result.Error)
	assert.NotEmpty(t, result.Error.Message)
}

func Test_ParseOutput_plainTextIsError(t *testing.T) {
	result := ParseOutput[testResult]("Authentication failed", vulnerabilitiesKey)

	require.NotNil(t, result.Error)
	assert.Equal(t, "Authentication failed", result.Error.Message)
}

func Test_ParseOutput_cancelledIsNotAnError(t *testing.T) {
	result := ParseOutput[testResult](ProcessCancelledByUser, vulnerabilitiesKey)

	assert.True(t, result.Cancelled)
	assert.Nil(t, result.Error)
	assert.Empty(t, result.Results)
	assert.False(t, result.IsSuccessful())
}
