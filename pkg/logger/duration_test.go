/*
 * Copyright 2025 Carver Automation Corporation.
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

package logger

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuration_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected Duration
		wantErr  bool
	}{
		{name: "string duration", input: `"5s"`, expected: Duration(5 * time.Second)},
		{name: "numeric duration (nanoseconds)", input: `5000000000`, expected: Duration(5 * time.Second)},
		{name: "complex duration string", input: `"1h30m45s"`, expected: Duration(time.Hour + 30*time.Minute + 45*time.Second)},
		{name: "invalid duration string", input: `"invalid"`, wantErr: true},
		{name: "invalid type", input: `true`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var d Duration

			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, d)
		})
	}
}

func TestOTelConfigBatchTimeoutRoundTrip(t *testing.T) {
	t.Parallel()

	var cfg OTelConfig
	require.NoError(t, json.Unmarshal([]byte(`{"enabled":true,"endpoint":"collector:4317","batch_timeout":"2s"}`), &cfg))
	assert.Equal(t, Duration(2*time.Second), cfg.BatchTimeout)

	out, err := json.Marshal(cfg.BatchTimeout)
	require.NoError(t, err)
	assert.JSONEq(t, `"2s"`, string(out))
}
