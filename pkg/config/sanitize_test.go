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

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/webcam-light/pkg/models"
)

func TestRedactURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "webhook id",
			raw:  "http://homeassistant:8123/api/webhook/abc123",
			want: "http://homeassistant:8123/api/webhook/REDACTED",
		},
		{
			name: "trailing slash",
			raw:  "https://ha.local/api/webhook/abc123/",
			want: "https://ha.local/api/webhook/REDACTED",
		},
		{
			name: "userinfo and query",
			raw:  "https://user:pw@ha.local/hook/secret?token=x",
			want: "https://ha.local/hook/REDACTED",
		},
		{
			name: "host only",
			raw:  "https://ha.local",
			want: "https://ha.local",
		},
		{
			name: "not a url",
			raw:  "::nope",
			want: "REDACTED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, RedactURL(tt.raw))
		})
	}
}

func TestConfigRedacted(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.WebhookURL = "http://homeassistant:8123/api/webhook/secret-id"
	cfg.Logging.OTel.Headers = map[string]string{"authorization": "Bearer abc"}
	cfg.NATS = &models.NATSConfig{URL: "nats://svc:pw@nats:4222", Stream: "camera-events"}

	out := cfg.Redacted()

	assert.Equal(t, "http://homeassistant:8123/api/webhook/REDACTED", out.WebhookURL)
	assert.Equal(t, map[string]string{"authorization": "REDACTED"}, out.Logging.OTel.Headers)
	assert.Equal(t, "nats://REDACTED@nats:4222", out.NATS.URL)

	require.NotSame(t, cfg.Logging, out.Logging)
	assert.Equal(t, "http://homeassistant:8123/api/webhook/secret-id", cfg.WebhookURL)
	assert.Equal(t, "Bearer abc", cfg.Logging.OTel.Headers["authorization"])
	assert.Equal(t, "nats://svc:pw@nats:4222", cfg.NATS.URL)
}
