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
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/webcam-light/pkg/logger"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()

	assert.Equal(t, "http://homeassistant:8123/api/webhook/none", cfg.WebhookURL)
	assert.Equal(t, "192.168.137.", cfg.HomeIPPrefix)
	assert.True(t, cfg.RequireHomeNetwork)
	assert.True(t, cfg.RequireExternalMonitor)
	assert.Equal(t, 5*time.Second, cfg.Debounce())
	assert.Equal(t, 15*time.Second, cfg.DisplaysCacheTTL())
	assert.Equal(t, 5*time.Second, cfg.CommandTimeoutDuration())
	assert.Equal(t, 5*time.Second, cfg.DetectMonitorTimeoutDuration())
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeoutDuration())
	assert.False(t, cfg.NATS.Enabled())
	require.NoError(t, cfg.Validate())
}

func TestLoaderEnvironment(t *testing.T) {
	t.Setenv("WEBHOOK_URL", "http://ha.local:8123/api/webhook/cam")
	t.Setenv("HOME_IP_PREFIX", "10.1.")
	t.Setenv("REQUIRE_HOME_NETWORK", "false")
	t.Setenv("REQUIRE_EXTERNAL_MONITOR", "false")
	t.Setenv("DEBOUNCE_SECONDS", "2.5")
	t.Setenv("DISPLAYS_CACHE_TTL_SECONDS", "30")
	t.Setenv("COMMAND_TIMEOUT", "3")
	t.Setenv("DETECT_MONITOR_TIMEOUT", "4")
	t.Setenv("NATS_URL", "nats://127.0.0.1:4222")
	t.Setenv("LOGGING_LEVEL", "debug")

	cfg, err := NewLoader(logger.NewTestLogger()).Load(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, "http://ha.local:8123/api/webhook/cam", cfg.WebhookURL)
	assert.Equal(t, "10.1.", cfg.HomeIPPrefix)
	assert.False(t, cfg.RequireHomeNetwork)
	assert.False(t, cfg.RequireExternalMonitor)
	assert.Equal(t, 2500*time.Millisecond, cfg.Debounce())
	assert.Equal(t, 30*time.Second, cfg.DisplaysCacheTTL())
	assert.Equal(t, 3*time.Second, cfg.CommandTimeoutDuration())
	assert.Equal(t, 4*time.Second, cfg.DetectMonitorTimeoutDuration())
	assert.True(t, cfg.NATS.Enabled())
	assert.Equal(t, "debug", cfg.Logging.Level)
	require.NoError(t, cfg.Validate())
}

func TestLoaderRejectsMalformedEnvironment(t *testing.T) {
	t.Setenv("DEBOUNCE_SECONDS", "soon")

	_, err := NewLoader(logger.NewTestLogger()).Load(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DEBOUNCE_SECONDS")
}

func TestLoaderFileThenEnvThenFlags(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "webcam-light.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"webhook_url": "http://file:8123/api/webhook/x",
		"home_ip_prefix": "172.16.",
		"debounce_seconds": 9,
		"require_external_monitor": false
	}`), 0o600))

	t.Setenv("HOME_IP_PREFIX", "192.168.1.")

	cfg, err := NewLoader(logger.NewTestLogger()).Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "http://file:8123/api/webhook/x", cfg.WebhookURL, "file value kept")
	assert.Equal(t, "192.168.1.", cfg.HomeIPPrefix, "env overrides file")
	assert.InDelta(t, 9.0, cfg.DebounceSeconds, 0.0001)
	assert.False(t, cfg.RequireExternalMonitor)

	fs := newFlagSet()
	flags := RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--home-ip-prefix", "192.168.137.", "--debounce-seconds", "1"}))
	require.NoError(t, flags.Apply(fs, cfg))

	assert.Equal(t, "192.168.137.", cfg.HomeIPPrefix, "flag overrides env")
	assert.InDelta(t, 1.0, cfg.DebounceSeconds, 0.0001)
	assert.Equal(t, "http://file:8123/api/webhook/x", cfg.WebhookURL, "unset flag keeps lower layers")
}

func TestLoaderMissingFile(t *testing.T) {
	t.Parallel()

	_, err := NewLoader(logger.NewTestLogger()).Load(context.Background(), filepath.Join(t.TempDir(), "nope.json"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{name: "empty webhook", mutate: func(c *Config) { c.WebhookURL = "" }, wantErr: ErrMissingWebhookURL},
		{name: "relative webhook", mutate: func(c *Config) { c.WebhookURL = "/api/webhook" }, wantErr: ErrInvalidWebhookURL},
		{name: "ftp webhook", mutate: func(c *Config) { c.WebhookURL = "ftp://ha/x" }, wantErr: ErrInvalidWebhookURL},
		{name: "negative debounce", mutate: func(c *Config) { c.DebounceSeconds = -1 }, wantErr: ErrInvalidDuration},
		{name: "negative ttl", mutate: func(c *Config) { c.DisplaysCacheTTLSeconds = -0.5 }, wantErr: ErrInvalidDuration},
		{name: "nan debounce", mutate: func(c *Config) { c.DebounceSeconds = math.NaN() }, wantErr: ErrInvalidDuration},
		{name: "infinite http timeout", mutate: func(c *Config) { c.HTTPTimeout = math.Inf(1) }, wantErr: ErrInvalidDuration},
		{name: "overflowing ttl", mutate: func(c *Config) { c.DisplaysCacheTTLSeconds = 1e12 }, wantErr: ErrInvalidDuration},
		{name: "negative restarts", mutate: func(c *Config) { c.MaxStreamRestarts = -1 }, wantErr: ErrInvalidRestartSpec},
		{name: "zero debounce allowed", mutate: func(c *Config) { c.DebounceSeconds = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateRejectsNaNFromEnvironment(t *testing.T) {
	t.Setenv("DEBOUNCE_SECONDS", "NaN")

	cfg, err := NewLoader(logger.NewTestLogger()).Load(context.Background(), "")
	require.NoError(t, err)

	cfg.Normalize()
	require.ErrorIs(t, cfg.Validate(), ErrInvalidDuration)
}

func TestValidateRedactsWebhookURL(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.WebhookURL = "ftp://ha.local/api/webhook/SECRETID"

	err := cfg.Validate()
	require.ErrorIs(t, err, ErrInvalidWebhookURL)
	assert.NotContains(t, err.Error(), "SECRETID")
}

func TestNormalizeFillsZeroTimeouts(t *testing.T) {
	t.Parallel()

	cfg := &Config{}
	cfg.Normalize()

	assert.Equal(t, 5*time.Second, cfg.CommandTimeoutDuration())
	assert.Equal(t, 5*time.Second, cfg.DetectMonitorTimeoutDuration())
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeoutDuration())
	assert.NotNil(t, cfg.Logging)
	assert.NotNil(t, cfg.NATS)
}
