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

// Package config loads the immutable runtime configuration of webcam-light
// from a JSON file, the environment and command-line flags, in that order.
package config

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"os"
	"time"

	"github.com/carverauto/webcam-light/pkg/logger"
	"github.com/carverauto/webcam-light/pkg/models"
)

const (
	defaultWebhookURL        = "http://homeassistant:8123/api/webhook/none"
	defaultHomeIPPrefix      = "192.168.137."
	defaultDebounceSeconds   = 5.0
	defaultDisplaysCacheTTL  = 15.0
	defaultCommandTimeout    = 5.0
	defaultDetectTimeout     = 5.0
	defaultHTTPTimeout       = 5.0
	defaultMaxStreamRestarts = 5
)

// ConfigLoader populates dst from a source identified by path.
type ConfigLoader interface {
	Load(ctx context.Context, path string, dst interface{}) error
}

// Config is the process-wide configuration. It is built once at startup and
// only read afterwards.
type Config struct {
	WebhookURL              string             `json:"webhook_url"`
	HomeIPPrefix            string             `json:"home_ip_prefix"`
	RequireHomeNetwork      bool               `json:"require_home_network"`
	RequireExternalMonitor  bool               `json:"require_external_monitor"`
	DebounceSeconds         float64            `json:"debounce_seconds"`
	DisplaysCacheTTLSeconds float64            `json:"displays_cache_ttl_seconds"`
	CommandTimeout          float64            `json:"command_timeout"`
	DetectMonitorTimeout    float64            `json:"detect_monitor_timeout"`
	HTTPTimeout             float64            `json:"http_timeout"`
	RestartStream           bool               `json:"restart_stream"`
	MaxStreamRestarts       int                `json:"max_stream_restarts"`
	MetricsAddr             string             `json:"metrics_addr"`
	NATS                    *models.NATSConfig `json:"nats,omitempty"`
	Logging                 *logger.Config     `json:"logging,omitempty"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		WebhookURL:              defaultWebhookURL,
		HomeIPPrefix:            defaultHomeIPPrefix,
		RequireHomeNetwork:      true,
		RequireExternalMonitor:  true,
		DebounceSeconds:         defaultDebounceSeconds,
		DisplaysCacheTTLSeconds: defaultDisplaysCacheTTL,
		CommandTimeout:          defaultCommandTimeout,
		DetectMonitorTimeout:    defaultDetectTimeout,
		HTTPTimeout:             defaultHTTPTimeout,
		MaxStreamRestarts:       defaultMaxStreamRestarts,
		NATS:                    &models.NATSConfig{},
		Logging:                 logger.DefaultConfig(),
	}
}

// Normalize fills zero-valued timeouts with their defaults.
func (c *Config) Normalize() {
	if c.CommandTimeout == 0 {
		c.CommandTimeout = defaultCommandTimeout
	}

	if c.DetectMonitorTimeout == 0 {
		c.DetectMonitorTimeout = defaultDetectTimeout
	}

	if c.HTTPTimeout == 0 {
		c.HTTPTimeout = defaultHTTPTimeout
	}

	if c.Logging == nil {
		c.Logging = logger.DefaultConfig()
	}

	if c.NATS == nil {
		c.NATS = &models.NATSConfig{}
	}
}

// maxDurationSeconds is the largest value that still fits in a time.Duration.
const maxDurationSeconds = float64(math.MaxInt64) / float64(time.Second)

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.WebhookURL == "" {
		return ErrMissingWebhookURL
	}

	u, err := url.Parse(c.WebhookURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidWebhookURL, RedactURL(c.WebhookURL))
	}

	durations := map[string]float64{
		"debounce_seconds":           c.DebounceSeconds,
		"displays_cache_ttl_seconds": c.DisplaysCacheTTLSeconds,
		"command_timeout":            c.CommandTimeout,
		"detect_monitor_timeout":     c.DetectMonitorTimeout,
		"http_timeout":               c.HTTPTimeout,
	}

	for name, value := range durations {
		if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 || value > maxDurationSeconds {
			return fmt.Errorf("%w: %s=%v", ErrInvalidDuration, name, value)
		}
	}

	if c.MaxStreamRestarts < 0 {
		return ErrInvalidRestartSpec
	}

	if c.NATS.Enabled() {
		if err := c.NATS.Validate(); err != nil {
			return fmt.Errorf("nats: %w", err)
		}
	}

	return nil
}

func (c *Config) Debounce() time.Duration { return seconds(c.DebounceSeconds) }

func (c *Config) DisplaysCacheTTL() time.Duration { return seconds(c.DisplaysCacheTTLSeconds) }

func (c *Config) CommandTimeoutDuration() time.Duration { return seconds(c.CommandTimeout) }

func (c *Config) DetectMonitorTimeoutDuration() time.Duration { return seconds(c.DetectMonitorTimeout) }

func (c *Config) HTTPTimeoutDuration() time.Duration { return seconds(c.HTTPTimeout) }

func seconds(v float64) time.Duration {
	return time.Duration(v * float64(time.Second))
}

// Loader layers file and environment sources over Default().
type Loader struct {
	file ConfigLoader
	env  ConfigLoader
	log  logger.Logger
}

// NewLoader returns a Loader reading JSON files and unprefixed environment variables.
func NewLoader(log logger.Logger) *Loader {
	return &Loader{
		file: &FileConfigLoader{},
		env:  NewEnvConfigLoader(log, ""),
		log:  log,
	}
}

// Load builds the configuration. An empty path skips the file layer; a
// missing file at a non-empty path is an error.
func (l *Loader) Load(ctx context.Context, path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}

		if err := l.file.Load(ctx, path, cfg); err != nil {
			return nil, err
		}

		l.log.Debug().Str("path", path).Msg("Loaded configuration file")
	}

	if err := l.env.Load(ctx, "", cfg); err != nil {
		return nil, err
	}

	cfg.Normalize()

	return cfg, nil
}
