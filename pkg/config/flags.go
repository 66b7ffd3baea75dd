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
	"errors"
	"flag"
	"fmt"
)

var errConflictingFlags = errors.New("conflicting flags")

// Flags holds the command-line overrides. Only flags that were explicitly
// passed are applied, so unset flags never clobber file or env values.
type Flags struct {
	ConfigPath  string
	ShowVersion bool

	webhookURL             string
	homeIPPrefix           string
	requireHomeNetwork     bool
	noRequireHomeNetwork   bool
	requireExternalMonitor bool
	noRequireExternal      bool
	debounceSeconds        float64
	displaysCacheTTL       float64
	commandTimeout         float64
	detectMonitorTimeout   float64
	httpTimeout            float64
	restartStream          bool
	metricsAddr            string
	natsURL                string
	logLevel               string
}

// RegisterFlags defines the webcam-light flags on fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}

	fs.StringVar(&f.ConfigPath, "config", "", "Path to an optional JSON config file")
	fs.BoolVar(&f.ShowVersion, "version", false, "Print version and exit")
	fs.StringVar(&f.webhookURL, "webhook-url", defaultWebhookURL, "Complete webhook URL including endpoint")
	fs.StringVar(&f.homeIPPrefix, "home-ip-prefix", defaultHomeIPPrefix, "IP prefix to identify home network")
	fs.BoolVar(&f.requireHomeNetwork, "require-home-network", false, "Only send notifications when on home network")
	fs.BoolVar(&f.noRequireHomeNetwork, "no-require-home-network", false, "Send notifications regardless of network")
	fs.BoolVar(&f.requireExternalMonitor, "require-external-monitor", false,
		"Only send notifications when an external monitor is connected")
	fs.BoolVar(&f.noRequireExternal, "no-require-external-monitor", false,
		"Send notifications regardless of external monitor")
	fs.Float64Var(&f.debounceSeconds, "debounce-seconds", defaultDebounceSeconds, "Seconds to debounce duplicate events")
	fs.Float64Var(&f.displaysCacheTTL, "displays-cache-ttl", defaultDisplaysCacheTTL, "Display detection cache TTL in seconds")
	fs.Float64Var(&f.commandTimeout, "command-timeout", defaultCommandTimeout, "Timeout in seconds for host commands")
	fs.Float64Var(&f.detectMonitorTimeout, "detect-monitor-timeout", defaultDetectTimeout,
		"Timeout in seconds for display detection")
	fs.Float64Var(&f.httpTimeout, "http-timeout", defaultHTTPTimeout, "Timeout in seconds for the webhook POST")
	fs.BoolVar(&f.restartStream, "restart-stream", false, "Restart the log stream after it terminates unexpectedly")
	fs.StringVar(&f.metricsAddr, "metrics-addr", "", "Listen address for Prometheus metrics (disabled when empty)")
	fs.StringVar(&f.natsURL, "nats-url", "", "NATS URL for publishing camera events (disabled when empty)")
	fs.StringVar(&f.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")

	return f
}

// Apply overlays the flags that were set on fs onto cfg.
func (f *Flags) Apply(fs *flag.FlagSet, cfg *Config) error {
	set := make(map[string]bool)
	fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	if set["require-home-network"] && set["no-require-home-network"] {
		return fmt.Errorf("%w: --require-home-network and --no-require-home-network", errConflictingFlags)
	}

	if set["require-external-monitor"] && set["no-require-external-monitor"] {
		return fmt.Errorf("%w: --require-external-monitor and --no-require-external-monitor", errConflictingFlags)
	}

	if set["webhook-url"] {
		cfg.WebhookURL = f.webhookURL
	}

	if set["home-ip-prefix"] {
		cfg.HomeIPPrefix = f.homeIPPrefix
	}

	switch {
	case set["require-home-network"]:
		cfg.RequireHomeNetwork = f.requireHomeNetwork
	case set["no-require-home-network"]:
		cfg.RequireHomeNetwork = !f.noRequireHomeNetwork
	}

	switch {
	case set["require-external-monitor"]:
		cfg.RequireExternalMonitor = f.requireExternalMonitor
	case set["no-require-external-monitor"]:
		cfg.RequireExternalMonitor = !f.noRequireExternal
	}

	floats := map[string]struct {
		src float64
		dst *float64
	}{
		"debounce-seconds":       {f.debounceSeconds, &cfg.DebounceSeconds},
		"displays-cache-ttl":     {f.displaysCacheTTL, &cfg.DisplaysCacheTTLSeconds},
		"command-timeout":        {f.commandTimeout, &cfg.CommandTimeout},
		"detect-monitor-timeout": {f.detectMonitorTimeout, &cfg.DetectMonitorTimeout},
		"http-timeout":           {f.httpTimeout, &cfg.HTTPTimeout},
	}

	for name, v := range floats {
		if set[name] {
			*v.dst = v.src
		}
	}

	if set["restart-stream"] {
		cfg.RestartStream = f.restartStream
	}

	if set["metrics-addr"] {
		cfg.MetricsAddr = f.metricsAddr
	}

	if set["nats-url"] {
		cfg.NATS.URL = f.natsURL
	}

	if set["log-level"] {
		cfg.Logging.Level = f.logLevel
	}

	return nil
}
